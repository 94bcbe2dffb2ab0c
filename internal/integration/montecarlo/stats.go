package montecarlo

import "math"

// SampleStats accumulates the running sum, sum of squares and count of
// integrand values within one stratum.
type SampleStats struct {
	Sum        float64
	SumSquares float64
	Count      int
}

// Add records one integrand value
func (s *SampleStats) Add(fx float64) {
	s.Sum += fx
	s.SumSquares += fx * fx
	s.Count++
}

// Merge returns the stats of both sample sets combined
func (s SampleStats) Merge(o SampleStats) SampleStats {
	return SampleStats{
		Sum:        s.Sum + o.Sum,
		SumSquares: s.SumSquares + o.SumSquares,
		Count:      s.Count + o.Count,
	}
}

// Mean returns the sample mean, or 0 for an empty stratum
func (s SampleStats) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the population variance Σf²/n − mean², clamped at zero
// against round-off.
func (s SampleStats) Variance() float64 {
	if s.Count == 0 {
		return 0
	}
	mean := s.Mean()
	return math.Max(s.SumSquares/float64(s.Count)-mean*mean, 0)
}

// Estimate converts the stats into a pooled estimate of the stratum mean.
func (s SampleStats) Estimate() Pooled {
	if s.Count == 0 {
		return Pooled{}
	}
	return Pooled{
		Mean:     s.Mean(),
		Variance: s.Variance() / float64(s.Count),
		Count:    s.Count,
	}
}

// Pooled is an estimate of a box mean together with the variance of that
// estimate and the number of samples behind it.
type Pooled struct {
	Mean     float64
	Variance float64
	Count    int
}

// Pool merges two independent estimates of the same mean, weighting each by
// its share of the samples.
func Pool(p, q Pooled) Pooled {
	if p.Count == 0 {
		return q
	}
	if q.Count == 0 {
		return p
	}

	total := p.Count + q.Count
	wp := float64(p.Count) / float64(total)
	wq := float64(q.Count) / float64(total)
	return Pooled{
		Mean:     wp*p.Mean + wq*q.Mean,
		Variance: wp*wp*p.Variance + wq*wq*q.Variance,
		Count:    total,
	}
}
