package batch

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/bytedance/sonic"
)

// Output formats accepted by Encode
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Formats lists the output formats
var Formats = []string{FormatText, FormatJSON}

var ErrUnknownFormat = errors.New("unknown output format")

// jsonReport is the wire form of a Report. Non-finite values are omitted.
type jsonReport struct {
	ID          string   `json:"id"`
	RunID       string   `json:"run_id"`
	Source      string   `json:"source,omitempty"`
	Name        string   `json:"name"`
	Method      string   `json:"method"`
	Status      Status   `json:"status"`
	Value       *float64 `json:"value"`
	Error       *float64 `json:"error"`
	Evaluations int      `json:"evaluations"`
	Expected    *float64 `json:"expected,omitempty"`
	Deviation   *float64 `json:"deviation,omitempty"`
	DurationMS  float64  `json:"duration_ms"`
	Failure     string   `json:"failure,omitempty"`
}

type jsonSummary struct {
	Total   int          `json:"total"`
	Failed  int          `json:"failed"`
	Reports []jsonReport `json:"reports"`
}

// Encode writes reports as an aligned text table or as JSON
func Encode(w io.Writer, reports []Report, format string) error {
	switch format {
	case FormatText:
		return encodeText(w, reports)
	case FormatJSON:
		return encodeJSON(w, reports)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func encodeText(w io.Writer, reports []Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tMETHOD\tVALUE\tERROR\tEVALS\tDEVIATION\tSTATUS")

	failed := 0
	for _, r := range reports {
		dev := "-"
		if r.Deviation != nil {
			dev = formatFloat(*r.Deviation)
		}
		status := string(r.Status)
		if r.Failure != "" {
			status += ": " + r.Failure
		}
		if !r.OK() {
			failed++
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\t%s\n",
			r.Name, r.Method, formatFloat(r.Value), formatFloat(r.Error), r.Evaluations, dev, status)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "\n%d jobs, %d failed\n", len(reports), failed)
	return err
}

func encodeJSON(w io.Writer, reports []Report) error {
	summary := jsonSummary{Total: len(reports), Reports: make([]jsonReport, len(reports))}
	for i, r := range reports {
		if !r.OK() {
			summary.Failed++
		}
		summary.Reports[i] = jsonReport{
			ID:          r.ID.String(),
			RunID:       r.RunID.String(),
			Source:      r.Source,
			Name:        r.Name,
			Method:      r.Method,
			Status:      r.Status,
			Value:       finite(r.Value),
			Error:       finite(r.Error),
			Evaluations: r.Evaluations,
			Expected:    r.Expected,
			Deviation:   r.Deviation,
			DurationMS:  float64(r.Duration.Microseconds()) / 1000,
			Failure:     r.Failure,
		}
		if r.Deviation != nil {
			summary.Reports[i].Deviation = finite(*r.Deviation)
		}
	}

	data, err := sonic.ConfigStd.MarshalIndent(summary, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 10, 64)
}
