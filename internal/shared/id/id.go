// Package id provides centralized ID generation.
//
// Two families of IDs exist:
//   - ULIDs with a type prefix (req_*, trc_*, span_*, run_*) for things that
//     happen once: requests, traces, batch runs. They sort by creation time.
//   - UUIDv5 job IDs derived from a job's source and name, so re-running the
//     same job file yields the same IDs and reports can be diffed.
package id

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// RequestID identifies an API request
type RequestID string

// TraceID identifies a trace
type TraceID string

// SpanID identifies a span within a trace
type SpanID string

// RunID identifies one batch run
type RunID string

// JobID identifies a batch job by content, not by time
type JobID string

const (
	RequestPrefix = "req"
	TracePrefix   = "trc"
	SpanPrefix    = "span"
	RunPrefix     = "run"
)

// JobNamespace is the UUIDv5 namespace for job IDs
var JobNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/GriffinCanCode/AgentOS/integrator/jobs"))

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex
}

var (
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateWithPrefix creates a ULID string of the form prefix_ULID
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return prefix + "_" + g.Generate().String()
}

// NewRequestID generates a new request ID
func NewRequestID() RequestID {
	return RequestID(Default().GenerateWithPrefix(RequestPrefix))
}

// NewTraceID generates a new trace ID
func NewTraceID() TraceID {
	return TraceID(Default().GenerateWithPrefix(TracePrefix))
}

// NewSpanID generates a new span ID
func NewSpanID() SpanID {
	return SpanID(Default().GenerateWithPrefix(SpanPrefix))
}

// NewRunID generates a new batch run ID
func NewRunID() RunID {
	return RunID(Default().GenerateWithPrefix(RunPrefix))
}

// NewJobID derives the job ID for a job called name loaded from source
func NewJobID(source, name string) JobID {
	return JobID(uuid.NewSHA1(JobNamespace, []byte(source+"\x00"+name)).String())
}

func (id RequestID) String() string { return string(id) }
func (id TraceID) String() string   { return string(id) }
func (id SpanID) String() string    { return string(id) }
func (id RunID) String() string     { return string(id) }
func (id JobID) String() string     { return string(id) }

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// IsValidPrefixed checks that id is prefix, an underscore, then a ULID
func IsValidPrefixed(id, prefix string) bool {
	rest, ok := strings.CutPrefix(id, prefix+"_")
	return ok && IsValid(rest)
}

// IsValidJobID checks if an ID string is a UUIDv5 job ID
func IsValidJobID(id string) bool {
	u, err := uuid.Parse(id)
	return err == nil && u.Version() == 5
}
