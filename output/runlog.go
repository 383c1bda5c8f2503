package output

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// Record is one observer step of a run.
type Record struct {
	// Iteration counts observer invocations from zero.
	Iteration int `json:"iteration"`

	// Time is the physical time of the step, meaningful for time
	// evolution runs.
	Time float64 `json:"time,omitempty"`

	// Observables maps observable names to expectation values.
	Observables map[string]float64 `json:"observables"`
}

// RunLog writes one JSON record per line, optionally gzip-compressed.
type RunLog struct {
	w   io.Writer
	gz  *gzip.Writer
	c   io.Closer
	enc *json.Encoder
}

// RunLogOption configures a RunLog.
type RunLogOption func(*runLogOptions)

type runLogOptions struct {
	compress bool
}

// WithCompression enables gzip compression of the log stream.
func WithCompression() RunLogOption {
	return func(o *runLogOptions) {
		o.compress = true
	}
}

// NewRunLog creates a run log writing to w. When w is also an io.Closer it
// is closed by Close.
func NewRunLog(w io.Writer, optFns ...RunLogOption) *RunLog {
	var opts runLogOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	l := &RunLog{w: w}
	if c, ok := w.(io.Closer); ok {
		l.c = c
	}

	if opts.compress {
		l.gz = gzip.NewWriter(w)
		l.enc = json.NewEncoder(l.gz)
	} else {
		l.enc = json.NewEncoder(w)
	}

	return l
}

// CreateRunLog creates a run log file at path. A ".gz" suffix selects
// compression.
func CreateRunLog(path string, optFns ...RunLogOption) (*RunLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create run log: %w", err)
	}

	if strings.HasSuffix(path, ".gz") {
		optFns = append(optFns, WithCompression())
	}

	return NewRunLog(f, optFns...), nil
}

// Write appends one record.
func (l *RunLog) Write(rec Record) error {
	return l.enc.Encode(rec)
}

// Close flushes the compressor, if any, and closes the underlying writer.
func (l *RunLog) Close() error {
	if l.gz != nil {
		if err := l.gz.Close(); err != nil {
			return err
		}
	}
	if l.c != nil {
		return l.c.Close()
	}
	return nil
}

// ReadRunLog reads all records from a log stream, transparently
// decompressing gzip content.
func ReadRunLog(r io.Reader) ([]Record, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(2)
	if err != nil && err != io.EOF {
		return nil, err
	}

	var src io.Reader = br
	if len(head) == 2 && head[0] == 0x1f && head[1] == 0x8b {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		src = gz
	}

	var records []Record

	dec := json.NewDecoder(src)
	for {
		var rec Record
		if err := dec.Decode(&rec); err != nil {
			if err == io.EOF {
				return records, nil
			}
			return nil, err
		}
		records = append(records, rec)
	}
}
