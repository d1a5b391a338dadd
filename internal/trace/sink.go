package trace

import (
	"fmt"
	"io"
	"sync"

	"github.com/roach88/mirpass/internal/mir"
)

// Sink receives body dumps from the pass pipeline. Both the runner and
// individual passes accept this shape.
type Sink interface {
	Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error
}

// WriterSink renders each dump as canonical text onto one writer, with
// a header line identifying the unit, pass, and fingerprint. Safe for
// concurrent use; dumps never interleave.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriterSink creates a WriterSink over w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// Dump implements Sink.
func (s *WriterSink) Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error {
	text := mir.FormatBody(body)
	fp := mir.Fingerprint(body)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintf(s.w, "// unit=%s pass=%s seq=%d fingerprint=%s\n%s\n", unit, pass, seq, fp, text); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	return nil
}
