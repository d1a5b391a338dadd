package passes

import (
	"fmt"
	"log/slog"

	"github.com/roach88/mirpass/internal/mir"
)

// BodyPass is one transformation over a single body. Run mutates the
// body in place (or attaches synthesized siblings to it) and reports the
// first unrecoverable condition it hits.
type BodyPass interface {
	Name() string
	Run(body *mir.Body) error
}

// DumpSink receives a dump of the body after each pass. Implemented by
// the trace package.
type DumpSink interface {
	Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error
}

// Runner executes a fixed pass pipeline over bodies.
//
// Pass order NEVER changes after construction; it is the order passed to
// New. The runner is not safe for concurrent use on the same body, but
// distinct bodies may be processed by distinct runners concurrently.
type Runner struct {
	passes []BodyPass
	log    *slog.Logger
	sink   DumpSink
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger routes runner diagnostics to log. The default discards
// nothing: a nil logger means slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// WithSink dumps the body after every pass. Sink failures are logged and
// do not fail the run; dumps are an observability aid, not an output.
func WithSink(sink DumpSink) Option {
	return func(r *Runner) {
		r.sink = sink
	}
}

// New creates a Runner over the given passes, in order.
//
// The slice is copied so later mutation by the caller cannot change the
// pipeline order.
func New(passes []BodyPass, opts ...Option) *Runner {
	var passesCopy []BodyPass
	if passes != nil {
		passesCopy = make([]BodyPass, len(passes))
		copy(passesCopy, passes)
	}

	r := &Runner{
		passes: passesCopy,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes every pass over body in order. It stops at the first pass
// error and returns it wrapped with the pass name; the body must then be
// considered invalid and the unit aborted.
func (r *Runner) Run(body *mir.Body) error {
	unit := body.Source.Unit
	for seq, pass := range r.passes {
		r.log.Debug("running body pass",
			slog.String("unit", string(unit)),
			slog.String("pass", pass.Name()),
			slog.Int("seq", seq))

		if err := pass.Run(body); err != nil {
			r.log.Error("body pass failed",
				slog.String("unit", string(unit)),
				slog.String("pass", pass.Name()),
				slog.String("error", err.Error()))
			return fmt.Errorf("pass %s on %s: %w", pass.Name(), unit, err)
		}

		if r.sink != nil {
			if err := r.sink.Dump(unit, pass.Name(), seq, body); err != nil {
				r.log.Warn("body dump failed",
					slog.String("unit", string(unit)),
					slog.String("pass", pass.Name()),
					slog.String("error", err.Error()))
			}
		}

		r.log.Debug("body pass done",
			slog.String("unit", string(unit)),
			slog.String("pass", pass.Name()),
			slog.String("fingerprint", mir.Fingerprint(body)))
	}
	return nil
}
