package passes

import (
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mirpass/internal/mir"
)

type namedPass struct {
	name string
	err  error
	runs *[]string
}

func (p *namedPass) Name() string { return p.name }

func (p *namedPass) Run(body *mir.Body) error {
	*p.runs = append(*p.runs, p.name)
	return p.err
}

type recordingSink struct {
	dumps []string
	err   error
}

func (s *recordingSink) Dump(unit mir.UnitID, pass string, seq int, body *mir.Body) error {
	s.dumps = append(s.dumps, pass)
	return s.err
}

func emptyBody(unit mir.UnitID) *mir.Body {
	return &mir.Body{
		Source:       mir.Source{Unit: unit},
		SourceScopes: []mir.SourceScopeData{{}},
		LocalDecls:   []mir.LocalDecl{{Ty: mir.UnitTy{}}},
		Blocks: []mir.BasicBlockData{{
			Terminator: &mir.Terminator{Kind: &mir.ReturnTerm{}},
		}},
	}
}

func TestRunnerExecutesPassesInOrder(t *testing.T) {
	var runs []string
	r := New([]BodyPass{
		&namedPass{name: "first", runs: &runs},
		&namedPass{name: "second", runs: &runs},
		&namedPass{name: "third", runs: &runs},
	})

	require.NoError(t, r.Run(emptyBody("demo/unit")))
	assert.Equal(t, []string{"first", "second", "third"}, runs)
}

func TestRunnerStopsAtFirstFailure(t *testing.T) {
	var runs []string
	boom := errors.New("boom")
	r := New([]BodyPass{
		&namedPass{name: "first", runs: &runs},
		&namedPass{name: "second", runs: &runs, err: boom},
		&namedPass{name: "third", runs: &runs},
	})

	err := r.Run(emptyBody("demo/unit"))
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "second")
	assert.Equal(t, []string{"first", "second"}, runs, "later passes must not run")
}

func TestRunnerDumpsAfterEveryPass(t *testing.T) {
	var runs []string
	sink := &recordingSink{}
	r := New([]BodyPass{
		&namedPass{name: "first", runs: &runs},
		&namedPass{name: "second", runs: &runs},
	}, WithSink(sink))

	require.NoError(t, r.Run(emptyBody("demo/unit")))
	assert.Equal(t, []string{"first", "second"}, sink.dumps)
}

func TestRunnerSinkFailureIsNotFatal(t *testing.T) {
	var runs []string
	sink := &recordingSink{err: errors.New("disk full")}
	r := New([]BodyPass{
		&namedPass{name: "only", runs: &runs},
	}, WithSink(sink), WithLogger(slog.Default()))

	require.NoError(t, r.Run(emptyBody("demo/unit")))
	assert.Equal(t, []string{"only"}, runs)
}

func TestRunnerCopiesPassSlice(t *testing.T) {
	var runs []string
	pipeline := []BodyPass{
		&namedPass{name: "first", runs: &runs},
	}
	r := New(pipeline)

	// Mutating the caller's slice must not change the pipeline.
	pipeline[0] = &namedPass{name: "swapped", runs: &runs}

	require.NoError(t, r.Run(emptyBody("demo/unit")))
	assert.Equal(t, []string{"first"}, runs)
}
