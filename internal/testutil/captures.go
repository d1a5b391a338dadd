package testutil

import (
	"math/rand"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

// Provider is an in-memory capture.Provider for tests.
type Provider struct {
	captures map[mir.UnitID]capture.List
	types    map[mir.UnitID]mir.Ty
}

// NewProvider creates an empty Provider.
func NewProvider() *Provider {
	return &Provider{
		captures: make(map[mir.UnitID]capture.List),
		types:    make(map[mir.UnitID]mir.Ty),
	}
}

// SetUnit registers a unit's type and capture list.
func (p *Provider) SetUnit(unit mir.UnitID, ty mir.Ty, list capture.List) {
	p.types[unit] = ty
	p.captures[unit] = list
}

// Captures implements capture.Provider.
func (p *Provider) Captures(unit mir.UnitID) capture.List {
	return p.captures[unit]
}

// TypeOf implements capture.Provider.
func (p *Provider) TypeOf(unit mir.UnitID) mir.Ty {
	return p.types[unit]
}

// Cap builds one capture entry.
func Cap(base capture.UpvarID, mode capture.Mode, ty mir.Ty, steps ...capture.Projection) capture.Capture {
	return capture.Capture{
		Place: capture.Place{Base: base, Projections: steps, Ty: ty},
		Mode:  mode,
	}
}

// FieldStep builds a field projection step.
func FieldStep(f mir.Field, ty mir.Ty) capture.Projection {
	return capture.Projection{Kind: capture.FieldKind, Ty: ty, Field: f}
}

// DerefStep builds a deref projection step.
func DerefStep(ty mir.Ty) capture.Projection {
	return capture.Projection{Kind: capture.DerefKind, Ty: ty}
}

// WithArgs prepends n synthetic call-argument captures to list. The
// matcher skips these entirely, so their content is arbitrary; they only
// need to occupy the leading aggregate fields the way desugared call
// arguments do.
func WithArgs(n int, list capture.List) capture.List {
	out := make(capture.List, 0, n+len(list))
	for i := 0; i < n; i++ {
		out = append(out, Cap(capture.UpvarID(1000+i), capture.ByValue, mir.IntTy{Bits: 32}))
	}
	return append(out, list...)
}

// Refine derives a child capture list from parent: each parent capture
// is either kept as-is or split into up to three finer captures whose
// paths extend the parent path with fresh field steps. Sibling order is
// preserved and every parent entry yields at least one child, so the
// result always satisfies the prefix-refinement relationship the matcher
// expects. Deterministic for a given rand source.
func Refine(r *rand.Rand, parent capture.List) capture.List {
	var child capture.List
	for _, pc := range parent {
		if r.Intn(2) == 0 {
			child = append(child, pc)
			continue
		}
		n := 1 + r.Intn(3)
		for f := 0; f < n; f++ {
			steps := make([]capture.Projection, 0, len(pc.Place.Projections)+1)
			steps = append(steps, pc.Place.Projections...)
			steps = append(steps, FieldStep(mir.Field(f), mir.IntTy{Bits: 32}))
			child = append(child, capture.Capture{
				Place: capture.Place{
					Base:        pc.Place.Base,
					Projections: steps,
					Ty:          mir.IntTy{Bits: 32},
				},
				Mode: pc.Mode,
			})
		}
	}
	return child
}
