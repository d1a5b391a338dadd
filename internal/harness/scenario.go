package harness

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

// Scenario defines one conformance scenario for by-move body synthesis.
type Scenario struct {
	// Name uniquely identifies this scenario; golden files are stored
	// under it.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Kind is the child coroutine's closure kind: "call_once",
	// "call_mut", or "call".
	Kind string `yaml:"kind"`

	// NumArgs is the number of explicit call arguments; the child
	// captures these first by construction.
	NumArgs int `yaml:"num_args"`

	// ParentUnit and ChildUnit name the two units. Defaults are derived
	// from Name when empty.
	ParentUnit string `yaml:"parent_unit,omitempty"`
	ChildUnit  string `yaml:"child_unit,omitempty"`

	// ParentCaptures and ChildCaptures are the two capture lists.
	// ChildCaptures lists only the true upvars; the harness prepends
	// NumArgs synthetic argument captures.
	ParentCaptures []CaptureSpec `yaml:"parent_captures"`
	ChildCaptures  []CaptureSpec `yaml:"child_captures"`

	// Expect specifies the expected outcome.
	Expect ExpectClause `yaml:"expect"`
}

// CaptureSpec describes one capture entry.
type CaptureSpec struct {
	// Base is the captured upvar.
	Base int `yaml:"base"`

	// Mode is "by_value", "ref_shared", "ref_unique", or "ref_mut".
	Mode string `yaml:"mode"`

	// Ty is the type of the fully projected place, in dump notation
	// (e.g. "i32", "&mut Point", "(i32, bool)").
	Ty string `yaml:"ty"`

	// Path lists the projection steps applied to the upvar.
	Path []StepSpec `yaml:"path,omitempty"`
}

// StepSpec is one projection step of a capture path.
type StepSpec struct {
	// Kind is "field" or "deref"; refinement paths use nothing else.
	Kind string `yaml:"kind"`

	// Field is the field index when Kind is "field".
	Field int `yaml:"field,omitempty"`

	// Ty is the type the step projects to.
	Ty string `yaml:"ty,omitempty"`
}

// ExpectClause specifies the expected outcome of a scenario.
type ExpectClause struct {
	// Error, when set, is the expected error code (consistency or
	// input). Mutually exclusive with Remapping.
	Error string `yaml:"error,omitempty"`

	// Remapping lists the expected remapping rows, one per remapped
	// child field.
	Remapping []RemapSpec `yaml:"remapping,omitempty"`
}

// RemapSpec is one expected remapping row.
type RemapSpec struct {
	ChildField  int  `yaml:"child_field"`
	ParentField int  `yaml:"parent_field"`
	NeedsDeref  bool `yaml:"needs_deref,omitempty"`
	Extra       int  `yaml:"extra,omitempty"`
}

// Load reads and validates one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scenario: %w", err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}
	return &s, nil
}

// LoadDir loads every *.yaml scenario in dir, sorted by file name so
// test order is stable.
func LoadDir(dir string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("load scenarios: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, p := range paths {
		s, err := Load(p)
		if err != nil {
			return nil, err
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func (s *Scenario) validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	if _, err := parseKind(s.Kind); err != nil {
		return err
	}
	if s.NumArgs < 0 {
		return fmt.Errorf("num_args must be non-negative")
	}
	if s.Expect.Error != "" && len(s.Expect.Remapping) > 0 {
		return fmt.Errorf("expect.error and expect.remapping are mutually exclusive")
	}
	for i, c := range s.ParentCaptures {
		if err := c.validate(); err != nil {
			return fmt.Errorf("parent capture %d: %w", i, err)
		}
	}
	for i, c := range s.ChildCaptures {
		if err := c.validate(); err != nil {
			return fmt.Errorf("child capture %d: %w", i, err)
		}
	}
	return nil
}

func (c CaptureSpec) validate() error {
	if _, err := parseMode(c.Mode); err != nil {
		return err
	}
	if _, err := parseTy(c.Ty); err != nil {
		return err
	}
	for i, st := range c.Path {
		switch st.Kind {
		case "field", "deref":
		default:
			return fmt.Errorf("path step %d: unknown kind %q", i, st.Kind)
		}
		if st.Ty != "" {
			if _, err := parseTy(st.Ty); err != nil {
				return fmt.Errorf("path step %d: %w", i, err)
			}
		}
	}
	return nil
}

func parseKind(s string) (mir.ClosureKind, error) {
	switch s {
	case "call_once":
		return mir.CallOnce, nil
	case "call_mut":
		return mir.CallMut, nil
	case "call":
		return mir.CallImmut, nil
	default:
		return 0, fmt.Errorf("unknown closure kind %q", s)
	}
}

func parseMode(s string) (capture.Mode, error) {
	switch s {
	case "by_value":
		return capture.ByValue, nil
	case "ref_shared":
		return capture.ByRefShared, nil
	case "ref_unique":
		return capture.ByRefUnique, nil
	case "ref_mut":
		return capture.ByRefMut, nil
	default:
		return 0, fmt.Errorf("unknown capture mode %q", s)
	}
}

// parseTy parses the dump notation for the types scenarios need:
// integers, bool, unit, references, tuples, and bare named types.
func parseTy(s string) (mir.Ty, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "":
		return nil, fmt.Errorf("empty type")
	case s == "bool":
		return mir.BoolTy{}, nil
	case s == "()":
		return mir.UnitTy{}, nil
	case strings.HasPrefix(s, "&mut "):
		elem, err := parseTy(s[len("&mut "):])
		if err != nil {
			return nil, err
		}
		return mir.RefTy{Mut: mir.Mut, Elem: elem}, nil
	case strings.HasPrefix(s, "&"):
		elem, err := parseTy(s[1:])
		if err != nil {
			return nil, err
		}
		return mir.RefTy{Mut: mir.Not, Elem: elem}, nil
	case strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")"):
		var elems []mir.Ty
		for _, part := range strings.Split(s[1:len(s)-1], ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			e, err := parseTy(part)
			if err != nil {
				return nil, err
			}
			elems = append(elems, e)
		}
		return mir.TupleTy{Elems: elems}, nil
	case s[0] == 'i' || s[0] == 'u':
		var bits int
		if _, err := fmt.Sscanf(s[1:], "%d", &bits); err == nil && fmt.Sprintf("%c%d", s[0], bits) == s {
			return mir.IntTy{Bits: bits, Unsigned: s[0] == 'u'}, nil
		}
		return mir.AdtTy{Name: s}, nil
	default:
		return mir.AdtTy{Name: s}, nil
	}
}

func (c CaptureSpec) toCapture() (capture.Capture, error) {
	mode, err := parseMode(c.Mode)
	if err != nil {
		return capture.Capture{}, err
	}
	ty, err := parseTy(c.Ty)
	if err != nil {
		return capture.Capture{}, err
	}

	steps := make([]capture.Projection, 0, len(c.Path))
	for _, st := range c.Path {
		stepTy := ty
		if st.Ty != "" {
			stepTy, err = parseTy(st.Ty)
			if err != nil {
				return capture.Capture{}, err
			}
		}
		switch st.Kind {
		case "field":
			steps = append(steps, capture.Projection{Kind: capture.FieldKind, Ty: stepTy, Field: mir.Field(st.Field)})
		case "deref":
			steps = append(steps, capture.Projection{Kind: capture.DerefKind, Ty: stepTy})
		}
	}

	return capture.Capture{
		Place: capture.Place{Base: capture.UpvarID(c.Base), Projections: steps, Ty: ty},
		Mode:  mode,
	}, nil
}

func toList(specs []CaptureSpec) (capture.List, error) {
	list := make(capture.List, 0, len(specs))
	for i, spec := range specs {
		c, err := spec.toCapture()
		if err != nil {
			return nil, fmt.Errorf("capture %d: %w", i, err)
		}
		list = append(list, c)
	}
	return list, nil
}
