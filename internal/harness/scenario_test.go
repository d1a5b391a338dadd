package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/mirpass/internal/capture"
	"github.com/roach88/mirpass/internal/mir"
)

func TestParseTy(t *testing.T) {
	tests := []struct {
		in   string
		want mir.Ty
	}{
		{"i32", mir.IntTy{Bits: 32}},
		{"u64", mir.IntTy{Bits: 64, Unsigned: true}},
		{"bool", mir.BoolTy{}},
		{"()", mir.UnitTy{}},
		{"&Point", mir.RefTy{Mut: mir.Not, Elem: mir.AdtTy{Name: "Point"}}},
		{"&mut i32", mir.RefTy{Mut: mir.Mut, Elem: mir.IntTy{Bits: 32}}},
		{"(i32, bool)", mir.TupleTy{Elems: []mir.Ty{mir.IntTy{Bits: 32}, mir.BoolTy{}}}},
		{"Point", mir.AdtTy{Name: "Point"}},
		{"item", mir.AdtTy{Name: "item"}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseTy(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseTy("")
	assert.Error(t, err)
}

func TestParseKindAndMode(t *testing.T) {
	k, err := parseKind("call_once")
	require.NoError(t, err)
	assert.Equal(t, mir.CallOnce, k)

	k, err = parseKind("call_mut")
	require.NoError(t, err)
	assert.Equal(t, mir.CallMut, k)

	k, err = parseKind("call")
	require.NoError(t, err)
	assert.Equal(t, mir.CallImmut, k)

	_, err = parseKind("fnptr")
	assert.Error(t, err)

	m, err := parseMode("ref_mut")
	require.NoError(t, err)
	assert.Equal(t, capture.ByRefMut, m)

	_, err = parseMode("raw")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidScenarios(t *testing.T) {
	write := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "scenario.yaml")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		return path
	}

	tests := []struct {
		name    string
		content string
	}{
		{"missing name", "kind: call_mut\n"},
		{"bad kind", "name: x\nkind: sometimes\n"},
		{"negative args", "name: x\nkind: call_mut\nnum_args: -1\n"},
		{
			"error and remapping together",
			"name: x\nkind: call_mut\nexpect:\n  error: BOOM\n  remapping:\n    - child_field: 0\n      parent_field: 0\n",
		},
		{
			"bad capture mode",
			"name: x\nkind: call_mut\nparent_captures:\n  - base: 0\n    mode: raw\n    ty: i32\n",
		},
		{
			"bad path step kind",
			"name: x\nkind: call_mut\nchild_captures:\n  - base: 0\n    mode: by_value\n    ty: i32\n    path:\n      - { kind: index }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(write(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestLoadDirSortsByFileName(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)

	var names []string
	for _, s := range scenarios {
		names = append(names, s.Name)
	}
	assert.IsNonDecreasing(t, names)
}
