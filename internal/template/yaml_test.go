package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLRoundTrip(t *testing.T) {
	src := newTestEditor()
	data, err := src.ExportYAML()
	require.NoError(t, err)

	dst := newTestEditor()
	dst.Reset()
	require.NoError(t, dst.ImportYAML(data))

	assert.Equal(t, src.Phases(), dst.Phases())
	assert.Equal(t, titles(src.Sorted()), titles(dst.Sorted()))
	assert.Equal(t, src.Weights(), dst.Weights())
}

func TestImportYAML(t *testing.T) {
	e := newTestEditor()
	doc := `
phases:
  - name: Prep
    weight: 25
    milestones:
      - Measure
      - Quote
  - name: Build
    weight: 75
    milestones: [Weld]
  - name: Later
    weight: 0
`
	require.NoError(t, e.ImportYAML([]byte(doc)))

	assert.Equal(t, []string{"Prep", "Build", "Later"}, e.Phases())
	sorted := e.Sorted()
	require.Len(t, sorted, 3)
	assert.Equal(t, []string{"Measure", "Quote", "Weld"}, titles(sorted))
	assert.Equal(t, 2, sorted[2].Order)
	assert.NotEmpty(t, sorted[0].ID)
	w, ok := e.Weight("Later")
	assert.True(t, ok)
	assert.Equal(t, 0.0, w)
}

func TestImportYAMLRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not yaml", "phases: [unclosed"},
		{"no phases", "phases: []"},
		{"empty phase name", "phases:\n  - name: ''\n    milestones: [A]"},
		{"duplicate phase", "phases:\n  - name: A\n  - name: A"},
		{"negative weight", "phases:\n  - name: A\n    weight: -1"},
		{"blank milestone", "phases:\n  - name: A\n    milestones: ['  ']"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor()
			before := e.Template()

			assert.Error(t, e.ImportYAML([]byte(tt.doc)))
			assert.Equal(t, before, e.Template())
		})
	}
}
