package template

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/balkashynov/jobtrack/internal/models"
)

func newTestEditor() *Editor {
	n := 0
	return NewEditor(models.DefaultTemplate(), models.DefaultPhaseWeights(), func() string {
		n++
		return fmt.Sprintf("tmpl-new-%d", n)
	})
}

func titles(tmpl []models.TemplateMilestone) []string {
	var out []string
	for _, t := range tmpl {
		out = append(out, t.Title)
	}
	return out
}

func TestEditorDoesNotShareInput(t *testing.T) {
	tmpl := models.DefaultTemplate()
	e := NewEditor(tmpl, nil, func() string { return "x" })

	require.True(t, e.RemoveMilestone("tmpl-1"))

	assert.Equal(t, "tmpl-1", tmpl[0].ID)
	assert.Len(t, e.Template(), len(tmpl)-1)
}

func TestPhasesInFirstAppearanceOrder(t *testing.T) {
	e := newTestEditor()
	require.NoError(t, e.AddPhase("Install"))

	assert.Equal(t, []string{"Kickoff", "Engineering", "Fabrication", "Finishing", "Tile", "Shipping", "Install"}, e.Phases())
}

func TestAddPhase(t *testing.T) {
	e := newTestEditor()

	require.NoError(t, e.AddPhase("  Install  "))
	w, ok := e.Weight("Install")
	assert.True(t, ok)
	assert.Equal(t, float64(models.DefaultPhaseWeight), w)

	assert.ErrorIs(t, e.AddPhase("Install"), ErrPhaseExists)
	assert.ErrorIs(t, e.AddPhase("Kickoff"), ErrPhaseExists)
	assert.ErrorIs(t, e.AddPhase("   "), ErrEmptyName)
}

func TestRemovePhaseCascades(t *testing.T) {
	e := newTestEditor()

	require.True(t, e.RemovePhase("Tile"))

	assert.Empty(t, e.Milestones("Tile"))
	_, ok := e.Weight("Tile")
	assert.False(t, ok)
	assert.Len(t, e.Template(), 15)
	assert.False(t, e.RemovePhase("Tile"))
}

func TestAddMilestoneSortsLastOverall(t *testing.T) {
	e := newTestEditor()

	added, err := e.AddMilestone("Kickoff", "Deposit invoiced")
	require.NoError(t, err)

	assert.Equal(t, 18, added.Order) // default orders run 0..17
	sorted := e.Sorted()
	assert.Equal(t, "Deposit invoiced", sorted[len(sorted)-1].Title)
	assert.Equal(t, "Deposit invoiced", e.Milestones("Kickoff")[2].Title)
}

func TestAddMilestoneToEmptyTemplate(t *testing.T) {
	e := NewEditor(nil, nil, func() string { return "only" })

	added, err := e.AddMilestone("P", "First")
	require.NoError(t, err)
	assert.Equal(t, 1, added.Order)

	_, err = e.AddMilestone("P", " ")
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestMoveSwapsWithNeighbour(t *testing.T) {
	e := newTestEditor()

	require.True(t, e.Move("tmpl-2", Up))

	sorted := e.Sorted()
	assert.Equal(t, []string{"Job opened / PO created", "Payment received"}, titles(sorted[:2]))
	assert.Equal(t, 0, sorted[0].Order)
	assert.Equal(t, 1, sorted[1].Order)
	// nothing else renumbered
	for i, m := range sorted[2:] {
		assert.Equal(t, i+2, m.Order)
	}
}

func TestMoveAcrossPhaseBoundary(t *testing.T) {
	e := newTestEditor()

	// "Payment received" is first overall and cannot move up
	assert.False(t, e.Move("tmpl-1", Up))
	// last of Kickoff moving down swaps with first of Engineering
	require.True(t, e.Move("tmpl-2", Down))

	sorted := e.Sorted()
	assert.Equal(t, "Drawings sent to customer", sorted[1].Title)
	assert.Equal(t, "Job opened / PO created", sorted[2].Title)
	assert.False(t, e.Move("tmpl-18", Down))
	assert.False(t, e.Move("missing", Down))
}

func TestMoveUpThenDownRestores(t *testing.T) {
	e := newTestEditor()
	before := e.Sorted()

	require.True(t, e.Move("tmpl-7", Up))
	require.True(t, e.Move("tmpl-7", Down))

	assert.Equal(t, before, e.Sorted())
}

func TestSetWeight(t *testing.T) {
	e := newTestEditor()

	require.NoError(t, e.SetWeight("Fabrication", 50))
	w, _ := e.Weight("Fabrication")
	assert.Equal(t, 50.0, w)

	assert.ErrorIs(t, e.SetWeight("Fabrication", -1), ErrNegativeWeight)
	assert.ErrorIs(t, e.SetWeight("Nope", 5), ErrUnknownPhase)

	e.RemovePhase("Tile")
	_, err := e.AddMilestone("Tile", "Regrout")
	require.NoError(t, err)
	require.NoError(t, e.SetWeight("Tile", 7))
	w, ok := e.Weight("Tile")
	assert.True(t, ok)
	assert.Equal(t, 7.0, w)
}

func TestTotalWeight(t *testing.T) {
	assert.Equal(t, 100.0, newTestEditor().TotalWeight())
}

func TestReset(t *testing.T) {
	e := newTestEditor()
	e.RemovePhase("Kickoff")
	e.Reset()

	assert.Equal(t, models.DefaultTemplate(), e.Template())
	assert.Equal(t, models.DefaultPhaseWeights(), e.Weights())
}
