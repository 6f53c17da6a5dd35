package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/balkashynov/jobtrack/internal/models"
)

func jobWith(items ...struct {
	phase string
	done  bool
}) models.Job {
	var j models.Job
	for i, s := range items {
		j.Milestones = append(j.Milestones, models.Milestone{
			ID:         string(rune('a' + i)),
			Phase:      s.phase,
			Order:      i,
			IsComplete: s.done,
		})
	}
	return j
}

type ms = struct {
	phase string
	done  bool
}

func TestCalcEmptyJobIsZero(t *testing.T) {
	assert.Equal(t, 0, Calc(models.Job{}, false, nil))
	assert.Equal(t, 0, Calc(models.Job{}, true, models.DefaultPhaseWeights()))
}

func TestCalcFlat(t *testing.T) {
	tests := []struct {
		name  string
		total int
		done  int
		want  int
	}{
		{"none done", 4, 0, 0},
		{"all done", 4, 4, 100},
		{"three of seven", 7, 3, 43},
		{"one of eight rounds half up", 8, 1, 13},
		{"three of eight rounds half up", 8, 3, 38},
		{"one of three", 3, 1, 33},
		{"two of three", 3, 2, 67},
		{"one of two hundred", 200, 1, 1},
		{"one of two hundred one", 201, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var items []ms
			for i := 0; i < tt.total; i++ {
				items = append(items, ms{"P", i < tt.done})
			}
			assert.Equal(t, tt.want, Calc(jobWith(items...), false, nil))
		})
	}
}

func TestCalcWeighted(t *testing.T) {
	weights := []models.PhaseWeight{{Phase: "A", Weight: 10}, {Phase: "B", Weight: 20}}
	job := jobWith(
		ms{"A", true}, ms{"A", false},
		ms{"B", true}, ms{"B", true}, ms{"B", true},
	)

	// earned = 10*0.5 + 20*1 = 25 of 30
	assert.Equal(t, 83, Calc(job, true, weights))
	// flat mode ignores weights: 4 of 5
	assert.Equal(t, 80, Calc(job, false, weights))
}

func TestCalcWeightedHalfBoundary(t *testing.T) {
	weights := []models.PhaseWeight{{Phase: "A", Weight: 1}}
	var items []ms
	for i := 0; i < 8; i++ {
		items = append(items, ms{"A", i == 0})
	}
	assert.Equal(t, 13, Calc(jobWith(items...), true, weights))
}

func TestCalcWeightedZeroTotalWeight(t *testing.T) {
	job := jobWith(ms{"X", true}, ms{"Y", false})

	assert.Equal(t, 0, Calc(job, true, nil))
	assert.Equal(t, 0, Calc(job, true, []models.PhaseWeight{{Phase: "X", Weight: 0}}))
	assert.Equal(t, 0, Calc(job, true, []models.PhaseWeight{{Phase: "Other", Weight: 50}}))
}

func TestCalcWeightedMissingPhaseContributesNothing(t *testing.T) {
	weights := []models.PhaseWeight{{Phase: "A", Weight: 40}}
	job := jobWith(ms{"A", true}, ms{"A", true}, ms{"Unweighted", false})

	assert.Equal(t, 100, Calc(job, true, weights))
}

func TestCalcWeightedNegativeWeightIgnored(t *testing.T) {
	weights := []models.PhaseWeight{{Phase: "A", Weight: 10}, {Phase: "B", Weight: -30}}
	job := jobWith(ms{"A", true}, ms{"B", false})

	assert.Equal(t, 100, Calc(job, true, weights))
}

func TestCalcWeightedDuplicateWeightLastWins(t *testing.T) {
	weights := []models.PhaseWeight{
		{Phase: "A", Weight: 0},
		{Phase: "B", Weight: 10},
		{Phase: "A", Weight: 10},
	}
	job := jobWith(ms{"A", true}, ms{"B", false})

	assert.Equal(t, 50, Calc(job, true, weights))
}

func TestCalcStaysInRange(t *testing.T) {
	weights := models.DefaultPhaseWeights()
	tmpl := models.DefaultTemplate()
	for done := 0; done <= len(tmpl); done++ {
		var job models.Job
		for i, e := range tmpl {
			job.Milestones = append(job.Milestones, models.Milestone{
				ID: e.ID, Phase: e.Phase, Title: e.Title, Order: e.Order, IsComplete: i < done,
			})
		}
		for _, weighted := range []bool{false, true} {
			got := Calc(job, weighted, weights)
			assert.GreaterOrEqual(t, got, 0)
			assert.LessOrEqual(t, got, 100)
		}
	}
}

func TestModeByJob(t *testing.T) {
	a := jobWith(ms{"A", true}, ms{"A", false})
	a.ID = "a"
	b := jobWith(ms{"B", true})
	b.ID = "b"

	got := Mode{Weighted: true, Weights: []models.PhaseWeight{{Phase: "A", Weight: 1}}}.ByJob([]models.Job{a, b})

	assert.Equal(t, map[string]int{"a": 50, "b": 0}, got)
}
