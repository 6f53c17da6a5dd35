package models

import (
	"slices"
	"strconv"
)

// TemplateMilestone defines one checklist item of the shared template.
// Jobs copy title, phase and order by value; they never point back here.
type TemplateMilestone struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Phase string `json:"phase"`
	Order int    `json:"order"`
}

// PhaseWeight is the share a phase gets in weighted progress mode
type PhaseWeight struct {
	Phase  string  `json:"phase"`
	Weight float64 `json:"weight"`
}

// AppData is the single persisted document
type AppData struct {
	Jobs         []Job               `json:"jobs"`
	Template     []TemplateMilestone `json:"template"`
	PhaseWeights []PhaseWeight       `json:"phaseWeights"`
	WeightedMode bool                `json:"weightedMode"`
}

// Job returns the job with the given id, or nil
func (d *AppData) Job(id string) *Job {
	for i := range d.Jobs {
		if d.Jobs[i].ID == id {
			return &d.Jobs[i]
		}
	}
	return nil
}

// DefaultPhaseWeight is the weight given to a newly added phase
const DefaultPhaseWeight = 10

// DefaultPhaseWeights returns the weights shipped with a fresh install
func DefaultPhaseWeights() []PhaseWeight {
	return []PhaseWeight{
		{Phase: "Kickoff", Weight: 10},
		{Phase: "Engineering", Weight: 20},
		{Phase: "Fabrication", Weight: 35},
		{Phase: "Finishing", Weight: 10},
		{Phase: "Tile", Weight: 15},
		{Phase: "Shipping", Weight: 10},
	}
}

var defaultTemplate = [][2]string{
	{"Kickoff", "Payment received"},
	{"Kickoff", "Job opened / PO created"},
	{"Engineering", "Drawings sent to customer"},
	{"Engineering", "Customer approval received"},
	{"Engineering", "Final drawings locked"},
	{"Fabrication", "Fabrication started"},
	{"Fabrication", "Major fabrication complete"},
	{"Fabrication", "Pressure/leak test passed"},
	{"Finishing", "Passivation complete"},
	{"Finishing", "Foam complete"},
	{"Tile", "Tile materials received"},
	{"Tile", "Tile started"},
	{"Tile", "Tile complete"},
	{"Shipping", "Final QC complete"},
	{"Shipping", "Shipping scheduled"},
	{"Shipping", "Packed & loaded"},
	{"Shipping", "Shipped"},
	{"Shipping", "Closeout complete"},
}

// DefaultTemplate returns a fresh copy of the built-in milestone template
func DefaultTemplate() []TemplateMilestone {
	out := make([]TemplateMilestone, len(defaultTemplate))
	for i, e := range defaultTemplate {
		out[i] = TemplateMilestone{
			ID:    "tmpl-" + strconv.Itoa(i+1),
			Phase: e[0],
			Title: e[1],
			Order: i,
		}
	}
	return out
}

// DefaultAppData is the document used when nothing (or nothing readable) is stored
func DefaultAppData() AppData {
	return AppData{
		Jobs:         []Job{},
		Template:     DefaultTemplate(),
		PhaseWeights: DefaultPhaseWeights(),
		WeightedMode: false,
	}
}

// CloneTemplate copies a template slice
func CloneTemplate(t []TemplateMilestone) []TemplateMilestone {
	return slices.Clone(t)
}

