package models

// Model is one GO-CAM document reduced to its activity graph. It is built
// once by the parser and treated as read-only afterwards.
type Model struct {
	ID          string       `json:"id" yaml:"id"`
	Title       string       `json:"title" yaml:"title"`
	Activities  []Activity   `json:"activities" yaml:"activities"`
	CausalEdges []CausalEdge `json:"causal_edges" yaml:"causal_edges"`
}

type Term struct {
	ID    string `json:"id,omitempty" yaml:"id,omitempty"`
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
}

// Key identifies a term for tallying: the id when present, else the label.
func (t Term) Key() string {
	if t.ID != "" {
		return t.ID
	}
	return t.Label
}

func (t Term) String() string {
	switch {
	case t.ID != "" && t.Label != "":
		return t.Label + " (" + t.ID + ")"
	case t.ID != "":
		return t.ID
	default:
		return t.Label
	}
}

// EnablerKind classifies the entity an activity is enabled by.
type EnablerKind string

const (
	EnablerNone            EnablerKind = "none"
	EnablerGene            EnablerKind = "gene"
	EnablerChemical        EnablerKind = "chemical"
	EnablerComplex         EnablerKind = "complex"
	EnablerModifiedProtein EnablerKind = "modified_protein"
	EnablerUnknown         EnablerKind = "unknown"
	EnablerPlaceholder     EnablerKind = "placeholder"
)

// Activity is a molecular-function enactment. An empty EnabledBy means the
// activity has no enabler.
type Activity struct {
	ID                string      `json:"id" yaml:"id"`
	EnabledBy         string      `json:"enabled_by,omitempty" yaml:"enabled_by,omitempty"`
	EnablerLabel      string      `json:"enabler_label,omitempty" yaml:"enabler_label,omitempty"`
	EnablerKind       EnablerKind `json:"enabler_kind" yaml:"enabler_kind"`
	MolecularFunction Term        `json:"molecular_function" yaml:"molecular_function"`
	LocatedIn         []Term      `json:"located_in,omitempty" yaml:"located_in,omitempty"`
	OccursIn          []Term      `json:"occurs_in,omitempty" yaml:"occurs_in,omitempty"`
	PartOf            *Term       `json:"part_of,omitempty" yaml:"part_of,omitempty"`
	HasInput          []Term      `json:"has_input,omitempty" yaml:"has_input,omitempty"`
	HasOutput         []Term      `json:"has_output,omitempty" yaml:"has_output,omitempty"`
}

// CausalEdge is a directed relation between two activities. Subject and
// Object are activity ids and may not resolve; the hole detector reports
// such edges instead of rejecting them.
type CausalEdge struct {
	Subject  string `json:"subject" yaml:"subject"`
	Object   string `json:"object" yaml:"object"`
	Relation Term   `json:"relation" yaml:"relation"`
}

// IsSelfLoop reports whether the edge starts and ends at the same activity.
func (e CausalEdge) IsSelfLoop() bool {
	return e.Subject == e.Object
}
