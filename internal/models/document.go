// Package models defines the core data structures shared by the loader,
// the analysis packages and the report layer.
package models

// Document is a GO-CAM model as serialized by Minerva/Noctua.
type Document struct {
	ID          string       `json:"id"`
	Annotations []Annotation `json:"annotations,omitempty"`
	Individuals []Individual `json:"individuals"`
	Facts       []Fact       `json:"facts"`
}

type Annotation struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	ValueType string `json:"value-type,omitempty"`
}

type Individual struct {
	ID          string           `json:"id"`
	Types       []IndividualType `json:"type"`
	RootTypes   []IndividualType `json:"root-type,omitempty"`
	Annotations []Annotation     `json:"annotations,omitempty"`
}

type IndividualType struct {
	Type  string `json:"type"`
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

type Fact struct {
	Subject       string       `json:"subject"`
	Object        string       `json:"object"`
	Property      string       `json:"property"`
	PropertyLabel string       `json:"property-label,omitempty"`
	Annotations   []Annotation `json:"annotations,omitempty"`
}

// Title returns the value of the first "title" annotation.
func (d *Document) Title() string {
	for _, a := range d.Annotations {
		if a.Key == "title" {
			return a.Value
		}
	}
	return ""
}

// Individual returns the individual with the given id.
func (d *Document) Individual(id string) (*Individual, bool) {
	for i := range d.Individuals {
		if d.Individuals[i].ID == id {
			return &d.Individuals[i], true
		}
	}
	return nil, false
}

// PrimaryType is the first asserted type, which carries the term the
// individual instantiates. Individuals without types return a zero value.
func (ind *Individual) PrimaryType() IndividualType {
	if len(ind.Types) == 0 {
		return IndividualType{}
	}
	return ind.Types[0]
}

// HasRootType reports whether termID appears among the inferred root types.
func (ind *Individual) HasRootType(termID string) bool {
	for _, t := range ind.RootTypes {
		if t.ID == termID {
			return true
		}
	}
	return false
}
