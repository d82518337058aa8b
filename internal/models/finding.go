package models

import (
	"fmt"
	"sort"
)

// HoleKind is the closed set of defects the hole detector reports. The
// declaration order is the secondary sort key of findings.
type HoleKind int

const (
	MissingEnabler HoleKind = iota + 1
	RootMolecularFunction
	NoCausalNeighbor
	DanglingEdgeReference
	SelfLoop
	OrphanChain
	PlaceholderEnabler
)

var holeKindNames = map[HoleKind]string{
	MissingEnabler:        "MissingEnabler",
	RootMolecularFunction: "RootMolecularFunction",
	NoCausalNeighbor:      "NoCausalNeighbor",
	DanglingEdgeReference: "DanglingEdgeReference",
	SelfLoop:              "SelfLoop",
	OrphanChain:           "OrphanChain",
	PlaceholderEnabler:    "PlaceholderEnabler",
}

// HoleKinds lists every kind in declaration order.
func HoleKinds() []HoleKind {
	return []HoleKind{
		MissingEnabler,
		RootMolecularFunction,
		NoCausalNeighbor,
		DanglingEdgeReference,
		SelfLoop,
		OrphanChain,
		PlaceholderEnabler,
	}
}

func (k HoleKind) String() string {
	if name, ok := holeKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("HoleKind(%d)", int(k))
}

func (k HoleKind) MarshalText() ([]byte, error) {
	if _, ok := holeKindNames[k]; !ok {
		return nil, fmt.Errorf("unknown hole kind %d", int(k))
	}
	return []byte(k.String()), nil
}

func (k *HoleKind) UnmarshalText(text []byte) error {
	kind, err := ParseHoleKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// ParseHoleKind maps a kind name back to its value.
func ParseHoleKind(name string) (HoleKind, error) {
	for _, k := range HoleKinds() {
		if holeKindNames[k] == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown hole kind %q", name)
}

// Finding is one defect attached to an activity id. For dangling edge
// references ActivityID is the id that failed to resolve.
type Finding struct {
	ActivityID string   `json:"activity_id" yaml:"activity_id"`
	Kind       HoleKind `json:"kind" yaml:"kind"`
	Detail     string   `json:"detail" yaml:"detail"`
}

// SortFindings orders findings by activity id, then kind, then detail.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.ActivityID != b.ActivityID {
			return a.ActivityID < b.ActivityID
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Detail < b.Detail
	})
}
