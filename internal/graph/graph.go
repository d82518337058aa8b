// Package graph indexes a GO-CAM model for read-only queries and provides
// the traversals shared by the hole detector and the stats aggregator.
//
// A Graph never modifies the model it was built from and holds no locks;
// it is safe for concurrent readers once New returns.
package graph

import (
	"fmt"
	"sort"

	"github.com/pombase/pombase-gocam-tool/internal/models"
)

type Graph struct {
	model      *models.Model
	activities []models.Activity // sorted by id
	index      map[string]int    // activity id -> position in activities
	outgoing   map[string][]int  // subject id -> edge positions, document order
	incoming   map[string][]int  // object id -> edge positions, document order
}

// New indexes m. It fails with models.ErrMalformedModel when an activity id
// is empty or appears more than once.
func New(m *models.Model) (*Graph, error) {
	g := &Graph{
		model:      m,
		activities: make([]models.Activity, len(m.Activities)),
		index:      make(map[string]int, len(m.Activities)),
		outgoing:   make(map[string][]int),
		incoming:   make(map[string][]int),
	}

	copy(g.activities, m.Activities)
	sort.SliceStable(g.activities, func(i, j int) bool {
		return g.activities[i].ID < g.activities[j].ID
	})

	for i, a := range g.activities {
		if a.ID == "" {
			return nil, fmt.Errorf("%w: activity without id", models.ErrMalformedModel)
		}
		if _, dup := g.index[a.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate activity id %q", models.ErrMalformedModel, a.ID)
		}
		g.index[a.ID] = i
	}

	for i, e := range m.CausalEdges {
		g.outgoing[e.Subject] = append(g.outgoing[e.Subject], i)
		g.incoming[e.Object] = append(g.incoming[e.Object], i)
	}

	return g, nil
}

// ModelID returns the id of the underlying model.
func (g *Graph) ModelID() string { return g.model.ID }

// Title returns the title of the underlying model.
func (g *Graph) Title() string { return g.model.Title }

// Len returns the number of activities.
func (g *Graph) Len() int { return len(g.activities) }

// Activity looks up an activity by id. Unknown ids return an error
// wrapping models.ErrLookupMiss.
func (g *Graph) Activity(id string) (models.Activity, error) {
	i, ok := g.index[id]
	if !ok {
		return models.Activity{}, fmt.Errorf("%w: %q", models.ErrLookupMiss, id)
	}
	return g.activities[i], nil
}

// Has reports whether id names an activity of the model.
func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the stable integer assigned to an activity id: its position
// in AllActivities.
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// AllActivities returns every activity sorted by id.
func (g *Graph) AllActivities() []models.Activity {
	out := make([]models.Activity, len(g.activities))
	copy(out, g.activities)
	return out
}

// Edges returns every causal edge in document order.
func (g *Graph) Edges() []models.CausalEdge {
	out := make([]models.CausalEdge, len(g.model.CausalEdges))
	copy(out, g.model.CausalEdges)
	return out
}

// OutgoingEdges returns the edges whose subject is id, in document order.
// Dangling ids are accepted and return the edges that mention them.
func (g *Graph) OutgoingEdges(id string) []models.CausalEdge {
	return g.collect(g.outgoing[id])
}

// IncomingEdges returns the edges whose object is id, in document order.
func (g *Graph) IncomingEdges(id string) []models.CausalEdge {
	return g.collect(g.incoming[id])
}

func (g *Graph) OutDegree(id string) int { return len(g.outgoing[id]) }

func (g *Graph) InDegree(id string) int { return len(g.incoming[id]) }

// Resolves reports whether both endpoints of e are activities of the model
// and e is not a self-loop. Only such edges take part in traversals.
func (g *Graph) Resolves(e models.CausalEdge) bool {
	if e.IsSelfLoop() {
		return false
	}
	return g.Has(e.Subject) && g.Has(e.Object)
}

func (g *Graph) collect(positions []int) []models.CausalEdge {
	out := make([]models.CausalEdge, 0, len(positions))
	for _, p := range positions {
		out = append(out, g.model.CausalEdges[p])
	}
	return out
}
