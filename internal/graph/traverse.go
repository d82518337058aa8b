package graph

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// Reachable runs a breadth-first search from roots over edges accepted by
// follow and returns a visited flag per activity, indexed like
// AllActivities. Edges that do not resolve are never followed. Neighbors are
// queued in ascending id order; unknown roots are ignored.
func (g *Graph) Reachable(roots []string, follow func(models.CausalEdge) bool) []bool {
	visited := make([]bool, len(g.activities))
	queue := make([]int, 0, len(g.activities))

	start := make([]int, 0, len(roots))
	for _, id := range roots {
		if i, ok := g.Index(id); ok {
			start = append(start, i)
		}
	}
	sort.Ints(start)
	for _, i := range start {
		if !visited[i] {
			visited[i] = true
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, next := range g.successors(cur, follow) {
			if visited[next] {
				continue
			}
			visited[next] = true
			queue = append(queue, next)
		}
	}

	return visited
}

// successors returns the sorted, de-duplicated indexes reachable from the
// activity at position i in one step.
func (g *Graph) successors(i int, follow func(models.CausalEdge) bool) []int {
	var next []int
	seen := make(map[int]struct{})
	for _, p := range g.outgoing[g.activities[i].ID] {
		e := g.model.CausalEdges[p]
		if !g.Resolves(e) || (follow != nil && !follow(e)) {
			continue
		}
		j, _ := g.Index(e.Object)
		if _, dup := seen[j]; dup {
			continue
		}
		seen[j] = struct{}{}
		next = append(next, j)
	}
	sort.Ints(next)
	return next
}

// Components returns the weakly connected components of the activity graph,
// ignoring edge direction. Self-loops and dangling edges add no links. Each
// component is sorted by id and components are ordered by their first id.
func (g *Graph) Components() [][]string {
	ug := simple.NewUndirectedGraph()
	for i := range g.activities {
		ug.AddNode(simple.Node(int64(i)))
	}
	for _, e := range g.model.CausalEdges {
		if !g.Resolves(e) {
			continue
		}
		s, _ := g.Index(e.Subject)
		o, _ := g.Index(e.Object)
		ug.SetEdge(ug.NewEdge(simple.Node(int64(s)), simple.Node(int64(o))))
	}

	var out [][]string
	for _, cc := range topo.ConnectedComponents(ug) {
		ids := make([]int, 0, len(cc))
		for _, n := range cc {
			ids = append(ids, int(n.ID()))
		}
		sort.Ints(ids)

		component := make([]string, len(ids))
		for k, i := range ids {
			component[k] = g.activities[i].ID
		}
		out = append(out, component)
	}

	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

// ComponentCount returns len(Components()).
func (g *Graph) ComponentCount() int {
	return len(g.Components())
}
