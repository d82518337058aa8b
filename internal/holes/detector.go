// Package holes finds activities whose annotation or causal context is
// incomplete. Every check runs over every activity and edge; one activity
// can collect several findings. Detection never fails: malformed edges are
// reported, not rejected.
package holes

import (
	"fmt"
	"log/slog"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/graph"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

type Detector struct {
	cfg config.Analysis
	log *slog.Logger
}

func NewDetector(cfg config.Analysis, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	return &Detector{cfg: cfg, log: log}
}

// Detect returns the findings for g ordered by activity id, kind and detail.
// The result is never nil.
func (d *Detector) Detect(g *graph.Graph) []models.Finding {
	findings := []models.Finding{}
	findings = append(findings, d.checkActivities(g)...)
	findings = append(findings, d.checkEdges(g)...)
	findings = append(findings, d.checkOrphans(g)...)

	models.SortFindings(findings)

	d.log.Debug("hole detection finished",
		"model", g.ModelID(),
		"activities", g.Len(),
		"findings", len(findings))

	return findings
}

func (d *Detector) checkActivities(g *graph.Graph) []models.Finding {
	var findings []models.Finding
	for _, a := range g.AllActivities() {
		if a.EnabledBy == "" {
			findings = append(findings, models.Finding{
				ActivityID: a.ID,
				Kind:       models.MissingEnabler,
				Detail:     "activity has no enabled by relation",
			})
		}
		if a.EnabledBy != "" && d.cfg.IsPlaceholderEnabler(a.EnabledBy) {
			findings = append(findings, models.Finding{
				ActivityID: a.ID,
				Kind:       models.PlaceholderEnabler,
				Detail:     fmt.Sprintf("enabled by placeholder %s instead of a specific entity", describeEnabler(a)),
			})
		}
		if d.cfg.IsRootMolecularFunction(a.MolecularFunction.ID) {
			findings = append(findings, models.Finding{
				ActivityID: a.ID,
				Kind:       models.RootMolecularFunction,
				Detail:     fmt.Sprintf("molecular function %s was never refined", describeTerm(a.MolecularFunction)),
			})
		}
		if g.InDegree(a.ID) == 0 && g.OutDegree(a.ID) == 0 {
			findings = append(findings, models.Finding{
				ActivityID: a.ID,
				Kind:       models.NoCausalNeighbor,
				Detail:     "activity has no incoming or outgoing causal edge",
			})
		}
	}
	return findings
}

func (d *Detector) checkEdges(g *graph.Graph) []models.Finding {
	var findings []models.Finding
	for _, e := range g.Edges() {
		if e.IsSelfLoop() {
			findings = append(findings, models.Finding{
				ActivityID: e.Subject,
				Kind:       models.SelfLoop,
				Detail:     "edge " + describeEdge(e) + " points back at its subject",
			})
		}
		for _, id := range endpoints(e) {
			if g.Has(id) {
				continue
			}
			findings = append(findings, models.Finding{
				ActivityID: id,
				Kind:       models.DanglingEdgeReference,
				Detail:     "edge " + describeEdge(e) + " references unknown activity " + id,
			})
		}
	}
	return findings
}

// checkOrphans flags activities that no causal chain reaches. Roots are
// activities without a resolving incoming edge of any relation; the search
// from them follows resolving edges whose relation is on the causal
// allow-list.
func (d *Detector) checkOrphans(g *graph.Graph) []models.Finding {
	activities := g.AllActivities()

	var roots []string
	for _, a := range activities {
		if !hasResolvingIncoming(g, a.ID) {
			roots = append(roots, a.ID)
		}
	}

	visited := g.Reachable(roots, func(e models.CausalEdge) bool {
		return d.cfg.IsCausalRelation(e.Relation.ID, e.Relation.Label)
	})

	var findings []models.Finding
	for i, a := range activities {
		if visited[i] {
			continue
		}
		findings = append(findings, models.Finding{
			ActivityID: a.ID,
			Kind:       models.OrphanChain,
			Detail:     orphanDetail(g, a.ID),
		})
	}
	return findings
}

func hasResolvingIncoming(g *graph.Graph, id string) bool {
	for _, e := range g.IncomingEdges(id) {
		if g.Resolves(e) {
			return true
		}
	}
	return false
}

func orphanDetail(g *graph.Graph, id string) string {
	var relations []string
	seen := make(map[string]struct{})
	for _, e := range g.IncomingEdges(id) {
		if !g.Resolves(e) {
			continue
		}
		r := describeTerm(e.Relation)
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		relations = append(relations, r)
	}
	return fmt.Sprintf("no causal path from a root activity; reached only via %v", relations)
}

// endpoints returns the distinct ids an edge mentions.
func endpoints(e models.CausalEdge) []string {
	if e.IsSelfLoop() {
		return []string{e.Subject}
	}
	return []string{e.Subject, e.Object}
}

func describeEdge(e models.CausalEdge) string {
	return fmt.Sprintf("%s -[%s]-> %s", e.Subject, describeTerm(e.Relation), e.Object)
}

func describeEnabler(a models.Activity) string {
	return models.Term{ID: a.EnabledBy, Label: a.EnablerLabel}.String()
}

func describeTerm(t models.Term) string {
	if s := t.String(); s != "" {
		return s
	}
	return "<unset>"
}
