// Package stats summarizes the structure of a GO-CAM model: activity and
// edge tallies by term, degree histograms and the number of weakly
// connected components. Only raw counts are produced.
package stats

import (
	"log/slog"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/graph"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// unknownTerm is the tally key for terms with neither id nor label.
const unknownTerm = "unknown"

type Aggregator struct {
	cfg config.Analysis
	log *slog.Logger
}

func NewAggregator(cfg config.Analysis, log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{cfg: cfg, log: log}
}

// Summarize walks g once for tallies and once more for components.
func (a *Aggregator) Summarize(g *graph.Graph) models.StatsSummary {
	s := models.StatsSummary{
		ModelID:                 g.ModelID(),
		ActivitiesByFunction:    map[string]int{},
		EdgesByRelation:         map[string]int{},
		InDegree:                map[int]int{},
		OutDegree:               map[int]int{},
		ActivitiesByEnablerKind: map[string]int{},
		ActivitiesByLocation:    map[string]int{},
		ActivitiesByProcess:     map[string]int{},
	}

	for _, act := range g.AllActivities() {
		s.ActivityCount++
		s.ActivitiesByFunction[termKey(act.MolecularFunction)]++
		s.InDegree[g.InDegree(act.ID)]++
		s.OutDegree[g.OutDegree(act.ID)]++

		kind := act.EnablerKind
		if kind == "" {
			kind = a.cfg.EnablerKindOf(act.EnabledBy)
		}
		s.ActivitiesByEnablerKind[string(kind)]++

		for _, loc := range locations(act) {
			s.ActivitiesByLocation[loc]++
		}
		if act.PartOf != nil {
			s.ActivitiesByProcess[termKey(*act.PartOf)]++
		}
	}

	for _, e := range g.Edges() {
		s.EdgeCount++
		s.EdgesByRelation[termKey(e.Relation)]++
	}

	s.ComponentCount = g.ComponentCount()

	a.log.Debug("stats aggregated",
		"model", s.ModelID,
		"activities", s.ActivityCount,
		"edges", s.EdgeCount,
		"components", s.ComponentCount)

	return s
}

// locations returns the distinct location terms of an activity, so an
// activity both located in and occurring in the same compartment is
// counted once for it.
func locations(act models.Activity) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, group := range [][]models.Term{act.LocatedIn, act.OccursIn} {
		for _, t := range group {
			k := termKey(t)
			if _, dup := seen[k]; dup {
				continue
			}
			seen[k] = struct{}{}
			out = append(out, k)
		}
	}
	return out
}

func termKey(t models.Term) string {
	if k := t.Key(); k != "" {
		return k
	}
	return unknownTerm
}
