package parser

import (
	"log/slog"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// Relations folded into the subject activity instead of becoming edges.
// Facts may carry the relation id, the label, or both.
const (
	relEnabledBy = "RO:0002333"
	relHasInput  = "RO:0002233"
	relHasOutput = "RO:0002234"
	relLocatedIn = "RO:0001025"
	relOccursIn  = "BFO:0000066"
	relPartOf    = "BFO:0000050"
)

// molecularFunctionRoot is the GO root every activity individual is
// inferred to instantiate.
const molecularFunctionRoot = "GO:0003674"

var relationLabels = map[string]string{
	"enabled by": relEnabledBy,
	"has input":  relHasInput,
	"has output": relHasOutput,
	"located in": relLocatedIn,
	"occurs in":  relOccursIn,
	"part of":    relPartOf,
}

// Builder reduces documents to models.
type Builder struct {
	cfg config.Analysis
	log *slog.Logger
}

func NewBuilder(cfg config.Analysis, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.Default()
	}
	return &Builder{cfg: cfg, log: log}
}

// Build keeps every individual inferred to be a molecular function as an
// activity. Annotation facts (enabler, location, process,
// inputs and outputs) are folded into their subject activity; every other
// fact between activities becomes a causal edge. Facts pointing at ids
// that are not individuals are kept as edges so they surface as dangling
// references. Duplicate activity ids are passed through unchanged.
func (b *Builder) Build(doc *models.Document) *models.Model {
	m := &models.Model{
		ID:          doc.ID,
		Title:       doc.Title(),
		Activities:  []models.Activity{},
		CausalEdges: []models.CausalEdge{},
	}

	individuals := make(map[string]*models.Individual, len(doc.Individuals))
	for i := range doc.Individuals {
		individuals[doc.Individuals[i].ID] = &doc.Individuals[i]
	}

	// activity id -> position in m.Activities; the first occurrence of a
	// duplicated id receives the folded facts.
	positions := make(map[string]int)
	for i := range doc.Individuals {
		ind := &doc.Individuals[i]
		if !isActivity(ind) {
			continue
		}
		mf := ind.PrimaryType()
		if _, seen := positions[ind.ID]; !seen {
			positions[ind.ID] = len(m.Activities)
		}
		m.Activities = append(m.Activities, models.Activity{
			ID:                ind.ID,
			EnablerKind:       models.EnablerNone,
			MolecularFunction: models.Term{ID: mf.ID, Label: mf.Label},
		})
	}

	for _, fact := range doc.Facts {
		rel := relationID(fact)
		subjectPos, subjectIsActivity := positions[fact.Subject]
		_, objectIsActivity := positions[fact.Object]
		object, objectKnown := individuals[fact.Object]

		if subjectIsActivity && objectKnown && !objectIsActivity && isAnnotationRelation(rel) {
			b.fold(&m.Activities[subjectPos], rel, object)
			continue
		}

		if isNonActivity(individuals, positions, fact.Subject) || isNonActivity(individuals, positions, fact.Object) {
			b.log.Debug("ignoring fact outside the activity graph",
				"model", doc.ID,
				"subject", fact.Subject,
				"property", fact.Property,
				"object", fact.Object)
			continue
		}

		m.CausalEdges = append(m.CausalEdges, models.CausalEdge{
			Subject:  fact.Subject,
			Object:   fact.Object,
			Relation: models.Term{ID: fact.Property, Label: fact.PropertyLabel},
		})
	}

	b.log.Debug("built model",
		"model", m.ID,
		"activities", len(m.Activities),
		"edges", len(m.CausalEdges))

	return m
}

func isActivity(ind *models.Individual) bool {
	return ind.HasRootType(molecularFunctionRoot)
}

// isNonActivity reports whether id names an individual that is not an
// activity, such as a gene product, chemical or process.
func isNonActivity(individuals map[string]*models.Individual, positions map[string]int, id string) bool {
	if _, ok := positions[id]; ok {
		return false
	}
	_, known := individuals[id]
	return known
}

func (b *Builder) fold(a *models.Activity, rel string, object *models.Individual) {
	t := object.PrimaryType()
	term := models.Term{ID: t.ID, Label: t.Label}

	switch rel {
	case relEnabledBy:
		if a.EnabledBy != "" {
			b.log.Debug("activity has several enablers, keeping the first",
				"activity", a.ID, "kept", a.EnabledBy, "ignored", t.ID)
			return
		}
		a.EnabledBy = t.ID
		if a.EnabledBy == "" {
			a.EnabledBy = object.ID
		}
		a.EnablerLabel = t.Label
		a.EnablerKind = b.cfg.EnablerKindOf(a.EnabledBy)
	case relHasInput:
		a.HasInput = append(a.HasInput, term)
	case relHasOutput:
		a.HasOutput = append(a.HasOutput, term)
	case relLocatedIn:
		a.LocatedIn = append(a.LocatedIn, term)
	case relOccursIn:
		a.OccursIn = append(a.OccursIn, term)
	case relPartOf:
		if a.PartOf == nil {
			a.PartOf = &term
		}
	}
}

func relationID(f models.Fact) string {
	if isAnnotationRelation(f.Property) {
		return f.Property
	}
	if id, ok := relationLabels[f.PropertyLabel]; ok {
		return id
	}
	return f.Property
}

func isAnnotationRelation(rel string) bool {
	switch rel {
	case relEnabledBy, relHasInput, relHasOutput, relLocatedIn, relOccursIn, relPartOf:
		return true
	}
	return false
}
