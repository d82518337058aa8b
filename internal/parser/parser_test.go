package parser

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pombase/pombase-gocam-tool/internal/config"
	"github.com/pombase/pombase-gocam-tool/internal/logger"
	"github.com/pombase/pombase-gocam-tool/internal/models"
)

func loadFixture(t *testing.T, name string) *models.Document {
	t.Helper()
	data, err := os.ReadFile("../../testdata/" + name)
	require.NoError(t, err)
	doc, err := ParseDocument(data)
	require.NoError(t, err)
	return doc
}

func build(doc *models.Document) *models.Model {
	return NewBuilder(config.Default().Analysis, logger.Discard()).Build(doc)
}

func TestParseDocument(t *testing.T) {
	t.Run("valid document", func(t *testing.T) {
		doc, err := ParseDocument([]byte(`{"id": "gomodel:1", "individuals": [], "facts": []}`))

		require.NoError(t, err)
		assert.Equal(t, "gomodel:1", doc.ID)
	})

	testCases := []struct {
		name string
		data string
	}{
		{"empty input", ""},
		{"invalid json", "{invalid json}"},
		{"missing id", `{"individuals": [], "facts": []}`},
		{"individual without id", `{"id": "m", "individuals": [{"type": []}]}`},
		{"wrong shape", `{"id": "m", "facts": "none"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := ParseDocument([]byte(tc.data))

			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, models.ErrInvalidDocument))
		})
	}
}

func TestBuild(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		m := build(&models.Document{ID: "gomodel:empty"})

		assert.Equal(t, "gomodel:empty", m.ID)
		assert.NotNil(t, m.Activities)
		assert.NotNil(t, m.CausalEdges)
		assert.Empty(t, m.Activities)
		assert.Empty(t, m.CausalEdges)
	})

	t.Run("complete model folds annotations", func(t *testing.T) {
		m := build(loadFixture(t, "complete.json"))

		assert.Equal(t, "Glucose sensing via cAMP/PKA in fission yeast", m.Title)
		require.Len(t, m.Activities, 2)

		a1 := m.Activities[0]
		assert.Equal(t, "gomodel:66187e4700001573/a1", a1.ID)
		assert.Equal(t, "PomBase:SPAP14E8.02", a1.EnabledBy)
		assert.Equal(t, "cyr1", a1.EnablerLabel)
		assert.Equal(t, models.EnablerGene, a1.EnablerKind)
		assert.Equal(t, models.Term{ID: "GO:0004016", Label: "adenylate cyclase activity"}, a1.MolecularFunction)
		assert.Equal(t, []models.Term{{ID: "GO:0005829", Label: "cytosol"}}, a1.OccursIn)
		assert.Equal(t, []models.Term{{ID: "CHEBI:17489", Label: "3',5'-cyclic AMP"}}, a1.HasOutput)
		assert.Nil(t, a1.PartOf)

		a2 := m.Activities[1]
		require.NotNil(t, a2.PartOf)
		assert.Equal(t, "GO:0010255", a2.PartOf.ID)
		assert.Len(t, a2.HasInput, 1)

		require.Len(t, m.CausalEdges, 1)
		assert.Equal(t, models.CausalEdge{
			Subject:  "gomodel:66187e4700001573/a1",
			Object:   "gomodel:66187e4700001573/a2",
			Relation: models.Term{ID: "RO:0002629", Label: "directly positively regulates"},
		}, m.CausalEdges[0])
	})

	t.Run("keeps dangling, self-loop and non-causal activity edges", func(t *testing.T) {
		m := build(loadFixture(t, "holes.json"))

		require.Len(t, m.Activities, 5)
		require.Len(t, m.CausalEdges, 4)

		assert.Equal(t, "gomodel:holes/missing", m.CausalEdges[1].Object)
		assert.True(t, m.CausalEdges[2].IsSelfLoop())
		assert.Equal(t, "BFO:0000050", m.CausalEdges[3].Relation.ID)
		assert.Equal(t, "gomodel:holes/a5", m.CausalEdges[3].Object)

		assert.Empty(t, m.Activities[2].EnabledBy)
		assert.Equal(t, models.EnablerNone, m.Activities[2].EnablerKind)
	})

	t.Run("duplicate activity ids pass through", func(t *testing.T) {
		m := build(loadFixture(t, "duplicate.json"))

		require.Len(t, m.Activities, 2)
		assert.Equal(t, m.Activities[0].ID, m.Activities[1].ID)
	})

	t.Run("relation matched by label only", func(t *testing.T) {
		doc := &models.Document{
			ID: "m",
			Individuals: []models.Individual{
				{
					ID:        "a",
					Types:     []models.IndividualType{{Type: "class", ID: "GO:0004672"}},
					RootTypes: []models.IndividualType{{Type: "class", ID: "GO:0003674"}},
				},
				{
					ID:    "g",
					Types: []models.IndividualType{{Type: "class", ID: "CHEBI:15422", Label: "ATP"}},
				},
			},
			Facts: []models.Fact{
				{Subject: "a", Object: "g", PropertyLabel: "enabled by"},
			},
		}

		m := build(doc)

		require.Len(t, m.Activities, 1)
		assert.Equal(t, "CHEBI:15422", m.Activities[0].EnabledBy)
		assert.Equal(t, models.EnablerChemical, m.Activities[0].EnablerKind)
		assert.Empty(t, m.CausalEdges)
	})

	t.Run("first enabler wins", func(t *testing.T) {
		doc := &models.Document{
			ID: "m",
			Individuals: []models.Individual{
				{ID: "a", RootTypes: []models.IndividualType{{ID: "GO:0003674"}}},
				{ID: "g1", Types: []models.IndividualType{{ID: "PomBase:A"}}},
				{ID: "g2", Types: []models.IndividualType{{ID: "PR:000001"}}},
			},
			Facts: []models.Fact{
				{Subject: "a", Object: "g1", Property: "RO:0002333"},
				{Subject: "a", Object: "g2", Property: "RO:0002333"},
			},
		}

		m := build(doc)

		assert.Equal(t, "PomBase:A", m.Activities[0].EnabledBy)
		assert.Empty(t, m.Activities[0].MolecularFunction.ID)
	})

	t.Run("facts touching non-activity individuals are dropped", func(t *testing.T) {
		doc := &models.Document{
			ID: "m",
			Individuals: []models.Individual{
				{ID: "a", RootTypes: []models.IndividualType{{ID: "GO:0003674"}}},
				{ID: "bp", RootTypes: []models.IndividualType{{ID: "GO:0008150"}}},
			},
			Facts: []models.Fact{
				{Subject: "a", Object: "bp", Property: "RO:0002411"},
				{Subject: "bp", Object: "a", Property: "RO:0002411"},
				{Subject: "x", Object: "y", Property: "RO:0002411"},
			},
		}

		m := build(doc)

		require.Len(t, m.CausalEdges, 1)
		assert.Equal(t, "x", m.CausalEdges[0].Subject)
	})

	t.Run("does not modify the document", func(t *testing.T) {
		doc := loadFixture(t, "holes.json")
		before := loadFixture(t, "holes.json")

		build(doc)

		assert.Equal(t, before, doc)
	})
}

func TestBuildDefaultLogger(t *testing.T) {
	m := NewBuilder(config.Default().Analysis, nil).Build(&models.Document{ID: "m"})
	assert.Equal(t, "m", m.ID)
}

func TestActivitiesIndependentOfRootFunctionList(t *testing.T) {
	cfg, err := config.Parse([]byte("[analysis]\nroot_molecular_functions = []\n"))
	require.NoError(t, err)
	require.Empty(t, cfg.Analysis.RootMolecularFunctions)

	m := NewBuilder(cfg.Analysis, logger.Discard()).Build(loadFixture(t, "complete.json"))

	assert.Len(t, m.Activities, 2)
	assert.Len(t, m.CausalEdges, 1)
}
