package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUnmarshal(t *testing.T) {
	t.Run("minerva document", func(t *testing.T) {
		jsonData := `{
			"id": "gomodel:66187e4700001744",
			"annotations": [
				{"key": "state", "value": "production"},
				{"key": "title", "value": "SPBC1105.14 rst2 in glucose sensing"}
			],
			"individuals": [
				{
					"id": "gomodel:66187e4700001744/66187e4700001750",
					"type": [{"type": "class", "id": "GO:0003700", "label": "DNA-binding transcription factor activity"}],
					"root-type": [{"type": "class", "id": "GO:0003674", "label": "molecular_function"}]
				}
			],
			"facts": [
				{
					"subject": "gomodel:66187e4700001744/66187e4700001750",
					"object": "gomodel:66187e4700001744/66187e4700001751",
					"property": "RO:0002333",
					"property-label": "enabled by"
				}
			]
		}`

		var doc Document
		err := json.Unmarshal([]byte(jsonData), &doc)

		require.NoError(t, err)
		assert.Equal(t, "gomodel:66187e4700001744", doc.ID)
		assert.Equal(t, "SPBC1105.14 rst2 in glucose sensing", doc.Title())
		require.Len(t, doc.Individuals, 1)
		assert.True(t, doc.Individuals[0].HasRootType("GO:0003674"))
		assert.Equal(t, "GO:0003700", doc.Individuals[0].PrimaryType().ID)
		require.Len(t, doc.Facts, 1)
		assert.Equal(t, "enabled by", doc.Facts[0].PropertyLabel)
	})

	t.Run("missing title", func(t *testing.T) {
		var doc Document
		require.NoError(t, json.Unmarshal([]byte(`{"id": "m1"}`), &doc))
		assert.Empty(t, doc.Title())
	})
}

func TestDocumentIndividual(t *testing.T) {
	doc := Document{Individuals: []Individual{{ID: "a"}, {ID: "b"}}}

	ind, ok := doc.Individual("b")
	require.True(t, ok)
	assert.Equal(t, "b", ind.ID)

	_, ok = doc.Individual("c")
	assert.False(t, ok)
}

func TestIndividualPrimaryType(t *testing.T) {
	var ind Individual
	assert.Equal(t, IndividualType{}, ind.PrimaryType())

	ind.Types = []IndividualType{
		{Type: "class", ID: "PomBase:SPAC1002.09c"},
		{Type: "class", ID: "GO:0005515"},
	}
	assert.Equal(t, "PomBase:SPAC1002.09c", ind.PrimaryType().ID)
}

func TestTerm(t *testing.T) {
	assert.Equal(t, "GO:0004672", Term{ID: "GO:0004672", Label: "protein kinase activity"}.Key())
	assert.Equal(t, "protein kinase activity", Term{Label: "protein kinase activity"}.Key())
	assert.Equal(t, "protein kinase activity (GO:0004672)",
		Term{ID: "GO:0004672", Label: "protein kinase activity"}.String())
	assert.Equal(t, "GO:0004672", Term{ID: "GO:0004672"}.String())
}

func TestHoleKindText(t *testing.T) {
	for _, kind := range HoleKinds() {
		text, err := kind.MarshalText()
		require.NoError(t, err)

		var back HoleKind
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, kind, back)
	}

	_, err := HoleKind(0).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "HoleKind(0)", HoleKind(0).String())

	_, err = ParseHoleKind("Nope")
	assert.Error(t, err)
}

func TestFindingJSON(t *testing.T) {
	data, err := json.Marshal(Finding{ActivityID: "a1", Kind: SelfLoop, Detail: "d"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"activity_id": "a1", "kind": "SelfLoop", "detail": "d"}`, string(data))
}

func TestCausalEdgeJSON(t *testing.T) {
	edge := CausalEdge{
		Subject:  "gomodel:1/a1",
		Object:   "gomodel:1/a2",
		Relation: Term{ID: "RO:0002629", Label: "directly positively regulates"},
	}

	data, err := json.Marshal(edge)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"subject": "gomodel:1/a1",
		"object": "gomodel:1/a2",
		"relation": {"id": "RO:0002629", "label": "directly positively regulates"}
	}`, string(data))
}

func TestSortFindings(t *testing.T) {
	findings := []Finding{
		{ActivityID: "b", Kind: MissingEnabler},
		{ActivityID: "a", Kind: OrphanChain},
		{ActivityID: "a", Kind: DanglingEdgeReference, Detail: "z"},
		{ActivityID: "a", Kind: DanglingEdgeReference, Detail: "y"},
		{ActivityID: "a", Kind: MissingEnabler},
	}

	SortFindings(findings)

	assert.Equal(t, []Finding{
		{ActivityID: "a", Kind: MissingEnabler},
		{ActivityID: "a", Kind: DanglingEdgeReference, Detail: "y"},
		{ActivityID: "a", Kind: DanglingEdgeReference, Detail: "z"},
		{ActivityID: "a", Kind: OrphanChain},
		{ActivityID: "b", Kind: MissingEnabler},
	}, findings)
}

func TestCausalEdgeIsSelfLoop(t *testing.T) {
	assert.True(t, CausalEdge{Subject: "a", Object: "a"}.IsSelfLoop())
	assert.False(t, CausalEdge{Subject: "a", Object: "b"}.IsSelfLoop())
}
