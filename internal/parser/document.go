// Package parser turns GO-CAM JSON into the analysis model.
// ParseDocument decodes the wire format; Builder.Build reduces it to
// activities and causal edges.
package parser

import (
	"encoding/json"
	"fmt"

	"github.com/pombase/pombase-gocam-tool/internal/models"
)

// ParseDocument decodes a Minerva/Noctua JSON model. Only the outer shape
// is checked here; dangling fact references are kept so the hole detector
// can report them.
func ParseDocument(data []byte) (*models.Document, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty input", models.ErrInvalidDocument)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidDocument, err)
	}

	if doc.ID == "" {
		return nil, fmt.Errorf("%w: missing id field", models.ErrInvalidDocument)
	}

	for i, ind := range doc.Individuals {
		if ind.ID == "" {
			return nil, fmt.Errorf("%w: individual %d has no id", models.ErrInvalidDocument, i)
		}
	}

	return &doc, nil
}
