package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"talentsift/assessment-recommender/internal/models"
)

// Catalog is the read-only set of assessments the service recommends from.
// It is constructed once at startup and injected into every component that
// needs it.
type Catalog struct {
	assessments []models.Assessment
}

func New(assessments []models.Assessment) *Catalog {
	return &Catalog{assessments: assessments}
}

// Load reads the assessment catalog from a JSON file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	var assessments []models.Assessment
	if err := json.Unmarshal(data, &assessments); err != nil {
		return nil, fmt.Errorf("failed to parse catalog file: %w", err)
	}

	if len(assessments) == 0 {
		return nil, fmt.Errorf("catalog file %s contains no assessments", path)
	}

	return &Catalog{assessments: assessments}, nil
}

// All returns every assessment in catalog order.
func (c *Catalog) All() []models.Assessment {
	return c.assessments
}

func (c *Catalog) Len() int {
	return len(c.assessments)
}

// FilterByTime returns the assessments whose duration fits the time budget,
// preserving catalog order. Entries with no parsable duration are kept.
func (c *Catalog) FilterByTime(timeLimit int) []models.Assessment {
	var filtered []models.Assessment
	for _, a := range c.assessments {
		if a.WithinTimeLimit(timeLimit) {
			filtered = append(filtered, a)
		}
	}

	return filtered
}
