package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"talentsift/assessment-recommender/internal/models"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessments.json")
	content := `[
		{"name": "Verify - Java", "url": "https://example.com/java", "test_type": "Knowledge & Skills", "duration": "30 minutes", "description": "Java test.", "remote_testing": true, "adaptive_support": false},
		{"name": "OPQ32", "url": "https://example.com/opq", "test_type": "Personality & Behavior", "duration": "25 minutes", "description": "Personality questionnaire.", "remote_testing": true, "adaptive_support": false}
	]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, "Verify - Java", c.All()[0].Name)
	assert.True(t, c.All()[0].RemoteTesting)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadEmptyCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assessments.json")
	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestFilterByTime(t *testing.T) {
	c := New([]models.Assessment{
		{Name: "Short", Duration: "15 minutes"},
		{Name: "Long", Duration: "90 minutes"},
		{Name: "Untimed", Duration: "Untimed"},
	})

	filtered := c.FilterByTime(30)
	require.Len(t, filtered, 2)
	assert.Equal(t, "Short", filtered[0].Name)
	assert.Equal(t, "Untimed", filtered[1].Name)
}
