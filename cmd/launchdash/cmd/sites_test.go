package cmd

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbsmedya/launchdash/internal/report"
)

func TestSitesCommand_Table(t *testing.T) {
	out, err := executeCommand(t, "sites", "--data", testCSV, "--log-level", "error")
	require.NoError(t, err)

	assert.Contains(t, out, "Launch Sites")
	assert.Contains(t, out, "Launch Site   Launches  Successes")
	assert.Contains(t, out, "CCAFS LC-40   3         1")
	assert.Contains(t, out, "Records:        8")
	assert.Contains(t, out, "Payload bounds: [0, 9600] kg")
}

func TestSitesCommand_JSON(t *testing.T) {
	out, err := executeCommand(t, "sites", "--data", testCSV, "--log-level", "error", "-o", "json")
	require.NoError(t, err)

	var doc struct {
		Sites   []report.SiteInfo `json:"sites"`
		Records int               `json:"records"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, 8, doc.Records)
	require.Len(t, doc.Sites, 4)
	assert.Equal(t, "CCAFS LC-40", doc.Sites[0].Name)
	assert.Equal(t, "VAFB SLC-4E", doc.Sites[1].Name)
	assert.Equal(t, "KSC LC-39A", doc.Sites[2].Name)
	assert.Equal(t, "CCAFS SLC-40", doc.Sites[3].Name)
}
