package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arma-type-things/reforger-types-sub001/internal/parser"
)

const doc = `{
	"game": {
		"name": "Report Server",
		"passwordAdmin": "hunter2",
		"scenarioId": "{ECC61978EDCC2B5A}Missions/23_Campaign.conf"
	}
}`

func TestNewRunFromSuccessfulParse(t *testing.T) {
	res := parser.ParseJSON([]byte(doc))
	require.True(t, res.Success)

	run, err := NewRun("configs/server.json", []byte(doc), res)
	require.NoError(t, err)

	assert.Equal(t, "configs/server.json", run.Source)
	assert.Equal(t, "Report Server", run.ServerName)
	assert.Equal(t, "{ECC61978EDCC2B5A}Missions/23_Campaign.conf", run.ScenarioID)
	assert.True(t, run.Success)
	assert.Zero(t, run.ErrorCount)
	assert.JSONEq(t, doc, string(run.Document))
}

func TestNewRunFromFailedParse(t *testing.T) {
	res := parser.ParseJSON([]byte(`{"game":{"name":"x"}}`))
	require.False(t, res.Success)

	run, err := NewRun("stdin", []byte(`{"game":{"name":"x"}}`), res)
	require.NoError(t, err)

	assert.False(t, run.Success)
	assert.Equal(t, 1, run.ErrorCount)
	// No config on failure, so identity fields stay empty.
	assert.Empty(t, run.ServerName)
	assert.Contains(t, string(run.Findings), "structural")
}
