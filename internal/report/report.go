// Package report defines the persisted record of a validation run.
package report

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"

	"github.com/arma-type-things/reforger-types-sub001/internal/parser"
)

// ValidationRun is one parsed-and-validated document. The raw document and
// the findings are stored as JSON so reports survive schema evolution of the
// rule catalog.
type ValidationRun struct {
	ID        uint      `json:"id" gorm:"primarykey"`
	CreatedAt time.Time `json:"createdAt"`

	// Source identifies where the document came from, a file path for
	// batch runs or "stdin" for single validations.
	Source string `json:"source" gorm:"index"`

	ServerName string `json:"serverName"`
	ScenarioID string `json:"scenarioId"`

	Success      bool `json:"success" gorm:"index"`
	ErrorCount   int  `json:"errorCount"`
	WarningCount int  `json:"warningCount"`

	Document datatypes.JSON `json:"document"`
	Findings datatypes.JSON `json:"findings"`
}

// DatabaseModels lists all models migrated by database-backed storage.
var DatabaseModels = []any{
	&ValidationRun{},
}

// NewRun builds a ValidationRun from a parse result. The raw document is
// stored verbatim.
func NewRun(source string, raw []byte, res parser.Result) (*ValidationRun, error) {
	findings, err := json.Marshal(struct {
		Errors   any `json:"errors"`
		Warnings any `json:"warnings"`
	}{res.Errors, res.Warnings})
	if err != nil {
		return nil, err
	}

	run := &ValidationRun{
		Source:       source,
		Success:      res.Success,
		ErrorCount:   len(res.Errors),
		WarningCount: len(res.Warnings),
		Document:     datatypes.JSON(raw),
		Findings:     datatypes.JSON(findings),
	}
	if res.Config != nil {
		run.ServerName = res.Config.Game.Name
		run.ScenarioID = res.Config.Game.ScenarioID
	}
	return run, nil
}
