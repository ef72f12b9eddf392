// Package parser turns an untrusted JSON-compatible document into a typed,
// defaulted server configuration. Structural problems (missing required
// field, wrong primitive type) and business-rule violations surface through
// the same errors channel of a discriminated Result, so batch tooling can
// continue past individual failures instead of aborting on the first bad
// file.
package parser

import (
	"encoding/json"

	"github.com/arma-type-things/reforger-types-sub001/internal/validate"
	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

// Result is the discriminated outcome of a parse. Success means zero errors;
// warnings never block success. On failure Config is nil.
type Result struct {
	Success  bool                     `json:"success"`
	Config   *serverconf.ServerConfig `json:"config,omitempty"`
	Errors   []validate.Finding       `json:"errors,omitempty"`
	Warnings []validate.Finding       `json:"warnings,omitempty"`
}

type options struct {
	validate bool
}

// Option configures a Parse call.
type Option func(*options)

// WithoutValidation skips the business-rule engine; only structural
// normalization runs. Defaults are still applied.
func WithoutValidation() Option {
	return func(o *options) {
		o.validate = false
	}
}

// Parse normalizes a raw document and, unless disabled, runs the validation
// engine over the result. Supplied fields are never silently altered; absent
// sections and fields are filled from the same defaults NewConfig uses.
func Parse(raw map[string]any, opts ...Option) Result {
	o := options{validate: true}
	for _, opt := range opts {
		opt(&o)
	}

	if raw == nil {
		return Result{Errors: []validate.Finding{structuralFinding("", "document is empty")}}
	}

	n := &normalizer{}
	cfg := n.normalize(raw)
	if len(n.findings) > 0 {
		return Result{Errors: n.findings}
	}

	if !o.validate {
		return Result{Success: true, Config: cfg}
	}

	report := validate.Validate(cfg)
	if report.HasErrors() {
		return Result{Errors: report.Errors, Warnings: report.Warnings}
	}
	return Result{Success: true, Config: cfg, Warnings: report.Warnings}
}

// ParseJSON decodes a JSON document and parses it. A syntactically invalid
// document is reported as a structural finding, not a Go error, keeping one
// handling path for callers.
func ParseJSON(data []byte, opts ...Option) Result {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return Result{Errors: []validate.Finding{
			structuralFinding("", "invalid JSON document: %v", err),
		}}
	}
	return Parse(raw, opts...)
}
