package validate

import (
	"github.com/arma-type-things/reforger-types-sub001/pkg/serverconf"
)

// Validate runs the full rule catalog against a well-typed configuration and
// returns the classified report. It never fails: all findings are returned,
// none are thrown, and every rule category is evaluated regardless of earlier
// findings.
//
// Warning rules are gated per field: once a field produces an error, later
// warning rules for the same field are skipped, so advisory range checks only
// apply to values that are otherwise valid.
func Validate(cfg *serverconf.ServerConfig) Report {
	st := &fieldState{errored: map[string]bool{}}
	var report Report

	for _, category := range catalog {
		for _, r := range category.rules {
			f := r.check(cfg, st)
			if f == nil {
				continue
			}
			if f.Field == "" {
				f.Field = r.field
			}
			switch f.Severity {
			case SeverityError:
				report.Errors = append(report.Errors, *f)
				st.errored[r.field] = true
			case SeverityWarning:
				if st.Errored(r.field) {
					continue
				}
				report.Warnings = append(report.Warnings, *f)
			}
		}
	}

	return report
}
