package batch

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/arma-type-things/reforger-types-sub001/internal/batch"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
