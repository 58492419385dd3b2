package kilometrikisa

import (
	"kilometrikisa-backend/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("scrapers/kilometrikisa")

var restyDumpOutput restyutil.InstrumentOutput

// SetRestyDumpOutput makes clients created afterwards dump every raw
// request/response exchange to `out`.
func SetRestyDumpOutput(out restyutil.InstrumentOutput) {
	restyDumpOutput = out
}
