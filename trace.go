package cfgparser

import (
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
)

// packageTracer is the tracer used by the normalizer and the derivation
// engine for debug/diagnostic output. It defaults to an
// Info-level adapter; SetTraceLevel and SetTracer let a caller (typically
// cmd/cfgparse) dial verbosity up or swap in a different schuko adapter.
var packageTracer tracing.Trace = gologadapter.New()

// SetTracer replaces the package-wide tracer.
func SetTracer(t tracing.Trace) {
	packageTracer = t
}

// SetTraceLevel adjusts the verbosity of the package-wide tracer.
func SetTraceLevel(level tracing.TraceLevel) {
	packageTracer.SetTraceLevel(level)
}

func tracer() tracing.Trace {
	return packageTracer
}
