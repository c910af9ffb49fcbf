// Package otel wires OpenTelemetry tracing for the userdir client. Every
// call to the directory API is a span; Setup decides where spans go.
package otel
