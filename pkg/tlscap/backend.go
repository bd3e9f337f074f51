// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/backend.go
package tlscap

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Backend selection methods accepted by the analyzer.
const (
	MethodAuto     = "auto"
	MethodGopacket = "gopacket"
	MethodTshark   = "tshark"
)

// Backend is one strategy for turning a capture file into reconstructed
// sessions. Recoverable failures are reported as *BackendError so the
// analyzer can fall back to the next strategy; any other error is fatal.
type Backend interface {
	// Name identifies the backend in diagnostics.
	Name() string

	// Available reports whether the backend can run in this environment.
	Available() bool

	// Analyze processes the capture file into a session map.
	Analyze(ctx context.Context, pcapPath string) (*SessionMap, error)
}

// BackendError marks a recoverable backend failure (tool missing, subprocess
// failure, unparseable output, timeout). The fallback policy triggers only on
// this type, never on generic errors.
type BackendError struct {
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("%s backend: %v", e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

func backendErrorf(backend, format string, args ...interface{}) *BackendError {
	return &BackendError{Backend: backend, Err: fmt.Errorf(format, args...)}
}

// Analyzer orchestrates backend selection and fallback.
type Analyzer struct {
	tshark   Backend
	gopacket Backend

	// Diag receives fallback and failure diagnostics; nil discards them.
	Diag io.Writer
}

// NewAnalyzer creates an analyzer over the standard backend pair.
func NewAnalyzer(tshark, gopacket Backend) *Analyzer {
	return &Analyzer{
		tshark:   tshark,
		gopacket: gopacket,
	}
}

// Run analyzes the capture file with the requested method.
//
// In auto mode the tshark backend is attempted first; on any recoverable
// failure the gopacket backend is tried next. A pinned method skips the
// fallback and fails directly when its backend is unavailable or errors.
func (a *Analyzer) Run(ctx context.Context, pcapPath, method string) (*SessionMap, error) {
	switch method {
	case MethodAuto:
		return a.runAuto(ctx, pcapPath)
	case MethodTshark:
		return a.runPinned(ctx, pcapPath, a.tshark)
	case MethodGopacket:
		return a.runPinned(ctx, pcapPath, a.gopacket)
	default:
		return nil, fmt.Errorf("unknown analysis method: %s", method)
	}
}

func (a *Analyzer) runAuto(ctx context.Context, pcapPath string) (*SessionMap, error) {
	if a.tshark.Available() {
		sessions, err := a.tshark.Analyze(ctx, pcapPath)
		if err == nil {
			return sessions, nil
		}

		var backendErr *BackendError
		if !errors.As(err, &backendErr) {
			return nil, err
		}
		a.diagf("%s backend failed, falling back to %s: %v", a.tshark.Name(), a.gopacket.Name(), backendErr.Err)
	} else {
		a.diagf("%s backend unavailable, using %s", a.tshark.Name(), a.gopacket.Name())
	}

	if !a.gopacket.Available() {
		return nil, fmt.Errorf("no analysis backend available")
	}

	return a.gopacket.Analyze(ctx, pcapPath)
}

func (a *Analyzer) runPinned(ctx context.Context, pcapPath string, backend Backend) (*SessionMap, error) {
	if !backend.Available() {
		return nil, fmt.Errorf("%s backend not available", backend.Name())
	}
	return backend.Analyze(ctx, pcapPath)
}

func (a *Analyzer) diagf(format string, args ...interface{}) {
	if a.Diag == nil {
		return
	}
	fmt.Fprintf(a.Diag, format+"\n", args...)
}
