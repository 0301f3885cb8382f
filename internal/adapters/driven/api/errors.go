package api

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/madrasa-labs/bahith-cli/internal/core/domain"
)

// classifyTransportError separates connectivity failures (refused
// connections, DNS errors, timeouts) from everything else. Context
// cancellation passes through untouched so callers can distinguish a
// superseded search from a dead backend.
func classifyTransportError(path string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrBackendUnavailable)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrBackendUnavailable)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return fmt.Errorf("%s: %v: %w", path, err, domain.ErrBackendUnavailable)
	}

	// http.Client.Do wraps transport failures in *url.Error; anything that
	// reached this point without a typed net error is still a failure to
	// talk to the backend rather than a backend-reported error.
	return fmt.Errorf("%s: %v: %w", path, err, domain.ErrBackendUnavailable)
}

// malformed wraps a decode failure so it is recognisable without exposing
// encoding/json internals to the core.
func malformed(path string, err error) error {
	return fmt.Errorf("%s: %v: %w", path, err, domain.ErrMalformedResponse)
}

// errIncompleteHit marks a payload row missing its identifying fields.
var errIncompleteHit = errors.New("row missing id or title")

func errUnknownType(t string) error {
	return fmt.Errorf("unknown result type %q", t)
}
