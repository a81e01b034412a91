package socialgraph

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// Sentinel errors returned by the core. Callers should test for them with
// errors.Is; every failure surfaced by this package wraps exactly one of
// these (or is passed through untouched when it matches none).
var (
	// ErrNotFound is returned when a referenced entity does not exist in the
	// graph. Relationship and post-creation operations check endpoint
	// existence explicitly and fail with this error instead of letting the
	// underlying MATCH silently produce zero rows.
	ErrNotFound = errors.New("record not found")

	// ErrConnection is returned when the backend is unreachable or the
	// connection is lost mid-operation. The core never retries internally.
	ErrConnection = errors.New("graph store unreachable")

	// ErrConstraintViolation is returned when a write conflicts with a
	// uniqueness constraint, e.g. InsertUser with an email that already
	// exists.
	ErrConstraintViolation = errors.New("constraint violation")

	// ErrQuery is returned for malformed queries and malformed result rows.
	// This indicates a programmer error, not a recoverable condition.
	ErrQuery = errors.New("query error")
)

// classifyError maps driver-level failures onto the package's sentinel
// errors. Errors that already wrap a sentinel pass through unchanged, so a
// NotFound raised inside a transaction function survives the round trip
// through the driver's transaction machinery.
func classifyError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrNotFound, ErrConnection, ErrConstraintViolation, ErrQuery} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	var neoErr *neo4j.Neo4jError
	if errors.As(err, &neoErr) {
		switch {
		case strings.Contains(neoErr.Code, "ConstraintValidationFailed"),
			strings.Contains(neoErr.Code, "ConstraintViolation"):
			return fmt.Errorf("%w: %s", ErrConstraintViolation, neoErr.Msg)
		case strings.HasPrefix(neoErr.Code, "Neo.ClientError.Statement"):
			return fmt.Errorf("%w: %s", ErrQuery, neoErr.Msg)
		case strings.Contains(neoErr.Code, "ServiceUnavailable"),
			strings.Contains(neoErr.Code, "SessionExpired"):
			return fmt.Errorf("%w: %s", ErrConnection, neoErr.Msg)
		}
		return err
	}

	if neo4j.IsConnectivityError(err) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	return err
}
