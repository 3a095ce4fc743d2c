package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yungbote/learnpath-backend/internal/domain"
)

// Sentinels for errors.Is checks across the taxonomy. The typed errors
// below unwrap to these.
var (
	ErrValidation          = errors.New("validation failed")
	ErrGraphIntegrity      = errors.New("prerequisite graph integrity violated")
	ErrPathNotFound        = errors.New("no feasible path to GOAL")
	ErrReasonerUnavailable = errors.New("reasoner unavailable")
)

// ValidationError rejects a request at the boundary, before any graph work.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Detail)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// GraphIntegrityError reports a cycle among feasible nodes. A cycle means
// the upstream edge data is corrupt; it is never silently broken.
type GraphIntegrityError struct {
	// Cycle holds the node ids left unresolved by the topological pass,
	// i.e. the members of at least one cycle.
	Cycle []string
}

func (e *GraphIntegrityError) Error() string {
	return fmt.Sprintf("cycle detected among feasible nodes: %s", strings.Join(e.Cycle, ", "))
}

func (e *GraphIntegrityError) Unwrap() error { return ErrGraphIntegrity }

// PathNotFoundError carries the exclusion list so the caller can tell
// "context too strict" apart from "data corrupt".
type PathNotFoundError struct {
	Excluded []domain.Exclusion
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("no feasible path to GOAL (%d objects excluded)", len(e.Excluded))
}

func (e *PathNotFoundError) Unwrap() error { return ErrPathNotFound }

// ReasonerUnavailableError wraps a failure of the pluggable external
// filter implementation.
type ReasonerUnavailableError struct {
	Cause error
}

func (e *ReasonerUnavailableError) Error() string {
	if e.Cause == nil {
		return ErrReasonerUnavailable.Error()
	}
	return fmt.Sprintf("reasoner unavailable: %v", e.Cause)
}

func (e *ReasonerUnavailableError) Unwrap() error { return ErrReasonerUnavailable }
