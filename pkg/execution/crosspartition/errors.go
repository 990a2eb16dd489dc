package crosspartition

import (
	dberror "storemy/pkg/error"
)

const component = "crosspartition"

// badRequest builds the structured error for cursor parse failures, unknown
// execution environments, and malformed rewritten projections (spec §7).
// The offending token is carried in Detail so the caller sees exactly what
// it sent, per spec §6 ("Malformed cursor input produces a deterministic
// 'bad request' error carrying the offending token in its message").
func badRequest(operation, message, detail string) *dberror.DBError {
	err := dberror.New(dberror.ErrCategoryUser, "CROSSPARTITION_BAD_REQUEST", message)
	err.Operation = operation
	err.Component = component
	err.Detail = detail
	return err
}

// fatal builds the structured error for invariant violations that spec §7
// says must crash the query rather than return partial results (e.g. an
// aggregator observing a value shape its calculator declared impossible).
func fatal(operation, message string) *dberror.DBError {
	err := dberror.New(dberror.ErrCategorySystem, "CROSSPARTITION_FATAL", message)
	err.Operation = operation
	err.Component = component
	return err
}
