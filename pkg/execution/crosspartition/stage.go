package crosspartition

import (
	"context"

	"storemy/pkg/execution/crosspartition/element"
)

// ExecutionEnvironment selects which cursor-emission policy a stage uses
// (spec §2).
type ExecutionEnvironment int

const (
	// Client stages may emit a per-page cursor inline on each Drain
	// response.
	Client ExecutionEnvironment = iota
	// Compute stages never emit a cursor inside a page response; callers
	// must call TryGetCursor explicitly.
	Compute
)

func (e ExecutionEnvironment) String() string {
	switch e {
	case Client:
		return "Client"
	case Compute:
		return "Compute"
	default:
		return "Unknown"
	}
}

// Page is the result of one Drain call (spec §4.1).
type Page struct {
	// Success is false when the underlying source failed; in that case
	// Elements is empty and state (DistinctMap/GroupingTable) was not
	// mutated by this Drain.
	Success bool

	Elements []element.Element

	// Cursor is set only by Client-variant stages, and only when the
	// stage is not done and the source itself supplied a cursor.
	Cursor *string

	// DisallowCursorReason is set instead of Cursor by Compute-variant
	// stages, and by Client-variant GroupBy stages mid-emit-phase.
	DisallowCursorReason *string

	ActivityID    string
	RequestCharge float64
	Diagnostics   string
	ResponseBytes int64
}

// FailurePage wraps the metadata of a failed source page without
// inventing new diagnostic fields, for stages that pass failures through
// unchanged (spec §4.1: "Failure pages are propagated verbatim").
func FailurePage(activityID, diagnostics string) Page {
	return Page{Success: false, ActivityID: activityID, Diagnostics: diagnostics}
}

// Source is the contract a Distinct or GroupBy stage is built on top of:
// a prior stage (or a partition-fetching adapter) producing pages.
//
// Drain's error return is reserved for BadRequest and Fatal conditions
// (spec §7): a non-nil error means the condition is permanent, unlike a
// Transient failure, which is reported as Page.Success=false with a nil
// error and may be retried from the same cursor. A Distinct stage raises
// before touching its DistinctMap; a GroupBy stage may already have added
// the page's earlier rows to its GroupingTable when a later row fails.
type Source interface {
	Drain(ctx context.Context, maxElements int) (Page, error)
	TryGetCursor() (ok bool, cursor *string)
	IsDone() bool
}

// Stage is the full external contract every DISTINCT/GROUP BY stage
// implements (spec §4.1).
type Stage interface {
	Source
}

// SourceFactory builds a Source stage from an optional inbound cursor
// (spec §6's createSourceCallback). It is supplied by the pipeline
// builder that owns the partition fetchers; crosspartition never
// constructs one itself.
type SourceFactory func(ctx context.Context, sourceCursor *string) (Source, error)
