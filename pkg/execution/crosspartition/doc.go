// Package crosspartition implements the coordinator-side DISTINCT and
// GROUP BY pipeline stages for a cross-partition query engine.
//
// Each partition of the backing store returns its own page of results with
// its own continuation cursor; a stage in this package merges those pages
// into a globally deduplicated (Distinct) or globally aggregated (GroupBy)
// result while respecting a caller-supplied page-size limit and remaining
// resumable across client-side interruption via a Cursor string.
//
// Every stage implements Stage: Drain draws up to maxElements elements
// with a possibly-empty Page, and TryGetCursor exposes the stage's
// resumption point without forcing a Drain. Two ExecutionEnvironment
// variants select slightly different cursor-emission policy: Client
// stages may embed a cursor directly in a Page; Compute stages never do,
// forcing the caller through the explicit TryGetCursor operation instead.
package crosspartition
