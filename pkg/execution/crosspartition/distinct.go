package crosspartition

import (
	"context"

	"storemy/pkg/execution/crosspartition/element"
	"storemy/pkg/logging"
)

// distinctBase implements the shared Drain/TryGetCursor logic of spec §4.3;
// ClientDistinctStage and ComputeDistinctStage differ only in how they
// populate Page.Cursor / Page.DisallowCursorReason.
type distinctBase struct {
	source      Source
	distinctMap DistinctMap
	env         ExecutionEnvironment
}

var disallowDistinctCursorReason = "Use TryGetCursor"

// Drain implements spec §4.3 steps 1-4. A non-nil error means a BadRequest
// or Fatal condition (spec §7) was hit and no state was mutated; only a
// Transient source failure is reported as Page.Success=false instead.
func (d *distinctBase) Drain(ctx context.Context, maxElements int) (Page, error) {
	page, err := d.source.Drain(ctx, maxElements)
	if err != nil {
		return Page{}, err
	}
	if !page.Success {
		return page, nil
	}

	admitted := make([]element.Element, 0, len(page.Elements))
	for _, e := range page.Elements {
		ok, _ := d.distinctMap.Add(e)
		if ok {
			admitted = append(admitted, e)
		}
	}

	out := Page{
		Success:       true,
		Elements:      admitted,
		ActivityID:    page.ActivityID,
		RequestCharge: page.RequestCharge,
		Diagnostics:   page.Diagnostics,
		ResponseBytes: page.ResponseBytes,
	}

	switch d.env {
	case Client:
		if !d.IsDone() {
			if ok, sourceCursor := d.source.TryGetCursor(); ok && sourceCursor != nil {
				if cursor, err := d.buildCursor(sourceCursor); err == nil {
					out.Cursor = &cursor
				}
			}
		}
	case Compute:
		out.DisallowCursorReason = &disallowDistinctCursorReason
	}

	logging.WithComponent(component).Debug("distinct drain",
		"requested", maxElements, "admitted", len(admitted), "source_elements", len(page.Elements))

	return out, nil
}

func (d *distinctBase) buildCursor(sourceCursor *string) (string, error) {
	mapCursor, err := d.distinctMap.GetCursor()
	if err != nil {
		return "", err
	}
	tok := DistinctContinuationToken{SourceToken: sourceCursor, DistinctMapToken: &mapCursor}
	return tok.marshal()
}

func (d *distinctBase) IsDone() bool { return d.source.IsDone() }

// TryGetCursor implements spec §4.3's TryGetCursor rules.
func (d *distinctBase) TryGetCursor() (bool, *string) {
	if d.IsDone() {
		return true, nil
	}
	ok, sourceCursor := d.source.TryGetCursor()
	if !ok {
		return false, nil
	}
	cursor, err := d.buildCursor(sourceCursor)
	if err != nil {
		return false, nil
	}
	return true, &cursor
}

// ClientDistinctStage is the Client-variant DISTINCT stage: it may embed
// a resumption cursor directly on each Page.
type ClientDistinctStage struct{ *distinctBase }

// ComputeDistinctStage is the Compute-variant DISTINCT stage: Page.Cursor
// is always nil; callers must call TryGetCursor explicitly.
type ComputeDistinctStage struct{ *distinctBase }

// createDistinctStage builds either variant (spec §4.7 dispatches on env;
// this is the DISTINCT-specific half of that dispatch, wired together by
// CreateDistinct in factory.go).
func createDistinctStage(env ExecutionEnvironment, source Source, distinctMap DistinctMap) Stage {
	base := &distinctBase{source: source, distinctMap: distinctMap, env: env}
	switch env {
	case Client:
		return ClientDistinctStage{base}
	default:
		return ComputeDistinctStage{base}
	}
}
