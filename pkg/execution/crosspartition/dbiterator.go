package crosspartition

import (
	"context"
	"fmt"

	dberror "storemy/pkg/error"
	"storemy/pkg/iterator"
	"storemy/pkg/tuple"
)

// StageIterator satisfies storemy/pkg/iterator.DbIterator, so a Distinct or
// GroupBy Stage can sit downstream of a scan anywhere the engine expects an
// ordinary iterator.
var _ iterator.DbIterator = (*StageIterator)(nil)

// defaultPageSize is how many elements StageIterator asks Stage.Drain for
// per underlying call.
const defaultPageSize = 100

// StageIterator adapts a Distinct or GroupBy Stage into an
// iterator.DbIterator (SPEC_FULL.md §6), so query plans built on
// storemy/pkg/iterator can sit a DISTINCT or GROUP BY stage directly
// downstream of a scan the way they would sit a setops.Distinct or an
// aggregation operator.
//
// It buffers one Page at a time; Stage.Drain already does the work of
// bounding memory, so StageIterator does not materialize the full result
// the way aggregation.Iterator does.
type StageIterator struct {
	ctx   context.Context
	stage Stage
	desc  *tuple.TupleDescription

	buffer []*tuple.Tuple
	pos    int
	opened bool
	failed *dberror.DBError
}

// NewStageIterator wraps stage, projecting each emitted element onto desc
// via ToTuple.
func NewStageIterator(ctx context.Context, stage Stage, desc *tuple.TupleDescription) (*StageIterator, error) {
	if stage == nil {
		return nil, fmt.Errorf("stage cannot be nil")
	}
	if desc == nil {
		return nil, fmt.Errorf("tuple description cannot be nil")
	}
	return &StageIterator{ctx: ctx, stage: stage, desc: desc}, nil
}

// Open resets the iterator's read position. The underlying Stage carries
// its own state (DistinctMap/GroupingTable) and is not reconstructed;
// re-opening does not rewind the Stage, only StageIterator's own buffer.
func (s *StageIterator) Open() error {
	s.buffer = nil
	s.pos = 0
	s.failed = nil
	s.opened = true
	return nil
}

// Close releases the buffered tuples. The wrapped Stage is not closed;
// callers that own the Stage across multiple iterators remain responsible
// for its lifetime.
func (s *StageIterator) Close() error {
	s.buffer = nil
	s.opened = false
	return nil
}

// Rewind is unsupported: a Stage's Drain is destructive (DistinctMap and
// GroupingTable state only moves forward), so there is nothing to rewind
// to short of reconstructing the Stage from a cursor.
func (s *StageIterator) Rewind() error {
	return fmt.Errorf("crosspartition.StageIterator: rewind not supported, reconstruct the stage from a cursor instead")
}

// GetTupleDesc returns the schema StageIterator projects elements onto.
func (s *StageIterator) GetTupleDesc() *tuple.TupleDescription {
	return s.desc
}

// HasNext reports whether Next will return a tuple, pulling additional
// pages from the Stage as needed.
func (s *StageIterator) HasNext() (bool, error) {
	if !s.opened {
		return false, fmt.Errorf("crosspartition.StageIterator: not opened")
	}
	if s.failed != nil {
		return false, s.failed
	}

	for s.pos >= len(s.buffer) {
		if s.stage.IsDone() {
			return false, nil
		}
		if err := s.fill(); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Next returns the next projected tuple, or (nil, nil) when exhausted.
func (s *StageIterator) Next() (*tuple.Tuple, error) {
	has, err := s.HasNext()
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, nil
	}
	t := s.buffer[s.pos]
	s.pos++
	return t, nil
}

func (s *StageIterator) fill() error {
	page, err := s.stage.Drain(s.ctx, defaultPageSize)
	if err != nil {
		s.failed = dberror.Wrap(err, "CROSSPARTITION_FATAL", "StageIterator.fill", component)
		return s.failed
	}
	if !page.Success {
		s.failed = fatal("StageIterator.fill", "source page failed: "+page.Diagnostics)
		return s.failed
	}

	s.buffer = s.buffer[:0]
	s.pos = 0
	for _, e := range page.Elements {
		t, err := ToTuple(e, s.desc)
		if err != nil {
			return err
		}
		s.buffer = append(s.buffer, t)
	}
	return nil
}
