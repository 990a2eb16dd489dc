package crosspartition

import (
	"context"

	"storemy/pkg/execution/crosspartition/element"
)

// mockSource is a hand-rolled Source stub feeding fixed pages, one per
// Drain call, in the style of the teacher's other execution-package test
// doubles (no mocking framework).
type mockSource struct {
	pages       []Page
	next        int
	cursorAfter map[int]string // pages drained so far -> cursor value TryGetCursor reports at that point
}

func newMockSource(pages ...Page) *mockSource {
	return &mockSource{pages: pages}
}

func (s *mockSource) Drain(ctx context.Context, maxElements int) (Page, error) {
	if s.next >= len(s.pages) {
		return Page{Success: true, Elements: nil}, nil
	}
	p := s.pages[s.next]
	s.next++
	return p, nil
}

func (s *mockSource) IsDone() bool {
	return s.next >= len(s.pages)
}

func (s *mockSource) TryGetCursor() (bool, *string) {
	if s.IsDone() {
		return true, nil
	}
	if s.cursorAfter == nil {
		return false, nil
	}
	c, ok := s.cursorAfter[s.next]
	if !ok {
		return false, nil
	}
	return true, &c
}

func objPayload(fields ...element.Field) element.Element {
	return element.NewObject(fields)
}

func itemWrap(v element.Element) element.Element {
	return objPayload(element.Field{Key: "item", Value: v})
}
