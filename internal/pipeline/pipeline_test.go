package pipeline

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/source"
)

// --- mocks ---

type mockSource struct {
	profiles []model.Profile
	err      error
}

func (m *mockSource) Profiles(context.Context, source.Config) ([]model.Profile, error) {
	return m.profiles, m.err
}

// firstLabelProcessor selects the first label as the area.
type firstLabelProcessor struct{}

func (firstLabelProcessor) Process(p model.Profile) model.Selection {
	if len(p.Labels) == 0 {
		return model.Selection{ProfileID: p.ID}
	}
	return model.Selection{ProfileID: p.ID, Area: p.Labels[0], Matched: true, Score: 10}
}

type mockOutput struct {
	sels    []model.Selection
	failOn  string
	closed  bool
	onWrite func()
}

func (m *mockOutput) Write(_ context.Context, sel model.Selection) error {
	if m.onWrite != nil {
		m.onWrite()
	}
	if sel.ProfileID == m.failOn {
		return errors.New("mock: write failed")
	}
	m.sels = append(m.sels, sel)
	return nil
}

func (m *mockOutput) Close() error {
	m.closed = true
	return nil
}

func profiles() []model.Profile {
	return []model.Profile{
		{ID: "a", Labels: []string{"insurance"}},
		{ID: "b"},
		{ID: "c", Labels: []string{"insurance"}},
		{ID: "d", Labels: []string{"construction"}},
	}
}

// --- tests ---

func TestRunWritesInSourceOrder(t *testing.T) {
	out := &mockOutput{}
	p := New(&mockSource{profiles: profiles()}, firstLabelProcessor{}, out)

	sum, err := p.Run(context.Background(), source.Config{Provider: "mock"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var ids []string
	for _, s := range out.sels {
		ids = append(ids, s.ProfileID)
	}
	if !slices.Equal(ids, []string{"a", "b", "c", "d"}) {
		t.Fatalf("order = %v", ids)
	}
	if sum.Profiles != 4 || sum.Matched != 3 || sum.Unmatched != 1 {
		t.Fatalf("summary = %+v", sum)
	}
	if !slices.Equal(sum.Areas(), []string{"insurance", "construction"}) {
		t.Fatalf("Areas() = %v", sum.Areas())
	}
}

func TestRunSourceError(t *testing.T) {
	boom := errors.New("boom")
	out := &mockOutput{}
	p := New(&mockSource{err: boom}, firstLabelProcessor{}, out)

	_, err := p.Run(context.Background(), source.Config{})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if len(out.sels) != 0 {
		t.Fatal("nothing should be written when the source fails")
	}
}

func TestRunStopsOnOutputError(t *testing.T) {
	out := &mockOutput{failOn: "c"}
	p := New(&mockSource{profiles: profiles()}, firstLabelProcessor{}, out)

	sum, err := p.Run(context.Background(), source.Config{})
	if err == nil {
		t.Fatal("expected output error")
	}
	if sum.Profiles != 2 || len(out.sels) != 2 {
		t.Fatalf("expected 2 written before failure, summary=%+v written=%d", sum, len(out.sels))
	}
}

func TestRunContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := &mockOutput{}
	out.onWrite = func() {
		if len(out.sels) == 0 {
			cancel()
		}
	}
	p := New(&mockSource{profiles: profiles()}, firstLabelProcessor{}, out)

	_, err := p.Run(ctx, source.Config{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(out.sels) != 1 {
		t.Fatalf("expected 1 selection before cancel, got %d", len(out.sels))
	}
}

func TestClose(t *testing.T) {
	out := &mockOutput{}
	p := New(&mockSource{}, firstLabelProcessor{}, out)
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if !out.closed {
		t.Fatal("output not closed")
	}
}
