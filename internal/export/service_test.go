package export

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/hrsync-hq/bamboo-sync/pkg/bamboohr"
	"github.com/hrsync-hq/bamboo-sync/pkg/publishers"
	"github.com/hrsync-hq/bamboo-sync/pkg/reports"
)

func strPtr(s string) *string { return &s }

// fakeClient returns a preset report or an error.
type fakeClient struct {
	report *bamboohr.CustomReport
	err    error
}

func (f *fakeClient) GetCustomReportFull(_ context.Context, _ string, _ []string, _ bool) (*bamboohr.CustomReport, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

// fakePublisher records published events and can inject errors.
type fakePublisher struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
}

func (f *fakePublisher) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Employee.ID == f.errOnID {
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeStore tracks seen fingerprints in memory.
type fakeStore struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeStore() *fakeStore { return &fakeStore{seen: map[string]bool{}} }

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) SeenRecord(fp string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen[fp], nil
}

func (f *fakeStore) MarkRecord(fp string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seen[fp] = true
	return nil
}

func rosterPreset() reports.Preset {
	return reports.Preset{ID: "roster", Title: "Roster", Fields: []string{"id", "firstName"}}
}

func TestServicePublishesNewRecords(t *testing.T) {
	client := &fakeClient{report: &bamboohr.CustomReport{
		Title: "Roster",
		Employees: []bamboohr.Record{
			{"id": strPtr("1"), "firstName": strPtr("Ada")},
			{"id": strPtr("2"), "firstName": strPtr("Linus")},
		},
	}}
	pub := &fakePublisher{}
	store := newFakeStore()

	svc := NewService(client, store, pub, nil)
	if err := svc.Run(context.Background(), []reports.Preset{rosterPreset()}); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(pub.events) != 2 {
		t.Fatalf("expected 2 published events, got %d", len(pub.events))
	}
	if pub.events[0].ReportID != "roster" || pub.events[0].Employee.ID != "1" {
		t.Fatalf("unexpected first event: %+v", pub.events[0])
	}
	if len(store.seen) != 2 {
		t.Fatalf("expected 2 marked fingerprints, got %d", len(store.seen))
	}
}

func TestServiceSkipsSeenRecords(t *testing.T) {
	client := &fakeClient{report: &bamboohr.CustomReport{
		Employees: []bamboohr.Record{{"id": strPtr("1"), "firstName": strPtr("Ada")}},
	}}
	pub := &fakePublisher{}
	store := newFakeStore()
	svc := NewService(client, store, pub, nil)

	if err := svc.Run(context.Background(), []reports.Preset{rosterPreset()}); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := svc.Run(context.Background(), []reports.Preset{rosterPreset()}); err != nil {
		t.Fatalf("second run: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("unchanged record must publish once, got %d events", len(pub.events))
	}
}

func TestServiceDoesNotMarkFailedPublishes(t *testing.T) {
	client := &fakeClient{report: &bamboohr.CustomReport{
		Employees: []bamboohr.Record{{"id": strPtr("1")}},
	}}
	pub := &fakePublisher{errOnID: "1"}
	store := newFakeStore()
	svc := NewService(client, store, pub, nil)

	if err := svc.Run(context.Background(), []reports.Preset{rosterPreset()}); err == nil {
		t.Fatalf("expected aggregated publish error")
	}
	if len(store.seen) != 0 {
		t.Fatalf("failed publish must not be marked as exported")
	}
}

func TestServiceContinuesAcrossFailingPresets(t *testing.T) {
	// First preset fails at fetch time, second succeeds; service must run both.
	calls := 0
	client := &switchClient{fn: func() (*bamboohr.CustomReport, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("api down")
		}
		return &bamboohr.CustomReport{Employees: []bamboohr.Record{{"id": strPtr("1")}}}, nil
	}}
	pub := &fakePublisher{}
	svc := NewService(client, newFakeStore(), pub, nil)

	presets := []reports.Preset{
		{ID: "broken", Fields: []string{"id"}},
		{ID: "roster", Fields: []string{"id"}},
	}
	if err := svc.Run(context.Background(), presets); err == nil {
		t.Fatalf("expected aggregated error from broken preset")
	}
	if len(pub.events) != 1 {
		t.Fatalf("second preset should still publish, got %d events", len(pub.events))
	}
}

type switchClient struct {
	fn func() (*bamboohr.CustomReport, error)
}

func (s *switchClient) GetCustomReportFull(context.Context, string, []string, bool) (*bamboohr.CustomReport, error) {
	return s.fn()
}

func TestServiceRequiresPresets(t *testing.T) {
	svc := NewService(&fakeClient{}, nil, &fakePublisher{}, nil)
	if err := svc.Run(context.Background(), nil); err == nil {
		t.Fatalf("expected error for empty preset list")
	}
}
