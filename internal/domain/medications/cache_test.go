package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"nursebot-api/internal/platform/logger"
)

func TestCache_RefreshReplacesSnapshot(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	if _, err := svc.Add(context.Background(), "user-1", validCreateInput()); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if c.IsLoading() {
		t.Fatalf("expected loading=false after refresh")
	}
	if c.Err() != "" {
		t.Fatalf("expected no error, got %q", c.Err())
	}
	if got := c.Medications(); len(got) != 1 || got[0].Name != "Amoxicillin" {
		t.Fatalf("unexpected snapshot: %#v", got)
	}
}

func TestCache_AddReconcilesFromServiceResponse(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	if err := c.Add(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	if got := c.Medications(); len(got) != 1 {
		t.Fatalf("expected snapshot with 1 medication, got %d", len(got))
	}
}

func TestCache_FailureKeepsPriorSnapshot(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	if err := c.Add(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	// El store empieza a fallar: el snapshot previo sobrevive.
	repo.getErr = errors.New("store down")
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatalf("expected Refresh to fail")
	}
	if c.Err() != "Failed to load medications" {
		t.Fatalf("unexpected error message: %q", c.Err())
	}
	if c.IsLoading() {
		t.Fatalf("expected loading=false after failure")
	}
	if got := c.Medications(); len(got) != 1 {
		t.Fatalf("failure must not clear the snapshot, got %#v", got)
	}

	// La próxima operación limpia el error.
	repo.getErr = nil
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh error: %v", err)
	}
	if c.Err() != "" {
		t.Fatalf("expected error cleared, got %q", c.Err())
	}
}

func TestCache_RecordDoseFailureLeavesStatusIntact(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	if err := c.Add(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("Add error: %v", err)
	}
	id := c.Medications()[0].ID

	if err := c.RecordDose(context.Background(), id, true, "8:00 AM"); err != nil {
		t.Fatalf("RecordDose error: %v", err)
	}

	repo.setErr = errors.New("write failed")
	if err := c.RecordDose(context.Background(), id, false, "9:00 PM"); err == nil {
		t.Fatalf("expected RecordDose to fail")
	}
	if c.Err() != "Failed to record dose" {
		t.Fatalf("unexpected error message: %q", c.Err())
	}
	if st := c.Medications()[0].Status; len(st) != 1 || st[0].Time != "8:00 AM" {
		t.Fatalf("failed dose must not touch the snapshot log, got %#v", st)
	}
}

func TestCache_SubscribeReceivesSnapshots(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	ch, cancel := c.Subscribe()
	defer cancel()

	if err := c.Add(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	select {
	case snap := <-ch:
		if len(snap) != 1 {
			t.Fatalf("expected snapshot with 1 medication, got %d", len(snap))
		}
	case <-time.After(time.Second):
		t.Fatalf("no snapshot delivered")
	}
}

func TestCache_CloseUnsubscribesAll(t *testing.T) {
	svc := NewService(newTestRepo(), logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())

	ch, _ := c.Subscribe()
	c.Close()

	if _, ok := <-ch; ok {
		t.Fatalf("expected channel closed after Close")
	}

	// Close repetido no debe panicar.
	c.Close()
}

func TestCache_MedicationsReturnsCopy(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())
	c := NewCache(svc, "user-1", logger.Nop())
	defer c.Close()

	if err := c.Add(context.Background(), validCreateInput()); err != nil {
		t.Fatalf("Add error: %v", err)
	}

	got := c.Medications()
	got[0].Name = "mutado"

	if c.Medications()[0].Name == "mutado" {
		t.Fatalf("caller mutation leaked into the cache snapshot")
	}
}
