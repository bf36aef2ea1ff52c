package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"nursebot-api/internal/domain/medications"
	"nursebot-api/internal/platform/logger"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := Open(filepath.Join(t.TempDir(), "test.db"), medications.NewCodec(logger.Nop()), logger.Nop())
	if err != nil {
		t.Fatalf("Open error: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testMedication(id, name string) medications.Medication {
	return medications.Medication{
		ID:   id,
		Name: name,
		Dosage: medications.DosageInfo{
			Amount: "1",
			Unit:   "tablet(s)",
			Form:   medications.FormTablet,
		},
		Schedule: medications.Schedule{
			Type:  medications.FrequencyDaily,
			Times: []string{"08:00"},
		},
		Duration:       medications.Duration{Type: medications.DurationOngoing},
		StartDate:      time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC),
		Color:          medications.DefaultColor,
		Status:         []medications.MedicationStatus{},
		RefillReminder: medications.DefaultRefillReminder,
	}
}

func TestStore_GetAll_MissingUserIsEmpty(t *testing.T) {
	s := openTestStore(t)

	meds, err := s.GetAll(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("expected empty collection, got %d", len(meds))
	}
}

func TestStore_SetAllGetAll_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	in := []medications.Medication{
		testMedication("a", "Amoxicillin"),
		testMedication("b", "Paracetamol"),
	}
	if err := s.SetAll(ctx, "user-1", in); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	out, err := s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(out) != 2 || out[0].ID != "a" || out[1].ID != "b" {
		t.Fatalf("round trip lost records or order: %#v", out)
	}
	if !out[0].StartDate.Equal(in[0].StartDate) {
		t.Fatalf("start date changed: %v vs %v", out[0].StartDate, in[0].StartDate)
	}

	// Cada GetAll adicional devuelve lo mismo (carga idempotente).
	again, err := s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll #2 error: %v", err)
	}
	if len(again) != 2 {
		t.Fatalf("expected stable reads, got %d", len(again))
	}
}

func TestStore_UsersArePartitioned(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetAll(ctx, "user-1", []medications.Medication{testMedication("a", "A")}); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	other, err := s.GetAll(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(other) != 0 {
		t.Fatalf("user-2 must not see user-1 data, got %#v", other)
	}
}

func TestStore_DeleteByID(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.SetAll(ctx, "user-1", []medications.Medication{
		testMedication("a", "A"),
		testMedication("b", "B"),
	}); err != nil {
		t.Fatalf("SetAll error: %v", err)
	}

	if err := s.DeleteByID(ctx, "user-1", "a"); err != nil {
		t.Fatalf("DeleteByID error: %v", err)
	}
	out, _ := s.GetAll(ctx, "user-1")
	if len(out) != 1 || out[0].ID != "b" {
		t.Fatalf("expected only b to remain, got %#v", out)
	}

	// id inexistente: no-op.
	if err := s.DeleteByID(ctx, "user-1", "zzz"); err != nil {
		t.Fatalf("DeleteByID of missing id error: %v", err)
	}
	out, _ = s.GetAll(ctx, "user-1")
	if len(out) != 1 {
		t.Fatalf("expected collection unchanged, got %d", len(out))
	}
}

func TestStore_CorruptPayloadClearsAndReturnsEmpty(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.RawSet(ctx, "user-1", []byte("definitely not json")); err != nil {
		t.Fatalf("RawSet error: %v", err)
	}

	meds, err := s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("corrupt payload must read as empty, got %#v", meds)
	}

	// El blob roto se limpió: la próxima lectura también es vacía.
	meds, err = s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll #2 error: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("expected store cleared, got %#v", meds)
	}

	// Y la próxima escritura arranca de cero.
	if err := s.SetAll(ctx, "user-1", []medications.Medication{testMedication("a", "A")}); err != nil {
		t.Fatalf("SetAll after corruption error: %v", err)
	}
	meds, err = s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll after rewrite error: %v", err)
	}
	if len(meds) != 1 || meds[0].ID != "a" {
		t.Fatalf("expected fresh collection after corruption, got %#v", meds)
	}
}

func TestStore_RecordsWithBadRecordSurviveNeighbors(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Un registro ilegible en el blob no tumba a los vecinos.
	payload := []byte(`[
		{"id":"a","name":"A","dosage":{"amount":"1","unit":"tablet(s)","form":"tablet"},"schedule":{"type":"daily","times":["08:00"]},"duration":{"type":"ongoing"},"color":"#000000","refillReminder":{"enabled":true,"threshold":7,"unit":"days"},"status":[]},
		12345
	]`)
	if err := s.RawSet(ctx, "user-1", payload); err != nil {
		t.Fatalf("RawSet error: %v", err)
	}

	meds, err := s.GetAll(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetAll error: %v", err)
	}
	if len(meds) != 1 || meds[0].ID != "a" {
		t.Fatalf("expected surviving record a, got %#v", meds)
	}
}
