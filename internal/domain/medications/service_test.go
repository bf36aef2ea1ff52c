package medications

import (
	"context"
	"errors"
	"testing"
	"time"

	"nursebot-api/internal/platform/logger"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byUser map[string][]Medication

	// errores inyectables
	getErr error
	setErr error
	delErr error
}

func newTestRepo() *testRepo {
	return &testRepo{byUser: map[string][]Medication{}}
}

func (r *testRepo) GetAll(ctx context.Context, userID string) ([]Medication, error) {
	if r.getErr != nil {
		return nil, r.getErr
	}
	out := make([]Medication, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}

func (r *testRepo) SetAll(ctx context.Context, userID string, meds []Medication) error {
	if r.setErr != nil {
		return r.setErr
	}
	stored := make([]Medication, len(meds))
	copy(stored, meds)
	r.byUser[userID] = stored
	return nil
}

func (r *testRepo) DeleteByID(ctx context.Context, userID, id string) error {
	if r.delErr != nil {
		return r.delErr
	}
	meds := r.byUser[userID]
	out := make([]Medication, 0, len(meds))
	for _, m := range meds {
		if m.ID != id {
			out = append(out, m)
		}
	}
	r.byUser[userID] = out
	return nil
}

func (r *testRepo) Clear(ctx context.Context, userID string) error {
	delete(r.byUser, userID)
	return nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Add_AppendsAndReturnsCollection(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	meds, err := svc.Add(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Add #1 error: %v", err)
	}
	if len(meds) != 1 {
		t.Fatalf("expected 1 medication, got %d", len(meds))
	}

	in2 := validCreateInput()
	in2.Name = "Paracetamol"
	meds, err = svc.Add(context.Background(), "user-1", in2)
	if err != nil {
		t.Fatalf("Add #2 error: %v", err)
	}
	if len(meds) != 2 {
		t.Fatalf("expected 2 medications, got %d", len(meds))
	}
	// El nuevo queda al final, el orden previo no cambia.
	if meds[0].Name != "Amoxicillin" || meds[1].Name != "Paracetamol" {
		t.Fatalf("wrong order: %s, %s", meds[0].Name, meds[1].Name)
	}
	if meds[0].ID == meds[1].ID {
		t.Fatalf("expected distinct ids")
	}
}

func TestService_Add_ValidationFailureDoesNotPersist(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	in := validCreateInput()
	in.Schedule = Schedule{Type: FrequencyWeekly, Times: []string{"08:00"}} // sin días

	_, err := svc.Add(context.Background(), "user-1", in)
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(repo.byUser["user-1"]) != 0 {
		t.Fatalf("invalid medication must not be persisted")
	}
}

func TestService_List_EmptyUserReturnsEmpty(t *testing.T) {
	svc := NewService(newTestRepo(), logger.Nop())

	meds, err := svc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(meds) != 0 {
		t.Fatalf("expected empty collection, got %d", len(meds))
	}
}

func TestService_List_RejectsEmptyUser(t *testing.T) {
	svc := NewService(newTestRepo(), logger.Nop())

	if _, err := svc.List(context.Background(), "  "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestService_Update_ShallowMergeReplacesSubObject(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	meds, err := svc.Add(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	id := meds[0].ID

	// Mandar dosage reemplaza el sub-objeto entero: unit y form vienen
	// del valor nuevo, no se preservan del viejo.
	newDosage := DosageInfo{Amount: "250", Unit: "mL", Form: FormLiquid}
	meds, err = svc.Update(context.Background(), "user-1", id, UpdateInput{Dosage: &newDosage})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if meds[0].Dosage != newDosage {
		t.Fatalf("expected dosage replaced wholesale, got %#v", meds[0].Dosage)
	}
	// Los campos no mandados quedan intactos.
	if meds[0].Name != "Amoxicillin" {
		t.Fatalf("update touched unrelated field name: %s", meds[0].Name)
	}
}

func TestService_Update_MissingIDIsNoOp(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	before, err := svc.Add(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}

	name := "Otro"
	after, err := svc.Update(context.Background(), "user-1", "no-such-id", UpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if len(after) != len(before) || after[0].Name != before[0].Name {
		t.Fatalf("expected unchanged collection, got %#v", after)
	}
}

func TestService_Delete_RemovesOnlyTarget(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	meds, _ := svc.Add(context.Background(), "user-1", validCreateInput())
	in2 := validCreateInput()
	in2.Name = "Paracetamol"
	meds, _ = svc.Add(context.Background(), "user-1", in2)

	out, err := svc.Delete(context.Background(), "user-1", meds[0].ID)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if len(out) != 1 || out[0].Name != "Paracetamol" {
		t.Fatalf("expected only Paracetamol to remain, got %#v", out)
	}

	// id inexistente: no-op, no error.
	out, err = svc.Delete(context.Background(), "user-1", "no-such-id")
	if err != nil {
		t.Fatalf("Delete of missing id error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected collection unchanged, got %d", len(out))
	}
}

func TestService_RecordDose_AppendsExactlyOneEntry(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	now := time.Date(2026, time.January, 5, 14, 30, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	meds, err := svc.Add(context.Background(), "user-1", validCreateInput())
	if err != nil {
		t.Fatalf("Add error: %v", err)
	}
	id := meds[0].ID

	meds, err = svc.RecordDose(context.Background(), "user-1", id, true, "8:00 AM")
	if err != nil {
		t.Fatalf("RecordDose #1 error: %v", err)
	}
	if len(meds[0].Status) != 1 {
		t.Fatalf("expected 1 status entry, got %d", len(meds[0].Status))
	}

	meds, err = svc.RecordDose(context.Background(), "user-1", id, false, "")
	if err != nil {
		t.Fatalf("RecordDose #2 error: %v", err)
	}
	st := meds[0].Status
	if len(st) != 2 {
		t.Fatalf("expected 2 status entries, got %d", len(st))
	}
	// Append-only: la entrada previa queda intacta, en orden.
	if !st[0].Taken || st[0].Time != "8:00 AM" {
		t.Fatalf("first entry mutated: %#v", st[0])
	}
	if st[1].Taken {
		t.Fatalf("expected second entry taken=false")
	}
	// Sin time explícito se deriva del reloj en "h:mm AM/PM".
	if st[1].Time != "2:30 PM" {
		t.Fatalf("expected derived time 2:30 PM, got %s", st[1].Time)
	}
	if !st[1].Date.Equal(now) {
		t.Fatalf("expected status date = now, got %v", st[1].Date)
	}
}

func TestService_RecordDose_UnknownMedication(t *testing.T) {
	svc := NewService(newTestRepo(), logger.Nop())

	_, err := svc.RecordDose(context.Background(), "user-1", "no-such-id", true, "")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Due_FiltersByScheduleAndDuration(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, logger.Nop())

	start := day(2026, time.January, 5) // lunes
	inDaily := validCreateInput()
	inDaily.StartDate = &start
	inDaily.Duration = Duration{Type: DurationNumberOfDays, Value: 3}

	inWeekly := validCreateInput()
	inWeekly.Name = "Vitamina D"
	inWeekly.StartDate = &start
	inWeekly.Schedule = Schedule{
		Type:  FrequencyWeekly,
		Times: []string{"09:00"},
		Days:  []DayOfWeek{Friday},
	}
	inWeekly.Duration = Duration{Type: DurationOngoing}

	if _, err := svc.Add(context.Background(), "user-1", inDaily); err != nil {
		t.Fatalf("Add daily error: %v", err)
	}
	if _, err := svc.Add(context.Background(), "user-1", inWeekly); err != nil {
		t.Fatalf("Add weekly error: %v", err)
	}

	// Martes 6: solo el daily (el weekly es de viernes).
	due, err := svc.Due(context.Background(), "user-1", day(2026, time.January, 6))
	if err != nil {
		t.Fatalf("Due error: %v", err)
	}
	if len(due) != 1 || due[0].Medication.Name != "Amoxicillin" {
		t.Fatalf("expected only daily due on tuesday, got %#v", due)
	}
	if len(due[0].Times) != 2 {
		t.Fatalf("expected 2 times, got %#v", due[0].Times)
	}

	// Viernes 9: el daily ya venció (3 días), queda el weekly.
	due, err = svc.Due(context.Background(), "user-1", day(2026, time.January, 9))
	if err != nil {
		t.Fatalf("Due error: %v", err)
	}
	if len(due) != 1 || due[0].Medication.Name != "Vitamina D" {
		t.Fatalf("expected only weekly due on friday, got %#v", due)
	}
}

func TestService_RepoFailurePropagates(t *testing.T) {
	repo := newTestRepo()
	repo.getErr = errors.New("store down")
	svc := NewService(repo, logger.Nop())

	if _, err := svc.List(context.Background(), "user-1"); err == nil {
		t.Fatalf("expected error from failing repo")
	}
	if _, err := svc.Add(context.Background(), "user-1", validCreateInput()); err == nil {
		t.Fatalf("expected Add to fail when repo fails")
	}
}
