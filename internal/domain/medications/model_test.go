package medications

import (
	"errors"
	"testing"
	"time"
)

func validCreateInput() CreateInput {
	return CreateInput{
		Name: "Amoxicillin",
		Dosage: DosageInfo{
			Amount: "500",
			Unit:   "mg",
			Form:   FormOther,
		},
		Schedule: Schedule{
			Type:  FrequencyDaily,
			Times: []string{"08:00", "20:00"},
		},
		Duration: Duration{Type: DurationNumberOfDays, Value: 7},
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	now := time.Date(2026, time.January, 5, 10, 30, 0, 0, time.UTC)

	m, err := New(validCreateInput(), now)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if m.ID == "" {
		t.Fatalf("expected generated id")
	}
	if !m.StartDate.Equal(now) {
		t.Fatalf("expected StartDate defaulted to now, got %v", m.StartDate)
	}
	if m.Color != DefaultColor {
		t.Fatalf("expected default color %s, got %s", DefaultColor, m.Color)
	}
	if m.RefillReminder != DefaultRefillReminder {
		t.Fatalf("expected default refill reminder, got %#v", m.RefillReminder)
	}
	if m.Status == nil || len(m.Status) != 0 {
		t.Fatalf("expected empty (non-nil) status log, got %#v", m.Status)
	}
}

func TestNew_RequiresName(t *testing.T) {
	in := validCreateInput()
	in.Name = "   "

	_, err := New(in, time.Now())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["name"]; !ok {
		t.Fatalf("expected failure on name, got %#v", ve.Fields)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ValidationError to unwrap to ErrInvalidInput")
	}
}

func TestNew_DosageAmount_RejectsNonNumeric(t *testing.T) {
	for _, bad := range []string{"abc", "2e", "", "-1", "0", "10000"} {
		in := validCreateInput()
		in.Dosage.Amount = bad

		_, err := New(in, time.Now())
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("amount %q: expected *ValidationError, got %v", bad, err)
		}
		if _, ok := ve.Fields["dosage.amount"]; !ok {
			t.Fatalf("amount %q: expected failure on dosage.amount, got %#v", bad, ve.Fields)
		}
	}
}

func TestNew_DosageUnit_Vocabulary(t *testing.T) {
	// Unidad de otra forma se acepta: la restricción por forma es del
	// picker del formulario, no de la API.
	in := validCreateInput()
	in.Dosage.Form = FormTablet
	in.Dosage.Unit = "mg"
	if _, err := New(in, time.Now()); err != nil {
		t.Fatalf("expected mg to validate with tablet, got %v", err)
	}

	// Unidad fuera del vocabulario global se rechaza.
	in = validCreateInput()
	in.Dosage.Unit = "banana(s)"
	_, err := New(in, time.Now())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["dosage.unit"]; !ok {
		t.Fatalf("expected failure on dosage.unit, got %#v", ve.Fields)
	}
}

func TestNew_Duration_EndDateBeforeStartFails(t *testing.T) {
	start := day(2026, time.March, 10)
	end := day(2026, time.March, 1)

	in := validCreateInput()
	in.StartDate = &start
	in.Duration = Duration{Type: DurationEndDate, EndDate: &end}

	_, err := New(in, time.Now())
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if _, ok := ve.Fields["duration.endDate"]; !ok {
		t.Fatalf("expected failure on duration.endDate, got %#v", ve.Fields)
	}
}

func TestDuration_ExpiresOn(t *testing.T) {
	start := day(2026, time.January, 5)

	if _, ok := (Duration{Type: DurationOngoing}).ExpiresOn(start); ok {
		t.Fatalf("ongoing must not expire")
	}

	end, ok := (Duration{Type: DurationNumberOfDays, Value: 7}).ExpiresOn(start)
	if !ok || !end.Equal(day(2026, time.January, 11)) {
		t.Fatalf("7 days from jan 5: expected last active day jan 11, got %v", end)
	}

	end, ok = (Duration{Type: DurationNumberOfWeeks, Value: 2}).ExpiresOn(start)
	if !ok || !end.Equal(day(2026, time.January, 18)) {
		t.Fatalf("2 weeks from jan 5: expected last active day jan 18, got %v", end)
	}
}

func TestDuration_ActiveOn(t *testing.T) {
	start := day(2026, time.January, 5)
	d := Duration{Type: DurationNumberOfDays, Value: 3}

	if !d.ActiveOn(start, day(2026, time.January, 7)) {
		t.Fatalf("expected active on last day")
	}
	if d.ActiveOn(start, day(2026, time.January, 8)) {
		t.Fatalf("expected inactive past the last day")
	}
	if d.ActiveOn(start, day(2026, time.January, 4)) {
		t.Fatalf("expected inactive before start")
	}

	// start con offset de zona: la cobertura se decide por fecha civil.
	zoned := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.FixedZone("UTC-5", -5*3600))
	if !d.ActiveOn(zoned, day(2026, time.January, 5)) {
		t.Fatalf("expected active on start day across time zones")
	}
	if d.ActiveOn(zoned, day(2026, time.January, 8)) {
		t.Fatalf("expected inactive past the last day across time zones")
	}
}

func TestMedication_DueTimes(t *testing.T) {
	start := day(2026, time.January, 5) // lunes
	m := Medication{
		Schedule: Schedule{
			Type:  FrequencyWeekly,
			Times: []string{"08:00", "20:00"},
			Days:  []DayOfWeek{Monday},
		},
		Duration:  Duration{Type: DurationNumberOfWeeks, Value: 2},
		StartDate: start,
	}

	if got := m.DueTimes(day(2026, time.January, 12)); len(got) != 2 {
		t.Fatalf("expected 2 due times on second monday, got %#v", got)
	}
	if got := m.DueTimes(day(2026, time.January, 13)); got != nil {
		t.Fatalf("expected no due times on tuesday, got %#v", got)
	}
	// Tercer lunes: schedule ocurre pero la duración ya venció.
	if got := m.DueTimes(day(2026, time.January, 19)); got != nil {
		t.Fatalf("expected no due times past duration, got %#v", got)
	}
}

func TestDefaultUnitFor(t *testing.T) {
	if u := DefaultUnitFor(FormLiquid); u != "mL" {
		t.Fatalf("expected mL default for liquid, got %s", u)
	}
	if u := DefaultUnitFor(MedicationForm("nope")); u != "" {
		t.Fatalf("expected empty default for unknown form, got %s", u)
	}
}
