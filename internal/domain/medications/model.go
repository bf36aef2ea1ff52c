package medications

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultColor es el tag de color cuando el formulario no elige uno.
	DefaultColor = "#000000"

	// maxDosageAmount es el tope razonable del formulario.
	maxDosageAmount = 9999
)

// DosageInfo describe cuánto y en qué forma se toma el medicamento.
// Amount queda como string numérico: así lo captura el formulario y
// así viaja al store (se valida, no se coerciona).
type DosageInfo struct {
	Amount string         `json:"amount"`
	Unit   string         `json:"unit"`
	Form   MedicationForm `json:"form"`
}

// RefillReminder configura el aviso de reposición.
type RefillReminder struct {
	Enabled   bool   `json:"enabled"`
	Threshold int    `json:"threshold"`
	Unit      string `json:"unit"` // siempre "days"
}

// DefaultRefillReminder es el default del formulario.
var DefaultRefillReminder = RefillReminder{
	Enabled:   true,
	Threshold: 7,
	Unit:      "days",
}

// StorageConditions son las instrucciones de conservación (opcionales).
type StorageConditions struct {
	Temperature string `json:"temperature,omitempty"`
	Light       string `json:"light,omitempty"`
	Special     string `json:"special,omitempty"`
}

// MedicationStatus es un evento de dosis (tomada o no).
// El log es append-only: una entrada escrita no se muta ni se reordena;
// solo desaparece cuando se borra el medicamento completo.
type MedicationStatus struct {
	Taken bool      `json:"taken"`
	Date  time.Time `json:"date"` // momento real de la dosis, no del write
	Time  string    `json:"time"` // "h:mm AM/PM", para mostrar
}

// Medication es el agregado raíz.
type Medication struct {
	ID   string
	Name string

	Dosage   DosageInfo
	Schedule Schedule
	Duration Duration

	StartDate time.Time
	Color     string
	Notes     string

	Status []MedicationStatus

	RefillReminder RefillReminder
	SideEffects    []string
	Interactions   []string
	Storage        *StorageConditions
}

// CreateInput son los campos crudos del formulario multi-paso.
type CreateInput struct {
	Name     string
	Dosage   DosageInfo
	Schedule Schedule
	Duration Duration

	StartDate *time.Time // nil => now
	Color     string
	Notes     string

	RefillReminder *RefillReminder
	SideEffects    []string
	Interactions   []string
	Storage        *StorageConditions
}

// New valida los campos y construye el Medication con sus defaults.
// No persiste nada; eso es trabajo del Service.
// Devuelve *ValidationError con las fallas por campo.
func New(in CreateInput, now time.Time) (Medication, error) {
	ve := newValidationError()

	if strings.TrimSpace(in.Name) == "" {
		ve.add("name", "medication name is required")
	}

	validateDosage(in.Dosage, ve)

	startDate := now
	if in.StartDate != nil {
		startDate = *in.StartDate
	}

	in.Schedule.validate("schedule", ve)
	in.Duration.validate("duration", startDate, ve)

	if !ve.empty() {
		return Medication{}, ve
	}

	color := strings.TrimSpace(in.Color)
	if color == "" {
		color = DefaultColor
	}

	reminder := DefaultRefillReminder
	if in.RefillReminder != nil {
		reminder = *in.RefillReminder
	}

	m := Medication{
		ID:             uuid.NewString(),
		Name:           strings.TrimSpace(in.Name),
		Dosage:         in.Dosage,
		Schedule:       in.Schedule,
		Duration:       in.Duration,
		StartDate:      startDate,
		Color:          color,
		Notes:          strings.TrimSpace(in.Notes),
		Status:         []MedicationStatus{},
		RefillReminder: reminder,
		SideEffects:    in.SideEffects,
		Interactions:   in.Interactions,
		Storage:        in.Storage,
	}

	return m, nil
}

func validateDosage(d DosageInfo, ve *ValidationError) {
	amount := strings.TrimSpace(d.Amount)
	if amount == "" {
		ve.add("dosage.amount", "dosage amount is required")
	} else {
		// Input a medio tipear ("1.", "2e") se rechaza, no se coerciona a 0.
		n, err := strconv.ParseFloat(amount, 64)
		switch {
		case err != nil:
			ve.add("dosage.amount", "please enter a valid number")
		case n <= 0:
			ve.add("dosage.amount", "amount must be greater than 0")
		case n > maxDosageAmount:
			ve.add("dosage.amount", "amount is too large")
		}
	}

	if !ValidForm(d.Form) {
		ve.add("dosage.form", "unknown medication form")
		return
	}

	if strings.TrimSpace(d.Unit) == "" {
		ve.add("dosage.unit", "please select a unit")
	} else if !ValidUnit(d.Unit) {
		ve.add("dosage.unit", "unknown dosage unit")
	}
}

// DueTimes devuelve los horarios de toma que corresponden al día dado,
// o nil si el schedule no ocurre ese día o la duración ya venció.
func (m Medication) DueTimes(day time.Time) []string {
	if !m.Duration.ActiveOn(m.StartDate, day) {
		return nil
	}
	if !m.Schedule.OccursOn(m.StartDate, day) {
		return nil
	}

	out := make([]string, len(m.Schedule.Times))
	copy(out, m.Schedule.Times)
	return out
}
