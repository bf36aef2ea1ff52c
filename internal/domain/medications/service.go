package medications

import (
	"context"
	"strings"
	"time"

	"nursebot-api/internal/platform/logger"
)

// repoTimeout acota cada llamada al backing store. Sin este límite una
// llamada colgada deja isLoading en true para siempre.
const repoTimeout = 10 * time.Second

// Service media todo acceso a la colección de medicamentos.
// Post-condición de cada mutación: devuelve la colección completa y
// autoritativa, nunca solo el delta, para que el caller reemplace su
// cache al por mayor.
type Service struct {
	repo Repository
	log  logger.Logger
	now  func() time.Time
}

func NewService(repo Repository, log logger.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

// UpdateInput es un update parcial de campos top-level. El merge es
// SHALLOW a propósito, es parte del contrato público: para tocar un
// campo anidado hay que mandar el sub-objeto completo, p.ej. cambiar
// dosage.amount requiere pasar todo Dosage.
type UpdateInput struct {
	Name      *string
	Dosage    *DosageInfo
	Schedule  *Schedule
	Duration  *Duration
	StartDate *time.Time
	Color     *string
	Notes     *string

	Status *[]MedicationStatus

	RefillReminder *RefillReminder
	SideEffects    *[]string
	Interactions   *[]string
	Storage        *StorageConditions
}

func (in UpdateInput) apply(m Medication) Medication {
	if in.Name != nil {
		m.Name = *in.Name
	}
	if in.Dosage != nil {
		m.Dosage = *in.Dosage
	}
	if in.Schedule != nil {
		m.Schedule = *in.Schedule
	}
	if in.Duration != nil {
		m.Duration = *in.Duration
	}
	if in.StartDate != nil {
		m.StartDate = *in.StartDate
	}
	if in.Color != nil {
		m.Color = *in.Color
	}
	if in.Notes != nil {
		m.Notes = *in.Notes
	}
	if in.Status != nil {
		m.Status = *in.Status
	}
	if in.RefillReminder != nil {
		m.RefillReminder = *in.RefillReminder
	}
	if in.SideEffects != nil {
		m.SideEffects = *in.SideEffects
	}
	if in.Interactions != nil {
		m.Interactions = *in.Interactions
	}
	if in.Storage != nil {
		m.Storage = in.Storage
	}
	return m
}

// List devuelve la colección del usuario. Sin datos => vacía.
func (s *Service) List(ctx context.Context, userID string) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	return s.repo.GetAll(ctx, userID)
}

// Add valida los campos, construye el medicamento y lo persiste al
// final de la colección. Devuelve la colección actualizada.
func (s *Service) Add(ctx context.Context, userID string, in CreateInput) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	m, err := New(in, s.now())
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	meds, err := s.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	meds = append(meds, m)
	if err := s.repo.SetAll(ctx, userID, meds); err != nil {
		return nil, err
	}

	s.log.Info("medication added", map[string]any{
		"medication_id": m.ID,
		"name":          m.Name,
		"schedule":      string(m.Schedule.Type),
	})

	return meds, nil
}

// Delete borra el medicamento (y sus dosis) y devuelve la colección
// resultante. Un id inexistente no es error: la colección vuelve igual.
func (s *Service) Delete(ctx context.Context, userID, id string) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	if err := s.repo.DeleteByID(ctx, userID, id); err != nil {
		return nil, err
	}

	return s.repo.GetAll(ctx, userID)
}

// Update aplica el merge shallow sobre el medicamento que matchea id y
// persiste. Si el id no existe, la colección vuelve sin cambios: no-op,
// no error.
func (s *Service) Update(ctx context.Context, userID, id string, in UpdateInput) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	meds, err := s.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i, m := range meds {
		if m.ID == id {
			meds[i] = in.apply(m)
			break
		}
	}

	if err := s.repo.SetAll(ctx, userID, meds); err != nil {
		return nil, err
	}

	return meds, nil
}

// RecordDose agrega exactamente una entrada al log de status del
// medicamento. El log es append-only: las entradas previas quedan
// intactas, en orden. Si timeLabel viene vacío se deriva del reloj
// en formato "h:mm AM/PM".
func (s *Service) RecordDose(ctx context.Context, userID, id string, taken bool, timeLabel string) ([]Medication, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(id) == "" {
		return nil, ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, repoTimeout)
	defer cancel()

	meds, err := s.repo.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}

	var current *Medication
	for i := range meds {
		if meds[i].ID == id {
			current = &meds[i]
			break
		}
	}
	if current == nil {
		return nil, ErrNotFound
	}

	now := s.now()
	if strings.TrimSpace(timeLabel) == "" {
		timeLabel = now.Format("3:04 PM")
	}

	entry := MedicationStatus{
		Taken: taken,
		Date:  now,
		Time:  timeLabel,
	}

	updated := make([]MedicationStatus, 0, len(current.Status)+1)
	updated = append(updated, current.Status...)
	updated = append(updated, entry)

	meds2, err := s.Update(ctx, userID, id, UpdateInput{Status: &updated})
	if err != nil {
		return nil, err
	}

	s.log.Info("dose recorded", map[string]any{
		"medication_id": id,
		"taken":         taken,
		"time":          timeLabel,
	})

	return meds2, nil
}

// Due devuelve los medicamentos con toma programada para el día dado,
// junto con sus horarios.
func (s *Service) Due(ctx context.Context, userID string, day time.Time) ([]DueMedication, error) {
	meds, err := s.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]DueMedication, 0)
	for _, m := range meds {
		times := m.DueTimes(day)
		if len(times) == 0 {
			continue
		}
		out = append(out, DueMedication{Medication: m, Times: times})
	}
	return out, nil
}

// DueMedication es un medicamento con toma en el día consultado.
type DueMedication struct {
	Medication Medication
	Times      []string
}
