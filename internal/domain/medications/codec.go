package medications

import (
	"encoding/json"
	"time"

	"nursebot-api/internal/platform/logger"
)

// StorageRecord es la codificación storage-safe de un Medication:
// mismas claves que el agregado pero con fechas como strings ISO-8601.
// Es el contrato on-disk y on-wire del payload persistido.
type StorageRecord struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Dosage   DosageInfo      `json:"dosage"`
	Schedule Schedule        `json:"schedule"`
	Duration StorageDuration `json:"duration"`

	StartDate string `json:"startDate,omitempty"`
	Color     string `json:"color"`
	Notes     string `json:"notes,omitempty"`

	Status []StorageStatus `json:"status"`

	RefillReminder RefillReminder     `json:"refillReminder"`
	SideEffects    []string           `json:"sideEffects,omitempty"`
	Interactions   []string           `json:"interactions,omitempty"`
	Storage        *StorageConditions `json:"storage,omitempty"`
}

type StorageDuration struct {
	Type    DurationType `json:"type"`
	Value   int          `json:"value,omitempty"`
	EndDate string       `json:"endDate,omitempty"`
}

type StorageStatus struct {
	Taken bool   `json:"taken"`
	Date  string `json:"date"`
	Time  string `json:"time"`
}

// Codec convierte entre Medication y StorageRecord.
// Ley de round-trip: Deserialize(Serialize(m)) == m para todo m válido,
// comparando fechas por instante.
type Codec struct {
	log logger.Logger
	now func() time.Time
}

func NewCodec(log logger.Logger) *Codec {
	return &Codec{
		log: log,
		now: time.Now,
	}
}

// Serialize codifica las fechas como ISO-8601 (RFC3339 con nanos).
func (c *Codec) Serialize(m Medication) StorageRecord {
	rec := StorageRecord{
		ID:       m.ID,
		Name:     m.Name,
		Dosage:   m.Dosage,
		Schedule: m.Schedule,
		Duration: StorageDuration{
			Type:  m.Duration.Type,
			Value: m.Duration.Value,
		},
		Color:          m.Color,
		Notes:          m.Notes,
		RefillReminder: m.RefillReminder,
		SideEffects:    m.SideEffects,
		Interactions:   m.Interactions,
		Storage:        m.Storage,
	}

	if m.Duration.EndDate != nil {
		rec.Duration.EndDate = m.Duration.EndDate.Format(time.RFC3339Nano)
	}
	if !m.StartDate.IsZero() {
		rec.StartDate = m.StartDate.Format(time.RFC3339Nano)
	}

	rec.Status = make([]StorageStatus, 0, len(m.Status))
	for _, st := range m.Status {
		rec.Status = append(rec.Status, StorageStatus{
			Taken: st.Taken,
			Date:  st.Date.Format(time.RFC3339Nano),
			Time:  st.Time,
		})
	}

	return rec
}

// Deserialize vuelve a fechas ricas. Recuperación defensiva por campo:
// una fecha opcional que no parsea se descarta (queda vacía) y una fecha
// de status inválida se reemplaza por "ahora" (el timestamp es obligatorio
// ahí). Un campo malo no tumba el registro completo.
func (c *Codec) Deserialize(rec StorageRecord) Medication {
	m := Medication{
		ID:       rec.ID,
		Name:     rec.Name,
		Dosage:   rec.Dosage,
		Schedule: rec.Schedule,
		Duration: Duration{
			Type:  rec.Duration.Type,
			Value: rec.Duration.Value,
		},
		Color:          rec.Color,
		Notes:          rec.Notes,
		RefillReminder: rec.RefillReminder,
		SideEffects:    rec.SideEffects,
		Interactions:   rec.Interactions,
		Storage:        rec.Storage,
	}

	if rec.Duration.EndDate != "" {
		if t, err := time.Parse(time.RFC3339, rec.Duration.EndDate); err == nil {
			m.Duration.EndDate = &t
		} else {
			c.log.Warn("invalid duration end date, dropping", map[string]any{
				"medication_id": rec.ID,
				"value":         rec.Duration.EndDate,
			})
		}
	}

	if rec.StartDate != "" {
		if t, err := time.Parse(time.RFC3339, rec.StartDate); err == nil {
			m.StartDate = t
		} else {
			c.log.Warn("invalid start date, dropping", map[string]any{
				"medication_id": rec.ID,
				"value":         rec.StartDate,
			})
		}
	}

	m.Status = make([]MedicationStatus, 0, len(rec.Status))
	for _, st := range rec.Status {
		d, err := time.Parse(time.RFC3339, st.Date)
		if err != nil {
			c.log.Warn("invalid status date, using current time", map[string]any{
				"medication_id": rec.ID,
				"value":         st.Date,
			})
			d = c.now()
		}
		m.Status = append(m.Status, MedicationStatus{
			Taken: st.Taken,
			Date:  d,
			Time:  st.Time,
		})
	}

	return m
}

// EncodeCollection serializa la colección completa como array JSON.
func (c *Codec) EncodeCollection(meds []Medication) ([]byte, error) {
	recs := make([]StorageRecord, 0, len(meds))
	for _, m := range meds {
		recs = append(recs, c.Serialize(m))
	}
	return json.Marshal(recs)
}

// DecodeCollection parsea el payload crudo del store.
// Si el top-level no es un array JSON devuelve ErrCorruptPayload: el
// caller descarta todo y arranca vacío ("corrupto" = "vacío", nunca
// "confiar a medias"). Un registro individual que no parsea se saltea
// con warning; los demás sobreviven (aislamiento por registro).
func (c *Codec) DecodeCollection(raw []byte) ([]Medication, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, ErrCorruptPayload
	}

	meds := make([]Medication, 0, len(items))
	for i, item := range items {
		var rec StorageRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			c.log.Warn("skipping unreadable medication record", map[string]any{
				"index": i,
				"err":   err.Error(),
			})
			continue
		}
		meds = append(meds, c.Deserialize(rec))
	}

	return meds, nil
}
