package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"nursebot-api/internal/domain/medications"
	"nursebot-api/internal/platform/logger"
)

// MedicationsRepo es el backing store relacional remoto.
//
// Esquema:
//
//	medications(id PK, user_id, name, dosage_*, schedule JSONB,
//	            duration JSONB, start_date, color, notes, refill_*,
//	            side_effects JSONB, interactions JSONB, storage_*,
//	            position)
//	medication_doses(medication_id, seq, taken, dose_date, dose_time,
//	                 PK(medication_id, seq))
//
// El log de dosis vive en su propia tabla, append-only: SetAll solo
// inserta la cola nueva de cada log, nunca reescribe filas existentes.
type MedicationsRepo struct {
	db    *sql.DB
	codec *medications.Codec
	log   logger.Logger
}

func NewMedicationsRepo(db *sql.DB, codec *medications.Codec, log logger.Logger) *MedicationsRepo {
	return &MedicationsRepo{db: db, codec: codec, log: log}
}

func (r *MedicationsRepo) GetAll(ctx context.Context, userID string) ([]medications.Medication, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, name,
			dosage_amount, dosage_unit, dosage_form,
			schedule, duration,
			start_date, color, notes,
			refill_enabled, refill_threshold, refill_unit,
			side_effects, interactions,
			storage_temperature, storage_light, storage_special
		FROM medications
		WHERE user_id = $1
		ORDER BY position
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	meds := make([]medications.Medication, 0)
	index := map[string]int{}

	for rows.Next() {
		rec, err := r.scanRecord(rows)
		if err != nil {
			return nil, err
		}
		index[rec.ID] = len(meds)
		meds = append(meds, r.codec.Deserialize(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(meds) == 0 {
		return meds, nil
	}

	// Log de dosis en orden de inserción (seq).
	doseRows, err := r.db.QueryContext(ctx, `
		SELECT d.medication_id, d.taken, d.dose_date, d.dose_time
		FROM medication_doses d
		JOIN medications m ON m.id = d.medication_id
		WHERE m.user_id = $1
		ORDER BY d.medication_id, d.seq
	`, userID)
	if err != nil {
		return nil, err
	}
	defer doseRows.Close()

	for doseRows.Next() {
		var (
			medID    string
			taken    bool
			doseDate time.Time
			doseTime string
		)
		if err := doseRows.Scan(&medID, &taken, &doseDate, &doseTime); err != nil {
			return nil, err
		}
		i, ok := index[medID]
		if !ok {
			continue
		}
		meds[i].Status = append(meds[i].Status, medications.MedicationStatus{
			Taken: taken,
			Date:  doseDate,
			Time:  doseTime,
		})
	}

	return meds, doseRows.Err()
}

func (r *MedicationsRepo) SetAll(ctx context.Context, userID string, meds []medications.Medication) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Medicamentos que salieron de la colección: dosis primero.
	keep := map[string]struct{}{}
	for _, m := range meds {
		keep[m.ID] = struct{}{}
	}

	existing, err := existingIDs(ctx, tx, userID)
	if err != nil {
		return err
	}
	for _, id := range existing {
		if _, ok := keep[id]; ok {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM medication_doses WHERE medication_id = $1`, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM medications WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
			return err
		}
	}

	for pos, m := range meds {
		if err := r.upsert(ctx, tx, userID, m, pos); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// DeleteByID borra primero las filas de dosis dependientes y después el
// medicamento, en llamadas separadas (así se comporta el store remoto:
// no hay transacción que las abrace). Si las dosis ya se borraron y el
// medicamento falla, se reporta *ReferentialError para que el retry no
// intente re-borrar dosis que ya no están.
func (r *MedicationsRepo) DeleteByID(ctx context.Context, userID, id string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM medication_doses WHERE medication_id = $1`, id); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM medications WHERE id = $1 AND user_id = $2`, id, userID); err != nil {
		return &medications.ReferentialError{MedicationID: id, Err: err}
	}

	return nil
}

func (r *MedicationsRepo) Clear(ctx context.Context, userID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM medication_doses
		WHERE medication_id IN (SELECT id FROM medications WHERE user_id = $1)
	`, userID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM medications WHERE user_id = $1`, userID); err != nil {
		return err
	}

	return tx.Commit()
}

func existingIDs(ctx context.Context, tx *sql.Tx, userID string) ([]string, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id FROM medications WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *MedicationsRepo) upsert(ctx context.Context, tx *sql.Tx, userID string, m medications.Medication, pos int) error {
	rec := r.codec.Serialize(m)

	scheduleJSON, err := json.Marshal(rec.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}
	durationJSON, err := json.Marshal(rec.Duration)
	if err != nil {
		return fmt.Errorf("marshal duration: %w", err)
	}
	sideEffectsJSON, err := json.Marshal(rec.SideEffects)
	if err != nil {
		return fmt.Errorf("marshal side effects: %w", err)
	}
	interactionsJSON, err := json.Marshal(rec.Interactions)
	if err != nil {
		return fmt.Errorf("marshal interactions: %w", err)
	}

	var startDate *time.Time
	if !m.StartDate.IsZero() {
		startDate = &m.StartDate
	}

	var storageTemp, storageLight, storageSpecial *string
	if m.Storage != nil {
		storageTemp = &m.Storage.Temperature
		storageLight = &m.Storage.Light
		storageSpecial = &m.Storage.Special
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO medications (
			id, user_id, name,
			dosage_amount, dosage_unit, dosage_form,
			schedule, duration,
			start_date, color, notes,
			refill_enabled, refill_threshold, refill_unit,
			side_effects, interactions,
			storage_temperature, storage_light, storage_special,
			position
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			dosage_amount = excluded.dosage_amount,
			dosage_unit = excluded.dosage_unit,
			dosage_form = excluded.dosage_form,
			schedule = excluded.schedule,
			duration = excluded.duration,
			start_date = excluded.start_date,
			color = excluded.color,
			notes = excluded.notes,
			refill_enabled = excluded.refill_enabled,
			refill_threshold = excluded.refill_threshold,
			refill_unit = excluded.refill_unit,
			side_effects = excluded.side_effects,
			interactions = excluded.interactions,
			storage_temperature = excluded.storage_temperature,
			storage_light = excluded.storage_light,
			storage_special = excluded.storage_special,
			position = excluded.position
	`,
		m.ID, userID, m.Name,
		m.Dosage.Amount, m.Dosage.Unit, string(m.Dosage.Form),
		scheduleJSON, durationJSON,
		startDate, m.Color, m.Notes,
		m.RefillReminder.Enabled, m.RefillReminder.Threshold, m.RefillReminder.Unit,
		sideEffectsJSON, interactionsJSON,
		storageTemp, storageLight, storageSpecial,
		pos,
	); err != nil {
		return err
	}

	// Append-only: solo insertamos la cola nueva del log de dosis.
	var count int
	if err := tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM medication_doses WHERE medication_id = $1`, m.ID,
	).Scan(&count); err != nil {
		return err
	}

	for seq := count; seq < len(m.Status); seq++ {
		st := m.Status[seq]
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO medication_doses (medication_id, seq, taken, dose_date, dose_time)
			VALUES ($1,$2,$3,$4,$5)
		`, m.ID, seq, st.Taken, st.Date, st.Time); err != nil {
			return err
		}
	}

	return nil
}

// scanRecord arma el StorageRecord de una fila; las fechas quedan en
// strings ISO y el codec hace la recuperación defensiva al deserializar.
func (r *MedicationsRepo) scanRecord(rows *sql.Rows) (medications.StorageRecord, error) {
	var (
		rec              medications.StorageRecord
		form             string
		scheduleJSON     []byte
		durationJSON     []byte
		startDate        sql.NullTime
		notes            sql.NullString
		sideEffectsJSON  []byte
		interactionsJSON []byte
		storageTemp      sql.NullString
		storageLight     sql.NullString
		storageSpecial   sql.NullString
	)

	if err := rows.Scan(
		&rec.ID, &rec.Name,
		&rec.Dosage.Amount, &rec.Dosage.Unit, &form,
		&scheduleJSON, &durationJSON,
		&startDate, &rec.Color, &notes,
		&rec.RefillReminder.Enabled, &rec.RefillReminder.Threshold, &rec.RefillReminder.Unit,
		&sideEffectsJSON, &interactionsJSON,
		&storageTemp, &storageLight, &storageSpecial,
	); err != nil {
		return medications.StorageRecord{}, err
	}

	rec.Dosage.Form = medications.MedicationForm(form)
	rec.Notes = notes.String

	if err := json.Unmarshal(scheduleJSON, &rec.Schedule); err != nil {
		return medications.StorageRecord{}, fmt.Errorf("unmarshal schedule: %w", err)
	}
	if err := json.Unmarshal(durationJSON, &rec.Duration); err != nil {
		return medications.StorageRecord{}, fmt.Errorf("unmarshal duration: %w", err)
	}
	if len(sideEffectsJSON) > 0 {
		if err := json.Unmarshal(sideEffectsJSON, &rec.SideEffects); err != nil {
			return medications.StorageRecord{}, fmt.Errorf("unmarshal side effects: %w", err)
		}
	}
	if len(interactionsJSON) > 0 {
		if err := json.Unmarshal(interactionsJSON, &rec.Interactions); err != nil {
			return medications.StorageRecord{}, fmt.Errorf("unmarshal interactions: %w", err)
		}
	}

	if startDate.Valid {
		rec.StartDate = startDate.Time.Format(time.RFC3339Nano)
	}
	if storageTemp.Valid || storageLight.Valid || storageSpecial.Valid {
		rec.Storage = &medications.StorageConditions{
			Temperature: storageTemp.String,
			Light:       storageLight.String,
			Special:     storageSpecial.String,
		}
	}

	return rec, nil
}

var _ medications.Repository = (*MedicationsRepo)(nil)
