package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"nursebot-api/internal/domain/medications"
	"nursebot-api/internal/platform/logger"

	_ "modernc.org/sqlite" // driver sqlite puro Go
)

// Store es el backing store "local del dispositivo": un solo blob JSON
// (el array de StorageRecords) por usuario, al estilo de un key-value
// storage. La granularidad de lectura/escritura es la colección
// completa.
type Store struct {
	db    *sql.DB
	codec *medications.Codec
	log   logger.Logger
}

// Open abre (o crea) la base en path y prepara la tabla.
func Open(path string, codec *medications.Codec, log logger.Logger) (*Store, error) {
	if path == "" {
		path = "nursebot.db"
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS medication_store (
		user_id TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create medication_store: %w", err)
	}

	return &Store{db: db, codec: codec, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// GetAll decodifica el blob del usuario. Payload ausente => colección
// vacía. Payload corrupto => se limpia como efecto lateral y se
// devuelve colección vacía (nunca se confía a medias en datos rotos).
func (s *Store) GetAll(ctx context.Context, userID string) ([]medications.Medication, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM medication_store WHERE user_id = ?`, userID,
	).Scan(&payload)
	if err == sql.ErrNoRows {
		return []medications.Medication{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select payload: %w", err)
	}

	meds, err := s.codec.DecodeCollection(payload)
	if err != nil {
		if errors.Is(err, medications.ErrCorruptPayload) {
			s.log.Error("corrupt medication payload, clearing store", map[string]any{
				"user_id": userID,
			})
			if clearErr := s.Clear(ctx, userID); clearErr != nil {
				s.log.Error("failed to clear corrupt payload", map[string]any{
					"user_id": userID,
					"err":     clearErr.Error(),
				})
			}
			return []medications.Medication{}, nil
		}
		return nil, err
	}

	return meds, nil
}

func (s *Store) SetAll(ctx context.Context, userID string, meds []medications.Medication) error {
	payload, err := s.codec.EncodeCollection(meds)
	if err != nil {
		return fmt.Errorf("encode collection: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO medication_store (user_id, payload) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload
	`, userID, payload)
	if err != nil {
		return fmt.Errorf("upsert payload: %w", err)
	}
	return nil
}

// DeleteByID filtra sobre el blob; id inexistente es no-op.
func (s *Store) DeleteByID(ctx context.Context, userID, id string) error {
	meds, err := s.GetAll(ctx, userID)
	if err != nil {
		return err
	}

	out := make([]medications.Medication, 0, len(meds))
	for _, m := range meds {
		if m.ID != id {
			out = append(out, m)
		}
	}
	return s.SetAll(ctx, userID, out)
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM medication_store WHERE user_id = ?`, userID)
	return err
}

// RawSet escribe un payload arbitrario (solo para tests de corrupción).
func (s *Store) RawSet(ctx context.Context, userID string, payload []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO medication_store (user_id, payload) VALUES (?, ?)
		ON CONFLICT(user_id) DO UPDATE SET payload = excluded.payload
	`, userID, payload)
	return err
}

var _ medications.Repository = (*Store)(nil)
