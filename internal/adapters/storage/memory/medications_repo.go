package memory

import (
	"context"
	"sync"

	"nursebot-api/internal/domain/medications"
)

type medicationsRepo struct {
	mu     sync.RWMutex
	byUser map[string][]medications.Medication
}

// NewMedicationsRepo crea el repo in-memory (dev y tests).
func NewMedicationsRepo() medications.Repository {
	return &medicationsRepo{
		byUser: make(map[string][]medications.Medication),
	}
}

func (r *medicationsRepo) GetAll(ctx context.Context, userID string) ([]medications.Medication, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]medications.Medication, len(r.byUser[userID]))
	copy(out, r.byUser[userID])
	return out, nil
}

func (r *medicationsRepo) SetAll(ctx context.Context, userID string, meds []medications.Medication) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]medications.Medication, len(meds))
	copy(stored, meds)
	r.byUser[userID] = stored
	return nil
}

func (r *medicationsRepo) DeleteByID(ctx context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	meds := r.byUser[userID]
	out := make([]medications.Medication, 0, len(meds))
	for _, m := range meds {
		if m.ID != id {
			out = append(out, m)
		}
	}
	r.byUser[userID] = out
	return nil
}

func (r *medicationsRepo) Clear(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.byUser, userID)
	return nil
}
