package medications

import (
	"context"
	"sync"

	"nursebot-api/internal/platform/logger"
)

// Cache es la capa de reconciliación que ve la UI: un espejo en memoria
// de la última colección conocida del Service, más estado de carga y el
// último error en formato humano. Se construye una por sesión firmada
// y se descarta en el sign-out (Close).
//
// Regla de un solo escritor: el snapshot solo se reemplaza con la
// colección que devolvió el Service después de un await exitoso; nunca
// se adivina el estado nuevo localmente. Así la UI jamás muestra algo
// con lo que el store no está de acuerdo.
type Cache struct {
	svc    *Service
	userID string
	log    logger.Logger

	mu      sync.RWMutex
	meds    []Medication
	loading bool
	lastErr string

	subs    map[int]chan []Medication
	nextSub int
	closed  bool
}

func NewCache(svc *Service, userID string, log logger.Logger) *Cache {
	return &Cache{
		svc:    svc,
		userID: userID,
		log:    log,
		meds:   []Medication{},
		subs:   map[int]chan []Medication{},
	}
}

// Medications devuelve una copia del snapshot actual.
func (c *Cache) Medications() []Medication {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Medication, len(c.meds))
	copy(out, c.meds)
	return out
}

func (c *Cache) IsLoading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err devuelve el último error en formato humano ("" si no hay).
// Se limpia al arrancar cada operación nueva.
func (c *Cache) Err() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// Subscribe registra un canal que recibe cada snapshot nuevo.
// Devuelve la función de baja. El push es best-effort: un suscriptor
// lento no bloquea la reconciliación.
func (c *Cache) Subscribe() (<-chan []Medication, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++

	ch := make(chan []Medication, 1)
	c.subs[id] = ch

	return ch, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if _, ok := c.subs[id]; ok {
			delete(c.subs, id)
			close(ch)
		}
	}
}

// Close da de baja a todos los suscriptores. La cache queda inutilizable.
func (c *Cache) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	for id, ch := range c.subs {
		delete(c.subs, id)
		close(ch)
	}
}

// Refresh recarga el snapshot desde el store.
func (c *Cache) Refresh(ctx context.Context) error {
	c.begin(true)

	meds, err := c.svc.List(ctx, c.userID)
	if err != nil {
		c.fail("Failed to load medications", err)
		return err
	}

	c.reconcile(meds)
	return nil
}

// Add persiste el medicamento nuevo y reemplaza el snapshot con la
// colección devuelta.
func (c *Cache) Add(ctx context.Context, in CreateInput) error {
	c.begin(false)

	meds, err := c.svc.Add(ctx, c.userID, in)
	if err != nil {
		c.fail("Failed to add medication", err)
		return err
	}

	c.reconcile(meds)
	return nil
}

func (c *Cache) Delete(ctx context.Context, id string) error {
	c.begin(false)

	meds, err := c.svc.Delete(ctx, c.userID, id)
	if err != nil {
		c.fail("Failed to delete medication", err)
		return err
	}

	c.reconcile(meds)
	return nil
}

func (c *Cache) Update(ctx context.Context, id string, in UpdateInput) error {
	c.begin(false)

	meds, err := c.svc.Update(ctx, c.userID, id, in)
	if err != nil {
		c.fail("Failed to update medication", err)
		return err
	}

	c.reconcile(meds)
	return nil
}

// RecordDose registra la dosis vía el Service. Si falla, el log de
// status previo queda intacto: el snapshot local no se toca hasta que
// el store confirme, y la colección se relee de la respuesta.
func (c *Cache) RecordDose(ctx context.Context, id string, taken bool, timeLabel string) error {
	c.begin(false)

	meds, err := c.svc.RecordDose(ctx, c.userID, id, taken, timeLabel)
	if err != nil {
		c.fail("Failed to record dose", err)
		return err
	}

	c.reconcile(meds)
	return nil
}

func (c *Cache) begin(loading bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
	if loading {
		c.loading = true
	}
}

// fail deja el snapshot previo intacto: viejo-pero-consistente gana
// sobre vacío-pero-equivocado.
func (c *Cache) fail(msg string, err error) {
	c.log.Error(msg, map[string]any{"err": err.Error()})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = msg
	c.loading = false
}

func (c *Cache) reconcile(meds []Medication) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.meds = meds
	c.loading = false

	snapshot := make([]Medication, len(meds))
	copy(snapshot, meds)

	for _, ch := range c.subs {
		select {
		case ch <- snapshot:
		default:
		}
	}
}
