package medications

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"nursebot-api/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, codec *Codec) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc, codec))
		mr.Post("/", createMedicationHandler(svc, codec))

		// Tomas del día (hoy o ?date=YYYY-MM-DD)
		mr.Get("/due", dueMedicationsHandler(svc, codec))

		// Vocabularios para el formulario multi-paso
		mr.Get("/options", formOptionsHandler())

		mr.Patch("/{medicationID}", updateMedicationHandler(svc, codec))
		mr.Delete("/{medicationID}", deleteMedicationHandler(svc, codec))

		// Registrar dosis (tomada o no)
		mr.Post("/{medicationID}/doses", recordDoseHandler(svc, codec))
	})
}

// durationRequest acepta endDate como string (RFC3339 o YYYY-MM-DD).
type durationRequest struct {
	Type    string `json:"type"`
	Value   int    `json:"value"`
	EndDate string `json:"endDate"`
}

type createMedicationRequest struct {
	Name      string          `json:"name"`
	Dosage    DosageInfo      `json:"dosage"`
	Schedule  Schedule        `json:"schedule"`
	Duration  durationRequest `json:"duration"`
	StartDate string          `json:"startDate"` // opcional, default now
	Color     string          `json:"color"`
	Notes     string          `json:"notes"`

	RefillReminder *RefillReminder    `json:"refillReminder"`
	SideEffects    []string           `json:"sideEffects"`
	Interactions   []string           `json:"interactions"`
	Storage        *StorageConditions `json:"storage"`
}

type updateMedicationRequest struct {
	// Punteros para PATCH real: nil = no tocar. El merge es shallow:
	// mandar dosage reemplaza el sub-objeto entero, es parte del contrato.
	Name      *string            `json:"name"`
	Dosage    *DosageInfo        `json:"dosage"`
	Schedule  *Schedule          `json:"schedule"`
	Duration  *durationRequest   `json:"duration"`
	StartDate *string            `json:"startDate"`
	Color     *string            `json:"color"`
	Notes     *string            `json:"notes"`

	RefillReminder *RefillReminder    `json:"refillReminder"`
	SideEffects    *[]string          `json:"sideEffects"`
	Interactions   *[]string          `json:"interactions"`
	Storage        *StorageConditions `json:"storage"`
}

type recordDoseRequest struct {
	Taken bool   `json:"taken"`
	Time  string `json:"time"` // opcional, "h:mm AM/PM"
}

type dueMedicationResponse struct {
	Medication StorageRecord `json:"medication"`
	Times      []string      `json:"times"`
}

type validationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// listMedicationsHandler godoc
// @Summary Listar medicamentos
// @Description Devuelve la colección completa del usuario autenticado. Sin datos => lista vacía.
// @Tags medications
// @Produce json
// @Param X-Debug-User-ID header string false "Solo en modo dev"
// @Param Authorization header string false "Bearer token en producción"
// @Success 200 {array} StorageRecord
// @Failure 401 {string} string "unauthorized"
// @Router /medications [get]
func listMedicationsHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := svc.List(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecords(codec, meds))
	}
}

// createMedicationHandler godoc
// @Summary Crear medicamento
// @Description Valida los campos del formulario, construye el medicamento y lo persiste. Devuelve la colección completa actualizada (el cliente reemplaza su cache al por mayor). Las fallas de validación vuelven por campo.
// @Tags medications
// @Accept json
// @Produce json
// @Param payload body createMedicationRequest true "Campos del medicamento"
// @Success 201 {array} StorageRecord
// @Failure 400 {object} validationErrorResponse
// @Failure 401 {string} string "unauthorized"
// @Router /medications [post]
func createMedicationHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createMedicationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		duration, err := parseDuration(req.Duration)
		if err != nil {
			http.Error(w, "duration.endDate must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
			return
		}

		var startDate *time.Time
		if strings.TrimSpace(req.StartDate) != "" {
			t, err := parseDate(req.StartDate)
			if err != nil {
				http.Error(w, "startDate must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			startDate = &t
		}

		meds, err := svc.Add(r.Context(), claims.UserID, CreateInput{
			Name:           req.Name,
			Dosage:         req.Dosage,
			Schedule:       req.Schedule,
			Duration:       duration,
			StartDate:      startDate,
			Color:          req.Color,
			Notes:          req.Notes,
			RefillReminder: req.RefillReminder,
			SideEffects:    req.SideEffects,
			Interactions:   req.Interactions,
			Storage:        req.Storage,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toRecords(codec, meds))
	}
}

// updateMedicationHandler godoc
// @Summary Actualizar medicamento
// @Description Merge SHALLOW de los campos top-level presentes en el body. Para tocar un campo anidado hay que mandar el sub-objeto completo (p.ej. dosage entero para cambiar dosage.amount). Un id inexistente devuelve la colección sin cambios.
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body updateMedicationRequest true "Campos a reemplazar"
// @Success 200 {array} StorageRecord
// @Failure 400 {string} string "invalid json / fecha inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /medications/{medicationID} [patch]
func updateMedicationHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req updateMedicationRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		in := UpdateInput{
			Name:           req.Name,
			Dosage:         req.Dosage,
			Schedule:       req.Schedule,
			Color:          req.Color,
			Notes:          req.Notes,
			RefillReminder: req.RefillReminder,
			SideEffects:    req.SideEffects,
			Interactions:   req.Interactions,
			Storage:        req.Storage,
		}

		if req.Duration != nil {
			duration, err := parseDuration(*req.Duration)
			if err != nil {
				http.Error(w, "duration.endDate must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.Duration = &duration
		}
		if req.StartDate != nil {
			t, err := parseDate(*req.StartDate)
			if err != nil {
				http.Error(w, "startDate must be RFC3339 or YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.StartDate = &t
		}

		meds, err := svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), in)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecords(codec, meds))
	}
}

// deleteMedicationHandler godoc
// @Summary Borrar medicamento
// @Description Borra el medicamento y su historial de dosis. Un id inexistente es no-op: devuelve la colección sin cambios, no error.
// @Tags medications
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Success 200 {array} StorageRecord
// @Failure 401 {string} string "unauthorized"
// @Failure 502 {string} string "delete parcial contra el store remoto"
// @Router /medications/{medicationID} [delete]
func deleteMedicationHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		meds, err := svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"))
		if err != nil {
			var refErr *ReferentialError
			if errors.As(err, &refErr) {
				// Las dosis ya no están; el retry solo debe re-borrar el padre.
				http.Error(w, "medication delete incomplete, retry", http.StatusBadGateway)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toRecords(codec, meds))
	}
}

// recordDoseHandler godoc
// @Summary Registrar dosis
// @Description Agrega exactamente una entrada al log de status (append-only). Si no viene time se deriva del reloj en formato "h:mm AM/PM".
// @Tags medications
// @Accept json
// @Produce json
// @Param medicationID path string true "ID del medicamento"
// @Param payload body recordDoseRequest true "Dosis tomada o no"
// @Success 200 {array} StorageRecord
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID}/doses [post]
func recordDoseHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req recordDoseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		meds, err := svc.RecordDose(r.Context(), claims.UserID, chi.URLParam(r, "medicationID"), req.Taken, req.Time)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "medication not found", http.StatusNotFound)
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, toRecords(codec, meds))
	}
}

// dueMedicationsHandler godoc
// @Summary Tomas del día
// @Description Devuelve los medicamentos con toma programada para el día consultado (default hoy), con sus horarios. Respeta la recurrencia del schedule y el vencimiento de la duración.
// @Tags medications
// @Produce json
// @Param date query string false "Día a consultar, YYYY-MM-DD (default hoy)"
// @Success 200 {array} dueMedicationResponse
// @Failure 400 {string} string "date inválida"
// @Failure 401 {string} string "unauthorized"
// @Router /medications/due [get]
func dueMedicationsHandler(svc *Service, codec *Codec) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		day := time.Now()
		if q := strings.TrimSpace(r.URL.Query().Get("date")); q != "" {
			t, err := time.Parse("2006-01-02", q)
			if err != nil {
				http.Error(w, "date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			day = t
		}

		due, err := svc.Due(r.Context(), claims.UserID, day)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]dueMedicationResponse, 0, len(due))
		for _, d := range due {
			out = append(out, dueMedicationResponse{
				Medication: codec.Serialize(d.Medication),
				Times:      d.Times,
			})
		}

		writeJSON(w, http.StatusOK, out)
	}
}

type formOptionsResponse struct {
	Forms       []MedicationForm            `json:"forms"`
	FormUnits   map[MedicationForm][]string `json:"formUnits"`
	Units       []string                    `json:"units"`
	Colors      []string                    `json:"colors"`
	DaysOfWeek  []DayOfWeek                 `json:"daysOfWeek"`
	TimesOfDay  map[TimeOfDay]string        `json:"timesOfDay"`
	MealTimes   map[Meal]string             `json:"mealTimes"`
	TimePresets []TimePreset                `json:"timePresets"`
}

// formOptionsHandler godoc
// @Summary Vocabularios del formulario
// @Description Formas, unidades por forma, paleta de colores, días y presets de horario que el formulario multi-paso ofrece. La primera unidad de cada forma es su default (cambiar la forma resetea la unidad).
// @Tags medications
// @Produce json
// @Success 200 {object} formOptionsResponse
// @Router /medications/options [get]
func formOptionsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, formOptionsResponse{
			Forms:       MedicationForms,
			FormUnits:   FormUnits,
			Units:       DosageUnits,
			Colors:      MedicationColors,
			DaysOfWeek:  DaysOfWeek,
			TimesOfDay:  TimesOfDay,
			MealTimes:   MealTimes,
			TimePresets: TimePresets,
		})
	}
}

func parseDuration(req durationRequest) (Duration, error) {
	d := Duration{
		Type:  DurationType(req.Type),
		Value: req.Value,
	}
	if strings.TrimSpace(req.EndDate) != "" {
		t, err := parseDate(req.EndDate)
		if err != nil {
			return Duration{}, err
		}
		d.EndDate = &t
	}
	return d, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}

func toRecords(codec *Codec, meds []Medication) []StorageRecord {
	out := make([]StorageRecord, 0, len(meds))
	for _, m := range meds {
		out = append(out, codec.Serialize(m))
	}
	return out
}

func writeServiceError(w http.ResponseWriter, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		writeJSON(w, http.StatusBadRequest, validationErrorResponse{
			Error:  "invalid input",
			Fields: ve.Fields,
		})
		return
	}
	if errors.Is(err, ErrInvalidInput) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// writeJSON se repite en handlers de otros módulos a propósito:
// todavía no amerita un helper compartido.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
