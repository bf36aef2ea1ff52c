package medications

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("medication not found")

	// ErrCorruptPayload indica que el payload persistido no es un array
	// JSON válido. El caller lo descarta y arranca con colección vacía.
	ErrCorruptPayload = errors.New("corrupt medication payload")
)

// ValidationError acumula fallas de validación por campo
// (p.ej. "schedule.days", "dosage.amount"). Se devuelve al caller
// para que el formulario las muestre campo a campo; nunca se usa
// como panic ni para errores de programación.
type ValidationError struct {
	Fields map[string]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string]string{}}
}

func (e *ValidationError) add(path, msg string) {
	if _, exists := e.Fields[path]; !exists {
		e.Fields[path] = msg
	}
}

func (e *ValidationError) empty() bool {
	return e == nil || len(e.Fields) == 0
}

func (e *ValidationError) Error() string {
	if e.empty() {
		return ErrInvalidInput.Error()
	}

	// Orden estable para logs y tests.
	paths := make([]string, 0, len(e.Fields))
	for p := range e.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, p+": "+e.Fields[p])
	}
	return "invalid input: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// ReferentialError señala un delete parcial contra el store relacional:
// las filas de dosis dependientes ya se borraron pero el medicamento no.
// Se distingue para que el retry no intente re-borrar las dosis.
type ReferentialError struct {
	MedicationID string
	Err          error
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("dose rows deleted but medication %s delete failed: %v", e.MedicationID, e.Err)
}

func (e *ReferentialError) Unwrap() error {
	return e.Err
}
