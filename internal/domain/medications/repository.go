package medications

import "context"

// Repository es el backing store de la colección, particionada por
// userID (el id autenticado; acá es una key opaca, sin lógica de
// identidad). Implementaciones: sqlite (store local), postgres
// (store relacional remoto) y memory (tests).
type Repository interface {
	// GetAll devuelve la colección completa del usuario en orden de
	// inserción. Sin datos => slice vacío. Datos corruptos => el adapter
	// los descarta como efecto lateral y devuelve slice vacío.
	GetAll(ctx context.Context, userID string) ([]Medication, error)

	// SetAll reemplaza la colección completa del usuario.
	SetAll(ctx context.Context, userID string, meds []Medication) error

	// DeleteByID borra un medicamento y sus dosis dependientes.
	// ID inexistente es no-op, no error. En stores relacionales el orden
	// importa: primero las filas de dosis, después el medicamento; una
	// falla a mitad de camino se reporta como *ReferentialError.
	DeleteByID(ctx context.Context, userID, id string) error

	// Clear descarta todo lo persistido para el usuario.
	Clear(ctx context.Context, userID string) error
}
