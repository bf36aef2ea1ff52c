package medications

import (
	"fmt"
	"time"
)

// DurationType discrimina las variantes de Duration.
type DurationType string

const (
	DurationOngoing       DurationType = "ongoing"
	DurationEndDate       DurationType = "endDate"
	DurationNumberOfDays  DurationType = "numberOfDays"
	DurationNumberOfWeeks DurationType = "numberOfWeeks"
)

// Duration define hasta cuándo sigue activo un schedule.
// Variante discriminada por Type: EndDate solo aplica a endDate,
// Value solo a numberOfDays / numberOfWeeks.
type Duration struct {
	Type    DurationType `json:"type"`
	Value   int          `json:"value,omitempty"`
	EndDate *time.Time   `json:"endDate,omitempty"`
}

func (d Duration) validate(path string, startDate time.Time, ve *ValidationError) {
	switch d.Type {
	case DurationOngoing:
		// sin campos extra
	case DurationEndDate:
		if d.EndDate == nil {
			ve.add(path+".endDate", "end date is required")
			return
		}
		// endDate anterior a startDate es error de validación, no clamp.
		if !startDate.IsZero() && daysBetween(startDate, *d.EndDate) < 0 {
			ve.add(path+".endDate", "end date must not be earlier than start date")
		}
	case DurationNumberOfDays:
		if d.Value < 1 {
			ve.add(path+".value", "number of days must be positive")
		}
	case DurationNumberOfWeeks:
		if d.Value < 1 {
			ve.add(path+".value", "number of weeks must be positive")
		}
	default:
		ve.add(path+".type", fmt.Sprintf("unknown duration type %q", d.Type))
	}
}

// ExpiresOn devuelve el último día activo contando desde start.
// ok=false para tratamientos ongoing (sin vencimiento).
func (d Duration) ExpiresOn(start time.Time) (time.Time, bool) {
	start = truncateToDay(start)
	switch d.Type {
	case DurationEndDate:
		if d.EndDate == nil {
			return time.Time{}, false
		}
		return truncateToDay(*d.EndDate), true
	case DurationNumberOfDays:
		return start.AddDate(0, 0, d.Value-1), true
	case DurationNumberOfWeeks:
		return start.AddDate(0, 0, d.Value*7-1), true
	default:
		return time.Time{}, false
	}
}

// ActiveOn reporta si la duración cubre el día dado. Compara fechas
// civiles, igual que Schedule.OccursOn.
func (d Duration) ActiveOn(start, day time.Time) bool {
	if daysBetween(start, day) < 0 {
		return false
	}
	end, ok := d.ExpiresOn(start)
	if !ok {
		return true
	}
	return daysBetween(end, day) <= 0
}
