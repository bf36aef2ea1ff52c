package medications

import (
	"fmt"
	"regexp"
	"time"
)

// timeRe valida horas HH:MM en formato 24h (acepta "8:00" y "08:00").
var timeRe = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// MealRelation ata una toma a una comida concreta.
type MealRelation struct {
	Meal          Meal       `json:"meal"`
	Timing        MealTiming `json:"timing"`
	OffsetMinutes int        `json:"offsetMinutes,omitempty"`
}

// Schedule es la regla de recurrencia de un medicamento.
// Variante discriminada por Type: los campos Days, DaysOfMonth e Interval
// solo aplican a weekly, monthly y custom respectivamente.
type Schedule struct {
	Type FrequencyType `json:"type"`

	Times           []string       `json:"times"`
	MealRelation    []MealRelation `json:"mealRelation,omitempty"`
	TimePreferences []TimeOfDay    `json:"timePreferences,omitempty"`

	Days        []DayOfWeek `json:"days,omitempty"`        // weekly
	DaysOfMonth []int       `json:"daysOfMonth,omitempty"` // monthly, 1..31
	Interval    int         `json:"interval,omitempty"`    // custom, cada X días
}

func (s Schedule) validate(path string, ve *ValidationError) {
	switch s.Type {
	case FrequencyDaily:
		// solo campos base
	case FrequencyWeekly:
		if len(s.Days) == 0 {
			ve.add(path+".days", "at least one day must be selected for weekly schedule")
		}
		for _, d := range s.Days {
			if !validDayOfWeek(d) {
				ve.add(path+".days", fmt.Sprintf("unknown day %q", d))
				break
			}
		}
	case FrequencyMonthly:
		if len(s.DaysOfMonth) == 0 {
			ve.add(path+".daysOfMonth", "at least one day of month must be selected")
		}
		// Solo rango 1..31. No validamos largo de mes: "febrero 30" se
		// acepta a propósito (caso permisivo conocido, no lo corregimos).
		for _, d := range s.DaysOfMonth {
			if d < 1 || d > 31 {
				ve.add(path+".daysOfMonth", "days of month must be between 1 and 31")
				break
			}
		}
	case FrequencyCustom:
		if s.Interval < 1 {
			ve.add(path+".interval", "interval must be positive")
		}
	default:
		ve.add(path+".type", fmt.Sprintf("unknown schedule type %q", s.Type))
	}

	if len(s.Times) == 0 {
		ve.add(path+".times", "at least one time is required")
	}
	for _, t := range s.Times {
		if !timeRe.MatchString(t) {
			ve.add(path+".times", fmt.Sprintf("invalid time format %q", t))
			break
		}
	}

	for _, mr := range s.MealRelation {
		if !validMeal(mr.Meal) {
			ve.add(path+".mealRelation", fmt.Sprintf("unknown meal %q", mr.Meal))
			break
		}
		if !validMealTiming(mr.Timing) {
			ve.add(path+".mealRelation", fmt.Sprintf("unknown meal timing %q", mr.Timing))
			break
		}
	}

	for _, tp := range s.TimePreferences {
		if !validTimeOfDay(tp) {
			ve.add(path+".timePreferences", fmt.Sprintf("unknown time preference %q", tp))
			break
		}
	}
}

// Normalize colapsa un schedule weekly con los siete días seleccionados
// a su equivalente daily. Conserva Times y el resto de campos base;
// nunca se aplica de forma implícita durante la validación.
func (s Schedule) Normalize() Schedule {
	if s.Type != FrequencyWeekly {
		return s
	}

	seen := map[DayOfWeek]struct{}{}
	for _, d := range s.Days {
		if validDayOfWeek(d) {
			seen[d] = struct{}{}
		}
	}
	if len(seen) < 7 {
		return s
	}

	s.Type = FrequencyDaily
	s.Days = nil
	return s
}

// OccursOn reporta si la regla genera una toma en el día dado,
// contando desde start. Compara a granularidad de día calendario.
func (s Schedule) OccursOn(start, day time.Time) bool {
	if daysBetween(start, day) < 0 {
		return false
	}

	switch s.Type {
	case FrequencyDaily:
		return true
	case FrequencyWeekly:
		dow := goWeekday(day.Weekday())
		for _, d := range s.Days {
			if d == dow {
				return true
			}
		}
		return false
	case FrequencyMonthly:
		for _, d := range s.DaysOfMonth {
			if d == day.Day() {
				return true
			}
		}
		return false
	case FrequencyCustom:
		if s.Interval < 1 {
			return false
		}
		return daysBetween(start, day)%s.Interval == 0
	default:
		return false
	}
}

// daysBetween cuenta días calendario entre dos fechas. Compara las
// fechas civiles, no los instantes: una zona horaria distinta o un
// salto de DST entre a y b no corre la cuenta.
func daysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua) / (24 * time.Hour))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func goWeekday(w time.Weekday) DayOfWeek {
	switch w {
	case time.Monday:
		return Monday
	case time.Tuesday:
		return Tuesday
	case time.Wednesday:
		return Wednesday
	case time.Thursday:
		return Thursday
	case time.Friday:
		return Friday
	case time.Saturday:
		return Saturday
	default:
		return Sunday
	}
}
