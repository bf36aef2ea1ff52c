package medications

// FrequencyType discrimina las variantes de Schedule.
type FrequencyType string

const (
	FrequencyDaily   FrequencyType = "daily"
	FrequencyWeekly  FrequencyType = "weekly"
	FrequencyMonthly FrequencyType = "monthly"
	FrequencyCustom  FrequencyType = "custom"
)

// DayOfWeek define los días válidos para un schedule semanal.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DaysOfWeek en orden calendario (lunes primero, como en el formulario).
var DaysOfWeek = []DayOfWeek{
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
	Sunday,
}

// TimeOfDay son las franjas horarias de preferencia.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Bedtime   TimeOfDay = "bedtime"
)

// TimesOfDay mapea cada franja a su hora sugerida.
var TimesOfDay = map[TimeOfDay]string{
	Morning:   "8:00 AM",
	Afternoon: "2:00 PM",
	Evening:   "8:00 PM",
	Bedtime:   "10:00 PM",
}

// Meal y MealTiming describen la relación de una toma con las comidas.
type Meal string

const (
	Breakfast Meal = "breakfast"
	Lunch     Meal = "lunch"
	Dinner    Meal = "dinner"
)

type MealTiming string

const (
	BeforeMeal MealTiming = "before"
	WithMeal   MealTiming = "with"
	AfterMeal  MealTiming = "after"
)

// MealTimes son los horarios de referencia de cada comida.
var MealTimes = map[Meal]string{
	Breakfast: "8:00 AM",
	Lunch:     "12:00 PM",
	Dinner:    "6:00 PM",
}

// MedicationForm es la forma farmacéutica del medicamento.
type MedicationForm string

const (
	FormTablet    MedicationForm = "tablet"
	FormCapsule   MedicationForm = "capsule"
	FormLiquid    MedicationForm = "liquid"
	FormInjection MedicationForm = "injection"
	FormSyrup     MedicationForm = "syrup"
	FormPowder    MedicationForm = "powder"
	FormInhaler   MedicationForm = "inhaler"
	FormDrops     MedicationForm = "drops"
	FormSpray     MedicationForm = "spray"
	FormCream     MedicationForm = "cream"
	FormPatch     MedicationForm = "patch"
	FormOther     MedicationForm = "other"
)

// MedicationForms lista todas las formas soportadas (orden del formulario).
var MedicationForms = []MedicationForm{
	FormTablet,
	FormCapsule,
	FormLiquid,
	FormInjection,
	FormSyrup,
	FormPowder,
	FormInhaler,
	FormDrops,
	FormSpray,
	FormCream,
	FormPatch,
	FormOther,
}

// FormUnits define el vocabulario de unidades por forma.
// La primera unidad de cada lista es el default de esa forma.
var FormUnits = map[MedicationForm][]string{
	FormTablet:    {"tablet(s)"},
	FormCapsule:   {"capsule(s)"},
	FormLiquid:    {"mL", "mg/mL"},
	FormInjection: {"mL", "mg", "unit(s)"},
	FormSyrup:     {"mL", "mg/5mL"},
	FormPowder:    {"g", "mg"},
	FormInhaler:   {"puff(s)"},
	FormDrops:     {"drop(s)"},
	FormSpray:     {"spray(s)"},
	FormCream:     {"g"},
	FormPatch:     {"patch(es)"},
	FormOther:     {"mg", "g", "mcg", "mL", "unit(s)"},
}

// MedicationColors es la paleta de tags de color para la UI.
var MedicationColors = []string{
	"#FF0000", // rojo
	"#FF7F00", // naranja
	"#FFFF00", // amarillo
	"#00FF00", // verde
	"#0000FF", // azul
	"#4B0082", // índigo
	"#9400D3", // violeta
	"#FF69B4", // rosa
	"#8B4513", // marrón
	"#808080", // gris
}

// TimePreset agrupa horarios típicos de toma para el formulario.
type TimePreset struct {
	Label string   `json:"label"`
	Times []string `json:"times"`
}

var TimePresets = []TimePreset{
	{Label: "Morning", Times: []string{"08:00"}},
	{Label: "Morning & Evening", Times: []string{"08:00", "20:00"}},
	{Label: "Morning, Noon & Night", Times: []string{"08:00", "12:00", "20:00"}},
	{Label: "Every 6 hours", Times: []string{"06:00", "12:00", "18:00", "00:00"}},
}

// ValidForm reporta si f pertenece al vocabulario de formas.
func ValidForm(f MedicationForm) bool {
	_, ok := FormUnits[f]
	return ok
}

// DosageUnits es el vocabulario global de unidades. La restricción
// por forma (FormUnits) es del formulario: el picker solo ofrece las
// unidades de la forma elegida, pero la API acepta cualquier unidad
// conocida (p.ej. "mg" con form "tablet" es válido).
var DosageUnits = []string{
	"mg",
	"g",
	"mcg",
	"mL",
	"tablet(s)",
	"capsule(s)",
	"unit(s)",
	"drop(s)",
	"puff(s)",
	"spray(s)",
	"injection(s)",
}

// ValidUnitFor reporta si unit pertenece al vocabulario de la forma dada.
func ValidUnitFor(form MedicationForm, unit string) bool {
	for _, u := range FormUnits[form] {
		if u == unit {
			return true
		}
	}
	return false
}

// ValidUnit reporta si unit es una unidad conocida (de cualquier forma).
func ValidUnit(unit string) bool {
	for _, u := range DosageUnits {
		if u == unit {
			return true
		}
	}
	for _, units := range FormUnits {
		for _, u := range units {
			if u == unit {
				return true
			}
		}
	}
	return false
}

// DefaultUnitFor devuelve la primera unidad del vocabulario de la forma.
// Cambiar la forma de un medicamento resetea la unidad a este default;
// es un efecto lateral explícito del formulario, no pérdida de datos.
func DefaultUnitFor(form MedicationForm) string {
	units := FormUnits[form]
	if len(units) == 0 {
		return ""
	}
	return units[0]
}

func validDayOfWeek(d DayOfWeek) bool {
	switch d {
	case Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday:
		return true
	default:
		return false
	}
}

func validTimeOfDay(t TimeOfDay) bool {
	switch t {
	case Morning, Afternoon, Evening, Bedtime:
		return true
	default:
		return false
	}
}

func validMeal(m Meal) bool {
	switch m {
	case Breakfast, Lunch, Dinner:
		return true
	default:
		return false
	}
}

func validMealTiming(t MealTiming) bool {
	switch t {
	case BeforeMeal, WithMeal, AfterMeal:
		return true
	default:
		return false
	}
}
