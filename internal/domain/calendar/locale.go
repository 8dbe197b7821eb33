package calendar

import (
	"fmt"
	"time"

	"github.com/okian/agenda/internal/domain/model"
)

// es-ES display tables.
var (
	MonthNames = [12]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}

	// WeekdayHeaders are the grid column titles, Monday first.
	WeekdayHeaders = [DaysPerWeek]string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

	weekdayNames = map[time.Weekday]string{
		time.Monday:    "lunes",
		time.Tuesday:   "martes",
		time.Wednesday: "miércoles",
		time.Thursday:  "jueves",
		time.Friday:    "viernes",
		time.Saturday:  "sábado",
		time.Sunday:    "domingo",
	}

	priorityLabels = map[model.Priority]string{
		model.PriorityLow:    "Baja",
		model.PriorityMedium: "Media",
		model.PriorityHigh:   "Alta",
	}
)

// Messages shown by the detail view.
const (
	NoSelectionMessage = "Selecciona un día para ver eventos"
	EmptyDayMessage    = "No hay eventos para este día"
)

// Title returns "<Mes> <año>", e.g. "Enero 2025".
func (a Anchor) Title() string {
	return fmt.Sprintf("%s %d", MonthNames[a.month], a.year)
}

// FormatLongDate renders d like "miércoles, 1 de enero de 2025".
func FormatLongDate(d model.Date) string {
	month := MonthNames[d.Month]
	// Month names are lower case inside a date.
	lower := []rune(month)
	lower[0] += 'a' - 'A'
	return fmt.Sprintf("%s, %d de %s de %d", weekdayNames[d.Weekday()], d.Day, string(lower), d.Year)
}

// PriorityLabel returns the display label; unknown priorities read as "Media".
func PriorityLabel(p model.Priority) string {
	if l, ok := priorityLabels[p]; ok {
		return l
	}
	return priorityLabels[model.PriorityMedium]
}

// OverflowLabel returns "+N más", or "" when n is not positive.
func OverflowLabel(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("+%d más", n)
}
