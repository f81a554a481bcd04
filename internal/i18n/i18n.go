// Package i18n holds every user-facing display string. The store itself is
// locale-free; the two shipped locales only change how the views label it.
package i18n

import (
	"fmt"
	"time"

	"github.com/pineiras-maker/mytasks/internal/model"
)

type Locale string

const (
	LocaleSpanish Locale = "es"
	LocaleEnglish Locale = "en"
)

type Bundle struct {
	locale Locale
}

func NewBundle(locale Locale) *Bundle {
	switch locale {
	case LocaleSpanish, LocaleEnglish:
	default:
		locale = LocaleSpanish
	}
	return &Bundle{locale: locale}
}

func (b *Bundle) Locale() Locale { return b.locale }

var catalog = map[Locale]map[string]string{
	LocaleSpanish: {
		"app.title":          "Calendario de Tareas",
		"view.daily":         "Diario",
		"view.weekly":        "Semanal",
		"tasks.for":          "Tareas para",
		"tasks.none":         "No hay tareas para esta fecha.",
		"tasks.none_short":   "Sin tareas",
		"tasks.more":         "... y %d tareas más",
		"tasks.moved_from":   "Movida desde día anterior",
		"form.add":           "Añadir Nueva Tarea",
		"form.title":         "Título de la Tarea",
		"form.description":   "Descripción (opcional)",
		"form.priority":      "Prioridad",
		"form.date":          "Fecha",
		"form.submit":        "Añadir Tarea",
		"form.save":          "Guardar",
		"form.cancel":        "Cancelar",
		"form.move_to":       "Mover a fecha",
		"nav.today":          "Ir a Hoy",
		"nav.prev_week":      "Semana Anterior",
		"nav.next_week":      "Siguiente Semana",
		"nav.recent":         "Fechas recientes con tareas",
		"stats.header":       "Estadísticas",
		"stats.total":        "Total de Tareas",
		"stats.completed":    "Completadas",
		"stats.rate":         "Tasa de Finalización",
		"stats.today":        "Progreso de Hoy",
		"backup.download":    "Descargar Respaldo",
		"backup.restore":     "Restaurar desde Respaldo",
		"rollover.run":       "Migración Manual de Tareas",
		"rollover.moved":     "¡%d tareas incompletas movidas a hoy!",
		"week.of":            "Semana del %s - %s",
		"error.title":        "Por favor ingresa un título para la tarea",
		"priority.High":      "Alta",
		"priority.Medium":    "Media",
		"priority.Low":       "Baja",
	},
	LocaleEnglish: {
		"app.title":          "Task Calendar",
		"view.daily":         "Daily",
		"view.weekly":        "Weekly",
		"tasks.for":          "Tasks for",
		"tasks.none":         "No tasks for this date.",
		"tasks.none_short":   "No tasks",
		"tasks.more":         "... and %d more tasks",
		"tasks.moved_from":   "Moved from a previous day",
		"form.add":           "Add New Task",
		"form.title":         "Task Title",
		"form.description":   "Description (optional)",
		"form.priority":      "Priority",
		"form.date":          "Date",
		"form.submit":        "Add Task",
		"form.save":          "Save",
		"form.cancel":        "Cancel",
		"form.move_to":       "Move to date",
		"nav.today":          "Go to Today",
		"nav.prev_week":      "Previous Week",
		"nav.next_week":      "Next Week",
		"nav.recent":         "Recent dates with tasks",
		"stats.header":       "Statistics",
		"stats.total":        "Total Tasks",
		"stats.completed":    "Completed",
		"stats.rate":         "Completion Rate",
		"stats.today":        "Today's Progress",
		"backup.download":    "Download Backup",
		"backup.restore":     "Restore from Backup",
		"rollover.run":       "Manual Task Migration",
		"rollover.moved":     "Moved %d incomplete tasks to today!",
		"week.of":            "Week of %s - %s",
		"error.title":        "Please enter a title for the task",
		"priority.High":      "High",
		"priority.Medium":    "Medium",
		"priority.Low":       "Low",
	},
}

var dayNames = map[Locale][]string{
	LocaleSpanish: {"Lunes", "Martes", "Miércoles", "Jueves", "Viernes", "Sábado", "Domingo"},
	LocaleEnglish: {"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"},
}

var dayNamesShort = map[Locale][]string{
	LocaleSpanish: {"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"},
	LocaleEnglish: {"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"},
}

var monthNames = map[Locale][]string{
	LocaleSpanish: {"", "Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre"},
	LocaleEnglish: {"", "January", "February", "March", "April", "May", "June",
		"July", "August", "September", "October", "November", "December"},
}

// T looks up a display string by key. Unknown keys return the key itself so
// a missing entry is visible instead of silent.
func (b *Bundle) T(key string) string {
	if s, ok := catalog[b.locale][key]; ok {
		return s
	}
	return key
}

func (b *Bundle) Tf(key string, args ...any) string {
	return fmt.Sprintf(b.T(key), args...)
}

func (b *Bundle) PriorityLabel(p model.Priority) string {
	key := "priority." + string(p)
	if s, ok := catalog[b.locale][key]; ok {
		return s
	}
	return string(p)
}

// FormatDate renders DD/MM/YYYY, the short form both locales share.
func (b *Bundle) FormatDate(d model.Date) string {
	return d.Time().Format("02/01/2006")
}

// FormatDateLong renders a localized long form, e.g.
// "Lunes, 2 de Marzo de 2026" or "Monday, March 2, 2026".
func (b *Bundle) FormatDateLong(d model.Date) string {
	t := d.Time()
	day := dayNames[b.locale][(int(t.Weekday())+6)%7]
	month := monthNames[b.locale][int(t.Month())]
	if b.locale == LocaleSpanish {
		return fmt.Sprintf("%s, %d de %s de %d", day, t.Day(), month, t.Year())
	}
	return fmt.Sprintf("%s, %s %d, %d", day, month, t.Day(), t.Year())
}

func (b *Bundle) DayNames() []string {
	return dayNames[b.locale]
}

func (b *Bundle) DayNamesShort() []string {
	return dayNamesShort[b.locale]
}

func (b *Bundle) MonthName(m time.Month) string {
	return monthNames[b.locale][int(m)]
}

// BackupFilename names the downloadable export for a given day.
func (b *Bundle) BackupFilename(now time.Time) string {
	stamp := now.Format("02_01_2006")
	if b.locale == LocaleSpanish {
		return "tareas_respaldo_" + stamp + ".json"
	}
	return "tasks_backup_" + stamp + ".json"
}
