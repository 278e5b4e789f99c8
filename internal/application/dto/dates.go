package dto

import (
	"fmt"
	"time"
)

// DateLayout formato de fechas en query params y cuerpos.
const DateLayout = "2006-01-02"

// ParseDate interpreta YYYY-MM-DD en la zona horaria local del servidor.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q: %w", s, err)
	}
	return t, nil
}

// EndOfDay devuelve el último instante (23:59:59.999) del día de t.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

// Bounds convierte el filtro en instantes; nil donde no hay límite. To incluye todo el día.
func (q DateRangeQuery) Bounds() (from, to *time.Time, err error) {
	if q.From != "" {
		f, err := ParseDate(q.From)
		if err != nil {
			return nil, nil, err
		}
		from = &f
	}
	if q.To != "" {
		t, err := ParseDate(q.To)
		if err != nil {
			return nil, nil, err
		}
		end := EndOfDay(t)
		to = &end
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, nil, fmt.Errorf("rango de fechas invertido")
	}
	return from, to, nil
}

// InRange indica si t cae en [from, to]; límites nil no restringen.
func InRange(t time.Time, from, to *time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if to != nil && t.After(*to) {
		return false
	}
	return true
}
