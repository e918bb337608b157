package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListResponse lista sin paginación (los volúmenes son pequeños).
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// NewList envuelve items garantizando un arreglo JSON (nunca null).
func NewList[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Total: len(items)}
}

// EmployeeRefDTO referencia embebida a un funcionario.
type EmployeeRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"nome"`
}

// Timestamp acepta fechas "2006-01-02" (hora local, inicio del día) o RFC3339.
type Timestamp struct {
	time.Time
}

// ParseTimestamp interpreta s como fecha simple o RFC3339.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("fecha inválida %q", s)
	}
	return t, nil
}

// UnmarshalJSON implementa json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		return nil
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// Value devuelve el instante o def si no fue informado.
func (t *Timestamp) Value(def time.Time) time.Time {
	if t == nil || t.IsZero() {
		return def
	}
	return t.Time
}
