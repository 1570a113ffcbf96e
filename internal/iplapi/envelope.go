package iplapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Period is a season identifier such as "2017". The backend sends seasons as
// strings or numbers; both normalize to the decimal string form.
type Period string

// RawRecord is one analytical row as returned by the backend. Numbers are
// kept as json.Number so integer fields survive decoding unchanged.
type RawRecord map[string]any

// Envelope is the response wrapper shared by every endpoint.
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Message string          `json:"message,omitempty"`
}

// APIError is an application-level failure reported with success=false.
type APIError struct {
	Message string
}

func (e *APIError) Error() string { return e.Message }

// Err returns nil for a successful envelope and an *APIError otherwise,
// carrying the backend's error text or fallback when none was sent.
func (e *Envelope) Err(fallback string) error {
	if e.Success {
		return nil
	}
	msg := strings.TrimSpace(e.Error)
	if msg == "" {
		msg = fallback
	}
	return &APIError{Message: msg}
}

// Records decodes data as a sequence of rows. Missing or null data yields an
// empty slice; non-object elements are skipped.
func (e *Envelope) Records() ([]RawRecord, error) {
	items, err := e.items()
	if err != nil {
		return nil, err
	}
	records := make([]RawRecord, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			records = append(records, RawRecord(m))
		}
	}
	return records, nil
}

// Periods decodes data as a sequence of season identifiers, preserving order.
func (e *Envelope) Periods() ([]Period, error) {
	items, err := e.items()
	if err != nil {
		return nil, err
	}
	periods := make([]Period, 0, len(items))
	for _, item := range items {
		if p, ok := PeriodOf(item); ok {
			periods = append(periods, p)
		}
	}
	return periods, nil
}

// Teams decodes data as team names. Elements may be bare strings or team
// objects carrying a "name" field.
func (e *Envelope) Teams() ([]string, error) {
	items, err := e.items()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			names = append(names, v)
		case map[string]any:
			if n, ok := v["name"].(string); ok {
				names = append(names, n)
			}
		}
	}
	return names, nil
}

func (e *Envelope) items() ([]any, error) {
	raw := bytes.TrimSpace(e.Data)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var items []any
	if err := dec.Decode(&items); err != nil {
		return nil, fmt.Errorf("decode data: %w", err)
	}
	return items, nil
}

// PeriodOf converts a decoded JSON value into a Period.
func PeriodOf(v any) (Period, bool) {
	switch p := v.(type) {
	case string:
		s := strings.TrimSpace(p)
		return Period(s), s != ""
	case json.Number:
		if f, err := p.Float64(); err == nil {
			return Period(formatNumber(f)), true
		}
		return Period(p.String()), true
	case float64:
		return Period(formatNumber(p)), true
	case int:
		return Period(fmt.Sprintf("%d", p)), true
	default:
		return "", false
	}
}
