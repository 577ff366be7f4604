package airports

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ErrorDetail mirrors one entry of a Pydantic-style validation envelope.
type ErrorDetail struct {
	Type  string         `json:"type"`
	Loc   []any          `json:"loc"`
	Msg   string         `json:"msg"`
	Input any            `json:"input"`
	Ctx   map[string]any `json:"ctx,omitempty"`
}

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Detail []ErrorDetail `json:"detail"`
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Detail))
	for _, d := range e.Detail {
		locs := make([]string, 0, len(d.Loc))
		for _, l := range d.Loc {
			locs = append(locs, fmt.Sprint(l))
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.Join(locs, "."), d.Msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// DecodeAirport parses and validates a full record payload.
func DecodeAirport(body []byte) (Airport, error) {
	v, err := newValidator(body)
	if err != nil {
		return Airport{}, err
	}

	var airport Airport
	airport.AirportID = v.requiredString("airport_id", MinIDLength, MaxIDLength)
	airport.AirportName = v.requiredString("airport_name", MinNameLength, MaxNameLength)
	airport.City = v.requiredString("city", MinCityLength, MaxCityLength)
	_, airport.CountryState = v.nullableString("country_state")

	if err := v.err(); err != nil {
		return Airport{}, err
	}
	return airport, nil
}

// DecodePatch parses and validates a partial update payload. Only
// airport_id is required; other fields are checked when supplied.
func DecodePatch(body []byte) (Patch, error) {
	v, err := newValidator(body)
	if err != nil {
		return Patch{}, err
	}

	var patch Patch
	patch.AirportID = v.requiredString("airport_id", MinIDLength, MaxIDLength)
	patch.AirportName = v.optionalString("airport_name", MinNameLength, MaxNameLength)
	patch.City = v.optionalString("city", MinCityLength, MaxCityLength)
	patch.SetCountryState, patch.CountryState = v.nullableString("country_state")

	if err := v.err(); err != nil {
		return Patch{}, err
	}
	return patch, nil
}

// ParseLimit validates the limit query parameter.
func ParseLimit(raw string) (int, error) {
	limit, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Detail: []ErrorDetail{{
			Type:  "int_parsing",
			Loc:   []any{"query", "limit"},
			Msg:   "Input should be a valid integer, unable to parse string as an integer",
			Input: raw,
		}}}
	}
	if limit < 0 {
		return 0, &ValidationError{Detail: []ErrorDetail{{
			Type:  "greater_than_equal",
			Loc:   []any{"query", "limit"},
			Msg:   "Input should be greater than or equal to 0",
			Input: raw,
			Ctx:   map[string]any{"ge": 0},
		}}}
	}
	return limit, nil
}

type validator struct {
	input   any
	fields  map[string]json.RawMessage
	details []ErrorDetail
}

func newValidator(body []byte) (*validator, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, &ValidationError{Detail: []ErrorDetail{{
			Type: "missing",
			Loc:  []any{"body"},
			Msg:  "Field required",
		}}}
	}

	var input any
	if err := json.Unmarshal(body, &input); err != nil {
		var offset int64
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			offset = syntaxErr.Offset
		}
		return nil, &ValidationError{Detail: []ErrorDetail{{
			Type:  "json_invalid",
			Loc:   []any{"body", offset},
			Msg:   "JSON decode error",
			Input: map[string]any{},
			Ctx:   map[string]any{"error": err.Error()},
		}}}
	}

	if _, ok := input.(map[string]any); !ok {
		return nil, &ValidationError{Detail: []ErrorDetail{{
			Type:  "model_attributes_type",
			Loc:   []any{"body"},
			Msg:   "Input should be a valid dictionary or object to extract fields from",
			Input: input,
		}}}
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, fmt.Errorf("decode fields: %w", err)
	}
	return &validator{input: input, fields: fields}, nil
}

func (v *validator) err() error {
	if len(v.details) == 0 {
		return nil
	}
	return &ValidationError{Detail: v.details}
}

func (v *validator) requiredString(name string, minLen, maxLen int) string {
	raw, ok := v.fields[name]
	if !ok {
		v.details = append(v.details, ErrorDetail{
			Type:  "missing",
			Loc:   []any{"body", name},
			Msg:   "Field required",
			Input: v.input,
		})
		return ""
	}
	s, ok := v.stringValue(name, raw)
	if !ok {
		return ""
	}
	v.checkLength(name, s, minLen, maxLen)
	return s
}

func (v *validator) optionalString(name string, minLen, maxLen int) *string {
	raw, ok := v.fields[name]
	if !ok {
		return nil
	}
	s, ok := v.stringValue(name, raw)
	if !ok {
		return nil
	}
	v.checkLength(name, s, minLen, maxLen)
	return &s
}

// nullableString reports whether name was present and its value, which is
// nil for an explicit null.
func (v *validator) nullableString(name string) (bool, *string) {
	raw, ok := v.fields[name]
	if !ok {
		return false, nil
	}
	if string(bytes.TrimSpace(raw)) == "null" {
		return true, nil
	}
	s, ok := v.stringValue(name, raw)
	if !ok {
		return true, nil
	}
	return true, &s
}

func (v *validator) stringValue(name string, raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil && string(bytes.TrimSpace(raw)) != "null" {
		return s, true
	}
	var input any
	_ = json.Unmarshal(raw, &input)
	v.details = append(v.details, ErrorDetail{
		Type:  "string_type",
		Loc:   []any{"body", name},
		Msg:   "Input should be a valid string",
		Input: input,
	})
	return "", false
}

func (v *validator) checkLength(name, s string, minLen, maxLen int) {
	n := utf8.RuneCountInString(s)
	switch {
	case n < minLen:
		v.details = append(v.details, ErrorDetail{
			Type:  "string_too_short",
			Loc:   []any{"body", name},
			Msg:   fmt.Sprintf("String should have at least %s", characters(minLen)),
			Input: s,
			Ctx:   map[string]any{"min_length": minLen},
		})
	case n > maxLen:
		v.details = append(v.details, ErrorDetail{
			Type:  "string_too_long",
			Loc:   []any{"body", name},
			Msg:   fmt.Sprintf("String should have at most %s", characters(maxLen)),
			Input: s,
			Ctx:   map[string]any{"max_length": maxLen},
		})
	}
}

func characters(n int) string {
	if n == 1 {
		return "1 character"
	}
	return fmt.Sprintf("%d characters", n)
}
