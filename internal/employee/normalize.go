package employee

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Normalize maps a raw record onto the canonical shape. It never fails; every
// field ends up with a defined value and rejection is left to Validate.
//
// Empty strings are kept as "" for email, employeeNum, firstName and lastName
// but become nil for department.
func Normalize(raw RawRecord) Record {
	rec := Record{
		Email:       optionalString(raw, "email"),
		EmployeeNum: optionalString(raw, "employeeNum"),
		FirstName:   optionalString(raw, "firstName"),
		LastName:    optionalString(raw, "lastName"),
		Department:  optionalString(raw, "department"),
		Role:        DefaultRole,
		HoursWorked: coerceHours(raw["hoursWorked"]),
		Active:      coerceActive(raw["active"]),
	}

	if rec.Email != nil {
		lowered := strings.ToLower(*rec.Email)
		rec.Email = &lowered
	}

	if rec.Department != nil && *rec.Department == "" {
		rec.Department = nil
	}

	if role := optionalString(raw, "role"); role != nil && *role != "" {
		rec.Role = *role
	}

	return rec
}

func NormalizeAll(raws []RawRecord) []Record {
	out := make([]Record, len(raws))
	for i, raw := range raws {
		out[i] = Normalize(raw)
	}
	return out
}

func optionalString(raw RawRecord, field string) *string {
	v, ok := raw[field]
	if !ok || v == nil {
		return nil
	}
	s := strings.TrimSpace(stringify(v))
	return &s
}

func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// coerceHours accepts JSON numbers and numeric strings and rounds half-up to
// two places. Anything else is 0.
func coerceHours(v any) float64 {
	var text string
	switch t := v.(type) {
	case float64:
		text = strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		text = t.String()
	case string:
		text = strings.TrimSpace(t)
	default:
		return 0
	}
	if text == "" {
		return 0
	}

	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return RoundHours(f)
}

// RoundHours rounds to two decimal places, halves away from zero.
func RoundHours(f float64) float64 {
	return decimal.NewFromFloat(f).Round(2).InexactFloat64()
}

func coerceActive(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string, json.Number, float64:
		switch strings.ToLower(strings.TrimSpace(stringify(t))) {
		case "true", "1", "yes", "y":
			return true
		case "false", "0", "no", "n":
			return false
		}
	}
	return true
}
