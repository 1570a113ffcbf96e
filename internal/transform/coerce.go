// Package transform turns raw backend rows into chart-ready view models.
//
// Every transformer is a pure function: it never fails, absent or malformed
// numbers become 0 and absent names become "Unknown". An empty input yields
// empty (non-nil) outputs.
package transform

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/albapepper/ipl-dashboard/internal/iplapi"
)

// Unknown replaces a name that is absent under every accepted field.
const Unknown = "Unknown"

// TopN is the number of records shown as highlight cards.
const TopN = 3

// Name resolves a display name. Precedence: primary field, fallback field,
// then Unknown. Empty strings count as absent.
func Name(rec iplapi.RawRecord, primary, fallback string) string {
	for _, key := range []string{primary, fallback} {
		switch v := rec[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case json.Number:
			return v.String()
		}
	}
	return Unknown
}

// Float extracts a numeric field as float64. Strings are parsed leniently:
// the longest numeric prefix counts ("7.5 rpo" is 7.5). Anything else is 0.
func Float(rec iplapi.RawRecord, key string) float64 {
	f, ok := extractValue(rec[key])
	if !ok {
		return 0
	}
	return f
}

// Int extracts a numeric field as int, truncating toward zero. Strings are
// parsed up to the first non-digit ("12.9" is 12).
func Int(rec iplapi.RawRecord, key string) int {
	v := rec[key]
	if s, ok := v.(string); ok {
		n, err := strconv.ParseInt(leadingNumber(strings.TrimSpace(s), false), 10, 64)
		if err != nil {
			return 0
		}
		return int(n)
	}
	f, ok := extractValue(v)
	if !ok || math.Abs(f) >= 1<<62 {
		return 0
	}
	return int(math.Trunc(f))
}

// Label truncates s to at most width display columns, for chart categories.
func Label(s string, width int) string {
	return runewidth.Truncate(s, width, "")
}

// Round rounds x to the given number of decimal places.
func Round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}

// extractValue normalizes a decoded JSON value to a finite float64.
func extractValue(val any) (float64, bool) {
	var f float64
	switch v := val.(type) {
	case nil:
		return 0, false
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(leadingNumber(strings.TrimSpace(v), true), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// leadingNumber returns the longest prefix of s that reads as a decimal
// number: optional sign, digits, and (when fractional) a fraction and exponent.
func leadingNumber(s string, fractional bool) string {
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := scanDigits(s, i)
	end := digits
	if !fractional {
		return s[:end]
	}
	if end < len(s) && s[end] == '.' {
		frac := scanDigits(s, end+1)
		if frac > end+1 || digits > i {
			end = frac
		}
	}
	if end > i && end < len(s) && (s[end] == 'e' || s[end] == 'E') {
		j := end + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if exp := scanDigits(s, j); exp > j {
			end = exp
		}
	}
	return s[:end]
}

func scanDigits(s string, i int) int {
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}
