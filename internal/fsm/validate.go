package fsm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValidateFunc checks one raw user input and returns its normalized form.
type ValidateFunc func(raw string) (string, error)

var errEmpty = errors.New("empty input")

// CurrencyName accepts a currency name and normalizes it to upper case.
func CurrencyName(raw string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return "", errEmpty
	}
	if strings.ContainsAny(name, " \t") {
		return "", fmt.Errorf("currency name %q contains spaces", name)
	}
	return name, nil
}

// Decimal accepts a number with either '.' or ',' as the decimal separator.
func Decimal(raw string) (string, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(raw), ",", ".")
	value, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return "", fmt.Errorf("not a number: %q", raw)
	}
	return strconv.FormatFloat(value, 'f', -1, 64), nil
}

// PositiveDecimal is Decimal restricted to values greater than zero.
func PositiveDecimal(raw string) (string, error) {
	normalized, err := Decimal(raw)
	if err != nil {
		return "", err
	}
	value, _ := strconv.ParseFloat(normalized, 64)
	if value <= 0 {
		return "", fmt.Errorf("not a positive number: %q", raw)
	}
	return normalized, nil
}

// Date accepts an ISO calendar date in YYYY-MM-DD form.
func Date(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if _, err := time.Parse("2006-01-02", trimmed); err != nil {
		return "", fmt.Errorf("not a date: %q", raw)
	}
	return trimmed, nil
}

// OneOf accepts only the listed values verbatim. Used for steps answered
// with fixed reply-keyboard buttons.
func OneOf(choices ...string) ValidateFunc {
	return func(raw string) (string, error) {
		value := strings.TrimSpace(raw)
		for _, choice := range choices {
			if value == choice {
				return choice, nil
			}
		}
		return "", fmt.Errorf("%q is not one of %s", raw, strings.Join(choices, "/"))
	}
}

// ParseDecimal converts a normalized field value back to float64.
func ParseDecimal(value string) float64 {
	f, _ := strconv.ParseFloat(value, 64)
	return f
}
