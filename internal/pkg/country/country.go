// Package country normalizes user-supplied country names to ISO 3166-1
// alpha-2 codes. Application screening compares codes, never raw names,
// so "Россия", "Russia" and "Russian Federation" all screen the same.
package country

import (
	"strings"

	"github.com/biter777/countries"

	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

// Russia is the alpha-2 code internship eligibility requires.
const Russia = "RU"

// Alpha2 resolves a country name, alpha-2 or alpha-3 code to its alpha-2
// code. Matching is case-insensitive and tolerant of surrounding space.
func Alpha2(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.ErrInvalidCountry
	}

	c := countries.ByName(trimmed)
	if c == countries.Unknown {
		return "", apperrors.ErrInvalidCountry
	}
	return c.Alpha2(), nil
}

// IsRussia reports whether the name resolves to the Russian Federation.
func IsRussia(name string) bool {
	code, err := Alpha2(name)
	return err == nil && code == Russia
}
