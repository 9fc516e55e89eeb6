package country

import (
	"errors"
	"testing"

	"github.com/EgorTarasov/ldt-2023/internal/pkg/apperrors"
)

func TestAlpha2(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"english name", "Russia", "RU"},
		{"official name", "Russian Federation", "RU"},
		{"alpha2 passthrough", "RU", "RU"},
		{"lowercase", "germany", "DE"},
		{"padded", "  Kazakhstan ", "KZ"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Alpha2(tc.in)
			if err != nil {
				t.Fatalf("Alpha2(%q) returned error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Alpha2(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestAlpha2_Unknown(t *testing.T) {
	for _, in := range []string{"", "   ", "Atlantis"} {
		if _, err := Alpha2(in); !errors.Is(err, apperrors.ErrInvalidCountry) {
			t.Errorf("Alpha2(%q) error = %v, want ErrInvalidCountry", in, err)
		}
	}
}

func TestIsRussia(t *testing.T) {
	if !IsRussia("Russian Federation") {
		t.Error("Russian Federation should resolve to RU")
	}
	if IsRussia("Belarus") {
		t.Error("Belarus should not resolve to RU")
	}
	if IsRussia("nowhere") {
		t.Error("unknown names are never RU")
	}
}
