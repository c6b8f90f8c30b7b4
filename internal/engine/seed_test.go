package engine

import (
	"errors"
	"testing"

	apperrors "github.com/agbru/fiblike/internal/errors"
)

func TestParseSeed(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    Seed
		wantErr bool
	}{
		{"1,1", DefaultSeed, false},
		{"2, 3", Seed{"2", "3"}, false},
		{" -4 ,7 ", Seed{"-4", "7"}, false},
		{"", Seed{}, true},
		{"5", Seed{}, true},
		{"1,", Seed{}, true},
		{",1", Seed{}, true},
		{"1,2,3", Seed{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			got, err := ParseSeed(tt.input)
			if tt.wantErr {
				var valErr apperrors.ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("ParseSeed(%q) error = %v, want ValidationError", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSeed(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseSeed(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSeed_Helpers(t *testing.T) {
	t.Parallel()
	s := Seed{"-2", "3"}
	if s.String() != "(-2, 3)" {
		t.Errorf("String() = %q", s.String())
	}
	if s.Key() != "-2,3" {
		t.Errorf("Key() = %q", s.Key())
	}
	if !s.IsNegative() || s.IsDefault() {
		t.Error("unexpected IsNegative/IsDefault for (-2, 3)")
	}
	if !DefaultSeed.IsDefault() || DefaultSeed.IsNegative() {
		t.Error("unexpected IsNegative/IsDefault for the default seed")
	}
}
