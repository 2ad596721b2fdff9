package errors

import (
	"math"
	"testing"
)

func TestValidateViewport(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"typical", 800, 600, false},
		{"tiny", 1, 1, false},
		{"zero width", 0, 600, true},
		{"negative height", 800, -1, true},
		{"nan", math.NaN(), 600, true},
		{"inf", 800, math.Inf(1), true},
		{"too large", 20000, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateViewport(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateViewport(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidViewport) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidViewport)
			}
		})
	}
}

func TestValidateRaster(t *testing.T) {
	tests := []struct {
		name        string
		w, h, scale float64
		wantErr     bool
	}{
		{"default", 800, 600, 1, false},
		{"retina", 800, 600, 2, false},
		{"largest square", 8192, 8192, 1, false},
		{"max viewport at scale 1", 16384, 16384, 1, true},
		{"huge scale", 16384, 16384, 100, true},
		{"one side too long", 1000, 10, 20, true},
		{"zero scale", 800, 600, 0, true},
		{"nan scale", 800, 600, math.NaN(), true},
		{"inf scale", 800, 600, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRaster(tt.w, tt.h, tt.scale)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRaster(%v, %v, %v) error = %v, wantErr %v", tt.w, tt.h, tt.scale, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidViewport) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidViewport)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	valid := []string{"#e5e5e5", "#00ACE4", "#fff"}
	for _, c := range valid {
		if err := ValidateColor(c); err != nil {
			t.Errorf("ValidateColor(%q) = %v, want nil", c, err)
		}
	}

	invalid := []string{"", "e5e5e5", "#e5e5e", "#ggg", "red"}
	for _, c := range invalid {
		if err := ValidateColor(c); err == nil {
			t.Errorf("ValidateColor(%q) = nil, want error", c)
		}
	}
}

func TestValidatePalette(t *testing.T) {
	if err := ValidatePalette(nil); err == nil {
		t.Error("ValidatePalette(nil) should fail")
	}
	if err := ValidatePalette([]string{"#00ACE4", "nope"}); err == nil {
		t.Error("ValidatePalette with invalid entry should fail")
	}
	if err := ValidatePalette([]string{"#00ACE4", "#00D8A5"}); err != nil {
		t.Errorf("ValidatePalette() = %v, want nil", err)
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		path    string
		wantErr bool
	}{
		{"chart.svg", false},
		{"out/chart.png", false},
		{"", true},
		{"../etc/passwd", true},
		{"bad\x00name", true},
	}

	for _, tt := range tests {
		if err := ValidatePath(tt.path); (err != nil) != tt.wantErr {
			t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
		}
	}
}
