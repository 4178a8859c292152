package utils

import "testing"

func TestGenerateShortID(t *testing.T) {
	id := GenerateShortID(6)
	if len(id) != 6 {
		t.Fatalf("len = %d, want 6", len(id))
	}
	if GenerateShortID(6) == id {
		t.Fatal("two ids should not collide")
	}
	if got := GenerateShortID(0); len(got) != 32 {
		t.Fatalf("zero length should return the full id, got len %d", len(got))
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Introduction to Algebra", "introduction-to-algebra"},
		{"  Photosynthesis 101!  ", "photosynthesis-101"},
		{"Đại số tuyến tính", "dai-so-tuyen-tinh"},
	}
	for _, tt := range tests {
		if got := Slugify(tt.in); got != tt.want {
			t.Fatalf("Slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long sentence", 10, "this is..."},
		{"abcdef", 3, "abc"},
	}
	for _, tt := range tests {
		if got := TruncateText(tt.in, tt.max); got != tt.want {
			t.Fatalf("TruncateText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{45, "45s"},
		{60, "1m"},
		{200, "3m 20s"},
		{3600, "1h"},
		{7500, "2h 5m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Fatalf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestValidatePassword(t *testing.T) {
	if errs := ValidatePassword("Str0ngPass"); len(errs) != 0 {
		t.Fatalf("valid password rejected: %v", errs)
	}

	tests := []struct {
		name     string
		password string
		want     int
	}{
		{"too short", "Ab1", 1},
		{"no uppercase", "lowercase1", 1},
		{"no lowercase", "UPPERCASE1", 1},
		{"no digit", "NoDigitsHere", 1},
		{"everything wrong", "abc", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if errs := ValidatePassword(tt.password); len(errs) != tt.want {
				t.Fatalf("got %d errors (%v), want %d", len(errs), errs, tt.want)
			}
		})
	}
}
