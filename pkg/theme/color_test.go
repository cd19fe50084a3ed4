package theme

import "testing"

func TestAdjust(t *testing.T) {
	cases := []struct {
		hex     string
		percent float64
		want    string
	}{
		{hex: "#ff416c", percent: 20, want: "#ff749f"},
		{hex: "#ff416c", percent: -20, want: "#cc0e39"},
		{hex: "#000", percent: -50, want: "#000000"},
		{hex: "#FFFFFF", percent: 10, want: "#ffffff"},
		{hex: "#808080", percent: 0, want: "#808080"},
	}
	for _, tc := range cases {
		got, err := Adjust(tc.hex, tc.percent)
		if err != nil {
			t.Fatalf("Adjust(%q): %v", tc.hex, err)
		}
		if got != tc.want {
			t.Fatalf("Adjust(%q, %v) = %q, want %q", tc.hex, tc.percent, got, tc.want)
		}
	}
}

func TestContrast(t *testing.T) {
	cases := map[string]string{
		"#ff416c": "#ffffff",
		"#ffd200": "#000000",
		"#ffffff": "#000000",
		"#1a202c": "#ffffff",
	}
	for hex, want := range cases {
		got, err := Contrast(hex)
		if err != nil {
			t.Fatalf("Contrast(%q): %v", hex, err)
		}
		if got != want {
			t.Fatalf("Contrast(%q) = %q, want %q", hex, got, want)
		}
	}
}

func TestRGB(t *testing.T) {
	got, err := RGB("#ff416c")
	if err != nil {
		t.Fatalf("rgb: %v", err)
	}
	if got != "255, 65, 108" {
		t.Fatalf("unexpected rgb: %q", got)
	}
	if _, err := RGB("#zzz"); err == nil {
		t.Fatalf("expected error for invalid hex")
	}
	if _, err := RGB("#12345"); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestKebab(t *testing.T) {
	if got := kebab("textSecondary"); got != "text-secondary" {
		t.Fatalf("kebab = %q", got)
	}
	if got := kebab("primary"); got != "primary" {
		t.Fatalf("kebab = %q", got)
	}
}
