package util

import "testing"

func TestSanitizeEntryName(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"clean", "site_plan_v2.pdf", "site_plan_v2.pdf"},
		{"illegal characters", `rack<layout>:"final".pdf`, "rack_layout____final_.pdf"},
		{"path separators", `plans/north\wing.pdf`, "plans_north_wing.pdf"},
		{"wildcards", "draft?*.docx", "draft__.docx"},
		{"surrounding space", "  permit set.pdf  ", "permit set.pdf"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeEntryName(tc.in); got != tc.want {
				t.Fatalf("SanitizeEntryName(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSanitizeEntryNameIdempotent(t *testing.T) {
	inputs := []string{
		`rack<layout>:"final".pdf`,
		"already_clean.pdf",
		"a/b\\c|d.xlsx",
	}
	for _, in := range inputs {
		once := SanitizeEntryName(in)
		twice := SanitizeEntryName(once)
		if once != twice {
			t.Fatalf("sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitizeProjectName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Acme Cold Storage — Phase 2", "Acme_Cold_Storage_Phase_2"},
		{"  West Valley DC  ", "West_Valley_DC"},
		{"!!!", "Project"},
		{"Plain", "Plain"},
	}
	for _, tc := range cases {
		if got := SanitizeProjectName(tc.in); got != tc.want {
			t.Fatalf("SanitizeProjectName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
