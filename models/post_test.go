package models

import (
	"strings"
	"testing"
)

func TestNormalizeCategory(t *testing.T) {
	cases := []struct {
		in   string
		want Category
	}{
		{"general", CategoryGeneral},
		{"academic-help", CategoryAcademicHelp},
		{"study-tips", CategoryStudyTips},
		{"parents-corner", CategoryParentsCorner},
		{"announcements", CategoryAnnouncements},
		{"", CategoryGeneral},
		{"Announcements", CategoryGeneral},
		{"random-junk", CategoryGeneral},
	}
	for _, tc := range cases {
		if got := NormalizeCategory(tc.in); got != tc.want {
			t.Errorf("NormalizeCategory(%q)=%s want %s", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeRole(t *testing.T) {
	for _, valid := range []string{"student", "parent", "instructor", "admin", "partner", "staff"} {
		if got := NormalizeRole(valid); string(got) != valid {
			t.Errorf("valid role %q coerced to %s", valid, got)
		}
	}
	for _, invalid := range []string{"", "wizard", "Admin"} {
		if got := NormalizeRole(invalid); got != RoleStudent {
			t.Errorf("invalid role %q gave %s, want student", invalid, got)
		}
	}
}

func TestMakeExcerpt(t *testing.T) {
	short := "a short body"
	if got := MakeExcerpt(short); got != short {
		t.Errorf("short content truncated: %q", got)
	}

	long := strings.Repeat("x", 500)
	if got := MakeExcerpt(long); len([]rune(got)) != 160 {
		t.Errorf("excerpt length = %d, want 160", len([]rune(got)))
	}

	// rune-safe truncation
	wide := strings.Repeat("ナ", 200)
	if got := MakeExcerpt(wide); len([]rune(got)) != 160 {
		t.Errorf("multibyte excerpt length = %d, want 160", len([]rune(got)))
	}
}
