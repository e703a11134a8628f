package ui

import "testing"

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	if len(names) != 3 {
		t.Fatalf("ThemeNames() returned %d names, want 3", len(names))
	}
	if names[0] != "Dracula" || names[1] != "Nightfox" || names[2] != "Slate" {
		t.Fatalf("ThemeNames() = %v, want [Dracula Nightfox Slate]", names)
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Dracula"); got != "Nightfox" {
		t.Fatalf("NextTheme(Dracula) = %q, want Nightfox", got)
	}
	if got := NextTheme("Slate"); got != "Dracula" {
		t.Fatalf("NextTheme(Slate) = %q, want Dracula", got)
	}
	if got := NextTheme("Unknown"); got != "Dracula" {
		t.Fatalf("NextTheme(Unknown) = %q, want Dracula", got)
	}
}

func TestGetTheme(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q, want Slate", got)
	}
	if got := GetTheme(" nightfox ").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nightfox).Name = %q, want Nightfox", got)
	}
	if got := GetTheme("Unknown").Name; got != "Dracula" {
		t.Fatalf("GetTheme(Unknown).Name = %q, want Dracula (fallback)", got)
	}
	if got := GetTheme("").Name; got != "Dracula" {
		t.Fatalf("GetTheme(\"\").Name = %q, want Dracula", got)
	}
}

func TestThemesDefineEveryColor(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		colors := []string{
			th.Background, th.Surface, th.SurfaceAlt, th.FocusBg,
			th.SelectionBg, th.SelectionText,
			th.Border, th.BorderMuted, th.BorderFocus,
			th.Text, th.Muted, th.Faint, th.Accent,
			th.Success, th.Warning, th.Danger, th.Info,
		}
		for i, c := range colors {
			if len(c) != 7 || c[0] != '#' {
				t.Fatalf("%s color %d = %q, want #rrggbb", name, i, c)
			}
		}
	}
}
