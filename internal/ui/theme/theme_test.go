package theme

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		pref       Preference
		systemDark bool
		want       Mode
	}{
		{PreferLight, true, Light},
		{PreferLight, false, Light},
		{PreferDark, true, Dark},
		{PreferDark, false, Dark},
		{PreferSystem, true, Dark},
		{PreferSystem, false, Light},
		{Preference("sepia"), false, Light},
		{Preference(""), true, Dark},
	}

	for _, tt := range tests {
		if got := Resolve(tt.pref, tt.systemDark); got != tt.want {
			t.Errorf("Resolve(%q, %v) = %v, want %v", tt.pref, tt.systemDark, got, tt.want)
		}
	}
}

func TestUseSwapsPalette(t *testing.T) {
	t.Cleanup(func() {
		SetSystemDark(true)
		Apply(Dark)
	})

	SetSystemDark(false)
	if m := Use(PreferSystem); m != Light {
		t.Fatalf("expected light, got %v", m)
	}
	if Text != LightPalette.Text {
		t.Error("expected light text color after Use")
	}
	if IsDark() {
		t.Error("expected IsDark false")
	}

	Use(PreferDark)
	if Text != DarkPalette.Text {
		t.Error("expected dark text color after Use(dark)")
	}
	if Current() != Dark {
		t.Errorf("expected dark mode, got %v", Current())
	}
}
