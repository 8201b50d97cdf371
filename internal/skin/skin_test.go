package skin

import "testing"

func TestResolve(t *testing.T) {
	testCases := []struct {
		id   string
		want string
	}{
		{"cityscape", "cityscape"},
		{"girly_pink", "girly_pink"},
		{"", DefaultID},
		{"does-not-exist", DefaultID},
		{"OCEAN", DefaultID},
	}
	for _, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			if got := Resolve(tc.id).ID; got != tc.want {
				t.Errorf("Resolve(%q) = %q, want %q", tc.id, got, tc.want)
			}
		})
	}
}

func TestAll(t *testing.T) {
	skins := All()
	if len(skins) != 6 {
		t.Fatalf("expected 6 skins, got %d", len(skins))
	}
	for _, s := range skins {
		if _, ok := Lookup(s.ID); !ok {
			t.Errorf("skin %q listed but not registered", s.ID)
		}
		if s.Colors.Happy == "" || s.Colors.Calm == "" {
			t.Errorf("skin %q has an incomplete palette", s.ID)
		}
	}
	if Default().ID != DefaultID {
		t.Errorf("unexpected default %q", Default().ID)
	}
}
