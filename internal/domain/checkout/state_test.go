package checkout

import (
	"testing"
)

func TestReadiness(t *testing.T) {
	complete := State{
		RecipientName: "Nok",
		Phone:         "0812345678",
		Address:       "99 Sukhumvit Rd, Bangkok",
		DistanceKm:    4.5,
	}

	tests := []struct {
		name      string
		mutate    func(s *State)
		cartEmpty bool
		ready     bool
		missing   string
	}{
		{"all fields present", func(s *State) {}, false, true, ""},
		{"empty cart blocks submit", func(s *State) {}, true, false, "cart"},
		{"missing recipient", func(s *State) { s.RecipientName = "  " }, false, false, "recipient_name"},
		{"missing phone", func(s *State) { s.Phone = "" }, false, false, "phone"},
		{"missing address", func(s *State) { s.Address = "" }, false, false, "address"},
		{"distance not entered", func(s *State) { s.DistanceKm = 0 }, false, false, "distance_km"},
		{"negative distance", func(s *State) { s.DistanceKm = -1 }, false, false, "distance_km"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := complete
			tt.mutate(&state)

			got := state.Readiness(tt.cartEmpty)
			if got.Ready != tt.ready {
				t.Fatalf("Ready = %v, want %v (missing: %v)", got.Ready, tt.ready, got.Missing)
			}
			if tt.missing != "" {
				found := false
				for _, field := range got.Missing {
					if field == tt.missing {
						found = true
					}
				}
				if !found {
					t.Errorf("expected %q in missing fields, got %v", tt.missing, got.Missing)
				}
			}
		})
	}
}

func TestReadinessEmptyState(t *testing.T) {
	var state State

	got := state.Readiness(true)
	if got.Ready {
		t.Fatal("empty state must not be ready")
	}
	if len(got.Missing) != 5 {
		t.Errorf("expected all 5 fields missing, got %v", got.Missing)
	}
}
