package cart

import (
	"testing"
)

func TestClampQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		want     int
	}{
		{"within range", 5, 5},
		{"at maximum", 99, 99},
		{"above maximum", 150, 99},
		{"zero passes through for removal", 0, 0},
		{"negative passes through for removal", -2, -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClampQuantity(tt.quantity); got != tt.want {
				t.Errorf("ClampQuantity(%d) = %d, want %d", tt.quantity, got, tt.want)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	lines := []CartLine{
		{UnitPrice: 12000, Quantity: 2}, // ฿240
		{UnitPrice: 4500, Quantity: 3},  // ฿135
	}

	if got := Subtotal(lines); got != 37500 {
		t.Errorf("Subtotal = %d, want 37500", got)
	}

	if got := Subtotal(nil); got != 0 {
		t.Errorf("Subtotal(nil) = %d, want 0", got)
	}
}

func TestJSONMapRoundTrip(t *testing.T) {
	options := JSONMap{
		"flavor":   "chocolate",
		"frosting": "cream cheese",
		"note":     "สุขสันต์วันเกิด",
	}

	value, err := options.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var decoded JSONMap
	if err := decoded.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if decoded["flavor"] != "chocolate" || decoded["note"] != "สุขสันต์วันเกิด" {
		t.Errorf("round trip lost data: %#v", decoded)
	}

	// String input, the form pq hands back
	var fromString JSONMap
	if err := fromString.Scan(`{"flavor":"vanilla"}`); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if fromString["flavor"] != "vanilla" {
		t.Errorf("unexpected map: %#v", fromString)
	}
}

func TestJSONMapNil(t *testing.T) {
	var m JSONMap
	value, err := m.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if value != nil {
		t.Errorf("nil map should store NULL, got %v", value)
	}

	decoded := JSONMap{"stale": true}
	if err := decoded.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if decoded != nil {
		t.Errorf("scanning NULL should reset the map, got %#v", decoded)
	}

	if err := decoded.Scan(42); err == nil {
		t.Error("expected error scanning unsupported type")
	}
}
