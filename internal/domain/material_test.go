package domain

import (
	"errors"
	"testing"
)

func TestDeriveConsumingRate(t *testing.T) {
	tests := []struct {
		name       string
		amount     float64
		conversion float64
		want       float64
	}{
		{"cement bag to kg", 25.00, 50.00, 0.5},
		{"one to one", 3.50, 1.00, 3.50},
		{"zero conversion", 25.00, 0, 0},
		{"negative conversion", 25.00, -2, 0},
		{"zero amount", 0, 50.00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DeriveConsumingRate(tt.amount, tt.conversion); got != tt.want {
				t.Errorf("DeriveConsumingRate(%v, %v) = %v, want %v", tt.amount, tt.conversion, got, tt.want)
			}
		})
	}
}

func validMaterial() *Material {
	return &Material{
		ItemCode:         "CEM001",
		ItemName:         "Portland Cement",
		StoringUOM:       "Bag",
		PurchasingAmount: 25.00,
		ConsumingUOM:     "Kg",
		ConversionUnit:   50.00,
	}
}

func TestMaterialValidate(t *testing.T) {
	if err := validMaterial().Validate(); err != nil {
		t.Fatalf("valid material rejected: %v", err)
	}

	t.Run("missing fields", func(t *testing.T) {
		tests := []struct {
			field  string
			mutate func(*Material)
		}{
			{"item code", func(m *Material) { m.ItemCode = "" }},
			{"item name", func(m *Material) { m.ItemName = "" }},
			{"storing UOM", func(m *Material) { m.StoringUOM = "" }},
			{"consuming UOM", func(m *Material) { m.ConsumingUOM = "" }},
		}

		for _, tt := range tests {
			t.Run(tt.field, func(t *testing.T) {
				m := validMaterial()
				tt.mutate(m)

				err := m.Validate()
				missing := &MissingFieldError{}
				if !errors.As(err, &missing) {
					t.Fatalf("expected MissingFieldError, got %v", err)
				}
				if missing.Field != tt.field {
					t.Errorf("expected field %q, got %q", tt.field, missing.Field)
				}
			})
		}
	})

	t.Run("non-positive amount", func(t *testing.T) {
		for _, amount := range []float64{0, -25.00} {
			m := validMaterial()
			m.PurchasingAmount = amount
			if err := m.Validate(); !errors.Is(err, ErrNonPositiveAmount) {
				t.Errorf("amount %v: expected ErrNonPositiveAmount, got %v", amount, err)
			}
		}
	})

	t.Run("non-positive conversion", func(t *testing.T) {
		for _, conversion := range []float64{0, -1} {
			m := validMaterial()
			m.ConversionUnit = conversion
			if err := m.Validate(); !errors.Is(err, ErrNonPositiveConversion) {
				t.Errorf("conversion %v: expected ErrNonPositiveConversion, got %v", conversion, err)
			}
		}
	})
}
