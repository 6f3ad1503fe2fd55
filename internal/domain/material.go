package domain

import (
	"errors"
	"fmt"
	"time"
)

type Material struct {
	ID               int64     `json:"id"`
	ItemCode         string    `json:"itemCode"`
	ItemName         string    `json:"itemName"`
	StoringUOM       string    `json:"storingUOM"`
	PurchasingAmount float64   `json:"purchasingAmount"`
	ConsumingUOM     string    `json:"consumingUOM"`
	ConversionUnit   float64   `json:"conversionUnit"`
	ConsumingRate    float64   `json:"consumingRate"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
	Version          int32     `json:"-"`
}

// DeriveConsumingRate computes the price per consuming unit from the purchase
// price per storing unit and the conversion factor. A non-positive conversion
// factor yields 0 rather than an error, the caller decides whether that is
// acceptable for its path.
func DeriveConsumingRate(purchasingAmount, conversionUnit float64) float64 {
	if conversionUnit <= 0 {
		return 0
	}
	return purchasingAmount / conversionUnit
}

var (
	ErrNonPositiveAmount     = errors.New("purchasing amount must be greater than zero")
	ErrNonPositiveConversion = errors.New("conversion unit must be greater than zero")
)

type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}

// Validate checks the invariants of the direct entry path. Unlike bulk import,
// which defaults malformed numbers, direct entry rejects them outright.
func (m *Material) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"item code", m.ItemCode},
		{"item name", m.ItemName},
		{"storing UOM", m.StoringUOM},
		{"consuming UOM", m.ConsumingUOM},
	}
	for _, f := range required {
		if f.value == "" {
			return &MissingFieldError{Field: f.name}
		}
	}
	if m.PurchasingAmount <= 0 {
		return ErrNonPositiveAmount
	}
	if m.ConversionUnit <= 0 {
		return ErrNonPositiveConversion
	}
	return nil
}
