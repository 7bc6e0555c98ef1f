package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParsePrice converts a form value to a price.
// Surrounding whitespace is ignored and an empty value is zero.
// NaN, infinities and negative values are rejected.
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	price, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse '%s' as price: %w", s, err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, fmt.Errorf("price '%s' is not a finite number", s)
	}
	if price < 0 {
		return 0, fmt.Errorf("price '%s' must not be negative", s)
	}
	return price, nil
}

// FormatPriceInput renders a price the way it is shown back in a number input.
func FormatPriceInput(price float64) string {
	return strconv.FormatFloat(price, 'f', -1, 64)
}
