package service

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/saadjs/biolink/internal/model"
)

func validateNonNegativeFloat(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number", name)
	}
	if value < 0 {
		return fmt.Errorf("%s must be >= 0", name)
	}
	return nil
}

func validatePositiveFloat(name string, value float64) error {
	if err := validateNonNegativeFloat(name, value); err != nil {
		return err
	}
	if value == 0 {
		return fmt.Errorf("%s must be > 0", name)
	}
	return nil
}

func validateNutrients(n model.Nutrients) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"calories", n.Calories},
		{"protein", n.ProteinG},
		{"carbs", n.CarbsG},
		{"fat", n.FatG},
		{"fiber", n.FiberG},
		{"sodium", n.SodiumMg},
		{"potassium", n.PotassiumMg},
	}
	for _, f := range fields {
		if err := validateNonNegativeFloat(f.name, f.value); err != nil {
			return err
		}
	}
	return nil
}

func ValidateDateKey(key string) error {
	if _, err := time.Parse(model.DateKeyLayout, key); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", key)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}
