package product

import (
	"fmt"
	"math"
	"strings"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("id is required")
	}
	return nil
}

func validateDraft(d domain.Draft) error {
	if strings.TrimSpace(d.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if math.IsNaN(d.Price) || math.IsInf(d.Price, 0) {
		return fmt.Errorf("price must be a finite number")
	}
	if d.Price < 0 {
		return fmt.Errorf("price must not be negative")
	}
	return nil
}

func validatePatch(p domain.Patch) error {
	if p.IsEmpty() {
		return fmt.Errorf("at least one field must be provided")
	}
	return nil
}
