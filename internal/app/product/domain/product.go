package domain

import (
	"math"
	"strings"
	"time"
)

// Field constants for change tracking
const (
	FieldName           = "name"
	FieldPrice          = "price"
	FieldDescription    = "description"
	FieldExpirationDate = "expiration_date"
	FieldCategory       = "category"
	FieldImage          = "image"
)

const maxNameLength = 255

// Product is a catalog record.
// ID and CreatedAt are assigned once by NewProduct and never change afterwards;
// every other field is mutable through Apply.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Price          float64   `json:"price"`
	Description    string    `json:"description"`
	ExpirationDate Date      `json:"expiration_date"`
	Category       string    `json:"category"`
	Image          string    `json:"image"`
	CreatedAt      time.Time `json:"created_at"`
}

// Draft carries the caller-supplied fields of a product that does not exist yet.
type Draft struct {
	Name           string  `json:"name"`
	Price          float64 `json:"price"`
	Description    string  `json:"description"`
	ExpirationDate Date    `json:"expiration_date"`
	Category       string  `json:"category"`
	Image          string  `json:"image"`
}

// Patch is a partial update. Nil fields are left untouched. A non-nil zero
// ExpirationDate clears the date; on the wire it is sent as "".
type Patch struct {
	Name           *string  `json:"name,omitempty"`
	Price          *float64 `json:"price,omitempty"`
	Description    *string  `json:"description,omitempty"`
	ExpirationDate *Date    `json:"expiration_date,omitempty"`
	Category       *string  `json:"category,omitempty"`
	Image          *string  `json:"image,omitempty"`
}

// NewProduct builds a Product from a draft, stamping id and creation time.
func NewProduct(id string, d Draft, now time.Time) (Product, error) {
	if strings.TrimSpace(id) == "" {
		return Product{}, ErrEmptyProductID
	}
	if err := validateProductName(d.Name); err != nil {
		return Product{}, err
	}
	if err := validatePrice(d.Price); err != nil {
		return Product{}, err
	}

	return Product{
		ID:             id,
		Name:           strings.TrimSpace(d.Name),
		Price:          d.Price,
		Description:    strings.TrimSpace(d.Description),
		ExpirationDate: d.ExpirationDate,
		Category:       strings.TrimSpace(d.Category),
		Image:          strings.TrimSpace(d.Image),
		CreatedAt:      now.UTC(),
	}, nil
}

// Draft returns the mutable part of the product.
func (p Product) Draft() Draft {
	return Draft{
		Name:           p.Name,
		Price:          p.Price,
		Description:    p.Description,
		ExpirationDate: p.ExpirationDate,
		Category:       p.Category,
		Image:          p.Image,
	}
}

// Apply merges the patch into a copy of p. The returned tracker lists the
// fields whose value actually changed; p itself is not modified.
func (p Product) Apply(patch Patch) (Product, *ChangeTracker, error) {
	changes := NewChangeTracker()
	out := p

	if patch.Name != nil {
		if err := validateProductName(*patch.Name); err != nil {
			return p, nil, err
		}
		if name := strings.TrimSpace(*patch.Name); name != out.Name {
			out.Name = name
			changes.MarkDirty(FieldName)
		}
	}
	if patch.Price != nil {
		if err := validatePrice(*patch.Price); err != nil {
			return p, nil, err
		}
		if *patch.Price != out.Price {
			out.Price = *patch.Price
			changes.MarkDirty(FieldPrice)
		}
	}
	if patch.Description != nil {
		if desc := strings.TrimSpace(*patch.Description); desc != out.Description {
			out.Description = desc
			changes.MarkDirty(FieldDescription)
		}
	}
	if patch.ExpirationDate != nil && !patch.ExpirationDate.Equal(out.ExpirationDate) {
		out.ExpirationDate = *patch.ExpirationDate
		changes.MarkDirty(FieldExpirationDate)
	}
	if patch.Category != nil {
		if cat := strings.TrimSpace(*patch.Category); cat != out.Category {
			out.Category = cat
			changes.MarkDirty(FieldCategory)
		}
	}
	if patch.Image != nil {
		if img := strings.TrimSpace(*patch.Image); img != out.Image {
			out.Image = img
			changes.MarkDirty(FieldImage)
		}
	}

	return out, changes, nil
}

// Diff marks every mutable field whose value differs between a and b.
func Diff(a, b Product) *ChangeTracker {
	changes := NewChangeTracker()
	if a.Name != b.Name {
		changes.MarkDirty(FieldName)
	}
	if a.Price != b.Price {
		changes.MarkDirty(FieldPrice)
	}
	if a.Description != b.Description {
		changes.MarkDirty(FieldDescription)
	}
	if !a.ExpirationDate.Equal(b.ExpirationDate) {
		changes.MarkDirty(FieldExpirationDate)
	}
	if a.Category != b.Category {
		changes.MarkDirty(FieldCategory)
	}
	if a.Image != b.Image {
		changes.MarkDirty(FieldImage)
	}
	return changes
}

// FieldValues maps each named field to its current value.
func (p Product) FieldValues(fields []string) map[string]interface{} {
	out := make(map[string]interface{}, len(fields))
	for _, f := range fields {
		switch f {
		case FieldName:
			out[f] = p.Name
		case FieldPrice:
			out[f] = p.Price
		case FieldDescription:
			out[f] = p.Description
		case FieldExpirationDate:
			out[f] = p.ExpirationDate.String()
		case FieldCategory:
			out[f] = p.Category
		case FieldImage:
			out[f] = p.Image
		}
	}
	return out
}

// IsEmpty reports whether the patch carries no field at all.
func (pt Patch) IsEmpty() bool {
	return pt.Name == nil && pt.Price == nil && pt.Description == nil &&
		pt.ExpirationDate == nil && pt.Category == nil && pt.Image == nil
}

// Validation helpers

func validateProductName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrEmptyProductName
	}
	if len(trimmed) > maxNameLength {
		return ErrProductNameTooLong
	}
	return nil
}

func validatePrice(price float64) error {
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return ErrInvalidPrice
	}
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}
