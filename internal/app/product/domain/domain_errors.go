package domain

import "errors"

// Domain errors for Product lookups
var (
	// ErrProductNotFound indicates that a product with the given ID does not exist.
	ErrProductNotFound = errors.New("product not found")
)

// Domain errors for Product validation
var (
	// ErrEmptyProductID indicates a product was built without an identifier.
	ErrEmptyProductID = errors.New("product id cannot be empty")

	// ErrEmptyProductName indicates an attempt to create/update a product with an empty name.
	ErrEmptyProductName = errors.New("product name cannot be empty")

	// ErrProductNameTooLong indicates the product name exceeds maximum length.
	ErrProductNameTooLong = errors.New("product name exceeds maximum length of 255 characters")

	// ErrNegativePrice indicates an attempt to set a negative price.
	ErrNegativePrice = errors.New("price cannot be negative")

	// ErrInvalidPrice indicates a price that is NaN or infinite.
	ErrInvalidPrice = errors.New("price must be a finite number")

	// ErrInvalidDate indicates an expiration date that is neither YYYY-MM-DD nor RFC3339.
	ErrInvalidDate = errors.New("invalid date")
)

// IsValidationError reports whether err comes from product validation.
func IsValidationError(err error) bool {
	switch {
	case errors.Is(err, ErrEmptyProductID),
		errors.Is(err, ErrEmptyProductName),
		errors.Is(err, ErrProductNameTooLong),
		errors.Is(err, ErrNegativePrice),
		errors.Is(err, ErrInvalidPrice),
		errors.Is(err, ErrInvalidDate):
		return true
	}
	return false
}
