package catalog

import (
	"errors"
	"fmt"
)

// Kind classifies a failed catalog operation.
type Kind int

const (
	FetchFailed Kind = iota + 1
	CreateFailed
	UpdateFailed
	DeleteFailed
)

func (k Kind) String() string {
	switch k {
	case FetchFailed:
		return "fetch failed"
	case CreateFailed:
		return "create failed"
	case UpdateFailed:
		return "update failed"
	case DeleteFailed:
		return "delete failed"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// OpError wraps the transport, storage or validation error behind a failed
// catalog operation.
type OpError struct {
	Kind Kind
	ID   string // product id, empty for fetch and create
	Err  error
}

func (e *OpError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("catalog: %s for %s: %v", e.Kind, e.ID, e.Err)
	}
	return fmt.Sprintf("catalog: %s: %v", e.Kind, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

// KindOf returns the kind of the first OpError in err's chain, or 0.
func KindOf(err error) Kind {
	var op *OpError
	if errors.As(err, &op) {
		return op.Kind
	}
	return 0
}

// IsFetchFailed returns true if err is or wraps an OpError of kind FetchFailed.
func IsFetchFailed(err error) bool { return KindOf(err) == FetchFailed }

// IsCreateFailed returns true if err is or wraps an OpError of kind CreateFailed.
func IsCreateFailed(err error) bool { return KindOf(err) == CreateFailed }

// IsUpdateFailed returns true if err is or wraps an OpError of kind UpdateFailed.
func IsUpdateFailed(err error) bool { return KindOf(err) == UpdateFailed }

// IsDeleteFailed returns true if err is or wraps an OpError of kind DeleteFailed.
func IsDeleteFailed(err error) bool { return KindOf(err) == DeleteFailed }
