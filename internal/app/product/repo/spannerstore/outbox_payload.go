package spannerstore

import (
	"encoding/json"
	"fmt"

	"github.com/murkotick/catalog-store/internal/app/product/domain"
)

// marshalEventPayload converts a catalog event into the JSON payload stored in
// the outbox. Only product-level events reach the outbox.
func marshalEventPayload(ev domain.CatalogEvent) (string, error) {
	if ev == nil {
		return "{}", nil
	}

	var payload map[string]interface{}
	switch e := ev.(type) {
	case *domain.ProductCreatedEvent:
		payload = map[string]interface{}{
			"product_id": e.Product.ID,
			"product":    e.Product,
			"created_at": e.CreatedAt,
		}

	case *domain.ProductUpdatedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"changes":    e.Changes,
			"updated_at": e.UpdatedAt,
		}

	case *domain.ProductDeletedEvent:
		payload = map[string]interface{}{
			"product_id": e.ProductID,
			"deleted_at": e.DeletedAt,
		}

	default:
		return "", fmt.Errorf("outbox: unsupported event %T", ev)
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal outbox payload for %s: %w", ev.EventType(), err)
	}
	return string(b), nil
}
