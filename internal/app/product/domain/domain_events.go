package domain

import "time"

// CatalogAggregateID is the aggregate id carried by events about the whole catalog
// rather than a single product.
const CatalogAggregateID = "catalog"

// Event type names.
const (
	EventCatalogLoaded   = "catalog.loaded"
	EventCatalogError    = "catalog.error"
	EventCriteriaChanged = "catalog.criteria_changed"
	EventPageChanged     = "catalog.page_changed"
	EventProductCreated  = "product.created"
	EventProductUpdated  = "product.updated"
	EventProductDeleted  = "product.deleted"
)

// CatalogEvent is a fact about a change of catalog state.
// Events are delivered to catalog subscribers and written to the outbox by the
// Spanner repository.
type CatalogEvent interface {
	EventType() string
	AggregateID() string
	OccurredAt() time.Time
}

// ProductCreatedEvent is raised when a product has been added.
type ProductCreatedEvent struct {
	Product   Product
	CreatedAt time.Time
}

func (e *ProductCreatedEvent) EventType() string     { return EventProductCreated }
func (e *ProductCreatedEvent) AggregateID() string   { return e.Product.ID }
func (e *ProductCreatedEvent) OccurredAt() time.Time { return e.CreatedAt }

// ProductUpdatedEvent is raised when product fields changed.
type ProductUpdatedEvent struct {
	ProductID string
	UpdatedAt time.Time
	Changes   map[string]interface{} // field name -> new value
}

func (e *ProductUpdatedEvent) EventType() string     { return EventProductUpdated }
func (e *ProductUpdatedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductUpdatedEvent) OccurredAt() time.Time { return e.UpdatedAt }

// ProductDeletedEvent is raised when a product has been removed.
type ProductDeletedEvent struct {
	ProductID string
	DeletedAt time.Time
}

func (e *ProductDeletedEvent) EventType() string     { return EventProductDeleted }
func (e *ProductDeletedEvent) AggregateID() string   { return e.ProductID }
func (e *ProductDeletedEvent) OccurredAt() time.Time { return e.DeletedAt }

// CatalogLoadedEvent is raised after the catalog was replaced from the backing store.
type CatalogLoadedEvent struct {
	Count    int
	LoadedAt time.Time
}

func (e *CatalogLoadedEvent) EventType() string     { return EventCatalogLoaded }
func (e *CatalogLoadedEvent) AggregateID() string   { return CatalogAggregateID }
func (e *CatalogLoadedEvent) OccurredAt() time.Time { return e.LoadedAt }

// CatalogErrorEvent is raised whenever an operation failed and the error slot
// was overwritten.
type CatalogErrorEvent struct {
	Operation string
	ProductID string
	Message   string
	At        time.Time
}

func (e *CatalogErrorEvent) EventType() string { return EventCatalogError }

func (e *CatalogErrorEvent) AggregateID() string {
	if e.ProductID != "" {
		return e.ProductID
	}
	return CatalogAggregateID
}

func (e *CatalogErrorEvent) OccurredAt() time.Time { return e.At }

// CriteriaChangedEvent is raised when the filter criteria changed.
type CriteriaChangedEvent struct {
	Search    string
	Category  string
	MaxPrice  float64
	ChangedAt time.Time
}

func (e *CriteriaChangedEvent) EventType() string     { return EventCriteriaChanged }
func (e *CriteriaChangedEvent) AggregateID() string   { return CatalogAggregateID }
func (e *CriteriaChangedEvent) OccurredAt() time.Time { return e.ChangedAt }

// PageChangedEvent is raised when the current page number changed.
type PageChangedEvent struct {
	Page      int
	ChangedAt time.Time
}

func (e *PageChangedEvent) EventType() string     { return EventPageChanged }
func (e *PageChangedEvent) AggregateID() string   { return CatalogAggregateID }
func (e *PageChangedEvent) OccurredAt() time.Time { return e.ChangedAt }
