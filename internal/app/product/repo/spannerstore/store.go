// Package spannerstore is the Cloud Spanner backing store used by the catalog
// API server. Every write is committed together with an outbox row describing
// the catalog event.
package spannerstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/spanner"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	contracts "github.com/murkotick/catalog-store/internal/app/product/contracts"
	"github.com/murkotick/catalog-store/internal/app/product/domain"
	"github.com/murkotick/catalog-store/internal/models/m_outbox"
	"github.com/murkotick/catalog-store/internal/models/m_product"
	"github.com/murkotick/catalog-store/internal/pkg/clock"
	commitplan "github.com/murkotick/catalog-store/internal/pkg/committer"
)

const listSQL = `SELECT product_id, name, price, description, expiration_date, category, image, created_at
	FROM products
	ORDER BY created_at ASC, product_id ASC`

// Store implements contracts.BackingStore on Cloud Spanner.
type Store struct {
	client    *spanner.Client
	products  contracts.ProductRepo
	outbox    contracts.OutboxRepo
	committer contracts.Committer
	clock     clock.Clock
}

func New(client *spanner.Client, products contracts.ProductRepo, outbox contracts.OutboxRepo,
	committer contracts.Committer, clk clock.Clock) *Store {
	return &Store{
		client:    client,
		products:  products,
		outbox:    outbox,
		committer: committer,
		clock:     clk,
	}
}

// Authoritative is true: rows read back from Spanner are the source of truth.
func (s *Store) Authoritative() bool { return true }

func (s *Store) FetchAll(ctx context.Context) ([]domain.Product, error) {
	iter := s.client.Single().Query(ctx, spanner.Statement{SQL: listSQL})
	defer iter.Stop()

	out := make([]domain.Product, 0)
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("spanner: list products: %w", err)
		}
		p, err := decodeRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
}

func (s *Store) Create(ctx context.Context, p domain.Product) (domain.Product, error) {
	now := s.clock.Now()

	plan := commitplan.NewPlan()
	plan.Add(s.products.InsertMut(p))
	if err := s.addOutbox(plan, &domain.ProductCreatedEvent{Product: p, CreatedAt: now}, now); err != nil {
		return domain.Product{}, err
	}

	if err := s.committer.Apply(ctx, plan); err != nil {
		return domain.Product{}, fmt.Errorf("spanner: insert product %s: %w", p.ID, err)
	}
	return p, nil
}

func (s *Store) Update(ctx context.Context, id string, patch domain.Patch) (domain.Product, error) {
	now := s.clock.Now()

	current, err := s.get(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	updated, changes, err := current.Apply(patch)
	if err != nil {
		return domain.Product{}, err
	}
	if !changes.HasChanges() {
		return updated, nil
	}

	plan := commitplan.NewPlan()
	plan.Add(s.products.UpdateMut(updated, changes, now))
	ev := &domain.ProductUpdatedEvent{
		ProductID: id,
		UpdatedAt: now,
		Changes:   updated.FieldValues(changes.DirtyFields()),
	}
	if err := s.addOutbox(plan, ev, now); err != nil {
		return domain.Product{}, err
	}

	if err := s.committer.Apply(ctx, plan); err != nil {
		return domain.Product{}, fmt.Errorf("spanner: update product %s: %w", id, err)
	}
	return updated, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	now := s.clock.Now()

	if _, err := s.get(ctx, id); err != nil {
		return err
	}

	plan := commitplan.NewPlan()
	plan.Add(s.products.DeleteMut(id))
	if err := s.addOutbox(plan, &domain.ProductDeletedEvent{ProductID: id, DeletedAt: now}, now); err != nil {
		return err
	}

	if err := s.committer.Apply(ctx, plan); err != nil {
		return fmt.Errorf("spanner: delete product %s: %w", id, err)
	}
	return nil
}

func (s *Store) get(ctx context.Context, id string) (domain.Product, error) {
	row, err := s.client.Single().ReadRow(ctx, m_product.TableName, spanner.Key{id}, m_product.ReadColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound || errors.Is(err, spanner.ErrRowNotFound) {
			return domain.Product{}, fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}
		return domain.Product{}, fmt.Errorf("spanner: read product %s: %w", id, err)
	}
	return decodeRow(row)
}

func (s *Store) addOutbox(plan *commitplan.Plan, ev domain.CatalogEvent, now time.Time) error {
	payload, err := marshalEventPayload(ev)
	if err != nil {
		return err
	}
	plan.Add(s.outbox.InsertMut(&contracts.OutboxEvent{
		EventID:      uuid.NewString(),
		EventType:    ev.EventType(),
		AggregateID:  ev.AggregateID(),
		PayloadJSON:  payload,
		Status:       m_outbox.StatusPending,
		CreatedAtUTC: now,
	}))
	return nil
}

// decodeRow reads a row selected in m_product.ReadColumns order.
func decodeRow(row *spanner.Row) (domain.Product, error) {
	var (
		id, name, category string
		price              float64
		description, image spanner.NullString
		expiration         spanner.NullDate
		createdAt          time.Time
	)
	if err := row.Columns(&id, &name, &price, &description, &expiration, &category, &image, &createdAt); err != nil {
		return domain.Product{}, fmt.Errorf("spanner: decode product row: %w", err)
	}

	p := domain.Product{
		ID:          id,
		Name:        name,
		Price:       price,
		Description: description.StringVal,
		Category:    category,
		Image:       image.StringVal,
		CreatedAt:   createdAt.UTC(),
	}
	if expiration.Valid {
		p.ExpirationDate = domain.NewDate(expiration.Date.Year, expiration.Date.Month, expiration.Date.Day)
	}
	return p, nil
}
