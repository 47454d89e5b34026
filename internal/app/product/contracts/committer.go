package contracts

import (
	"context"

	commitplan "github.com/murkotick/catalog-store/internal/pkg/committer"
)

// Committer applies a collection of Spanner mutations atomically.
// The Spanner repository builds a plan per catalog operation (product row plus
// outbox row) and hands it over here.
type Committer interface {
	Apply(ctx context.Context, plan *commitplan.Plan) error
}
