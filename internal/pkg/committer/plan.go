package committer

import "cloud.google.com/go/spanner"

// Plan collects the mutations of one catalog write: the product row change
// and its outbox row. Nil mutations are dropped so repositories can return nil
// for "nothing to write".
type Plan struct {
	mutations []*spanner.Mutation
}

func NewPlan() *Plan {
	return &Plan{
		mutations: make([]*spanner.Mutation, 0, 2),
	}
}

func (p *Plan) Add(m *spanner.Mutation) {
	if m == nil {
		return
	}
	p.mutations = append(p.mutations, m)
}

func (p *Plan) Len() int {
	return len(p.mutations)
}

func (p *Plan) IsEmpty() bool {
	return len(p.mutations) == 0
}

func (p *Plan) Mutations() []*spanner.Mutation {
	return p.mutations
}
