package committer

import (
	"testing"

	"cloud.google.com/go/spanner"
	"github.com/stretchr/testify/assert"
)

func TestCommitPlan(t *testing.T) {
	plan := NewPlan()
	assert.True(t, plan.IsEmpty())

	plan.Add(nil)
	assert.True(t, plan.IsEmpty(), "nil mutations are ignored")

	plan.Add(spanner.Delete("price_entries", spanner.Key{"A"}))
	plan.AddMultiple([]*spanner.Mutation{
		spanner.Delete("price_entries", spanner.Key{"B"}),
		nil,
		spanner.Delete("outbox_events", spanner.Key{"e-1"}),
	})

	assert.False(t, plan.IsEmpty())
	assert.Equal(t, 3, plan.Count())
	assert.Len(t, plan.Mutations(), 3)
}
