package supabase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntityFilter(t *testing.T) {
	filter, ok := entityFilter("5f6d0a38-1f0e-4d7a-9c93-2b8a1d2f4e61")
	assert.True(t, ok)
	assert.Equal(t,
		"deal_id.eq.5f6d0a38-1f0e-4d7a-9c93-2b8a1d2f4e61,buying_party_id.eq.5f6d0a38-1f0e-4d7a-9c93-2b8a1d2f4e61",
		filter)
}

// Ids that could rewrite the disjunction never reach the query string.
func TestEntityFilterRejectsNonUUIDs(t *testing.T) {
	for _, id := range []string{
		"",
		"not-a-uuid",
		"a,status.eq.done",
		"a),and(status.eq.done",
		"5f6d0a38-1f0e-4d7a-9c93-2b8a1d2f4e61,id.neq.x",
	} {
		_, ok := entityFilter(id)
		assert.False(t, ok, "id %q must be rejected", id)
	}
}
