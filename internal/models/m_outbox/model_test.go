package m_outbox

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPayload(t *testing.T) {
	t.Run("raw document is not re-quoted", func(t *testing.T) {
		payload := JSONPayload(`{"SKU":"ABC"}`)
		require.True(t, payload.Valid)

		encoded, err := json.Marshal(payload.Value)
		require.NoError(t, err)
		assert.JSONEq(t, `{"SKU":"ABC"}`, string(encoded))
	})

	t.Run("empty payload is null", func(t *testing.T) {
		assert.False(t, JSONPayload("").Valid)
	})
}

func TestModel_InsertMut(t *testing.T) {
	m := NewModel()
	mut := m.InsertMut(&Data{EventID: "e-1", EventType: "price_entry.created", AggregateID: "ABC", Status: StatusPending})
	assert.NotNil(t, mut)
	assert.NotNil(t, m.DeleteMut("e-1"))
}
