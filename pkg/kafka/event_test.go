package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_Fields(t *testing.T) {
	type cartPayload struct {
		ItemCount int     `json:"item_count"`
		Total     float64 `json:"total"`
	}

	data := cartPayload{ItemCount: 3, Total: 149.97}
	event, err := NewEvent("storefront.cart.updated", "cart-abc", "cart", "storefront", data)
	require.NoError(t, err)

	assert.NotEmpty(t, event.EventID, "EventID should be a non-empty UUID")
	assert.Equal(t, "storefront.cart.updated", event.EventType)
	assert.Equal(t, "cart-abc", event.AggregateID)
	assert.Equal(t, "cart", event.AggregateType)
	assert.Equal(t, "storefront", event.Source)
	assert.Equal(t, 1, event.Version)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, 2*time.Second)
	assert.NotNil(t, event.Metadata)

	var roundTripped cartPayload
	require.NoError(t, json.Unmarshal(event.Data, &roundTripped))
	assert.Equal(t, data, roundTripped)
}

func TestNewEvent_InvalidData(t *testing.T) {
	// Channels are not serializable to JSON.
	_, err := NewEvent("test.event", "agg-1", "test", "test-service", make(chan int))
	require.Error(t, err)
}

func TestEvent_Marshal_Unmarshal(t *testing.T) {
	original, err := NewEvent("storefront.cart.cleared", "cart-xyz", "cart", "storefront", map[string]string{"reason": "checkout"})
	require.NoError(t, err)
	original.CorrelationID = "corr-abc"
	original.Metadata["session"] = "sess-1"

	raw, err := original.Marshal()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)

	restored, err := UnmarshalEvent(raw)
	require.NoError(t, err)

	assert.Equal(t, original.EventID, restored.EventID)
	assert.Equal(t, original.EventType, restored.EventType)
	assert.Equal(t, original.AggregateID, restored.AggregateID)
	assert.Equal(t, original.AggregateType, restored.AggregateType)
	assert.Equal(t, original.Version, restored.Version)
	assert.Equal(t, original.Source, restored.Source)
	assert.Equal(t, original.CorrelationID, restored.CorrelationID)
	assert.Equal(t, original.Metadata, restored.Metadata)
	assert.JSONEq(t, string(original.Data), string(restored.Data))
	assert.WithinDuration(t, original.Timestamp, restored.Timestamp, time.Millisecond)
}

func TestUnmarshalEvent_Invalid(t *testing.T) {
	_, err := UnmarshalEvent([]byte("{not json"))
	require.Error(t, err)
}

func TestEvent_WithCorrelationID(t *testing.T) {
	event, err := NewEvent("test.event", "agg-1", "test", "svc", nil)
	require.NoError(t, err)

	result := event.WithCorrelationID("corr-xyz")
	assert.Same(t, event, result, "WithCorrelationID should return the same event for chaining")
	assert.Equal(t, "corr-xyz", event.CorrelationID)
}

func TestEvent_UnmarshalData(t *testing.T) {
	type cartPayload struct {
		ItemCount int     `json:"item_count"`
		Total     float64 `json:"total"`
	}

	payload := cartPayload{ItemCount: 2, Total: 59.98}
	event, err := NewEvent("storefront.cart.updated", "cart-1", "cart", "storefront", payload)
	require.NoError(t, err)

	var target cartPayload
	require.NoError(t, event.UnmarshalData(&target))
	assert.Equal(t, payload, target)
}

func TestEvent_UnmarshalData_Invalid(t *testing.T) {
	event := &Event{Data: json.RawMessage(`"a string"`)}

	var target struct{ ItemCount int }
	require.Error(t, event.UnmarshalData(&target))
}
