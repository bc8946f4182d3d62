package conv

import (
	"encoding/json"
	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/mapology/spi"
	"testing"
	"time"
)

func TestJSONConverter(t *testing.T) {
	type Event struct {
		ID      int
		Name    string
		At      time.Time `mapping:"dateFormat=yyyy-MM-dd"`
		Labels  []string
		Payload map[string]interface{}
	}

	converter := newConverter(t)

	t.Run("object into struct", func(t *testing.T) {
		var event Event
		err := converter.Convert(json.RawMessage(`{"id": 7, "name": "deploy", "at": "2024-03-01", "labels": ["a", "b"], "payload": {"k": 1}}`), &event)
		require.NoError(t, err)
		assert.Equal(t, 7, event.ID, spew.Sdump(event))
		assert.Equal(t, "deploy", event.Name)
		assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), event.At)
		assert.Equal(t, []string{"a", "b"}, event.Labels)
		assert.Equal(t, map[string]interface{}{"k": 1.0}, event.Payload)
	})

	t.Run("object keeps key order", func(t *testing.T) {
		decoded, err := decodeJSON([]byte(`{"b": 1, "a": 2, "b": 3}`))
		require.NoError(t, err)
		assert.Equal(t, spi.Entries{{Key: "b", Value: 1.0}, {Key: "a", Value: 2.0}, {Key: "b", Value: 3.0}}, decoded)

		var result map[string]int
		err = converter.Convert(json.RawMessage(`{"b": 1, "a": 2, "b": 3}`), &result)
		require.NoError(t, err)
		assert.Equal(t, map[string]int{"a": 2, "b": 3}, result)
	})

	t.Run("object into interface", func(t *testing.T) {
		var result interface{}
		require.NoError(t, converter.Convert(json.RawMessage(`{"a": 1, "b": [true]}`), &result))
		assert.Equal(t, map[string]interface{}{"a": 1.0, "b": []interface{}{true}}, result)
	})

	t.Run("array and scalar", func(t *testing.T) {
		var ints []int
		require.NoError(t, converter.Convert(json.RawMessage(`[1, "2", 3.0]`), &ints))
		assert.Equal(t, []int{1, 2, 3}, ints)

		var text string
		require.NoError(t, converter.Convert(json.RawMessage(`"abc"`), &text))
		assert.Equal(t, "abc", text)
	})

	t.Run("invalid", func(t *testing.T) {
		var event Event
		err := converter.Convert(json.RawMessage(`{"id": `), &event)
		assert.ErrorIs(t, err, spi.ErrUnsupportedSource)
		err = converter.Convert(json.RawMessage(` `), &event)
		assert.ErrorIs(t, err, spi.ErrUnsupportedSource)
	})
}
