package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	t.Run("bare array", func(t *testing.T) {
		result := List(json.RawMessage(`[{"id":1},{"id":2}]`))

		require.Len(t, result.Data, 2)
		assert.Equal(t, 2, result.Count)
		assert.JSONEq(t, `{"id":1}`, string(result.Data[0]))
		assert.JSONEq(t, `{"id":2}`, string(result.Data[1]))
	})

	t.Run("results envelope with count", func(t *testing.T) {
		result := List(json.RawMessage(`{"results":[{"id":1}],"count":37}`))

		require.Len(t, result.Data, 1)
		assert.Equal(t, 37, result.Count)
	})

	t.Run("results envelope without count falls back to length", func(t *testing.T) {
		result := List(json.RawMessage(`{"results":[{"id":1},{"id":2},{"id":3}]}`))

		assert.Len(t, result.Data, 3)
		assert.Equal(t, 3, result.Count)
	})

	t.Run("projects envelope", func(t *testing.T) {
		result := List(json.RawMessage(`{"projects":[{"id":9}],"count":12}`))

		require.Len(t, result.Data, 1)
		assert.Equal(t, 12, result.Count)
	})

	t.Run("data envelope", func(t *testing.T) {
		result := List(json.RawMessage(`{"data":[{"id":4},{"id":5}]}`))

		assert.Len(t, result.Data, 2)
		assert.Equal(t, 2, result.Count)
	})

	t.Run("unknown key holding the only array", func(t *testing.T) {
		result := List(json.RawMessage(`{"team_members":[{"id":7}],"meta":{"page":1}}`))

		require.Len(t, result.Data, 1)
		assert.JSONEq(t, `{"id":7}`, string(result.Data[0]))
	})

	t.Run("results wins over other array keys", func(t *testing.T) {
		result := List(json.RawMessage(`{"data":[{"id":1},{"id":2}],"results":[{"id":3}]}`))

		require.Len(t, result.Data, 1)
		assert.JSONEq(t, `{"id":3}`, string(result.Data[0]))
	})

	t.Run("single record becomes one-element result", func(t *testing.T) {
		result := List(json.RawMessage(`{"id":42,"title":"Branding"}`))

		require.Len(t, result.Data, 1)
		assert.Equal(t, 1, result.Count)
		assert.JSONEq(t, `{"id":42,"title":"Branding"}`, string(result.Data[0]))
	})

	t.Run("empty object degrades to empty result", func(t *testing.T) {
		result := List(json.RawMessage(`{}`))

		assert.NotNil(t, result.Data)
		assert.Empty(t, result.Data)
		assert.Equal(t, 0, result.Count)
	})

	t.Run("null degrades to empty result", func(t *testing.T) {
		result := List(json.RawMessage(`null`))

		assert.Empty(t, result.Data)
		assert.Equal(t, 0, result.Count)
	})

	t.Run("scalar degrades to empty result", func(t *testing.T) {
		result := List(json.RawMessage(`"oops"`))

		assert.Empty(t, result.Data)
		assert.Equal(t, 0, result.Count)
	})

	t.Run("malformed JSON degrades to empty result", func(t *testing.T) {
		result := List(json.RawMessage(`{"results": [`))

		assert.Empty(t, result.Data)
		assert.Equal(t, 0, result.Count)
	})

	t.Run("non-array results falls through", func(t *testing.T) {
		result := List(json.RawMessage(`{"results":"nope","items":[{"id":1}]}`))

		require.Len(t, result.Data, 1)
		assert.JSONEq(t, `{"id":1}`, string(result.Data[0]))
	})

	t.Run("order is preserved", func(t *testing.T) {
		result := List(json.RawMessage(`[{"id":3},{"id":1},{"id":2}]`))

		require.Len(t, result.Data, 3)
		assert.JSONEq(t, `{"id":3}`, string(result.Data[0]))
		assert.JSONEq(t, `{"id":1}`, string(result.Data[1]))
		assert.JSONEq(t, `{"id":2}`, string(result.Data[2]))
	})
}

func TestListAs(t *testing.T) {
	type record struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}

	t.Run("decodes typed items", func(t *testing.T) {
		items, count, err := ListAs[record](json.RawMessage(`{"results":[{"id":1,"title":"a"},{"id":2,"title":"b"}],"count":9}`))

		require.NoError(t, err)
		assert.Equal(t, 9, count)
		assert.Equal(t, []record{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}, items)
	})

	t.Run("shape mismatch still degrades to empty", func(t *testing.T) {
		items, count, err := ListAs[record](json.RawMessage(`{}`))

		require.NoError(t, err)
		assert.Empty(t, items)
		assert.Equal(t, 0, count)
	})

	t.Run("item decode failure is an error", func(t *testing.T) {
		_, _, err := ListAs[record](json.RawMessage(`[{"id":"not-a-number"}]`))

		assert.Error(t, err)
	})
}
