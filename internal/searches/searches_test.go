package searches

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrconsole/internal/attendance"
	"hrconsole/internal/store"
)

func newTestManager(t *testing.T) (*Manager, store.KV) {
	t.Helper()
	kv := store.NewMemoryKV()
	m := NewManager(kv)

	base := time.Date(2025, time.July, 22, 9, 0, 0, 0, time.UTC)
	tick := 0
	m.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return m, kv
}

func TestSaveListGet(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Save(ctx, "late team", attendance.Query{
		SearchTerm: "khan",
		Filters:    attendance.Filters{Status: []attendance.Status{attendance.StatusPartial}},
	})
	require.NoError(t, err)
	_, err = m.Save(ctx, " overtime ", attendance.Query{
		Filters: attendance.Filters{Status: []attendance.Status{attendance.StatusOvertime}},
	})
	require.NoError(t, err)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "overtime", list[0].Name, "most recent first, name trimmed")
	assert.Equal(t, "late team", list[1].Name)

	got, err := m.Get(ctx, "late team")
	require.NoError(t, err)
	assert.Equal(t, "khan", got.Query().SearchTerm)
	assert.Equal(t, []attendance.Status{attendance.StatusPartial}, got.Query().Filters.Status)
}

func TestSaveReplacesByName(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	first, err := m.Save(ctx, "mine", attendance.Query{SearchTerm: "a"})
	require.NoError(t, err)
	second, err := m.Save(ctx, "mine", attendance.Query{SearchTerm: "b"})
	require.NoError(t, err)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].SearchTerm)
	assert.True(t, second.Timestamp.After(first.Timestamp))
}

func TestStoredShape(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t)

	_, err := m.Save(ctx, "range", attendance.Query{
		SearchTerm: "255",
		Filters:    attendance.Filters{DateFrom: "2025-07-01", DateTo: "2025-07-31"},
	})
	require.NoError(t, err)

	keys, err := kv.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{StorageKey}, keys)

	raw, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "range", decoded[0]["name"])
	assert.Equal(t, "255", decoded[0]["searchTerm"])
	assert.Contains(t, decoded[0], "filters")
	assert.Contains(t, decoded[0], "timestamp")
}

func TestValidation(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Save(ctx, "   ", attendance.Query{})
	assert.Error(t, err)

	_, err = m.Save(ctx, strings.Repeat("x", 65), attendance.Query{})
	assert.Error(t, err)

	_, err = m.Save(ctx, "bad date", attendance.Query{Filters: attendance.Filters{DateFrom: "22/07/2025"}})
	assert.Error(t, err)

	list, err := m.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	m, _ := newTestManager(t)

	_, err := m.Save(ctx, "a", attendance.Query{})
	require.NoError(t, err)
	_, err = m.Save(ctx, "b", attendance.Query{})
	require.NoError(t, err)

	require.NoError(t, m.Delete(ctx, "a"))
	assert.ErrorIs(t, m.Delete(ctx, "a"), ErrNotFound)

	_, err = m.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrNotFound)

	list, err := m.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "b", list[0].Name)
}

func TestCorruptStorage(t *testing.T) {
	ctx := context.Background()
	m, kv := newTestManager(t)
	require.NoError(t, kv.Set(ctx, StorageKey, []byte("{not json")))

	_, err := m.List(ctx)
	assert.Error(t, err)
}

func TestSQLiteBackend(t *testing.T) {
	ctx := context.Background()
	kv, err := store.NewSQLiteKV(":memory:")
	require.NoError(t, err)
	defer kv.Close()

	m := NewManager(kv)
	_, err = m.Save(ctx, "present", attendance.Query{Filters: attendance.Filters{Status: []attendance.Status{attendance.StatusPresent}}})
	require.NoError(t, err)

	got, err := m.Get(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, []attendance.Status{attendance.StatusPresent}, got.Filters.Status)
}
