package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryKV_RoundTrip(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	ctx := testContext()

	_, err := kv.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.Set(ctx, "acct/1/profile", []byte(`{"x":1}`)))

	got, err := kv.Get(ctx, "acct/1/profile")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"x":1}`), got)

	require.NoError(t, kv.Delete(ctx, "acct/1/profile"))
	_, err = kv.Get(ctx, "acct/1/profile")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryKV_Keys_SortedByPrefix(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	ctx := testContext()

	require.NoError(t, kv.Set(ctx, "acct/1/rewards", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "acct/1/campaigns", []byte(`[]`)))
	require.NoError(t, kv.Set(ctx, "acct/2/rewards", []byte(`[]`)))

	keys, err := kv.Keys(ctx, "acct/1")
	require.NoError(t, err)
	assert.Equal(t, []string{"acct/1/campaigns", "acct/1/rewards"}, keys)
}

func TestMemoryKV_Get_ReturnsCopy(t *testing.T) {
	kv := NewMemoryKeyValueStore()
	ctx := testContext()

	require.NoError(t, kv.Set(ctx, "k", []byte("abc")))

	got, err := kv.Get(ctx, "k")
	require.NoError(t, err)

	// мутация возвращённого среза не должна портить хранимое значение
	got[0] = 'X'

	again, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), again)
}
