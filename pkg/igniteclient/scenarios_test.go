package igniteclient

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/wiretest"
)

func startTestClient(t *testing.T) (*Client, *wiretest.Server) {
	t.Helper()
	srv, err := wiretest.Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = srv.Close() })

	client, err := Start(context.Background(), NewConfiguration().WithAddress(srv.Addr()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return client, srv
}

func TestScenarioScalarPutGet(t *testing.T) {
	client, _ := startTestClient(t)
	c := client.Cache("scalars")

	v, err := c.Get(binary.I32(42))
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, c.Put(binary.I32(42), binary.I32(1)))

	v, err = c.Get(binary.I32(42))
	require.NoError(t, err)
	assert.Equal(t, binary.I32(1), v)

	v, err = c.Get(binary.I32(43))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScenarioBulkRoundTrip(t *testing.T) {
	client, _ := startTestClient(t)
	c := client.Cache("bulk")

	require.NoError(t, c.PutAll([]Entry{
		{Key: binary.I32(1), Value: binary.I32(1)},
		{Key: binary.I32(2), Value: binary.I32(2)},
		{Key: binary.I32(3), Value: binary.I32(3)},
	}))

	entries, err := c.GetAll([]binary.Value{binary.I32(1), binary.I32(2), binary.I32(3)})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for _, e := range entries {
		assert.Equal(t, e.Key, e.Value)
	}
}

func TestScenarioConditionalReplace(t *testing.T) {
	client, _ := startTestClient(t)
	c := client.Cache("conditional")

	require.NoError(t, c.Put(binary.I32(42), binary.I32(1)))

	ok, err := c.ReplaceIfEquals(binary.I32(42), binary.I32(0), binary.I32(3))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.ReplaceIfEquals(binary.I32(42), binary.I32(1), binary.I32(2))
	require.NoError(t, err)
	assert.True(t, ok)

	v, err := c.Get(binary.I32(42))
	require.NoError(t, err)
	assert.Equal(t, binary.I32(2), v)
}

func TestScenarioStringKeying(t *testing.T) {
	client, _ := startTestClient(t)
	c := client.Cache("strings")

	require.NoError(t, c.Put(binary.String("42"), binary.String("v")))

	v, err := c.Get(binary.String("42"))
	require.NoError(t, err)
	assert.Equal(t, binary.String("v"), v)

	v, err = c.Get(binary.String("43"))
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScenarioUUIDRoundTrip(t *testing.T) {
	client, _ := startTestClient(t)
	c := client.Cache("uuids")

	id1 := binary.UUID(uuid.MustParse("00000000-0000-0000-0000-0000000004d2")) // 1234
	id2 := binary.UUID(uuid.MustParse("00000000-0000-0000-0000-0000000010e1")) // 4321

	require.NoError(t, c.Put(id1, binary.I32(7)))

	v, err := c.Get(id1)
	require.NoError(t, err)
	assert.Equal(t, binary.I32(7), v)

	v, err = c.Get(id2)
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestScenarioCacheLifecycle(t *testing.T) {
	client, _ := startTestClient(t)

	before, err := client.CacheNames()
	require.NoError(t, err)

	require.NoError(t, client.CreateCache("k"))

	after, err := client.CacheNames()
	require.NoError(t, err)
	assert.ElementsMatch(t, append(append([]string{}, before...), "k"), after)

	err = client.CreateCache("k")
	require.Error(t, err)

	require.NoError(t, client.DestroyCache("k"))

	restored, err := client.CacheNames()
	require.NoError(t, err)
	assert.ElementsMatch(t, before, restored)
}
