package wire

import (
	"context"
	"net"
	"testing"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dialUnauthenticated(t *testing.T, handle func(net.Conn)) *Conn {
	t.Helper()
	addr := listenOnce(t, handle)
	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestExecuteSuccess(t *testing.T) {
	c := dialUnauthenticated(t, func(conn net.Conn) {
		req, err := ReadFrame(conn)
		require.NoError(t, err)
		r := binary.NewReader(req)
		op, _ := r.ReadI16LE()
		assert.EqualValues(t, 1000, op)
		reqID, _ := r.ReadI64LE()
		assert.EqualValues(t, 0, reqID)
		key, err := binary.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, binary.I32(42), key)

		w := binary.NewWriter()
		w.WriteI64LE(0)
		w.WriteI32LE(0)
		require.NoError(t, binary.EncodeOptional(w, binary.I32(99)))
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	got, err := Execute(c, 1000,
		func(w *binary.Writer) error { return binary.Encode(w, binary.I32(42)) },
		func(r *binary.Reader) (binary.Value, error) { return binary.DecodeOptional(r) },
	)
	require.NoError(t, err)
	assert.Equal(t, binary.I32(99), got)
}

func TestExecuteServerStatus(t *testing.T) {
	c := dialUnauthenticated(t, func(conn net.Conn) {
		_, err := ReadFrame(conn)
		require.NoError(t, err)

		w := binary.NewWriter()
		w.WriteI64LE(0)
		w.WriteI32LE(7)
		w.WriteRaw([]byte("cache does not exist"))
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	_, err := Execute(c, 1000,
		func(w *binary.Writer) error { return nil },
		func(r *binary.Reader) (binary.Value, error) { return binary.Decode(r) },
	)
	require.Error(t, err)
	werr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindServerStatus, werr.Kind)
	assert.EqualValues(t, 7, werr.Code)
	assert.Equal(t, "cache does not exist", werr.Message)
}

func TestExecuteRequestIDMismatch(t *testing.T) {
	c := dialUnauthenticated(t, func(conn net.Conn) {
		_, err := ReadFrame(conn)
		require.NoError(t, err)

		w := binary.NewWriter()
		w.WriteI64LE(1234)
		w.WriteI32LE(0)
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	_, err := Execute[binary.Value](c, 1000, func(w *binary.Writer) error { return nil }, nil)
	require.Error(t, err)
	werr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindCodec, werr.Kind)
}

func TestCacheExecutePrependsCacheIDAndFlags(t *testing.T) {
	c := dialUnauthenticated(t, func(conn net.Conn) {
		req, err := ReadFrame(conn)
		require.NoError(t, err)
		r := binary.NewReader(req)
		_, _ = r.ReadI16LE() // opcode
		_, _ = r.ReadI64LE() // request id
		cacheID, _ := r.ReadI32LE()
		flags, _ := r.ReadU8()
		assert.EqualValues(t, 1234, cacheID)
		assert.EqualValues(t, 0, flags)

		w := binary.NewWriter()
		w.WriteI64LE(0)
		w.WriteI32LE(0)
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	_, err := CacheExecute[struct{}](c, 1000, 1234, func(w *binary.Writer) error { return nil }, nil)
	require.NoError(t, err)
}
