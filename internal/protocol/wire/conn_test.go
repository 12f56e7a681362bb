package wire

import (
	"context"
	"net"
	"testing"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listenOnce starts a TCP listener that accepts exactly one connection and
// runs handle against it in a goroutine, returning the address to dial.
func listenOnce(t *testing.T, handle func(net.Conn)) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		handle(conn)
	}()

	return ln.Addr().String()
}

func TestHandshakeSuccessNoCredentials(t *testing.T) {
	addr := listenOnce(t, func(conn net.Conn) {
		req, err := ReadFrame(conn)
		require.NoError(t, err)

		r := binary.NewReader(req)
		op, _ := r.ReadI8()
		assert.EqualValues(t, handshakeOpCode, op)
		major, _ := r.ReadI16LE()
		minor, _ := r.ReadI16LE()
		patch, _ := r.ReadI16LE()
		assert.Equal(t, ClientVersion, ProtocolVersion{Major: major, Minor: minor, Patch: patch})
		kind, _ := r.ReadI8()
		assert.EqualValues(t, clientKindThin, kind)

		w := binary.NewWriter()
		w.WriteU8(handshakeAccept)
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Handshake("", ""))
}

func TestHandshakeWithCredentials(t *testing.T) {
	addr := listenOnce(t, func(conn net.Conn) {
		req, err := ReadFrame(conn)
		require.NoError(t, err)

		r := binary.NewReader(req)
		_, _ = r.ReadI8() // op code
		_, _ = r.ReadI16LE()
		_, _ = r.ReadI16LE()
		_, _ = r.ReadI16LE()
		_, _ = r.ReadI8() // client kind

		username, err := binary.Decode(r)
		require.NoError(t, err)
		assert.Equal(t, binary.String("alice"), username)

		password, err := binary.DecodeOptional(r)
		require.NoError(t, err)
		assert.Nil(t, password)

		w := binary.NewWriter()
		w.WriteU8(handshakeAccept)
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Handshake("alice", ""))
}

func TestHandshakeRejected(t *testing.T) {
	addr := listenOnce(t, func(conn net.Conn) {
		_, err := ReadFrame(conn)
		require.NoError(t, err)

		w := binary.NewWriter()
		w.WriteU8(0)
		w.WriteI16LE(2)
		w.WriteI16LE(0)
		w.WriteI16LE(0)
		require.NoError(t, binary.Encode(w, binary.String("unsupported client version")))
		require.NoError(t, WriteFrame(conn, w.Bytes()))
	})

	c, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	defer c.Close()

	err = c.Handshake("", "")
	require.Error(t, err)

	werr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, KindHandshake, werr.Kind)
	assert.Equal(t, ProtocolVersion{Major: 2}, werr.ServerVersion)
	assert.Equal(t, "unsupported client version", werr.Message)
}
