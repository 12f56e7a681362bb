package wire

import (
	"context"
	"net"
	"sync"
	"time"

	"github.com/marmos91/ignitego/internal/logger"
	"github.com/marmos91/ignitego/internal/protocol/binary"
)

// ProtocolVersion is the three-part (major, minor, patch) version carried
// in the handshake request and, on rejection, the handshake reply.
type ProtocolVersion struct {
	Major int16
	Minor int16
	Patch int16
}

// ClientVersion is the protocol version this client speaks.
var ClientVersion = ProtocolVersion{Major: 1, Minor: 7, Patch: 0}

const (
	handshakeOpCode  = 1
	handshakeAccept  = 1
	clientKindThin   = 2
	dialTimeout      = 10 * time.Second
)

// Conn owns a single TCP connection to an Ignite server and the exclusive
// right to use it: per §5, exactly one operation may be in flight, so
// every public method takes mu for its whole duration rather than just
// around the syscalls.
type Conn struct {
	mu   sync.Mutex
	conn net.Conn
}

// Dial opens a TCP connection to addr. The connection is not usable for
// cache operations until Handshake succeeds.
func Dial(ctx context.Context, addr string) (*Conn, error) {
	dialer := net.Dialer{Timeout: dialTimeout}
	nc, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, networkErr("dial %s", err, addr)
	}
	logger.Debug("tcp connect", "addr", addr)
	return &Conn{conn: nc}, nil
}

// Close releases the underlying TCP connection. Per §5's failure recovery
// rule, a Conn that has returned a KindNetwork error must not be reused;
// callers should Close and re-Dial.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Handshake performs the protocol handshake described in §4.4/§6.1. It
// must succeed before any other request is sent on this connection.
func (c *Conn) Handshake(username, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := binary.NewWriter()
	w.WriteI8(handshakeOpCode)
	w.WriteI16LE(ClientVersion.Major)
	w.WriteI16LE(ClientVersion.Minor)
	w.WriteI16LE(ClientVersion.Patch)
	w.WriteI8(clientKindThin)

	if username != "" {
		if err := binary.Encode(w, binary.String(username)); err != nil {
			return codecErr("encode handshake username: %v", err)
		}
		if password != "" {
			if err := binary.Encode(w, binary.String(password)); err != nil {
				return codecErr("encode handshake password: %v", err)
			}
		} else {
			if err := binary.EncodeOptional(w, nil); err != nil {
				return codecErr("encode handshake null password: %v", err)
			}
		}
	}

	if err := WriteFrame(c.conn, w.Bytes()); err != nil {
		return err
	}

	reply, err := ReadFrame(c.conn)
	if err != nil {
		return err
	}

	r := binary.NewReader(reply)
	success, err := r.ReadU8()
	if err != nil {
		return codecErr("read handshake result byte: %v", err)
	}
	if success == handshakeAccept {
		return nil
	}

	major, err := r.ReadI16LE()
	if err != nil {
		return codecErr("read handshake server major version: %v", err)
	}
	minor, err := r.ReadI16LE()
	if err != nil {
		return codecErr("read handshake server minor version: %v", err)
	}
	patch, err := r.ReadI16LE()
	if err != nil {
		return codecErr("read handshake server patch version: %v", err)
	}
	serverVersion := ProtocolVersion{Major: major, Minor: minor, Patch: patch}

	message := "handshake rejected"
	if msg, err := binary.DecodeOptional(r); err == nil {
		if s, ok := msg.(binary.String); ok {
			message = string(s)
		}
	}

	return handshakeErr(serverVersion, ClientVersion, message)
}

// Send writes one framed payload and returns the framed reply payload,
// holding the connection's mutex for the whole round trip so no other
// goroutine's request can interleave on the wire.
func (c *Conn) Send(payload []byte) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return nil, networkErr("connection is closed", nil)
	}
	if err := WriteFrame(c.conn, payload); err != nil {
		return nil, err
	}
	reply, err := ReadFrame(c.conn)
	if err != nil {
		return nil, err
	}
	logger.Debug("round trip", "sent_bytes", len(payload), "received_bytes", len(reply))
	return reply, nil
}
