// Package wiretest is an in-process fake Ignite server used by
// pkg/igniteclient's tests, in the spirit of httptest.NewServer but for
// the raw framed TCP protocol instead of HTTP.
package wiretest

import (
	"errors"
	"net"
	"sync"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/protocol/wire"
)

var errCacheExists = errors.New("cache already exists")

// Wire opcodes this fake server understands, mirroring
// pkg/igniteclient/opcodes.go's unexported constants (the server speaks
// the protocol, not the Go package, so it carries its own copy).
const (
	opGet                = 1000
	opPut                = 1001
	opPutIfAbsent        = 1002
	opGetAll             = 1003
	opPutAll             = 1004
	opGetAndPut          = 1005
	opGetAndReplace      = 1006
	opGetAndRemove       = 1007
	opGetAndPutIfAbsent  = 1008
	opReplace            = 1009
	opReplaceIfEquals    = 1010
	opContainsKey        = 1011
	opContainsKeys       = 1012
	opClear              = 1013
	opClearKey           = 1014
	opClearKeys          = 1015
	opRemoveKey          = 1016
	opRemoveIfEquals     = 1017
	opRemoveKeys         = 1018
	opRemoveAll          = 1019
	opSize               = 1020
	opCacheNames         = 1050
	opCreateCache        = 1051
	opGetOrCreateCache   = 1052
	opDestroyCache       = 1056
)

// Server is a minimal in-memory Ignite server: it accepts one handshake
// then serves Get/Put-family cache operations against per-cache in-memory
// maps keyed by a canonical encoding of the key Value.
type Server struct {
	ln net.Listener

	mu     sync.Mutex
	caches map[int32]*fakeCache
}

type fakeCache struct {
	name    string
	entries map[string]binary.Value
}

// Start opens a loopback listener and begins serving in a background
// goroutine. Call Close to stop it.
func Start() (*Server, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s := &Server{ln: ln, caches: make(map[int32]*fakeCache)}
	go s.serve()
	return s, nil
}

// Addr returns the address clients should Dial.
func (s *Server) Addr() string { return s.ln.Addr().String() }

// Close stops accepting new connections.
func (s *Server) Close() error { return s.ln.Close() }

func (s *Server) serve() {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer conn.Close()

	if !s.handshake(conn) {
		return
	}

	for {
		req, err := wire.ReadFrame(conn)
		if err != nil {
			return
		}
		reply := s.dispatch(req)
		if err := wire.WriteFrame(conn, reply); err != nil {
			return
		}
	}
}

func (s *Server) handshake(conn net.Conn) bool {
	req, err := wire.ReadFrame(conn)
	if err != nil {
		return false
	}
	r := binary.NewReader(req)
	if _, err := r.ReadI8(); err != nil { // handshake opcode
		return false
	}
	for i := 0; i < 3; i++ {
		if _, err := r.ReadI16LE(); err != nil {
			return false
		}
	}
	if _, err := r.ReadI8(); err != nil { // client kind
		return false
	}
	// Username/password, if present, are ignored: this fake server accepts
	// every handshake.

	w := binary.NewWriter()
	w.WriteU8(1) // accept
	return wire.WriteFrame(conn, w.Bytes()) == nil
}

func (s *Server) cache(cacheID int32) *fakeCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.caches[cacheID]
	if !ok {
		c = &fakeCache{entries: make(map[string]binary.Value)}
		s.caches[cacheID] = c
	}
	return c
}

// CreateCache pre-registers a named cache, for tests that exercise
// CacheNames without going through CreateCache's wire opcode.
func (s *Server) CreateCache(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.caches[cacheID(name)] = &fakeCache{name: name, entries: make(map[string]binary.Value)}
}

func cacheID(name string) int32 {
	var hash int64
	for _, r := range name {
		hash = 31*hash + int64(r)
	}
	return int32(hash)
}

func keyOf(v binary.Value) (string, error) {
	w := binary.NewWriter()
	if err := binary.Encode(w, v); err != nil {
		return "", err
	}
	return string(w.Bytes()), nil
}

// dispatch parses opcode+reqId+body, runs the matching handler, and
// returns the full reply payload (echoed reqId, status, body).
func (s *Server) dispatch(req []byte) []byte {
	r := binary.NewReader(req)
	opcode, _ := r.ReadI16LE()
	reqID, _ := r.ReadI64LE()

	w := binary.NewWriter()
	w.WriteI64LE(reqID)

	if err := s.handleOp(opcode, r, w); err != nil {
		out := binary.NewWriter()
		out.WriteI64LE(reqID)
		out.WriteI32LE(1)
		out.WriteRaw([]byte(err.Error()))
		return out.Bytes()
	}
	return w.Bytes()
}

func (s *Server) handleOp(opcode int16, r *binary.Reader, w *binary.Writer) error {
	isCacheOp := opcode >= opGet && opcode <= opSize
	var c *fakeCache
	if isCacheOp {
		id, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		if _, err := r.ReadU8(); err != nil { // flags
			return err
		}
		c = s.cache(id)
	}

	switch opcode {
	case opGet:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		return binary.EncodeOptional(w, c.entries[k])

	case opPut:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		val, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		s.mu.Lock()
		c.entries[k] = val
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opPutIfAbsent:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		val, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		_, present := c.entries[k]
		if !present {
			c.entries[k] = val
		}
		s.mu.Unlock()
		w.WriteI8(boolByte(!present))
		return nil

	case opGetAll:
		keys, err := decodeValueSlice(r)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		present := make([]binary.Value, 0, len(keys))
		vals := make([]binary.Value, 0, len(keys))
		s.mu.Lock()
		for _, key := range keys {
			k, err := keyOf(key)
			if err != nil {
				s.mu.Unlock()
				return err
			}
			if v, ok := c.entries[k]; ok {
				present = append(present, key)
				vals = append(vals, v)
			}
		}
		s.mu.Unlock()
		w.WriteI32LE(int32(len(present)))
		for i := range present {
			if err := binary.EncodeOptional(w, present[i]); err != nil {
				return err
			}
			if err := binary.EncodeOptional(w, vals[i]); err != nil {
				return err
			}
		}
		return nil

	case opPutAll:
		n, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		s.mu.Lock()
		for i := int32(0); i < n; i++ {
			key, err := binary.Decode(r)
			if err != nil {
				s.mu.Unlock()
				return err
			}
			val, err := binary.Decode(r)
			if err != nil {
				s.mu.Unlock()
				return err
			}
			k, err := keyOf(key)
			if err != nil {
				s.mu.Unlock()
				return err
			}
			c.entries[k] = val
		}
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opGetAndPut, opGetAndReplace, opGetAndPutIfAbsent:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		val, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		prev, present := c.entries[k]
		switch opcode {
		case opGetAndPut:
			c.entries[k] = val
		case opGetAndReplace:
			if present {
				c.entries[k] = val
			}
		case opGetAndPutIfAbsent:
			if !present {
				c.entries[k] = val
			}
		}
		s.mu.Unlock()
		return binary.EncodeOptional(w, prev)

	case opGetAndRemove:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		prev := c.entries[k]
		delete(c.entries, k)
		s.mu.Unlock()
		return binary.EncodeOptional(w, prev)

	case opReplace:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		val, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		_, present := c.entries[k]
		if present {
			c.entries[k] = val
		}
		s.mu.Unlock()
		w.WriteI8(boolByte(present))
		return nil

	case opReplaceIfEquals:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		oldVal, err := binary.Decode(r)
		if err != nil {
			return err
		}
		newVal, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		oldKey, err := keyOf(oldVal)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		cur, present := c.entries[k]
		matched := false
		if present {
			if curKey, err := keyOf(cur); err == nil && curKey == oldKey {
				matched = true
				c.entries[k] = newVal
			}
		}
		s.mu.Unlock()
		w.WriteI8(boolByte(matched))
		return nil

	case opContainsKey:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		_, present := c.entries[k]
		s.mu.Unlock()
		w.WriteI8(boolByte(present))
		return nil

	case opContainsKeys:
		keys, err := decodeValueSlice(r)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		all := true
		s.mu.Lock()
		for _, key := range keys {
			k, err := keyOf(key)
			if err != nil {
				s.mu.Unlock()
				return err
			}
			if _, ok := c.entries[k]; !ok {
				all = false
				break
			}
		}
		s.mu.Unlock()
		if len(keys) == 0 {
			all = false
		}
		w.WriteI8(boolByte(all))
		return nil

	case opClear:
		s.mu.Lock()
		c.entries = make(map[string]binary.Value)
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opClearKey:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		s.mu.Lock()
		delete(c.entries, k)
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opClearKeys:
		keys, err := decodeValueSlice(r)
		if err != nil {
			return err
		}
		s.mu.Lock()
		for _, key := range keys {
			if k, err := keyOf(key); err == nil {
				delete(c.entries, k)
			}
		}
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opRemoveKey:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		_, present := c.entries[k]
		delete(c.entries, k)
		s.mu.Unlock()
		w.WriteI8(boolByte(present))
		return nil

	case opRemoveIfEquals:
		key, err := binary.Decode(r)
		if err != nil {
			return err
		}
		oldVal, err := binary.Decode(r)
		if err != nil {
			return err
		}
		k, err := keyOf(key)
		if err != nil {
			return err
		}
		oldKey, err := keyOf(oldVal)
		if err != nil {
			return err
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		cur, present := c.entries[k]
		matched := false
		if present {
			if curKey, err := keyOf(cur); err == nil && curKey == oldKey {
				matched = true
				delete(c.entries, k)
			}
		}
		s.mu.Unlock()
		w.WriteI8(boolByte(matched))
		return nil

	case opRemoveKeys:
		keys, err := decodeValueSlice(r)
		if err != nil {
			return err
		}
		s.mu.Lock()
		for _, key := range keys {
			if k, err := keyOf(key); err == nil {
				delete(c.entries, k)
			}
		}
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opRemoveAll:
		s.mu.Lock()
		c.entries = make(map[string]binary.Value)
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	case opSize:
		n, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		for i := int32(0); i < n; i++ {
			if _, err := r.ReadU8(); err != nil {
				return err
			}
		}
		w.WriteI32LE(0)
		s.mu.Lock()
		size := int64(len(c.entries))
		s.mu.Unlock()
		w.WriteI64LE(size)
		return nil

	case opCacheNames:
		s.mu.Lock()
		names := make([]string, 0, len(s.caches))
		for _, fc := range s.caches {
			if fc.name != "" {
				names = append(names, fc.name)
			}
		}
		s.mu.Unlock()
		w.WriteI32LE(0)
		w.WriteI32LE(int32(len(names)))
		for _, n := range names {
			if err := binary.Encode(w, binary.String(n)); err != nil {
				return err
			}
		}
		return nil

	case opCreateCache, opGetOrCreateCache:
		v, err := binary.Decode(r)
		if err != nil {
			return err
		}
		name, ok := v.(binary.String)
		if !ok {
			return &wire.Error{Kind: wire.KindCodec, Message: "cache name did not decode as String"}
		}
		s.mu.Lock()
		_, exists := s.caches[cacheID(string(name))]
		s.mu.Unlock()
		if exists && opcode == opCreateCache {
			return errCacheExists
		}
		if !exists {
			s.CreateCache(string(name))
		}
		w.WriteI32LE(0)
		return nil

	case opDestroyCache:
		id, err := r.ReadI32LE()
		if err != nil {
			return err
		}
		s.mu.Lock()
		delete(s.caches, id)
		s.mu.Unlock()
		w.WriteI32LE(0)
		return nil

	default:
		w.WriteI32LE(0)
		return nil
	}
}

func decodeValueSlice(r *binary.Reader) ([]binary.Value, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	values := make([]binary.Value, n)
	for i := range values {
		v, err := binary.Decode(r)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

func boolByte(b bool) int8 {
	if b {
		return 1
	}
	return 0
}
