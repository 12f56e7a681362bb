package igniteclient

import (
	"context"
	"fmt"
	"sync"

	"github.com/marmos91/ignitego/internal/logger"
	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/protocol/wire"
)

// Client owns the single TCP connection to an Ignite server from
// successful handshake until Close, per §3.5's lifecycle rule. It is safe
// for concurrent use: every request serializes on the underlying
// connection's mutex, turning "callers must serialize access" (§5) from a
// documented precondition into an enforced one.
type Client struct {
	mu   sync.Mutex
	conn *wire.Conn
}

// Start opens a TCP connection to cfg's address, performs the protocol
// handshake, and returns a ready-to-use Client.
func Start(ctx context.Context, cfg Configuration) (*Client, error) {
	conn, err := wire.Dial(ctx, cfg.address)
	if err != nil {
		return nil, err
	}
	logger.Info("connecting to ignite server", "address", cfg.address)

	if err := conn.Handshake(cfg.username, cfg.password); err != nil {
		_ = conn.Close()
		logger.Warn("handshake rejected", "address", cfg.address, "error", err)
		return nil, err
	}
	logger.Info("handshake ok", "address", cfg.address)

	return &Client{conn: conn}, nil
}

// Close releases the underlying connection. Per §5's failure recovery
// rule, the Client must not be reused afterward.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	logger.Info("closing ignite connection")
	conn := c.conn
	c.conn = nil
	if conn == nil {
		return nil
	}
	return conn.Close()
}

// getConn hands a Cache its connection lazily rather than at construction
// time, so a Cache handle created before Close keeps working correctly if
// Close races with a concurrent operation (the operation sees either the
// live Conn or a closed one, never a half-updated Client).
func (c *Client) getConn() *wire.Conn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn
}

// Cache returns a handle to the named cache. It never contacts the
// server: constructing a handle is always cheap (§3.5).
func (c *Client) Cache(name string) Cache {
	return newCache(name, c.getConn)
}

// CacheNames lists every cache currently known to the server.
func (c *Client) CacheNames() ([]string, error) {
	return wire.Execute(c.getConn(), opCacheNames, nil,
		func(r *binary.Reader) ([]string, error) {
			n, err := r.ReadI32LE()
			if err != nil {
				return nil, err
			}
			if n < 0 {
				return nil, &wire.Error{Kind: wire.KindCodec, Message: fmt.Sprintf("negative cache count %d in response", n)}
			}
			names := make([]string, n)
			for i := range names {
				v, err := binary.Decode(r)
				if err != nil {
					return nil, err
				}
				s, ok := v.(binary.String)
				if !ok {
					return nil, &wire.Error{Kind: wire.KindCodec, Message: "cache name did not decode as String"}
				}
				names[i] = string(s)
			}
			return names, nil
		},
	)
}

// CreateCache creates a new cache with default configuration, failing if
// one with the same name already exists.
func (c *Client) CreateCache(name string) error {
	return c.createCache(opCreateCache, name)
}

// GetOrCreateCache creates a cache with default configuration if it does
// not already exist, and is a no-op otherwise.
func (c *Client) GetOrCreateCache(name string) error {
	return c.createCache(opGetOrCreateCache, name)
}

func (c *Client) createCache(opcode int16, name string) error {
	_, err := wire.Execute[struct{}](c.getConn(), opcode,
		func(w *binary.Writer) error { return binary.Encode(w, binary.String(name)) },
		nil,
	)
	return err
}

// CreateCacheWithConfiguration creates a new cache from a full
// CacheConfiguration (cfg.Name supplies the cache's name), failing if a
// cache with the same name already exists.
func (c *Client) CreateCacheWithConfiguration(cfg CacheConfiguration) error {
	return c.createCacheWithConfiguration(opCreateWithConfig, cfg)
}

// GetOrCreateCacheWithConfiguration creates a cache from cfg if it does
// not already exist, and is a no-op otherwise.
func (c *Client) GetOrCreateCacheWithConfiguration(cfg CacheConfiguration) error {
	return c.createCacheWithConfiguration(opGetOrCreateWithCfg, cfg)
}

func (c *Client) createCacheWithConfiguration(opcode int16, cfg CacheConfiguration) error {
	_, err := wire.Execute[struct{}](c.getConn(), opcode,
		func(w *binary.Writer) error { return cfg.encode(w) },
		nil,
	)
	return err
}

// DestroyCache removes a cache and its data. Unlike other cache opcodes,
// DestroyCache's request body is the bare cache id with no trailing flags
// byte (§4.6).
func (c *Client) DestroyCache(name string) error {
	_, err := wire.Execute[struct{}](c.getConn(), opDestroyCache,
		func(w *binary.Writer) error {
			w.WriteI32LE(cacheID(name))
			return nil
		},
		nil,
	)
	return err
}
