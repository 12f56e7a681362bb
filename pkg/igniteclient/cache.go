package igniteclient

import (
	"fmt"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/protocol/wire"
)

// Entry is a key/value pair as exchanged in bulk cache operations.
type Entry struct {
	Key   binary.Value
	Value binary.Value
}

// Cache is a cheap, independent handle bound to a cache name; constructing
// one never contacts the server (per §3.5's lifecycle rule). All methods
// block for the duration of one request/response round trip and serialize
// on the owning Client's connection.
type Cache struct {
	name string
	id   int32
	conn func() *wire.Conn
}

func newCache(name string, conn func() *wire.Conn) Cache {
	return Cache{name: name, id: cacheID(name), conn: conn}
}

// Name returns the cache's configured name.
func (c Cache) Name() string { return c.name }

// cacheID derives the wire-level cache identifier from its name via the
// hash recurrence h₀=0; hᵢ₊₁=31·hᵢ+cᵢ over Unicode scalar values, truncated
// to 32 bits. This MUST match the server's hash byte-for-byte — see §3.2.
func cacheID(name string) int32 {
	var hash int64
	for _, r := range name {
		hash = 31*hash + int64(r)
	}
	return int32(hash)
}

// Get fetches the value for key, or nil if absent.
func (c Cache) Get(key binary.Value) (binary.Value, error) {
	return wire.CacheExecute(c.conn(), opGet, c.id,
		func(w *binary.Writer) error { return binary.Encode(w, key) },
		func(r *binary.Reader) (binary.Value, error) { return binary.DecodeOptional(r) },
	)
}

// Put unconditionally stores value under key.
func (c Cache) Put(key, value binary.Value) error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opPut, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			return binary.Encode(w, value)
		},
		nil,
	)
	return err
}

// PutIfAbsent stores value under key only if key is not already present,
// reporting whether the store happened.
func (c Cache) PutIfAbsent(key, value binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opPutIfAbsent, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			return binary.Encode(w, value)
		},
		readBool,
	)
}

// GetAll fetches every key in keys, returning one Entry per key found. A
// key that the server unexpectedly reports as null is dropped silently,
// per §4.6's key policy — the server never does this in practice. Absent
// values decode as a nil Entry.Value.
func (c Cache) GetAll(keys []binary.Value) ([]Entry, error) {
	return wire.CacheExecute(c.conn(), opGetAll, c.id,
		func(w *binary.Writer) error { return writeValueSlice(w, keys) },
		func(r *binary.Reader) ([]Entry, error) {
			n, err := readCount(r)
			if err != nil {
				return nil, err
			}
			entries := make([]Entry, 0, n)
			for i := 0; i < n; i++ {
				key, err := binary.DecodeOptional(r)
				if err != nil {
					return nil, err
				}
				val, err := binary.DecodeOptional(r)
				if err != nil {
					return nil, err
				}
				if key == nil {
					continue
				}
				entries = append(entries, Entry{Key: key, Value: val})
			}
			return entries, nil
		},
	)
}

// PutAll stores every entry, key first then value per pair.
func (c Cache) PutAll(entries []Entry) error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opPutAll, c.id,
		func(w *binary.Writer) error {
			w.WriteI32LE(int32(len(entries)))
			for _, e := range entries {
				if err := binary.Encode(w, e.Key); err != nil {
					return err
				}
				if err := binary.Encode(w, e.Value); err != nil {
					return err
				}
			}
			return nil
		},
		nil,
	)
	return err
}

// GetAndPut stores value under key and returns the previous value, if any.
func (c Cache) GetAndPut(key, value binary.Value) (binary.Value, error) {
	return c.getAndMutate(opGetAndPut, key, &value)
}

// GetAndReplace stores value under key only if key was already present,
// and returns the previous value.
func (c Cache) GetAndReplace(key, value binary.Value) (binary.Value, error) {
	return c.getAndMutate(opGetAndReplace, key, &value)
}

// GetAndRemove removes key and returns its prior value, if any.
func (c Cache) GetAndRemove(key binary.Value) (binary.Value, error) {
	return c.getAndMutate(opGetAndRemove, key, nil)
}

// GetAndPutIfAbsent stores value under key only if key was absent, and
// returns the previous value (nil when the store happened).
func (c Cache) GetAndPutIfAbsent(key, value binary.Value) (binary.Value, error) {
	return c.getAndMutate(opGetAndPutIfAbsent, key, &value)
}

func (c Cache) getAndMutate(opcode int16, key binary.Value, value *binary.Value) (binary.Value, error) {
	return wire.CacheExecute(c.conn(), opcode, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			if value != nil {
				return binary.Encode(w, *value)
			}
			return nil
		},
		func(r *binary.Reader) (binary.Value, error) { return binary.DecodeOptional(r) },
	)
}

// Replace stores newValue under key only if key is already present,
// reporting whether the replace happened.
func (c Cache) Replace(key, newValue binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opReplace, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			return binary.Encode(w, newValue)
		},
		readBool,
	)
}

// ReplaceIfEquals stores newValue under key only if key's current value
// equals oldValue, reporting whether the replace happened.
func (c Cache) ReplaceIfEquals(key, oldValue, newValue binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opReplaceIfEquals, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			if err := binary.Encode(w, oldValue); err != nil {
				return err
			}
			return binary.Encode(w, newValue)
		},
		readBool,
	)
}

// ContainsKey reports whether key is present.
func (c Cache) ContainsKey(key binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opContainsKey, c.id,
		func(w *binary.Writer) error { return binary.Encode(w, key) },
		readBool,
	)
}

// ContainsKeys reports whether every key in keys is present. Per §4.6's
// open question, calling this with an empty slice is a valid request whose
// result is whatever the server returns for zero keys.
func (c Cache) ContainsKeys(keys []binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opContainsKeys, c.id,
		func(w *binary.Writer) error { return writeValueSlice(w, keys) },
		readBool,
	)
}

// Clear removes every entry in the cache.
func (c Cache) Clear() error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opClear, c.id, nil, nil)
	return err
}

// ClearKey removes key, if present.
func (c Cache) ClearKey(key binary.Value) error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opClearKey, c.id,
		func(w *binary.Writer) error { return binary.Encode(w, key) },
		nil,
	)
	return err
}

// ClearKeys removes every key in keys that is present.
func (c Cache) ClearKeys(keys []binary.Value) error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opClearKeys, c.id,
		func(w *binary.Writer) error { return writeValueSlice(w, keys) },
		nil,
	)
	return err
}

// RemoveKey removes key, reporting whether it was present.
func (c Cache) RemoveKey(key binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opRemoveKey, c.id,
		func(w *binary.Writer) error { return binary.Encode(w, key) },
		readBool,
	)
}

// RemoveIfEquals removes key only if its current value equals oldValue,
// reporting whether the remove happened.
func (c Cache) RemoveIfEquals(key, oldValue binary.Value) (bool, error) {
	return wire.CacheExecute(c.conn(), opRemoveIfEquals, c.id,
		func(w *binary.Writer) error {
			if err := binary.Encode(w, key); err != nil {
				return err
			}
			return binary.Encode(w, oldValue)
		},
		readBool,
	)
}

// RemoveKeys removes every key in keys.
func (c Cache) RemoveKeys(keys []binary.Value) error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opRemoveKeys, c.id,
		func(w *binary.Writer) error { return writeValueSlice(w, keys) },
		nil,
	)
	return err
}

// RemoveAll removes every entry in the cache (equivalent to Clear, but
// backed by its own opcode per the protocol).
func (c Cache) RemoveAll() error {
	_, err := wire.CacheExecute[struct{}](c.conn(), opRemoveAll, c.id, nil, nil)
	return err
}

// Size returns the number of entries visible under the given peek modes.
// No modes is equivalent to PeekAll.
func (c Cache) Size(modes ...PeekMode) (int64, error) {
	if len(modes) == 0 {
		modes = []PeekMode{PeekAll}
	}
	return wire.CacheExecute(c.conn(), opSize, c.id,
		func(w *binary.Writer) error {
			w.WriteI32LE(int32(len(modes)))
			for _, m := range modes {
				w.WriteU8(uint8(m))
			}
			return nil
		},
		func(r *binary.Reader) (int64, error) { return r.ReadI64LE() },
	)
}

func readBool(r *binary.Reader) (bool, error) {
	v, err := r.ReadI8()
	return v != 0, err
}

func readCount(r *binary.Reader) (int, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("ignite: negative element count %d in response", n)
	}
	return int(n), nil
}

func writeValueSlice(w *binary.Writer, values []binary.Value) error {
	w.WriteI32LE(int32(len(values)))
	for _, v := range values {
		if err := binary.Encode(w, v); err != nil {
			return err
		}
	}
	return nil
}
