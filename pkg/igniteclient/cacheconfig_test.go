package igniteclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmos91/ignitego/internal/protocol/binary"
)

// TestDecodeCacheConfigurationOrder builds a GetConfiguration response body
// by hand, in the exact declaration order decodeCacheConfiguration expects,
// and checks every field lands correctly.
func TestDecodeCacheConfigurationOrder(t *testing.T) {
	w := binary.NewWriter()
	w.WriteI32LE(int32(AtomicityAtomic))
	w.WriteI32LE(1) // backups
	w.WriteI32LE(int32(CacheModePartitioned))
	w.WriteU8(1) // copy on read
	require.NoError(t, binary.EncodeOptional(w, nil))
	w.WriteU8(0)                                       // eager ttl
	w.WriteU8(1)                                        // statistics enabled
	require.NoError(t, binary.Encode(w, binary.String("group-a")))
	w.WriteI64LE(5000) // default lock timeout
	w.WriteI32LE(2)    // max concurrent async ops
	w.WriteI32LE(1024) // max query iterators
	require.NoError(t, binary.Encode(w, binary.String("my-cache")))
	w.WriteU8(1) // on heap cache enabled
	w.WriteI32LE(int32(PartitionLossReadWriteSafe))
	w.WriteI32LE(1000) // query detail metrics size
	w.WriteI32LE(4)    // query parallelism
	w.WriteU8(1)       // read from backup
	w.WriteI32LE(512)  // rebalance batch size
	w.WriteI64LE(3)    // rebalance batch prefetch count
	w.WriteI64LE(0)    // rebalance delay
	w.WriteI32LE(int32(RebalanceAsync))
	w.WriteI32LE(0) // rebalance order
	w.WriteI64LE(0) // rebalance throttle
	w.WriteI64LE(10000)
	w.WriteU8(0)        // sql escape all
	w.WriteI32LE(100)   // sql index inline max size
	require.NoError(t, binary.EncodeOptional(w, binary.String("PUBLIC")))
	w.WriteI32LE(int32(WriteSyncFullAsync))
	w.WriteI32LE(0) // no cache key configurations
	w.WriteI32LE(0) // no query entities

	r := binary.NewReader(w.Bytes())
	cfg, err := decodeCacheConfiguration(r)
	require.NoError(t, err)

	assert.Equal(t, AtomicityAtomic, cfg.AtomicityMode)
	assert.EqualValues(t, 1, cfg.Backups)
	assert.Equal(t, CacheModePartitioned, cfg.Mode)
	assert.True(t, cfg.CopyOnRead)
	assert.False(t, cfg.DataRegionNameSet)
	assert.False(t, cfg.EagerTTL)
	assert.True(t, cfg.StatisticsEnabled)
	assert.Equal(t, "group-a", cfg.GroupName)
	assert.True(t, cfg.GroupNameSet)
	assert.EqualValues(t, 5000, cfg.DefaultLockTimeout)
	assert.Equal(t, "my-cache", cfg.Name)
	assert.Equal(t, PartitionLossReadWriteSafe, cfg.PartitionLossPolicy)
	assert.Equal(t, RebalanceAsync, cfg.RebalanceMode)
	assert.True(t, cfg.SQLSchemaSet)
	assert.Equal(t, "PUBLIC", cfg.SQLSchema)
	assert.Equal(t, WriteSyncFullAsync, cfg.WriteSynchronizationMode)
	assert.Empty(t, cfg.CacheKeyConfigurations)
	assert.Empty(t, cfg.QueryEntities)
}

// TestEncodeCacheConfigurationPropertyFraming checks the property-coded
// write format: length prefix matches the buffered property bytes, the
// declared count is 30, and every (code, value) pair round-trips when read
// back property-by-property.
func TestEncodeCacheConfigurationPropertyFraming(t *testing.T) {
	cfg := CacheConfiguration{
		Name:                     "my-cache",
		AtomicityMode:            AtomicityAtomic,
		Backups:                  2,
		Mode:                     CacheModeReplicated,
		WriteSynchronizationMode: WriteSyncFull,
	}

	w := binary.NewWriter()
	require.NoError(t, cfg.encode(w))

	r := binary.NewReader(w.Bytes())
	length, err := r.ReadI32LE()
	require.NoError(t, err)
	count, err := r.ReadI16LE()
	require.NoError(t, err)
	assert.EqualValues(t, cachePropertyCount, count)

	body, err := r.ReadN(int(length))
	require.NoError(t, err)
	assert.Equal(t, int(length), len(body))

	props := readPropsByCode(t, body)
	assert.Equal(t, "my-cache", props[propName])
	assert.EqualValues(t, int32(AtomicityAtomic), props[propAtomicityMode])
	assert.EqualValues(t, int32(2), props[propBackups])
	assert.EqualValues(t, int32(CacheModeReplicated), props[propMode])
}

// readPropsByCode decodes a property-coded buffer into a map keyed by the
// i16 code, decoding each value according to its property code — sufficient
// for the properties this test inspects (i32 and String).
func readPropsByCode(t *testing.T, body []byte) map[int16]any {
	t.Helper()
	r := binary.NewReader(body)
	props := make(map[int16]any)

	for {
		code, err := r.ReadI16LE()
		if err != nil {
			break
		}
		switch {
		case code == propName:
			v, err := binary.Decode(r)
			require.NoError(t, err)
			props[code] = string(v.(binary.String))
		case code == propSQLSchema || code == propGroupName || code == propDataRegionName:
			v, err := binary.DecodeOptional(r)
			require.NoError(t, err)
			if s, ok := v.(binary.String); ok {
				props[code] = string(s)
			}
		case code == propCopyOnRead || code == propEagerTTL || code == propStatisticsEnabled ||
			code == propReadFromBackup || code == propOnHeapCacheEnabled || code == propSQLEscapeAll:
			v, err := r.ReadU8()
			require.NoError(t, err)
			props[code] = v != 0
		case code == propDefaultLockTimeout || code == propRebalanceBatchPrefetchCount ||
			code == propRebalanceDelay || code == propRebalanceThrottle || code == propRebalanceTimeout:
			v, err := r.ReadI64LE()
			require.NoError(t, err)
			props[code] = v
		case code == propCacheKeyConfigurations:
			n, err := r.ReadI32LE()
			require.NoError(t, err)
			for i := int32(0); i < n; i++ {
				_, _ = binary.Decode(r)
				_, _ = binary.Decode(r)
			}
		case code == propQueryEntities:
			n, err := r.ReadI32LE()
			require.NoError(t, err)
			require.Zero(t, n)
		default:
			v, err := r.ReadI32LE()
			require.NoError(t, err)
			props[code] = v
		}
	}
	return props
}
