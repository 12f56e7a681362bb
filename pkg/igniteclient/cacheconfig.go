package igniteclient

import (
	"fmt"

	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/protocol/wire"
)

// readElemCount reads a wire element count, rejecting negative values
// before a caller uses it as a make() length or capacity.
func readElemCount(r *binary.Reader) (int32, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("ignite: negative element count %d in response", n)
	}
	return n, nil
}

// GetConfiguration fetches the cache's current configuration. The leading
// length field in the response is documented as present but unused by
// this client (§4.6) — it exists so a reader that doesn't understand a
// newer server's extra trailing fields can still skip the whole body.
func (c Cache) GetConfiguration() (CacheConfiguration, error) {
	return wire.CacheExecute(c.conn(), opGetConfiguration, c.id, nil,
		func(r *binary.Reader) (CacheConfiguration, error) {
			if _, err := r.ReadI32LE(); err != nil {
				return CacheConfiguration{}, err
			}
			return decodeCacheConfiguration(r)
		},
	)
}

// Enumerations carried on the wire as 32-bit ordinals, per §3.3/§6.4.

type AtomicityMode int32

const (
	AtomicityTransactional         AtomicityMode = 0
	AtomicityAtomic                AtomicityMode = 1
	AtomicityTransactionalSnapshot AtomicityMode = 2
)

type CacheMode int32

const (
	CacheModeLocal       CacheMode = 0
	CacheModeReplicated  CacheMode = 1
	CacheModePartitioned CacheMode = 2
)

type PartitionLossPolicy int32

const (
	PartitionLossReadOnlySafe  PartitionLossPolicy = 0
	PartitionLossReadOnlyAll   PartitionLossPolicy = 1
	PartitionLossReadWriteSafe PartitionLossPolicy = 2
	PartitionLossReadWriteAll  PartitionLossPolicy = 3
	PartitionLossIgnore        PartitionLossPolicy = 4
)

type RebalanceMode int32

const (
	RebalanceSync  RebalanceMode = 0
	RebalanceAsync RebalanceMode = 1
	RebalanceNone  RebalanceMode = 2
)

type WriteSynchronizationMode int32

const (
	WriteSyncFull        WriteSynchronizationMode = 0
	WriteSyncFullAsync   WriteSynchronizationMode = 1
	WriteSyncPrimarySync WriteSynchronizationMode = 2
)

type IndexType int32

const (
	IndexSorted     IndexType = 0
	IndexFullText   IndexType = 1
	IndexGeospatial IndexType = 2
)

// CacheKeyConfiguration names the field used as the affinity key for a
// given key type.
type CacheKeyConfiguration struct {
	TypeName             string
	AffinityKeyFieldName string
}

// QueryField describes one SQL-queryable field of a query entity.
type QueryField struct {
	Name         string
	TypeName     string
	KeyField     bool
	NotNull      bool
	DefaultValue binary.Value // nullable
}

// QueryIndexField is one (name, isDescending) pair of a QueryIndex.
type QueryIndexField struct {
	Name         string
	IsDescending bool
}

// QueryIndex describes one SQL index over a query entity.
type QueryIndex struct {
	IndexName  string
	IndexType  IndexType
	InlineSize int32
	Fields     []QueryIndexField
}

// QueryEntityAlias maps a field name to its SQL column alias.
type QueryEntityAlias struct {
	FieldName string
	Alias     string
}

// QueryEntity describes one SQL-queryable view over a cache's entries.
type QueryEntity struct {
	KeyTypeName   string
	ValueTypeName string
	TableName     string
	KeyFieldName  string
	ValueFieldName string
	Fields        []QueryField
	Aliases       []QueryEntityAlias
	Indexes       []QueryIndex
}

// CacheConfiguration is the ~30-field cache configuration record
// described in §3.3. GetConfiguration decodes it field-by-field in
// declaration order per the derivation contract (§4.3); encoding it for a
// create-with-configuration request uses the property-coded format of
// §6.4 instead, since property codes are not declaration order and cannot
// be derived mechanically.
type CacheConfiguration struct {
	AtomicityMode                 AtomicityMode
	Backups                       int32
	Mode                          CacheMode
	CopyOnRead                    bool
	DataRegionName                string // nullable; absent unless DataRegionNameSet
	DataRegionNameSet             bool
	EagerTTL                      bool
	StatisticsEnabled             bool
	GroupName                     string
	GroupNameSet                  bool
	DefaultLockTimeout            int64
	MaxConcurrentAsyncOperations  int32
	MaxQueryIterators             int32
	Name                          string
	OnHeapCacheEnabled            bool
	PartitionLossPolicy           PartitionLossPolicy
	QueryDetailMetricsSize        int32
	QueryParallelism              int32
	ReadFromBackup                bool
	RebalanceBatchSize            int32
	RebalanceBatchPrefetchCount   int64
	RebalanceDelay                int64
	RebalanceMode                 RebalanceMode
	RebalanceOrder                int32
	RebalanceThrottle             int64
	RebalanceTimeout              int64
	SQLEscapeAll                  bool
	SQLIndexInlineMaxSize         int32
	SQLSchema                     string
	SQLSchemaSet                  bool
	WriteSynchronizationMode      WriteSynchronizationMode
	CacheKeyConfigurations        []CacheKeyConfiguration
	QueryEntities                 []QueryEntity
}

// Property codes, per §6.4's normative table.
const (
	propName                         = 0
	propMode                         = 1
	propAtomicityMode                = 2
	propBackups                      = 3
	propWriteSyncMode                = 4
	propCopyOnRead                   = 5
	propReadFromBackup               = 6
	propDataRegionName               = 100
	propOnHeapCacheEnabled           = 101
	propQueryEntities                = 200
	propQueryParallelism             = 201
	propQueryDetailMetricsSize       = 202
	propSQLSchema                    = 203
	propSQLIndexInlineMaxSize        = 204
	propSQLEscapeAll                 = 205
	propMaxQueryIterators            = 206
	propRebalanceMode                = 300
	propRebalanceDelay               = 301
	propRebalanceTimeout             = 302
	propRebalanceBatchSize           = 303
	propRebalanceBatchPrefetchCount  = 304
	propRebalanceOrder               = 305
	propRebalanceThrottle            = 306
	propGroupName                    = 400
	propCacheKeyConfigurations       = 401
	propDefaultLockTimeout           = 402
	propMaxConcurrentAsyncOperations = 403
	propPartitionLossPolicy          = 404
	propEagerTTL                     = 405
	propStatisticsEnabled            = 406

	cachePropertyCount = 30
)

// encode writes the property-coded create-with-configuration request body
// per §6.4: a correct length prefix followed by the property count and
// each (code, value) pair. The properties are buffered first so the
// length prefix reflects their actual size — the original prototype wrote
// properties straight to the outer buffer and then wrote the length of an
// always-empty scratch buffer, which this deliberately does not reproduce.
func (cfg CacheConfiguration) encode(w *binary.Writer) error {
	props := binary.NewWriter()

	writeI32Prop(props, propAtomicityMode, int32(cfg.AtomicityMode))
	writeI32Prop(props, propBackups, cfg.Backups)
	writeI32Prop(props, propMode, int32(cfg.Mode))
	writeBoolProp(props, propCopyOnRead, cfg.CopyOnRead)
	if err := writeNullableStringProp(props, propDataRegionName, cfg.DataRegionName, cfg.DataRegionNameSet); err != nil {
		return err
	}
	writeBoolProp(props, propEagerTTL, cfg.EagerTTL)
	writeBoolProp(props, propStatisticsEnabled, cfg.StatisticsEnabled)
	if err := writeNullableStringProp(props, propGroupName, cfg.GroupName, cfg.GroupNameSet); err != nil {
		return err
	}
	writeI64Prop(props, propDefaultLockTimeout, cfg.DefaultLockTimeout)
	writeI32Prop(props, propMaxConcurrentAsyncOperations, cfg.MaxConcurrentAsyncOperations)
	writeI32Prop(props, propMaxQueryIterators, cfg.MaxQueryIterators)
	if err := writeStringProp(props, propName, cfg.Name); err != nil {
		return err
	}
	writeBoolProp(props, propOnHeapCacheEnabled, cfg.OnHeapCacheEnabled)
	writeI32Prop(props, propPartitionLossPolicy, int32(cfg.PartitionLossPolicy))
	writeI32Prop(props, propQueryDetailMetricsSize, cfg.QueryDetailMetricsSize)
	writeI32Prop(props, propQueryParallelism, cfg.QueryParallelism)
	writeBoolProp(props, propReadFromBackup, cfg.ReadFromBackup)
	writeI32Prop(props, propRebalanceBatchSize, cfg.RebalanceBatchSize)
	writeI64Prop(props, propRebalanceBatchPrefetchCount, cfg.RebalanceBatchPrefetchCount)
	writeI64Prop(props, propRebalanceDelay, cfg.RebalanceDelay)
	writeI32Prop(props, propRebalanceMode, int32(cfg.RebalanceMode))
	writeI32Prop(props, propRebalanceOrder, cfg.RebalanceOrder)
	writeI64Prop(props, propRebalanceThrottle, cfg.RebalanceThrottle)
	writeI64Prop(props, propRebalanceTimeout, cfg.RebalanceTimeout)
	writeBoolProp(props, propSQLEscapeAll, cfg.SQLEscapeAll)
	writeI32Prop(props, propSQLIndexInlineMaxSize, cfg.SQLIndexInlineMaxSize)
	if err := writeNullableStringProp(props, propSQLSchema, cfg.SQLSchema, cfg.SQLSchemaSet); err != nil {
		return err
	}
	writeI32Prop(props, propWriteSyncMode, int32(cfg.WriteSynchronizationMode))
	if err := writeCacheKeyConfigurationsProp(props, propCacheKeyConfigurations, cfg.CacheKeyConfigurations); err != nil {
		return err
	}
	if err := writeQueryEntitiesProp(props, propQueryEntities, cfg.QueryEntities); err != nil {
		return err
	}

	w.WriteI32LE(int32(props.Len()))
	w.WriteI16LE(cachePropertyCount)
	w.WriteRaw(props.Bytes())
	return nil
}

func writePropCode(w *binary.Writer, code int16) { w.WriteI16LE(code) }

func writeI32Prop(w *binary.Writer, code int16, v int32) {
	writePropCode(w, code)
	w.WriteI32LE(v)
}

func writeI64Prop(w *binary.Writer, code int16, v int64) {
	writePropCode(w, code)
	w.WriteI64LE(v)
}

func writeBoolProp(w *binary.Writer, code int16, v bool) {
	writePropCode(w, code)
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}

func writeStringProp(w *binary.Writer, code int16, v string) error {
	writePropCode(w, code)
	return binary.Encode(w, binary.String(v))
}

func writeNullableStringProp(w *binary.Writer, code int16, v string, present bool) error {
	writePropCode(w, code)
	if !present {
		return binary.EncodeOptional(w, nil)
	}
	return binary.Encode(w, binary.String(v))
}

func writeCacheKeyConfigurationsProp(w *binary.Writer, code int16, cfgs []CacheKeyConfiguration) error {
	writePropCode(w, code)
	w.WriteI32LE(int32(len(cfgs)))
	for _, c := range cfgs {
		if err := binary.Encode(w, binary.String(c.TypeName)); err != nil {
			return err
		}
		if err := binary.Encode(w, binary.String(c.AffinityKeyFieldName)); err != nil {
			return err
		}
	}
	return nil
}

func writeQueryEntitiesProp(w *binary.Writer, code int16, entities []QueryEntity) error {
	writePropCode(w, code)
	w.WriteI32LE(int32(len(entities)))
	for _, e := range entities {
		if err := encodeQueryEntity(w, e); err != nil {
			return err
		}
	}
	return nil
}

func encodeQueryEntity(w *binary.Writer, e QueryEntity) error {
	for _, s := range []string{e.KeyTypeName, e.ValueTypeName, e.TableName, e.KeyFieldName, e.ValueFieldName} {
		if err := binary.Encode(w, binary.String(s)); err != nil {
			return err
		}
	}
	w.WriteI32LE(int32(len(e.Fields)))
	for _, f := range e.Fields {
		if err := binary.Encode(w, binary.String(f.Name)); err != nil {
			return err
		}
		if err := binary.Encode(w, binary.String(f.TypeName)); err != nil {
			return err
		}
		w.WriteU8(boolByte(f.KeyField))
		w.WriteU8(boolByte(f.NotNull))
		if err := binary.EncodeOptional(w, f.DefaultValue); err != nil {
			return err
		}
	}
	w.WriteI32LE(int32(len(e.Aliases)))
	for _, a := range e.Aliases {
		if err := binary.Encode(w, binary.String(a.FieldName)); err != nil {
			return err
		}
		if err := binary.Encode(w, binary.String(a.Alias)); err != nil {
			return err
		}
	}
	w.WriteI32LE(int32(len(e.Indexes)))
	for _, idx := range e.Indexes {
		if err := binary.Encode(w, binary.String(idx.IndexName)); err != nil {
			return err
		}
		w.WriteI8(int8(idx.IndexType))
		w.WriteI32LE(idx.InlineSize)
		w.WriteI32LE(int32(len(idx.Fields)))
		for _, fld := range idx.Fields {
			if err := binary.Encode(w, binary.String(fld.Name)); err != nil {
				return err
			}
			w.WriteU8(boolByte(fld.IsDescending))
		}
	}
	return nil
}

func boolByte(v bool) uint8 {
	if v {
		return 1
	}
	return 0
}

// decodeCacheConfiguration reads the GetConfiguration response body: the
// same ~30 fields in declaration order, as plain values with no property
// codes, per the derivation contract of §4.3.
func decodeCacheConfiguration(r *binary.Reader) (CacheConfiguration, error) {
	var cfg CacheConfiguration
	var err error

	readI32 := func() int32 { v, e := r.ReadI32LE(); if e != nil && err == nil { err = e }; return v }
	readI64 := func() int64 { v, e := r.ReadI64LE(); if e != nil && err == nil { err = e }; return v }
	readBool := func() bool { v, e := r.ReadU8(); if e != nil && err == nil { err = e }; return v != 0 }
	readStr := func() string {
		v, e := binary.Decode(r)
		if e != nil {
			if err == nil {
				err = e
			}
			return ""
		}
		s, _ := v.(binary.String)
		return string(s)
	}
	readNullableStr := func() (string, bool) {
		v, e := binary.DecodeOptional(r)
		if e != nil {
			if err == nil {
				err = e
			}
			return "", false
		}
		if v == nil {
			return "", false
		}
		s, _ := v.(binary.String)
		return string(s), true
	}

	cfg.AtomicityMode = AtomicityMode(readI32())
	cfg.Backups = readI32()
	cfg.Mode = CacheMode(readI32())
	cfg.CopyOnRead = readBool()
	cfg.DataRegionName, cfg.DataRegionNameSet = readNullableStr()
	cfg.EagerTTL = readBool()
	cfg.StatisticsEnabled = readBool()
	cfg.GroupName, cfg.GroupNameSet = readNullableStr()
	cfg.DefaultLockTimeout = readI64()
	cfg.MaxConcurrentAsyncOperations = readI32()
	cfg.MaxQueryIterators = readI32()
	cfg.Name = readStr()
	cfg.OnHeapCacheEnabled = readBool()
	cfg.PartitionLossPolicy = PartitionLossPolicy(readI32())
	cfg.QueryDetailMetricsSize = readI32()
	cfg.QueryParallelism = readI32()
	cfg.ReadFromBackup = readBool()
	cfg.RebalanceBatchSize = readI32()
	cfg.RebalanceBatchPrefetchCount = readI64()
	cfg.RebalanceDelay = readI64()
	cfg.RebalanceMode = RebalanceMode(readI32())
	cfg.RebalanceOrder = readI32()
	cfg.RebalanceThrottle = readI64()
	cfg.RebalanceTimeout = readI64()
	cfg.SQLEscapeAll = readBool()
	cfg.SQLIndexInlineMaxSize = readI32()
	cfg.SQLSchema, cfg.SQLSchemaSet = readNullableStr()
	cfg.WriteSynchronizationMode = WriteSynchronizationMode(readI32())

	if err != nil {
		return cfg, err
	}

	keyCfgCount, e := readElemCount(r)
	if e != nil {
		return cfg, e
	}
	cfg.CacheKeyConfigurations = make([]CacheKeyConfiguration, keyCfgCount)
	for i := range cfg.CacheKeyConfigurations {
		typeName, e := binary.Decode(r)
		if e != nil {
			return cfg, e
		}
		affinityField, e := binary.Decode(r)
		if e != nil {
			return cfg, e
		}
		cfg.CacheKeyConfigurations[i] = CacheKeyConfiguration{
			TypeName:             string(typeName.(binary.String)),
			AffinityKeyFieldName: string(affinityField.(binary.String)),
		}
	}

	entityCount, e := readElemCount(r)
	if e != nil {
		return cfg, e
	}
	cfg.QueryEntities = make([]QueryEntity, entityCount)
	for i := range cfg.QueryEntities {
		entity, e := decodeQueryEntity(r)
		if e != nil {
			return cfg, e
		}
		cfg.QueryEntities[i] = entity
	}

	return cfg, nil
}

func decodeQueryEntity(r *binary.Reader) (QueryEntity, error) {
	var e QueryEntity
	strs := make([]string, 5)
	for i := range strs {
		v, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		strs[i] = string(v.(binary.String))
	}
	e.KeyTypeName, e.ValueTypeName, e.TableName, e.KeyFieldName, e.ValueFieldName = strs[0], strs[1], strs[2], strs[3], strs[4]

	fieldCount, err := readElemCount(r)
	if err != nil {
		return e, err
	}
	e.Fields = make([]QueryField, fieldCount)
	for i := range e.Fields {
		name, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		typeName, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		keyField, err := r.ReadU8()
		if err != nil {
			return e, err
		}
		notNull, err := r.ReadU8()
		if err != nil {
			return e, err
		}
		defaultValue, err := binary.DecodeOptional(r)
		if err != nil {
			return e, err
		}
		e.Fields[i] = QueryField{
			Name:         string(name.(binary.String)),
			TypeName:     string(typeName.(binary.String)),
			KeyField:     keyField != 0,
			NotNull:      notNull != 0,
			DefaultValue: defaultValue,
		}
	}

	aliasCount, err := readElemCount(r)
	if err != nil {
		return e, err
	}
	e.Aliases = make([]QueryEntityAlias, aliasCount)
	for i := range e.Aliases {
		fieldName, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		alias, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		e.Aliases[i] = QueryEntityAlias{FieldName: string(fieldName.(binary.String)), Alias: string(alias.(binary.String))}
	}

	indexCount, err := readElemCount(r)
	if err != nil {
		return e, err
	}
	e.Indexes = make([]QueryIndex, indexCount)
	for i := range e.Indexes {
		indexName, err := binary.Decode(r)
		if err != nil {
			return e, err
		}
		indexType, err := r.ReadI8()
		if err != nil {
			return e, err
		}
		inlineSize, err := r.ReadI32LE()
		if err != nil {
			return e, err
		}
		idxFieldCount, err := readElemCount(r)
		if err != nil {
			return e, err
		}
		idxFields := make([]QueryIndexField, idxFieldCount)
		for j := range idxFields {
			fname, err := binary.Decode(r)
			if err != nil {
				return e, err
			}
			desc, err := r.ReadU8()
			if err != nil {
				return e, err
			}
			idxFields[j] = QueryIndexField{Name: string(fname.(binary.String)), IsDescending: desc != 0}
		}
		e.Indexes[i] = QueryIndex{
			IndexName:  string(indexName.(binary.String)),
			IndexType:  IndexType(indexType),
			InlineSize: inlineSize,
			Fields:     idxFields,
		}
	}

	return e, nil
}
