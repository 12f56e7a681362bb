package binary

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundTrip(t *testing.T, v Value) Value {
	t.Helper()
	w := NewWriter()
	require.NoError(t, Encode(w, v))
	got, err := Decode(NewReader(w.Bytes()))
	require.NoError(t, err)
	return got
}

func TestRoundTripScalars(t *testing.T) {
	assert.Equal(t, I8(-7), roundTrip(t, I8(-7)))
	assert.Equal(t, I16(1234), roundTrip(t, I16(1234)))
	assert.Equal(t, I32(-99999), roundTrip(t, I32(-99999)))
	assert.Equal(t, I64(1<<40), roundTrip(t, I64(1<<40)))
	assert.Equal(t, F32(3.5), roundTrip(t, F32(3.5)))
	assert.Equal(t, F64(-2.25), roundTrip(t, F64(-2.25)))
	assert.Equal(t, Char('Q'), roundTrip(t, Char('Q')))
	assert.Equal(t, Bool(true), roundTrip(t, Bool(true)))
	assert.Equal(t, Bool(false), roundTrip(t, Bool(false)))
	assert.Equal(t, String(""), roundTrip(t, String("")))
	assert.Equal(t, String("hello, ignite"), roundTrip(t, String("hello, ignite")))
	assert.Equal(t, Timestamp{Millis: 1700000000000, Nanos: 123456}, roundTrip(t, Timestamp{Millis: 1700000000000, Nanos: 123456}))
}

func TestRoundTripUUID(t *testing.T) {
	id := UUID(uuid.New())
	got := roundTrip(t, id)
	assert.Equal(t, id, got)
	assert.Equal(t, uuid.UUID(id).String(), got.(UUID).String())
}

func TestRoundTripArrays(t *testing.T) {
	assert.Equal(t, I32Array{1, 2, 3}, roundTrip(t, I32Array{1, 2, 3}))
	assert.Equal(t, StringArray{"a", "bb", ""}, roundTrip(t, StringArray{"a", "bb", ""}))
	assert.Equal(t, BoolArray{true, false, true}, roundTrip(t, BoolArray{true, false, true}))
	assert.Equal(t, I32Array{}, roundTrip(t, I32Array{}))
}

func TestRoundTripCollection(t *testing.T) {
	c := Collection{Kind: CollectionVec, Elements: []Value{I32(1), String("two"), Bool(true)}}
	got := roundTrip(t, c).(Collection)
	assert.Equal(t, c.Kind, got.Kind)
	assert.Equal(t, c.Elements, got.Elements)
	assert.True(t, got.IsOrdered())
}

func TestRoundTripMap(t *testing.T) {
	m := Map{Kind: MapHash, Entries: []MapEntry{
		{Key: String("k1"), Value: I32(1)},
		{Key: String("k2"), Value: I32(2)},
	}}
	got := roundTrip(t, m).(Map)
	assert.Equal(t, m.Kind, got.Kind)
	assert.Equal(t, m.Entries, got.Entries)
}

func TestRoundTripBinaryObject(t *testing.T) {
	bo := BinaryObject{Version: 1, Flags: 0, TypeID: 42, HashCode: -7, Body: []byte{0xDE, 0xAD, 0xBE, 0xEF}}
	got := roundTrip(t, bo).(BinaryObject)
	assert.Equal(t, bo, got)
}

func TestNullSentinel(t *testing.T) {
	w := NewWriter()
	require.NoError(t, EncodeOptional(w, nil))
	assert.Equal(t, []byte{byte(CodeNull)}, w.Bytes())

	got, err := DecodeOptional(NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestOptionalPresent(t *testing.T) {
	w := NewWriter()
	require.NoError(t, EncodeOptional(w, I32(42)))
	got, err := DecodeOptional(NewReader(w.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, I32(42), got)
}

func TestTypeCodePrefix(t *testing.T) {
	cases := []struct {
		v    Value
		code TypeCode
	}{
		{I8(1), CodeI8},
		{I16(1), CodeI16},
		{I32(1), CodeI32},
		{I64(1), CodeI64},
		{F32(1), CodeF32},
		{F64(1), CodeF64},
		{Char('x'), CodeChar},
		{Bool(true), CodeBool},
		{String("x"), CodeString},
		{UUID(uuid.New()), CodeUUID},
		{Timestamp{}, CodeTimestamp},
	}
	for _, tc := range cases {
		w := NewWriter()
		require.NoError(t, Encode(w, tc.v))
		assert.Equal(t, byte(tc.code), w.Bytes()[0])
	}
}

func TestCharRejectsSupplementaryPlane(t *testing.T) {
	w := NewWriter()
	err := Encode(w, Char(0x1F600)) // outside the BMP, needs a surrogate pair
	require.Error(t, err)
	assert.Equal(t, 0, w.Len(), "no bytes should be written on a failed encode")
}

func TestDecodeUnknownTypeCode(t *testing.T) {
	r := NewReader([]byte{99})
	_, err := Decode(r)
	require.Error(t, err)
}

func TestDecodeTruncatedBuffer(t *testing.T) {
	r := NewReader([]byte{byte(CodeI32), 1, 2})
	_, err := Decode(r)
	require.Error(t, err)
}
