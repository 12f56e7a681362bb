package igniteclient

import (
	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/protocol/wire"
)

// Field describes one field of a user-defined binary type, per §3.4.
type Field struct {
	Name    string
	TypeID  int32
	FieldID int32
}

// EnumValue names one ordinal of an enum binary type.
type EnumValue struct {
	Name  string
	Value int32
}

// Schema lists, for one schema id, the field ids present and their wire
// order, per §3.4.
type Schema struct {
	ID       int32
	FieldIDs []int32
}

// Type is the full descriptor of a user-defined binary type: its numeric
// id, human name, affinity key field, fields, optional enum values, and
// schemas.
type Type struct {
	TypeID              int32
	TypeName            string
	AffinityKeyField    string
	AffinityKeyFieldSet bool
	Fields              []Field
	IsEnum              bool
	EnumValues          []EnumValue
	Schemas             []Schema
}

// TypeName resolves the human-readable name registered for typeId
// (opcode 3000).
func (c *Client) TypeName(typeID int32) (string, error) {
	return wire.Execute(c.getConn(), opTypeName,
		func(w *binary.Writer) error {
			w.WriteI32LE(typeID)
			return nil
		},
		func(r *binary.Reader) (string, error) {
			v, err := binary.Decode(r)
			if err != nil {
				return "", err
			}
			s, ok := v.(binary.String)
			if !ok {
				return "", &wire.Error{Kind: wire.KindCodec, Message: "type name did not decode as String"}
			}
			return string(s), nil
		},
	)
}

// RegisterTypeName associates name with typeId on the server (opcode 3001).
func (c *Client) RegisterTypeName(typeID int32, name string) error {
	_, err := wire.Execute[struct{}](c.getConn(), opRegisterTypeName,
		func(w *binary.Writer) error {
			w.WriteI32LE(typeID)
			return binary.Encode(w, binary.String(name))
		},
		nil,
	)
	return err
}

// GetType fetches the full descriptor registered for typeId (opcode 3002).
func (c *Client) GetType(typeID int32) (Type, error) {
	return wire.Execute(c.getConn(), opGetType,
		func(w *binary.Writer) error {
			w.WriteI32LE(typeID)
			return nil
		},
		func(r *binary.Reader) (Type, error) {
			exists, err := r.ReadI8()
			if err != nil {
				return Type{}, err
			}
			if exists == 0 {
				return Type{}, &wire.Error{Kind: wire.KindServerStatus, Message: "binary type not registered"}
			}
			return decodeType(r)
		},
	)
}

// PutType registers or replaces a full type descriptor (opcode 3003).
func (c *Client) PutType(t Type) error {
	_, err := wire.Execute[struct{}](c.getConn(), opPutType,
		func(w *binary.Writer) error { return encodeType(w, t) },
		nil,
	)
	return err
}

func encodeType(w *binary.Writer, t Type) error {
	w.WriteI32LE(t.TypeID)
	if err := binary.Encode(w, binary.String(t.TypeName)); err != nil {
		return err
	}
	if t.AffinityKeyFieldSet {
		if err := binary.Encode(w, binary.String(t.AffinityKeyField)); err != nil {
			return err
		}
	} else {
		if err := binary.EncodeOptional(w, nil); err != nil {
			return err
		}
	}

	w.WriteI32LE(int32(len(t.Fields)))
	for _, f := range t.Fields {
		if err := binary.Encode(w, binary.String(f.Name)); err != nil {
			return err
		}
		w.WriteI32LE(f.TypeID)
		w.WriteI32LE(f.FieldID)
	}

	if t.IsEnum {
		w.WriteI8(1)
	} else {
		w.WriteI8(0)
	}
	w.WriteI32LE(int32(len(t.EnumValues)))
	for _, ev := range t.EnumValues {
		if err := binary.Encode(w, binary.String(ev.Name)); err != nil {
			return err
		}
		w.WriteI32LE(ev.Value)
	}

	w.WriteI32LE(int32(len(t.Schemas)))
	for _, s := range t.Schemas {
		w.WriteI32LE(s.ID)
		w.WriteI32LE(int32(len(s.FieldIDs)))
		for _, id := range s.FieldIDs {
			w.WriteI32LE(id)
		}
	}
	return nil
}

func decodeType(r *binary.Reader) (Type, error) {
	var t Type
	var err error

	if t.TypeID, err = r.ReadI32LE(); err != nil {
		return Type{}, err
	}

	nameVal, err := binary.Decode(r)
	if err != nil {
		return Type{}, err
	}
	name, ok := nameVal.(binary.String)
	if !ok {
		return Type{}, &wire.Error{Kind: wire.KindCodec, Message: "type name did not decode as String"}
	}
	t.TypeName = string(name)

	affinityVal, err := binary.DecodeOptional(r)
	if err != nil {
		return Type{}, err
	}
	if affinityVal != nil {
		s, ok := affinityVal.(binary.String)
		if !ok {
			return Type{}, &wire.Error{Kind: wire.KindCodec, Message: "affinity key field did not decode as String"}
		}
		t.AffinityKeyField = string(s)
		t.AffinityKeyFieldSet = true
	}

	fieldCount, err := readElemCount(r)
	if err != nil {
		return Type{}, err
	}
	t.Fields = make([]Field, fieldCount)
	for i := range t.Fields {
		fv, err := binary.Decode(r)
		if err != nil {
			return Type{}, err
		}
		fname, ok := fv.(binary.String)
		if !ok {
			return Type{}, &wire.Error{Kind: wire.KindCodec, Message: "field name did not decode as String"}
		}
		typeID, err := r.ReadI32LE()
		if err != nil {
			return Type{}, err
		}
		fieldID, err := r.ReadI32LE()
		if err != nil {
			return Type{}, err
		}
		t.Fields[i] = Field{Name: string(fname), TypeID: typeID, FieldID: fieldID}
	}

	isEnum, err := r.ReadI8()
	if err != nil {
		return Type{}, err
	}
	t.IsEnum = isEnum != 0

	enumCount, err := readElemCount(r)
	if err != nil {
		return Type{}, err
	}
	t.EnumValues = make([]EnumValue, enumCount)
	for i := range t.EnumValues {
		ev, err := binary.Decode(r)
		if err != nil {
			return Type{}, err
		}
		evName, ok := ev.(binary.String)
		if !ok {
			return Type{}, &wire.Error{Kind: wire.KindCodec, Message: "enum value name did not decode as String"}
		}
		value, err := r.ReadI32LE()
		if err != nil {
			return Type{}, err
		}
		t.EnumValues[i] = EnumValue{Name: string(evName), Value: value}
	}

	schemaCount, err := readElemCount(r)
	if err != nil {
		return Type{}, err
	}
	t.Schemas = make([]Schema, schemaCount)
	for i := range t.Schemas {
		id, err := r.ReadI32LE()
		if err != nil {
			return Type{}, err
		}
		fieldIDCount, err := readElemCount(r)
		if err != nil {
			return Type{}, err
		}
		fieldIDs := make([]int32, fieldIDCount)
		for j := range fieldIDs {
			fid, err := r.ReadI32LE()
			if err != nil {
				return Type{}, err
			}
			fieldIDs[j] = fid
		}
		t.Schemas[i] = Schema{ID: id, FieldIDs: fieldIDs}
	}

	return t, nil
}

// Field resolves obj's field called name. Since a BinaryObject's opaque body
// carries no field layout of its own, this round-trips through GetType for
// obj.TypeID and returns a codec error if no registered field has that name.
// For a registered field it returns a "schema unavailable" error: the
// descriptor carries no field offsets, so no field value is ever returned.
//
// original_source leaves this unimplemented (its stub always returns
// None); this client supplements it since the information is recoverable
// through the type registry whenever a live Client is available.
func (c *Client) Field(obj binary.BinaryObject, name string) (binary.Value, error) {
	t, err := c.GetType(obj.TypeID)
	if err != nil {
		return nil, err
	}
	for _, f := range t.Fields {
		if f.Name != name {
			continue
		}
		return fieldByPosition(obj, f, t)
	}
	return nil, &wire.Error{Kind: wire.KindCodec, Message: "field " + name + " not present in registered schema"}
}

// fieldByPosition is deliberately unimplemented beyond the lookup above:
// without the schema's per-field offsets (carried in a real server's
// schema cache, not in this descriptor), the body cannot be sliced. This
// mirrors original_source's stub behavior for the one case this client
// cannot yet resolve from GetType alone.
func fieldByPosition(obj binary.BinaryObject, f Field, t Type) (binary.Value, error) {
	return nil, &wire.Error{
		Kind:    wire.KindCodec,
		Message: "schema unavailable: field offset for " + f.Name + " cannot be resolved from type metadata alone",
	}
}
