package binary

// BinaryObject is an opaque, self-contained encoded object as Ignite's
// binary marshaller produces it: a fixed 16-byte header (type code,
// version, flags, type id, hash code, length) followed by an opaque body.
// This codec does not interpret field data — decoding a BinaryObject's
// individual fields requires the type's schema, which is only available
// via a GetType metadata round-trip (see pkg/igniteclient's
// Client.Field).
type BinaryObject struct {
	Version  int8
	Flags    int16
	TypeID   int32
	HashCode int32

	// Body holds everything after the header, verbatim — field data and
	// the schema table, neither of which this package parses.
	Body []byte
}

// binaryObjectHeaderLen is the byte count of the whole header, type code
// included, per §6.2: the declared length covers the object starting at
// the type code byte, so body length is declared length minus this.
const binaryObjectHeaderLen = 1 + 1 + 2 + 4 + 4 + 4

func (v BinaryObject) Code() TypeCode { return CodeBinaryObject }

func (v BinaryObject) encode(w *Writer) error {
	w.WriteI8(int8(CodeBinaryObject))
	w.WriteI8(v.Version)
	w.WriteI16LE(v.Flags)
	w.WriteI32LE(v.TypeID)
	w.WriteI32LE(v.HashCode)
	w.WriteI32LE(int32(binaryObjectHeaderLen + len(v.Body)))
	w.WriteRaw(v.Body)
	return nil
}

func decodeBinaryObject(r *Reader) (Value, error) {
	version, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	if version != BinaryObjectProtoVersion {
		return nil, errf("unsupported binary object version: %d", version)
	}
	flags, err := r.ReadI16LE()
	if err != nil {
		return nil, err
	}
	typeID, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	hashCode, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	length, err := r.ReadI32LE()
	if err != nil {
		return nil, err
	}
	bodyLen := int(length) - binaryObjectHeaderLen
	if bodyLen < 0 {
		return nil, errf("binary object length %d shorter than its own header", length)
	}
	body, err := r.ReadN(bodyLen)
	if err != nil {
		return nil, err
	}
	return BinaryObject{
		Version:  version,
		Flags:    flags,
		TypeID:   typeID,
		HashCode: hashCode,
		Body:     body,
	}, nil
}
