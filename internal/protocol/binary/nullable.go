package binary

// EncodeOptional writes v's full typed encoding, or the bare null sentinel
// byte (type code 101) when v is nil. Every request field that the
// protocol documents as nullable must go through this function rather than
// Encode directly.
func EncodeOptional(w *Writer, v Value) error {
	if v == nil {
		w.WriteI8(int8(CodeNull))
		return nil
	}
	return Encode(w, v)
}

// DecodeOptional reads either the null sentinel (returning a nil Value) or
// one full typed value, per the same contract as EncodeOptional.
func DecodeOptional(r *Reader) (Value, error) {
	code, err := r.PeekU8()
	if err != nil {
		return nil, err
	}
	if TypeCode(int8(code)) == CodeNull {
		_, _ = r.ReadU8()
		return nil, nil
	}
	return Decode(r)
}
