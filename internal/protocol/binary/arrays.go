package binary

// Homogeneous arrays write an outer type code, a 32-bit length, then raw
// element payloads with no per-element type code — unlike Collection,
// whose elements are full Values.

type I8Array []int8

func (v I8Array) Code() TypeCode { return CodeI8Arr }
func (v I8Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeI8Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI8(e)
	}
	return nil
}

func decodeI8Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(I8Array, n)
	for i := range out {
		if out[i], err = r.ReadI8(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type I16Array []int16

func (v I16Array) Code() TypeCode { return CodeI16Arr }
func (v I16Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeI16Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI16LE(e)
	}
	return nil
}

func decodeI16Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(I16Array, n)
	for i := range out {
		if out[i], err = r.ReadI16LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type I32Array []int32

func (v I32Array) Code() TypeCode { return CodeI32Arr }
func (v I32Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeI32Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI32LE(e)
	}
	return nil
}

func decodeI32Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(I32Array, n)
	for i := range out {
		if out[i], err = r.ReadI32LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type I64Array []int64

func (v I64Array) Code() TypeCode { return CodeI64Arr }
func (v I64Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeI64Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI64LE(e)
	}
	return nil
}

func decodeI64Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(I64Array, n)
	for i := range out {
		if out[i], err = r.ReadI64LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type F32Array []float32

func (v F32Array) Code() TypeCode { return CodeF32Arr }
func (v F32Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeF32Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteF32LE(e)
	}
	return nil
}

func decodeF32Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(F32Array, n)
	for i := range out {
		if out[i], err = r.ReadF32LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type F64Array []float64

func (v F64Array) Code() TypeCode { return CodeF64Arr }
func (v F64Array) encode(w *Writer) error {
	w.WriteI8(int8(CodeF64Arr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteF64LE(e)
	}
	return nil
}

func decodeF64Array(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(F64Array, n)
	for i := range out {
		if out[i], err = r.ReadF64LE(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type CharArray []rune

func (v CharArray) Code() TypeCode { return CodeCharArr }
func (v CharArray) encode(w *Writer) error {
	units := make([]uint16, len(v))
	for i, c := range v {
		unit, err := charCodeUnit(c)
		if err != nil {
			return err
		}
		units[i] = unit
	}
	w.WriteI8(int8(CodeCharArr))
	w.WriteI32LE(int32(len(v)))
	for _, u := range units {
		w.WriteU16BE(u)
	}
	return nil
}

func decodeCharArray(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(CharArray, n)
	for i := range out {
		unit, err := r.ReadU16BE()
		if err != nil {
			return nil, err
		}
		if unit >= 0xD800 && unit <= 0xDFFF {
			return nil, errf("lone UTF-16 surrogate in char array: %#x", unit)
		}
		out[i] = rune(unit)
	}
	return out, nil
}

type BoolArray []bool

func (v BoolArray) Code() TypeCode { return CodeBoolArr }
func (v BoolArray) encode(w *Writer) error {
	w.WriteI8(int8(CodeBoolArr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		if e {
			w.WriteU8(1)
		} else {
			w.WriteU8(0)
		}
	}
	return nil
}

func decodeBoolArray(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(BoolArray, n)
	for i := range out {
		b, err := r.ReadU8()
		if err != nil {
			return nil, err
		}
		out[i] = b != 0
	}
	return out, nil
}

type StringArray []string

func (v StringArray) Code() TypeCode { return CodeStringArr }
func (v StringArray) encode(w *Writer) error {
	w.WriteI8(int8(CodeStringArr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI32LE(int32(len(e)))
		w.WriteRaw([]byte(e))
	}
	return nil
}

func decodeStringArray(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(StringArray, n)
	for i := range out {
		slen, err := r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		if slen < 0 {
			return nil, errf("negative string length in array: %d", slen)
		}
		raw, err := r.ReadN(int(slen))
		if err != nil {
			return nil, err
		}
		out[i] = string(raw)
	}
	return out, nil
}

type UUIDArray []UUID

func (v UUIDArray) Code() TypeCode { return CodeUUIDArr }
func (v UUIDArray) encode(w *Writer) error {
	w.WriteI8(int8(CodeUUIDArr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		msb, lsb := uuidToWords([16]byte(e))
		w.WriteU64LE(msb)
		w.WriteU64LE(lsb)
	}
	return nil
}

func decodeUUIDArray(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(UUIDArray, n)
	for i := range out {
		msb, err := r.ReadU64LE()
		if err != nil {
			return nil, err
		}
		lsb, err := r.ReadU64LE()
		if err != nil {
			return nil, err
		}
		out[i] = UUID(wordsToUUID(msb, lsb))
	}
	return out, nil
}

type TimestampArray []Timestamp

func (v TimestampArray) Code() TypeCode { return CodeTimestampArr }
func (v TimestampArray) encode(w *Writer) error {
	w.WriteI8(int8(CodeTimestampArr))
	w.WriteI32LE(int32(len(v)))
	for _, e := range v {
		w.WriteI64LE(e.Millis)
		w.WriteI32LE(e.Nanos)
	}
	return nil
}

func decodeTimestampArray(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	out := make(TimestampArray, n)
	for i := range out {
		millis, err := r.ReadI64LE()
		if err != nil {
			return nil, err
		}
		nanos, err := r.ReadI32LE()
		if err != nil {
			return nil, err
		}
		out[i] = Timestamp{Millis: millis, Nanos: nanos}
	}
	return out, nil
}

func readArrayLen(r *Reader) (int, error) {
	n, err := r.ReadI32LE()
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, errf("negative array length: %d", n)
	}
	return int(n), nil
}
