package binary

// Collection is an ordered sequence of heterogeneous Values: unlike the
// homogeneous arrays in arrays.go, each element carries its own type code.
// Kind is protocol-visible metadata (vector/linked-list/hash-set/...) that
// this codec passes through unchanged rather than interpreting.
type Collection struct {
	Kind     CollectionKind
	Elements []Value
}

// IsOrdered reports whether the collection's wire kind should be treated
// as a plain ordered sequence rather than set/hash semantics.
func (v Collection) IsOrdered() bool { return v.Kind.isGenericOrdered() }

func (v Collection) Code() TypeCode { return CodeCollection }

func (v Collection) encode(w *Writer) error {
	w.WriteI8(int8(CodeCollection))
	w.WriteI32LE(int32(len(v.Elements)))
	w.WriteI8(int8(v.Kind))
	for _, e := range v.Elements {
		if err := Encode(w, e); err != nil {
			return err
		}
	}
	return nil
}

func decodeCollection(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	kind, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	elems := make([]Value, n)
	for i := range elems {
		if elems[i], err = Decode(r); err != nil {
			return nil, err
		}
	}
	return Collection{Kind: CollectionKind(kind), Elements: elems}, nil
}

// MapEntry is one key/value pair of a Map.
type MapEntry struct {
	Key   Value
	Value Value
}

// Map is an association list of heterogeneous key/value Values, each
// self-describing on the wire like Collection's elements.
type Map struct {
	Kind    MapKind
	Entries []MapEntry
}

func (v Map) Code() TypeCode { return CodeMap }

func (v Map) encode(w *Writer) error {
	w.WriteI8(int8(CodeMap))
	w.WriteI32LE(int32(len(v.Entries)))
	w.WriteI8(int8(v.Kind))
	for _, e := range v.Entries {
		if err := Encode(w, e.Key); err != nil {
			return err
		}
		if err := Encode(w, e.Value); err != nil {
			return err
		}
	}
	return nil
}

func decodeMap(r *Reader) (Value, error) {
	n, err := readArrayLen(r)
	if err != nil {
		return nil, err
	}
	kind, err := r.ReadI8()
	if err != nil {
		return nil, err
	}
	entries := make([]MapEntry, n)
	for i := range entries {
		key, err := Decode(r)
		if err != nil {
			return nil, err
		}
		val, err := Decode(r)
		if err != nil {
			return nil, err
		}
		entries[i] = MapEntry{Key: key, Value: val}
	}
	return Map{Kind: MapKind(kind), Entries: entries}, nil
}
