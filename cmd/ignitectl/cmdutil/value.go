package cmdutil

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/marmos91/ignitego/internal/protocol/binary"
)

// ParseValue interprets raw as a binary.Value of the given kind. kind is
// one of "string" (the default), "i32", "i64", "f64", "bool", "uuid" — the
// scalar types a cache key or value is most commonly one of from the
// command line.
func ParseValue(kind, raw string) (binary.Value, error) {
	switch kind {
	case "", "string":
		return binary.String(raw), nil
	case "i32":
		n, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("invalid i32 %q: %w", raw, err)
		}
		return binary.I32(n), nil
	case "i64":
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid i64 %q: %w", raw, err)
		}
		return binary.I64(n), nil
	case "f64":
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid f64 %q: %w", raw, err)
		}
		return binary.F64(f), nil
	case "bool":
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid bool %q: %w", raw, err)
		}
		return binary.Bool(b), nil
	case "uuid":
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid uuid %q: %w", raw, err)
		}
		return binary.UUID(id), nil
	default:
		return nil, fmt.Errorf("unsupported value type %q (valid: string, i32, i64, f64, bool, uuid)", kind)
	}
}

// FormatValue renders a decoded binary.Value for display. Nil (the wire
// encoding of "absent") prints as "<nil>".
func FormatValue(v binary.Value) string {
	if v == nil {
		return "<nil>"
	}
	switch val := v.(type) {
	case binary.String:
		return string(val)
	case binary.UUID:
		return val.String()
	case binary.BinaryObject:
		return fmt.Sprintf("BinaryObject{typeId=%d, len=%d}", val.TypeID, len(val.Body))
	default:
		return fmt.Sprintf("%v", v)
	}
}
