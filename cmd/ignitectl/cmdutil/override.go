package cmdutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"

	"github.com/marmos91/ignitego/pkg/igniteclient"
)

// ParseConfigOverrides turns a list of "key=value" pairs (as accepted by
// `cache create --set`) into a map keyed by CacheConfiguration's own field
// names, decoding scalar values loosely (numbers, bools) the way a flag
// value always arrives as a bare string.
func ParseConfigOverrides(pairs []string) (map[string]any, error) {
	overrides := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		overrides[key] = coerceScalar(value)
	}
	return overrides, nil
}

// coerceScalar returns raw as an int64 when it parses as a base-10 integer,
// as a bool when it parses as one, and unchanged otherwise; the
// weakly-typed decoder in ApplyConfigOverrides converts the result onto
// CacheConfiguration's typed fields.
func coerceScalar(raw string) any {
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(raw); err == nil {
		return b
	}
	return raw
}

// ApplyConfigOverrides decodes overrides onto a copy of base using
// mitchellh/mapstructure's weakly-typed decoder (it is the one already
// wired in for viper's own struct decoding, reused here for a second,
// unrelated "freeform map into a typed struct" need: CLI overrides rather
// than a config file).
func ApplyConfigOverrides(base igniteclient.CacheConfiguration, overrides map[string]any) (igniteclient.CacheConfiguration, error) {
	if len(overrides) == 0 {
		return base, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &base,
	})
	if err != nil {
		return base, fmt.Errorf("build decoder: %w", err)
	}
	if err := decoder.Decode(overrides); err != nil {
		return base, fmt.Errorf("apply overrides: %w", err)
	}
	return base, nil
}
