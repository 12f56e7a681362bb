package igniteclient

import "github.com/marmos91/ignitego/internal/protocol/wire"

// Error, Kind and the four sentinel errors are re-exported from the wire
// package so callers of this package never need to import
// internal/protocol/wire directly to branch on failure kind:
//
//	if errors.Is(err, igniteclient.ErrServerStatus) { ... }
type (
	Error = wire.Error
	Kind  = wire.Kind
)

const (
	KindNetwork      = wire.KindNetwork
	KindCodec        = wire.KindCodec
	KindHandshake    = wire.KindHandshake
	KindServerStatus = wire.KindServerStatus
)

var (
	ErrNetwork      = wire.ErrNetwork
	ErrCodec        = wire.ErrCodec
	ErrHandshake    = wire.ErrHandshake
	ErrServerStatus = wire.ErrServerStatus
)
