// Package wire implements connection framing, handshake, and
// request/response dispatch for the Ignite thin-client protocol, built on
// top of the typed codec in internal/protocol/binary.
package wire

import "fmt"

// Kind classifies a wire-level failure so callers can branch on category
// with errors.Is rather than type assertions.
type Kind int

const (
	// KindNetwork marks an I/O failure: dial, write, flush, or read.
	KindNetwork Kind = iota
	// KindCodec marks invalid bytes, a truncated buffer, or a request-id
	// mismatch — anything the codec or dispatcher itself rejects.
	KindCodec
	// KindHandshake marks a rejected protocol handshake.
	KindHandshake
	// KindServerStatus marks a non-zero status code in a response envelope.
	KindServerStatus
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCodec:
		return "codec"
	case KindHandshake:
		return "handshake"
	case KindServerStatus:
		return "server_status"
	default:
		return "unknown"
	}
}

// ErrNetwork, ErrCodec, ErrHandshake and ErrServerStatus are sentinels
// callers can match against with errors.Is(err, wire.ErrNetwork); every
// Error of the matching Kind reports Is(sentinel) == true.
var (
	ErrNetwork      = &Error{Kind: KindNetwork, Message: "network error"}
	ErrCodec        = &Error{Kind: KindCodec, Message: "codec error"}
	ErrHandshake    = &Error{Kind: KindHandshake, Message: "handshake rejected"}
	ErrServerStatus = &Error{Kind: KindServerStatus, Message: "server status error"}
)

// Error is the single error type the wire package and everything built on
// it return. Code and ServerVersion/ClientVersion are populated only for
// the Kind they're relevant to.
type Error struct {
	Kind    Kind
	Message string

	// Code is the server status code, set only when Kind == KindServerStatus.
	Code int32

	// ServerVersion and ClientVersion are set only when Kind == KindHandshake.
	ServerVersion ProtocolVersion
	ClientVersion ProtocolVersion

	// Cause is the underlying error, if any (e.g. the *net.OpError a dial
	// or read failed with).
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ignite: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("ignite: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is one of the package's Kind sentinels and
// matches e's Kind, so errors.Is(err, wire.ErrNetwork) works without a
// type assertion.
func (e *Error) Is(target error) bool {
	sentinel, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == sentinel.Kind
}

func networkErr(format string, cause error, args ...any) error {
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf(format, args...), Cause: cause}
}

func codecErr(format string, args ...any) error {
	return &Error{Kind: KindCodec, Message: fmt.Sprintf(format, args...)}
}

func handshakeErr(server, client ProtocolVersion, message string) error {
	return &Error{
		Kind:          KindHandshake,
		Message:       message,
		ServerVersion: server,
		ClientVersion: client,
	}
}

// NewServerStatusError builds the error surfaced when a response envelope
// carries a non-zero status code.
func NewServerStatusError(code int32, message string) error {
	return &Error{Kind: KindServerStatus, Message: message, Code: code}
}
