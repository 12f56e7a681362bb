package wire

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/marmos91/ignitego/internal/metrics"
	"github.com/marmos91/ignitego/internal/protocol/binary"
	"github.com/marmos91/ignitego/internal/telemetry"
)

// requestID is fixed at 0 for every request: per §5, exactly one operation
// is ever in flight on a Conn, so a constant id is sufficient and the
// server is only asked to echo it back.
const requestID int64 = 0

// collector receives per-request metrics. It defaults to the nil no-op
// collector; callers who want instrumentation call SetMetrics once during
// startup.
var collector = metrics.Null()

// SetMetrics installs the process-wide Prometheus collector used by every
// dispatcher round trip. Passing nil restores the no-op default.
func SetMetrics(m *metrics.Metrics) {
	collector = m
}

// opcodeSpanName maps an opcode to the span name dispatched calls use:
// "ignite.cache.<op>" for cache-scoped operations and "ignite.client.<op>"
// otherwise. Since the public API carries no per-operation human name, the
// opcode itself stands in for <op>.
func opcodeSpanName(prefix string, opcode int16) string {
	return fmt.Sprintf("ignite.%s.%d", prefix, opcode)
}

// Execute wraps one full request/response round trip per §4.5: it frames
// the opcode and request id, invokes writeRequest to append the body,
// sends the frame, demuxes the status code of the reply, and on success
// invokes readResponse to decode the body.
func Execute[R any](
	c *Conn,
	opcode int16,
	writeRequest func(w *binary.Writer) error,
	readResponse func(r *binary.Reader) (R, error),
) (R, error) {
	return execute(context.Background(), "client", c, opcode, -1, writeRequest, readResponse)
}

func execute[R any](
	ctx context.Context,
	spanPrefix string,
	c *Conn,
	opcode int16,
	cacheID int32,
	writeRequest func(w *binary.Writer) error,
	readResponse func(r *binary.Reader) (R, error),
) (R, error) {
	var zero R

	start := time.Now()
	outcome := metrics.OutcomeSuccess
	defer func() {
		collector.RecordRequest(opcode, outcome, time.Since(start).Seconds())
	}()

	ctx, span := telemetry.StartSpan(ctx, opcodeSpanName(spanPrefix, opcode))
	defer span.End()
	span.SetAttributes(attribute.Int64("ignite.opcode", int64(opcode)))
	if cacheID != -1 {
		span.SetAttributes(attribute.Int64("ignite.cache_id", int64(cacheID)))
	}

	w := binary.NewWriter()
	w.WriteI16LE(opcode)
	w.WriteI64LE(requestID)
	if writeRequest != nil {
		if err := writeRequest(w); err != nil {
			err = codecErr("encode request body for opcode %d: %v", opcode, err)
			outcome = metrics.OutcomeCodecError
			telemetry.RecordError(ctx, err)
			return zero, err
		}
	}

	reply, err := c.Send(w.Bytes())
	if err != nil {
		outcome = metrics.OutcomeNetworkError
		telemetry.RecordError(ctx, err)
		return zero, err
	}

	r := binary.NewReader(reply)
	echoedID, err := r.ReadI64LE()
	if err != nil {
		err = codecErr("read echoed request id: %v", err)
		outcome = metrics.OutcomeCodecError
		telemetry.RecordError(ctx, err)
		return zero, err
	}
	if echoedID != requestID {
		err = codecErr("echoed request id %d does not match sent id %d", echoedID, requestID)
		outcome = metrics.OutcomeCodecError
		telemetry.RecordError(ctx, err)
		return zero, err
	}

	status, err := r.ReadI32LE()
	if err != nil {
		err = codecErr("read response status: %v", err)
		outcome = metrics.OutcomeCodecError
		telemetry.RecordError(ctx, err)
		return zero, err
	}
	span.SetAttributes(attribute.Int64("ignite.status", int64(status)))
	if status != 0 {
		message := string(r.Remaining())
		err := NewServerStatusError(status, message)
		outcome = metrics.OutcomeServerStatus
		telemetry.RecordError(ctx, err)
		return zero, err
	}

	if readResponse == nil {
		return zero, nil
	}
	result, err := readResponse(r)
	if err != nil {
		outcome = metrics.OutcomeCodecError
		telemetry.RecordError(ctx, err)
	}
	return result, err
}

// cacheFlags is always 0: the protocol reserves the byte but this client
// never sets any of its bits (transactional/"keep binary" flags are out
// of scope per the Non-goals).
const cacheFlags uint8 = 0

// CacheExecute is Execute's cache-scoped counterpart: it prepends
// (cacheId: i32, flags: u8) to the request body before delegating to
// writeRequest, per §4.5's cache-scoped execute rule.
func CacheExecute[R any](
	c *Conn,
	opcode int16,
	cacheID int32,
	writeRequest func(w *binary.Writer) error,
	readResponse func(r *binary.Reader) (R, error),
) (R, error) {
	return execute(context.Background(), "cache", c, opcode, cacheID, func(w *binary.Writer) error {
		w.WriteI32LE(cacheID)
		w.WriteU8(cacheFlags)
		if writeRequest != nil {
			return writeRequest(w)
		}
		return nil
	}, readResponse)
}
