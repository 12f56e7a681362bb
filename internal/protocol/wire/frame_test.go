package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte("hello, ignite")

	require.NoError(t, WriteFrame(&buf, payload))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestFrameRoundTripEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, nil))

	got, err := ReadFrame(&buf)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadFrameTruncatedHeader(t *testing.T) {
	buf := bytes.NewBuffer([]byte{1, 2})
	_, err := ReadFrame(buf)
	require.Error(t, err)
	assertNetworkKind(t, err)
}

func TestReadFrameTruncatedPayload(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteFrame(&buf, []byte("0123456789")))
	truncated := bytes.NewBuffer(buf.Bytes()[:6])

	_, err := ReadFrame(truncated)
	require.Error(t, err)
	assertNetworkKind(t, err)
}

func assertNetworkKind(t *testing.T, err error) {
	t.Helper()
	werr, ok := err.(*Error)
	require.True(t, ok, "expected *wire.Error, got %T", err)
	assert.Equal(t, KindNetwork, werr.Kind)
}
