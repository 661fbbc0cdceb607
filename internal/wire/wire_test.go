package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandRoundTrip(t *testing.T) {
	cmd := NewSet("key", []byte("value"))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cmd))

	var decoded Command
	require.NoError(t, Decode(&buf, &decoded))
	require.Equal(t, cmd, decoded)
}

func TestResponseRoundTrip(t *testing.T) {
	res := OK([]byte("value"), true)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res))

	var decoded Response
	require.NoError(t, Decode(&buf, &decoded))
	require.Equal(t, res, decoded)
}

func TestFailedResponseCarriesMessage(t *testing.T) {
	res := Failed("key not found")

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, res))

	var decoded Response
	require.NoError(t, Decode(&buf, &decoded))
	require.Equal(t, "key not found", decoded.Err)
	require.False(t, decoded.Found)
}
