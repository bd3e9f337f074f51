package tlscap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tsharkFixture = `[
  {
    "_source": {
      "layers": {
        "frame.time_epoch": ["1700000000.500000000"],
        "ip.src": ["192.168.1.10"],
        "ip.dst": ["10.0.0.1"],
        "tcp.srcport": ["54321"],
        "tcp.dstport": ["443"],
        "tls.handshake.type": ["1"],
        "tls.handshake.ciphersuite": ["0x0003", "0x002f"],
        "tls.handshake.extensions_supported_group": ["0x0017", "0x001d"]
      }
    }
  },
  {
    "_source": {
      "layers": {
        "frame.time_epoch": ["1700000000.600000000"],
        "ip.src": ["10.0.0.1"],
        "ip.dst": ["192.168.1.10"],
        "tcp.srcport": ["443"],
        "tcp.dstport": ["54321"],
        "tls.handshake.type": ["2"],
        "tls.handshake.cipher": ["0x0003"]
      }
    }
  }
]`

func TestParseTsharkOutput(t *testing.T) {
	sessions, err := parseTsharkOutput([]byte(tsharkFixture))
	require.NoError(t, err)
	require.Equal(t, 1, sessions.Len())

	session := sessions.Sessions()[0]
	assert.Equal(t, []uint16{0x0003, 0x002F}, session.OfferedCiphers)
	assert.Equal(t, []uint16{23, 29}, session.SupportedGroups)
	require.NotNil(t, session.SelectedCipher)
	assert.Equal(t, uint16(0x0003), *session.SelectedCipher)
	assert.Equal(t, time.Unix(1700000000, 500000000).Unix(), session.Timestamp.Unix())
}

func TestParseTsharkOutputSkipsMalformedRows(t *testing.T) {
	const fixture = `[
	  {"_source": {"layers": {"tls.handshake.type": ["1"]}}},
	  {"_source": {"layers": {
	    "ip.src": ["192.168.1.10"], "ip.dst": ["10.0.0.1"],
	    "tcp.srcport": ["not-a-port"], "tcp.dstport": ["443"],
	    "tls.handshake.type": ["1"]
	  }}},
	  {"_source": {"layers": {
	    "frame.time_epoch": ["1700000001.0"],
	    "ip.src": ["192.168.1.20"], "ip.dst": ["10.0.0.1"],
	    "tcp.srcport": ["50000"], "tcp.dstport": ["443"],
	    "tls.handshake.type": ["1"],
	    "tls.handshake.ciphersuite": ["0x1301"]
	  }}}
	]`

	sessions, err := parseTsharkOutput([]byte(fixture))
	require.NoError(t, err)
	assert.Equal(t, 1, sessions.Len())
}

func TestParseTsharkOutputInvalidJSON(t *testing.T) {
	_, err := parseTsharkOutput([]byte("tshark: not a capture file"))
	assert.Error(t, err)
}

func TestParseFieldID(t *testing.T) {
	tests := []struct {
		value   string
		want    uint16
		wantErr bool
	}{
		{"0x0003", 0x0003, false},
		{"0X002F", 0x002F, false},
		{"23", 23, false},
		{"4865", 0x1301, false},
		{"", 0, true},
		{"0x", 0, true},
		{"garbage", 0, true},
		{"99999", 0, true},
	}

	for _, tt := range tests {
		id, err := parseFieldID(tt.value)
		if tt.wantErr {
			assert.Error(t, err, "value %q", tt.value)
			continue
		}
		require.NoError(t, err, "value %q", tt.value)
		assert.Equal(t, tt.want, id, "value %q", tt.value)
	}
}

func TestEpochToTime(t *testing.T) {
	ts := epochToTime("1700000000.250000000")
	assert.Equal(t, int64(1700000000), ts.Unix())
	assert.Equal(t, 250*time.Millisecond, time.Duration(ts.Nanosecond()))

	assert.True(t, epochToTime("garbage").IsZero())
	assert.True(t, epochToTime("").IsZero())
}

func TestNewTsharkBackendDefaults(t *testing.T) {
	b := NewTsharkBackend("", 0)
	assert.Equal(t, "tshark", b.Path)
	assert.Equal(t, DefaultTsharkTimeout, b.Timeout)

	custom := NewTsharkBackend("/opt/wireshark/tshark", 5*time.Second)
	assert.Equal(t, "/opt/wireshark/tshark", custom.Path)
	assert.Equal(t, 5*time.Second, custom.Timeout)
}

func TestTsharkBackendUnavailable(t *testing.T) {
	b := NewTsharkBackend("/nonexistent/tshark-binary", time.Second)
	assert.False(t, b.Available())
}

func TestTsharkBackendExecFailureIsRecoverable(t *testing.T) {
	b := NewTsharkBackend("/nonexistent/tshark-binary", time.Second)

	_, err := b.Analyze(context.Background(), "capture.pcap")
	require.Error(t, err)

	var backendErr *BackendError
	require.True(t, errors.As(err, &backendErr))
	assert.Equal(t, "tshark", backendErr.Backend)
}
