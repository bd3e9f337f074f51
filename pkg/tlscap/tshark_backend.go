// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/tshark_backend.go
package tlscap

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// DefaultTsharkTimeout bounds a single tshark invocation.
const DefaultTsharkTimeout = 60 * time.Second

// tsharkFilter selects ClientHello, ServerHello and ServerKeyExchange frames.
const tsharkFilter = "tls.handshake.type == 1 || tls.handshake.type == 2 || tls.handshake.type == 12"

// TsharkBackend extracts handshake fields by invoking tshark as a subprocess
// and parsing its JSON field output. It is the external-tool strategy, tried
// first in auto mode.
type TsharkBackend struct {
	// Path is the tshark executable name or path.
	Path string

	// Timeout bounds the subprocess run.
	Timeout time.Duration
}

// NewTsharkBackend creates a tshark backend with the given executable path
// and timeout; zero values select "tshark" from PATH and the default timeout.
func NewTsharkBackend(path string, timeout time.Duration) *TsharkBackend {
	if path == "" {
		path = "tshark"
	}
	if timeout <= 0 {
		timeout = DefaultTsharkTimeout
	}
	return &TsharkBackend{Path: path, Timeout: timeout}
}

// Name identifies the backend in diagnostics.
func (b *TsharkBackend) Name() string {
	return "tshark"
}

// Available reports whether the tshark executable can be found.
func (b *TsharkBackend) Available() bool {
	_, err := exec.LookPath(b.Path)
	return err == nil
}

// Analyze runs tshark over the capture file and reconstructs sessions from
// its dissected handshake fields. Subprocess failures, timeouts and
// malformed output are reported as recoverable backend errors.
func (b *TsharkBackend) Analyze(ctx context.Context, pcapPath string) (*SessionMap, error) {
	runCtx, cancel := context.WithTimeout(ctx, b.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, b.Path,
		"-r", pcapPath,
		"-Y", tsharkFilter,
		"-T", "json",
		"-e", "frame.time_epoch",
		"-e", "ip.src",
		"-e", "ip.dst",
		"-e", "tcp.srcport",
		"-e", "tcp.dstport",
		"-e", "tls.handshake.type",
		"-e", "tls.handshake.ciphersuite",
		"-e", "tls.handshake.cipher",
		"-e", "tls.handshake.extensions_supported_group",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return nil, backendErrorf(b.Name(), "timed out after %v", b.Timeout)
		}
		return nil, backendErrorf(b.Name(), "execution failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}

	output := bytes.TrimSpace(stdout.Bytes())
	if len(output) == 0 {
		// No TLS handshake packets in the capture.
		return NewSessionMap(), nil
	}

	sessions, err := parseTsharkOutput(output)
	if err != nil {
		return nil, backendErrorf(b.Name(), "unparseable output: %w", err)
	}

	return sessions, nil
}

// tsharkPacket mirrors one entry of tshark's -T json output: every requested
// field arrives as a list of strings under _source.layers.
type tsharkPacket struct {
	Source struct {
		Layers map[string][]string `json:"layers"`
	} `json:"_source"`
}

// parseTsharkOutput reconstructs sessions from tshark's JSON field output.
// Rows with missing or malformed fields are skipped; only undecodable JSON
// fails the backend.
func parseTsharkOutput(output []byte) (*SessionMap, error) {
	var packets []tsharkPacket
	if err := json.Unmarshal(output, &packets); err != nil {
		return nil, err
	}

	sessions := NewSessionMap()

	for _, pkt := range packets {
		fields := pkt.Source.Layers

		srcIP := firstField(fields, "ip.src")
		dstIP := firstField(fields, "ip.dst")
		if srcIP == "" || dstIP == "" {
			continue
		}

		srcPort, err := strconv.Atoi(firstField(fields, "tcp.srcport"))
		if err != nil {
			continue
		}
		dstPort, err := strconv.Atoi(firstField(fields, "tcp.dstport"))
		if err != nil {
			continue
		}

		frame := Frame{
			Timestamp: epochToTime(firstField(fields, "frame.time_epoch")),
			SrcIP:     srcIP,
			DstIP:     dstIP,
			SrcPort:   srcPort,
			DstPort:   dstPort,
		}

		types := fields["tls.handshake.type"]
		switch {
		case containsField(types, "1"):
			facts := HandshakeFacts{Type: MsgClientHello}
			for _, hex := range fields["tls.handshake.ciphersuite"] {
				if id, err := parseFieldID(hex); err == nil {
					facts.OfferedCiphers = append(facts.OfferedCiphers, id)
				}
			}
			for _, group := range fields["tls.handshake.extensions_supported_group"] {
				if id, err := parseFieldID(group); err == nil {
					facts.SupportedGroups = append(facts.SupportedGroups, id)
				}
			}
			sessions.Observe(frame, facts)

		case containsField(types, "2"):
			id, err := parseFieldID(firstField(fields, "tls.handshake.cipher"))
			if err != nil {
				continue
			}
			sessions.Observe(frame, HandshakeFacts{
				Type:           MsgServerHello,
				SelectedCipher: id,
			})

			// ServerKeyExchange (type 12): tshark does not expose the DH
			// prime length through these fields, so the prime-size
			// heuristic only fires on the gopacket path.
		}
	}

	return sessions, nil
}

// firstField returns the first value of a tshark field list, or "".
func firstField(fields map[string][]string, name string) string {
	values := fields[name]
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

func containsField(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}

// parseFieldID decodes a tshark numeric field, which arrives either as a
// 0x-prefixed hex string or as a decimal string.
func parseFieldID(value string) (uint16, error) {
	if strings.HasPrefix(value, "0x") || strings.HasPrefix(value, "0X") {
		id, err := strconv.ParseUint(value[2:], 16, 16)
		return uint16(id), err
	}
	id, err := strconv.ParseUint(value, 10, 16)
	return uint16(id), err
}

// epochToTime converts tshark's frame.time_epoch value to a time.Time.
func epochToTime(value string) time.Time {
	epoch, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return time.Time{}
	}
	sec, frac := math.Modf(epoch)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
