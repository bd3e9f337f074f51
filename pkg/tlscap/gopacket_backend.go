// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/gopacket_backend.go
package tlscap

import (
	"context"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// GopacketBackend reads the capture file offline with gopacket and feeds the
// manual handshake parser. It is the structured-library strategy and the
// fallback for auto mode.
type GopacketBackend struct{}

// NewGopacketBackend creates the gopacket-based analysis backend.
func NewGopacketBackend() *GopacketBackend {
	return &GopacketBackend{}
}

// Name identifies the backend in diagnostics.
func (b *GopacketBackend) Name() string {
	return "gopacket"
}

// Available always reports true: the decoder is compiled in.
func (b *GopacketBackend) Available() bool {
	return true
}

// Analyze walks the capture in file order, extracting handshake facts from
// every TLS-bearing TCP packet. Per-packet decode failures are skipped; only
// file-level failures are reported, and as recoverable backend errors.
func (b *GopacketBackend) Analyze(ctx context.Context, pcapPath string) (*SessionMap, error) {
	f, err := os.Open(pcapPath)
	if err != nil {
		return nil, backendErrorf(b.Name(), "failed to open capture file: %w", err)
	}
	defer f.Close()

	reader, err := pcapgo.NewReader(f)
	if err != nil {
		return nil, backendErrorf(b.Name(), "failed to read capture file: %w", err)
	}

	sessions := NewSessionMap()

	for {
		if err := ctx.Err(); err != nil {
			return nil, backendErrorf(b.Name(), "analysis canceled: %w", err)
		}

		data, ci, err := reader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Truncated trailing packet data ends the walk; what was
			// decoded so far still counts.
			break
		}

		packet := gopacket.NewPacket(data, reader.LinkType(), gopacket.Default)
		frame, payload, ok := decodeFrame(packet)
		if !ok {
			continue
		}
		frame.Timestamp = ci.Timestamp

		for _, facts := range extractFacts(payload) {
			sessions.Observe(frame, facts)
		}
	}

	return sessions, nil
}

// decodeFrame pulls the connection tuple and TCP payload out of a packet.
func decodeFrame(packet gopacket.Packet) (Frame, []byte, bool) {
	networkLayer := packet.NetworkLayer()
	if networkLayer == nil {
		return Frame{}, nil, false
	}

	tcpLayer := packet.Layer(layers.LayerTypeTCP)
	if tcpLayer == nil {
		return Frame{}, nil, false
	}
	tcp := tcpLayer.(*layers.TCP)

	frame := Frame{
		SrcIP:   networkLayer.NetworkFlow().Src().String(),
		DstIP:   networkLayer.NetworkFlow().Dst().String(),
		SrcPort: int(tcp.SrcPort),
		DstPort: int(tcp.DstPort),
		Payload: tcp.Payload,
	}

	return frame, tcp.Payload, true
}

// extractFacts parses handshake facts from a raw TCP payload. Detection is a
// payload sniff rather than a port check, so TLS on non-standard ports is
// still analyzed.
func extractFacts(payload []byte) []HandshakeFacts {
	if LooksLikeTLS(payload) {
		return ParseRecords(payload)
	}
	return nil
}
