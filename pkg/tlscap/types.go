// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/types.go
package tlscap

import (
	"fmt"
	"time"
)

// Frame represents one captured packet as produced by a capture backend.
// It carries only what session reconstruction needs: timing, the connection
// tuple, and the raw application payload (nil when the packet had none).
type Frame struct {
	Timestamp time.Time
	SrcIP     string
	DstIP     string
	SrcPort   int
	DstPort   int
	Payload   []byte
}

// Endpoint identifies one side of a TCP connection.
type Endpoint struct {
	Addr string
	Port int
}

// String renders the endpoint as addr:port.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s:%d", e.Addr, e.Port)
}

// less imposes a total order on endpoints: address first, then port.
func (e Endpoint) less(other Endpoint) bool {
	if e.Addr != other.Addr {
		return e.Addr < other.Addr
	}
	return e.Port < other.Port
}

// SessionKey is the direction-independent identity of a TLS session.
// The constructor enforces A <= B, so traffic seen client->server and
// server->client resolves to the same key regardless of which direction is
// inspected first.
type SessionKey struct {
	A Endpoint
	B Endpoint
}

// NewSessionKey builds the canonical key for a connection tuple.
func NewSessionKey(src, dst Endpoint) SessionKey {
	if dst.less(src) {
		src, dst = dst, src
	}
	return SessionKey{A: src, B: dst}
}

// String renders the key in the session identity format addr:port-addr:port.
func (k SessionKey) String() string {
	return fmt.Sprintf("%s-%s", k.A, k.B)
}

// MessageType is a TLS handshake message type code.
type MessageType byte

// Handshake message types the analyzer cares about.
const (
	MsgClientHello       MessageType = 1
	MsgServerHello       MessageType = 2
	MsgServerKeyExchange MessageType = 12
)

// HandshakeFacts holds the structured facts extracted from one handshake
// message. Only the fields relevant to the message type are populated.
type HandshakeFacts struct {
	Type MessageType

	// ClientHello
	OfferedCiphers  []uint16
	SupportedGroups []uint16

	// ServerHello
	SelectedCipher uint16

	// ServerKeyExchange heuristic
	DHPrimeBits int
}

// Session is the mutable record of one TLS handshake exchange, accumulated
// in capture order. Fields follow last-write-wins semantics where the wire
// protocol would make repeats abnormal but must not crash.
type Session struct {
	Key SessionKey

	// Offered by the client, in ClientHello order. Duplicates are preserved.
	OfferedCiphers []uint16

	// Selected by the server; nil until a ServerHello is seen.
	SelectedCipher *uint16

	// Key-exchange groups advertised in the ClientHello extension.
	SupportedGroups []uint16

	// Recovered DH prime size in bits; nil unless the ServerKeyExchange
	// heuristic fired.
	DHPrimeBits *int

	// Capture time of the ClientHello, or of the first sighting when no
	// ClientHello was observed.
	Timestamp time.Time
}

// VulnerabilityFlag identifies one detected cryptographic weakness.
type VulnerabilityFlag string

// The closed set of vulnerability flags a session can carry.
const (
	FlagExportGradeCipher   VulnerabilityFlag = "EXPORT_GRADE_CIPHER"
	FlagRC4Cipher           VulnerabilityFlag = "RC4_CIPHER"
	FlagWeakDHParameters    VulnerabilityFlag = "WEAK_DH_PARAMETERS"
	FlagExportCipherOffered VulnerabilityFlag = "EXPORT_CIPHER_OFFERED"
	FlagRC4CipherOffered    VulnerabilityFlag = "RC4_CIPHER_OFFERED"
)

// CipherRef is the serialized form of a cipher suite reference.
type CipherRef struct {
	ID    string `json:"id"`
	IDInt int    `json:"id_int"`
	Name  string `json:"name"`
}

// NewCipherRef resolves a cipher suite ID into its serialized reference.
func NewCipherRef(id uint16) CipherRef {
	return CipherRef{
		ID:    CipherHex(id),
		IDInt: int(id),
		Name:  CipherSuiteName(id),
	}
}
