// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/handshake.go
package tlscap

// TLS record content types.
const (
	recordChangeCipherSpec = 0x14
	recordAlert            = 0x15
	recordHandshake        = 0x16
	recordApplicationData  = 0x17
)

const (
	recordHeaderLen    = 5
	handshakeHeaderLen = 4
	extSupportedGroups = 10
)

// LooksLikeTLS reports whether a TCP payload plausibly starts a TLS record.
// The same sniff the capture engine uses for traffic on non-standard ports:
// a known content type followed by a 0x03 major version.
func LooksLikeTLS(payload []byte) bool {
	if len(payload) < 2 {
		return false
	}
	return payload[0] >= recordChangeCipherSpec &&
		payload[0] <= recordApplicationData &&
		payload[1] == 0x03
}

// ParseRecords walks the TLS records in a raw TCP payload and extracts
// handshake facts from each handshake record. Truncated or malformed records
// abort silently: partial results are acceptable and a bad frame must never
// abort the run.
func ParseRecords(data []byte) []HandshakeFacts {
	var facts []HandshakeFacts

	offset := 0
	for offset+recordHeaderLen <= len(data) {
		contentType := data[offset]
		length := int(data[offset+3])<<8 | int(data[offset+4])

		if offset+recordHeaderLen+length > len(data) {
			break
		}

		if contentType == recordHandshake {
			record := data[offset+recordHeaderLen : offset+recordHeaderLen+length]
			if f, ok := parseHandshakeMessage(record); ok {
				facts = append(facts, f)
			}
		}

		offset += recordHeaderLen + length
	}

	return facts
}

// parseHandshakeMessage extracts facts from one handshake record. The record
// is treated as carrying a single message, which holds for the hello and key
// exchange messages this analyzer inspects.
func parseHandshakeMessage(record []byte) (HandshakeFacts, bool) {
	if len(record) < handshakeHeaderLen {
		return HandshakeFacts{}, false
	}

	msgType := MessageType(record[0])
	body := record[handshakeHeaderLen:]

	switch msgType {
	case MsgClientHello:
		return parseClientHello(body)
	case MsgServerHello:
		return parseServerHello(body)
	case MsgServerKeyExchange:
		return parseServerKeyExchange(body)
	default:
		return HandshakeFacts{}, false
	}
}

// parseClientHello decodes the offered cipher suites and, when present, the
// supported_groups extension from a ClientHello body:
// version(2) random(32) session_id_len(1) session_id cipher_len(2) ciphers
// compression_len(1) compression ext_len(2) extensions.
func parseClientHello(body []byte) (HandshakeFacts, bool) {
	facts := HandshakeFacts{Type: MsgClientHello}

	// version + random
	offset := 2 + 32
	if offset >= len(body) {
		return facts, false
	}

	sessionIDLen := int(body[offset])
	offset += 1 + sessionIDLen
	if offset+2 > len(body) {
		return facts, false
	}

	cipherLen := int(body[offset])<<8 | int(body[offset+1])
	offset += 2
	if offset+cipherLen > len(body) {
		return facts, false
	}

	for i := 0; i+1 < cipherLen; i += 2 {
		id := uint16(body[offset+i])<<8 | uint16(body[offset+i+1])
		facts.OfferedCiphers = append(facts.OfferedCiphers, id)
	}
	offset += cipherLen

	// Everything past the cipher list is optional: a truncated tail still
	// yields the offered ciphers already collected.
	if offset+1 > len(body) {
		return facts, true
	}
	compressionLen := int(body[offset])
	offset += 1 + compressionLen

	if offset+2 > len(body) {
		return facts, true
	}
	extensionsLen := int(body[offset])<<8 | int(body[offset+1])
	offset += 2
	if offset+extensionsLen > len(body) {
		return facts, true
	}

	facts.SupportedGroups = parseSupportedGroups(body[offset : offset+extensionsLen])
	return facts, true
}

// parseSupportedGroups walks the extension block and decodes the group IDs
// from the supported_groups extension, if present.
func parseSupportedGroups(extensions []byte) []uint16 {
	offset := 0
	for offset+4 <= len(extensions) {
		extType := uint16(extensions[offset])<<8 | uint16(extensions[offset+1])
		extLen := int(extensions[offset+2])<<8 | int(extensions[offset+3])
		offset += 4

		if offset+extLen > len(extensions) {
			return nil
		}

		if extType == extSupportedGroups {
			ext := extensions[offset : offset+extLen]
			if len(ext) < 2 {
				return nil
			}
			listLen := int(ext[0])<<8 | int(ext[1])
			if 2+listLen > len(ext) {
				return nil
			}

			var groups []uint16
			for i := 2; i+1 < 2+listLen; i += 2 {
				groups = append(groups, uint16(ext[i])<<8|uint16(ext[i+1]))
			}
			return groups
		}

		offset += extLen
	}

	return nil
}

// parseServerHello decodes the selected cipher suite from a ServerHello body,
// which mirrors the ClientHello layout up through the session ID and is
// followed by the single selected cipher.
func parseServerHello(body []byte) (HandshakeFacts, bool) {
	facts := HandshakeFacts{Type: MsgServerHello}

	offset := 2 + 32
	if offset >= len(body) {
		return facts, false
	}

	sessionIDLen := int(body[offset])
	offset += 1 + sessionIDLen
	if offset+2 > len(body) {
		return facts, false
	}

	facts.SelectedCipher = uint16(body[offset])<<8 | uint16(body[offset+1])
	return facts, true
}

// parseServerKeyExchange recovers a DH prime size from a ServerKeyExchange
// body. The first two body bytes are read as the prime's byte length. This is
// a best-effort heuristic, not an RFC-accurate decode: the real message
// layout varies with the negotiated cipher suite.
func parseServerKeyExchange(body []byte) (HandshakeFacts, bool) {
	if len(body) < 2 {
		return HandshakeFacts{}, false
	}

	primeLen := int(body[0])<<8 | int(body[1])
	return HandshakeFacts{
		Type:        MsgServerKeyExchange,
		DHPrimeBits: primeLen * 8,
	}, true
}
