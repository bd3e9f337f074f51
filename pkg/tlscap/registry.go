// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/registry.go
package tlscap

import "fmt"

// CipherSuites maps 16-bit TLS cipher suite identifiers to their IANA names.
// Covers the legacy NULL/export/RC4/DES families alongside the modern CBC,
// GCM, ChaCha20 and TLS 1.3 AEAD suites.
var CipherSuites = map[uint16]string{
	0x0000: "TLS_NULL_WITH_NULL_NULL",
	0x0001: "TLS_RSA_WITH_NULL_MD5",
	0x0002: "TLS_RSA_WITH_NULL_SHA",
	0x0003: "TLS_RSA_EXPORT_WITH_RC4_40_MD5",
	0x0004: "TLS_RSA_WITH_RC4_128_MD5",
	0x0005: "TLS_RSA_WITH_RC4_128_SHA",
	0x0006: "TLS_RSA_EXPORT_WITH_RC2_CBC_40_MD5",
	0x0007: "TLS_RSA_WITH_IDEA_CBC_SHA",
	0x0008: "TLS_RSA_EXPORT_WITH_DES40_CBC_SHA",
	0x0009: "TLS_RSA_WITH_DES_CBC_SHA",
	0x000A: "TLS_RSA_WITH_3DES_EDE_CBC_SHA",
	0x000B: "TLS_DH_DSS_EXPORT_WITH_DES40_CBC_SHA",
	0x000C: "TLS_DH_DSS_WITH_DES_CBC_SHA",
	0x000D: "TLS_DH_DSS_WITH_3DES_EDE_CBC_SHA",
	0x000E: "TLS_DH_RSA_EXPORT_WITH_DES40_CBC_SHA",
	0x000F: "TLS_DH_RSA_WITH_DES_CBC_SHA",
	0x0010: "TLS_DH_RSA_WITH_3DES_EDE_CBC_SHA",
	0x0011: "TLS_DHE_DSS_EXPORT_WITH_DES40_CBC_SHA",
	0x0012: "TLS_DHE_DSS_WITH_DES_CBC_SHA",
	0x0013: "TLS_DHE_DSS_WITH_3DES_EDE_CBC_SHA",
	0x0014: "TLS_DHE_RSA_EXPORT_WITH_DES40_CBC_SHA",
	0x0015: "TLS_DHE_RSA_WITH_DES_CBC_SHA",
	0x0016: "TLS_DHE_RSA_WITH_3DES_EDE_CBC_SHA",
	0x0017: "TLS_DH_anon_EXPORT_WITH_RC4_40_MD5",
	0x0018: "TLS_DH_anon_WITH_RC4_128_MD5",
	0x0019: "TLS_DH_anon_EXPORT_WITH_DES40_CBC_SHA",
	0x001A: "TLS_DH_anon_WITH_DES_CBC_SHA",
	0x001B: "TLS_DH_anon_WITH_3DES_EDE_CBC_SHA",
	0x002F: "TLS_RSA_WITH_AES_128_CBC_SHA",
	0x0033: "TLS_DHE_RSA_WITH_AES_128_CBC_SHA",
	0x0035: "TLS_RSA_WITH_AES_256_CBC_SHA",
	0x0039: "TLS_DHE_RSA_WITH_AES_256_CBC_SHA",
	0x009C: "TLS_RSA_WITH_AES_128_GCM_SHA256",
	0x009D: "TLS_RSA_WITH_AES_256_GCM_SHA384",
	0x1301: "TLS_AES_128_GCM_SHA256",
	0x1302: "TLS_AES_256_GCM_SHA384",
	0x1303: "TLS_CHACHA20_POLY1305_SHA256",
	0xC002: "TLS_ECDH_ECDSA_WITH_RC4_128_SHA",
	0xC007: "TLS_ECDHE_ECDSA_WITH_RC4_128_SHA",
	0xC00C: "TLS_ECDH_RSA_WITH_RC4_128_SHA",
	0xC011: "TLS_ECDHE_RSA_WITH_RC4_128_SHA",
	0xC013: "TLS_ECDHE_RSA_WITH_AES_128_CBC_SHA",
	0xC014: "TLS_ECDHE_RSA_WITH_AES_256_CBC_SHA",
	0xC02F: "TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256",
	0xC030: "TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384",
	0xCCA8: "TLS_ECDHE_RSA_WITH_CHACHA20_POLY1305_SHA256",
	0xCCA9: "TLS_ECDHE_ECDSA_WITH_CHACHA20_POLY1305_SHA256",
}

// ExportCiphers contains the export-grade (40-bit or 56-bit) cipher suite IDs.
var ExportCiphers = map[uint16]bool{
	0x0003: true,
	0x0006: true,
	0x0008: true,
	0x000B: true,
	0x000E: true,
	0x0011: true,
	0x0014: true,
	0x0017: true,
	0x0019: true,
}

// RC4Ciphers contains the RC4-based cipher suite IDs.
var RC4Ciphers = map[uint16]bool{
	0x0003: true,
	0x0004: true,
	0x0005: true,
	0x0017: true,
	0x0018: true,
	0xC002: true,
	0xC007: true,
	0xC00C: true,
	0xC011: true,
}

// SupportedGroups maps named-group identifiers to their names: the legacy
// elliptic curve registry (1-25), the modern Montgomery curves, and the
// RFC 7919 finite-field DH groups.
var SupportedGroups = map[uint16]string{
	1:  "sect163k1",
	2:  "sect163r1",
	3:  "sect163r2",
	4:  "sect193r1",
	5:  "sect193r2",
	6:  "sect233k1",
	7:  "sect233r1",
	8:  "sect239k1",
	9:  "sect283k1",
	10: "sect283r1",
	11: "sect409k1",
	12: "sect409r1",
	13: "sect571k1",
	14: "sect571r1",
	15: "secp160k1",
	16: "secp160r1",
	17: "secp160r2",
	18: "secp192k1",
	19: "secp192r1",
	20: "secp224k1",
	21: "secp224r1",
	22: "secp256k1",
	23: "secp256r1",
	24: "secp384r1",
	25: "secp521r1",
	29: "x25519",
	30: "x448",
	256: "ffdhe2048",
	257: "ffdhe3072",
	258: "ffdhe4096",
	259: "ffdhe6144",
	260: "ffdhe8192",
}

// CipherSuiteName resolves a cipher suite ID to its registry name.
// Unknown IDs never fail the lookup; they render as a placeholder embedding
// the raw identifier.
func CipherSuiteName(id uint16) string {
	if name, exists := CipherSuites[id]; exists {
		return name
	}
	return fmt.Sprintf("UNKNOWN_0x%04X", id)
}

// NamedGroupName resolves a named-group ID to its registry name.
func NamedGroupName(id uint16) string {
	if name, exists := SupportedGroups[id]; exists {
		return name
	}
	return fmt.Sprintf("unknown_%d", id)
}

// CipherHex renders a cipher suite ID as its canonical lowercase hex form.
func CipherHex(id uint16) string {
	return fmt.Sprintf("0x%04x", id)
}

// IsExportCipher reports whether the cipher suite ID is export-grade.
func IsExportCipher(id uint16) bool {
	return ExportCiphers[id]
}

// IsRC4Cipher reports whether the cipher suite ID uses RC4.
func IsRC4Cipher(id uint16) bool {
	return RC4Ciphers[id]
}
