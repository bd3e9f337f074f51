package tlscap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCipherSuiteName(t *testing.T) {
	assert.Equal(t, "TLS_RSA_EXPORT_WITH_RC4_40_MD5", CipherSuiteName(0x0003))
	assert.Equal(t, "TLS_RSA_WITH_AES_128_CBC_SHA", CipherSuiteName(0x002F))
	assert.Equal(t, "TLS_AES_128_GCM_SHA256", CipherSuiteName(0x1301))
	assert.Equal(t, "UNKNOWN_0xBEEF", CipherSuiteName(0xBEEF))
}

func TestCipherHex(t *testing.T) {
	assert.Equal(t, "0x0003", CipherHex(0x0003))
	assert.Equal(t, "0xc011", CipherHex(0xC011))
	assert.Equal(t, "0x1301", CipherHex(0x1301))
}

func TestNamedGroupName(t *testing.T) {
	assert.Equal(t, "secp256r1", NamedGroupName(23))
	assert.Equal(t, "x25519", NamedGroupName(29))
	assert.Equal(t, "x448", NamedGroupName(30))
	assert.Equal(t, "ffdhe2048", NamedGroupName(256))
	assert.Equal(t, "unknown_9999", NamedGroupName(9999))
}

func TestExportCipherSet(t *testing.T) {
	for id := range ExportCiphers {
		assert.Contains(t, CipherSuiteName(id), "EXPORT", "cipher 0x%04x", id)
	}

	assert.True(t, IsExportCipher(0x0003))
	assert.True(t, IsExportCipher(0x0006))
	assert.False(t, IsExportCipher(0x002F))
	assert.False(t, IsExportCipher(0x1301))
}

func TestRC4CipherSet(t *testing.T) {
	for id := range RC4Ciphers {
		assert.Contains(t, CipherSuiteName(id), "RC4", "cipher 0x%04x", id)
	}

	assert.True(t, IsRC4Cipher(0x0004))
	assert.True(t, IsRC4Cipher(0x0005))
	assert.True(t, IsRC4Cipher(0xC011))
	assert.False(t, IsRC4Cipher(0x002F))
}

func TestRegistryNamesWellFormed(t *testing.T) {
	for id, name := range CipherSuites {
		assert.True(t, strings.HasPrefix(name, "TLS_"), "cipher 0x%04x has name %q", id, name)
	}
}
