// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/classify.go
package tlscap

import "sort"

// weakDHThresholdBits is the minimum acceptable finite-field DH prime size.
const weakDHThresholdBits = 1024

// Classify derives the vulnerability flags for a session. The result is
// sorted and duplicate-free, and depends only on the session's cryptographic
// parameters, never on endpoint identity.
//
// The offered-cipher flags are suppressed when the corresponding selected
// flag already fires, so a negotiated weak cipher is not double-counted as
// merely offered.
func Classify(session *Session) []VulnerabilityFlag {
	found := make(map[VulnerabilityFlag]bool)

	if session.SelectedCipher != nil {
		if IsExportCipher(*session.SelectedCipher) {
			found[FlagExportGradeCipher] = true
		}
		if IsRC4Cipher(*session.SelectedCipher) {
			found[FlagRC4Cipher] = true
		}
	}

	for _, id := range session.OfferedCiphers {
		if IsExportCipher(id) && !found[FlagExportGradeCipher] {
			found[FlagExportCipherOffered] = true
		}
		if IsRC4Cipher(id) && !found[FlagRC4Cipher] {
			found[FlagRC4CipherOffered] = true
		}
	}

	if session.DHPrimeBits != nil && *session.DHPrimeBits < weakDHThresholdBits {
		found[FlagWeakDHParameters] = true
	}

	flags := make([]VulnerabilityFlag, 0, len(found))
	for flag := range found {
		flags = append(flags, flag)
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i] < flags[j] })

	return flags
}

// IsVulnerable reports whether a session carries at least one flag.
func IsVulnerable(session *Session) bool {
	return len(Classify(session)) > 0
}
