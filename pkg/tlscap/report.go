// Package tlscap implements TLS handshake capture analysis for TLSRaven
// File: pkg/tlscap/report.go
package tlscap

import (
	"encoding/json"
	"fmt"
	"time"
)

// Report is the top-level analysis output.
type Report struct {
	AnalysisMetadata     AnalysisMetadata     `json:"analysis_metadata"`
	VulnerabilitySummary VulnerabilitySummary `json:"vulnerability_summary"`
	Sessions             []SessionRecord      `json:"sessions"`
}

// AnalysisMetadata describes the run that produced the report.
type AnalysisMetadata struct {
	Timestamp          string `json:"timestamp"`
	TotalSessions      int    `json:"total_sessions"`
	VulnerableSessions int    `json:"vulnerable_sessions"`
}

// VulnerabilitySummary counts sessions per flag. The core counters are always
// present; the offered counters appear only when nonzero so the no-findings
// case stays minimal.
type VulnerabilitySummary struct {
	ExportGradeCiphers  int `json:"export_grade_ciphers"`
	RC4Ciphers          int `json:"rc4_ciphers"`
	WeakDHParameters    int `json:"weak_dh_parameters"`
	ExportCipherOffered int `json:"export_cipher_offered,omitempty"`
	RC4CipherOffered    int `json:"rc4_cipher_offered,omitempty"`
}

// SessionRecord is the serialized form of one reconstructed session.
type SessionRecord struct {
	SessionID       string              `json:"session_id"`
	Timestamp       string              `json:"timestamp"`
	TimestampUnix   float64             `json:"timestamp_unix"`
	Connection      ConnectionInfo      `json:"connection"`
	CipherSuites    CipherSuiteInfo     `json:"cipher_suites"`
	DiffieHellman   DiffieHellmanInfo   `json:"diffie_hellman"`
	Vulnerabilities []VulnerabilityFlag `json:"vulnerabilities"`
	IsVulnerable    bool                `json:"is_vulnerable"`
}

// ConnectionInfo is the session's connection tuple in canonical key order.
type ConnectionInfo struct {
	SrcIP   string `json:"src_ip"`
	DstIP   string `json:"dst_ip"`
	SrcPort int    `json:"src_port"`
	DstPort int    `json:"dst_port"`
}

// CipherSuiteInfo carries the offered and selected cipher suites.
type CipherSuiteInfo struct {
	ClientOffered  []CipherRef `json:"client_offered"`
	ServerSelected *CipherRef  `json:"server_selected"`
}

// DiffieHellmanInfo carries the advertised key-exchange groups and the
// recovered DH prime size, when one was seen.
type DiffieHellmanInfo struct {
	SupportedGroups []int    `json:"supported_groups"`
	NamedGroups     []string `json:"named_groups"`
	PrimeSizeBits   *int     `json:"prime_size_bits"`
}

// BuildReport aggregates all reconstructed sessions into the final report.
// Session ordering follows first-sighted order from the session map.
func BuildReport(sessions *SessionMap) *Report {
	records := make([]SessionRecord, 0, sessions.Len())
	summary := VulnerabilitySummary{}
	vulnerable := 0

	for _, session := range sessions.Sessions() {
		record := serializeSession(session)
		records = append(records, record)

		if record.IsVulnerable {
			vulnerable++
		}
		for _, flag := range record.Vulnerabilities {
			switch flag {
			case FlagExportGradeCipher:
				summary.ExportGradeCiphers++
			case FlagRC4Cipher:
				summary.RC4Ciphers++
			case FlagWeakDHParameters:
				summary.WeakDHParameters++
			case FlagExportCipherOffered:
				summary.ExportCipherOffered++
			case FlagRC4CipherOffered:
				summary.RC4CipherOffered++
			}
		}
	}

	return &Report{
		AnalysisMetadata: AnalysisMetadata{
			Timestamp:          formatTimestamp(time.Now()),
			TotalSessions:      sessions.Len(),
			VulnerableSessions: vulnerable,
		},
		VulnerabilitySummary: summary,
		Sessions:             records,
	}
}

// serializeSession converts a session into its report form.
func serializeSession(session *Session) SessionRecord {
	flags := Classify(session)

	offered := make([]CipherRef, 0, len(session.OfferedCiphers))
	for _, id := range session.OfferedCiphers {
		offered = append(offered, NewCipherRef(id))
	}

	var selected *CipherRef
	if session.SelectedCipher != nil {
		ref := NewCipherRef(*session.SelectedCipher)
		selected = &ref
	}

	groups := make([]int, 0, len(session.SupportedGroups))
	namedGroups := make([]string, 0, len(session.SupportedGroups))
	for _, id := range session.SupportedGroups {
		groups = append(groups, int(id))
		namedGroups = append(namedGroups, NamedGroupName(id))
	}

	timestamp := session.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	if flags == nil {
		flags = []VulnerabilityFlag{}
	}

	return SessionRecord{
		SessionID:     session.Key.String(),
		Timestamp:     formatTimestamp(timestamp),
		TimestampUnix: float64(timestamp.UnixNano()) / float64(time.Second),
		Connection: ConnectionInfo{
			SrcIP:   session.Key.A.Addr,
			DstIP:   session.Key.B.Addr,
			SrcPort: session.Key.A.Port,
			DstPort: session.Key.B.Port,
		},
		CipherSuites: CipherSuiteInfo{
			ClientOffered:  offered,
			ServerSelected: selected,
		},
		DiffieHellman: DiffieHellmanInfo{
			SupportedGroups: groups,
			NamedGroups:     namedGroups,
			PrimeSizeBits:   session.DHPrimeBits,
		},
		Vulnerabilities: flags,
		IsVulnerable:    len(flags) > 0,
	}
}

// ToJSON serializes the report as indented UTF-8 JSON.
func (r *Report) ToJSON() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return data, nil
}

// formatTimestamp renders a time as ISO-8601 UTC with a Z suffix.
func formatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.999999Z07:00")
}
