package analyze

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajkula/tlsraven/pkg/tlscap"
)

// captureOutput runs fn with stdout and stderr redirected to pipes and
// returns what was written to each.
func captureOutput(t *testing.T, fn func()) (string, string) {
	t.Helper()

	oldOut, oldErr := os.Stdout, os.Stderr
	outR, outW, err := os.Pipe()
	require.NoError(t, err)
	errR, errW, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = outW, errW
	fn()
	os.Stdout, os.Stderr = oldOut, oldErr
	outW.Close()
	errW.Close()

	stdout, _ := io.ReadAll(outR)
	stderr, _ := io.ReadAll(errR)
	return string(stdout), string(stderr)
}

func buildTestReport(t *testing.T, selected uint16) *tlscap.Report {
	t.Helper()

	sm := tlscap.NewSessionMap()
	sm.Observe(tlscap.Frame{SrcIP: "192.168.1.10", DstIP: "10.0.0.1", SrcPort: 54321, DstPort: 443},
		tlscap.HandshakeFacts{Type: tlscap.MsgClientHello, OfferedCiphers: []uint16{selected}})
	sm.Observe(tlscap.Frame{SrcIP: "10.0.0.1", DstIP: "192.168.1.10", SrcPort: 443, DstPort: 54321},
		tlscap.HandshakeFacts{Type: tlscap.MsgServerHello, SelectedCipher: selected})
	return tlscap.BuildReport(sm)
}

func TestDisplayReportSummaryWarnsOnVulnerableSessions(t *testing.T) {
	report := buildTestReport(t, 0x0003)

	stdout, stderr := captureOutput(t, func() {
		displayReportSummary(report, false, true)
	})

	assert.Contains(t, stdout, "Total Sessions: 1")
	assert.Contains(t, stdout, "Vulnerable Sessions: 1")
	assert.Contains(t, stderr, "[WARNING] 1 vulnerable session(s) detected")
}

func TestDisplayReportSummaryCleanCapture(t *testing.T) {
	report := buildTestReport(t, 0x1301)

	stdout, stderr := captureOutput(t, func() {
		displayReportSummary(report, false, true)
	})

	assert.Contains(t, stdout, "Vulnerable Sessions: 0")
	assert.NotContains(t, stderr, "[WARNING]")
}

func TestDisplayReportSummaryVerboseListsSessions(t *testing.T) {
	report := buildTestReport(t, 0x0003)

	stdout, _ := captureOutput(t, func() {
		displayReportSummary(report, true, true)
	})

	assert.Contains(t, stdout, "10.0.0.1:443-192.168.1.10:54321")
	assert.Contains(t, stdout, "EXPORT_GRADE_CIPHER")
	assert.Contains(t, stdout, "TLS_RSA_EXPORT_WITH_RC4_40_MD5")
}
