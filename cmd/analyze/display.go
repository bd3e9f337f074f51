package analyze

import (
	"fmt"
	"os"

	"github.com/ajkula/tlsraven/pkg/tlscap"
)

// Colors for terminal output (consistent with main.go)
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// displayReportSummary prints the analysis results to stdout
func displayReportSummary(report *tlscap.Report, verbose, noColor bool) {
	printSectionHeader("TLS SECURITY ANALYSIS RESULTS", noColor)

	fmt.Printf("Total Sessions: %d\n", report.AnalysisMetadata.TotalSessions)
	fmt.Printf("Vulnerable Sessions: %d\n", report.AnalysisMetadata.VulnerableSessions)
	fmt.Println()

	summary := report.VulnerabilitySummary
	fmt.Printf("Export-Grade Ciphers Selected: %d\n", summary.ExportGradeCiphers)
	fmt.Printf("RC4 Ciphers Selected: %d\n", summary.RC4Ciphers)
	fmt.Printf("Weak DH Parameters: %d\n", summary.WeakDHParameters)
	if summary.ExportCipherOffered > 0 {
		fmt.Printf("Export-Grade Ciphers Offered: %d\n", summary.ExportCipherOffered)
	}
	if summary.RC4CipherOffered > 0 {
		fmt.Printf("RC4 Ciphers Offered: %d\n", summary.RC4CipherOffered)
	}
	fmt.Println()

	if vulnerable := report.AnalysisMetadata.VulnerableSessions; vulnerable > 0 {
		printWarning(fmt.Sprintf("%d vulnerable session(s) detected", vulnerable), noColor)
	}

	if verbose {
		displayVulnerableSessions(report, noColor)
	}
}

// displayVulnerableSessions lists each flagged session with its findings
func displayVulnerableSessions(report *tlscap.Report, noColor bool) {
	if report.AnalysisMetadata.VulnerableSessions == 0 {
		printInfo("No vulnerable sessions detected", noColor)
		return
	}

	printSectionHeader("VULNERABLE SESSIONS", noColor)

	for _, session := range report.Sessions {
		if !session.IsVulnerable {
			continue
		}

		fmt.Printf("  %s\n", session.SessionID)
		if session.CipherSuites.ServerSelected != nil {
			fmt.Printf("    Selected: %s (%s)\n",
				session.CipherSuites.ServerSelected.Name,
				session.CipherSuites.ServerSelected.ID)
		}
		if session.DiffieHellman.PrimeSizeBits != nil {
			fmt.Printf("    DH Prime: %d bits\n", *session.DiffieHellman.PrimeSizeBits)
		}
		for _, flag := range session.Vulnerabilities {
			color := ""
			if !noColor {
				color = ColorRed
			}
			fmt.Printf("    %s[%s]%s\n", color, flag, colorReset(noColor))
		}
		fmt.Println()
	}
}

// Utility functions

func colorReset(noColor bool) string {
	if noColor {
		return ""
	}
	return ColorReset
}

func printSectionHeader(title string, noColor bool) {
	if noColor {
		fmt.Printf("\n=== %s ===\n\n", title)
	} else {
		fmt.Printf("\n%s%s=== %s ===%s\n\n", ColorCyan, ColorBold, title, ColorReset)
	}
}

func printSuccess(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorGreen + ColorBold
	}
	fmt.Printf("%s[SUCCESS] %s%s\n", color, message, colorReset(noColor))
}

func printInfo(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorBlue
	}
	fmt.Fprintf(os.Stderr, "%s[INFO] %s%s\n", color, message, colorReset(noColor))
}

func printWarning(message string, noColor bool) {
	color := ""
	if !noColor {
		color = ColorYellow + ColorBold
	}
	fmt.Fprintf(os.Stderr, "%s[WARNING] %s%s\n", color, message, colorReset(noColor))
}
