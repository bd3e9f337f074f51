package analyze

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ajkula/tlsraven/pkg/config"
	"github.com/ajkula/tlsraven/pkg/tlscap"
)

// Execute runs the capture analysis command
func Execute(cmd *cobra.Command, args []string) error {
	pcapPath := args[0]

	// Get command flags
	outputFile, _ := cmd.Flags().GetString("output")
	method, _ := cmd.Flags().GetString("method")

	// Get global flags
	verbose, _ := cmd.Root().PersistentFlags().GetBool("verbose")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	noColor, _ := cmd.Root().PersistentFlags().GetBool("no-color")
	configFile, _ := cmd.Root().PersistentFlags().GetString("config")

	// Load configuration
	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Flags override configured defaults
	if method == "" {
		method = cfg.Analyzer.Backend
	}
	if method == "" {
		method = tlscap.MethodAuto
	}
	if outputFile == "" {
		outputFile = cfg.Output.File
	}

	// Validate input file before any backend work
	if _, err := os.Stat(pcapPath); err != nil {
		return fmt.Errorf("capture file not found: %s", pcapPath)
	}

	session := newAnalysisSession(cfg, method)
	if verbose {
		session.analyzer.Diag = os.Stderr
	}

	if !quiet {
		printInfo(fmt.Sprintf("Analyzing capture file: %s (backend: %s)", pcapPath, method), noColor)
	}

	sessions, err := session.Run(context.Background(), pcapPath)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	report := tlscap.BuildReport(sessions)

	if err := writeReport(report, outputFile); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if outputFile != stdoutPath && !quiet {
		displayReportSummary(report, verbose, noColor)
		printSuccess(fmt.Sprintf("Report generated: %s", outputFile), noColor)
	}

	return nil
}

// stdoutPath selects standard output instead of a report file.
const stdoutPath = "-"

// AnalysisSession wires the backend pair behind the configured selection
// policy for one analyzer invocation.
type AnalysisSession struct {
	analyzer *tlscap.Analyzer
	method   string
}

// newAnalysisSession creates the session with both standard backends.
func newAnalysisSession(cfg *config.Config, method string) *AnalysisSession {
	tshark := tlscap.NewTsharkBackend(cfg.Tshark.Path, cfg.Tshark.Timeout)
	gopacket := tlscap.NewGopacketBackend()

	return &AnalysisSession{
		analyzer: tlscap.NewAnalyzer(tshark, gopacket),
		method:   method,
	}
}

// Run executes the analysis pipeline against one capture file.
func (s *AnalysisSession) Run(ctx context.Context, pcapPath string) (*tlscap.SessionMap, error) {
	return s.analyzer.Run(ctx, pcapPath, s.method)
}

// writeReport serializes the report to the output path, or to stdout when the
// path is "-".
func writeReport(report *tlscap.Report, outputFile string) error {
	data, err := report.ToJSON()
	if err != nil {
		return err
	}

	if outputFile == stdoutPath {
		fmt.Println(string(data))
		return nil
	}

	dir := filepath.Dir(outputFile)
	if dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(outputFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return nil
}
