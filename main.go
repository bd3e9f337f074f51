package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ajkula/tlsraven/cmd/analyze"
	"github.com/ajkula/tlsraven/pkg/config"
)

var (
	// Version information
	Version   = "1.0.0"
	BuildTime = "development"
	GitCommit = "unknown"

	// Global flags
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	noBanner   bool
)

// ASCII Art Banner
const banner = `
████████╗██╗     ███████╗██████╗  █████╗ ██╗   ██╗███████╗███╗   ██╗
╚══██╔══╝██║     ██╔════╝██╔══██╗██╔══██╗██║   ██║██╔════╝████╗  ██║
   ██║   ██║     ███████╗██████╔╝███████║██║   ██║█████╗  ██╔██╗ ██║
   ██║   ██║     ╚════██║██╔══██╗██╔══██║╚██╗ ██╔╝██╔══╝  ██║╚██╗██║
   ██║   ███████╗███████║██║  ██║██║  ██║ ╚████╔╝ ███████╗██║ ╚████║
   ╚═╝   ╚══════╝╚══════╝╚═╝  ╚═╝╚═╝  ╚═╝  ╚═══╝  ╚══════╝╚═╝  ╚═══╝

            TLS Handshake Security Analyzer for Packet Captures
                            Version %s | Build %s
`

// Colors for terminal output
const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"
	ColorCyan   = "\033[36m"
	ColorBold   = "\033[1m"
)

// printBanner displays the TLSRaven banner
func printBanner() {
	if noBanner || quiet {
		return
	}

	color := ""
	if !noColor {
		color = ColorCyan + ColorBold
	}

	fmt.Fprintf(os.Stderr, color+banner+ColorReset+"\n", Version, BuildTime)
}

// printError prints error messages with proper formatting
func printError(err error) {
	color := ""
	if !noColor {
		color = ColorRed + ColorBold
	}
	fmt.Fprintf(os.Stderr, color+"[ERROR] %v"+ColorReset+"\n", err)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tlsraven",
	Short: "TLS handshake security analyzer for packet captures",
	Long: `TLSRaven inspects TLS handshakes in packet capture files and reports
weak cryptographic configurations.

It reconstructs handshake sessions across directional packet streams and
flags:
• Export-grade cipher suites (selected or offered)
• RC4 cipher suites (selected or offered)
• Weak Diffie-Hellman parameters (< 1024-bit primes)

Two analysis backends are available: an external tshark dissection and a
built-in gopacket decoder. Auto mode tries tshark first and falls back to
gopacket when the tool is missing or fails.`,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Handle config initialization first
		if initConfig, _ := cmd.Flags().GetBool("init-config"); initConfig {
			return createDefaultConfig()
		}

		// Print banner for all commands except help
		if cmd.Name() != "help" && cmd.Name() != "completion" {
			printBanner()
		}

		// Initialize configuration
		return initConfig()
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: show help
		return cmd.Help()
	},
}

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <pcap-file>",
	Short: "Analyze a packet capture for TLS security issues",
	Long: `Analyze a packet capture file for TLS security vulnerabilities and
generate a structured JSON report.

The analyzer reconstructs TLS sessions from ClientHello/ServerHello pairs,
classifies cryptographic weaknesses per session, and aggregates them into a
vulnerability summary.

Example usage:
  tlsraven analyze capture.pcap
  tlsraven analyze capture.pcap -o findings.json
  tlsraven analyze capture.pcap --method tshark
  tlsraven analyze capture.pcap -o - > report.json`,

	Args: cobra.ExactArgs(1),
	RunE: analyze.Execute,
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `Display detailed version and build information for TLSRaven.`,

	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("TLSRaven TLS Security Analyzer\n")
		fmt.Printf("Version: %s\n", Version)
		fmt.Printf("Build Time: %s\n", BuildTime)
		fmt.Printf("Git Commit: %s\n", GitCommit)
	},
}

// initConfig reads in config file and ENV variables if set
func initConfig() error {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		// Search for config in common locations
		viper.SetConfigName("tlsraven")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME/.tlsraven")
		viper.AddConfigPath("/etc/tlsraven/")
	}

	// Environment variables
	viper.SetEnvPrefix("TLSRAVEN")
	viper.AutomaticEnv()

	// Read configuration
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is fine, defaults apply
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// setupCommands configures all CLI commands and flags
func setupCommands() {
	// Add subcommands to root
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(versionCmd)

	// Global persistent flags
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "",
		"config file (default is ./tlsraven.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"verbose diagnostic output on stderr")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"quiet output (errors only)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false,
		"disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noBanner, "no-banner", false,
		"disable banner display")
	rootCmd.PersistentFlags().Bool("init-config", false,
		"create default configuration file (tlsraven.yaml)")

	// Analyze command specific flags
	analyzeCmd.Flags().StringP("output", "o", "",
		"report output path, \"-\" for stdout (default report.json)")
	analyzeCmd.Flags().StringP("method", "m", "",
		"analysis backend: auto, gopacket, tshark (default auto)")
}

// main is the entry point for TLSRaven
func main() {
	// Setup all commands and flags
	setupCommands()

	// Execute the CLI
	if err := rootCmd.Execute(); err != nil {
		printError(err)
		os.Exit(1)
	}
}

// createDefaultConfig creates a default configuration file
func createDefaultConfig() error {
	const defaultConfigContent = `# TLSRaven Configuration File
# TLS Handshake Security Analyzer

# Analysis Configuration
analyzer:
  backend: "auto"        # Options: auto, gopacket, tshark
                         # auto tries tshark first, then falls back to gopacket

# External tshark tool
tshark:
  path: "tshark"         # Executable name or absolute path
  timeout: 60s           # Timeout for a single tshark invocation

# Output Configuration
output:
  file: "report.json"    # Default report path ("-" writes to stdout)
  colors: true           # Colored terminal output
  show_banner: true      # Show ASCII art banner
`

	// Write configuration file
	filename := config.DefaultConfigFilename
	if err := os.WriteFile(filename, []byte(defaultConfigContent), 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	fmt.Printf("Default configuration file created: %s\n", filename)
	fmt.Printf("Run 'tlsraven analyze <pcap-file>' to analyze a capture\n")

	return nil
}
