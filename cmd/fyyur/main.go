// Package main provides a CLI for the Fyyur venue endpoints.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/fyyur/venues-client/pkg/api"
	"github.com/fyyur/venues-client/pkg/client"
)

const defaultBaseURL = "http://localhost:5000"

var (
	// Global flags
	apiURL       string
	timeout      time.Duration
	jsonOutput   bool
	strictStatus bool
	logFormat    string
	verbose      bool
	envFile      string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "fyyur",
	Short: "Fyyur venues CLI",
	Long: `A command-line client for the Fyyur venue endpoints.

This tool allows you to:
  - Delete venues
  - Parse the timestamps shown on venue and show pages
  - List the endpoints the client talks to

Environment variables (also read from a .env file):
  FYYUR_URL - API base URL (default: http://localhost:5000)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadEnvFile(envFile)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "url", "", "API base URL (or FYYUR_URL env, default: http://localhost:5000)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().BoolVar(&strictStatus, "strict-status", false, "Treat non-2xx responses as failures")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "Diagnostic log format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")

	rootCmd.AddCommand(venueCmd)
	rootCmd.AddCommand(timestampCmd)
	rootCmd.AddCommand(routesCmd)
}

// loadEnvFile loads path into the environment without overriding
// variables that are already set. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getBaseURL returns the API base URL from flags or environment
func getBaseURL() string {
	if apiURL != "" {
		return apiURL
	}
	if url := os.Getenv("FYYUR_URL"); url != "" {
		return url
	}
	return defaultBaseURL
}

// newClient creates a new API client
func newClient() (*client.Client, error) {
	opts := []client.Option{client.WithTimeout(timeout)}
	if strictStatus {
		opts = append(opts, client.WithStrictStatus())
	}
	return client.New(getBaseURL(), opts...)
}

// newLogger builds the diagnostic logger
func newLogger(w io.Writer) (*slog.Logger, error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}

	switch logFormat {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (use text or json)", logFormat)
	}
}

// outputJSON prints the value as JSON
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Routes command
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List API endpoints",
	Long:  "Lists the endpoints described by the embedded OpenAPI document.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ops, err := api.Operations()
		if err != nil {
			return fmt.Errorf("failed to load API description: %w", err)
		}

		out := cmd.OutOrStdout()
		if jsonOutput {
			return outputJSON(out, map[string]any{"operations": ops})
		}

		for _, op := range ops {
			fmt.Fprintf(out, "%-7s %-22s %s\n", op.Method, op.Path, op.Summary)
		}
		return nil
	},
}
