package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/deuce-x/deuce/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌┬┐┌─┐┬ ┬┌─┐┌─┐
   ││├┤ │ ││  ├┤
  ─┴┘└─┘└─┘└─┘└─┘
`

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		errors.PrintError(os.Stderr, errors.FromError(err, "D302"))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:   "deuce",
		Short: "A minimal UI rendering runtime",
		Long: `deuce renders trees of elements into a live document.

Elements can be text, intrinsic nodes, lists, futures and streams;
every asynchronous part updates its own place in the document as it
settles or produces new values.

The demos show what the runtime can do. Print their output with
"deuce run", or open them in a browser with "deuce serve".`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file (default: deuce.json/.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&flags.logFormat, "log-format", "", "Log format: text or json (default from config)")

	rootCmd.AddCommand(
		runCmd(&flags),
		serveCmd(&flags),
		demosCmd(),
		versionCmd(),
	)

	return rootCmd
}

// printBanner prints the deuce ASCII art banner.
func printBanner(w io.Writer) {
	fmt.Fprint(w, banner)
}

// success prints a success message.
func success(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, "  %s\n", fmt.Sprintf(format, args...))
}
