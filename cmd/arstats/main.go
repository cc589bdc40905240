package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/harness/ar-stats/cmd/cmdutils"
	"github.com/harness/ar-stats/internal/style"
	"github.com/harness/ar-stats/internal/terminal"
	"github.com/harness/ar-stats/internal/tui"

	"github.com/MakeNowJust/heredoc"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// version is set via ldflags during build
var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		if sig == syscall.SIGTERM {
			fmt.Fprintln(os.Stderr, "\nReceived termination signal (SIGTERM), finishing the current repository...")
		} else {
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, finishing the current repository... (press Ctrl-C again to force quit)")
		}
		cancel()

		<-sigChan
		fmt.Fprintln(os.Stderr, "\nForce quitting...")
		os.Exit(130)
	}()

	var noColor bool
	rootCmd := newRootCmd(cmdutils.NewFactory(), &noColor)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		termInfo := terminal.Detect(noColor)
		if termInfo.StderrIsTerminal && termInfo.ColorEnabled {
			fmt.Fprintln(os.Stderr, style.ErrorIcon()+" "+style.Error.Render(err.Error()))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd(f *cmdutils.Factory, noColor *bool) *cobra.Command {
	var verbose bool
	var termInfo terminal.Info

	rootCmd := &cobra.Command{
		Use:           "arstats",
		Short:         "Usage statistics reports for Artifactory repositories",
		SilenceUsage:  true,
		SilenceErrors: true, //prevent duplicate printing of errors
		Long: heredoc.Doc(`
			arstats queries the Artifactory AQL search API for every item in one or
			more repositories and writes one Excel report per repository, with a
			Data sheet, a Summary sheet and a Graphs sheet of upload charts.

			Connection settings are read from flags, then ARTIFACTORY_* environment
			variables (a .env file is loaded if present), then an optional YAML
			config file.
		`),
		Example: heredoc.Doc(`
			$ arstats report --artifactory-url https://example.jfrog.io/artifactory \
			    --username admin --password "$TOKEN" libs-release libs-snapshot
			$ REPOSITORY_NAMES=libs-release arstats report --summary-format json
			$ arstats query docker-local
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			termInfo = terminal.Detect(*noColor)
			style.Init(termInfo.ColorEnabled)

			if verbose {
				log.Logger = log.Output(zerolog.ConsoleWriter{
					Out:        f.ErrOut,
					TimeFormat: time.RFC3339,
					NoColor:    !termInfo.ColorEnabled,
				})
			} else {
				// Disable logging when verbose is not enabled
				log.Logger = zerolog.Nop()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging to console")
	rootCmd.PersistentFlags().BoolVar(noColor, "no-color", false,
		"Disable colour output (also respects NO_COLOR env)")

	rootCmd.AddCommand(reportCmd(f, &termInfo))
	rootCmd.AddCommand(queryCmd(f))
	rootCmd.AddCommand(versionCmd(f))

	termPreCheck := terminal.Detect(*noColor)
	style.Init(termPreCheck.ColorEnabled)
	if helpTpl := tui.StyledHelpTemplate(); helpTpl != "" {
		rootCmd.SetUsageTemplate(helpTpl)
	}

	return rootCmd
}

// versionCmd returns the version command
func versionCmd(f *cmdutils.Factory) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of arstats",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if style.Enabled {
				fmt.Fprintln(f.Out, style.Banner())
			}
			fmt.Fprintf(f.Out, "arstats version %s\n", version)
			fmt.Fprintf(f.Out, "Built with %s\n", runtime.Version())
		},
	}
}
