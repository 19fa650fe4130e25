package main

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"

	"github.com/fatboyindustrial/firestarter/internal/runner"
	"github.com/fatboyindustrial/firestarter/pkg/config"
	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
	"github.com/fatboyindustrial/firestarter/pkg/logging"
)

const version = "0.3.0"

var (
	logLevel        string
	formatName      string
	heapDiagnostics bool
	versionFlag     bool
)

func getBuildTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firestarter <root env name> <config>",
		Short: "Print java command lines for the JVMs in a configuration",
		Long: `Print one java command line per JVM in a configuration file.

Jars are searched for beneath the directory named by the environment
variable <root env name>. The configuration may be legacy JSON (with
${KEY} parameters) or hierarchical TOML, YAML or HCL.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if versionFlag {
				fmt.Fprintf(stdout, "firestarter %s\n", version)
				fmt.Fprintf(stdout, "Built: %s\n", getBuildTimestamp())
				return nil
			}
			if len(args) != 2 {
				return fmt.Errorf("%w: expected <root env name> <config>, got %d argument(s)\n%s",
					fserrors.ErrInvalidArgs, len(args), cmd.UseLine())
			}
			return launch(args[0], args[1], stdout, stderr)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", fserrors.ErrInvalidArgs, err)
	})
	cmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error); prefix with json: for JSON logs")
	cmd.Flags().StringVar(&formatName, "format", "auto", "Config format (auto, json, toml, yaml, hcl)")
	cmd.Flags().BoolVar(&heapDiagnostics, "heap-diagnostics", false, "Add G1 and heap-dump-on-OOM flags (dump path from FIRESTARTER_HEAPDUMP_PATH)")
	cmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	return cmd
}

func launch(rootVar, configPath string, stdout, stderr io.Writer) error {
	format, err := config.ParseFormat(formatName)
	if err != nil {
		return err
	}

	output, closeLog := logging.Output(stderr)
	defer closeLog()

	level, source := logging.ResolveLevel(logLevel)
	logger := logging.NewLogger("firestarter", level, output)
	logger.Debug("Log level", "level", level, "source", source)

	return runner.Run(runner.Options{
		RootVar:         rootVar,
		ConfigPath:      configPath,
		Format:          format,
		HeapDiagnostics: heapDiagnostics,
	}, stdout, logger)
}

func main() {
	// Set up panic recovery to return specific exit code
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "PANIC: %v\n", r)
			debug.PrintStack()
			os.Exit(runner.ExitPanic)
		}
	}()

	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(runner.ExitCode(err))
	}
}
