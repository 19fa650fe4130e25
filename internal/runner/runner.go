// SPDX-License-Identifier: Apache-2.0
// Package runner ties configuration loading, jar location and command line
// assembly together for the firestarter command.
package runner

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/fatboyindustrial/firestarter/internal/rootenv"
	"github.com/fatboyindustrial/firestarter/pkg/config"
	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
	"github.com/fatboyindustrial/firestarter/pkg/firestarter"
	"github.com/fatboyindustrial/firestarter/pkg/locator"
)

// Exit codes for different error types
const (
	ExitOK               = 0
	ExitFailure          = 1
	ExitPanic            = 101
	ExitJarNotFound      = 102
	ExitConfigInvalid    = 103
	ExitEnvironmentUnset = 104
	ExitInvalidArgs      = 105
	ExitIOError          = 106
)

// Options configures a single run.
type Options struct {
	RootVar         string        // name of the environment variable holding the search root
	ConfigPath      string        // configuration file
	Format          config.Format // FormatAuto detects from the extension
	HeapDiagnostics bool

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv rootenv.LookupFunc
}

// Run loads the configuration, resolves the search root and writes one
// command line per VM to out, in declaration order. The first failure
// aborts the run; lines already written for earlier VMs stay written.
func Run(opts Options, out io.Writer, logger hclog.Logger) error {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.With("run", uuid.NewString())

	cfg, err := config.Load(opts.ConfigPath, opts.Format)
	if err != nil {
		logger.Error("❌ Failed to load configuration", "path", opts.ConfigPath, "error", err)
		return err
	}
	logger.Info("📄 Configuration loaded", "name", cfg.Name(), "jvms", len(cfg.Jvms()))

	root, err := rootenv.Resolve(opts.RootVar, opts.LookupEnv)
	if err != nil {
		logger.Error("❌ Failed to resolve search root", "variable", opts.RootVar, "error", err)
		return err
	}
	logger.Debug("📁 Search root", "variable", opts.RootVar, "path", root)

	loc, err := locator.NewDepthFirst(root, logger)
	if err != nil {
		return err
	}

	assembler := &firestarter.Assembler{
		Locator:         loc,
		Logger:          logger,
		HeapDiagnostics: opts.HeapDiagnostics,
		LookupEnv:       opts.LookupEnv,
	}
	params := firestarter.NewParameters(cfg.Parameters())

	for _, vm := range cfg.Jvms() {
		tokens, err := assembler.Process(cfg.Name(), params, vm)
		if err != nil {
			return fmt.Errorf("vm %s: %w", vm.Name(), err)
		}
		if _, err := fmt.Fprintln(out, firestarter.Line(tokens)); err != nil {
			return fmt.Errorf("writing command line for %s: %w", vm.Name(), err)
		}
		logger.Info("🚀 Command line written", "vm", vm.Name())
	}

	return nil
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, fserrors.ErrJarNotFound):
		return ExitJarNotFound
	case errors.Is(err, fserrors.ErrConfigInvalid):
		return ExitConfigInvalid
	case errors.Is(err, fserrors.ErrEnvironmentNotSet):
		return ExitEnvironmentUnset
	case errors.Is(err, fserrors.ErrInvalidArgs):
		return ExitInvalidArgs
	case errors.Is(err, fserrors.ErrFilesystemAccess):
		return ExitIOError
	default:
		return ExitFailure
	}
}
