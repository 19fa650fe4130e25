// SPDX-License-Identifier: Apache-2.0
// Package firestarter assembles JVM command lines from VM configurations.
package firestarter

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/fatboyindustrial/firestarter/pkg/config"
	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
	"github.com/fatboyindustrial/firestarter/pkg/locator"
)

const (
	// Interpreter is the command used to start a JVM.
	Interpreter = "java"

	// VmNameProperty identifies the VM to tools such as jps and ps.
	VmNameProperty = "firestarter.vmname"

	// HeapDumpPathEnv names the directory for heap dumps when heap
	// diagnostics are enabled.
	HeapDumpPathEnv = "FIRESTARTER_HEAPDUMP_PATH"
)

// JarNotFoundError reports a jar that is not present under the search root.
type JarNotFoundError struct {
	Filename string
}

func (e *JarNotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", fserrors.ErrJarNotFound, e.Filename)
}

// Unwrap allows errors.Is(err, errors.ErrJarNotFound).
func (e *JarNotFoundError) Unwrap() error {
	return fserrors.ErrJarNotFound
}

// Assembler turns VM configurations into command lines.
type Assembler struct {
	Locator locator.Locator
	Logger  hclog.Logger

	// HeapDiagnostics adds G1 and heap-dump-on-OOM flags, plus a heap dump
	// path when FIRESTARTER_HEAPDUMP_PATH is set.
	HeapDiagnostics bool

	// LookupEnv defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
}

// Process builds the command line for one VM with the plain assembler.
func Process(loc locator.Locator, configName string, params Parameters, vm *config.VmConfig) ([]string, error) {
	a := &Assembler{Locator: loc}
	return a.Process(configName, params, vm)
}

// Process builds the command line for one VM:
//
//	java -server [diagnostics] -Xms{heap}M -Xmx{heap}M -Dfirestarter.vmname={name}
//	    ["-D{key}={value}" ...] -jar {path} {args...}
//
// The jar is looked up after parameter substitution. If it cannot be found a
// *JarNotFoundError is returned and no tokens are produced.
func (a *Assembler) Process(configName string, params Parameters, vm *config.VmConfig) ([]string, error) {
	logger := a.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	name := Substitute(params, vm.Name())
	jar := Substitute(params, vm.Jar())
	logger.Debug("🔧 Assembling command line", "config", configName, "vm", name, "jar", jar)

	path, found, err := a.Locator.Locate(jar)
	if err != nil {
		logger.Error("❌ Failed to search for jar", "vm", name, "jar", jar, "error", err)
		return nil, fmt.Errorf("locating %s for %s: %w", jar, name, err)
	}
	if !found {
		logger.Error("❌ Jar not found", "vm", name, "jar", jar)
		return nil, &JarNotFoundError{Filename: jar}
	}

	props := vm.PropertyKeys()
	args := vm.Arguments()
	cmd := make([]string, 0, 10+len(props)+len(args))

	cmd = append(cmd, Interpreter, "-server")
	if a.HeapDiagnostics {
		cmd = append(cmd, a.diagnosticFlags(logger)...)
	}

	cmd = append(cmd,
		fmt.Sprintf("-Xms%dM", vm.Heap()),
		fmt.Sprintf("-Xmx%dM", vm.Heap()),
		fmt.Sprintf("-D%s=%s", VmNameProperty, name),
	)

	for _, key := range props {
		value, _ := vm.Property(key)
		cmd = append(cmd, fmt.Sprintf(`"-D%s=%s"`, key, Substitute(params, value)))
	}

	cmd = append(cmd, "-jar", path)
	cmd = append(cmd, substituteAll(params, args)...)

	logger.Trace("✅ Command line assembled", "vm", name, "tokens", len(cmd))
	return cmd, nil
}

func (a *Assembler) diagnosticFlags(logger hclog.Logger) []string {
	flags := []string{"-XX:+UseG1GC", "-XX:+HeapDumpOnOutOfMemoryError"}

	lookup := a.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if dir, ok := lookup(HeapDumpPathEnv); ok && dir != "" {
		logger.Debug("🗂️ Heap dump path", "path", dir)
		flags = append(flags, "-XX:HeapDumpPath="+dir)
	}
	return flags
}

// Line joins command tokens with single spaces for display.
func Line(tokens []string) string {
	return strings.Join(tokens, " ")
}
