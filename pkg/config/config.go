// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

// Config is the outermost configuration object: a name, the parameter
// substitutions (legacy JSON only) and the JVMs in declaration order.
type Config struct {
	name       string
	parameters map[string]string
	jvms       []*VmConfig
}

// New validates and builds a configuration.
func New(name string, parameters map[string]string, jvms []*VmConfig) (*Config, error) {
	if strings.Contains(name, " ") {
		return nil, fmt.Errorf("%w: config name cannot contain spaces: %q", fserrors.ErrConfigInvalid, name)
	}
	for i, vm := range jvms {
		if vm == nil {
			return nil, fmt.Errorf("%w: jvm %d is empty", fserrors.ErrConfigInvalid, i)
		}
	}

	params := make(map[string]string, len(parameters))
	maps.Copy(params, parameters)

	return &Config{
		name:       name,
		parameters: params,
		jvms:       slices.Clone(jvms),
	}, nil
}

// Name returns the configuration name.
func (c *Config) Name() string { return c.name }

// Parameters returns a copy of the substitution parameters.
func (c *Config) Parameters() map[string]string { return maps.Clone(c.parameters) }

// Jvms returns the VM configurations in declaration order.
func (c *Config) Jvms() []*VmConfig { return slices.Clone(c.jvms) }

// Format identifies a configuration document syntax.
type Format int

const (
	// FormatAuto detects the format from the file extension
	FormatAuto Format = iota
	// FormatJSON is the legacy flat format with parameter substitution
	FormatJSON
	// FormatTOML is a hierarchical format keyed by VM name
	FormatTOML
	// FormatYAML is a hierarchical format keyed by VM name
	FormatYAML
	// FormatHCL is a hierarchical format with one labelled block per VM
	FormatHCL
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatHCL:
		return "hcl"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name as accepted on the command line.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl":
		return FormatHCL, nil
	default:
		return FormatAuto, fmt.Errorf("%w: unknown config format %q", fserrors.ErrInvalidArgs, s)
	}
}

// DetectFormat determines the configuration format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".hcl":
		return FormatHCL, nil
	default:
		return FormatAuto, fmt.Errorf("%w: cannot detect format of %s", fserrors.ErrConfigInvalid, path)
	}
}

// Load reads and validates the configuration file at path. A missing or
// unreadable file is a filesystem error; anything wrong with its content is
// a configuration error.
func Load(path string, format Format) (*Config, error) {
	if format == FormatAuto {
		detected, err := DetectFormat(path)
		if err != nil {
			return nil, err
		}
		format = detected
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading config %s: %v", fserrors.ErrFilesystemAccess, path, err)
	}

	cfg, err := Parse(data, path, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a configuration document of the given format. The filename
// is used for diagnostics only.
func Parse(data []byte, filename string, format Format) (*Config, error) {
	switch format {
	case FormatJSON:
		return FromJSON(data)
	case FormatTOML:
		return FromTOML(data)
	case FormatYAML:
		return FromYAML(data)
	case FormatHCL:
		return FromHCL(data, filename)
	default:
		return nil, fmt.Errorf("%w: unsupported format: %s", fserrors.ErrConfigInvalid, format)
	}
}
