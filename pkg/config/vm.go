// SPDX-License-Identifier: Apache-2.0
// Package config holds the validated, immutable configuration records that
// describe the JVMs to launch, together with the adapters that read them
// from JSON, TOML, YAML and HCL documents.
package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

// MinHeapMB is the smallest heap (in MB) a VM may be configured with.
const MinHeapMB = 64

// VmConfig describes a single JVM. It is validated on construction and
// read-only afterwards.
type VmConfig struct {
	name       string
	heap       int
	jar        string
	arguments  []string
	properties map[string]string
}

// NewVmConfig validates and builds a VM configuration. The argument slice
// and property map are copied.
func NewVmConfig(name string, heap int, jar string, arguments []string, properties map[string]string) (*VmConfig, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: VmConfig.name is required", fserrors.ErrConfigInvalid)
	}
	if strings.Contains(name, " ") {
		return nil, fmt.Errorf("%w: VmConfig.name cannot contain spaces: %q", fserrors.ErrConfigInvalid, name)
	}
	if heap < MinHeapMB {
		return nil, fmt.Errorf("%w: VmConfig.heap must be >= %d but was: %d", fserrors.ErrConfigInvalid, MinHeapMB, heap)
	}
	if jar == "" {
		return nil, fmt.Errorf("%w: VmConfig.jar is required (vm %s)", fserrors.ErrConfigInvalid, name)
	}
	if strings.Contains(jar, " ") {
		return nil, fmt.Errorf("%w: VmConfig.jar cannot contain spaces: %q", fserrors.ErrConfigInvalid, jar)
	}

	props := make(map[string]string, len(properties))
	maps.Copy(props, properties)

	return &VmConfig{
		name:       name,
		heap:       heap,
		jar:        jar,
		arguments:  slices.Clone(arguments),
		properties: props,
	}, nil
}

// Name returns the VM name.
func (v *VmConfig) Name() string { return v.name }

// Heap returns the heap size in MB.
func (v *VmConfig) Heap() int { return v.heap }

// Jar returns the jar filename, possibly containing ${KEY} placeholders.
func (v *VmConfig) Jar() string { return v.jar }

// Arguments returns a copy of the trailing command line arguments.
func (v *VmConfig) Arguments() []string { return slices.Clone(v.arguments) }

// Properties returns a copy of the JVM system properties.
func (v *VmConfig) Properties() map[string]string { return maps.Clone(v.properties) }

// PropertyKeys returns the property keys in ascending order.
func (v *VmConfig) PropertyKeys() []string {
	return slices.Sorted(maps.Keys(v.properties))
}

// Property returns the value of a single property.
func (v *VmConfig) Property(key string) (string, bool) {
	val, ok := v.properties[key]
	return val, ok
}
