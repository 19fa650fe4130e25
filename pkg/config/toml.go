// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"maps"
	"slices"

	"github.com/BurntSushi/toml"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

type tomlConfig struct {
	Name string            `toml:"name"`
	Jvms map[string]tomlVm `toml:"jvms"`
}

type tomlVm struct {
	Heap       any            `toml:"heap"`
	Jar        string         `toml:"jar"`
	Args       any            `toml:"args"`
	Properties map[string]any `toml:"properties"`
}

// FromTOML decodes the hierarchical TOML format:
//
//	name = "test"
//
//	[jvms.TestJvm1]
//	heap = "128M"
//	jar  = "target1-0.0.1-SNAPSHOT.jar"
//	args = ["-switch", "value"]
//
//	[jvms.TestJvm1.properties]
//	"my.application.property" = "foo-bar-baz"
//
// VMs keep the order in which they appear in the document.
func FromTOML(data []byte) (*Config, error) {
	var raw tomlConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: TOML parse error: %v", fserrors.ErrConfigInvalid, err)
	}

	var order []string
	seen := make(map[string]bool, len(raw.Jvms))
	for _, key := range md.Keys() {
		if len(key) < 2 || key[0] != "jvms" || seen[key[1]] {
			continue
		}
		if _, ok := raw.Jvms[key[1]]; ok {
			seen[key[1]] = true
			order = append(order, key[1])
		}
	}
	for _, name := range slices.Sorted(maps.Keys(raw.Jvms)) {
		if !seen[name] {
			order = append(order, name)
		}
	}

	raws := make([]rawVm, 0, len(order))
	for _, name := range order {
		vm := raw.Jvms[name]
		raws = append(raws, rawVm{
			name:       name,
			heap:       vm.Heap,
			jar:        vm.Jar,
			args:       vm.Args,
			properties: vm.Properties,
		})
	}

	return buildHierarchical(raw.Name, raws)
}
