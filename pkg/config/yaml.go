// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

type yamlVm struct {
	Heap       any            `yaml:"heap"`
	Jar        string         `yaml:"jar"`
	Args       any            `yaml:"args"`
	Properties map[string]any `yaml:"properties"`
}

// FromYAML decodes the hierarchical YAML format:
//
//	name: test
//	jvms:
//	  TestJvm1:
//	    heap: 128M
//	    jar: target1-0.0.1-SNAPSHOT.jar
//	    args: [-switch, value]
//	    properties:
//	      my.application.property: foo-bar-baz
//
// VMs keep the order of the jvms mapping.
func FromYAML(data []byte) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: YAML parse error: %v", fserrors.ErrConfigInvalid, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, fmt.Errorf("%w: empty YAML document", fserrors.ErrConfigInvalid)
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: YAML document must be a mapping (line %d)", fserrors.ErrConfigInvalid, root.Line)
	}

	var name string
	var raws []rawVm
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		switch key.Value {
		case "name":
			if err := value.Decode(&name); err != nil {
				return nil, fmt.Errorf("%w: name: %v", fserrors.ErrConfigInvalid, err)
			}
		case "jvms":
			vms, err := decodeYAMLJvms(value)
			if err != nil {
				return nil, err
			}
			raws = vms
		}
	}

	return buildHierarchical(name, raws)
}

func decodeYAMLJvms(node *yaml.Node) ([]rawVm, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: jvms must be a mapping of VM name to settings (line %d)", fserrors.ErrConfigInvalid, node.Line)
	}

	raws := make([]rawVm, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var vm yamlVm
		if err := value.Decode(&vm); err != nil {
			return nil, fmt.Errorf("%w: jvms.%s (line %d): %v", fserrors.ErrConfigInvalid, key.Value, value.Line, err)
		}
		raws = append(raws, rawVm{
			name:       key.Value,
			heap:       vm.Heap,
			jar:        vm.Jar,
			args:       vm.Args,
			properties: vm.Properties,
		})
	}
	return raws, nil
}
