// SPDX-License-Identifier: Apache-2.0
package config

import (
	"bytes"
	"encoding/json"
	"fmt"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

type jsonConfig struct {
	Name       *string           `json:"name"`
	Parameters map[string]string `json:"parameters"`
	Jvms       []jsonVm          `json:"jvms"`
}

type jsonVm struct {
	Name       string            `json:"name"`
	Heap       int               `json:"heap"` // MB
	Jar        string            `json:"jar"`
	Args       []string          `json:"args"`
	Properties map[string]string `json:"properties"`
}

// FromJSON decodes the legacy flat JSON format:
//
//	{
//	  "name": "test",
//	  "parameters": { "VERSION": "0.0.1-SNAPSHOT" },
//	  "jvms": [ { "name": "TestJvm1", "heap": 128, "jar": "target1-${VERSION}.jar", "args": [] } ]
//	}
//
// Validation runs on the raw strings; ${KEY} placeholders are left for the
// assembler to substitute.
func FromJSON(data []byte) (*Config, error) {
	var raw jsonConfig
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: JSON parse error: %v", fserrors.ErrConfigInvalid, err)
	}

	if raw.Name == nil {
		return nil, fmt.Errorf("%w: name is required", fserrors.ErrConfigInvalid)
	}
	if raw.Jvms == nil {
		return nil, fmt.Errorf("%w: jvms is required", fserrors.ErrConfigInvalid)
	}

	jvms := make([]*VmConfig, 0, len(raw.Jvms))
	for i, rv := range raw.Jvms {
		vm, err := NewVmConfig(rv.Name, rv.Heap, rv.Jar, rv.Args, rv.Properties)
		if err != nil {
			return nil, fmt.Errorf("jvms[%d]: %w", i, err)
		}
		jvms = append(jvms, vm)
	}

	return New(*raw.Name, raw.Parameters, jvms)
}
