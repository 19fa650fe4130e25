// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

// hclRoot is the top-level shape of an HCL configuration file.
type hclRoot struct {
	Name string   `hcl:"name,optional"`
	Jvms []*hclVm `hcl:"jvm,block"`
}

type hclVm struct {
	Name       string         `hcl:"name,label"`
	Heap       hcl.Expression `hcl:"heap"`
	Jar        string         `hcl:"jar"`
	Args       hcl.Expression `hcl:"args,optional"`
	Properties hcl.Expression `hcl:"properties,optional"`
}

// FromHCL decodes the hierarchical HCL format:
//
//	name = "test"
//
//	jvm "TestJvm1" {
//	  heap = "128M"
//	  jar  = "target1-0.0.1-SNAPSHOT.jar"
//	  args = ["-switch", "value"]
//	  properties = {
//	    "my.application.property" = "foo-bar-baz"
//	  }
//	}
//
// VMs keep the order of their blocks.
func FromHCL(data []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to parse HCL: %s", fserrors.ErrConfigInvalid, diags.Error())
	}

	var root hclRoot
	diags = gohcl.DecodeBody(file.Body, nil, &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: failed to decode HCL: %s", fserrors.ErrConfigInvalid, diags.Error())
	}

	raws := make([]rawVm, 0, len(root.Jvms))
	for _, block := range root.Jvms {
		raw, err := translateHCLVm(block)
		if err != nil {
			return nil, fmt.Errorf("jvm %q: %w", block.Name, err)
		}
		raws = append(raws, raw)
	}

	return buildHierarchical(root.Name, raws)
}

func translateHCLVm(block *hclVm) (rawVm, error) {
	raw := rawVm{name: block.Name, jar: block.Jar}

	heap, err := evalHCL(block.Heap, "heap")
	if err != nil {
		return raw, err
	}
	switch {
	case heap.IsNull():
	case heap.Type() == cty.String:
		raw.heap = heap.AsString()
	case heap.Type() == cty.Number:
		var bytes int64
		if err := gocty.FromCtyValue(heap, &bytes); err != nil {
			return raw, fmt.Errorf("%w: heap: %v", fserrors.ErrConfigInvalid, err)
		}
		raw.heap = bytes
	default:
		return raw, fmt.Errorf("%w: heap must be a string or number, got %s", fserrors.ErrConfigInvalid, heap.Type().FriendlyName())
	}

	args, err := evalHCL(block.Args, "args")
	if err != nil {
		return raw, err
	}
	switch {
	case args.IsNull():
	case args.Type() == cty.String:
		raw.args = args.AsString()
	case args.CanIterateElements() && !args.Type().IsMapType() && !args.Type().IsObjectType():
		list := make([]any, 0, args.LengthInt())
		for it := args.ElementIterator(); it.Next(); {
			_, v := it.Element()
			s, err := ctyString(v, "args")
			if err != nil {
				return raw, err
			}
			list = append(list, s)
		}
		raw.args = list
	default:
		return raw, fmt.Errorf("%w: args must be a list or a string, got %s", fserrors.ErrConfigInvalid, args.Type().FriendlyName())
	}

	props, err := evalHCL(block.Properties, "properties")
	if err != nil {
		return raw, err
	}
	if !props.IsNull() {
		if !props.Type().IsMapType() && !props.Type().IsObjectType() {
			return raw, fmt.Errorf("%w: properties must be a map, got %s", fserrors.ErrConfigInvalid, props.Type().FriendlyName())
		}
		raw.properties = make(map[string]any, props.LengthInt())
		for it := props.ElementIterator(); it.Next(); {
			k, v := it.Element()
			key := k.AsString()
			s, err := ctyString(v, "properties."+key)
			if err != nil {
				return raw, err
			}
			raw.properties[key] = s
		}
	}

	return raw, nil
}

// evalHCL evaluates an attribute expression without variables or functions.
func evalHCL(expr hcl.Expression, attr string) (cty.Value, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%w: %s: %s", fserrors.ErrConfigInvalid, attr, diags.Error())
	}
	if !val.IsWhollyKnown() {
		return cty.NilVal, fmt.Errorf("%w: %s has an unknown value", fserrors.ErrConfigInvalid, attr)
	}
	return val, nil
}

// ctyString converts a primitive cty value to its string form.
func ctyString(v cty.Value, attr string) (string, error) {
	if v.IsNull() || !v.Type().IsPrimitiveType() {
		return "", fmt.Errorf("%w: %s must be a string, number or bool", fserrors.ErrConfigInvalid, attr)
	}
	s, err := convert.Convert(v, cty.String)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", fserrors.ErrConfigInvalid, attr, err)
	}
	return s.AsString(), nil
}
