// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"math"
	"strconv"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
	"github.com/fatboyindustrial/firestarter/pkg/utils/shellparse"
)

// rawVm is a VM entry from a hierarchical document, before its loosely
// typed values have been normalised.
type rawVm struct {
	name       string
	heap       any            // byte-size string or integer byte count
	jar        string
	args       any            // list of scalars or a single shell-style string
	properties map[string]any // scalar values
}

// buildHierarchical turns decoded hierarchical entries into a Config.
// Hierarchical documents carry no parameters; property values are literal.
func buildHierarchical(name string, raws []rawVm) (*Config, error) {
	jvms := make([]*VmConfig, 0, len(raws))
	for _, raw := range raws {
		vm, err := raw.build()
		if err != nil {
			return nil, fmt.Errorf("jvms.%s: %w", raw.name, err)
		}
		jvms = append(jvms, vm)
	}
	return New(name, nil, jvms)
}

func (r rawVm) build() (*VmConfig, error) {
	heap, err := heapMB(r.heap)
	if err != nil {
		return nil, err
	}

	args, err := argumentList(r.args)
	if err != nil {
		return nil, err
	}

	props := make(map[string]string, len(r.properties))
	if err := flattenProperties("", r.properties, props); err != nil {
		return nil, err
	}

	return NewVmConfig(r.name, heap, r.jar, args, props)
}

// flattenProperties copies scalar property values into out. Nested tables
// become dotted keys, so {my: {app: {mode: fast}}} yields my.app.mode=fast.
func flattenProperties(prefix string, in map[string]any, out map[string]string) error {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]any); ok {
			if err := flattenProperties(key, nested, out); err != nil {
				return err
			}
			continue
		}
		s, err := scalarString(v)
		if err != nil {
			return fmt.Errorf("properties.%s: %w", key, err)
		}
		out[key] = s
	}
	return nil
}

// heapMB converts a heap quantity to megabytes.
func heapMB(v any) (int, error) {
	switch h := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: heap is required", fserrors.ErrConfigInvalid)
	case string:
		bytes, err := ParseBytes(h)
		if err != nil {
			return 0, err
		}
		return bytesToMB(bytes)
	case int:
		return bytesToMB(int64(h))
	case int64:
		return bytesToMB(h)
	case uint64:
		if h > math.MaxInt64 {
			return 0, fmt.Errorf("%w: heap of %d bytes is too large", fserrors.ErrConfigInvalid, h)
		}
		return bytesToMB(int64(h))
	case float64:
		if h != math.Trunc(h) || h > math.MaxInt64 {
			return 0, fmt.Errorf("%w: heap must be a whole number of bytes, got %v", fserrors.ErrConfigInvalid, h)
		}
		return bytesToMB(int64(h))
	default:
		return 0, fmt.Errorf("%w: heap must be a byte size, got %T", fserrors.ErrConfigInvalid, v)
	}
}

// argumentList normalises the args value.
func argumentList(v any) ([]string, error) {
	switch a := v.(type) {
	case nil:
		return nil, nil
	case string:
		words, err := shellparse.Split(a)
		if err != nil {
			return nil, fmt.Errorf("%w: args: %v", fserrors.ErrConfigInvalid, err)
		}
		return words, nil
	case []string:
		return a, nil
	case []any:
		args := make([]string, 0, len(a))
		for i, item := range a {
			s, err := scalarString(item)
			if err != nil {
				return nil, fmt.Errorf("args[%d]: %w", i, err)
			}
			args = append(args, s)
		}
		return args, nil
	default:
		return nil, fmt.Errorf("%w: args must be a list or a string, got %T", fserrors.ErrConfigInvalid, v)
	}
}

// scalarString renders a scalar configuration value as text.
func scalarString(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case uint64:
		return strconv.FormatUint(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'g', -1, 64), nil
	default:
		return "", fmt.Errorf("%w: expected a scalar value, got %T", fserrors.ErrConfigInvalid, v)
	}
}
