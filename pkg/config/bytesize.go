// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"math"
	"math/big"
	"strings"
	"unicode"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

const bytesPerMB = 1024 * 1024

// byteUnits maps every accepted unit spelling to its multiplier. Single
// letters and the "i" forms are powers of two; "kB", "MB", ... and the
// spelled-out SI names are powers of ten.
var byteUnits = func() map[string]*big.Int {
	units := map[string]*big.Int{
		"":      big.NewInt(1),
		"b":     big.NewInt(1),
		"B":     big.NewInt(1),
		"byte":  big.NewInt(1),
		"bytes": big.NewInt(1),
	}
	type prefix struct {
		short, binaryName, siName string
	}
	prefixes := []prefix{
		{"K", "kibi", "kilo"},
		{"M", "mebi", "mega"},
		{"G", "gibi", "giga"},
		{"T", "tebi", "tera"},
		{"P", "pebi", "peta"},
		{"E", "exbi", "exa"},
	}
	for i, p := range prefixes {
		power := int64(i + 1)
		binary := new(big.Int).Exp(big.NewInt(1024), big.NewInt(power), nil)
		decimal := new(big.Int).Exp(big.NewInt(1000), big.NewInt(power), nil)

		lower := strings.ToLower(p.short)
		for _, s := range []string{p.short, lower, p.short + "i", p.short + "iB", p.binaryName + "byte", p.binaryName + "bytes"} {
			units[s] = binary
		}
		for _, s := range []string{p.short + "B", p.siName + "byte", p.siName + "bytes"} {
			units[s] = decimal
		}
	}
	// "kB" is the conventional SI spelling for kilobytes.
	units["kB"] = units["KB"]
	return units
}()

// ParseBytes parses a byte-size quantity such as "128M", "512 MiB", "1g" or
// "2000000kB". A bare number is a count of bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty byte size", fserrors.ErrConfigInvalid)
	}

	split := strings.IndexFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r) && r != '.'
	})
	number, unit := s, ""
	if split >= 0 {
		number, unit = s[:split], strings.TrimSpace(s[split:])
	}
	if number == "" {
		return 0, fmt.Errorf("%w: byte size %q has no number", fserrors.ErrConfigInvalid, s)
	}

	multiplier, ok := byteUnits[unit]
	if !ok {
		return 0, fmt.Errorf("%w: byte size %q has unknown unit %q", fserrors.ErrConfigInvalid, s, unit)
	}

	value, ok := new(big.Float).SetString(number)
	if !ok {
		return 0, fmt.Errorf("%w: byte size %q is not a number", fserrors.ErrConfigInvalid, s)
	}
	value.Mul(value, new(big.Float).SetInt(multiplier))

	bytes, _ := value.Int(nil)
	if !bytes.IsInt64() {
		return 0, fmt.Errorf("%w: byte size %q is out of range", fserrors.ErrConfigInvalid, s)
	}
	return bytes.Int64(), nil
}

// bytesToMB converts a byte count to whole megabytes, truncating.
func bytesToMB(bytes int64) (int, error) {
	if bytes < 0 {
		return 0, fmt.Errorf("%w: negative byte size %d", fserrors.ErrConfigInvalid, bytes)
	}
	mb := bytes / bytesPerMB
	if mb > math.MaxInt32 {
		return 0, fmt.Errorf("%w: heap of %d bytes is too large", fserrors.ErrConfigInvalid, bytes)
	}
	return int(mb), nil
}
