package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fserrors "github.com/fatboyindustrial/firestarter/pkg/errors"
)

func TestParseBytes(t *testing.T) {
	testCases := []struct {
		input string
		want  int64
	}{
		{"0", 0},
		{"1024", 1024},
		{"10b", 10},
		{"10 bytes", 10},
		{"1K", 1024},
		{"1k", 1024},
		{"1KiB", 1024},
		{"1kB", 1000},
		{"1kilobytes", 1000},
		{"64M", 64 * 1024 * 1024},
		{"64m", 64 * 1024 * 1024},
		{"64Mi", 64 * 1024 * 1024},
		{"64 MiB", 64 * 1024 * 1024},
		{"64mebibytes", 64 * 1024 * 1024},
		{"64MB", 64 * 1000 * 1000},
		{"64 megabytes", 64 * 1000 * 1000},
		{"2G", 2 * 1024 * 1024 * 1024},
		{"1.5G", 3 * 512 * 1024 * 1024},
		{"1T", 1024 * 1024 * 1024 * 1024},
		{" 128M ", 128 * 1024 * 1024},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseBytes(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseBytesErrors(t *testing.T) {
	for _, input := range []string{"", "M", "-1M", "12Q", "1.2.3M", "99999999E"} {
		t.Run(input, func(t *testing.T) {
			_, err := ParseBytes(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, fserrors.ErrConfigInvalid))
		})
	}
}

func TestBytesToMB(t *testing.T) {
	mb, err := bytesToMB(128*1024*1024 + 1)
	require.NoError(t, err)
	assert.Equal(t, 128, mb)

	_, err = bytesToMB(-1)
	assert.Error(t, err)
}
