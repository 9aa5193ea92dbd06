package cli

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint64
		wantErr bool
	}{
		{name: "zero", in: "0", want: 0},
		{name: "plain", in: "7155456789012", want: 7_155_456_789_012},
		{name: "surrounding spaces", in: "  999 ", want: 999},
		{name: "underscores", in: "9_950_001", want: 9_950_001},
		{name: "commas", in: "999,499", want: 999_499},
		{name: "leading zeros stay decimal", in: "0755", want: 755},
		{name: "max uint64", in: "18446744073709551615", want: 18_446_744_073_709_551_615},
		{name: "empty", in: "", wantErr: true},
		{name: "only separators", in: "_,", wantErr: true},
		{name: "negative", in: "-1", wantErr: true},
		{name: "plus sign", in: "+1", wantErr: true},
		{name: "suffix", in: "10K", wantErr: true},
		{name: "fraction", in: "1.5", wantErr: true},
		{name: "hex", in: "0x10", wantErr: true},
		{name: "overflow", in: "18446744073709551616", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSize(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidSize))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReadSizes(t *testing.T) {
	in := strings.NewReader("# sizes\n999\n\n  10000\nnope\n7_155_456_789_012\n")

	var lines []string
	var sizes []uint64
	var errs int
	err := ReadSizes(in, func(line string, size uint64, err error) error {
		lines = append(lines, line)
		if err != nil {
			errs++
			return nil
		}
		sizes = append(sizes, size)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"999", "10000", "nope", "7_155_456_789_012"}, lines)
	assert.Equal(t, []uint64{999, 10_000, 7_155_456_789_012}, sizes)
	assert.Equal(t, 1, errs)
}

func TestReadSizes_StopsOnCallbackError(t *testing.T) {
	stop := errors.New("stop")
	calls := 0
	err := ReadSizes(strings.NewReader("1\n2\n3\n"), func(string, uint64, error) error {
		calls++
		if calls == 2 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 2, calls)
}

func TestReadSizes_LineTooLong(t *testing.T) {
	in := strings.NewReader("999\n" + strings.Repeat("1", MaxLineLen+1) + "\n1000\n")
	var sizes []uint64
	err := ReadSizes(in, func(_ string, size uint64, err error) error {
		require.NoError(t, err)
		sizes = append(sizes, size)
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidSize)
	assert.Equal(t, []uint64{999}, sizes)
}
