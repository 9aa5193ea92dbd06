// Package cli turns command line and stdin input into byte counts.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidSize is returned when an input is not a plain non-negative integer.
var ErrInvalidSize = errors.New("invalid size")

var separators = strings.NewReplacer("_", "", ",", "")

// MaxLineLen caps a single stdin line. Even a fully grouped 64-bit count is far
// shorter.
const MaxLineLen = 4096

// ParseSize parses a byte count written in base 10. Underscores and commas are
// accepted as digit group separators ("7_155_456", "7,155,456"). Unit suffixes
// are not.
func ParseSize(s string) (uint64, error) {
	raw := strings.TrimSpace(s)
	digits := separators.Replace(raw)
	if digits == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, raw)
	}
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		var ne *strconv.NumError
		if errors.As(err, &ne) && errors.Is(ne.Err, strconv.ErrRange) {
			return 0, fmt.Errorf("%w: %q overflows 64 bits", ErrInvalidSize, raw)
		}
		return 0, fmt.Errorf("%w: %q", ErrInvalidSize, raw)
	}
	return n, nil
}

// ReadSizes scans r line by line and calls fn for every size found. Blank lines
// and lines starting with '#' are skipped. Parse failures are handed to fn
// rather than aborting; a non-nil error from fn stops the scan and is returned.
// A line longer than MaxLineLen stops the scan with ErrInvalidSize.
func ReadSizes(r io.Reader, fn func(line string, size uint64, err error) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 512), MaxLineLen)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		size, err := ParseSize(line)
		if ferr := fn(line, size, err); ferr != nil {
			return ferr
		}
	}
	if err := sc.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return fmt.Errorf("%w: line longer than %d bytes", ErrInvalidSize, MaxLineLen)
		}
		return fmt.Errorf("read sizes: %w", err)
	}
	return nil
}
