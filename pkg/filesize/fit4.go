// Package filesize renders byte counts in at most four characters, e.g. "999",
// "1.0M", "57K" or "7.2T", using decimal (1000-based) suffixes.
package filesize

import (
	"math"
	"sort"
	"strconv"
)

// Width is the maximum length of a string returned by Fit4.
const Width = 4

// Huge is returned for sizes no suffix can express within Width characters.
const Huge = "huge"

// Band is a contiguous, inclusive range of sizes sharing one rendering.
type Band struct {
	Lo, Hi uint64
	// Unit is the divisor applied before formatting; 0 prints the digits verbatim.
	Unit     uint64
	Suffix   string
	Decimals int
	// Overflow marks the last band, rendered as Huge.
	Overflow bool
}

// The limits are exact so that rounding never pushes a value past Width
// characters: 999_499 is the last size rounding to "999K", 9_950_000 the
// last one rounding to "9.9M" (float64(9.95) sits just below the tie).
var bands = []Band{
	{Lo: 0, Hi: 9_999},
	{Lo: 10_000, Hi: 999_499, Unit: 1e3, Suffix: "K"},
	{Lo: 999_500, Hi: 9_950_000, Unit: 1e6, Suffix: "M", Decimals: 1},
	{Lo: 9_950_001, Hi: 999_499_999, Unit: 1e6, Suffix: "M"},
	{Lo: 999_500_000, Hi: 9_950_000_000, Unit: 1e9, Suffix: "G", Decimals: 1},
	{Lo: 9_950_000_001, Hi: 999_499_999_999, Unit: 1e9, Suffix: "G"},
	{Lo: 999_500_000_000, Hi: 9_950_000_000_000, Unit: 1e12, Suffix: "T", Decimals: 1},
	{Lo: 9_950_000_000_001, Hi: 999_499_999_999_999, Unit: 1e12, Suffix: "T"},
	{Lo: 999_500_000_000_000, Hi: 9_950_000_000_000_000, Unit: 1e15, Suffix: "P", Decimals: 1},
	// float64 cannot hold every size up here; ...935 is the last one whose
	// nearest float64 still divides to below 999.5.
	{Lo: 9_950_000_000_000_001, Hi: 999_499_999_999_999_935, Unit: 1e15, Suffix: "P"},
	{Lo: 999_499_999_999_999_936, Hi: math.MaxUint64, Overflow: true},
}

// Fit4 returns the most precise representation of size fitting in four
// characters. Sizes up to 9999 are printed as is, larger ones get a K, M, G, T
// or P suffix with one decimal when the scaled value is below 10. Sizes from
// 999_499_999_999_999_936 up yield Huge.
func Fit4(size uint64) string {
	return Classify(size).Format(size)
}

// Classify returns the band size falls into.
func Classify(size uint64) Band {
	i := sort.Search(len(bands), func(i int) bool { return bands[i].Hi >= size })
	return bands[i]
}

// Bands returns a copy of the threshold table, ordered by size.
func Bands() []Band {
	out := make([]Band, len(bands))
	copy(out, bands)
	return out
}

// Contains reports whether size lies within the band.
func (b Band) Contains(size uint64) bool {
	return size >= b.Lo && size <= b.Hi
}

// Format renders size according to the band. The scaled value is rounded to
// Decimals places from its exact float64 value; exact ties go to the even digit.
func (b Band) Format(size uint64) string {
	switch {
	case b.Overflow:
		return Huge
	case b.Unit == 0:
		return strconv.FormatUint(size, 10)
	}
	v := float64(size) / float64(b.Unit)
	return strconv.FormatFloat(v, 'f', b.Decimals, 64) + b.Suffix
}

// Size is a byte count whose String method renders it with Fit4.
type Size uint64

func (s Size) String() string {
	return Fit4(uint64(s))
}
