package model

// SortKey selects the ordering of listed entries.
type SortKey string

const (
	SortSize SortKey = "size"
	SortName SortKey = "name"
)

// Options holds user-configurable runtime options as resolved from flags,
// environment and config file.
type Options struct {
	Jobs    int // Max concurrent size computations. 0 = number of CPUs.
	Verbose bool
	Exact   bool // Print the exact byte count next to the 4-char size.
	Mime    bool // Detect MIME types of listed files.
	All     bool // Include dot files when listing a directory.
	Sort    SortKey
	Reverse bool

	NoUI bool // Disable TUI when true
}

// ParseSortKey validates a --sort value.
func ParseSortKey(s string) (SortKey, bool) {
	switch k := SortKey(s); k {
	case SortSize, SortName:
		return k, true
	default:
		return "", false
	}
}
