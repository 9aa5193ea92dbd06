package progress

// Stage identifies where a path is in the sizing process.
type Stage string

const (
	StageScanning Stage = "scanning"
	StageDone     Stage = "done"
	StageError    Stage = "error"
)

// Update conveys a stage change for one path. Index is the position of the
// path in the scanned list; Size, IsDir and Mime are set once Stage is
// StageDone.
type Update struct {
	Index int
	Path  string
	Stage Stage

	Size  uint64
	IsDir bool
	Mime  string
	Err   error
}

// Result is emitted once, after every path has been sized or the scan was
// canceled.
type Result struct {
	Total uint64
	Err   error // nil on success
}

// Reporter is implemented by UI or any observer interested in scan events.
// Implementations must be safe for concurrent use.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}
