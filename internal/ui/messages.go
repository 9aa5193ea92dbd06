package ui

import "fit4/internal/progress"

// Every message from a scan carries the generation it was started in, so that
// events of a directory the user already left are dropped.

type listedMsg struct {
	gen   int
	paths []string
	err   error
}

type entryUpdateMsg struct {
	gen int
	U   progress.Update
}

type scanDoneMsg struct {
	gen int
	R   progress.Result
}

type ctxDoneMsg struct{}
