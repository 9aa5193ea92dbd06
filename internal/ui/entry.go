package ui

import (
	"path/filepath"

	"github.com/charmbracelet/bubbles/spinner"

	"fit4/internal/progress"
)

type entryState struct {
	path string
	name string

	stage progress.Stage // empty while queued
	isDir bool
	size  uint64
	err   error

	spinner spinner.Model
}

func newEntryState(path string) *entryState {
	sp := spinner.New()
	sp.Spinner = spinner.MiniDot
	return &entryState{
		path:    path,
		name:    filepath.Base(path),
		spinner: sp,
	}
}

func (e *entryState) done() bool {
	return e.stage == progress.StageDone || e.stage == progress.StageError
}
