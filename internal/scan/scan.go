// Package scan computes the on-disk size of files and directory trees.
package scan

import (
	"cmp"
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/sync/errgroup"

	"fit4/internal/model"
	"fit4/internal/progress"
)

const (
	mimeDirectory = "inode/directory"
	mimeSymlink   = "inode/symlink"
	mimeUnknown   = "application/octet-stream"
)

// Entry is a sized path. Err is set when the path could not be read; Size
// then holds whatever was counted before the failure.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Size  uint64
	Mime  string
	Err   error
}

// Options defines scanning behavior.
type Options struct {
	Jobs int  // concurrent size computations; <= 0 uses the number of CPUs
	Mime bool // detect MIME types
	All  bool // include dot entries when listing a directory
}

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return max(runtime.NumCPU(), 1)
}

// DirSize returns the sum of the sizes of all regular files under root. Root
// may itself be a file. Symlinks are not followed; unreadable subtrees are
// skipped. Only a failure to read root or a canceled ctx is reported.
func DirSize(ctx context.Context, root string) (uint64, error) {
	var total uint64
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			slog.Debug("skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			slog.Debug("skipping vanished file", "path", path, "error", err)
			return nil
		}
		total += uint64(info.Size())
		return nil
	})
	return total, err
}

// List returns the paths of the entries of dir in directory order, leaving out
// dot entries unless opts.All is set.
func List(dir string, opts Options) ([]string, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	paths := make([]string, 0, len(des))
	for _, de := range des {
		if !opts.All && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		paths = append(paths, filepath.Join(dir, de.Name()))
	}
	return paths, nil
}

// Sizes sizes every path concurrently. The result has the same order as paths.
// Per-path failures are recorded on the entries; the returned error is only
// set when ctx is canceled.
func Sizes(ctx context.Context, paths []string, opts Options) ([]Entry, error) {
	entries := make([]Entry, len(paths))
	err := run(ctx, paths, opts, nil, func(i int, e Entry) {
		entries[i] = e
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Children lists dir and sizes each of its entries.
func Children(ctx context.Context, dir string, opts Options) ([]Entry, error) {
	paths, err := List(dir, opts)
	if err != nil {
		return nil, err
	}
	return Sizes(ctx, paths, opts)
}

// Stream sizes paths like Sizes, reporting every path to rep when its scan
// starts and when it finishes, then a single Result carrying the total.
func Stream(ctx context.Context, paths []string, opts Options, rep progress.Reporter) {
	var total atomic.Uint64
	err := run(ctx, paths, opts,
		func(i int) {
			rep.Update(progress.Update{Index: i, Path: paths[i], Stage: progress.StageScanning})
		},
		func(i int, e Entry) {
			u := progress.Update{
				Index: i,
				Path:  e.Path,
				Stage: progress.StageDone,
				Size:  e.Size,
				IsDir: e.IsDir,
				Mime:  e.Mime,
				Err:   e.Err,
			}
			if e.Err != nil {
				u.Stage = progress.StageError
			}
			total.Add(e.Size)
			rep.Update(u)
		})
	rep.Result(progress.Result{Total: total.Load(), Err: err})
}

func run(ctx context.Context, paths []string, opts Options, start func(int), done func(int, Entry)) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, p := range paths {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if start != nil {
				start(i)
			}
			e := sizeOne(gctx, p, opts)
			if err := gctx.Err(); err != nil {
				return err
			}
			done(i, e)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func sizeOne(ctx context.Context, path string, opts Options) Entry {
	e := Entry{Path: path, Name: filepath.Base(path)}
	info, err := os.Lstat(path)
	if err != nil {
		e.Err = err
		return e
	}
	e.IsDir = info.IsDir()
	if opts.Mime {
		e.Mime = detectMime(path, info)
	}
	e.Size, e.Err = DirSize(ctx, path)
	return e
}

func detectMime(path string, info fs.FileInfo) string {
	switch {
	case info.IsDir():
		return mimeDirectory
	case info.Mode()&fs.ModeSymlink != 0:
		return mimeSymlink
	case !info.Mode().IsRegular():
		return mimeUnknown
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		slog.Debug("mime detection failed", "path", path, "error", err)
		return mimeUnknown
	}
	return mt.String()
}

// Sort orders entries in place: largest first for model.SortSize, A to Z for
// model.SortName. Ties are broken by name. reverse flips the order.
func Sort(entries []Entry, key model.SortKey, reverse bool) {
	slices.SortStableFunc(entries, func(a, b Entry) int {
		c := 0
		if key != model.SortName {
			c = cmp.Compare(b.Size, a.Size)
		}
		if c == 0 {
			c = strings.Compare(a.Name, b.Name)
		}
		if reverse {
			return -c
		}
		return c
	})
}

// Total sums the sizes of entries.
func Total(entries []Entry) uint64 {
	var t uint64
	for _, e := range entries {
		t += e.Size
	}
	return t
}
