package scan

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fit4/internal/model"
	"fit4/internal/progress"
)

func writeFileOfSize(t *testing.T, path string, size int64) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, f.Truncate(size))
}

// tree builds:
//
//	root/a/x.bin   1000
//	root/a/b/y.bin 2500
//	root/c.bin     12345
//	root/.hidden   7
func tree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFileOfSize(t, filepath.Join(root, "a", "x.bin"), 1000)
	writeFileOfSize(t, filepath.Join(root, "a", "b", "y.bin"), 2500)
	writeFileOfSize(t, filepath.Join(root, "c.bin"), 12345)
	writeFileOfSize(t, filepath.Join(root, ".hidden"), 7)
	return root
}

func TestDirSize(t *testing.T) {
	root := tree(t)

	got, err := DirSize(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000+2500+12345+7), got)

	got, err = DirSize(context.Background(), filepath.Join(root, "c.bin"))
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), got)

	_, err = DirSize(context.Background(), filepath.Join(root, "missing"))
	assert.Error(t, err)
}

func TestDirSize_SkipsSymlinks(t *testing.T) {
	root := tree(t)
	if err := os.Symlink(filepath.Join(root, "c.bin"), filepath.Join(root, "a", "link")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	got, err := DirSize(context.Background(), filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Equal(t, uint64(3500), got)
}

func TestDirSize_Canceled(t *testing.T) {
	root := tree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := DirSize(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestChildren(t *testing.T) {
	root := tree(t)

	entries, err := Children(context.Background(), root, Options{Jobs: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// os.ReadDir sorts by name.
	assert.Equal(t, "a", entries[0].Name)
	assert.True(t, entries[0].IsDir)
	assert.Equal(t, uint64(3500), entries[0].Size)
	assert.Equal(t, "c.bin", entries[1].Name)
	assert.False(t, entries[1].IsDir)
	assert.Equal(t, uint64(12345), entries[1].Size)

	entries, err = Children(context.Background(), root, Options{All: true})
	require.NoError(t, err)
	assert.Len(t, entries, 3)
	assert.Equal(t, uint64(1000+2500+12345+7), Total(entries))
}

func TestChildren_NotADirectory(t *testing.T) {
	root := tree(t)
	_, err := Children(context.Background(), filepath.Join(root, "c.bin"), Options{})
	assert.Error(t, err)
}

func TestSizes_KeepsOrderAndRecordsErrors(t *testing.T) {
	root := tree(t)
	paths := []string{
		filepath.Join(root, "c.bin"),
		filepath.Join(root, "missing"),
		filepath.Join(root, "a"),
	}

	entries, err := Sizes(context.Background(), paths, Options{Jobs: 3})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, uint64(12345), entries[0].Size)
	assert.Error(t, entries[1].Err)
	assert.Equal(t, "missing", entries[1].Name)
	assert.Equal(t, uint64(3500), entries[2].Size)
}

func TestSizes_Canceled(t *testing.T) {
	root := tree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Sizes(ctx, []string{root}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSizes_Mime(t *testing.T) {
	root := t.TempDir()
	png := filepath.Join(root, "img")
	require.NoError(t, os.WriteFile(png, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0o644))
	txt := filepath.Join(root, "notes")
	require.NoError(t, os.WriteFile(txt, []byte("hello world\n"), 0o644))

	entries, err := Sizes(context.Background(), []string{png, txt, root}, Options{Mime: true})
	require.NoError(t, err)
	assert.Equal(t, "image/png", entries[0].Mime)
	assert.Contains(t, entries[1].Mime, "text/plain")
	assert.Equal(t, "inode/directory", entries[2].Mime)
}

func TestSort(t *testing.T) {
	entries := []Entry{
		{Name: "b", Size: 10},
		{Name: "a", Size: 10},
		{Name: "c", Size: 30},
		{Name: "d", Size: 1},
	}
	names := func() []string {
		var out []string
		for _, e := range entries {
			out = append(out, e.Name)
		}
		return out
	}

	Sort(entries, model.SortSize, false)
	assert.Equal(t, []string{"c", "a", "b", "d"}, names())

	Sort(entries, model.SortSize, true)
	assert.Equal(t, []string{"d", "b", "a", "c"}, names())

	Sort(entries, model.SortName, false)
	assert.Equal(t, []string{"a", "b", "c", "d"}, names())
}

type recordingReporter struct {
	mu      sync.Mutex
	updates []progress.Update
	results []progress.Result
}

func (r *recordingReporter) Update(u progress.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, u)
}

func (r *recordingReporter) Result(res progress.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func TestStream(t *testing.T) {
	root := tree(t)
	paths := []string{filepath.Join(root, "a"), filepath.Join(root, "missing"), filepath.Join(root, "c.bin")}

	rep := &recordingReporter{}
	Stream(context.Background(), paths, Options{Jobs: 2}, rep)

	require.Len(t, rep.results, 1)
	assert.NoError(t, rep.results[0].Err)
	assert.Equal(t, uint64(3500+12345), rep.results[0].Total)

	final := map[int]progress.Update{}
	scanning := 0
	for _, u := range rep.updates {
		if u.Stage == progress.StageScanning {
			scanning++
			continue
		}
		final[u.Index] = u
	}
	assert.Equal(t, 3, scanning)
	require.Len(t, final, 3)
	assert.Equal(t, progress.StageDone, final[0].Stage)
	assert.True(t, final[0].IsDir)
	assert.Equal(t, progress.StageError, final[1].Stage)
	assert.Error(t, final[1].Err)
	assert.Equal(t, uint64(12345), final[2].Size)
}
