package ui

import (
	"cmp"
	"context"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	bubblesprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"fit4/internal/model"
	"fit4/internal/progress"
	"fit4/internal/scan"
)

type Model struct {
	ctx    context.Context
	cancel context.CancelFunc

	opts model.Options

	// Current directory and its scan
	dir        string
	gen        int
	scanCancel context.CancelFunc
	scanning   bool
	listErr    error
	entries    []*entryState
	selected   int
	total      uint64

	// UI
	width, height int
	styles        Styles
	keys          keyMap
	help          help.Model
	bar           bubblesprogress.Model

	// Internal event channel used by reporter to feed tea messages
	eventCh chan tea.Msg
}

func NewModel(ctx context.Context, dir string, opts model.Options) Model {
	c, cancel := context.WithCancel(ctx)
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return Model{
		ctx:     c,
		cancel:  cancel,
		opts:    opts,
		dir:     dir,
		styles:  defaultStyles(),
		keys:    defaultKeys(),
		help:    help.New(),
		bar:     bubblesprogress.New(bubblesprogress.WithDefaultGradient(), bubblesprogress.WithWidth(20), bubblesprogress.WithoutPercentage()),
		eventCh: make(chan tea.Msg, 256),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listenEventsCmd(), m.listCmd(m.gen, m.dir))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil
	case ctxDoneMsg:
		return m, tea.Quit
	case listedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		return m, m.startScan(msg)
	case entryUpdateMsg:
		if msg.gen == m.gen {
			m.applyUpdate(msg.U)
		}
		return m, m.listenEventsCmd()
	case scanDoneMsg:
		if msg.gen == m.gen {
			m.scanning = false
			m.total = msg.R.Total
		}
		return m, m.listenEventsCmd()
	}

	// Update per-entry spinners
	var cmds []tea.Cmd
	for _, e := range m.entries {
		if e.done() {
			continue
		}
		var c tea.Cmd
		e.spinner, c = e.spinner.Update(msg)
		if c != nil {
			cmds = append(cmds, c)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.stopScan()
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(msg, m.keys.Down):
		if m.selected < len(m.entries)-1 {
			m.selected++
		}
	case key.Matches(msg, m.keys.Open):
		if m.selected < len(m.entries) {
			if e := m.entries[m.selected]; e.isDir && e.done() {
				return m.changeDir(e.path)
			}
		}
	case key.Matches(msg, m.keys.Back):
		if parent := filepath.Dir(m.dir); parent != m.dir {
			return m.changeDir(parent)
		}
	}
	return m, nil
}

func (m Model) changeDir(dir string) (tea.Model, tea.Cmd) {
	m.stopScan()
	m.gen++
	m.dir = dir
	m.entries = nil
	m.selected = 0
	m.total = 0
	m.listErr = nil
	return m, m.listCmd(m.gen, dir)
}

func (m *Model) stopScan() {
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
	m.scanning = false
}

func (m *Model) startScan(msg listedMsg) tea.Cmd {
	if msg.err != nil {
		m.listErr = msg.err
		return nil
	}
	m.entries = make([]*entryState, len(msg.paths))
	for i, p := range msg.paths {
		m.entries[i] = newEntryState(p)
	}
	if len(msg.paths) == 0 {
		return nil
	}

	sctx, cancel := context.WithCancel(m.ctx)
	m.scanCancel = cancel
	m.scanning = true
	rep := teaReporter{ctx: sctx, ch: m.eventCh, gen: msg.gen}
	sopts := scan.Options{Jobs: m.opts.Jobs, All: m.opts.All}
	go scan.Stream(sctx, msg.paths, sopts, rep)

	cmds := make([]tea.Cmd, 0, len(m.entries))
	for _, e := range m.entries {
		cmds = append(cmds, e.spinner.Tick)
	}
	return tea.Batch(cmds...)
}

// applyUpdate records a scan event. Entries are matched by path because
// sorting reorders m.entries while the scan is running.
func (m *Model) applyUpdate(u progress.Update) {
	e := m.find(u.Path)
	if e == nil {
		return
	}
	e.stage = u.Stage
	if !e.done() {
		return
	}
	e.size = u.Size
	e.isDir = u.IsDir
	e.err = u.Err
	m.total += u.Size
	m.sortEntries()
}

func (m *Model) find(path string) *entryState {
	for _, e := range m.entries {
		if e.path == path {
			return e
		}
	}
	return nil
}

// sortEntries orders finished entries before pending ones and keeps the
// cursor on the same entry.
func (m *Model) sortEntries() {
	var cur string
	if m.selected < len(m.entries) {
		cur = m.entries[m.selected].path
	}
	slices.SortStableFunc(m.entries, func(a, b *entryState) int {
		if a.done() != b.done() {
			if a.done() {
				return -1
			}
			return 1
		}
		c := 0
		if m.opts.Sort != model.SortName {
			c = cmp.Compare(b.size, a.size)
		}
		if c == 0 {
			c = strings.Compare(a.name, b.name)
		}
		if m.opts.Reverse {
			return -c
		}
		return c
	})
	for i, e := range m.entries {
		if e.path == cur {
			m.selected = i
			break
		}
	}
}

func (m Model) maxSize() uint64 {
	var mx uint64
	for _, e := range m.entries {
		mx = max(mx, e.size)
	}
	return mx
}

func (m Model) listenEventsCmd() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
			return ctxDoneMsg{}
		case msg := <-m.eventCh:
			return msg
		}
	}
}

func (m Model) listCmd(gen int, dir string) tea.Cmd {
	opts := scan.Options{All: m.opts.All}
	return func() tea.Msg {
		paths, err := scan.List(dir, opts)
		return listedMsg{gen: gen, paths: paths, err: err}
	}
}

type teaReporter struct {
	ctx context.Context
	ch  chan tea.Msg
	gen int
}

func (r teaReporter) Update(u progress.Update) {
	msg := entryUpdateMsg{gen: r.gen, U: u}
	// Scanning notices may be dropped; final sizes may not.
	if u.Stage == progress.StageScanning {
		select {
		case r.ch <- msg:
		default:
		}
		return
	}
	r.send(msg)
}

func (r teaReporter) Result(res progress.Result) {
	r.send(scanDoneMsg{gen: r.gen, R: res})
}

func (r teaReporter) send(msg tea.Msg) {
	select {
	case r.ch <- msg:
	case <-r.ctx.Done():
	}
}
