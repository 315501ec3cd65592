package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/likeshift/internal/models"
	"github.com/desertthunder/likeshift/internal/tasks"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	CollectView ViewState = iota
	VideoListView
	ConfirmView
	RunView
	ResultView
)

// RunOpts carries the pipeline configuration the TUI runs with.
type RunOpts struct {
	Collect    tasks.CollectOpts
	Backup     tasks.BackupOpts
	Purge      bool
	PurgeDelay time.Duration
}

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	engine       *tasks.MigrationEngine
	opts         RunOpts
	width        int
	height       int
	videoList    list.Model
	set          *models.VideoSet
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate
	logLines     []string
	backup       *models.BackupOutcome
	report       *models.MutationRunReport
	err          error
	help         help.Model
	keys         keyMap
}

type progressUpdateMsg tasks.ProgressUpdate

// channelClosedMsg signals that the active pipeline goroutine finished and
// closed the progress channel; interpretation depends on the current view.
type channelClosedMsg struct{}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.MigrationEngine, opts RunOpts) *Model {
	return &Model{
		ctx:    ctx,
		view:   CollectView,
		engine: engine,
		opts:   opts,
		help:   help.New(),
		keys:   newKeyMap(),
	}
}

// Init starts the collection loop.
func (m *Model) Init() tea.Cmd {
	return m.startCollect()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.videoList.Width() == 0 {
			m.videoList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case CollectView, RunView:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		case VideoListView:
			return m.handleVideoListKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		m.logLines = append(m.logLines, m.progress.Message)
		return m, m.waitForProgress()

	case channelClosedMsg:
		m.progressChan = nil
		switch m.view {
		case CollectView:
			if m.err != nil {
				m.view = ResultView
				return m, nil
			}
			items := make([]list.Item, 0, m.set.Len())
			for _, video := range m.set.Videos() {
				items = append(items, videoItem{video: video})
			}
			m.videoList = list.New(items, list.NewDefaultDelegate(), 0, 0)
			m.videoList.Title = fmt.Sprintf("Liked Videos (%d)", m.set.Len())
			m.videoList.SetSize(m.width-4, m.height-8)
			m.view = VideoListView
		case RunView:
			m.view = ResultView
		}
		return m, nil
	}

	if m.view == VideoListView {
		var cmd tea.Cmd
		m.videoList, cmd = m.videoList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case CollectView:
		return m.renderCollect()
	case VideoListView:
		return m.renderVideoList()
	case ConfirmView:
		return m.renderConfirm()
	case RunView:
		return m.renderRun()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleVideoListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "n", "esc":
		m.view = VideoListView
		return m, nil
	case "y":
		m.view = RunView
		m.logLines = nil
		return m, m.startRun()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "enter":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) startCollect() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ch := m.progressChan

	go func() {
		set, err := m.engine.Collect(m.ctx, ch, m.opts.Collect)
		m.set = set
		m.err = err
		close(ch)
	}()

	return m.waitForProgress()
}

func (m *Model) startRun() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 50)
	ch := m.progressChan

	go func() {
		backup, err := m.engine.Backup(m.ctx, ch, m.set, m.opts.Backup)
		m.backup = backup
		m.err = err

		if err == nil && m.opts.Purge {
			report, perr := m.engine.Purge(m.ctx, ch, m.set, backup, m.opts.PurgeDelay)
			m.report = report
			m.err = perr
		}
		close(ch)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	ch := m.progressChan
	return func() tea.Msg {
		if ch == nil {
			return channelClosedMsg{}
		}

		update, ok := <-ch
		if !ok {
			return channelClosedMsg{}
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderCollect() string {
	title := styles.title.Render("Collecting liked videos")
	return fmt.Sprintf("%s\n\n%s\n%s", title, m.progress.Message, styles.help.Render("ctrl+c to abort"))
}

func (m *Model) renderVideoList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Back up %d liked videos?", m.set.Len()))
	info := "\nA JSON export and a private backup playlist will be created.\n"
	if m.opts.Purge {
		info += styles.warn.Render("After a verified backup, every like will be removed.") + "\n"
	}

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s%s\n%s", title, info, helpView)
}

func (m *Model) renderRun() string {
	title := styles.title.Render("Migration in progress")

	lines := m.logLines
	if max := m.height - 8; max > 0 && len(lines) > max {
		lines = lines[len(lines)-max:]
	}

	body := ""
	for _, line := range lines {
		body += line + "\n"
	}

	return fmt.Sprintf("%s\n%s", title, body)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Run failed: %v", m.err)) + "\n\n" + styles.help.Render("q to quit")
	}

	title := styles.ok.Render("✓ Run complete")
	info := ""
	if m.backup != nil {
		info += fmt.Sprintf("\nBackup playlist: %s", m.backup.PlaylistID)
		if m.backup.ExportPath != "" {
			info += fmt.Sprintf("\nExport artifact: %s", m.backup.ExportPath)
		}
	}
	if m.report != nil {
		info += fmt.Sprintf("\nUnliked: %d/%d (%d failed)", m.report.Succeeded, m.report.Attempted, m.report.Failed)
	}

	return fmt.Sprintf("%s%s\n\n%s", title, info, styles.help.Render("q to quit"))
}
