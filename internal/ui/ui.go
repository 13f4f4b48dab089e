package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/lix/internal/models"
	"github.com/desertthunder/lix/internal/services"
	"github.com/desertthunder/lix/internal/store"
	"github.com/desertthunder/lix/internal/tasks"
)

// maxPostLength mirrors LinkedIn's character limit for post commentary.
const maxPostLength = 3000

// ViewState represents the current view in the TUI.
type ViewState int

const (
	FeedView ViewState = iota
	ComposeView
	ConfirmView
	PublishView
	ResultView
)

// Model represents the TUI application state.
type Model struct {
	ctx          context.Context
	view         ViewState
	service      services.Service
	engine       *tasks.PostEngine
	record       store.TokenRecord
	width        int
	height       int
	feedList     list.Model
	posts        []models.Post
	compose      textarea.Model
	drafting     bool
	composeErr   error
	progressChan chan tasks.ProgressUpdate
	doneChan     chan publishCompleteMsg
	progress     tasks.ProgressUpdate
	result       *tasks.PublishResult
	err          error
	help         help.Model
	keys         keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The token record supplies the access token and author URN for every
// LinkedIn call the TUI makes.
func NewModel(ctx context.Context, service services.Service, engine *tasks.PostEngine, record store.TokenRecord) *Model {
	compose := textarea.New()
	compose.Placeholder = "What do you want to talk about?"
	compose.CharLimit = maxPostLength
	compose.ShowLineNumbers = false
	compose.SetHeight(8)

	return &Model{
		ctx:     ctx,
		view:    FeedView,
		service: service,
		engine:  engine,
		record:  record,
		compose: compose,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching the member's posts.
func (m *Model) Init() tea.Cmd {
	return m.fetchPosts()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.feedList.Width() == 0 {
			m.feedList.SetSize(msg.Width-4, msg.Height-8)
		}
		m.compose.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case FeedView:
			return m.handleFeedKeys(msg)
		case ComposeView:
			return m.handleComposeKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case ResultView:
			return m.handleResultKeys(msg)
		}

	case postsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.posts = msg.posts
		items := make([]list.Item, len(msg.posts))
		for i, post := range msg.posts {
			items[i] = postItem{post: post}
		}
		m.feedList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.feedList.Title = "Your LinkedIn Posts"
		m.feedList.SetSize(m.width-4, m.height-8)
		return m, nil

	case draftReadyMsg:
		m.drafting = false
		if msg.err != nil {
			m.composeErr = msg.err
			return m, nil
		}
		m.composeErr = nil
		m.compose.SetValue(msg.draft.Text)
		return m, nil

	case progressUpdateMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case publishCompleteMsg:
		m.result = msg.result
		m.err = msg.err
		m.view = ResultView
		m.progressChan = nil
		m.doneChan = nil
		return m, nil
	}

	return m.updateActive(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil && m.view != ResultView {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case FeedView:
		return m.renderFeed()
	case ComposeView:
		return m.renderCompose()
	case ConfirmView:
		return m.renderConfirm()
	case PublishView:
		return m.renderPublish()
	case ResultView:
		return m.renderResult()
	default:
		return ""
	}
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "c":
		m.view = ComposeView
		m.composeErr = nil
		return m, m.compose.Focus()
	case "r":
		return m, m.fetchPosts()
	}

	var cmd tea.Cmd
	m.feedList, cmd = m.feedList.Update(msg)
	return m, cmd
}

func (m *Model) handleComposeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.compose.Blur()
		m.view = FeedView
		return m, nil
	case "ctrl+g":
		if m.drafting {
			return m, nil
		}
		m.drafting = true
		m.composeErr = nil
		return m, m.generateDraft(m.compose.Value())
	case "ctrl+s":
		if strings.TrimSpace(m.compose.Value()) == "" {
			m.composeErr = errors.New("post content cannot be empty")
			return m, nil
		}
		m.compose.Blur()
		m.view = ConfirmView
		return m, nil
	}

	var cmd tea.Cmd
	m.compose, cmd = m.compose.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "n", "esc":
		m.view = ComposeView
		return m, m.compose.Focus()
	case "y":
		m.view = PublishView
		return m, m.startPublish()
	}
	return m, nil
}

func (m *Model) handleResultKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.view = FeedView
		m.result = nil
		m.err = nil
		m.compose.Reset()
		return m, m.fetchPosts()
	}
	return m, nil
}

func (m *Model) updateActive(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case FeedView:
		m.feedList, cmd = m.feedList.Update(msg)
	case ComposeView:
		m.compose, cmd = m.compose.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchPosts() tea.Cmd {
	return func() tea.Msg {
		posts, err := m.service.FetchPosts(m.ctx, m.record.AccessToken, m.record.AuthorURN)
		return postsFetchedMsg{posts: posts, err: err}
	}
}

func (m *Model) generateDraft(prompt string) tea.Cmd {
	return func() tea.Msg {
		draft, err := m.engine.Draft(m.ctx, nil, prompt)
		return draftReadyMsg{draft: draft, err: err}
	}
}

func (m *Model) startPublish() tea.Cmd {
	progressChan := make(chan tasks.ProgressUpdate, 50)
	doneChan := make(chan publishCompleteMsg, 1)
	m.progressChan = progressChan
	m.doneChan = doneChan
	text := m.compose.Value()

	go func() {
		result, err := m.engine.Publish(m.ctx, progressChan, m.record.AccessToken, m.record.AuthorURN, text, false)
		doneChan <- publishCompleteMsg{result: result, err: err}
		close(progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	progressChan := m.progressChan
	doneChan := m.doneChan
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		update, ok := <-progressChan
		if !ok {
			return <-doneChan
		}
		return progressUpdateMsg(update)
	}
}

func (m *Model) renderFeed() string {
	helpKeys := []key.Binding{m.keys.compose, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.feedList.View(), helpView)
}

func (m *Model) renderCompose() string {
	title := styles.title.Render("Compose Post")

	status := ""
	if m.drafting {
		status = styles.help.Render("Generating draft with Gemini...")
	} else if m.composeErr != nil {
		status = styles.warn.Render(m.composeErr.Error())
	}

	helpKeys := []key.Binding{m.keys.draft, m.keys.submit, m.keys.back}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s\n%s", title, m.compose.View(), status, helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render("Publish this post to LinkedIn?")
	text := strings.TrimSpace(m.compose.Value())
	info := fmt.Sprintf("\n%s\n\nCharacters: %d\n", text, len(text))

	helpKeys := []key.Binding{m.keys.yes, m.keys.no, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n%s", title, info, helpView)
}

func (m *Model) renderPublish() string {
	title := styles.title.Render("Publishing Post")

	var phase string
	switch m.progress.Phase {
	case tasks.GenerateDraft:
		phase = "Reworking content with Gemini..."
	case tasks.PublishPost:
		phase = fmt.Sprintf("Publishing (%d/%d)", m.progress.Step, m.progress.Total)
	default:
		phase = "Processing..."
	}

	return fmt.Sprintf("%s\n\n%s\n%s", title, phase, m.progress.Message)
}

func (m *Model) renderResult() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Publish failed: %v\n\nPress r to try again, q to quit", m.err))
	}

	if m.result == nil {
		return styles.err.Render("No result available\n\nPress r to try again, q to quit")
	}

	title := styles.ok.Render("✓ Post Published!")
	info := fmt.Sprintf("\nShare ID: %s\nCharacters: %d", m.result.ShareID, len(m.result.Text))
	if m.result.Enhanced {
		info += fmt.Sprintf("\n\n%s", styles.warn.Render("Content was reworked by Gemini before publishing."))
	}

	helpKeys := []key.Binding{m.keys.restart, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}
