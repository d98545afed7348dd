// Package ui is the interactive terminal front end: a product browser pane
// and an advisor chat pane driven by a single Bubble Tea event loop. All
// state transitions happen in Update; nothing else mutates the model.
package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"vanity/internal/catalog"
	"vanity/internal/conversation"
	"vanity/internal/model"
	"vanity/internal/selection"
	"vanity/internal/store"
)

const (
	confirmTimeout = 10 * time.Second
	toastTimeout   = 2 * time.Second
)

// Advisor produces one chat reply per call. A nil Advisor means chat is
// disabled and the UI degrades to a product browser.
type Advisor interface {
	Generate(prompt string, selected []model.Product, history []model.Message) (string, error)
}

type focusArea int

const (
	focusCatalog focusArea = iota
	focusChat
)

// turnResultMsg carries the outcome of an advisor call back onto the
// event loop.
type turnResultMsg struct {
	text    string
	err     error
	routine bool
}

// confirmTimeoutMsg auto-dismisses the clear-chat confirmation. The gen
// counter discards timers from confirmations that were already resolved.
type confirmTimeoutMsg struct{ gen int }

// toastTimeoutMsg hides a transient notice.
type toastTimeoutMsg struct{ gen int }

// Options carries everything a Model needs. State is the persisted state
// loaded at startup.
type Options struct {
	Index   *catalog.Index
	LoadErr error
	Store   *store.Store
	Advisor Advisor
	Logger  *zap.Logger
	State   model.State
}

// Model is the whole application state.
type Model struct {
	idx     *catalog.Index
	loadErr error
	sel     *selection.Model
	conv    *conversation.Log
	st      *store.Store
	adv     Advisor
	logger  *zap.Logger

	search textinput.Model
	chat   textinput.Model
	vp     viewport.Model
	spin   spinner.Model

	focus    focusArea
	cursor   int
	category string
	filtered []model.Product
	pager    catalog.Pager

	rtl     bool
	busy    bool
	working bool

	detail       *model.Product
	notice       string
	confirmClear bool
	confirmGen   int
	toast        string
	toastGen     int

	renderer *glamour.TermRenderer
	width    int
	height   int
	ready    bool
}

// Placeholder strings follow the layout direction.
const (
	searchPlaceholderLTR = "Search products"
	searchPlaceholderRTL = "ابحثي عن المنتجات"
	chatPlaceholderLTR   = "Ask your beauty advisor"
	chatPlaceholderRTL   = "اسألي مستشارة الجمال"
)

// New builds the initial model from persisted state.
func New(opts Options) Model {
	search := textinput.New()
	search.Prompt = "🔍 "
	search.Width = 30

	chat := textinput.New()
	chat.Prompt = "💬 "
	chat.Width = 40
	chat.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := Model{
		idx:     opts.Index,
		loadErr: opts.LoadErr,
		sel:     selection.New(opts.State.Selection, opts.Store),
		conv:    conversation.New(opts.State.History, opts.Store),
		st:      opts.Store,
		adv:     opts.Advisor,
		logger:  opts.Logger,
		search:  search,
		chat:    chat,
		spin:    sp,
		focus:   focusChat,
		rtl:     opts.State.RTL,
		pager:   catalog.NewPager(),
	}
	m.applyDirection()
	m.refilter()
	return m
}

// applyDirection swaps the direction-dependent strings.
func (m *Model) applyDirection() {
	if m.rtl {
		m.search.Placeholder = searchPlaceholderRTL
		m.chat.Placeholder = chatPlaceholderRTL
	} else {
		m.search.Placeholder = searchPlaceholderLTR
		m.chat.Placeholder = chatPlaceholderLTR
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick)
}

// refilter recomputes the visible product list and rewinds paging. Every
// filter change resets the pager and the cursor.
func (m *Model) refilter() {
	if m.idx == nil {
		m.filtered = nil
		return
	}
	m.filtered = catalog.Filter(m.idx.Products(), m.search.Value(), m.category)
	m.pager.Reset()
	m.cursor = 0
}

// visibleProducts returns the current page window of the filtered list.
func (m Model) visibleProducts() []model.Product {
	n := m.pager.Visible(len(m.filtered))
	return m.filtered[:n]
}

// lastAssistantText returns the newest assistant message, or "".
func (m Model) lastAssistantText() string {
	msgs := m.conv.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == model.RoleAssistant {
			return msgs[i].Content
		}
	}
	return ""
}

func confirmTimeoutCmd(gen int) tea.Cmd {
	return tea.Tick(confirmTimeout, func(time.Time) tea.Msg { return confirmTimeoutMsg{gen: gen} })
}

func toastTimeoutCmd(gen int) tea.Cmd {
	return tea.Tick(toastTimeout, func(time.Time) tea.Msg { return toastTimeoutMsg{gen: gen} })
}
