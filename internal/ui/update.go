package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"vanity/internal/advisor"
	"vanity/internal/linkify"
	"vanity/internal/model"
)

// Update implements tea.Model. It is the only place application state
// changes.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.resize(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case turnResultMsg:
		return m.finishTurn(msg), nil

	case confirmTimeoutMsg:
		if m.confirmClear && msg.gen == m.confirmGen {
			m.confirmClear = false
		}
		return m, nil

	case toastTimeoutMsg:
		if msg.gen == m.toastGen {
			m.toast = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	// The detail overlay is modal: it captures every key until dismissed.
	if m.detail != nil {
		switch key {
		case "esc", "ctrl+d", "q":
			m.detail = nil
		}
		return m, nil
	}

	// So is the clear-chat confirmation.
	if m.confirmClear {
		switch key {
		case "y", "Y":
			return m.clearChat()
		case "n", "N", "esc":
			m.confirmClear = false
		}
		return m, nil
	}

	switch key {
	case "tab":
		return m.switchFocus(), nil

	case "ctrl+t":
		m.rtl = !m.rtl
		m.st.SaveRTL(m.rtl)
		m.applyDirection()
		m.refreshChat()
		return m, nil
	}

	if m.focus == focusCatalog {
		return m.handleCatalogKey(msg)
	}
	return m.handleChatKey(msg)
}

func (m Model) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "down":
		if m.cursor < len(m.visibleProducts())-1 {
			m.cursor++
		}
		return m, nil

	case "enter":
		vis := m.visibleProducts()
		if m.cursor < len(vis) {
			m.sel.Toggle(vis[m.cursor].ID)
		}
		return m, nil

	case "ctrl+f":
		m.cycleCategory()
		return m, nil

	case "ctrl+d":
		vis := m.visibleProducts()
		if m.cursor < len(vis) {
			p := vis[m.cursor]
			m.detail = &p
		}
		return m, nil

	case "ctrl+n":
		m.pager.ShowMore(len(m.filtered))
		return m, nil

	case "ctrl+a":
		m.pager.ShowAll()
		return m, nil

	case "ctrl+x":
		m.sel.Clear()
		return m, nil
	}

	// Alt+digit removes the Nth selected tag, whether or not the current
	// filter shows that product's card.
	if n, ok := altDigit(msg.String()); ok {
		return m.removeTag(n), nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

func (m Model) handleChatKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		prompt := strings.TrimSpace(m.chat.Value())
		if prompt == "" || m.busy {
			return m, nil
		}
		m.chat.SetValue("")
		return m.startTurn(prompt, prompt, false)

	case "ctrl+g":
		return m.startRoutine()

	case "ctrl+k":
		m.confirmClear = true
		m.confirmGen++
		return m, confirmTimeoutCmd(m.confirmGen)
	}

	// Alt+digit opens the Nth product mentioned in the latest reply.
	if n, ok := altDigit(key); ok {
		return m.openMention(n), nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	cmds = append(cmds, cmd)
	m.vp, cmd = m.vp.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func altDigit(key string) (int, bool) {
	if len(key) != 5 || !strings.HasPrefix(key, "alt+") {
		return 0, false
	}
	d := key[4]
	if d < '1' || d > '9' {
		return 0, false
	}
	return int(d - '0'), true
}

// removeTag unselects the Nth entry of the rendered tag list. Indices
// follow the resolved products so they always match what is on screen.
func (m Model) removeTag(n int) Model {
	if m.idx == nil {
		return m
	}
	picks := m.sel.Products(m.idx)
	if n > len(picks) {
		return m
	}
	m.sel.Toggle(picks[n-1].ID)
	return m
}

func (m Model) openMention(n int) Model {
	if m.idx == nil {
		return m
	}
	mentions := linkify.Mentions(m.lastAssistantText(), m.idx.Products())
	if n > len(mentions) {
		return m
	}
	p := mentions[n-1]
	m.detail = &p
	return m
}

func (m *Model) cycleCategory() {
	if m.idx == nil {
		return
	}
	cats := m.idx.Categories()
	if len(cats) == 0 {
		return
	}
	if m.category == "" {
		m.category = cats[0]
	} else {
		next := ""
		for i, c := range cats {
			if c == m.category && i+1 < len(cats) {
				next = cats[i+1]
				break
			}
		}
		m.category = next
	}
	m.refilter()
}

// startTurn appends and persists the user's visible message, disables the
// chat controls, and launches the advisor call off the event loop. The
// history snapshot is taken after the append so the user's turn is part
// of the context window.
func (m Model) startTurn(visible, prompt string, routine bool) (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	// No provider: a render-only notice in the transcript. It never enters
	// the conversation log, so it can never be persisted.
	if m.adv == nil {
		m.notice = "Chat is not configured. Set OPENAI_API_KEY or VANITY_PROXY_URL to talk to your advisor."
		m.refreshChat()
		return m, nil
	}

	m.conv.Append(model.Message{Role: model.RoleUser, Content: visible}, true)
	m.busy = true
	m.working = true
	m.refreshChat()

	history := m.conv.Recent(advisor.HistoryWindow)
	var selected []model.Product
	if m.idx != nil {
		selected = m.sel.Products(m.idx)
	}
	adv := m.adv

	return m, tea.Batch(m.spin.Tick, func() tea.Msg {
		text, err := adv.Generate(prompt, selected, history)
		return turnResultMsg{text: text, err: err, routine: routine}
	})
}

func (m Model) startRoutine() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	if m.sel.Count() == 0 {
		m.conv.Append(model.Message{Role: model.RoleAssistant, Content: advisor.SelectFirstPrompt}, true)
		m.refreshChat()
		return m, nil
	}
	return m.startTurn(advisor.RoutineUserTurn, advisor.RoutineInstruction, true)
}

// finishTurn re-enables the chat controls no matter how the turn ended.
// Failures become a fixed, persisted apology so the transcript stays
// coherent across restarts.
func (m Model) finishTurn(msg turnResultMsg) Model {
	m.busy = false
	m.working = false

	text := msg.text
	if msg.err != nil {
		m.logger.Error("advisor turn failed", zap.Error(msg.err))
		if msg.routine {
			text = advisor.ApologyRoutine
		} else {
			text = advisor.ApologyChat
		}
	}

	m.conv.Append(model.Message{Role: model.RoleAssistant, Content: text}, true)
	m.refreshChat()
	return m
}

func (m Model) clearChat() (tea.Model, tea.Cmd) {
	m.conv.Clear()
	m.confirmClear = false
	m.refreshChat()
	return m.showToast("Conversation cleared!")
}

func (m Model) showToast(text string) (tea.Model, tea.Cmd) {
	m.toast = text
	m.toastGen++
	return m, toastTimeoutCmd(m.toastGen)
}

func (m Model) switchFocus() Model {
	if m.focus == focusCatalog {
		m.focus = focusChat
		m.search.Blur()
		m.chat.Focus()
	} else {
		m.focus = focusCatalog
		m.chat.Blur()
		m.search.Focus()
	}
	return m
}

func (m Model) resize(msg tea.WindowSizeMsg) Model {
	m.width = msg.Width
	m.height = msg.Height

	chatWidth := m.chatPaneWidth()
	vpHeight := msg.Height - chatChromeHeight
	if vpHeight < 3 {
		vpHeight = 3
	}

	if !m.ready {
		m.vp = viewport.New(chatWidth, vpHeight)
		m.ready = true
	} else {
		m.vp.Width = chatWidth
		m.vp.Height = vpHeight
	}

	if r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(chatWidth-2),
	); err == nil {
		m.renderer = r
	}

	m.search.Width = m.catalogPaneWidth() - 4
	m.chat.Width = chatWidth - 4
	m.refreshChat()
	return m
}
