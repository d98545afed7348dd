package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vanity/internal/linkify"
	"vanity/internal/model"
)

// renderAssistant renders a reply as markdown when a renderer is available,
// falling back to inline-highlighted plain text otherwise.
func (m Model) renderAssistant(text string) string {
	if m.renderer != nil {
		if out, err := m.renderer.Render(text); err == nil {
			return strings.TrimRight(out, "\n")
		}
	}
	return m.highlightMentions(text)
}

// highlightMentions styles exact product-name matches in place. This is
// presentation only; the stored message text is never modified.
func (m Model) highlightMentions(text string) string {
	if m.idx == nil {
		return text
	}
	var sb strings.Builder
	for _, seg := range linkify.Annotate(text, m.idx.Products()) {
		if seg.ProductID != 0 {
			sb.WriteString(mentionStyle.Render(seg.Text))
		} else {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// mentionFooter lists the products named in the latest reply with their
// alt+digit shortcuts.
func (m Model) mentionFooter() string {
	if m.idx == nil {
		return ""
	}
	mentions := linkify.Mentions(m.lastAssistantText(), m.idx.Products())
	if len(mentions) == 0 {
		return ""
	}
	if len(mentions) > 9 {
		mentions = mentions[:9]
	}
	parts := make([]string, len(mentions))
	for i, p := range mentions {
		parts[i] = fmt.Sprintf("alt+%d %s", i+1, p.Name)
	}
	return mutedStyle.Render("Mentioned: " + strings.Join(parts, " · "))
}

// refreshChat rebuilds the transcript and pins the viewport to the newest
// message. No-op until the first window size arrives.
func (m *Model) refreshChat() {
	if !m.ready {
		return
	}

	var b strings.Builder
	b.WriteString(mutedStyle.Render("👋 Hello! I'm your beauty advisor. Ask me anything, or pick products and request a routine."))
	b.WriteString("\n\n")

	for _, msg := range m.conv.Messages() {
		switch msg.Role {
		case model.RoleUser:
			b.WriteString(userMsgStyle.Render("You: ") + msg.Content)
		case model.RoleAssistant:
			b.WriteString(assistantMsgStyle.Render(m.renderAssistant(msg.Content)))
		}
		b.WriteString("\n\n")
	}

	if m.notice != "" {
		b.WriteString(mutedStyle.Render(m.notice))
		b.WriteString("\n\n")
	}

	content := strings.TrimRight(b.String(), "\n")
	if m.rtl {
		content = lipgloss.NewStyle().Width(m.vp.Width).Align(lipgloss.Right).Render(content)
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}
