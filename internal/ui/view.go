package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) catalogPaneWidth() int {
	w := m.width * 2 / 5
	if w < 30 {
		w = 30
	}
	return w
}

func (m Model) chatPaneWidth() int {
	w := m.width - m.catalogPaneWidth() - 4
	if w < 30 {
		w = 30
	}
	return w
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.detail != nil {
		return m.detailView()
	}

	title := titleStyle.Render("✨ Vanity — L'Oréal Beauty Advisor")

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.catalogView(), m.chatView())

	var footer string
	switch {
	case m.confirmClear:
		footer = popupStyle.Render("Clear the conversation? (y/n)")
	case m.toast != "":
		footer = toastStyle.Render(m.toast)
	default:
		footer = m.helpView()
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, body, footer)
}

func (m Model) catalogView() string {
	var b strings.Builder

	b.WriteString(m.search.View())
	b.WriteString("\n")

	cat := "all categories"
	if m.category != "" {
		cat = m.category
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Category: %s (ctrl+f)", cat)))
	b.WriteString("\n\n")

	if m.loadErr != nil {
		b.WriteString(mutedStyle.Render("Product catalog unavailable."))
	} else if len(m.filtered) == 0 {
		b.WriteString(mutedStyle.Render("No products match."))
	} else {
		for i, p := range m.visibleProducts() {
			prefix := "  "
			if m.focus == focusCatalog && i == m.cursor {
				prefix = cursorStyle.Render("> ")
			}
			mark := "○"
			if m.sel.Has(p.ID) {
				mark = selectedStyle.Render("●")
			}
			line := fmt.Sprintf("%s%s %s", prefix, mark, p.Name)
			b.WriteString(line + "\n")
			b.WriteString(mutedStyle.Render(fmt.Sprintf("     %s · %s", p.Brand, p.Category)) + "\n")
		}
		if m.pager.HasMore(len(m.filtered)) {
			b.WriteString(mutedStyle.Render(fmt.Sprintf(
				"\nShowing %d of %d — ctrl+n more, ctrl+a all",
				m.pager.Visible(len(m.filtered)), len(m.filtered))))
		}
	}

	b.WriteString("\n\n")
	if m.idx != nil {
		picks := m.sel.Products(m.idx)
		b.WriteString(selectedStyle.Render(fmt.Sprintf("Selected: %d", len(picks))))
		if len(picks) > 0 {
			tags := make([]string, len(picks))
			for i, p := range picks {
				tags[i] = fmt.Sprintf("alt+%d %s", i+1, p.Name)
			}
			b.WriteString("\n" + mutedStyle.Render(strings.Join(tags, " · ")))
		}
	} else {
		b.WriteString(selectedStyle.Render(fmt.Sprintf("Selected: %d", m.sel.Count())))
	}

	style := paneStyle
	if m.focus == focusCatalog {
		style = focusedPaneStyle
	}
	return style.Width(m.catalogPaneWidth()).Render(b.String())
}

func (m Model) chatView() string {
	var b strings.Builder

	b.WriteString(m.vp.View())
	b.WriteString("\n")

	if m.working {
		b.WriteString(m.spin.View() + mutedStyle.Render("Working on it...") + "\n")
	}

	if footer := m.mentionFooter(); footer != "" {
		b.WriteString(footer + "\n")
	}

	b.WriteString(m.chat.View())

	style := paneStyle
	if m.focus == focusChat {
		style = focusedPaneStyle
	}
	return style.Width(m.chatPaneWidth()).Render(b.String())
}

func (m Model) detailView() string {
	p := *m.detail

	desc := p.Description
	if desc == "" {
		desc = fallbackDescription
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(p.Name) + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("%s · %s", p.Brand, p.Category)) + "\n\n")
	b.WriteString(lipgloss.NewStyle().Width(60).Render(desc) + "\n\n")
	b.WriteString(helpStyle.Render("esc to close"))

	box := popupStyle.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) helpView() string {
	if m.focus == focusCatalog {
		return helpStyle.Render("tab chat · ↑/↓ move · enter select · alt+1..9 unselect · ctrl+d details · ctrl+x clear picks · ctrl+t rtl · ctrl+c quit")
	}
	return helpStyle.Render("tab products · enter send · ctrl+g routine · ctrl+k clear chat · ctrl+t rtl · ctrl+c quit")
}

// fallbackDescription stands in when a catalog entry has no description.
const fallbackDescription = "This premium L'Oréal product is designed to enhance your beauty routine with professional-quality results. Formulated with advanced ingredients and backed by years of research, it delivers exceptional performance for all your beauty needs."
