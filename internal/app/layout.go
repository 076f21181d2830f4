package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jvsales/faultctl/internal/session"
	"github.com/jvsales/faultctl/internal/ui"
)

const sidebarWidth = 22 // 20 content + 2 border/padding

func renderIdentityBar(sess *session.Session, online bool, width int) string {
	identity := ""
	if sess != nil {
		identity = fmt.Sprintf("Operador: %s (%s)  Turno: %s", sess.OperatorName, sess.Registration, sess.Shift)
	}
	link := ui.SuccessBadge("ONLINE")
	if !online {
		link = ui.ErrorBadge("OFFLINE")
	}
	gap := width - lipgloss.Width(identity) - lipgloss.Width(link) - 2
	if gap < 1 {
		gap = 1
	}
	return ui.StatusBarStyle.Width(width).Render(identity + strings.Repeat(" ", gap) + link)
}

func renderBanner(text string, kind bannerKind, failed int, width int) string {
	if text == "" && failed > 0 {
		text = fmt.Sprintf("%d registro(s) aguardando reenvio", failed)
		kind = bannerInfo
	}
	switch kind {
	case bannerSuccess:
		return ui.BannerSuccessStyle.Width(width).Render(text)
	case bannerError:
		return ui.BannerErrorStyle.Width(width).Render(text)
	case bannerInfo:
		return ui.BannerInfoStyle.Width(width).Render(text)
	default:
		return ui.StatusBarStyle.Width(width).Render("")
	}
}

func renderSidebar(pages []PageID, active PageID, pageMap map[PageID]Page, height int, focused bool) string {
	var b strings.Builder
	title := "faultctl"
	if focused {
		title = ui.BoldStyle.Render("faultctl [FOCO]")
	} else {
		title = ui.TitleStyle.Render("faultctl")
	}
	b.WriteString(title)
	b.WriteString("\n\n")

	for _, id := range pages {
		p := pageMap[id]
		if id == active {
			b.WriteString(ui.SidebarActiveStyle.Render("▸ " + p.Name()))
		} else {
			b.WriteString(ui.SidebarItemStyle.Render("  " + p.Name()))
		}
		b.WriteString("\n")
	}

	style := ui.SidebarStyle.Height(height)
	if focused {
		style = style.BorderForeground(ui.Primary)
	}
	return style.Render(b.String())
}

func renderStatusBar(pageHelp []key.Binding, width int, focus FocusArea) string {
	var parts []string

	if focus == FocusSidebar {
		parts = append(parts,
			ui.StatusKey("↑/↓", "navegar"),
			ui.StatusKey("enter", "selecionar"),
		)
	} else {
		for _, kb := range pageHelp {
			if kb.Enabled() {
				parts = append(parts, ui.StatusKey(kb.Help().Key, kb.Help().Desc))
			}
		}
	}

	parts = append(parts,
		ui.StatusKey("tab", "foco"),
		ui.StatusKey("ctrl+l", "sair da sessão"),
		ui.StatusKey("q", "sair"),
	)

	line := strings.Join(parts, "  ")
	return ui.StatusBarStyle.Width(width).Render(line)
}

func renderLayout(identityBar, banner, sidebar, content, statusBar string) string {
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, content)
	return lipgloss.JoinVertical(lipgloss.Left, identityBar, banner, main, statusBar)
}
