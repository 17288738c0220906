package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"botwatch"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	categoryOK      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	categoryWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	categoryError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	categoryInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	categoryNeutral = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// styleFor returns the lipgloss style for a category. Unknown labels get
// no category styling.
func styleFor(c botwatch.Category) lipgloss.Style {
	switch c {
	case botwatch.CategoryOK:
		return categoryOK
	case botwatch.CategoryWarning:
		return categoryWarning
	case botwatch.CategoryError:
		return categoryError
	case botwatch.CategoryInfo:
		return categoryInfo
	case botwatch.CategoryNeutral:
		return categoryNeutral
	default:
		return lipgloss.NewStyle()
	}
}

func renderField(f botwatch.Field) string {
	return styleFor(f.Category).Render(f.Text)
}

// View renders the dashboard.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	if !a.haveState {
		return fmt.Sprintf("\n  %s fetching status...\n", a.spin.View())
	}

	w := a.width - 4

	header := titleStyle.Render(" "+a.title+" ") + "  " + renderField(a.state.BotStatus)

	statusPane := paneStyle.Width(w).Render(a.renderStatus())
	countersPane := paneStyle.Width(w).Render(a.renderCounters())
	activityPane := paneStyle.Width(w).Render(a.renderActivity())

	footer := a.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left,
		header, statusPane, countersPane, activityPane, footer)
}

func (a App) renderStatus() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render("Discord:    ") + renderField(a.state.DiscordStatus) + "\n")
	b.WriteString(labelStyle.Render("X API:      ") + renderField(a.state.XAPIStatus) + "\n")
	b.WriteString(labelStyle.Render("Last call:  ") + a.state.XAPILastAttempt + "\n")
	b.WriteString(labelStyle.Render("Channel:    ") + a.state.Channel)
	return b.String()
}

func (a App) renderCounters() string {
	return labelStyle.Render("Posts  ") +
		"attempted " + a.state.PostsAttempted +
		dimStyle.Render("  ·  ") +
		"succeeded " + categoryOK.Render(a.state.PostsSucceeded) +
		dimStyle.Render("  ·  ") +
		"failed " + categoryError.Render(a.state.PostsFailed)
}

func (a App) renderActivity() string {
	title := fmt.Sprintf("Recent activity (%d)", a.state.ActivityCount)

	// leave room for title, panes, and footer
	maxRows := max(a.height-14, 3)

	var b strings.Builder
	b.WriteString(titleStyle.Render(title) + "\n")
	for i, row := range a.state.Activity {
		if i >= maxRows {
			b.WriteString(dimStyle.Render(fmt.Sprintf("… %d more", len(a.state.Activity)-maxRows)))
			break
		}
		line := dimStyle.Render(row.Time) + "  " +
			truncate(row.Text, max(a.width-40, 16)) + "  " +
			styleFor(row.Category).Render(row.Status)
		b.WriteString(line + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) renderFooter() string {
	left := " last updated " + a.state.LastUpdated
	if a.state.Err != nil {
		left = " " + categoryError.Render("✗") + left
	}
	right := "q:quit "

	gap := a.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return helpStyle.Render(left + strings.Repeat(" ", gap) + right)
}

// truncate shortens s to maxLen runes. Indexing is rune-based so that
// activity text carrying emoji is never cut mid-sequence.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
