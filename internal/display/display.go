// Package display provides terminal formatting for hankyo output.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sawadari/hankyo/internal/types"
)

var (
	Muted    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
	Dim      = lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af"))
	Bold     = lipgloss.NewStyle().Bold(true)
	Success  = lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a"))
	Warn     = lipgloss.NewStyle().Foreground(lipgloss.Color("#d97706"))
	ErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc2626"))
)

// StatusDot returns a colored marker for a message outcome.
func StatusDot(status string) string {
	switch status {
	case types.StatusDelivered:
		return Success.Render("●")
	case types.StatusFailed, types.StatusError:
		return ErrStyle.Render("●")
	case types.StatusNoData:
		return Warn.Render("○")
	case types.StatusNotRelevant:
		return Muted.Render("○")
	case types.StatusSkipped:
		return Dim.Render("◌")
	default:
		return Dim.Render("·")
	}
}

// StatusLabel returns a fixed-width styled label for a message outcome.
func StatusLabel(status string) string {
	label := fmt.Sprintf("%-12s", status)
	switch status {
	case types.StatusDelivered:
		return Success.Render(label)
	case types.StatusFailed, types.StatusError:
		return ErrStyle.Render(label)
	case types.StatusNoData:
		return Warn.Render(label)
	default:
		return Muted.Render(label)
	}
}

// TimeAgo formats an ISO date string as a relative time.
func TimeAgo(isoDate string) string {
	if isoDate == "" {
		return ""
	}

	var t time.Time
	var err error
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05Z", "2006-01-02 15:04:05", time.RFC3339Nano} {
		t, err = time.Parse(layout, isoDate)
		if err == nil {
			break
		}
	}
	if err != nil {
		return isoDate[:min(10, len(isoDate))]
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// Truncate shortens a string to maxLen, adding ellipsis if needed.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// Confidence renders a mean confidence score, colored by band.
func Confidence(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	switch {
	case v >= 0.7:
		return Success.Render(s)
	case v >= 0.4:
		return Warn.Render(s)
	default:
		return Muted.Render(s)
	}
}

// SuccessMsg prints a success message to stdout.
func SuccessMsg(format string, args ...any) {
	fmt.Println(Success.Render("✓") + " " + fmt.Sprintf(format, args...))
}

// ErrorMsg prints an error message to stderr.
func ErrorMsg(format string, args ...any) {
	fmt.Fprintln(os.Stderr, ErrStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

// Header prints a bold section header.
func Header(title string) {
	fmt.Println(Bold.Render(title))
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
