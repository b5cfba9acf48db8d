package tui

import (
	"fmt"
	"strings"
	"time"
)

func renderView(m Model) string {
	var b strings.Builder

	renderHeader(&b, m)
	renderProgressBar(&b, m)
	renderPhases(&b, m)
	if len(m.Recent) > 0 {
		renderRecent(&b, m)
	}
	renderFooter(&b, m)

	return b.String()
}

func renderHeader(b *strings.Builder, m Model) {
	title := fmt.Sprintf("bucketcrypt: %s", m.Info.Bucket)
	if m.Info.Region != "" {
		title += fmt.Sprintf(" (%s)", m.Info.Region)
	}
	b.WriteString(titleStyle.Render(title))

	status := " "
	switch {
	case m.Done:
		status += readyStyle.Render("Done")
	case m.Err != nil:
		status += failedStyle.Render(fmt.Sprintf("Error: %v", m.Err))
	case m.Interrupted:
		status += warningStyle.Render("Interrupted")
	default:
		status += activeStyle.Render(currentSpinner(m.SpinnerFrame)+" ") + warningStyle.Render(phaseTitle(m.Phase))
	}
	b.WriteString(status)
	b.WriteString("\n")
}

func renderProgressBar(b *strings.Builder, m Model) {
	progress := m.progress()
	barWidth := 40
	if m.Width > 0 && m.Width < 80 {
		barWidth = max(m.Width-30, 10)
	}
	filled := min(int(float64(barWidth)*progress), barWidth)

	bar := progressBarFull.Render(strings.Repeat("█", filled)) +
		progressBarEmpty.Render(strings.Repeat("░", barWidth-filled))

	fmt.Fprintf(b, "  %s %d%%  %d/%d objects\n", bar, int(progress*100), m.Processed, m.Total)
}

func renderPhases(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Phases"))
	b.WriteString("\n")

	listDone := m.Phase == "encrypt" || m.Done
	listDetail := fmt.Sprintf("%d objects, %d pages", m.Listed, m.Pages)
	renderPhaseRow(b, m, "List objects", listDone, !listDone, listDetail)

	encDetail := fmt.Sprintf("%s, %s", m.Info.Cipher, formatBytes(m.Bytes))
	if m.Retries > 0 {
		encDetail += fmt.Sprintf(", %d retries", m.Retries)
	}
	renderPhaseRow(b, m, "Re-encrypt", m.Done, m.Phase == "encrypt" && !m.Done, encDetail)

	if m.FailedKey != "" {
		fmt.Fprintf(b, "  %s %s\n", failedStyle.Render(crossMark), failedStyle.Render("failed: "+m.FailedKey))
	}
}

func renderPhaseRow(b *strings.Builder, m Model, name string, done, active bool, detail string) {
	var icon string
	switch {
	case done:
		icon = readyStyle.Render(checkMark)
	case active && m.Err != nil:
		icon = failedStyle.Render(crossMark)
	case active:
		icon = activeStyle.Render(currentSpinner(m.SpinnerFrame))
	default:
		icon = dimStyle.Render(pending)
	}
	fmt.Fprintf(b, "  %s %-14s %s\n", icon, name, dimStyle.Render(detail))
}

func renderRecent(b *strings.Builder, m Model) {
	b.WriteString(sectionStyle.Render("  Recent"))
	b.WriteString("\n")
	for _, key := range m.Recent {
		fmt.Fprintf(b, "  %s %s\n", readyStyle.Render(checkMark), truncate(key, m.Width-8))
	}
}

func renderFooter(b *strings.Builder, m Model) {
	elapsed := formatDuration(time.Since(m.StartTime))
	b.WriteString(footerStyle.Render(fmt.Sprintf("  elapsed: %s  |  q: quit", elapsed)))
	b.WriteString("\n")
}

// Helper functions

func phaseTitle(phase string) string {
	switch phase {
	case "list":
		return "Listing"
	case "encrypt":
		return "Re-encrypting"
	default:
		return phase
	}
}

func currentSpinner(frame int) string {
	if frame < 0 {
		frame = -frame
	}
	return spinnerFrames[frame%len(spinnerFrames)]
}

func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return "..." + s[len(s)-(width-3):]
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	if d < time.Hour {
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	}
	return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
}
