package handlers

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/imamik/bucketcrypt/internal/reencrypt"
)

// Colors matching internal/ui/tui/styles.go palette.
var (
	colorGreen = lipgloss.Color("#22c55e")
	colorRed   = lipgloss.Color("#ef4444")
	colorBlue  = lipgloss.Color("#3b82f6")
	colorDim   = lipgloss.Color("#6b7280")
	colorWhite = lipgloss.Color("#f9fafb")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorWhite)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorBlue)

	dimStyle = lipgloss.NewStyle().
			Foreground(colorDim)

	greenStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	redStyle = lipgloss.NewStyle().
			Foreground(colorRed)
)

// renderRunSummary produces a lipgloss-styled summary of an encrypt run.
func renderRunSummary(s *reencrypt.Summary, runErr error) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  bucketcrypt encrypt: %s", s.Bucket)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "    Cipher:    %s\n", s.Cipher)
	fmt.Fprintf(&b, "    Pages:     %d\n", s.Pages)
	fmt.Fprintf(&b, "    Objects:   %d\n", s.Objects)
	fmt.Fprintf(&b, "    Size:      %s\n", formatBytes(s.Bytes))
	fmt.Fprintf(&b, "    Duration:  %s\n", s.Duration.Round(time.Millisecond))

	b.WriteString("    Status:    ")
	if runErr != nil {
		b.WriteString(redStyle.Render("aborted"))
	} else {
		b.WriteString(greenStyle.Render("complete"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderInventory produces a lipgloss-styled summary of a bucket listing.
func renderInventory(inv *reencrypt.Inventory) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("  bucketcrypt list: %s", inv.Bucket)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  " + strings.Repeat("═", 30)))
	b.WriteString("\n")

	fmt.Fprintf(&b, "    Objects:   %d\n", inv.Objects)
	fmt.Fprintf(&b, "    Size:      %s\n", formatBytes(inv.Bytes))
	fmt.Fprintf(&b, "    Pages:     %d\n", inv.Pages)

	if len(inv.StorageClasses) > 0 {
		b.WriteString("\n")
		b.WriteString(sectionStyle.Render("  Storage classes"))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("  " + strings.Repeat("─", 35)))
		b.WriteString("\n")
		for _, class := range slices.Sorted(maps.Keys(inv.StorageClasses)) {
			fmt.Fprintf(&b, "    %-20s %d\n", class, inv.StorageClasses[class])
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Run 'bucketcrypt encrypt' with the same flags to re-encrypt these objects."))
	b.WriteString("\n")

	return b.String()
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
