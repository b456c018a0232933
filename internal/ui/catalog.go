package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/zhubert/splashctl/internal/catalog"
)

const (
	// MaxNameWidth caps the display-name column.
	MaxNameWidth = 32

	currentMarker = "●"
	ellipsis      = "…"
)

// Fit truncates s to width terminal cells and pads it to exactly width.
// A width of zero or less returns s unchanged.
func Fit(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(runewidth.Truncate(s, width, ellipsis), width)
}

// Truncate shortens s to at most width terminal cells.
func Truncate(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.Truncate(s, width, ellipsis)
}

// nameColumnWidth returns the width of the widest display name, capped.
func nameColumnWidth(c catalog.Catalog) int {
	w := 0
	for _, e := range c {
		w = max(w, runewidth.StringWidth(e.DisplayName))
	}
	return min(w, MaxNameWidth)
}

// RenderCatalog renders one row per entry: a marker on the entry whose id is
// currentID, the display name and the plugin id. When width is positive no
// row is wider than width cells.
func RenderCatalog(c catalog.Catalog, currentID string, width int) string {
	nameWidth := nameColumnWidth(c)
	const markerWidth, gap = 2, 2
	if width > 0 {
		nameWidth = min(nameWidth, max(width-markerWidth, 1))
	}

	var b strings.Builder
	for i, e := range c {
		if i > 0 {
			b.WriteString("\n")
		}

		isCurrent := e.PluginID == currentID
		if isCurrent {
			b.WriteString(CurrentMarkerStyle.Render(currentMarker) + " ")
		} else {
			b.WriteString("  ")
		}

		name := Fit(e.DisplayName, nameWidth)
		if isCurrent {
			b.WriteString(CurrentNameStyle.Render(name))
		} else {
			b.WriteString(NameStyle.Render(name))
		}

		idWidth := 0
		if width > 0 {
			idWidth = width - markerWidth - nameWidth - gap
			if idWidth <= 0 {
				continue
			}
		}
		b.WriteString(strings.Repeat(" ", gap))
		b.WriteString(IDStyle.Render(Truncate(e.PluginID, idWidth)))
	}
	return b.String()
}

// RenderEntry renders the details of a single entry.
func RenderEntry(e catalog.ThemeEntry, current bool) string {
	screenshot := e.ScreenshotPath
	if screenshot == "" {
		screenshot = "none"
	}
	description := e.Description
	if description == "" {
		description = "-"
	}

	title := e.DisplayName
	if current {
		title += " " + CurrentMarkerStyle.Render(currentMarker+" current")
	}

	lines := []string{
		TitleStyle.Render(title),
		field("ID", e.PluginID),
		field("Description", DescriptionStyle.Render(description)),
		field("Screenshot", screenshot),
	}
	return strings.Join(lines, "\n")
}

func field(label, value string) string {
	return LabelStyle.Render(Fit(label+":", 13)) + value
}
