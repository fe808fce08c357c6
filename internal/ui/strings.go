package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const ellipsis = "…"

var printer = message.NewPrinter(language.English)

// truncate shortens a string to the given display width, adding an
// ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit == 1 {
		return runewidth.Truncate(value, 1, "")
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

// truncateMiddle shortens a string by removing characters from the middle,
// preserving both the beginning and the end. Paths keep their extension.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return ""
	}
	if runewidth.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return runewidth.Truncate(value, limit, "")
	}
	keep := limit - runewidth.StringWidth(ellipsis)
	prefix := keep / 2
	suffix := keep - prefix
	return runewidth.Truncate(value, prefix, "") + ellipsis + tail(value, suffix)
}

// tail returns the widest suffix of value that fits in width cells.
func tail(value string, width int) string {
	runes := []rune(value)
	w := 0
	i := len(runes)
	for i > 0 {
		rw := runewidth.RuneWidth(runes[i-1])
		if w+rw > width {
			break
		}
		w += rw
		i--
	}
	return string(runes[i:])
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

// center pads s on both sides to width.
func center(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return truncate(s, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-w-left)
}

// counter renders "3 of 1,204".
func counter(position, total int) string {
	return printer.Sprintf("%d of %d", position, total)
}

// dimensions renders a natural size such as "4,032 × 3,024".
func dimensions(width, height float64) string {
	return printer.Sprintf("%d × %d", int(width+0.5), int(height+0.5))
}
