package page

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// NavItem is one navigation entry
type NavItem struct {
	Key   rune
	ID    string
	Title string
}

// NavItems numbers the first nine sections
func NavItems(titles map[string]string, ids []string) []NavItem {
	items := make([]NavItem, 0, min(len(ids), 9))
	for i, id := range ids {
		if i == 9 {
			break
		}
		items = append(items, NavItem{Key: rune('1' + i), ID: id, Title: titles[id]})
	}
	return items
}

// SectionForKey maps a number key to a section id
func SectionForKey(items []NavItem, key rune) (string, bool) {
	for _, it := range items {
		if it.Key == key {
			return it.ID, true
		}
	}
	return "", false
}

// drawNav paints the navigation bar on row 0, highlighting current
func drawNav(screen tcell.Screen, items []NavItem, name, current string, base, accent tcell.Style) {
	w, _ := screen.Size()
	for x := 0; x < w; x++ {
		screen.SetContent(x, 0, ' ', nil, base)
	}
	x := drawText(screen, 1, 0, w-1, name, base.Bold(true), false) + 3
	for _, it := range items {
		label := fmt.Sprintf("%c %s", it.Key, it.Title)
		if x+runewidth.StringWidth(label) > w {
			return
		}
		st := base
		if it.ID == current {
			st = accent.Bold(true)
		}
		x = drawText(screen, x, 0, w-x, label, st, false) + 2
	}
}

// drawText writes s at (x, y) within width cells and returns the column after the text
// fill pads the remainder of width with spaces
func drawText(screen tcell.Screen, x, y, width int, s string, style tcell.Style, fill bool) int {
	end := x + width
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > end {
			break
		}
		screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	if fill {
		for ; x < end; x++ {
			screen.SetContent(x, y, ' ', nil, style)
		}
	}
	return x
}
