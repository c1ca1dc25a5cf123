// Package page lays out and draws the portfolio document in a terminal
package page

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/vi-folio/content"
	"github.com/lixenwraith/vi-folio/parameter"
)

// LineKind selects the style a line is drawn with
type LineKind int

const (
	LineBlank LineKind = iota
	LineName
	LineHeadline
	LineTagline
	LineHeading
	LineBody
	LineItem
)

// Line is one document row
type Line struct {
	Kind    LineKind
	Text    string
	Indent  int
	Section string
}

// Layout is a document flattened into rows for a given width
// Rows [0, HeroRows) form the hero block the particle layer is drawn behind
type Layout struct {
	Width       int
	HeroRows    int
	TaglineRow  int
	Lines       []Line
	anchors     map[string]int
	sectionIDs  []string
	sectionRows []int
}

// Build flattens doc for a screen width and hero height
func Build(doc *content.Document, width, heroRows int) *Layout {
	l := &Layout{
		Width:    width,
		HeroRows: max(heroRows, 3),
		anchors:  make(map[string]int, len(doc.Sections)),
	}

	// hero: name, headline, blank, tagline centered vertically
	top := max(0, (l.HeroRows-3)/2)
	for i := 0; i < l.HeroRows; i++ {
		l.Lines = append(l.Lines, Line{Kind: LineBlank})
	}
	l.Lines[top] = Line{Kind: LineName, Text: doc.Name}
	if top+1 < l.HeroRows {
		l.Lines[top+1] = Line{Kind: LineHeadline, Text: runewidth.Truncate(doc.Headline, width, "…")}
	}
	l.TaglineRow = min(top+2, l.HeroRows-1)
	l.Lines[l.TaglineRow] = Line{Kind: LineTagline}

	textWidth := min(width-parameter.ContentIndent*2, parameter.ContentMaxWidth)
	for _, sec := range doc.Sections {
		l.add(Line{Kind: LineBlank, Section: sec.ID})
		l.anchors[sec.ID] = len(l.Lines)
		l.sectionIDs = append(l.sectionIDs, sec.ID)
		l.sectionRows = append(l.sectionRows, len(l.Lines))
		l.add(Line{Kind: LineHeading, Text: sec.Title, Indent: parameter.ContentIndent, Section: sec.ID})
		l.add(Line{Kind: LineBlank, Section: sec.ID})

		for _, para := range paragraphs(sec.Body) {
			for _, row := range Wrap(para, textWidth) {
				l.add(Line{Kind: LineBody, Text: row, Indent: parameter.ContentIndent, Section: sec.ID})
			}
		}
		for _, item := range sec.Items {
			for i, row := range Wrap(item, textWidth-2) {
				prefix := "  "
				if i == 0 {
					prefix = "• "
				}
				l.add(Line{Kind: LineItem, Text: prefix + row, Indent: parameter.ContentIndent, Section: sec.ID})
			}
		}
	}
	l.add(Line{Kind: LineBlank})
	return l
}

func (l *Layout) add(line Line) {
	l.Lines = append(l.Lines, line)
}

// Height returns the number of rows
func (l *Layout) Height() int {
	return len(l.Lines)
}

// Anchor returns the row of a section heading
func (l *Layout) Anchor(id string) (int, bool) {
	row, ok := l.anchors[id]
	return row, ok
}

// SectionIDs returns section ids in order
func (l *Layout) SectionIDs() []string {
	return l.sectionIDs
}

// SectionAt returns the last section whose heading is at or above row
func (l *Layout) SectionAt(row int) string {
	id := ""
	for i, r := range l.sectionRows {
		if r > row {
			break
		}
		id = l.sectionIDs[i]
	}
	return id
}

// paragraphs splits body text on blank lines and joins soft-wrapped lines
func paragraphs(body string) []string {
	var out []string
	for _, block := range strings.Split(body, "\n\n") {
		if p := strings.Join(strings.Fields(block), " "); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Wrap breaks text into rows no wider than width display cells
// Words wider than a row are split across rows
func Wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	var rows []string
	var cur strings.Builder
	curW := 0

	flush := func() {
		rows = append(rows, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range strings.Fields(text) {
		ww := runewidth.StringWidth(word)
		if curW > 0 && curW+1+ww > width {
			flush()
		}
		if ww > width {
			for _, r := range word {
				rw := runewidth.RuneWidth(r)
				if curW+rw > width {
					flush()
				}
				cur.WriteRune(r)
				curW += rw
			}
			continue
		}
		if curW > 0 {
			cur.WriteByte(' ')
			curW++
		}
		cur.WriteString(word)
		curW += ww
	}
	if curW > 0 {
		flush()
	}
	return rows
}

func stringWidth(s string) int {
	return runewidth.StringWidth(s)
}
