package page

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-folio/content"
)

func defaultDoc(t *testing.T) *content.Document {
	t.Helper()
	doc, err := content.Load("")
	require.NoError(t, err)
	return doc
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  []string
	}{
		{"fits", "hello world", 20, []string{"hello world"}},
		{"breaks on words", "hello brave new world", 11, []string{"hello brave", "new world"}},
		{"splits long word", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"collapses spaces", "  a   b  ", 10, []string{"a b"}},
		{"empty", "", 10, nil},
		{"wide runes", "日本語テキスト", 6, []string{"日本語", "テキス", "ト"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Wrap(tt.text, tt.width)
			assert.Equal(t, tt.want, got)
			for _, row := range got {
				assert.LessOrEqual(t, runewidth.StringWidth(row), tt.width)
			}
		})
	}
}

func TestBuildAnchors(t *testing.T) {
	doc := defaultDoc(t)
	l := Build(doc, 80, 11)

	assert.Equal(t, 11, l.HeroRows)
	assert.Equal(t, LineName, l.Lines[4].Kind)
	assert.Equal(t, LineTagline, l.Lines[l.TaglineRow].Kind)
	assert.Equal(t, doc.SectionIDs(), l.SectionIDs())

	prev := -1
	for _, id := range doc.SectionIDs() {
		row, ok := l.Anchor(id)
		require.True(t, ok, id)
		assert.Greater(t, row, prev)
		assert.GreaterOrEqual(t, row, l.HeroRows)
		assert.Equal(t, LineHeading, l.Lines[row].Kind)
		prev = row
	}

	_, ok := l.Anchor("missing")
	assert.False(t, ok)
}

func TestBuildRespectsWidth(t *testing.T) {
	l := Build(defaultDoc(t), 40, 8)
	for _, line := range l.Lines {
		if line.Kind == LineBody || line.Kind == LineItem {
			assert.LessOrEqual(t, line.Indent+runewidth.StringWidth(line.Text), 40, line.Text)
		}
	}
}

func TestBuildItemsHangingIndent(t *testing.T) {
	doc := &content.Document{Name: "n", Sections: []content.Section{{
		ID: "a", Title: "A", Items: []string{strings.Repeat("word ", 20)},
	}}}
	l := Build(doc, 30, 4)

	var items []Line
	for _, line := range l.Lines {
		if line.Kind == LineItem {
			items = append(items, line)
		}
	}
	require.Greater(t, len(items), 1)
	assert.True(t, strings.HasPrefix(items[0].Text, "• "))
	assert.True(t, strings.HasPrefix(items[1].Text, "  "))
}

func TestSectionAt(t *testing.T) {
	l := Build(defaultDoc(t), 80, 11)
	about, _ := l.Anchor("about")
	exp, _ := l.Anchor("experience")

	assert.Equal(t, "", l.SectionAt(0))
	assert.Equal(t, "about", l.SectionAt(about))
	assert.Equal(t, "about", l.SectionAt(exp-1))
	assert.Equal(t, "experience", l.SectionAt(exp))
}
