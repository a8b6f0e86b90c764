package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/naveenspark/notas/pkg/domain"
)

// listStatus is what the list area currently shows.
type listStatus int

const (
	listLoading listStatus = iota
	listReady
	listEmpty
	listFailed
)

// noteView is the display model of one note. Views are built from the
// server's copy and never mutated; every re-fetch builds fresh ones.
type noteView struct {
	ID          int
	Title       string
	Description string
	Tags        string
	TagList     []string
	Created     time.Time
}

// buildNoteViews maps the server's notes to display models, one per note,
// in server order. Absent tags become "".
func buildNoteViews(notes []domain.Note) []noteView {
	views := make([]noteView, 0, len(notes))
	for _, n := range notes {
		views = append(views, noteView{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Tags:        n.Tags,
			TagList:     domain.SplitTags(n.Tags),
			Created:     n.CreatedAt.Time,
		})
	}
	return views
}

func (v noteView) input() domain.NoteInput {
	return domain.NoteInput{Title: v.Title, Description: v.Description, Tags: v.Tags}
}

// clipboardText is what "copy" puts on the clipboard.
func (v noteView) clipboardText() string {
	parts := []string{v.Title}
	if v.Description != "" {
		parts = append(parts, v.Description)
	}
	if v.Tags != "" {
		parts = append(parts, "tags: "+v.Tags)
	}
	return strings.Join(parts, "\n")
}

// renderNoteList renders the whole list area. It depends only on its
// arguments. When height is positive only a window of notes around the
// cursor is drawn, with a marker line for each hidden side.
func renderNoteList(items []noteItem, cursor int, status listStatus, cat catalog, width, height int) string {
	switch status {
	case listLoading:
		return "   " + dimStyle.Render(cat.Loading) + "\n"
	case listFailed:
		return "   " + errorStyle.Render(cat.LoadFailed) + "\n"
	case listEmpty:
		return "   " + dimStyle.Render(cat.NoNotes) + "\n"
	}

	blocks := make([]string, len(items))
	heights := make([]int, len(items))
	for i, it := range items {
		selected := i == cursor
		if it.mode == modeEditing {
			blocks[i] = renderEditing(it, selected, cat)
		} else {
			blocks[i] = renderDisplay(it.view, selected, it.pending, cat, width)
		}
		heights[i] = strings.Count(blocks[i], "\n")
	}

	// two rows are kept for the "more" markers
	if height > 0 {
		height = max(1, height-2)
	}
	start, end := listWindow(heights, cursor, height)

	var b strings.Builder
	if start > 0 {
		b.WriteString("   " + metaStyle.Render(fmt.Sprintf("↑ %d", start)) + "\n")
	}
	for _, block := range blocks[start:end] {
		b.WriteString(block)
	}
	if end < len(blocks) {
		b.WriteString("   " + metaStyle.Render(fmt.Sprintf("↓ %d", len(blocks)-end)) + "\n")
	}
	return b.String()
}

// listWindow picks the half-open range of blocks to draw so that the
// cursor's block is always included and the total stays within height
// lines. Up to half the window is spent on blocks above the cursor. A
// non-positive height selects everything.
func listWindow(heights []int, cursor, height int) (start, end int) {
	n := len(heights)
	if n == 0 {
		return 0, 0
	}
	if height <= 0 {
		return 0, n
	}
	cursor = max(0, min(cursor, n-1))

	start, end = cursor, cursor+1
	used := heights[cursor]
	for start > 0 && used+heights[start-1] <= height/2 {
		start--
		used += heights[start]
	}
	for end < n && used+heights[end] <= height {
		used += heights[end]
		end++
	}
	for start > 0 && used+heights[start-1] <= height {
		start--
		used += heights[start]
	}
	return start, end
}

func renderDisplay(v noteView, selected, pending bool, cat catalog, width int) string {
	cursor := "  "
	title := normalStyle.Render(truncStr(v.Title, width-20))
	if selected {
		cursor = accentStyle.Render("▸") + " "
		title = selectedStyle.Render(truncStr(v.Title, width-20))
	}

	var b strings.Builder
	header := " " + cursor + title
	if age := formatTime(v.Created); age != "" {
		header += "  " + metaStyle.Render(age)
	}
	if pending {
		header += "  " + dimStyle.Render(cat.Saving)
	}
	b.WriteString(header + "\n")

	if v.Description != "" {
		b.WriteString("     " + dimStyle.Render(truncStr(oneLine(v.Description), width-8)) + "\n")
	}
	b.WriteString("     " + metaStyle.Render(cat.TagsLabel+": ") + renderTags(v.TagList, cat) + "\n")
	return b.String()
}

func renderTags(tags []string, cat catalog) string {
	if len(tags) == 0 {
		return metaStyle.Render(cat.NoTags)
	}
	chips := make([]string, len(tags))
	for i, t := range tags {
		chips[i] = TagStyle(t).Render(t)
	}
	return strings.Join(chips, dimStyle.Render(" · "))
}

func renderEditing(it noteItem, selected bool, cat catalog) string {
	cursor := "  "
	if selected {
		cursor = accentStyle.Render("▸") + " "
	}
	var b strings.Builder
	fmt.Fprintf(&b, " %s%s  %s\n", cursor, selectedStyle.Render(it.view.Title), metaStyle.Render("["+cat.Edit+"]"))
	b.WriteString(it.form.View(cat, "   "))
	if it.pending {
		b.WriteString("     " + dimStyle.Render(cat.Saving) + "\n")
	} else {
		b.WriteString("     " + helpEntry("enter", cat.Save) + "  " + helpEntry("esc", cat.Cancel) + "\n")
	}
	return b.String()
}
