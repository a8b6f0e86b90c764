package tui

// alertModel is a blocking message box. While text is set it swallows
// every key until dismissed.
type alertModel struct {
	text string
}

func (a alertModel) active() bool { return a.text != "" }

func (a alertModel) View(cat catalog) string {
	return alertBoxStyle.Render(a.text+"\n\n"+helpEntry("enter", cat.Dismiss)) + "\n"
}

// confirmModel asks before a note is deleted.
type confirmModel struct {
	prompt string
	noteID int
	active bool
}

func newConfirm(prompt string, noteID int) confirmModel {
	return confirmModel{prompt: prompt, noteID: noteID, active: true}
}

func (c confirmModel) View(cat catalog, title string) string {
	body := c.prompt
	if title != "" {
		body += "\n" + selectedStyle.Render(title)
	}
	return confirmBoxStyle.Render(body+"\n\n"+helpEntry("y", cat.Yes)+"  "+helpEntry("n", cat.No)) + "\n"
}
