package welcome

import (
	"fmt"
	"strings"

	"cpmonk/pkg/ui/components/utils"
	"cpmonk/pkg/ui/styles"
	"cpmonk/pkg/version"

	"github.com/mattn/go-runewidth"
)

const boxWidth = 53 // Total inner width

var shortcuts = []struct{ key, desc string }{
	{"Enter", "Send message"},
	{"Ctrl+L", "Reset the conversation"},
	{"Ctrl+P/N", "Recall previous/next input"},
	{"PgUp/PgDn", "Scroll the transcript"},
	{"Ctrl+Y", "Copy the last reply"},
	{"Esc", "Quit"},
}

// WelcomeMessage returns the box shown while the transcript is empty.
func WelcomeMessage(serviceName string) string {
	if serviceName == "" {
		serviceName = "CP Monk"
	}

	makeLine := func(content string, visualWidth int) string {
		pad := boxWidth - visualWidth
		if pad < 0 {
			pad = 0
		}
		return styles.WelcomeBorderStyle.Render("│") + content + strings.Repeat(" ", pad) + styles.WelcomeBorderStyle.Render("│")
	}
	centered := func(text string, style func(...string) string) string {
		text = utils.TruncateToWidth(text, boxWidth-4)
		w := runewidth.StringWidth(text)
		left := (boxWidth - w) / 2
		return makeLine(strings.Repeat(" ", left)+style(text), left+w)
	}

	top := styles.WelcomeBorderStyle.Render("╭" + strings.Repeat("─", boxWidth) + "╮")
	bottom := styles.WelcomeBorderStyle.Render("╰" + strings.Repeat("─", boxWidth) + "╯")
	empty := makeLine("", 0)

	lines := []string{top}
	lines = append(lines, centered("Ask "+serviceName+" anything", styles.WelcomeTitleStyle.Render))
	lines = append(lines, empty)

	for _, s := range shortcuts {
		keyFormatted := fmt.Sprintf("    %-11s", s.key)
		line := styles.WelcomeKeyStyle.Render(keyFormatted) + styles.TextStyle.Render(s.desc)
		lines = append(lines, makeLine(line, runewidth.StringWidth(keyFormatted)+runewidth.StringWidth(s.desc)))
	}

	lines = append(lines, empty)
	lines = append(lines, centered(version.Summary(), styles.WelcomeVersionStyle.Render))
	lines = append(lines, bottom)

	return strings.Join(lines, "\n")
}
