package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PrintHeading 打印一个区块标题，color 为 false 时输出纯文本
func PrintHeading(w io.Writer, title string, color bool) error {
	title = strings.ToUpper(title)
	if !color {
		_, err := fmt.Fprintf(w, "# %s\n", title)
		return err
	}
	heading := lipgloss.NewStyle().
		Foreground(ColorAccentText).
		Background(ColorAccentPrimary).
		Bold(true).
		Padding(0, 1)
	_, err := fmt.Fprintln(w, heading.Render(title))
	return err
}
