// Package style 提供终端样式化输出功能
package style

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	xterm "github.com/charmbracelet/x/term"
)

// 定义一套颜色，方便管理和修改
const (
	// 主题强调色，用于标题背景
	ColorAccentPrimary = lipgloss.Color("#33A1FF")

	// 强调文本色，用于在强调背景上显示的文本
	ColorAccentText = lipgloss.Color("#FFFFFF")

	// JSON 高亮颜色
	ColorJSONKey     = lipgloss.Color("#55bcf4ff") // 键名
	ColorJSONValue   = ColorAccentText             // 字符串值
	ColorJSONNumber  = lipgloss.Color("#d4ec19ff") // 数字
	ColorJSONLiteral = lipgloss.Color("#dfab49ff") // true / false / null
	ColorJSONPunct   = lipgloss.Color("#6B7280")   // 标点
)

// IsTerminal 判断 w 是否为终端，非终端时不输出颜色
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return xterm.IsTerminal(f.Fd())
}
