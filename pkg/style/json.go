package style

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// jsonPalette 描述 JSON 各类 token 的样式
type jsonPalette struct {
	key, str, num, literal, punct lipgloss.Style
}

func defaultJSONPalette() jsonPalette {
	return jsonPalette{
		key:     lipgloss.NewStyle().Foreground(ColorJSONKey).Bold(true),
		str:     lipgloss.NewStyle().Foreground(ColorJSONValue),
		num:     lipgloss.NewStyle().Foreground(ColorJSONNumber),
		literal: lipgloss.NewStyle().Foreground(ColorJSONLiteral),
		punct:   lipgloss.NewStyle().Foreground(ColorJSONPunct),
	}
}

// PrintJSON 缩进并高亮输出 JSON
//
// string / []byte 被视为原始 JSON 文本，其他值先经 json.MarshalIndent 编码
func PrintJSON(w io.Writer, v any) error {
	pretty, err := FormatJSON(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(w, defaultJSONPalette().render(pretty))
	return err
}

// FormatJSON 返回以换行结尾的缩进 JSON
func FormatJSON(v any) (string, error) {
	var raw []byte
	switch x := v.(type) {
	case nil:
		return "null\n", nil
	case string:
		raw = []byte(x)
	case []byte:
		raw = x
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		raw = b
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "null\n", nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return "", err
	}
	out.WriteByte('\n')
	return out.String(), nil
}

// render 对缩进好的合法 JSON 着色，空白原样保留
func (p jsonPalette) render(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '"':
			end := stringEnd(s, i)
			token := s[i:end]
			if nextNonSpace(s, end) == ':' {
				b.WriteString(p.key.Render(token))
			} else {
				b.WriteString(p.str.Render(token))
			}
			i = end
		case strings.IndexByte("{}[]:,", c) >= 0:
			b.WriteString(p.punct.Render(string(c)))
			i++
		case c == '-' || (c >= '0' && c <= '9'):
			end := i + 1
			for end < len(s) && strings.IndexByte("0123456789.eE+-", s[end]) >= 0 {
				end++
			}
			b.WriteString(p.num.Render(s[i:end]))
			i = end
		case c == 't' || c == 'f' || c == 'n':
			end := i
			for end < len(s) && s[end] >= 'a' && s[end] <= 'z' {
				end++
			}
			b.WriteString(p.literal.Render(s[i:end]))
			i = end
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

// stringEnd 返回从 start 处引号开始的字符串 token 的结束位置（半开区间）
func stringEnd(s string, start int) int {
	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

func nextNonSpace(s string, i int) byte {
	for ; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\n' && s[i] != '\t' && s[i] != '\r' {
			return s[i]
		}
	}
	return 0
}
