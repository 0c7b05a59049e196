package parser

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Classified pairs a span with the action chosen for it.
type Classified struct {
	Span
	Action Action
}

// Rewrite 删除所有 Remove 的 span, 然后合并空白并 trim
// span 之间不重叠, 所以删除顺序无关
// 没有任何括号 span 的标题只做 trim; 保留的 span 原样输出, 内部空白不动
func Rewrite(title string, spans []Classified) string {
	if len(spans) == 0 {
		return strings.TrimSpace(title)
	}

	var out, loose strings.Builder
	out.Grow(len(title))

	pos := 0
	for _, s := range spans {
		loose.WriteString(title[pos:s.Start])
		pos = s.End + 1
		if s.Action == Remove {
			continue
		}
		// span 以定界符开头, 空白不会跨过它
		out.WriteString(collapseSpaces(loose.String()))
		loose.Reset()
		out.WriteString(title[s.Start:pos])
	}
	loose.WriteString(title[pos:])
	out.WriteString(collapseSpaces(loose.String()))

	return strings.TrimSpace(out.String())
}

// collapseSpaces 把连续两个及以上的空白字符替换成一个空格, 单个空白保持原样
func collapseSpaces(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsSpace(r) {
			b.WriteString(s[i : i+size])
			i += size
			continue
		}
		j := i + size
		n := 1
		for j < len(s) {
			r2, size2 := utf8.DecodeRuneInString(s[j:])
			if !unicode.IsSpace(r2) {
				break
			}
			j += size2
			n++
		}
		if n >= 2 {
			b.WriteByte(' ')
		} else {
			b.WriteString(s[i:j])
		}
		i = j
	}
	return b.String()
}
