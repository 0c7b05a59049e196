package parser

import "strings"

// Kind 标记 span 的括号类型
type Kind int

const (
	Paren  Kind = iota // ( )
	Square             // [ ]
	Angle              // < >
)

func (k Kind) String() string {
	switch k {
	case Paren:
		return "paren"
	case Square:
		return "square"
	case Angle:
		return "angle"
	}
	return "unknown"
}

// Span 是标题中一段括号包围的区域
// Start 指向开括号, End 指向闭括号 (都是字节偏移, 闭区间)
type Span struct {
	Kind    Kind
	Start   int
	End     int
	Content string
}

// Raw returns the span text including its delimiters.
func (s Span) Raw(title string) string {
	return title[s.Start : s.End+1]
}

const (
	openers = "([<"
	closers = ")]>"
)

// Scan 从左到右扫描标题, 返回所有成对的括号区域
// 不支持嵌套: span 打开期间忽略其它开括号; 没有配对的括号按普通文本处理
func Scan(title string) []Span {
	// 每种闭括号最后出现的位置, 用于快速判断开括号是否还能闭合
	var last [3]int
	for k := range last {
		last[k] = strings.LastIndexByte(title, closers[k])
	}

	var spans []Span
	for i := 0; i < len(title); i++ {
		k := strings.IndexByte(openers, title[i])
		if k < 0 || i > last[k] {
			continue
		}
		end := i + 1 + strings.IndexByte(title[i+1:], closers[k])
		spans = append(spans, Span{
			Kind:    Kind(k),
			Start:   i,
			End:     end,
			Content: title[i+1 : end],
		})
		i = end
	}
	return spans
}
