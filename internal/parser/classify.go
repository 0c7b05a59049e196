package parser

// Action 是分类结果
type Action int

const (
	Keep Action = iota
	Remove
)

func (a Action) String() string {
	if a == Remove {
		return "remove"
	}
	return "keep"
}

// Classify 判断一个 span 是否是装饰性噪声
// 只看括号类型和内容, 与位置无关
func (d *Dictionary) Classify(s Span) Action {
	// 尖括号在标题里从来不承载实际内容
	if s.Kind == Angle {
		return Remove
	}
	if d.IsNoise(normalizeContent(s.Content)) {
		return Remove
	}
	return Keep
}
