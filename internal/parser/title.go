package parser

// Canonicalizer 把创意工坊标题还原成基础标题 (base title)
// 无状态, 可以在多个 goroutine 里共用
type Canonicalizer struct {
	dict *Dictionary
}

// NewCanonicalizer returns a canonicalizer backed by dict. A nil dict means
// the built-in dictionary.
func NewCanonicalizer(dict *Dictionary) *Canonicalizer {
	if dict == nil {
		dict = defaultDictionary
	}
	return &Canonicalizer{dict: dict}
}

var defaultCanonicalizer = NewCanonicalizer(nil)

// GetBaseTitle strips decoration tags from a raw title using the built-in
// dictionary. It is defined for every input, malformed brackets included.
func GetBaseTitle(raw string) string {
	return defaultCanonicalizer.BaseTitle(raw)
}

// BaseTitle 返回去掉噪声标签后的标题
func (c *Canonicalizer) BaseTitle(raw string) string {
	return c.Explain(raw).BaseTitle
}

// Result 是一次规范化的完整记录, 调试和 API 用
type Result struct {
	Title     string       `json:"title"`
	BaseTitle string       `json:"base_title"`
	Spans     []Classified `json:"-"`
}

// Explain runs scan, classify and rewrite, and keeps the intermediate spans.
func (c *Canonicalizer) Explain(raw string) Result {
	spans := Scan(raw)
	classified := make([]Classified, len(spans))
	for i, s := range spans {
		classified[i] = Classified{Span: s, Action: c.dict.Classify(s)}
	}
	return Result{
		Title:     raw,
		BaseTitle: Rewrite(raw, classified),
		Spans:     classified,
	}
}
