package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// 噪声标签词典 (数据表, 与扫描/重写逻辑分离)
// 新增标签只需要改这里
var (
	// 字面短语, 比较前会 trim + 合并空白 + 小写
	defaultPhrases = []string{
		"discontinued",
		"wip",
		"deprecated",
		"fixed",
		"new version",
		"outdated",
		"beta",
		"new modified version",
	}

	// 标签家族, 匹配规范化之后的内容
	defaultPatterns = []string{
		// DX11 family: dx11, dx-11, dx 11, dx-11 ready, 100% dx-11 ready
		`^(?:\d+% )?dx[- ]?11(?: ready)?$`,
	}
)

// Dictionary 是只读的噪声词典, 构造后可并发使用
type Dictionary struct {
	phrases  map[string]struct{}
	patterns []*regexp.Regexp
}

// NewDictionary builds a dictionary from literal phrases and tag-family
// patterns. Phrases are normalized the same way span content is. Patterns are
// matched against normalized content, so they should be written lower-case
// with single spaces.
func NewDictionary(phrases, patterns []string) (*Dictionary, error) {
	d := &Dictionary{
		phrases: make(map[string]struct{}, len(phrases)),
	}
	for _, p := range phrases {
		if n := normalizeContent(p); n != "" {
			d.phrases[n] = struct{}{}
		}
	}
	for _, expr := range patterns {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("invalid decoration pattern %q: %w", expr, err)
		}
		d.patterns = append(d.patterns, re)
	}
	return d, nil
}

var defaultDictionary = mustDictionary(defaultPhrases, defaultPatterns)

func mustDictionary(phrases, patterns []string) *Dictionary {
	d, err := NewDictionary(phrases, patterns)
	if err != nil {
		panic(err)
	}
	return d
}

// DefaultDictionary 返回内置词典
func DefaultDictionary() *Dictionary {
	return defaultDictionary
}

// Extend returns a new dictionary with the receiver's entries plus the given
// ones. The receiver is left untouched.
func (d *Dictionary) Extend(phrases, patterns []string) (*Dictionary, error) {
	ext, err := NewDictionary(phrases, patterns)
	if err != nil {
		return nil, err
	}
	for p := range d.phrases {
		ext.phrases[p] = struct{}{}
	}
	ext.patterns = append(append([]*regexp.Regexp{}, d.patterns...), ext.patterns...)
	return ext, nil
}

// IsNoise reports whether already-normalized content is a known decoration.
func (d *Dictionary) IsNoise(normalized string) bool {
	if _, ok := d.phrases[normalized]; ok {
		return true
	}
	for _, re := range d.patterns {
		if re.MatchString(normalized) {
			return true
		}
	}
	return false
}

// normalizeContent trims, collapses internal whitespace and folds case.
func normalizeContent(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
