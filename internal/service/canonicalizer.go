package service

import (
	"fmt"

	"github.com/pokerjest/workshopTitleTool/internal/config"
	"github.com/pokerjest/workshopTitleTool/internal/parser"
)

// NewCanonicalizer 用内置词典加上配置里的额外条目构造 Canonicalizer
func NewCanonicalizer(cfg config.TitleConfig) (*parser.Canonicalizer, error) {
	if len(cfg.ExtraPhrases) == 0 && len(cfg.ExtraPatterns) == 0 {
		return parser.NewCanonicalizer(nil), nil
	}
	dict, err := parser.DefaultDictionary().Extend(cfg.ExtraPhrases, cfg.ExtraPatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to build title dictionary: %w", err)
	}
	config.Debugf("title dictionary extended with %d phrases, %d patterns", len(cfg.ExtraPhrases), len(cfg.ExtraPatterns))
	return parser.NewCanonicalizer(dict), nil
}
