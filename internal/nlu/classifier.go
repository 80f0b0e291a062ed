package nlu

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ClassifierConfig carries the tunables of the rule cascade. The similarity
// threshold and target length bound are empirically chosen; they are exposed
// as configuration rather than baked in.
type ClassifierConfig struct {
	SimilarityThreshold float64 `envconfig:"NLU_SIMILARITY_THRESHOLD" default:"0.15"`
	MaxOpenTargetRunes  int     `envconfig:"NLU_MAX_OPEN_TARGET_RUNES" default:"20"`
}

// openVerbPatterns form the action-verb priority tier. "open X" is
// structurally ambiguous with many rule-table categories and must win
// deterministically, so these are tried before everything else.
var openVerbPatterns = []*regexp.Regexp{
	regexp.MustCompile(`打开\s*(.+)`),
	regexp.MustCompile(`启动\s*(.+)`),
	regexp.MustCompile(`运行\s*(.+)`),
	regexp.MustCompile(`开启\s*(.+)`),
}

// trailingParticleRe strips filler particles off a captured target.
var trailingParticleRe = regexp.MustCompile(`[吧呗啊哦了呢]+$`)

var folderKeywords = []string{"文件夹", "目录", "桌面", "文档", "下载", "图片", "音乐", "视频"}

// Classifier maps normalized text to at most one intent via a three-tier
// cascade: action-verb tier, ordered rule table, similarity fallback.
type Classifier struct {
	cfg         ClassifierConfig
	rules       []intentRule
	appPatterns []pattern
	model       *similarityModel
}

func NewClassifier(cfg ClassifierConfig) *Classifier {
	if cfg.SimilarityThreshold == 0 {
		cfg.SimilarityThreshold = 0.15
	}
	if cfg.MaxOpenTargetRunes == 0 {
		cfg.MaxOpenTargetRunes = 20
	}
	rules := defaultIntentRules()
	return &Classifier{
		cfg:         cfg,
		rules:       rules,
		appPatterns: appNamePatterns(),
		model:       fitSimilarityModel(rules),
	}
}

func appNamePatterns() []pattern {
	for _, tbl := range defaultEntityPatterns() {
		if tbl.Type == EntityAppName {
			return tbl.Patterns
		}
	}
	return nil
}

// Classify returns the recognised intent, or (IntentNone, false) when no tier
// produced one. The caller distinguishes this "absent" outcome from
// IntentUnknown: absence still allows contextual inference.
func (c *Classifier) Classify(text string) (Intent, bool) {
	if intent, ok := c.classifyOpenTarget(text); ok {
		return intent, true
	}

	// Ordered rule table: the first intent whose first matching pattern
	// fires wins.
	for _, rule := range c.rules {
		for _, p := range rule.Patterns {
			if p.matches(text) {
				return rule.Intent, true
			}
		}
	}

	return c.model.predict(text, c.cfg.SimilarityThreshold)
}

// classifyOpenTarget implements the action-verb priority tier.
func (c *Classifier) classifyOpenTarget(text string) (Intent, bool) {
	for _, re := range openVerbPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		target := strings.TrimSpace(trailingParticleRe.ReplaceAllString(strings.TrimSpace(m[1]), ""))

		for _, app := range c.appPatterns {
			if app.matches(target) {
				return IntentOpenApplication, true
			}
		}

		for _, kw := range folderKeywords {
			if strings.Contains(target, kw) {
				return IntentOpenFolder, true
			}
		}

		// Unrecognised but plausible target: default to opening an
		// application.
		if target != "" && utf8.RuneCountInString(target) <= c.cfg.MaxOpenTargetRunes {
			return IntentOpenApplication, true
		}
	}
	return IntentNone, false
}
