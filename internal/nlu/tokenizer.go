package nlu

import (
	"unicode"
	"unicode/utf8"
)

// customLexicon seeds the tokenizer with multi-rune vocabulary the assistant
// cares about: application names, cities and common colloquial words. Without
// a dictionary every Han rune would come out as its own token.
var customLexicon = []string{
	"酷狗音乐", "网易云音乐", "qq音乐", "哔哩哔哩", "腾讯视频",
	"爱奇艺", "优酷视频", "芒果tv", "微信", "支付宝", "淘宝",
	"京东", "拼多多", "美团", "饿了么", "滴滴出行", "高德地图",
	"百度地图", "腾讯地图", "钉钉", "飞书", "企业微信", "腾讯会议",
	"小红书", "抖音", "快手", "微博", "知乎", "豆瓣", "b站",
	"vscode", "pycharm", "visual studio", "记事本", "计算器",
	"控制面板", "任务管理器", "命令提示符", "powershell",
}

// Tokenizer segments normalized text into tokens. Latin letter and digit runs
// form one token each; Han text is matched greedily against the lexicon, with
// unmatched runes emitted individually.
type Tokenizer struct {
	lexicon map[string]struct{}
	maxLen  int
}

// NewTokenizer builds a tokenizer over the built-in lexicon plus any extra
// vocabulary, such as the entity pattern literals.
func NewTokenizer(extra ...string) *Tokenizer {
	t := &Tokenizer{lexicon: make(map[string]struct{})}
	for _, w := range customLexicon {
		t.add(w)
	}
	for _, w := range sentimentVocabulary() {
		t.add(w)
	}
	for _, w := range extra {
		t.add(w)
	}
	return t
}

func (t *Tokenizer) add(word string) {
	if word == "" {
		return
	}
	t.lexicon[word] = struct{}{}
	if n := utf8.RuneCountInString(word); n > t.maxLen {
		t.maxLen = n
	}
}

func isWordRune(r rune) bool {
	return r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// Tokenize splits text into an ordered, finite token sequence. Deterministic:
// the same input always yields the same tokens.
func (t *Tokenizer) Tokenize(text string) []string {
	runes := []rune(text)
	var tokens []string
	for i := 0; i < len(runes); {
		r := runes[i]

		if unicode.IsSpace(r) || unicode.IsPunct(r) || unicode.IsSymbol(r) {
			i++
			continue
		}

		// ASCII letter/digit run
		if isWordRune(r) {
			j := i
			for j < len(runes) && isWordRune(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
			continue
		}

		// Greedy longest lexicon match
		matched := false
		limit := t.maxLen
		if rest := len(runes) - i; rest < limit {
			limit = rest
		}
		for n := limit; n >= 2; n-- {
			if _, ok := t.lexicon[string(runes[i:i+n])]; ok {
				tokens = append(tokens, string(runes[i:i+n]))
				i += n
				matched = true
				break
			}
		}
		if !matched {
			tokens = append(tokens, string(r))
			i++
		}
	}
	return tokens
}
