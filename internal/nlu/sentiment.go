package nlu

// Sentiment is a coarse polarity label for one turn.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

var positiveWords = map[string]struct{}{}
var negativeWords = map[string]struct{}{}

var positiveList = []string{
	"好", "棒", "优秀", "完美", "开心", "快乐", "喜欢", "满意", "厉害",
	"不错", "很好", "太好了", "真棒", "赞", "牛", "强", "爱", "感谢",
	"谢谢", "漂亮", "美丽", "帅", "酷", "精彩", "成功", "顺利",
}

var negativeList = []string{
	"坏", "差", "糟糕", "讨厌", "难过", "悲伤", "不满意", "失败",
	"错误", "问题", "麻烦", "烦", "累", "困", "难", "慢", "卡",
	"崩溃", "无聊", "生气", "愤怒", "伤心", "痛苦",
}

func init() {
	for _, w := range positiveList {
		positiveWords[w] = struct{}{}
	}
	for _, w := range negativeList {
		negativeWords[w] = struct{}{}
	}
}

// sentimentVocabulary feeds the polarity lexicon into the tokenizer so
// multi-rune sentiment words segment as single tokens.
func sentimentVocabulary() []string {
	out := make([]string, 0, len(positiveList)+len(negativeList))
	out = append(out, positiveList...)
	out = append(out, negativeList...)
	return out
}

// AnalyzeSentiment counts polarity lexicon hits over the token stream.
func AnalyzeSentiment(tokens []string) Sentiment {
	var pos, neg int
	for _, t := range tokens {
		if _, ok := positiveWords[t]; ok {
			pos++
		}
		if _, ok := negativeWords[t]; ok {
			neg++
		}
	}
	switch {
	case pos > neg:
		return SentimentPositive
	case neg > pos:
		return SentimentNegative
	default:
		return SentimentNeutral
	}
}
