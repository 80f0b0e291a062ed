package dialogue

import (
	"strings"

	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
)

// contextualKeywords associates continuable intents with the follow-up
// vocabulary that signals the user is still on the same subject. Checked in
// declaration order.
var contextualKeywords = []struct {
	Intent   nlu.Intent
	Keywords []string
}{
	{nlu.IntentWeather, []string{"温度", "天气", "下雨", "晴天", "多云", "预报", "风力", "湿度", "气候", "天气怎么样", "冷", "热"}},
	{nlu.IntentTime, []string{"几点", "时间", "现在", "几时", "何时", "几点了"}},
	{nlu.IntentDate, []string{"日期", "几号", "今天", "明天", "后天", "星期几", "几号了"}},
	{nlu.IntentSearchInternet, []string{"搜索", "查找", "查询", "了解", "更多", "详细", "信息", "资料"}},
	{nlu.IntentCalculator, []string{"计算", "加", "减", "乘", "除", "等于", "结果", "多少"}},
	{nlu.IntentJoke, []string{"笑话", "搞笑", "幽默", "哈哈", "开心"}},
	{nlu.IntentMusic, []string{"音乐", "歌曲", "播放", "听歌", "唱歌", "旋律"}},
	{nlu.IntentOpenApplication, []string{"打开", "启动", "运行", "开启"}},
	{nlu.IntentOpenFolder, []string{"打开", "查看", "浏览", "文件夹"}},
}

var questionWords = []string{"呢", "?", "怎么", "为什么", "哪里", "什么", "如何", "多少"}

var weatherTimeKeywords = []string{
	"今天", "明天", "后天", "大后天",
	"周一", "周二", "周三", "周四", "周五", "周六", "周日",
	"早上", "下午", "晚上", "上午", "夜间", "凌晨",
}

var timeDateKeywords = []string{"几点", "时间", "日期", "几号", "今天", "明天", "现在", "几时", "何时", "星期几"}

var searchMoreKeywords = []string{"更多", "详细", "信息", "资料", "了解", "然后呢"}

// Resolver reconciles the classifier's (possibly absent) intent and the
// extracted entities against the live session record, inferring continuation
// intents and back-filling missing entities.
type Resolver struct{}

func NewResolver() *Resolver {
	return &Resolver{}
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func absent(intent nlu.Intent) bool {
	return intent == nlu.IntentNone || intent == nlu.IntentUnknown
}

// Resolve applies the contextual-continuation rules in priority order and
// finalises an absent classification to IntentUnknown. It returns the
// (possibly overridden) intent and the (possibly augmented) entity set.
func (r *Resolver) Resolve(input string, intent nlu.Intent, ok bool, entities []nlu.Entity, sc *SessionContext) (nlu.Intent, []nlu.Entity) {
	if !ok {
		intent = nlu.IntentNone
	}

	if absent(intent) && sc.LastIntent != nlu.IntentNone {
		// 1. Continuation via the previous intent's keyword set.
		for _, ck := range contextualKeywords {
			if sc.LastIntent == ck.Intent && containsAny(input, ck.Keywords) {
				intent = sc.LastIntent
				break
			}
		}

		// 2. Continuation via the running conversation topic.
		if absent(intent) && sc.ConversationTopic != nlu.IntentNone {
			for _, ck := range contextualKeywords {
				if sc.ConversationTopic == ck.Intent && containsAny(input, ck.Keywords) {
					intent = sc.ConversationTopic
					break
				}
			}
		}

		// 3. A bare question word continues the previous intent.
		if absent(intent) && containsAny(input, questionWords) {
			intent = sc.LastIntent
		}
	}

	// 4. Weather backfill: inject a city from memory or the prior turn, and
	// accept bare time-reference follow-ups like 明天呢.
	if intent == nlu.IntentWeather || (absent(intent) && sc.LastIntent == nlu.IntentWeather) {
		if _, hasCity := nlu.FirstOfType(entities, nlu.EntityCity); !hasCity {
			if sc.Memory.PreferredCity != "" {
				entities = append(entities, nlu.Entity{Type: nlu.EntityCity, Value: sc.Memory.PreferredCity})
			} else if sc.LastIntent == nlu.IntentWeather {
				if city, ok := nlu.FirstOfType(sc.LastEntities, nlu.EntityCity); ok {
					entities = append(entities, nlu.Entity{Type: nlu.EntityCity, Value: city})
				}
			}
		}

		if absent(intent) && (containsAny(input, weatherTimeKeywords) || strings.Contains(input, "呢")) {
			intent = nlu.IntentWeather
		}
	}

	// 5. Time/date continuation.
	if absent(intent) && (sc.LastIntent == nlu.IntentTime || sc.LastIntent == nlu.IntentDate) {
		if containsAny(input, timeDateKeywords) || strings.Contains(input, "呢") {
			intent = sc.LastIntent
		}
	}

	// 6. Search continuation, re-using the previous query when none is
	// present.
	if absent(intent) && sc.LastIntent == nlu.IntentSearchInternet {
		if containsAny(input, searchMoreKeywords) || strings.Contains(input, "呢") {
			intent = nlu.IntentSearchInternet
			if _, hasQuery := nlu.FirstOfType(entities, nlu.EntityQuery); !hasQuery {
				if q, ok := nlu.FirstOfType(sc.LastEntities, nlu.EntityQuery); ok {
					entities = append(entities, nlu.Entity{Type: nlu.EntityQuery, Value: q})
				}
			}
		}
	}

	if absent(intent) {
		intent = nlu.IntentUnknown
	}
	return intent, entities
}
