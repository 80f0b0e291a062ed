package dialogue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
)

func TestResolveKeywordContinuation(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentWeather

	intent, _ := r.Resolve("温度多少", nlu.IntentNone, false, nil, sc)
	assert.Equal(t, nlu.IntentWeather, intent)
}

func TestResolveTopicContinuation(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentGreeting
	sc.ConversationTopic = nlu.IntentMusic

	intent, _ := r.Resolve("换首歌曲", nlu.IntentNone, false, nil, sc)
	assert.Equal(t, nlu.IntentMusic, intent)
}

func TestResolveQuestionWordContinuation(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentJoke

	intent, _ := r.Resolve("为什么", nlu.IntentNone, false, nil, sc)
	assert.Equal(t, nlu.IntentJoke, intent)
}

func TestResolveWeatherCityBackfill(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentWeather
	sc.LastEntities = []nlu.Entity{{Type: nlu.EntityCity, Value: "上海"}}

	intent, entities := r.Resolve("明天呢", nlu.IntentNone, false, nil, sc)
	require.Equal(t, nlu.IntentWeather, intent)

	city, ok := nlu.FirstOfType(entities, nlu.EntityCity)
	require.True(t, ok)
	assert.Equal(t, "上海", city)
}

func TestResolveWeatherPrefersRememberedCity(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentWeather
	sc.LastEntities = []nlu.Entity{{Type: nlu.EntityCity, Value: "上海"}}
	sc.Memory.PreferredCity = "广州"

	_, entities := r.Resolve("后天呢", nlu.IntentNone, false, nil, sc)
	city, ok := nlu.FirstOfType(entities, nlu.EntityCity)
	require.True(t, ok)
	assert.Equal(t, "广州", city)
}

func TestResolveWeatherKeepsExplicitCity(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.Memory.PreferredCity = "广州"

	explicit := []nlu.Entity{{Type: nlu.EntityCity, Value: "成都"}}
	_, entities := r.Resolve("成都天气", nlu.IntentWeather, true, explicit, sc)
	city, ok := nlu.FirstOfType(entities, nlu.EntityCity)
	require.True(t, ok)
	assert.Equal(t, "成都", city)
}

func TestResolveSearchQueryBackfill(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentSearchInternet
	sc.LastEntities = []nlu.Entity{{Type: nlu.EntityQuery, Value: "量子计算"}}

	intent, entities := r.Resolve("更多", nlu.IntentNone, false, nil, sc)
	require.Equal(t, nlu.IntentSearchInternet, intent)

	q, ok := nlu.FirstOfType(entities, nlu.EntityQuery)
	require.True(t, ok)
	assert.Equal(t, "量子计算", q)
}

func TestResolveTimeDateContinuation(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentDate

	intent, _ := r.Resolve("明天呢", nlu.IntentNone, false, nil, sc)
	assert.Equal(t, nlu.IntentDate, intent)
}

func TestResolveFinalizesUnknown(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()

	intent, _ := r.Resolve("呃呃", nlu.IntentNone, false, nil, sc)
	assert.Equal(t, nlu.IntentUnknown, intent)
}

func TestResolveClassifiedIntentUntouched(t *testing.T) {
	r := NewResolver()
	sc := NewSessionContext()
	sc.LastIntent = nlu.IntentWeather

	intent, _ := r.Resolve("讲个笑话", nlu.IntentJoke, true, nil, sc)
	assert.Equal(t, nlu.IntentJoke, intent)
}
