package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClassifier(t *testing.T) *Classifier {
	t.Helper()
	return NewClassifier(ClassifierConfig{})
}

func TestClassifyOpenTargetTier(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		input string
		want  Intent
	}{
		// Known application targets.
		{"打开网易云音乐", IntentOpenApplication},
		{"启动微信", IntentOpenApplication},
		{"运行记事本", IntentOpenApplication},
		// Folder keywords beat the application default.
		{"打开下载文件夹", IntentOpenFolder},
		{"打开音乐", IntentOpenFolder},
		{"打开桌面", IntentOpenFolder},
		// Unrecognised but plausible targets default to applications.
		{"打开abc", IntentOpenApplication},
		// Trailing particles are stripped before target matching.
		{"打开微信吧", IntentOpenApplication},
	}
	for _, tt := range tests {
		intent, ok := c.Classify(Normalize(tt.input))
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, intent, "input %q", tt.input)
	}
}

func TestClassifyRuleTable(t *testing.T) {
	c := newTestClassifier(t)

	tests := []struct {
		input string
		want  Intent
	}{
		{"今天天气怎么样", IntentWeather},
		{"现在几点了", IntentTime},
		{"今天星期几", IntentDate},
		{"帮我计算3加5", IntentCalculator},
		{"讲个笑话", IntentJoke},
		{"你好", IntentGreeting},
		{"再见", IntentFarewell},
		{"播放周杰伦的歌", IntentMusic},
		{"搜索天气预报", IntentSearchInternet},
		{"退出", IntentExit},
	}
	for _, tt := range tests {
		intent, ok := c.Classify(Normalize(tt.input))
		require.True(t, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, intent, "input %q", tt.input)
	}
}

// Several rule patterns share vocabulary; the first declared intent must win
// every time.
func TestClassifyRuleOrderDeterministic(t *testing.T) {
	c := newTestClassifier(t)

	// 穿什么 appears in both the weather rule and the dress rule; weather is
	// declared first.
	for i := 0; i < 10; i++ {
		intent, ok := c.Classify("今天穿什么")
		require.True(t, ok)
		assert.Equal(t, IntentWeather, intent)
	}
}

func TestClassifySimilarityFallback(t *testing.T) {
	c := newTestClassifier(t)

	// No rule pattern is a substring of this input; the term-vector fallback
	// should still land on the story intent.
	intent, ok := c.Classify("讲个故事给我")
	require.True(t, ok)
	assert.Equal(t, IntentStory, intent)
}

func TestClassifyAbsent(t *testing.T) {
	c := newTestClassifier(t)

	for _, input := range []string{"qwert", "呃呃", ""} {
		intent, ok := c.Classify(input)
		assert.False(t, ok, "input %q", input)
		assert.Equal(t, IntentNone, intent, "input %q", input)
	}
}

func TestClassifyRepeatable(t *testing.T) {
	c := newTestClassifier(t)
	first, firstOK := c.Classify("明天上海会下雨吗")
	for i := 0; i < 10; i++ {
		intent, ok := c.Classify("明天上海会下雨吗")
		assert.Equal(t, first, intent)
		assert.Equal(t, firstOK, ok)
	}
}
