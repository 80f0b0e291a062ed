package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenizeLexiconLongestMatch(t *testing.T) {
	tk := NewTokenizer()

	tokens := tk.Tokenize("打开网易云音乐")
	assert.Contains(t, tokens, "网易云音乐")

	// ASCII runs come out as one token each.
	tokens = tk.Tokenize("打开vscode和pycharm")
	assert.Contains(t, tokens, "vscode")
	assert.Contains(t, tokens, "pycharm")
}

func TestTokenizeSkipsPunctuation(t *testing.T) {
	tk := NewTokenizer()
	tokens := tk.Tokenize("你好,世界!")
	assert.NotContains(t, tokens, ",")
	assert.NotContains(t, tokens, "!")
}

func TestTokenizeDeterministic(t *testing.T) {
	tk := NewTokenizer()
	first := tk.Tokenize("今天天气真棒,打开微信")
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, tk.Tokenize("今天天气真棒,打开微信"))
	}
}

func TestTokenizeExtraVocabulary(t *testing.T) {
	tk := NewTokenizer("量子计算")
	assert.Contains(t, tk.Tokenize("了解量子计算"), "量子计算")
}
