package dialogue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
	"github.com/4lin107/xiaozhi-assistant/internal/session"
)

// fakeActions records calls and answers with canned strings.
type fakeActions struct {
	weatherCity string
	weatherHint string
	openedApps  []string
	playedSongs []string
	fail        bool
}

func (f *fakeActions) GetWeather(ctx context.Context, city, timeHint string) (string, error) {
	if f.fail {
		return "", errors.New("upstream down")
	}
	f.weatherCity, f.weatherHint = city, timeHint
	return fmt.Sprintf("%s%s天气晴", city, timeHint), nil
}

func (f *fakeActions) GetNews(ctx context.Context) (string, error) {
	return "今日头条: 测试新闻", nil
}

func (f *fakeActions) SearchInternet(ctx context.Context, query string) (string, error) {
	return "已为您搜索: " + query, nil
}

func (f *fakeActions) SearchMap(ctx context.Context, location string) (string, error) {
	return "已为您定位: " + location, nil
}

func (f *fakeActions) PlayMusic(ctx context.Context, name string) (string, error) {
	f.playedSongs = append(f.playedSongs, name)
	return "正在播放: " + name, nil
}

func (f *fakeActions) Translate(ctx context.Context, text, targetLang string) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeActions) OpenFolder(ctx context.Context, path string) (string, error) {
	return "已打开文件夹: " + path, nil
}

func (f *fakeActions) OpenApplication(ctx context.Context, name string) (string, error) {
	if f.fail {
		return "", errors.New("launch failed")
	}
	f.openedApps = append(f.openedApps, name)
	return "已打开 " + name, nil
}

func (f *fakeActions) ListFiles(ctx context.Context, dir string) (string, error) {
	return "目录 " + dir + " 为空", nil
}

// allowGuard grants everything; denyGuard denies everything.
type allowGuard struct{ confirm bool }

func (g allowGuard) HasPermission(action string) bool { return true }
func (g allowGuard) RequireConfirmation() bool        { return g.confirm }

type denyGuard struct{}

func (denyGuard) HasPermission(action string) bool { return false }
func (denyGuard) RequireConfirmation() bool        { return false }

func newTestManager(t *testing.T, acts *fakeActions, guard Guard) *Manager {
	t.Helper()
	snaps, err := session.NewStore(session.Config{Driver: "memory"}, nil)
	require.NoError(t, err)
	return NewManager(Config{}, nlu.NewProcessor(nlu.ClassifierConfig{}), acts, guard, nil, snaps)
}

func TestProcessWeatherContinuation(t *testing.T) {
	ctx := context.Background()
	acts := &fakeActions{}
	m := newTestManager(t, acts, allowGuard{})

	resp, err := m.Process(ctx, "北京今天天气怎么样")
	require.NoError(t, err)
	assert.Contains(t, resp, "北京")
	assert.Equal(t, "北京", acts.weatherCity)

	// The bare follow-up keeps the intent and backfills the city.
	resp, err = m.Process(ctx, "明天呢")
	require.NoError(t, err)
	assert.Contains(t, resp, "北京")
	assert.Equal(t, "北京", acts.weatherCity)
	assert.Equal(t, "明天", acts.weatherHint)
	assert.Equal(t, nlu.IntentWeather, m.LastIntent())
}

func TestProcessTopicFrozenOnUnknown(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	_, err := m.Process(ctx, "今天天气怎么样")
	require.NoError(t, err)
	_, err = m.Process(ctx, "温度多少")
	require.NoError(t, err)

	sc := m.Context()
	require.Equal(t, nlu.IntentWeather, sc.ConversationTopic)
	require.Equal(t, 2, sc.TopicTurns)

	_, err = m.Process(ctx, "呃呃")
	require.NoError(t, err)

	sc = m.Context()
	assert.Equal(t, nlu.IntentWeather, sc.ConversationTopic)
	assert.Equal(t, 2, sc.TopicTurns)
	assert.Equal(t, nlu.IntentUnknown, sc.LastIntent)
}

func TestProcessFavoritePromotion(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	_, err := m.Process(ctx, "讲个笑话")
	require.NoError(t, err)
	_, err = m.Process(ctx, "说个笑话")
	require.NoError(t, err)

	assert.Contains(t, m.Context().Memory.FavoriteTopics, nlu.IntentJoke)
}

func TestProcessJokeEndToEnd(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	_, err := m.Process(ctx, "今天天气怎么样")
	require.NoError(t, err)

	resp, err := m.Process(ctx, "讲个笑话")
	require.NoError(t, err)
	assert.Contains(t, jokes, resp)

	sc := m.Context()
	assert.Equal(t, nlu.IntentJoke, sc.LastIntent)
	assert.Equal(t, resp, sc.LastResponse)
	// The topic switched away from weather and its streak restarted.
	assert.Equal(t, nlu.IntentJoke, sc.ConversationTopic)
	assert.Equal(t, 1, sc.TopicTurns)
}

func TestProcessCalculator(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	resp, err := m.Process(ctx, "帮我计算3加5")
	require.NoError(t, err)
	assert.Equal(t, "计算结果是: 8", resp)

	resp, err = m.Process(ctx, "计算10除以0")
	require.NoError(t, err)
	assert.Equal(t, "抱歉，除数不能为零", resp)
}

func TestProcessSensitiveAppConfirmation(t *testing.T) {
	ctx := context.Background()
	acts := &fakeActions{}
	m := newTestManager(t, acts, allowGuard{confirm: true})

	resp, err := m.Process(ctx, "打开cmd")
	require.NoError(t, err)
	assert.Contains(t, resp, "确定要打开 cmd 吗")
	require.Len(t, m.Context().PendingQuestions, 1)
	assert.Empty(t, acts.openedApps)

	resp, err = m.Process(ctx, "确定")
	require.NoError(t, err)
	assert.Equal(t, "已打开 cmd", resp)
	assert.Equal(t, []string{"cmd"}, acts.openedApps)
	assert.Empty(t, m.Context().PendingQuestions)
}

func TestProcessSensitiveAppCancel(t *testing.T) {
	ctx := context.Background()
	acts := &fakeActions{}
	m := newTestManager(t, acts, allowGuard{confirm: true})

	_, err := m.Process(ctx, "打开powershell")
	require.NoError(t, err)
	require.Len(t, m.Context().PendingQuestions, 1)

	resp, err := m.Process(ctx, "算了")
	require.NoError(t, err)
	assert.Equal(t, "好的，已取消该操作。", resp)
	assert.Empty(t, m.Context().PendingQuestions)
	assert.Empty(t, acts.openedApps)
}

func TestProcessSensitiveAppWithoutConfirmationPolicy(t *testing.T) {
	ctx := context.Background()
	acts := &fakeActions{}
	m := newTestManager(t, acts, allowGuard{confirm: false})

	resp, err := m.Process(ctx, "打开cmd")
	require.NoError(t, err)
	assert.Equal(t, "已打开 cmd", resp)
	assert.Empty(t, m.Context().PendingQuestions)
}

func TestProcessPermissionDenied(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, denyGuard{})

	resp, err := m.Process(ctx, "打开微信")
	require.NoError(t, err)
	assert.Contains(t, resp, "权限不足")
}

func TestProcessExit(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	resp, err := m.Process(ctx, "退出")
	require.NoError(t, err)
	assert.Equal(t, "感谢使用，再见！", resp)
	assert.Equal(t, nlu.IntentExit, m.LastIntent())
}

func TestProcessWeatherFailureApology(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{fail: true}, allowGuard{})

	resp, err := m.Process(ctx, "上海天气怎么样")
	require.NoError(t, err)
	assert.Equal(t, "抱歉，获取上海的天气信息失败，请稍后重试", resp)
}

func TestProcessEmptyInput(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t, &fakeActions{}, allowGuard{})

	resp, err := m.Process(ctx, "   ")
	require.NoError(t, err)
	assert.Contains(t, defaultResponses, resp)
	// An empty turn does not advance the conversation.
	assert.Equal(t, 0, m.Context().ConversationTurns)
}

func TestRestoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	snaps, err := session.NewStore(session.Config{Driver: "memory"}, nil)
	require.NoError(t, err)

	nlp := nlu.NewProcessor(nlu.ClassifierConfig{})
	m1 := NewManager(Config{}, nlp, &fakeActions{}, allowGuard{}, nil, snaps)
	_, err = m1.Process(ctx, "杭州天气怎么样")
	require.NoError(t, err)
	sessionID := m1.Context().SessionID

	// A second manager over the same snapshot store resumes the session.
	m2 := NewManager(Config{}, nlp, &fakeActions{}, allowGuard{}, nil, snaps)
	require.NoError(t, err)
	require.NoError(t, m2.Restore(ctx))

	sc := m2.Context()
	assert.Equal(t, sessionID, sc.SessionID)
	assert.Equal(t, "杭州", sc.Memory.PreferredCity)
	assert.Equal(t, nlu.IntentWeather, sc.LastIntent)
}
