// Package dialogue implements the assistant's conversational core: context
// resolution against the live session record, intent dispatch, session
// memory and turn persistence.
package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/4lin107/xiaozhi-assistant/internal/actions"
	"github.com/4lin107/xiaozhi-assistant/internal/history"
	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
	"github.com/4lin107/xiaozhi-assistant/internal/session"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

// Config carries the session-memory tunables. The defaults mirror the
// empirically chosen values the behaviour was tuned with; they are
// configuration, not derivable constants.
type Config struct {
	RecentQueryWindow  int `envconfig:"DIALOGUE_RECENT_QUERY_WINDOW" default:"5"`
	FavoriteTopicCount int `envconfig:"DIALOGUE_FAVORITE_TOPIC_COUNT" default:"2"`
}

// Manager is the dialogue core: the sole entry point for turns. Processing is
// single-threaded per turn; every turn is serialized through one mutex around
// the SessionContext mutation, so there is never overlapping-turn execution.
type Manager struct {
	mu        sync.Mutex
	cfg       Config
	nlp       *nlu.Processor
	resolver  *Resolver
	registry  *Registry
	sc        *SessionContext
	acts      actions.Capability
	guard     Guard
	history   *history.Store
	snapshots session.Store
}

// NewManager wires the pipeline. The history store and snapshot store are
// optional; a nil store disables that concern.
func NewManager(cfg Config, nlp *nlu.Processor, acts actions.Capability, guard Guard, hist *history.Store, snaps session.Store) *Manager {
	if cfg.RecentQueryWindow <= 0 {
		cfg.RecentQueryWindow = 5
	}
	if cfg.FavoriteTopicCount <= 0 {
		cfg.FavoriteTopicCount = 2
	}
	return &Manager{
		cfg:       cfg,
		nlp:       nlp,
		resolver:  NewResolver(),
		registry:  NewRegistry(),
		sc:        NewSessionContext(),
		acts:      acts,
		guard:     guard,
		history:   hist,
		snapshots: snaps,
	}
}

// Restore resumes the previous session from the snapshot store, if one
// exists. Called once before the first turn.
func (m *Manager) Restore(ctx context.Context) error {
	if m.snapshots == nil {
		return nil
	}

	state, err := m.snapshots.Load(ctx, DefaultUserID)
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	var sc SessionContext
	if err := json.Unmarshal(state, &sc); err != nil {
		return fmt.Errorf("unmarshal session snapshot: %w", err)
	}

	m.mu.Lock()
	m.sc = &sc
	m.mu.Unlock()
	logx.Info().Str("sessionID", sc.SessionID).Int("turns", sc.ConversationTurns).Msg("restored session context")
	return nil
}

// Process runs one turn through the full pipeline: normalize, classify,
// extract, resolve, dispatch, update memory, persist. No pipeline error is
// fatal to the turn; persistence failures are logged and the response still
// returned.
func (m *Manager) Process(ctx context.Context, input string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if strings.TrimSpace(input) == "" {
		return defaultResponse(), nil
	}

	if response, intent, handled := m.resumePending(ctx, input); handled {
		m.finishTurn(ctx, input, intent, nil, response)
		return response, nil
	}

	res := m.nlp.Process(input)
	intent, entities := m.resolver.Resolve(res.Text, res.Intent, res.OK, res.Entities, m.sc)

	logx.Debug().
		Str("intent", string(intent)).
		Int("entities", len(entities)).
		Str("sentiment", string(res.Sentiment)).
		Str("sessionID", m.sc.SessionID).
		Msg("resolved turn")

	response := m.registry.Dispatch(ctx, &Request{
		Input:    res.Text,
		Intent:   intent,
		Entities: entities,
		Session:  m.sc,
		Actions:  m.acts,
		Guard:    m.guard,
	})

	m.finishTurn(ctx, input, intent, entities, response)
	return response, nil
}

var (
	affirmativeAnswers = map[string]struct{}{
		"是": {}, "是的": {}, "好": {}, "好的": {}, "确定": {}, "确认": {},
		"可以": {}, "嗯": {}, "yes": {}, "y": {},
	}
	negativeAnswers = map[string]struct{}{
		"不": {}, "不要": {}, "不用": {}, "否": {}, "取消": {}, "算了": {},
		"no": {}, "n": {},
	}
)

// resumePending answers the oldest pending confirmation when the turn is a
// bare yes/no. Any other input leaves the queue untouched and flows through
// the normal pipeline.
func (m *Manager) resumePending(ctx context.Context, input string) (string, nlu.Intent, bool) {
	if len(m.sc.PendingQuestions) == 0 {
		return "", nlu.IntentNone, false
	}

	answer := nlu.Normalize(input)
	if _, yes := affirmativeAnswers[answer]; yes {
		q, _ := m.sc.PopPendingQuestion()
		return m.executeConfirmed(ctx, q), q.Action, true
	}
	if _, no := negativeAnswers[answer]; no {
		q, _ := m.sc.PopPendingQuestion()
		logx.Info().Str("action", string(q.Action)).Msg("pending action cancelled")
		return "好的，已取消该操作。", q.Action, true
	}
	return "", nlu.IntentNone, false
}

func (m *Manager) executeConfirmed(ctx context.Context, q PendingQuestion) string {
	switch q.Action {
	case nlu.IntentOpenApplication:
		result, err := m.acts.OpenApplication(ctx, q.Params["app_name"])
		if err != nil {
			logx.Error().Err(err).Str("app", q.Params["app_name"]).Msg("confirmed launch failed")
			return fmt.Sprintf("抱歉，打开应用程序时出错: %v", err)
		}
		return result
	default:
		return defaultResponse()
	}
}

// finishTurn applies the single unconditional post-dispatch update and
// persists the turn.
func (m *Manager) finishTurn(ctx context.Context, input string, intent nlu.Intent, entities []nlu.Entity, response string) {
	m.sc.update(intent, entities, response, m.cfg.RecentQueryWindow, m.cfg.FavoriteTopicCount)

	if m.history != nil {
		serialized, err := json.Marshal(entities)
		if err != nil {
			serialized = []byte("[]")
		}
		rec := &history.Record{
			Timestamp: time.Now(),
			UserInput: input,
			Intent:    string(intent),
			Entities:  string(serialized),
			Response:  response,
		}
		if err := m.history.Append(ctx, rec); err != nil {
			logx.Error().Err(err).Msg("failed to persist dialogue turn")
		}
	}

	if m.snapshots != nil {
		state, err := json.Marshal(m.sc)
		if err == nil {
			err = m.snapshots.Save(ctx, m.sc.UserID, state)
		}
		if err != nil {
			logx.Error().Err(err).Msg("failed to save session snapshot")
		}
	}
}

// LastIntent reports the resolved intent of the most recent turn.
func (m *Manager) LastIntent() nlu.Intent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sc.LastIntent
}

// Context returns a copy of the session context for inspection.
func (m *Manager) Context() SessionContext {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.sc
}

// History lists up to limit recent turns, oldest first.
func (m *Manager) History(ctx context.Context, limit int) ([]history.Record, error) {
	if m.history == nil {
		return nil, nil
	}
	return m.history.ListRecent(ctx, limit)
}
