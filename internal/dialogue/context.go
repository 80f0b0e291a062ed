package dialogue

import (
	"time"

	"github.com/google/uuid"

	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
)

// DefaultUserID identifies the single local user this assistant serves.
// Multi-user isolation is out of scope; one context record per process.
const DefaultUserID = "default"

// Memory is the long-lived part of the session: user preferences accumulated
// across turns.
type Memory struct {
	PreferredCity     string       `json:"preferred_city,omitempty"`
	PreferredLanguage string       `json:"preferred_language"`
	FavoriteTopics    []nlu.Intent `json:"favorite_topics,omitempty"`
	RecentQueries     []nlu.Intent `json:"recent_queries,omitempty"`
	UserName          string       `json:"user_name,omitempty"`
}

// PendingQuestion is a confirmation request awaiting a yes/no answer before a
// sensitive action runs.
type PendingQuestion struct {
	Kind    string            `json:"kind"`
	Action  nlu.Intent        `json:"action"`
	Params  map[string]string `json:"params,omitempty"`
	Message string            `json:"message"`
}

// SessionContext is the single mutable record behind multi-turn continuation.
// It is created once at session start and mutated exactly once per turn,
// after the handler has produced its response. All access is serialized
// through the Manager.
type SessionContext struct {
	UserID            string            `json:"user_id"`
	SessionID         string            `json:"session_id"`
	LastIntent        nlu.Intent        `json:"last_intent,omitempty"`
	LastEntities      []nlu.Entity      `json:"last_entities,omitempty"`
	LastResponse      string            `json:"last_response,omitempty"`
	ConversationTopic nlu.Intent        `json:"conversation_topic,omitempty"`
	TopicTurns        int               `json:"topic_turns"`
	ConversationTurns int               `json:"conversation_turns"`
	Memory            Memory            `json:"memory"`
	PendingQuestions  []PendingQuestion `json:"pending_questions,omitempty"`
	StartTime         time.Time         `json:"start_time"`
}

// NewSessionContext returns a fresh context with defaults.
func NewSessionContext() *SessionContext {
	return &SessionContext{
		UserID:    DefaultUserID,
		SessionID: uuid.NewString(),
		Memory:    Memory{PreferredLanguage: "zh-CN"},
		StartTime: time.Now(),
	}
}

// PushPendingQuestion enqueues a confirmation request.
func (sc *SessionContext) PushPendingQuestion(q PendingQuestion) {
	sc.PendingQuestions = append(sc.PendingQuestions, q)
}

// PopPendingQuestion dequeues the oldest confirmation request.
func (sc *SessionContext) PopPendingQuestion() (PendingQuestion, bool) {
	if len(sc.PendingQuestions) == 0 {
		return PendingQuestion{}, false
	}
	q := sc.PendingQuestions[0]
	sc.PendingQuestions = sc.PendingQuestions[1:]
	return q, true
}

// update applies the per-turn context mutation: turn counters, last-turn
// fields, topic tracking and user memory. It runs exactly once per turn,
// unconditionally, after dispatch.
func (sc *SessionContext) update(intent nlu.Intent, entities []nlu.Entity, response string, recentWindow, favoriteCount int) {
	sc.ConversationTurns++
	sc.LastIntent = intent
	sc.LastEntities = entities
	sc.LastResponse = response

	sc.updateTopic(intent)
	sc.updateMemory(intent, entities, recentWindow, favoriteCount)
}

// updateTopic tracks the consecutive-turn streak for the current topic. An
// unknown intent freezes the streak: the topic is kept and the counter is
// neither incremented nor reset.
func (sc *SessionContext) updateTopic(intent nlu.Intent) {
	if intent == nlu.IntentUnknown || intent == nlu.IntentNone {
		return
	}
	if sc.ConversationTopic == intent {
		sc.TopicTurns++
	} else {
		sc.ConversationTopic = intent
		sc.TopicTurns = 1
	}
}

func (sc *SessionContext) updateMemory(intent nlu.Intent, entities []nlu.Entity, recentWindow, favoriteCount int) {
	m := &sc.Memory

	if intent == nlu.IntentWeather {
		if city, ok := nlu.FirstOfType(entities, nlu.EntityCity); ok {
			m.PreferredCity = city
		}
	}

	if intent != nlu.IntentUnknown && intent != nlu.IntentNone {
		m.RecentQueries = append(m.RecentQueries, intent)
		if len(m.RecentQueries) > recentWindow {
			m.RecentQueries = m.RecentQueries[len(m.RecentQueries)-recentWindow:]
		}

		if !containsIntent(m.FavoriteTopics, intent) {
			count := 0
			for _, q := range m.RecentQueries {
				if q == intent {
					count++
				}
			}
			if count >= favoriteCount {
				m.FavoriteTopics = append(m.FavoriteTopics, intent)
			}
		}
	}

	for _, e := range entities {
		switch e.Type {
		case nlu.EntityPerson:
			// first-seen-wins
			if m.UserName == "" {
				m.UserName = e.Value
			}
		case nlu.EntityLanguage:
			m.PreferredLanguage = e.Value
		}
	}
}

func containsIntent(list []nlu.Intent, intent nlu.Intent) bool {
	for _, i := range list {
		if i == intent {
			return true
		}
	}
	return false
}
