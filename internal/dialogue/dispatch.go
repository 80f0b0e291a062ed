package dialogue

import (
	"context"
	"math/rand"

	"github.com/4lin107/xiaozhi-assistant/internal/actions"
	"github.com/4lin107/xiaozhi-assistant/internal/nlu"
	logx "github.com/4lin107/xiaozhi-assistant/pkg/logger"
)

// Guard is the slice of the security capability the dispatch layer consults
// before sensitive actions.
type Guard interface {
	HasPermission(action string) bool
	RequireConfirmation() bool
}

// Request carries one resolved turn into a handler.
type Request struct {
	Input    string
	Intent   nlu.Intent
	Entities []nlu.Entity
	Session  *SessionContext
	Actions  actions.Capability
	Guard    Guard
}

// Handler produces the response for one intent. Handlers are pure with
// respect to the core: they may call collaborator capabilities but never
// persist anything themselves.
type Handler func(ctx context.Context, req *Request) (string, error)

var defaultResponses = []string{
	"抱歉，我不太理解您的意思。",
	"能请您再说一遍吗？",
	"我还在学习中，这个问题有点难倒我了。",
}

func defaultResponse() string {
	return defaultResponses[rand.Intn(len(defaultResponses))]
}

// Registry is the total intent-to-handler mapping. Lookup never fails:
// intents without a registered handler route to the unknown handler.
type Registry struct {
	handlers map[nlu.Intent]Handler
}

// NewRegistry builds the registry with every built-in handler installed.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[nlu.Intent]Handler)}

	r.Register(nlu.IntentGreeting, handleGreeting)
	r.Register(nlu.IntentWeather, handleWeather)
	r.Register(nlu.IntentNews, handleNews)
	r.Register(nlu.IntentCalculator, handleCalculator)
	r.Register(nlu.IntentTime, handleTime)
	r.Register(nlu.IntentDate, handleDate)
	r.Register(nlu.IntentMusic, handleMusic)
	r.Register(nlu.IntentTranslation, handleTranslation)
	r.Register(nlu.IntentExit, handleExit)
	r.Register(nlu.IntentOpenFolder, handleOpenFolder)
	r.Register(nlu.IntentOpenApplication, handleOpenApplication)
	r.Register(nlu.IntentMap, handleMap)
	r.Register(nlu.IntentSearchInternet, handleSearchInternet)
	r.Register(nlu.IntentListFiles, handleListFiles)
	r.Register(nlu.IntentName, handleName)
	r.Register(nlu.IntentJoke, handleJoke)
	r.Register(nlu.IntentUnknown, handleUnknown)

	return r
}

// Register installs or replaces the handler for an intent.
func (r *Registry) Register(intent nlu.Intent, h Handler) {
	r.handlers[intent] = h
}

// Dispatch routes the request to its handler and never fails: a missing
// mapping falls back to the unknown handler, and any handler error or panic
// is converted into a localized apology so the turn loop survives.
func (r *Registry) Dispatch(ctx context.Context, req *Request) (response string) {
	defer func() {
		if rec := recover(); rec != nil {
			logx.Error().Str("intent", string(req.Intent)).Msgf("handler panic recovered: %v", rec)
			response = defaultResponse()
		}
	}()

	h, ok := r.handlers[req.Intent]
	if !ok {
		h = handleUnknown
	}

	resp, err := h(ctx, req)
	if err != nil {
		logx.Error().Err(err).Str("intent", string(req.Intent)).Msg("handler failed")
		return defaultResponse()
	}
	return resp
}
