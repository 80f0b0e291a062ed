package nlu

// Result bundles everything the NLU stage knows about one turn.
type Result struct {
	// Text is the normalized form of the input.
	Text string
	// Intent is the classified intent; OK is false when classification was
	// absent, which is not the same as IntentUnknown.
	Intent Intent
	OK     bool
	// Entities holds the extracted entities in first-match order.
	Entities []Entity
	// Sentiment is the coarse polarity of the turn.
	Sentiment Sentiment
}

// Processor is the rule-based NLU front end: normalization, tokenization,
// entity extraction, intent classification and sentiment in one pass.
type Processor struct {
	tokenizer  *Tokenizer
	extractor  *Extractor
	classifier *Classifier
}

func NewProcessor(cfg ClassifierConfig) *Processor {
	return &Processor{
		tokenizer:  NewTokenizer(),
		extractor:  NewExtractor(),
		classifier: NewClassifier(cfg),
	}
}

// Process runs the full NLU pipeline over one raw turn. It is pure with
// respect to the processor and never fails.
func (p *Processor) Process(text string) Result {
	normalized := Normalize(text)
	intent, ok := p.classifier.Classify(normalized)
	return Result{
		Text:      normalized,
		Intent:    intent,
		OK:        ok,
		Entities:  p.extractor.Extract(normalized),
		Sentiment: AnalyzeSentiment(p.tokenizer.Tokenize(normalized)),
	}
}

// Tokenize exposes the processor's tokenizer for keyword-level consumers.
func (p *Processor) Tokenize(text string) []string {
	return p.tokenizer.Tokenize(text)
}
