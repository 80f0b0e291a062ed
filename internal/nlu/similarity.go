package nlu

import (
	"math"
	"regexp"
	"strings"
)

var metacharRe = regexp.MustCompile(`[.+*?^${}()|[\]\\]`)

// similarityModel is the lightweight term-vector fallback consulted when no
// rule matches. It is fit once over the rule-pattern exemplars, stripped of
// regex metacharacters, and scores inputs by maximum cosine similarity per
// intent.
type similarityModel struct {
	vocab     map[string]int
	idf       []float64
	exemplars []exemplar
	order     []Intent
}

type exemplar struct {
	intent Intent
	vec    map[int]float64
}

// features maps a string to overlapping rune bigrams. Single-rune strings
// contribute themselves, so one-character exemplars remain matchable.
func features(s string) []string {
	s = strings.ReplaceAll(s, " ", "")
	runes := []rune(s)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) == 1 {
		return []string{s}
	}
	out := make([]string, 0, len(runes)-1)
	for i := 0; i+1 < len(runes); i++ {
		out = append(out, string(runes[i:i+2]))
	}
	return out
}

func fitSimilarityModel(rules []intentRule) *similarityModel {
	m := &similarityModel{vocab: make(map[string]int)}

	type doc struct {
		intent Intent
		feats  []string
	}
	var docs []doc
	df := make(map[string]int)

	for _, rule := range rules {
		m.order = append(m.order, rule.Intent)
		for _, p := range rule.Patterns {
			clean := metacharRe.ReplaceAllString(p.raw, "")
			feats := features(clean)
			if len(feats) == 0 {
				continue
			}
			docs = append(docs, doc{intent: rule.Intent, feats: feats})
			seen := make(map[string]struct{})
			for _, f := range feats {
				if _, ok := seen[f]; ok {
					continue
				}
				seen[f] = struct{}{}
				df[f]++
			}
		}
	}

	for f := range df {
		m.vocab[f] = len(m.idf)
		m.idf = append(m.idf, 0)
	}
	n := float64(len(docs))
	for f, idx := range m.vocab {
		m.idf[idx] = math.Log((1+n)/float64(1+df[f])) + 1
	}

	for _, d := range docs {
		m.exemplars = append(m.exemplars, exemplar{intent: d.intent, vec: m.vectorize(d.feats)})
	}
	return m
}

// vectorize builds an l2-normalised tf-idf vector; unknown features are
// dropped.
func (m *similarityModel) vectorize(feats []string) map[int]float64 {
	vec := make(map[int]float64)
	for _, f := range feats {
		if idx, ok := m.vocab[f]; ok {
			vec[idx]++
		}
	}
	var norm float64
	for idx := range vec {
		vec[idx] *= m.idf[idx]
		norm += vec[idx] * vec[idx]
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func cosine(a, b map[int]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for idx, v := range a {
		dot += v * b[idx]
	}
	return dot
}

// predict returns the intent whose best exemplar scores highest, provided the
// score exceeds the threshold.
func (m *similarityModel) predict(text string, threshold float64) (Intent, bool) {
	query := m.vectorize(features(text))
	if len(query) == 0 {
		return IntentNone, false
	}

	best := make(map[Intent]float64)
	for _, ex := range m.exemplars {
		if s := cosine(query, ex.vec); s > best[ex.intent] {
			best[ex.intent] = s
		}
	}

	// Ties resolve in rule-table declaration order so prediction stays
	// deterministic.
	var (
		top      Intent
		topScore float64
	)
	for _, intent := range m.order {
		if s := best[intent]; s > topScore {
			top, topScore = intent, s
		}
	}
	if topScore > threshold {
		return top, true
	}
	return IntentNone, false
}
