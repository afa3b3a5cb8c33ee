// Package inference implements the in-process text analysis model used for
// summaries, sentiment and keyword extraction.
//
// A Model is loaded once at startup and is read-only afterwards, so a single
// instance is shared by all requests.
package inference

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/wordser/wordser/internal/core"
)

const (
	DefaultSummarySentences = 2
	DefaultMaxKeywords      = 5

	// negationWindow is how many preceding tokens can flip a sentiment hit.
	negationWindow = 2

	minKeywordLength = 3
)

// Options configures Load.
type Options struct {
	// LexiconPath overrides the embedded lexicon.
	LexiconPath      string
	SummarySentences int
	MaxKeywords      int
}

// Model scores text against a lexicon.
type Model struct {
	stopwords map[string]struct{}
	positive  map[string]struct{}
	negative  map[string]struct{}
	negators  map[string]struct{}

	summarySentences int
	maxKeywords      int
	source           string
}

// Load reads the lexicon and builds a Model. Any failure here should stop the
// process before it starts serving.
func Load(opts Options) (*Model, error) {
	lex, source, err := ReadLexicon(opts.LexiconPath)
	if err != nil {
		return nil, fmt.Errorf("load inference model from %s: %w", source, err)
	}
	return New(lex, opts), nil
}

// New builds a Model from an already parsed lexicon.
func New(lex *Lexicon, opts Options) *Model {
	summarySentences := opts.SummarySentences
	if summarySentences <= 0 {
		summarySentences = DefaultSummarySentences
	}
	maxKeywords := opts.MaxKeywords
	if maxKeywords <= 0 {
		maxKeywords = DefaultMaxKeywords
	}
	source := opts.LexiconPath
	if source == "" {
		source = "embedded"
	}

	return &Model{
		stopwords:        wordSet(lex.Stopwords),
		positive:         wordSet(lex.Positive),
		negative:         wordSet(lex.Negative),
		negators:         wordSet(lex.Negators),
		summarySentences: summarySentences,
		maxKeywords:      maxKeywords,
		source:           source,
	}
}

// Source reports where the lexicon was loaded from.
func (m *Model) Source() string {
	return m.source
}

// Summarize returns an extractive summary: the highest scoring sentences, in
// their original order. Sentences are scored by the average corpus frequency
// of their content words.
func (m *Model) Summarize(ctx context.Context, text string) (string, error) {
	if err := checkContext(ctx); err != nil {
		return "", err
	}

	sents := sentences(text)
	if len(sents) == 0 {
		return "", fmt.Errorf("%w: no sentences to summarize", core.ErrPredictionFailed)
	}
	if len(sents) <= m.summarySentences {
		return strings.Join(sents, " "), nil
	}

	sentTokens := make([][]string, len(sents))
	freq := make(map[string]int)
	for i, s := range sents {
		sentTokens[i] = m.contentWords(tokenize(s))
		for _, tok := range sentTokens[i] {
			freq[tok]++
		}
	}

	type scored struct {
		index int
		score float64
	}
	ranked := make([]scored, len(sents))
	for i, toks := range sentTokens {
		total := 0
		for _, tok := range toks {
			total += freq[tok]
		}
		score := 0.0
		if len(toks) > 0 {
			score = float64(total) / float64(len(toks))
		}
		ranked[i] = scored{index: i, score: score}
	}
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].score > ranked[b].score
	})

	picked := ranked[:m.summarySentences]
	sort.Slice(picked, func(a, b int) bool {
		return picked[a].index < picked[b].index
	})

	parts := make([]string, 0, len(picked))
	for _, p := range picked {
		parts = append(parts, sents[p.index])
	}
	return strings.Join(parts, " "), nil
}

// Sentiment counts positive and negative lexicon hits, flipping a hit when a
// negator appears within the preceding negationWindow tokens. Ties are
// Positive; the score grows from 0.5 towards 1 with the margin.
func (m *Model) Sentiment(ctx context.Context, text string) (core.Sentiment, error) {
	if err := checkContext(ctx); err != nil {
		return core.Sentiment{}, err
	}

	tokens := tokenize(text)
	if len(tokens) == 0 {
		return core.Sentiment{}, fmt.Errorf("%w: no words to score", core.ErrPredictionFailed)
	}

	pos, neg := 0, 0
	for i, tok := range tokens {
		_, isPos := m.positive[tok]
		_, isNeg := m.negative[tok]
		if !isPos && !isNeg {
			continue
		}
		if m.negated(tokens, i) {
			isPos, isNeg = isNeg, isPos
		}
		if isPos {
			pos++
		}
		if isNeg {
			neg++
		}
	}

	diff := pos - neg
	polarity := core.PolarityPositive
	if diff < 0 {
		polarity = core.PolarityNegative
	}

	score := 0.5
	if total := pos + neg; total > 0 {
		score = 0.5 + 0.5*math.Abs(float64(diff))/float64(total)
	}

	return core.Sentiment{Polarity: polarity, Score: round(score)}, nil
}

// Keywords ranks content words by frequency relative to the most frequent
// one. Ties keep first-occurrence order.
func (m *Model) Keywords(ctx context.Context, text string) ([]core.Keyword, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	var order []string
	for _, tok := range m.contentWords(tokenize(text)) {
		if len([]rune(tok)) < minKeywordLength || isNumeric(tok) {
			continue
		}
		if counts[tok] == 0 {
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("%w: no keywords found", core.ErrPredictionFailed)
	}

	highest := 0
	for _, c := range counts {
		highest = max(highest, c)
	}

	keywords := make([]core.Keyword, 0, len(order))
	for _, tok := range order {
		keywords = append(keywords, core.Keyword{
			Text:  tok,
			Score: round(float64(counts[tok]) / float64(highest)),
		})
	}
	sort.SliceStable(keywords, func(a, b int) bool {
		return keywords[a].Score > keywords[b].Score
	})

	if len(keywords) > m.maxKeywords {
		keywords = keywords[:m.maxKeywords]
	}
	return keywords, nil
}

func (m *Model) contentWords(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if _, stop := m.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func (m *Model) negated(tokens []string, i int) bool {
	for j := i - 1; j >= 0 && j >= i-negationWindow; j-- {
		if _, ok := m.negators[tokens[j]]; ok {
			return true
		}
	}
	return false
}

func checkContext(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", core.ErrPredictionFailed, err)
	}
	return nil
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = fold(strings.TrimSpace(w))
		if w != "" {
			set[w] = struct{}{}
		}
	}
	return set
}

func round(v float64) float64 {
	return math.Round(v*10000) / 10000
}
