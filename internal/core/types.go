package core

import (
	"strings"
)

// Kind identifies the lookup pipeline that produced a result.
type Kind string

const (
	KindSynonyms  Kind = "synonyms"
	KindSummary   Kind = "summary"
	KindSentiment Kind = "sentiment"
	KindKeywords  Kind = "keywords"
	KindEcho      Kind = "echo"
)

// LookupRequest carries the single search term or text for one lookup.
type LookupRequest struct {
	Term string
}

// NewLookupRequest rejects blank terms. The term itself is passed through
// unmodified.
func NewLookupRequest(term string) (LookupRequest, error) {
	if strings.TrimSpace(term) == "" {
		return LookupRequest{}, ErrInvalidRequest
	}
	return LookupRequest{Term: term}, nil
}

// RawPayload is an untrusted JSON document returned by a provider.
type RawPayload []byte

// Result is implemented by every response shape a lookup can return.
// Complete reports whether the value is fully populated for its shape.
type Result interface {
	Complete() bool
}

// Synonyms is the synonym lookup response. The wire key keeps the upstream
// spelling that existing clients decode.
type Synonyms struct {
	Synonyms []string `json:"synonymns"`
}

func (s Synonyms) Complete() bool { return len(s.Synonyms) > 0 }

// EmptySynonyms returns the failure shape, which encodes as an empty list.
func EmptySynonyms() Synonyms { return Synonyms{Synonyms: []string{}} }

// Summary is the summarization response.
type Summary struct {
	Summary string `json:"summary"`
}

func (s Summary) Complete() bool { return s.Summary != "" }

func EmptySummary() Summary { return Summary{} }

// Polarity labels a sentiment result.
type Polarity string

const (
	PolarityPositive    Polarity = "Positive"
	PolarityNegative    Polarity = "Negative"
	PolarityUnavailable Polarity = "Unavailable"
)

// Sentiment is the sentiment analysis response.
type Sentiment struct {
	Polarity Polarity `json:"polarity"`
	Score    float64  `json:"score"`
}

func (s Sentiment) Complete() bool {
	return s.Polarity == PolarityPositive || s.Polarity == PolarityNegative
}

// EmptySentiment is the placeholder returned when no prediction is available.
func EmptySentiment() Sentiment {
	return Sentiment{Polarity: PolarityUnavailable, Score: 0}
}

// Keyword is one extracted keyword with its relevance score.
type Keyword struct {
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// Keywords is the keyword extraction response.
type Keywords struct {
	Keywords []Keyword `json:"keywords"`
}

func (k Keywords) Complete() bool { return len(k.Keywords) > 0 }

func EmptyKeywords() Keywords { return Keywords{Keywords: []Keyword{}} }

// EchoMessage is the body accepted and returned by the echo endpoint.
type EchoMessage struct {
	Text string `json:"text"`
}

// Complete is always true: any decodable body is echoed back.
func (EchoMessage) Complete() bool { return true }

func EmptyEchoMessage() EchoMessage { return EchoMessage{} }
