package summarize

import (
	"context"
	"strings"

	"github.com/linkyboard/linkyboard-api/internal/extraction"
)

// Summary is the output of one summarization call.
type Summary struct {
	Summary      string
	Keywords     []string
	Category     string
	InputTokens  int
	OutputTokens int
}

// Summarizer generates a summary from readable text. Implementations are
// the seam for AI providers; the shipped implementation is extractive and
// fully local.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (*Summary, error)
}

// ExtractiveSummarizer produces a deterministic leading-sentence summary
// with frequency-based keywords. Token counts are estimated at the usual
// four characters per token so usage accounting stays meaningful until a
// real provider is plugged in.
type ExtractiveSummarizer struct {
	maxLength   int
	maxKeywords int
}

// NewExtractiveSummarizer creates the local summarizer.
func NewExtractiveSummarizer(maxLength, maxKeywords int) *ExtractiveSummarizer {
	return &ExtractiveSummarizer{
		maxLength:   maxLength,
		maxKeywords: maxKeywords,
	}
}

// categoryHints maps keyword stems to coarse categories. First match wins;
// anything else lands in "general".
var categoryHints = []struct {
	category string
	stems    []string
}{
	{"tech", []string{"software", "code", "programming", "computer", "api", "data", "cloud", "server", "kubernetes", "golang", "javascript", "python", "database"}},
	{"science", []string{"research", "study", "science", "physics", "biology", "chemistry", "experiment"}},
	{"business", []string{"business", "market", "startup", "company", "finance", "investment", "economy"}},
	{"culture", []string{"music", "film", "movie", "book", "art", "culture", "game"}},
}

// Summarize implements Summarizer.
func (s *ExtractiveSummarizer) Summarize(ctx context.Context, title, content string) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	summary := leadingSentences(content, s.maxLength)
	if summary == "" {
		summary = title
	}

	keywords := extraction.Keywords(title+" "+content, s.maxKeywords)

	return &Summary{
		Summary:      summary,
		Keywords:     keywords,
		Category:     categorize(keywords),
		InputTokens:  estimateTokens(title) + estimateTokens(content),
		OutputTokens: estimateTokens(summary),
	}, nil
}

// leadingSentences returns whole sentences from the front of text, staying
// under maxLength characters (always at least one sentence).
func leadingSentences(text string, maxLength int) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	if len(text) <= maxLength {
		return text
	}

	var b strings.Builder
	for _, sentence := range splitSentences(text) {
		if b.Len() > 0 && b.Len()+len(sentence)+1 > maxLength {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sentence)
	}

	out := b.String()
	if len(out) > maxLength {
		out = strings.TrimSpace(out[:maxLength])
	}
	return out
}

func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if r == '.' || r == '!' || r == '?' {
			if s := strings.TrimSpace(text[start : i+1]); s != "" {
				sentences = append(sentences, s)
			}
			start = i + 1
		}
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func categorize(keywords []string) string {
	for _, hint := range categoryHints {
		for _, kw := range keywords {
			for _, stem := range hint.stems {
				if strings.Contains(kw, stem) {
					return hint.category
				}
			}
		}
	}
	return "general"
}

func estimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
