package rag

import (
	"context"
	"strings"

	"geoas_backend/platform/apperr"
	"geoas_backend/platform/qdrant"
)

const retrievalLimit = 4

// systemPrompt constrains the model to the retrieved passages only.
const systemPrompt = "أنت مساعد ذكي. أجب فقط باستخدام المعلومات التالية. " +
	"إذا لم تكن المعلومات كافية للإجابة، قل: لا توجد معلومات كافية."

// Embedder turns a query into a dense vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Searcher retrieves the nearest indexed passages from a collection.
type Searcher interface {
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]qdrant.ScoredPoint, error)
}

// Generator produces the final answer text from a prompt.
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

// Result is the outcome of one retrieval-augmented answer.
type Result struct {
	Text string
	// HadContext reports whether retrieval found any passage with text.
	// The composer uses it to decide whether a general-rules fallback
	// is needed.
	HadContext bool
}

// Service implements retrieval-augmented answering over rule corpora.
type Service struct {
	embedder  Embedder
	searcher  Searcher
	generator Generator
}

func NewService(embedder Embedder, searcher Searcher, generator Generator) *Service {
	return &Service{
		embedder:  embedder,
		searcher:  searcher,
		generator: generator,
	}
}

// Ask answers the query from the given corpus. The query is embedded, the
// nearest passages are retrieved, and the model answers using only those
// passages. HadContext is false when no retrieved passage carried text; the
// model is still invoked so the caller gets the fixed insufficient-information
// reply rather than an empty string.
func (s *Service) Ask(ctx context.Context, corpus CorpusID, query string) (Result, error) {
	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "embedding service unreachable", err).WithOp("rag.Ask")
	}

	points, err := s.searcher.Search(ctx, corpus.String(), vector, retrievalLimit)
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "vector store unreachable", err).WithOp("rag.Ask")
	}

	passages := extractPassages(points)

	var sb strings.Builder
	sb.WriteString("المعلومات:\n")
	for _, p := range passages {
		sb.WriteString("- ")
		sb.WriteString(p)
		sb.WriteString("\n")
	}
	sb.WriteString("\nالسؤال: ")
	sb.WriteString(query)

	answer, err := s.generator.Generate(ctx, systemPrompt, sb.String())
	if err != nil {
		return Result{}, apperr.Wrap(apperr.KindUnavailable, "generation failed", err).WithOp("rag.Ask")
	}

	return Result{
		Text:       strings.TrimSpace(answer),
		HadContext: len(passages) > 0,
	}, nil
}

func extractPassages(points []qdrant.ScoredPoint) []string {
	passages := make([]string, 0, len(points))
	for _, p := range points {
		text, ok := p.Payload["text"].(string)
		if !ok || strings.TrimSpace(text) == "" {
			continue
		}
		passages = append(passages, strings.TrimSpace(text))
	}
	return passages
}
