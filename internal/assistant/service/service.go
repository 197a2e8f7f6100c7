// Package service orchestrates assistant queries: location lookup, corpus
// routing, retrieval-augmented answering, and answer composition.
package service

import (
	"context"

	"geoas_backend/internal/assistant/domain"
	"geoas_backend/internal/events"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/rag"
	"geoas_backend/platform/apperr"
	"geoas_backend/platform/logger"
)

// LocationService resolves submitted points and recalls the current location.
type LocationService interface {
	CheckPoint(ctx context.Context, point geo.Point) (geo.LocationDecision, error)
	Current() geo.LocationDecision
}

// Asker answers a query from a knowledge corpus.
type Asker interface {
	Ask(ctx context.Context, corpus rag.CorpusID, query string) (rag.Result, error)
}

// Speaker delivers the answer text out of band, typically spoken aloud.
// Delivery is best effort; the composed answer never depends on it.
type Speaker interface {
	SpeakAnswer(ctx context.Context, text string) error
}

// Reply is the full outcome of one assistant query.
type Reply struct {
	Query    string
	Answer   domain.Answer
	Intent   domain.Intent
	Decision geo.LocationDecision
}

type Service struct {
	location LocationService
	asker    Asker
	speaker  Speaker
	bus      events.Bus
	log      *logger.Logger
}

// NewService wires the orchestrator. speaker may be nil when voice delivery
// is not configured.
func NewService(location LocationService, asker Asker, speaker Speaker, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		location: location,
		asker:    asker,
		speaker:  speaker,
		bus:      bus,
		log:      log,
	}
}

// Handle answers a query, optionally resolving a fresh point first. A query
// without a point reuses the location of the most recent point check. Every
// collaborator failure degrades to an empty result; the caller always gets a
// well-formed reply. When speak is set the answer is also queued for voice
// delivery, best effort.
func (s *Service) Handle(ctx context.Context, point *geo.Point, query string, speak bool) (Reply, error) {
	if query == "" {
		return Reply{}, apperr.Validation("query text is required").WithOp("assistant.Handle")
	}

	if point != nil {
		if _, err := s.location.CheckPoint(ctx, *point); err != nil {
			if apperr.Is(err, apperr.KindValidation) {
				return Reply{}, err
			}
			s.log.CollaboratorError("geofence", "check point", err)
		}
	}

	decision := s.location.Current()
	intent := domain.DetectIntent(query)
	corpus := domain.RouteCorpus(decision)

	scopedQuery := query
	if decision.Inside {
		scopedQuery = domain.EnrichQuery(query, decision.ProtectionLevel)
	}

	primary := s.ask(ctx, corpus, scopedQuery)

	var fallback rag.Result
	if decision.Inside && !primary.HadContext {
		fallback = s.ask(ctx, rag.CorpusGeneral, query)
	}

	answer := domain.Compose(primary, fallback, decision)

	// A cancelled request must not trigger side effects for a half-finished
	// answer.
	if ctx.Err() == nil {
		if speak {
			s.speak(ctx, answer.Text)
		}
		s.bus.Publish(ctx, events.AnswerComposed{
			BaseEvent:  events.NewBaseEvent(),
			Query:      query,
			SourceUsed: string(answer.SourceUsed),
			Intent:     string(intent),
			Inside:     decision.Inside,
		})
	}

	return Reply{
		Query:    query,
		Answer:   answer,
		Intent:   intent,
		Decision: decision,
	}, nil
}

func (s *Service) ask(ctx context.Context, corpus rag.CorpusID, query string) rag.Result {
	result, err := s.asker.Ask(ctx, corpus, query)
	if err != nil {
		s.log.CollaboratorError("rag", "ask "+corpus.String(), err)
		return rag.Result{}
	}
	return result
}

func (s *Service) speak(ctx context.Context, text string) {
	if s.speaker == nil {
		return
	}
	if err := s.speaker.SpeakAnswer(ctx, text); err != nil {
		s.log.CollaboratorError("speaker", "speak answer", err)
	}
}
