package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"geoas_backend/internal/assistant/domain"
	"geoas_backend/internal/events"
	geo "geoas_backend/internal/geofence/domain"
	"geoas_backend/internal/rag"
	"geoas_backend/platform/apperr"
	"geoas_backend/platform/logger"
)

type fakeLocation struct {
	decision   geo.LocationDecision
	checkErr   error
	checked    []geo.Point
	checkCalls int
}

func (f *fakeLocation) CheckPoint(_ context.Context, point geo.Point) (geo.LocationDecision, error) {
	f.checkCalls++
	f.checked = append(f.checked, point)
	if f.checkErr != nil {
		return geo.OutsideDecision(), f.checkErr
	}
	return f.decision, nil
}

func (f *fakeLocation) Current() geo.LocationDecision {
	return f.decision
}

type askCall struct {
	corpus rag.CorpusID
	query  string
}

type fakeAsker struct {
	results map[rag.CorpusID]rag.Result
	errs    map[rag.CorpusID]error
	calls   []askCall
}

func (f *fakeAsker) Ask(_ context.Context, corpus rag.CorpusID, query string) (rag.Result, error) {
	f.calls = append(f.calls, askCall{corpus: corpus, query: query})
	if err := f.errs[corpus]; err != nil {
		return rag.Result{}, err
	}
	return f.results[corpus], nil
}

type fakeSpeaker struct {
	mu     sync.Mutex
	spoken []string
	err    error
}

func (f *fakeSpeaker) SpeakAnswer(_ context.Context, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, text)
	return f.err
}

type fakeBus struct {
	mu        sync.Mutex
	published []events.Event
}

func (f *fakeBus) Publish(_ context.Context, event events.Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, event)
}

func (f *fakeBus) PublishSync(_ context.Context, event events.Event) error {
	f.Publish(context.Background(), event)
	return nil
}

func (f *fakeBus) Subscribe(string, events.Handler) {}

func testLogger() *logger.Logger {
	return logger.New("development")
}

func TestHandleInsideRoutesProtectedAndEnriches(t *testing.T) {
	location := &fakeLocation{decision: geo.InsideDecision("النفود", geo.LevelHigh)}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusProtected: {Text: "يمنع التخييم.", HadContext: true},
	}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "هل مسموح التخييم هنا؟", false)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if reply.Intent != domain.IntentPermission {
		t.Errorf("Intent = %v, want permission", reply.Intent)
	}
	if len(asker.calls) != 1 {
		t.Fatalf("asker called %d times, want 1", len(asker.calls))
	}
	if asker.calls[0].corpus != rag.CorpusProtected {
		t.Errorf("queried corpus %v, want protected", asker.calls[0].corpus)
	}
	if !strings.Contains(asker.calls[0].query, "المناطق ذات الحماية العالية") {
		t.Errorf("query not scoped to the high-protection section: %q", asker.calls[0].query)
	}
	if reply.Answer.SourceUsed != domain.SourceProtected {
		t.Errorf("SourceUsed = %v, want protected", reply.Answer.SourceUsed)
	}
}

func TestHandleOutsideRoutesGeneralUnenriched(t *testing.T) {
	location := &fakeLocation{decision: geo.OutsideDecision()}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusGeneral: {Text: "القواعد العامة.", HadContext: true},
	}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "ما هي القواعد؟", false)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(asker.calls) != 1 {
		t.Fatalf("asker called %d times, want 1", len(asker.calls))
	}
	if asker.calls[0].corpus != rag.CorpusGeneral {
		t.Errorf("queried corpus %v, want general", asker.calls[0].corpus)
	}
	if asker.calls[0].query != "ما هي القواعد؟" {
		t.Errorf("outside query must not be enriched: %q", asker.calls[0].query)
	}
	if reply.Answer.Text != "القواعد العامة." {
		t.Errorf("answer = %q", reply.Answer.Text)
	}
	if reply.Intent != domain.IntentInformational {
		t.Errorf("Intent = %v, want informational", reply.Intent)
	}
}

func TestHandleFallsBackToGeneralWithOriginalQuery(t *testing.T) {
	location := &fakeLocation{decision: geo.InsideDecision("النفود", geo.LevelMedium)}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusProtected: {Text: "لا توجد معلومات كافية", HadContext: false},
		rag.CorpusGeneral:   {Text: "القواعد العامة تمنع ذلك.", HadContext: true},
	}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "هل مسموح الصيد؟", false)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(asker.calls) != 2 {
		t.Fatalf("asker called %d times, want 2", len(asker.calls))
	}
	if asker.calls[1].corpus != rag.CorpusGeneral {
		t.Errorf("fallback corpus %v, want general", asker.calls[1].corpus)
	}
	if asker.calls[1].query != "هل مسموح الصيد؟" {
		t.Errorf("fallback must use the original query: %q", asker.calls[1].query)
	}
	if reply.Answer.SourceUsed != domain.SourceGeneral {
		t.Errorf("SourceUsed = %v, want general", reply.Answer.SourceUsed)
	}
	if !strings.Contains(reply.Answer.Text, "لم يتم العثور على نص خاص بالمحمية") {
		t.Errorf("answer missing fallback disclaimer: %q", reply.Answer.Text)
	}
	if !strings.HasPrefix(reply.Answer.Text, "بحسب تواجدك في محمية النفود") {
		t.Errorf("answer missing location preamble: %q", reply.Answer.Text)
	}
}

func TestHandlePointSuppliedRefreshesLocation(t *testing.T) {
	location := &fakeLocation{decision: geo.InsideDecision("النفود", geo.LevelHigh)}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusProtected: {Text: "نص", HadContext: true},
	}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	point := &geo.Point{Latitude: 27.5, Longitude: 41.2}
	if _, err := svc.Handle(context.Background(), point, "سؤال عن المنطقة", false); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if location.checkCalls != 1 {
		t.Fatalf("CheckPoint called %d times, want 1", location.checkCalls)
	}
	if location.checked[0] != *point {
		t.Errorf("CheckPoint got %+v, want %+v", location.checked[0], *point)
	}
}

func TestHandleNoPointReusesState(t *testing.T) {
	location := &fakeLocation{decision: geo.OutsideDecision()}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "سؤال", false)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if location.checkCalls != 0 {
		t.Errorf("CheckPoint called %d times, want 0", location.checkCalls)
	}
	if reply.Answer.Text != domain.NoAnswerText {
		t.Errorf("answer = %q, want the fixed no-answer message", reply.Answer.Text)
	}
	if reply.Answer.SourceUsed != domain.SourceNone {
		t.Errorf("SourceUsed = %v, want none", reply.Answer.SourceUsed)
	}
}

func TestHandleGeofenceFailureDegradesToState(t *testing.T) {
	location := &fakeLocation{
		decision: geo.OutsideDecision(),
		checkErr: apperr.Unavailable("spatial store query failed"),
	}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusGeneral: {Text: "القواعد العامة.", HadContext: true},
	}}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	point := &geo.Point{Latitude: 27.5, Longitude: 41.2}
	reply, err := svc.Handle(context.Background(), point, "سؤال", false)
	if err != nil {
		t.Fatalf("a spatial store outage must not fail the request: %v", err)
	}
	if reply.Answer.Text != "القواعد العامة." {
		t.Errorf("answer = %q", reply.Answer.Text)
	}
}

func TestHandleInvalidPointRejected(t *testing.T) {
	location := &fakeLocation{checkErr: apperr.Validation("invalid coordinate: latitude out of range")}
	svc := NewService(location, &fakeAsker{}, nil, &fakeBus{}, testLogger())

	point := &geo.Point{Latitude: 91, Longitude: 0}
	_, err := svc.Handle(context.Background(), point, "سؤال", false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want a validation error", err)
	}
}

func TestHandleAskerFailureDegradesToEmpty(t *testing.T) {
	boom := errors.New("generation timeout")
	location := &fakeLocation{decision: geo.InsideDecision("النفود", geo.LevelHigh)}
	asker := &fakeAsker{
		errs: map[rag.CorpusID]error{
			rag.CorpusProtected: boom,
			rag.CorpusGeneral:   boom,
		},
	}
	svc := NewService(location, asker, nil, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "سؤال", false)
	if err != nil {
		t.Fatalf("collaborator outage must not fail the request: %v", err)
	}
	if !strings.Contains(reply.Answer.Text, domain.NoAnswerText) {
		t.Errorf("answer = %q, want the no-answer message", reply.Answer.Text)
	}
	if len(asker.calls) != 2 {
		t.Errorf("asker called %d times, want protected then general fallback", len(asker.calls))
	}
}

func TestHandleEmptyQuery(t *testing.T) {
	svc := NewService(&fakeLocation{}, &fakeAsker{}, nil, &fakeBus{}, testLogger())

	_, err := svc.Handle(context.Background(), nil, "", false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want a validation error", err)
	}
}

func TestHandleSpeaksAndPublishes(t *testing.T) {
	location := &fakeLocation{decision: geo.OutsideDecision()}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusGeneral: {Text: "إجابة", HadContext: true},
	}}
	speaker := &fakeSpeaker{}
	bus := &fakeBus{}
	svc := NewService(location, asker, speaker, bus, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "سؤال", true)
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(speaker.spoken) != 1 || speaker.spoken[0] != reply.Answer.Text {
		t.Errorf("spoken = %v, want the composed answer", speaker.spoken)
	}
	if len(bus.published) != 1 {
		t.Fatalf("published %d events, want 1", len(bus.published))
	}
	event, ok := bus.published[0].(events.AnswerComposed)
	if !ok {
		t.Fatalf("published event type %T", bus.published[0])
	}
	if event.SourceUsed != "general" || event.Inside {
		t.Errorf("event = %+v", event)
	}
}

func TestHandleSpeakerFailureIgnored(t *testing.T) {
	location := &fakeLocation{decision: geo.OutsideDecision()}
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusGeneral: {Text: "إجابة", HadContext: true},
	}}
	speaker := &fakeSpeaker{err: errors.New("tts down")}
	svc := NewService(location, asker, speaker, &fakeBus{}, testLogger())

	reply, err := svc.Handle(context.Background(), nil, "سؤال", true)
	if err != nil {
		t.Fatalf("speaker failure must not fail the request: %v", err)
	}
	if reply.Answer.Text != "إجابة" {
		t.Errorf("answer = %q", reply.Answer.Text)
	}
}

func TestHandleCancelledContextSkipsSideEffects(t *testing.T) {
	location := &fakeLocation{decision: geo.OutsideDecision()}
	ctx, cancel := context.WithCancel(context.Background())
	asker := &fakeAsker{results: map[rag.CorpusID]rag.Result{
		rag.CorpusGeneral: {Text: "إجابة", HadContext: true},
	}}
	speaker := &fakeSpeaker{}
	bus := &fakeBus{}
	svc := NewService(location, asker, speaker, bus, testLogger())

	cancel()
	if _, err := svc.Handle(ctx, nil, "سؤال", true); err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if len(speaker.spoken) != 0 {
		t.Errorf("spoken after cancellation: %v", speaker.spoken)
	}
	if len(bus.published) != 0 {
		t.Errorf("published after cancellation: %v", bus.published)
	}
}
