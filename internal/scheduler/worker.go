package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"geoas_backend/internal/tracking/repository"
	"geoas_backend/platform/config"
	"geoas_backend/platform/logger"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultRetentionDays = 30

type Worker struct {
	server     *asynq.Server
	mux        *asynq.ServeMux
	points     *repository.Repository
	ttsURL     string
	httpClient *http.Client
	log        *logger.Logger
}

type WorkerConfig interface {
	config.SchedulerConfig
	config.TTSConfig
}

func NewWorker(cfg WorkerConfig, pool *pgxpool.Pool, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	mux := asynq.NewServeMux()
	w := &Worker{
		server:     server,
		mux:        mux,
		points:     repository.New(pool),
		ttsURL:     cfg.GetTTSServiceURL(),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		log:        log,
	}

	mux.HandleFunc(TaskSpeakAnswer, w.handleSpeakAnswer)
	mux.HandleFunc(TaskPruneTrackedPoints, w.handlePruneTrackedPoints)

	return w, nil
}

// handleSpeakAnswer forwards the answer text to the TTS service. A missing
// TTS configuration drops the task silently; the spoken answer is best
// effort everywhere.
func (w *Worker) handleSpeakAnswer(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseSpeakAnswerPayload(task)
	if err != nil {
		return err
	}
	if w.ttsURL == "" || payload.Text == "" {
		return nil
	}

	body, err := json.Marshal(map[string]string{"text": payload.Text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.ttsURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		w.log.CollaboratorError("tts", "speak answer", err)
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 300 {
		err := fmt.Errorf("tts service returned %d", resp.StatusCode)
		w.log.CollaboratorError("tts", "speak answer", err)
		return err
	}

	return nil
}

func (w *Worker) handlePruneTrackedPoints(ctx context.Context, task *asynq.Task) error {
	payload, err := ParsePruneTrackedPointsPayload(task)
	if err != nil {
		return err
	}

	days := payload.RetentionDays
	if days < 1 {
		days = defaultRetentionDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	pruned, err := w.points.PruneOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	w.log.Info("pruned tracked points", "count", pruned, "cutoff", cutoff)
	return nil
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}
