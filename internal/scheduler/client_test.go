package scheduler

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
)

type stubSchedulerConfig struct {
	redisURL string
	queue    string
}

func (c stubSchedulerConfig) GetRedisURL() string       { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string { return c.queue }
func (c stubSchedulerConfig) GetAsynqConcurrency() int  { return 1 }

func TestClientEnqueuesSpeakAnswer(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := stubSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "geoas"}
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.SpeakAnswer(context.Background(), "لم يتم العثور على إجابة مناسبة."); err != nil {
		t.Fatalf("SpeakAnswer returned error: %v", err)
	}

	opt, err := redisClientOpt(cfg.redisURL, false)
	if err != nil {
		t.Fatalf("redisClientOpt returned error: %v", err)
	}
	inspector := asynq.NewInspector(opt)
	defer func() { _ = inspector.Close() }()

	tasks, err := inspector.ListPendingTasks("geoas")
	if err != nil {
		t.Fatalf("ListPendingTasks returned error: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("pending tasks = %d, want 1", len(tasks))
	}
	if tasks[0].Type != TaskSpeakAnswer {
		t.Errorf("task type = %q, want %q", tasks[0].Type, TaskSpeakAnswer)
	}

	var payload SpeakAnswerPayload
	if err := json.Unmarshal(tasks[0].Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.Text != "لم يتم العثور على إجابة مناسبة." {
		t.Errorf("payload text = %q", payload.Text)
	}
}

func TestClientEnqueuesPrune(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(stubSchedulerConfig{redisURL: "redis://" + mr.Addr(), queue: "geoas"})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	defer func() { _ = client.Close() }()

	if err := client.SchedulePrune(context.Background(), 14); err != nil {
		t.Fatalf("SchedulePrune returned error: %v", err)
	}

	opt, _ := redisClientOpt("redis://"+mr.Addr(), false)
	inspector := asynq.NewInspector(opt)
	defer func() { _ = inspector.Close() }()

	tasks, err := inspector.ListPendingTasks("geoas")
	if err != nil {
		t.Fatalf("ListPendingTasks returned error: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Type != TaskPruneTrackedPoints {
		t.Fatalf("tasks = %+v, want one prune task", tasks)
	}

	var payload PruneTrackedPointsPayload
	if err := json.Unmarshal(tasks[0].Payload, &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload.RetentionDays != 14 {
		t.Errorf("RetentionDays = %d, want 14", payload.RetentionDays)
	}
}

func TestNewClientRequiresRedisURL(t *testing.T) {
	if _, err := NewClient(stubSchedulerConfig{}); err == nil {
		t.Fatal("NewClient accepted an empty redis url")
	}
}
