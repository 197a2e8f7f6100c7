package scheduler

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const TaskSpeakAnswer = "assistant.speak"

const TaskPruneTrackedPoints = "tracking.prune"

type SpeakAnswerPayload struct {
	Text string `json:"text"`
}

type PruneTrackedPointsPayload struct {
	RetentionDays int `json:"retentionDays"`
}

func NewSpeakAnswerTask(payload SpeakAnswerPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSpeakAnswer, data), nil
}

func ParseSpeakAnswerPayload(task *asynq.Task) (SpeakAnswerPayload, error) {
	var payload SpeakAnswerPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return SpeakAnswerPayload{}, err
	}
	return payload, nil
}

func NewPruneTrackedPointsTask(payload PruneTrackedPointsPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPruneTrackedPoints, data), nil
}

func ParsePruneTrackedPointsPayload(task *asynq.Task) (PruneTrackedPointsPayload, error) {
	var payload PruneTrackedPointsPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return PruneTrackedPointsPayload{}, err
	}
	return payload, nil
}
