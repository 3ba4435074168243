package utils

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// MarshalTask builds an asynq task with a JSON-encoded payload.
func MarshalTask(taskType string, payload interface{}) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal task %s payload: %w", taskType, err)
	}
	return asynq.NewTask(taskType, data), nil
}

// UnmarshalTask decodes a task payload into target.
func UnmarshalTask(task *asynq.Task, target interface{}) error {
	if err := json.Unmarshal(task.Payload(), target); err != nil {
		return fmt.Errorf("unmarshal task %s payload: %w", task.Type(), err)
	}
	return nil
}

// ParseStringToUUID parses s, returning uuid.Nil for empty or malformed input.
func ParseStringToUUID(s string) uuid.UUID {
	uid, err := uuid.Parse(s)
	if err != nil || s == "" {
		return uuid.Nil
	}
	return uid
}
