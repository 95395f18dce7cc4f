// Package taskstore tracks asynchronous grading tasks outside the
// request/response cycle, keyed by task identifier.
package taskstore

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("task not found")

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Result is the terminal grading payload.
type Result struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Task is the stored state of one grading request. Data is nil until the
// task succeeds; Error is set only on failure.
type Task struct {
	ID     string  `json:"task_id"`
	Status Status  `json:"status"`
	Data   *Result `json:"data,omitempty"`
	Error  string  `json:"error,omitempty"`
}

// Store persists task state. Reads are idempotent; concurrent reads of the
// same task are safe.
type Store interface {
	Put(ctx context.Context, task Task) error
	Get(ctx context.Context, id string) (*Task, error)
}
