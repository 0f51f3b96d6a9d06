package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	listKey     = "egyakin:jobs"
	progressKey = "egyakin:jobs:progress:"
	progressTTL = 24 * time.Hour
	popTimeout  = 5 * time.Second
)

// Status is the lifecycle state of a queued job
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusDone       Status = "done"
	StatusFailed     Status = "failed"
)

// Job is the payload pushed onto the queue
type Job struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Progress is the cache-backed record clients poll while a job runs
type Progress struct {
	Status    Status    `json:"status"`
	URL       string    `json:"url,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Handler executes one job kind and returns the URL of its result
type Handler func(ctx context.Context, job Job) (string, error)

// Queue is a Redis-list backed job queue with pollable progress records
type Queue struct {
	rdb *redis.Client
}

// New creates a queue on the given Redis client
func New(rdb *redis.Client) *Queue {
	return &Queue{rdb: rdb}
}

// Enqueue pushes a job and records its queued progress entry.
// Returns the job ID the client polls with.
func (q *Queue) Enqueue(ctx context.Context, kind string, payload interface{}) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job payload: %w", err)
	}

	job := Job{
		ID:      uuid.NewString(),
		Kind:    kind,
		Payload: raw,
	}
	data, err := json.Marshal(job)
	if err != nil {
		return "", fmt.Errorf("failed to marshal job: %w", err)
	}

	if err := q.rdb.LPush(ctx, listKey, data).Err(); err != nil {
		return "", fmt.Errorf("failed to enqueue job: %w", err)
	}
	if err := q.setProgress(ctx, job.ID, Progress{Status: StatusQueued}); err != nil {
		return "", err
	}
	return job.ID, nil
}

// Progress returns the progress record for a job, or nil when unknown/expired
func (q *Queue) Progress(ctx context.Context, jobID string) (*Progress, error) {
	data, err := q.rdb.Get(ctx, progressKey+jobID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var p Progress
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (q *Queue) setProgress(ctx context.Context, jobID string, p Progress) error {
	p.UpdatedAt = time.Now()
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return q.rdb.Set(ctx, progressKey+jobID, data, progressTTL).Err()
}

// RunWorkers starts n worker goroutines that pop and execute jobs until
// the context is cancelled. Unknown job kinds are marked failed.
func (q *Queue) RunWorkers(ctx context.Context, n int, handlers map[string]Handler) {
	for i := 0; i < n; i++ {
		go q.workerLoop(ctx, handlers)
	}
}

func (q *Queue) workerLoop(ctx context.Context, handlers map[string]Handler) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		res, err := q.rdb.BRPop(ctx, popTimeout, listKey).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Printf("⚠️ Job queue pop error: %v", err)
			continue
		}
		// BRPop returns [key, value]
		if len(res) != 2 {
			continue
		}

		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			log.Printf("⚠️ Dropping malformed job: %v", err)
			continue
		}

		q.execute(ctx, job, handlers)
	}
}

func (q *Queue) execute(ctx context.Context, job Job, handlers map[string]Handler) {
	handler, ok := handlers[job.Kind]
	if !ok {
		log.Printf("⚠️ No handler for job kind %q (job %s)", job.Kind, job.ID)
		_ = q.setProgress(ctx, job.ID, Progress{Status: StatusFailed, Error: "unknown job kind"})
		return
	}

	_ = q.setProgress(ctx, job.ID, Progress{Status: StatusProcessing})

	url, err := handler(ctx, job)
	if err != nil {
		log.Printf("❌ Job %s (%s) failed: %v", job.ID, job.Kind, err)
		_ = q.setProgress(ctx, job.ID, Progress{Status: StatusFailed, Error: err.Error()})
		return
	}

	_ = q.setProgress(ctx, job.ID, Progress{Status: StatusDone, URL: url})
}
