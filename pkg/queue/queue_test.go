package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T) *Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return New(rdb)
}

func TestEnqueueRecordsQueuedProgress(t *testing.T) {
	q := newTestQueue(t)
	ctx := context.Background()

	jobID, err := q.Enqueue(ctx, "report", map[string]string{"doctor_id": "d1"})
	require.NoError(t, err)
	require.NotEmpty(t, jobID)

	progress, err := q.Progress(ctx, jobID)
	require.NoError(t, err)
	require.NotNil(t, progress)
	assert.Equal(t, StatusQueued, progress.Status)
}

func TestProgressUnknownJobIsNil(t *testing.T) {
	q := newTestQueue(t)

	progress, err := q.Progress(context.Background(), "no-such-job")
	require.NoError(t, err)
	assert.Nil(t, progress)
}

func TestWorkerExecutesJobAndRecordsResult(t *testing.T) {
	q := newTestQueue(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handled := make(chan Job, 1)
	q.RunWorkers(ctx, 1, map[string]Handler{
		"report": func(_ context.Context, job Job) (string, error) {
			handled <- job
			return "https://cdn.example.com/report.csv", nil
		},
	})

	jobID, err := q.Enqueue(ctx, "report", map[string]string{"doctor_id": "d1"})
	require.NoError(t, err)

	select {
	case job := <-handled:
		assert.Equal(t, jobID, job.ID)
		var payload map[string]string
		require.NoError(t, json.Unmarshal(job.Payload, &payload))
		assert.Equal(t, "d1", payload["doctor_id"])
	case <-time.After(10 * time.Second):
		t.Fatal("job was never handled")
	}

	assert.Eventually(t, func() bool {
		progress, err := q.Progress(ctx, jobID)
		return err == nil && progress != nil && progress.Status == StatusDone
	}, 5*time.Second, 10*time.Millisecond)

	progress, err := q.Progress(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/report.csv", progress.URL)
}

func TestWorkerMarksFailedJobs(t *testing.T) {
	q := newTestQueue(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q.RunWorkers(ctx, 1, map[string]Handler{
		"report": func(_ context.Context, _ Job) (string, error) {
			return "", errors.New("storage unavailable")
		},
	})

	jobID, err := q.Enqueue(ctx, "report", nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		progress, err := q.Progress(ctx, jobID)
		return err == nil && progress != nil && progress.Status == StatusFailed
	}, 10*time.Second, 10*time.Millisecond)

	progress, err := q.Progress(ctx, jobID)
	require.NoError(t, err)
	assert.Equal(t, "storage unavailable", progress.Error)
}

func TestWorkerRejectsUnknownJobKind(t *testing.T) {
	q := newTestQueue(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	q.RunWorkers(ctx, 1, map[string]Handler{})

	jobID, err := q.Enqueue(ctx, "mystery", nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		progress, err := q.Progress(ctx, jobID)
		return err == nil && progress != nil && progress.Status == StatusFailed
	}, 10*time.Second, 10*time.Millisecond)
}
