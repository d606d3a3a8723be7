package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"time"
)

var ErrQueueFull = errors.New("mirror queue full")

// MirrorJob 將本地地址同步到金流服務的工作
type MirrorJob struct {
	ID         string    `json:"id"`
	UserID     uint      `json:"userID"`
	CustomerID string    `json:"customerID"`
	Address    Address   `json:"address"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

func NewMirrorJob(userID uint, customerID string, address Address) MirrorJob {
	return MirrorJob{
		ID:         uuid.NewString(),
		UserID:     userID,
		CustomerID: customerID,
		Address:    address,
		EnqueuedAt: time.Now().UTC(),
	}
}

type MirrorQueue interface {
	Enqueue(ctx context.Context, job MirrorJob) error
	Dequeue(ctx context.Context) (MirrorJob, error)
}

// MemoryQueue 行程內佇列，滿了直接拒絕不阻塞呼叫端
type MemoryQueue struct {
	jobs chan MirrorJob
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{jobs: make(chan MirrorJob, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job MirrorJob) error {
	select {
	case q.jobs <- job:
		return nil
	default:
		return ErrQueueFull
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context) (MirrorJob, error) {
	select {
	case job := <-q.jobs:
		return job, nil
	case <-ctx.Done():
		return MirrorJob{}, ctx.Err()
	}
}

// RedisQueue 以Redis List保存工作，重啟後未處理的同步仍會執行
type RedisQueue struct {
	rdb         *redis.Client
	key         string
	pollTimeout time.Duration
}

func NewRedisQueue(rdb *redis.Client, key string) *RedisQueue {
	return &RedisQueue{
		rdb:         rdb,
		key:         key,
		pollTimeout: time.Second,
	}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job MirrorJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.LPush(ctx, q.key, payload).Err()
}

func (q *RedisQueue) Dequeue(ctx context.Context) (MirrorJob, error) {
	for {
		if err := ctx.Err(); err != nil {
			return MirrorJob{}, err
		}

		result, err := q.rdb.BRPop(ctx, q.pollTimeout, q.key).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return MirrorJob{}, ctx.Err()
			}
			return MirrorJob{}, err
		}

		//BRPop回傳[key, value]
		var job MirrorJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			return MirrorJob{}, fmt.Errorf("decode mirror job: %w", err)
		}
		return job, nil
	}
}
