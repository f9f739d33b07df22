// Package queuebridge adapts Redis Streams into the batch package's Reader
// and Writer interfaces, so a job can read records from (or fan records
// out to) a durable queue instead of a file or database cursor.
//
// It is grounded on the teacher's internal/redis.Client: the same
// consumer-group read and "jobs:v1:<tag>"-style stream naming, generalized
// from fixed job-queue semantics to arbitrary record payloads. Messages
// read here are never acked by this package.
package queuebridge

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/aceteam-ai/gobatch/batch"
)

// ReaderConfig configures a Reader, mirroring the teacher's
// redis.ClientConfig zero-value-defaulting convention.
type ReaderConfig struct {
	URL           string
	Password      string
	Stream        string
	ConsumerGroup string
	Consumer      string
	BlockTimeout  time.Duration
}

func (c ReaderConfig) withDefaults() ReaderConfig {
	if c.ConsumerGroup == "" {
		c.ConsumerGroup = "gobatch-workers"
	}
	if c.Consumer == "" {
		c.Consumer = "gobatch-" + uuid.New().String()[:8]
	}
	if c.BlockTimeout == 0 {
		c.BlockTimeout = 5 * time.Second
	}
	return c
}

// Reader is a batch.Reader backed by a Redis Stream consumer group. Each
// ReadRecord call blocks (up to BlockTimeout) for the next unclaimed
// message and does not ack it; callers that need at-least-once delivery
// should track message IDs via Record.Header.Source and ack out of band,
// the same way the teacher's worker loop acks only after a job handler
// succeeds.
type Reader struct {
	cfg    ReaderConfig
	client *redis.Client
}

// NewReader returns a Reader for the given config. It does not connect
// until Open is called.
func NewReader(cfg ReaderConfig) *Reader {
	return &Reader{cfg: cfg.withDefaults()}
}

func (r *Reader) Open(ctx context.Context) error {
	opts, err := redis.ParseURL(r.cfg.URL)
	if err != nil {
		return fmt.Errorf("queuebridge: parse redis url: %w", err)
	}
	if r.cfg.Password != "" {
		opts.Password = r.cfg.Password
	}
	r.client = redis.NewClient(opts)

	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("queuebridge: connect: %w", err)
	}

	err = r.client.XGroupCreateMkStream(ctx, r.cfg.Stream, r.cfg.ConsumerGroup, "0").Err()
	if err != nil && !isBusyGroup(err) {
		return fmt.Errorf("queuebridge: create consumer group: %w", err)
	}
	return nil
}

// ReadRecord issues a blocking XREADGROUP and decodes the next message's
// "payload" field as JSON into a map[string]any. When BlockTimeout elapses
// with nothing delivered, Redis returns redis.Nil and ReadRecord reports
// io.EOF: producers stop enqueuing, consumers detect it by timeout, the
// same contract a bounded file or cursor Reader gives at its natural end.
func (r *Reader) ReadRecord(ctx context.Context) (*batch.Record, error) {
	streams, err := r.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    r.cfg.ConsumerGroup,
		Consumer: r.cfg.Consumer,
		Streams:  []string{r.cfg.Stream, ">"},
		Count:    1,
		Block:    r.cfg.BlockTimeout,
	}).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("queuebridge: read: %w", err)
	}
	if len(streams) == 0 || len(streams[0].Messages) == 0 {
		return nil, io.EOF
	}

	msg := streams[0].Messages[0]
	payload, err := decodePayload(msg.Values)
	if err != nil {
		return nil, fmt.Errorf("queuebridge: decode message %s: %w", msg.ID, err)
	}

	return batch.NewRecord(0, msg.ID, time.Now(), payload), nil
}

func (r *Reader) Close(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}

func decodePayload(values map[string]any) (any, error) {
	raw, ok := values["payload"].(string)
	if !ok {
		return values, nil
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func isBusyGroup(err error) bool {
	return strings.Contains(err.Error(), "BUSYGROUP")
}

var _ batch.Reader = (*Reader)(nil)
