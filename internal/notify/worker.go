package notify

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"speakup/backend/internal/config"
	"speakup/backend/internal/relay"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Sender delivers one notification to the reporter's contact channel.
// The mail transport itself is an external collaborator; implementations
// here only hand the job over.
type Sender interface {
	Send(ctx context.Context, jobType string, payload json.RawMessage) error
}

// LogSender records the hand-off instead of sending. It logs only the
// job metadata; the job has no content to leak by construction.
type LogSender struct {
	Log *logrus.Logger
}

func (s *LogSender) Send(ctx context.Context, jobType string, payload json.RawMessage) error {
	var job relay.NewMessageJob
	if err := json.Unmarshal(payload, &job); err != nil {
		return err
	}
	s.Log.WithFields(logrus.Fields{
		"module":         "notify",
		"job_type":       jobType,
		"case_reference": job.CaseReference,
	}).Info("notification dispatched")
	return nil
}

// Worker drains the notification queue and hands each job to the Sender.
type Worker struct {
	Redis  *redis.Client
	Queue  string
	Sender Sender
	Log    *logrus.Logger
}

func NewWorker(rdb *redis.Client, sender Sender, log *logrus.Logger) *Worker {
	return &Worker{Redis: rdb, Queue: config.NotifyQueueKey, Sender: sender, Log: log}
}

// Run blocks on the queue until ctx is cancelled. A failed job is logged
// and dropped; redelivery policy belongs to the queue collaborator, not
// this subsystem.
func (w *Worker) Run(ctx context.Context) {
	for {
		res, err := w.Redis.BRPop(ctx, config.NotifyPopTimeout, w.Queue).Result()
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			w.Log.WithField("module", "notify").Warnf("queue pop failed: %v", err)
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value].
		var job Job
		if err := json.Unmarshal([]byte(res[1]), &job); err != nil {
			w.Log.WithField("module", "notify").Warnf("bad job payload: %v", err)
			continue
		}
		if err := w.Sender.Send(ctx, job.Type, job.Payload); err != nil {
			w.Log.WithFields(logrus.Fields{
				"module":   "notify",
				"job_type": job.Type,
			}).Warnf("send failed: %v", err)
		}
	}
}
