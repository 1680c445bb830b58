package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"avenqor/pkg/logx"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

const (
	TaskRequestFulfill    = "request:fulfill"
	TaskMailPasswordReset = "mail:password_reset"
	TaskContactNotify     = "contact:notify"
)

const (
	QueueDefault = "default"
	QueueMail    = "mail"
)

// Queues maps queue names to their relative priority.
func Queues() map[string]int {
	return map[string]int{
		QueueDefault: 6,
		QueueMail:    3,
	}
}

type RequestFulfillPayload struct {
	RequestID string `json:"requestId"`
}

type PasswordResetMailPayload struct {
	Email string `json:"email"`
	Token string `json:"token"`
}

type ContactNotifyPayload struct {
	MessageID string `json:"messageId"`
}

// Enqueuer schedules background work on the asynq queues.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(client *asynq.Client) *Enqueuer {
	return &Enqueuer{client: client}
}

func (e *Enqueuer) EnqueueRequestFulfill(ctx context.Context, requestID string) error {
	return e.enqueue(ctx, TaskRequestFulfill, RequestFulfillPayload{RequestID: requestID},
		asynq.Queue(QueueDefault), asynq.MaxRetry(5))
}

// EnqueuePasswordResetMail goes on the mail queue with a short retention:
// the token the mail carries expires anyway.
func (e *Enqueuer) EnqueuePasswordResetMail(ctx context.Context, email, token string) error {
	return e.enqueue(ctx, TaskMailPasswordReset, PasswordResetMailPayload{Email: email, Token: token},
		asynq.Queue(QueueMail), asynq.MaxRetry(3), asynq.Timeout(30*time.Second))
}

func (e *Enqueuer) EnqueueContactNotify(ctx context.Context, messageID string) error {
	return e.enqueue(ctx, TaskContactNotify, ContactNotifyPayload{MessageID: messageID},
		asynq.Queue(QueueDefault), asynq.MaxRetry(5))
}

func (e *Enqueuer) enqueue(ctx context.Context, taskType string, payload any, opts ...asynq.Option) error {
	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	if _, err := e.client.EnqueueContext(ctx, asynq.NewTask(taskType, raw), opts...); err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("task enqueued", logx.FieldTaskType, taskType)

	return nil
}
