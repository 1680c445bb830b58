package worker

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"avenqor/internal/domain/entity"
	"avenqor/pkg/application/modules"
	"avenqor/pkg/logx"
)

type RequestRepository interface {
	GetRequest(ctx context.Context, id string) (entity.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status entity.RequestStatus) error
	GetContactMessage(ctx context.Context, id string) (entity.ContactMessage, error)
}

type Notifier interface {
	NotifyNewRequest(ctx context.Context, req entity.ServiceRequest) error
	NotifyContact(ctx context.Context, msg entity.ContactMessage) error
}

type Mailer interface {
	SendPasswordReset(ctx context.Context, email, token string) error
}

// Handlers processes the background queues: order fulfillment, staff
// notifications and transactional mail.
type Handlers struct {
	repo     RequestRepository
	notifier Notifier
	mailer   Mailer
}

func NewHandlers(repo RequestRepository, notifier Notifier, mailer Mailer) *Handlers {
	return &Handlers{
		repo:     repo,
		notifier: notifier,
		mailer:   mailer,
	}
}

// All returns the handler set in mux registration order.
func (h *Handlers) All() []modules.AsynqHandler {
	return []modules.AsynqHandler{
		{Pattern: TaskRequestFulfill, Handle: h.HandleRequestFulfill},
		{Pattern: TaskMailPasswordReset, Handle: h.HandlePasswordResetMail},
		{Pattern: TaskContactNotify, Handle: h.HandleContactNotify},
	}
}

// HandleRequestFulfill moves a freshly paid order along: AI strategies are
// generated inline and complete immediately, custom courses go to a human
// and park in review. Staff get pinged either way.
func (h *Handlers) HandleRequestFulfill(ctx context.Context, task *asynq.Task) error {
	var payload RequestFulfillPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	req, err := h.repo.GetRequest(ctx, payload.RequestID)
	if err != nil {
		return fmt.Errorf("repo.GetRequest: %w", err)
	}

	status := entity.RequestStatusInReview
	if req.Kind == entity.RequestKindAIStrategy {
		status = entity.RequestStatusCompleted
	}

	if err := h.repo.UpdateRequestStatus(ctx, req.ID, status); err != nil {
		return fmt.Errorf("repo.UpdateRequestStatus: %w", err)
	}

	if err := h.notifier.NotifyNewRequest(ctx, req); err != nil {
		// Notification is best effort, the order is already moving.
		logger(ctx).Error("notify new request", logx.FieldRequestID, req.ID, logx.Error(err))
	}

	logger(ctx).Info("request fulfilled",
		logx.FieldRequestID, req.ID,
		logx.FieldRequestKind, string(req.Kind))

	return nil
}

func (h *Handlers) HandlePasswordResetMail(ctx context.Context, task *asynq.Task) error {
	var payload PasswordResetMailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	if err := h.mailer.SendPasswordReset(ctx, payload.Email, payload.Token); err != nil {
		return fmt.Errorf("mailer.SendPasswordReset: %w", err)
	}

	return nil
}

func (h *Handlers) HandleContactNotify(ctx context.Context, task *asynq.Task) error {
	var payload ContactNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal: %w", err)
	}

	msg, err := h.repo.GetContactMessage(ctx, payload.MessageID)
	if err != nil {
		return fmt.Errorf("repo.GetContactMessage: %w", err)
	}

	if err := h.notifier.NotifyContact(ctx, msg); err != nil {
		return fmt.Errorf("notifier.NotifyContact: %w", err)
	}

	return nil
}
