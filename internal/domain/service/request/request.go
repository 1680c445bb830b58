package request

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"
	"github.com/shopspring/decimal"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/pricing"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

type Repository interface {
	CreateRequest(ctx context.Context, req entity.ServiceRequest) error
	GetRequest(ctx context.Context, id string) (entity.ServiceRequest, error)
	ListRequests(ctx context.Context, userID string) ([]entity.ServiceRequest, error)
	UpdateRequestStatus(ctx context.Context, id string, status entity.RequestStatus) error
	CreateContactMessage(ctx context.Context, msg entity.ContactMessage) error
}

type Wallet interface {
	Debit(ctx context.Context, userID string, tokens int64, reference string) (int64, error)
	Credit(ctx context.Context, userID string, tokens int64, reference string) (int64, error)
}

// Enqueuer hands submitted work off to the background queue.
type Enqueuer interface {
	EnqueueRequestFulfill(ctx context.Context, requestID string) error
	EnqueueContactNotify(ctx context.Context, messageID string) error
}

// Quote is a priced selection before any commitment.
type Quote struct {
	Tokens    int64
	Currency  value.Currency
	Amount    decimal.Decimal
	Formatted string
}

type Service struct {
	repo     Repository
	wallet   Wallet
	enqueuer Enqueuer
	calc     pricing.Calculator
	quoter   pricing.Quoter
}

func NewService(
	repo Repository,
	wallet Wallet,
	enqueuer Enqueuer,
	cfg pricing.Config,
) *Service {
	return &Service{
		repo:     repo,
		wallet:   wallet,
		enqueuer: enqueuer,
		calc:     pricing.NewCalculator(cfg),
		quoter:   pricing.NewQuoter(cfg),
	}
}

// QuoteCustomCourse prices a selection without persisting anything. The quote
// is a pure function of the selection and the rate table.
func (s *Service) QuoteCustomCourse(sel value.CourseSelection, currency value.Currency) Quote {
	return s.quote(s.calc.CustomCoursePrice(sel), currency)
}

func (s *Service) QuoteAIStrategy(sel value.StrategySelection, currency value.Currency) Quote {
	return s.quote(s.calc.AIStrategyPrice(sel), currency)
}

func (s *Service) quote(tokens int64, currency value.Currency) Quote {
	resolved := s.quoter.Resolve(currency)
	amount, formatted := s.quoter.QuoteTokens(tokens, resolved)

	return Quote{
		Tokens:    tokens,
		Currency:  resolved,
		Amount:    amount,
		Formatted: formatted,
	}
}

// SubmitCustomCourse prices the selection server side, debits the wallet and
// stores the order. Whatever amount the client displayed is ignored. Returns
// the stored request and the balance left after the debit.
func (s *Service) SubmitCustomCourse(
	ctx context.Context, userID string, sel value.CourseSelection, notes string,
) (entity.ServiceRequest, int64, error) {
	if err := sel.Validate(); err != nil {
		return entity.ServiceRequest{}, 0, domain.WrapError(err, errcodes.InvalidSelection, "invalid selection")
	}

	req := entity.ServiceRequest{
		Kind:            entity.RequestKindCustomCourse,
		Tokens:          s.calc.CustomCoursePrice(sel),
		Notes:           notes,
		CourseSelection: &sel,
	}

	return s.submit(ctx, userID, req)
}

func (s *Service) SubmitAIStrategy(
	ctx context.Context, userID string, sel value.StrategySelection, notes string,
) (entity.ServiceRequest, int64, error) {
	if err := sel.Validate(); err != nil {
		return entity.ServiceRequest{}, 0, domain.WrapError(err, errcodes.InvalidSelection, "invalid selection")
	}

	req := entity.ServiceRequest{
		Kind:              entity.RequestKindAIStrategy,
		Tokens:            s.calc.AIStrategyPrice(sel),
		Notes:             notes,
		StrategySelection: &sel,
	}

	return s.submit(ctx, userID, req)
}

func (s *Service) submit(
	ctx context.Context, userID string, req entity.ServiceRequest,
) (entity.ServiceRequest, int64, error) {
	now := time.Now()
	req.ID = xid.New().String()
	req.UserID = userID
	req.Status = entity.RequestStatusPending
	req.CreatedAt = now
	req.UpdatedAt = now

	balance, err := s.wallet.Debit(ctx, userID, req.Tokens, "request:"+req.ID)
	if err != nil {
		return entity.ServiceRequest{}, 0, fmt.Errorf("wallet.Debit: %w", err)
	}

	if err := s.repo.CreateRequest(ctx, req); err != nil {
		// Give the tokens back, the order was never recorded.
		if _, creditErr := s.wallet.Credit(ctx, userID, req.Tokens, "refund:"+req.ID); creditErr != nil {
			logger(ctx).Error("compensating credit failed",
				"request_id", req.ID, "user_id", userID, "error", creditErr)
		}

		return entity.ServiceRequest{}, 0, fmt.Errorf("repo.CreateRequest: %w", err)
	}

	if err := s.enqueuer.EnqueueRequestFulfill(ctx, req.ID); err != nil {
		// The order is stored and paid for; fulfillment can be re-driven.
		logger(ctx).Error("enqueue fulfillment", "request_id", req.ID, "error", err)
	}

	logger(ctx).Info("request submitted",
		"request_id", req.ID, "kind", string(req.Kind), "tokens", req.Tokens)

	return req, balance, nil
}

func (s *Service) Get(ctx context.Context, id string) (entity.ServiceRequest, error) {
	req, err := s.repo.GetRequest(ctx, id)
	if err != nil {
		return entity.ServiceRequest{}, fmt.Errorf("repo.GetRequest: %w", err)
	}

	return req, nil
}

func (s *Service) ListForUser(ctx context.Context, userID string) ([]entity.ServiceRequest, error) {
	reqs, err := s.repo.ListRequests(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("repo.ListRequests: %w", err)
	}

	return reqs, nil
}

// SubmitContact stores a contact-form message and queues the staff
// notification. Contact is free; no wallet involved.
func (s *Service) SubmitContact(ctx context.Context, msg entity.ContactMessage) (entity.ContactMessage, error) {
	msg.ID = xid.New().String()
	msg.CreatedAt = time.Now()

	if err := s.repo.CreateContactMessage(ctx, msg); err != nil {
		return entity.ContactMessage{}, fmt.Errorf("repo.CreateContactMessage: %w", err)
	}

	if err := s.enqueuer.EnqueueContactNotify(ctx, msg.ID); err != nil {
		logger(ctx).Error("enqueue contact notification", "message_id", msg.ID, "error", err)
	}

	return msg, nil
}
