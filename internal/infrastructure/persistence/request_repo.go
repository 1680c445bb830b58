package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"

	"avenqor/internal/domain"
	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/value"
	"avenqor/pkg/errcodes"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

// RequestRepository stores service requests and contact messages. The
// selection travels as jsonb, decoded according to the request kind.
type RequestRepository struct {
	db *sqlx.DB
}

func NewRequestRepository(db *sqlx.DB) *RequestRepository {
	return &RequestRepository{db: db}
}

func (r *RequestRepository) CreateRequest(ctx context.Context, req entity.ServiceRequest) error {
	selection, err := marshalSelection(req)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO requests (id, user_id, kind, status, tokens, notes, selection, created_at, updated_at)
		VALUES (:id, :user_id, :kind, :status, :tokens, :notes, :selection, :created_at, :updated_at)`

	params := map[string]any{
		"id":         req.ID,
		"user_id":    req.UserID,
		"kind":       string(req.Kind),
		"status":     string(req.Status),
		"tokens":     req.Tokens,
		"notes":      req.Notes,
		"selection":  selection,
		"created_at": req.CreatedAt,
		"updated_at": req.UpdatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert request")
	}

	return nil
}

func (r *RequestRepository) GetRequest(ctx context.Context, id string) (entity.ServiceRequest, error) {
	query := `
		SELECT id, user_id, kind, status, tokens, notes, selection, created_at, updated_at
		FROM requests
		WHERE id = $1`

	var schema requestSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ServiceRequest{}, domain.NewError(errcodes.RequestNotFound, "request not found")
		}

		return entity.ServiceRequest{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get request")
	}

	return requestToDomain(schema)
}

func (r *RequestRepository) ListRequests(ctx context.Context, userID string) ([]entity.ServiceRequest, error) {
	query := `
		SELECT id, user_id, kind, status, tokens, notes, selection, created_at, updated_at
		FROM requests
		WHERE user_id = $1
		ORDER BY created_at DESC`

	var schemas []requestSchema
	if err := r.db.SelectContext(ctx, &schemas, query, userID); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list requests")
	}

	requests := make([]entity.ServiceRequest, 0, len(schemas))
	for _, schema := range schemas {
		req, err := requestToDomain(schema)
		if err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, nil
}

func (r *RequestRepository) UpdateRequestStatus(ctx context.Context, id string, status entity.RequestStatus) error {
	query := `
		UPDATE requests
		SET status = $1, updated_at = $2
		WHERE id = $3`

	res, err := r.db.ExecContext(ctx, query, string(status), time.Now(), id)
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to update request status")
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to check affected rows")
	}

	if rows == 0 {
		return domain.NewError(errcodes.RequestNotFound, "request not found")
	}

	return nil
}

func (r *RequestRepository) CreateContactMessage(ctx context.Context, msg entity.ContactMessage) error {
	query := `
		INSERT INTO contact_messages (id, full_name, email, phone, subject, message, created_at)
		VALUES (:id, :full_name, :email, :phone, :subject, :message, :created_at)`

	params := map[string]any{
		"id":         msg.ID,
		"full_name":  msg.FullName,
		"email":      msg.Email,
		"phone":      msg.Phone,
		"subject":    msg.Subject,
		"message":    msg.Message,
		"created_at": msg.CreatedAt,
	}

	if _, err := r.db.NamedExecContext(ctx, query, params); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert contact message")
	}

	return nil
}

func (r *RequestRepository) GetContactMessage(ctx context.Context, id string) (entity.ContactMessage, error) {
	query := `
		SELECT id, full_name, email, phone, subject, message, created_at
		FROM contact_messages
		WHERE id = $1`

	var schema contactMessageSchema
	if err := r.db.GetContext(ctx, &schema, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ContactMessage{}, domain.NewError(errcodes.NotFound, "contact message not found")
		}

		return entity.ContactMessage{}, domain.WrapError(err, errcodes.InternalServerError, "failed to get contact message")
	}

	return schema.toDomain(), nil
}

func marshalSelection(req entity.ServiceRequest) ([]byte, error) {
	var (
		selection []byte
		err       error
	)

	switch req.Kind {
	case entity.RequestKindCustomCourse:
		selection, err = json.Marshal(req.CourseSelection)
	case entity.RequestKindAIStrategy:
		selection, err = json.Marshal(req.StrategySelection)
	default:
		return nil, domain.NewError(errcodes.InvalidRequest, "unknown request kind")
	}

	if err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to marshal selection")
	}

	return selection, nil
}

func requestToDomain(schema requestSchema) (entity.ServiceRequest, error) {
	req := entity.ServiceRequest{
		ID:        schema.ID,
		UserID:    schema.UserID,
		Kind:      entity.RequestKind(schema.Kind),
		Status:    entity.RequestStatus(schema.Status),
		Tokens:    schema.Tokens,
		Notes:     schema.Notes,
		CreatedAt: schema.CreatedAt,
		UpdatedAt: schema.UpdatedAt,
	}

	switch req.Kind {
	case entity.RequestKindCustomCourse:
		var sel value.CourseSelection
		if err := json.Unmarshal(schema.Selection, &sel); err != nil {
			return entity.ServiceRequest{}, domain.WrapError(err, errcodes.InternalServerError, "failed to unmarshal selection")
		}
		req.CourseSelection = &sel
	case entity.RequestKindAIStrategy:
		var sel value.StrategySelection
		if err := json.Unmarshal(schema.Selection, &sel); err != nil {
			return entity.ServiceRequest{}, domain.WrapError(err, errcodes.InternalServerError, "failed to unmarshal selection")
		}
		req.StrategySelection = &sel
	default:
		return entity.ServiceRequest{}, domain.NewError(errcodes.InternalServerError, "unknown request kind in storage")
	}

	return req, nil
}
