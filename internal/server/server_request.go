package server

import (
	"context"
	"fmt"
	"net/http"

	"avenqor/internal/domain/entity"
	"avenqor/internal/domain/service/request"
	"avenqor/internal/domain/value"
	"avenqor/pkg/contextx"
	"avenqor/pkg/httpx/reply"
	"avenqor/pkg/httpx/req"
	"avenqor/pkg/lox"
	"avenqor/pkg/rest"
)

type requestService interface {
	QuoteCustomCourse(sel value.CourseSelection, currency value.Currency) request.Quote
	QuoteAIStrategy(sel value.StrategySelection, currency value.Currency) request.Quote
	SubmitCustomCourse(ctx context.Context, userID string, sel value.CourseSelection, notes string) (entity.ServiceRequest, int64, error)
	SubmitAIStrategy(ctx context.Context, userID string, sel value.StrategySelection, notes string) (entity.ServiceRequest, int64, error)
	ListForUser(ctx context.Context, userID string) ([]entity.ServiceRequest, error)
	SubmitContact(ctx context.Context, msg entity.ContactMessage) (entity.ContactMessage, error)
}

type RequestServer struct {
	requestService requestService
}

func NewRequestServer(requestService requestService) RequestServer {
	return RequestServer{requestService: requestService}
}

// postCustomCourseQuote prices a form state without persisting anything. The
// endpoint is public: the form quotes live while the visitor clicks around.
func (s RequestServer) postCustomCourseQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.CustomCourseRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	quote := s.requestService.QuoteCustomCourse(
		newDomainCourseSelection(request.Selection), currencyFromRequest(r))

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(quote))

	return nil
}

func (s RequestServer) postAIStrategyQuote(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.AIStrategyRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	quote := s.requestService.QuoteAIStrategy(
		newDomainStrategySelection(request.Selection), currencyFromRequest(r))

	reply.JSON(ctx, w, http.StatusOK, newRESTQuote(quote))

	return nil
}

func (s RequestServer) postCustomCourse(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	var request rest.CustomCourseRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	submitted, balance, err := s.requestService.SubmitCustomCourse(
		ctx, userID.String(), newDomainCourseSelection(request.Selection), request.Notes)
	if err != nil {
		return fmt.Errorf("requestService.SubmitCustomCourse: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTSubmittedRequest(submitted, balance))

	return nil
}

func (s RequestServer) postAIStrategy(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	var request rest.AIStrategyRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	submitted, balance, err := s.requestService.SubmitAIStrategy(
		ctx, userID.String(), newDomainStrategySelection(request.Selection), request.Notes)
	if err != nil {
		return fmt.Errorf("requestService.SubmitAIStrategy: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTSubmittedRequest(submitted, balance))

	return nil
}

func (s RequestServer) getRequests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	userID, err := contextx.UserIDFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserIDFromContext: %w", err)
	}

	requests, err := s.requestService.ListForUser(ctx, userID.String())
	if err != nil {
		return fmt.Errorf("requestService.ListForUser: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(requests, func(req entity.ServiceRequest) rest.SubmittedRequest {
		return newRESTSubmittedRequest(req, 0)
	}))

	return nil
}

func (s RequestServer) postContact(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.ContactRequest
	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	if _, err := s.requestService.SubmitContact(ctx, entity.ContactMessage{
		FullName: request.FullName,
		Email:    request.Email,
		Phone:    request.Phone,
		Subject:  request.Subject,
		Message:  request.Message,
	}); err != nil {
		return fmt.Errorf("requestService.SubmitContact: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, rest.OK{Success: true})

	return nil
}
