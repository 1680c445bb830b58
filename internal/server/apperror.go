package server

import (
	"errors"

	"git.appkode.ru/pub/go/failure"

	"avenqor/internal/domain"
	"avenqor/pkg/errcodes"
)

// translateError converts domain AppErrors into failure kinds so the reply
// package can map them to HTTP statuses. Errors without an AppError in the
// chain pass through and land as 500.
func translateError(err error) error {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		return err
	}

	opts := []failure.Option{
		failure.WithCode(appErr.Code),
		failure.WithDescription(appErr.Message),
	}

	switch appErr.Code {
	case errcodes.ValidationError,
		errcodes.InvalidSelection,
		errcodes.InvalidCourseSlug,
		errcodes.InvalidTopUpAmount,
		errcodes.InvalidRequest,
		errcodes.InvalidCartID,
		errcodes.InvalidPassword,
		errcodes.UnknownCurrency,
		errcodes.UnknownLocale:
		return failure.NewInvalidArgumentErrorFromError(err, opts...)

	case errcodes.NotFound,
		errcodes.CourseNotFound,
		errcodes.PackNotFound,
		errcodes.CartNotFound,
		errcodes.WalletNotFound,
		errcodes.RequestNotFound:
		return failure.NewNotFoundErrorFromError(err, opts...)

	case errcodes.Unauthorized,
		errcodes.SessionExpired,
		errcodes.CredentialsMismatch,
		errcodes.ResetTokenInvalid:
		return failure.NewUnauthorizedErrorFromError(err, opts...)

	case errcodes.Forbidden:
		return failure.NewForbiddenErrorFromError(err, opts...)

	case errcodes.EmailAlreadyInUse:
		return failure.NewConflictErrorFromError(err, opts...)

	case errcodes.InsufficientTokenBalance,
		errcodes.CartEmpty:
		// The client keys off these codes to steer the user to top-up or
		// back to the catalog.
		return failure.NewUnprocessableEntityErrorFromError(err, opts...)

	default:
		return err
	}
}
