package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"
	Unauthorized        failure.ErrorCode = "Unauthorized"

	// Auth
	CredentialsMismatch failure.ErrorCode = "CredentialsMismatch"
	EmailAlreadyInUse   failure.ErrorCode = "EmailAlreadyInUse"
	SessionExpired      failure.ErrorCode = "SessionExpired"
	ResetTokenInvalid   failure.ErrorCode = "ResetTokenInvalid" //nolint:gosec // false positive
	InvalidPassword     failure.ErrorCode = "InvalidPassword"

	// Catalog
	CourseNotFound    failure.ErrorCode = "CourseNotFound"
	PackNotFound      failure.ErrorCode = "PackNotFound"
	InvalidCourseSlug failure.ErrorCode = "InvalidCourseSlug"

	// Pricing / preferences
	InvalidSelection   failure.ErrorCode = "InvalidSelection"
	UnknownCurrency    failure.ErrorCode = "UnknownCurrency"
	UnknownLocale      failure.ErrorCode = "UnknownLocale"
	MissingTranslation failure.ErrorCode = "MissingTranslation"

	// Cart / checkout
	CartNotFound  failure.ErrorCode = "CartNotFound"
	CartEmpty     failure.ErrorCode = "CartEmpty"
	InvalidCartID failure.ErrorCode = "InvalidCartID"

	// Wallet
	InsufficientTokenBalance failure.ErrorCode = "InsufficientTokenBalance"
	WalletNotFound           failure.ErrorCode = "WalletNotFound"
	InvalidTopUpAmount       failure.ErrorCode = "InvalidTopUpAmount"

	// Requests
	RequestNotFound failure.ErrorCode = "RequestNotFound"
	InvalidRequest  failure.ErrorCode = "InvalidRequest"
)
