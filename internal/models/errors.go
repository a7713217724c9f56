package models

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// ErrorResponse represents a standardized API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// Error codes returned by the core services. Business-rule failures
// (NOT_FOUND, NOT_FOLLOWING, NOT_FAVORITED) are terminal and must never be
// retried automatically; STORE_ERROR is retryable; PARTIAL_WRITE means the
// first document of a two-document update was persisted and the second was
// not — retrying the operation completes the missing half.
const (
	CodeNotFound     = "NOT_FOUND"
	CodeNotFollowing = "NOT_FOLLOWING"
	CodeNotFavorited = "NOT_FAVORITED"
	CodeStoreError   = "STORE_ERROR"
	CodePartialWrite = "PARTIAL_WRITE"
	CodeValidation   = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewNotFollowingError(targetID string) *AppError {
	return &AppError{
		Code:    CodeNotFollowing,
		Message: fmt.Sprintf("User %s is not in the following list", targetID),
	}
}

func NewNotFavoritedError(articleID string) *AppError {
	return &AppError{
		Code:    CodeNotFavorited,
		Message: fmt.Sprintf("Article %s is not in the favorites list", articleID),
	}
}

func NewStoreError(err error) *AppError {
	return &AppError{
		Code:    CodeStoreError,
		Message: "Document store operation failed",
		Err:     err,
	}
}

// NewPartialWriteError marks a failure that occurred after the first write of
// a two-document update committed. The step names which write was left undone.
func NewPartialWriteError(step string, err error) *AppError {
	return &AppError{
		Code:    CodePartialWrite,
		Message: fmt.Sprintf("Partially applied update: %s did not complete", step),
		Err:     err,
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    CodeUnauthorized,
		Message: message,
	}
}

// RespondWithError creates a standardized error response
func RespondWithError(c *fiber.Ctx, status int, err error) error {
	var response ErrorResponse

	if appErr, ok := err.(*AppError); ok {
		response = ErrorResponse{
			Error: appErr.Message,
			Code:  appErr.Code,
		}
		if appErr.Err != nil {
			response.Details = appErr.Err.Error()
		}
	} else {
		response = ErrorResponse{
			Error: err.Error(),
		}
	}

	return c.Status(status).JSON(response)
}
