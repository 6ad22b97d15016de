package githubapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
)

const (
	tokenRequiredMessageConstant            = "github token must be provided"
	remoteErrorMessageTemplateConstant      = "%s rejected by GitHub (status %d): %s"
	operationErrorMessageTemplateConstant   = "%s operation failed"
	operationErrorWithCauseTemplateConstant = "%s operation failed: %s"
)

// ErrTokenRequired indicates the client was constructed without a credential.
var ErrTokenRequired = errors.New(tokenRequiredMessageConstant)

// OperationName describes a named GitHub API workflow supported by the client.
type OperationName string

// RemoteError surfaces a non-success GitHub API response verbatim.
type RemoteError struct {
	Operation  OperationName
	StatusCode int
	Message    string
}

// Error describes the remote failure including the API's error payload.
func (remoteError *RemoteError) Error() string {
	return fmt.Sprintf(remoteErrorMessageTemplateConstant, remoteError.Operation, remoteError.StatusCode, remoteError.Message)
}

// OperationError wraps transport-level failures for GitHub API operations.
type OperationError struct {
	Operation OperationName
	Cause     error
}

// Error describes the operation failure.
func (operationError *OperationError) Error() string {
	if operationError.Cause == nil {
		return fmt.Sprintf(operationErrorMessageTemplateConstant, operationError.Operation)
	}
	return fmt.Sprintf(operationErrorWithCauseTemplateConstant, operationError.Operation, operationError.Cause)
}

// Unwrap exposes the underlying cause.
func (operationError *OperationError) Unwrap() error {
	return operationError.Cause
}

// IsNotFound reports whether the error represents a missing remote object.
func IsNotFound(candidateError error) bool {
	var remoteError *RemoteError
	if errors.As(candidateError, &remoteError) {
		return remoteError.StatusCode == http.StatusNotFound
	}
	return false
}

func translateError(operation OperationName, apiError error) error {
	if apiError == nil {
		return nil
	}

	var errorResponse *github.ErrorResponse
	if errors.As(apiError, &errorResponse) {
		statusCode := 0
		if errorResponse.Response != nil {
			statusCode = errorResponse.Response.StatusCode
		}
		return &RemoteError{Operation: operation, StatusCode: statusCode, Message: errorResponse.Message}
	}

	return &OperationError{Operation: operation, Cause: apiError}
}
