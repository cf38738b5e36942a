package serviceerrors

import "errors"

type ErrorKind int

const (
	KindNotFound ErrorKind = iota
	KindConflict
	KindUnprocessableEntity
	KindInvalidRequest
	KindInsufficientStock
	KindAlreadyCancelled
	KindCancellationExpired
	KindTerminalStatus
	KindInvalidTransition
)

func IsOfKind(err error, kind ErrorKind) bool {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Kind == kind
	}
	return false
}

type ServiceError struct {
	Kind    ErrorKind
	Message string
}

func (e *ServiceError) Error() string {
	return e.Message
}

func NewNotFoundError(message string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: message}
}

func NewUnprocessableEntityError(message string) *ServiceError {
	return &ServiceError{Kind: KindUnprocessableEntity, Message: message}
}

func NewInvalidRequestError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidRequest, Message: message}
}

func NewInsufficientStockError(message string) *ServiceError {
	return &ServiceError{Kind: KindInsufficientStock, Message: message}
}

func NewAlreadyCancelledError(message string) *ServiceError {
	return &ServiceError{Kind: KindAlreadyCancelled, Message: message}
}

func NewCancellationExpiredError(message string) *ServiceError {
	return &ServiceError{Kind: KindCancellationExpired, Message: message}
}

func NewTerminalStatusError(message string) *ServiceError {
	return &ServiceError{Kind: KindTerminalStatus, Message: message}
}

func NewInvalidTransitionError(message string) *ServiceError {
	return &ServiceError{Kind: KindInvalidTransition, Message: message}
}
