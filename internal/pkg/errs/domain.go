package errs

import "fmt"

// InvalidOperationError reports a business rule violation that is not a state machine
// rule, for example checking out an empty cart.
type InvalidOperationError struct {
	Reason string
	Cause  error
}

func NewInvalidOperationError(reason string) *InvalidOperationError {
	return &InvalidOperationError{Reason: reason}
}

func NewInvalidOperationErrorWithCause(reason string, cause error) *InvalidOperationError {
	return &InvalidOperationError{Reason: reason, Cause: cause}
}

func (e *InvalidOperationError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrInvalidOperation, e.Reason), e.Cause)
}

func (e *InvalidOperationError) Unwrap() error {
	return ErrInvalidOperation
}

// InvalidStateTransitionError reports a transition the status table does not allow.
// From and To hold the status codes involved.
type InvalidStateTransitionError struct {
	From  string
	To    string
	Cause error
}

func NewInvalidStateTransitionError(from, to fmt.Stringer) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from.String(), To: to.String()}
}

func NewInvalidStateTransitionErrorWithCause(from, to fmt.Stringer, cause error) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{From: from.String(), To: to.String(), Cause: cause}
}

func (e *InvalidStateTransitionError) Error() string {
	return withCause(fmt.Sprintf("%s: %s -> %s", ErrInvalidStateTransition, e.From, e.To), e.Cause)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// AccessDeniedError reports an actor acting on a resource it does not own.
type AccessDeniedError struct {
	Resource string
	ID       any
	Cause    error
}

func NewAccessDeniedError(resource string, id any) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource, ID: id}
}

func NewAccessDeniedErrorWithCause(resource string, id any, cause error) *AccessDeniedError {
	return &AccessDeniedError{Resource: resource, ID: id, Cause: cause}
}

func (e *AccessDeniedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrAccessDenied, e.Resource, sanitize(e.ID)), e.Cause)
}

func (e *AccessDeniedError) Unwrap() error {
	return ErrAccessDenied
}
