package product

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	ErrNotFound = errors.New("product not found")
)

// TransportError is a failed call to the remote product service: either a non-success
// status or a call that could not complete. Message is the generic text shown to users.
type TransportError interface {
	error
	Message() string
	Status() int
}

// AsTransportError finds the first TransportError in err's chain.
func AsTransportError(err error) (TransportError, bool) {
	var te TransportError
	if errors.As(err, &te) {
		return te, true
	}
	return nil, false
}

func describe(msg string, status int, err error) string {
	switch {
	case err != nil && status != 0:
		return fmt.Sprintf("%s: status %d: %v", msg, status, err)
	case err != nil:
		return fmt.Sprintf("%s: %v", msg, err)
	case status != 0:
		return fmt.Sprintf("%s: status %d", msg, status)
	}
	return msg
}

// FetchError is returned when listing the catalog fails.
type FetchError struct {
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string   { return describe(e.Message(), e.StatusCode, e.Err) }
func (e *FetchError) Message() string { return "failed to fetch products" }
func (e *FetchError) Status() int     { return e.StatusCode }
func (e *FetchError) Unwrap() error   { return e.Err }

// CreateError is returned when creating a product fails.
type CreateError struct {
	StatusCode int
	Err        error
}

func (e *CreateError) Error() string   { return describe(e.Message(), e.StatusCode, e.Err) }
func (e *CreateError) Message() string { return "failed to create product" }
func (e *CreateError) Status() int     { return e.StatusCode }
func (e *CreateError) Unwrap() error   { return e.Err }

// UpdateError is returned when updating a product fails.
type UpdateError struct {
	ID         int
	StatusCode int
	Err        error
}

func (e *UpdateError) Error() string   { return describe(e.Message(), e.StatusCode, e.Err) }
func (e *UpdateError) Message() string { return "failed to update product" }
func (e *UpdateError) Status() int     { return e.StatusCode }
func (e *UpdateError) Unwrap() error   { return e.Err }

// DeleteError is returned when deleting a product fails.
type DeleteError struct {
	ID         int
	StatusCode int
	Err        error
}

func (e *DeleteError) Error() string   { return describe(e.Message(), e.StatusCode, e.Err) }
func (e *DeleteError) Message() string { return "failed to delete product" }
func (e *DeleteError) Status() int     { return e.StatusCode }
func (e *DeleteError) Unwrap() error   { return e.Err }
