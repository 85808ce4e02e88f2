// internal/adapters/out/firestore/common/errors.go
package common

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// IsNotFound detects a Firestore document-missing error.
func IsNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}

// IsTransient reports whether a store error is worth retrying by the caller.
// The core performs no retries itself; this only classifies.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	switch status.Code(err) {
	case codes.Unavailable,
		codes.DeadlineExceeded,
		codes.ResourceExhausted,
		codes.Aborted,
		codes.Internal,
		codes.Canceled:
		return true
	}
	return false
}
