package db

import (
	"context"
	"errors"
	"net"

	"github.com/cenkalti/backoff/v4"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrNotFound is returned when a document does not exist. Handlers map it to
// a 404; it is never retried.
var ErrNotFound = errors.New("document not found")

// IsTransient classifies a remote-store failure as retryable. Timeouts,
// network errors and retryable server labels qualify; everything else is
// permanent and must surface to the caller.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, mongo.ErrNoDocuments) {
		return false
	}
	if mongo.IsTimeout(err) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var serverErr mongo.ServerError
	if errors.As(err, &serverErr) {
		return serverErr.HasErrorLabel("RetryableWriteError") ||
			serverErr.HasErrorLabel("TransientTransactionError")
	}
	return false
}

const maxRetries = 3

// withRetry runs op, retrying transient failures with bounded exponential
// backoff. Permanent failures return immediately. Retries stop when the
// context is done, so an abandoned request never keeps hammering the store.
func withRetry(ctx context.Context, opName string, op func() error) error {
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), maxRetries), ctx)
	attempt := 0
	return backoff.Retry(func() error {
		attempt++
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		log.WithFields(log.Fields{
			"op":      opName,
			"attempt": attempt,
		}).WithError(err).Warn("transient store error, retrying")
		return err
	}, policy)
}
