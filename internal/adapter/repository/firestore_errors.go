package repository

import (
	stderrors "errors"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamerverse/pkg/errors"
)

const (
	gamesCollection        = "games"
	usersCollection        = "users"
	cartsCollection        = "carts"
	ordersCollection       = "orders"
	checkoutKeysCollection = "checkout_keys"
	paymentQRCollection    = "payment_qr"
	paymentQRDocument      = "current"
	contactCollection      = "contact_messages"
)

func userDoc(client *firestore.Client, uid string) *firestore.DocumentRef {
	return client.Collection(usersCollection).Doc(uid)
}

// storeError classifies a Firestore RPC error. Retryable codes become
// Transient so callers can back off and try again.
func storeError(message string, err error) error {
	if err == nil {
		return nil
	}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded, codes.Aborted, codes.ResourceExhausted:
		return errors.Transient(message, err)
	case codes.PermissionDenied, codes.Unauthenticated:
		return errors.Forbidden(message, err)
	default:
		return errors.Internal(message, err)
	}
}

func isNotFound(err error) bool {
	return status.Code(err) == codes.NotFound
}
