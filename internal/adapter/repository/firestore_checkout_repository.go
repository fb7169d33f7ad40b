package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

type checkoutMarker struct {
	OrderID   string `firestore:"orderId"`
	CreatedAt int64  `firestore:"createdAt"`
}

type firestoreCheckoutRepository struct {
	client *firestore.Client
}

func NewFirestoreCheckoutRepository(client *firestore.Client) repository.CheckoutRepository {
	return &firestoreCheckoutRepository{
		client: client,
	}
}

func (r *firestoreCheckoutRepository) ConvertCart(ctx context.Context, uid, checkoutKey string, build repository.OrderBuilder) (*entity.Order, bool, error) {
	user := userDoc(r.client, uid)
	carts := user.Collection(cartsCollection)
	orders := user.Collection(ordersCollection)
	keys := user.Collection(checkoutKeysCollection)

	var (
		result   *entity.Order
		replayed bool
	)
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// The closure can run more than once.
		result, replayed = nil, false

		if checkoutKey != "" {
			markerDoc, err := tx.Get(keys.Doc(checkoutKey))
			switch {
			case err == nil:
				var marker checkoutMarker
				if err := markerDoc.DataTo(&marker); err != nil {
					return errors.Internal("Failed to parse checkout marker", err)
				}
				orderDoc, err := tx.Get(orders.Doc(marker.OrderID))
				if err != nil {
					return err
				}
				order, err := decodeOrder(orderDoc)
				if err != nil {
					return err
				}
				result, replayed = order, true
				return nil
			case !isNotFound(err):
				return err
			}
		}

		cartDocs, err := tx.Documents(carts).GetAll()
		if err != nil {
			return err
		}
		items, err := decodeCart(cartDocs)
		if err != nil {
			return err
		}

		order, err := build(items)
		if err != nil {
			return err
		}

		// Reads are done; everything below is buffered until commit.
		ref := orders.NewDoc()
		order.ID = ref.ID
		order.UserID = uid
		if err := tx.Create(ref, toOrderRecord(order)); err != nil {
			return err
		}
		if order.CheckoutKey != "" {
			marker := checkoutMarker{OrderID: order.ID, CreatedAt: order.CreatedAt}
			if err := tx.Create(keys.Doc(order.CheckoutKey), marker); err != nil {
				return err
			}
		}
		for _, doc := range cartDocs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, false, storeError("Failed to place order", err)
	}

	return result, replayed, nil
}
