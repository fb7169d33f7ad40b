package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

type firestoreCartRepository struct {
	client *firestore.Client
}

func NewFirestoreCartRepository(client *firestore.Client) repository.CartRepository {
	return &firestoreCartRepository{
		client: client,
	}
}

func (r *firestoreCartRepository) carts(uid string) *firestore.CollectionRef {
	return userDoc(r.client, uid).Collection(cartsCollection)
}

func (r *firestoreCartRepository) List(ctx context.Context, uid string) ([]*entity.CartItem, error) {
	docs, err := r.carts(uid).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Failed to list cart", err)
	}
	return decodeCart(docs)
}

func (r *firestoreCartRepository) Get(ctx context.Context, uid, itemID string) (*entity.CartItem, error) {
	doc, err := r.carts(uid).Doc(itemID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Cart item", err)
		}
		return nil, storeError("Failed to get cart item", err)
	}
	return decodeCartItem(doc)
}

func (r *firestoreCartRepository) Put(ctx context.Context, uid string, item *entity.CartItem) error {
	if item.ID == "" {
		item.ID = r.carts(uid).NewDoc().ID
	}
	if _, err := r.carts(uid).Doc(item.ID).Set(ctx, item); err != nil {
		return storeError("Failed to save cart item", err)
	}
	return nil
}

func (r *firestoreCartRepository) Delete(ctx context.Context, uid, itemID string) error {
	if _, err := r.carts(uid).Doc(itemID).Delete(ctx); err != nil {
		return storeError("Failed to remove cart item", err)
	}
	return nil
}

func decodeCart(docs []*firestore.DocumentSnapshot) ([]*entity.CartItem, error) {
	items := make([]*entity.CartItem, 0, len(docs))
	for _, doc := range docs {
		item, err := decodeCartItem(doc)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeCartItem(doc *firestore.DocumentSnapshot) (*entity.CartItem, error) {
	var item entity.CartItem
	if err := doc.DataTo(&item); err != nil {
		return nil, errors.Internal("Failed to parse cart item", err)
	}
	item.ID = doc.Ref.ID
	return &item, nil
}
