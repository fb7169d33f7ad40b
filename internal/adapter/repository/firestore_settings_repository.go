package repository

import (
	"context"

	"cloud.google.com/go/firestore"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

type firestorePaymentConfigRepository struct {
	client *firestore.Client
}

func NewFirestorePaymentConfigRepository(client *firestore.Client) repository.PaymentConfigRepository {
	return &firestorePaymentConfigRepository{
		client: client,
	}
}

func (r *firestorePaymentConfigRepository) doc() *firestore.DocumentRef {
	return r.client.Collection(paymentQRCollection).Doc(paymentQRDocument)
}

func (r *firestorePaymentConfigRepository) Get(ctx context.Context) (*entity.PaymentConfig, error) {
	doc, err := r.doc().Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return &entity.PaymentConfig{}, nil
		}
		return nil, storeError("Failed to get payment config", err)
	}

	var cfg entity.PaymentConfig
	if err := doc.DataTo(&cfg); err != nil {
		return nil, errors.Internal("Failed to parse payment config", err)
	}
	return &cfg, nil
}

// Replace overwrites the whole document; fields not in cfg are dropped.
func (r *firestorePaymentConfigRepository) Replace(ctx context.Context, cfg *entity.PaymentConfig) error {
	if _, err := r.doc().Set(ctx, cfg); err != nil {
		return storeError("Failed to save payment config", err)
	}
	return nil
}

type firestoreContactMessageRepository struct {
	client *firestore.Client
}

func NewFirestoreContactMessageRepository(client *firestore.Client) repository.ContactMessageRepository {
	return &firestoreContactMessageRepository{
		client: client,
	}
}

func (r *firestoreContactMessageRepository) Create(ctx context.Context, msg *entity.ContactMessage) error {
	ref := r.client.Collection(contactCollection).NewDoc()
	msg.ID = ref.ID

	if _, err := ref.Set(ctx, msg); err != nil {
		return storeError("Failed to save contact message", err)
	}
	return nil
}

func (r *firestoreContactMessageRepository) List(ctx context.Context, limit int) ([]*entity.ContactMessage, error) {
	query := r.client.Collection(contactCollection).OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Failed to list contact messages", err)
	}

	messages := make([]*entity.ContactMessage, 0, len(docs))
	for _, doc := range docs {
		var msg entity.ContactMessage
		if err := doc.DataTo(&msg); err != nil {
			return nil, errors.Internal("Failed to parse contact message", err)
		}
		msg.ID = doc.Ref.ID
		messages = append(messages, &msg)
	}
	return messages, nil
}

func (r *firestoreContactMessageRepository) Count(ctx context.Context) (int64, error) {
	docs, err := r.client.Collection(contactCollection).Select().Documents(ctx).GetAll()
	if err != nil {
		return 0, storeError("Failed to count contact messages", err)
	}
	return int64(len(docs)), nil
}
