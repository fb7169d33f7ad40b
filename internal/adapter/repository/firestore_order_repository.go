package repository

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
	"gamerverse/pkg/logger"
)

// orderRecord is the stored shape. Status stays untyped because older
// documents hold a boolean there.
type orderRecord struct {
	UserID      string             `firestore:"userId"`
	UserEmail   string             `firestore:"userEmail"`
	Items       []entity.OrderItem `firestore:"items"`
	TotalAmount float64            `firestore:"totalAmount"`
	Status      interface{}        `firestore:"status"`
	CreatedAt   int64              `firestore:"createdAt"`
	CheckoutKey string             `firestore:"checkoutKey,omitempty"`
}

func toOrderRecord(order *entity.Order) orderRecord {
	return orderRecord{
		UserID:      order.UserID,
		UserEmail:   order.UserEmail,
		Items:       order.Items,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		CreatedAt:   order.CreatedAt,
		CheckoutKey: order.CheckoutKey,
	}
}

func decodeOrder(doc *firestore.DocumentSnapshot) (*entity.Order, error) {
	var rec orderRecord
	if err := doc.DataTo(&rec); err != nil {
		return nil, errors.Internal("Failed to parse order data", err)
	}

	st, _, err := entity.ParseOrderStatus(rec.Status)
	if err != nil {
		return nil, errors.Internal(fmt.Sprintf("Order %s has unreadable status %v", doc.Ref.ID, rec.Status), err)
	}

	userID := rec.UserID
	if userID == "" && doc.Ref.Parent != nil && doc.Ref.Parent.Parent != nil {
		userID = doc.Ref.Parent.Parent.ID
	}

	return &entity.Order{
		ID:          doc.Ref.ID,
		UserID:      userID,
		UserEmail:   rec.UserEmail,
		Items:       rec.Items,
		TotalAmount: rec.TotalAmount,
		Status:      st,
		CreatedAt:   rec.CreatedAt,
		CheckoutKey: rec.CheckoutKey,
	}, nil
}

func decodeOrders(docs []*firestore.DocumentSnapshot) ([]*entity.Order, error) {
	orders := make([]*entity.Order, 0, len(docs))
	for _, doc := range docs {
		order, err := decodeOrder(doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

type firestoreOrderRepository struct {
	client *firestore.Client
}

func NewFirestoreOrderRepository(client *firestore.Client) repository.OrderRepository {
	return &firestoreOrderRepository{
		client: client,
	}
}

func (r *firestoreOrderRepository) orders(uid string) *firestore.CollectionRef {
	return userDoc(r.client, uid).Collection(ordersCollection)
}

func (r *firestoreOrderRepository) GetByID(ctx context.Context, uid, orderID string) (*entity.Order, error) {
	doc, err := r.orders(uid).Doc(orderID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Order", err)
		}
		return nil, storeError("Failed to get order", err)
	}
	return decodeOrder(doc)
}

func (r *firestoreOrderRepository) ListByUser(ctx context.Context, uid string) ([]*entity.Order, error) {
	docs, err := r.orders(uid).OrderBy("createdAt", firestore.Desc).Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Failed to list orders", err)
	}
	return decodeOrders(docs)
}

func (r *firestoreOrderRepository) ListAll(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, error) {
	query := r.client.CollectionGroup(ordersCollection).Query
	if filter.Status != "" {
		query = query.Where("status", "in", filter.Status.StoredValues())
	}
	query = query.OrderBy("createdAt", firestore.Desc)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, storeError("Failed to list all orders", err)
	}
	return decodeOrders(docs)
}

func (r *firestoreOrderRepository) TransitionStatus(ctx context.Context, uid, orderID string, next entity.OrderStatus) (*entity.Order, error) {
	ref := r.orders(uid).Doc(orderID)

	var updated *entity.Order
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if isNotFound(err) {
				return errors.NotFound("Order", err)
			}
			return err
		}

		order, err := decodeOrder(doc)
		if err != nil {
			return err
		}
		from := order.Status
		if err := order.TransitionTo(next); err != nil {
			return errors.Conflict(fmt.Sprintf("Order is %s and cannot move to %s", from, next), err)
		}

		updated = order
		return tx.Update(ref, []firestore.Update{{Path: "status", Value: string(next)}})
	})
	if err != nil {
		return nil, storeError("Failed to update order status", err)
	}

	return updated, nil
}

func (r *firestoreOrderRepository) WatchByUser(ctx context.Context, uid string, fn func(orders []*entity.Order)) error {
	it := r.orders(uid).OrderBy("createdAt", firestore.Desc).Snapshots(ctx)
	defer it.Stop()

	for {
		snap, err := it.Next()
		if err != nil {
			if ctx.Err() != nil || status.Code(err) == codes.Canceled || err == iterator.Done {
				return nil
			}
			return storeError("Order subscription failed", err)
		}

		docs, err := snap.Documents.GetAll()
		if err != nil {
			return storeError("Failed to read order snapshot", err)
		}
		orders, err := decodeOrders(docs)
		if err != nil {
			return err
		}
		fn(orders)
	}
}

func (r *firestoreOrderRepository) NormalizeLegacyStatuses(ctx context.Context) (int, error) {
	docs, err := r.client.CollectionGroup(ordersCollection).Documents(ctx).GetAll()
	if err != nil {
		return 0, storeError("Failed to scan orders", err)
	}

	bw := r.client.BulkWriter(ctx)
	var jobs []*firestore.BulkWriterJob
	for _, doc := range docs {
		raw, err := doc.DataAt("status")
		if err != nil {
			logger.Warn("Order %s has no status field, skipping", doc.Ref.Path)
			continue
		}
		st, legacy, err := entity.ParseOrderStatus(raw)
		if err != nil {
			logger.Warn("Order %s has unknown status %v, skipping", doc.Ref.Path, raw)
			continue
		}
		if !legacy {
			continue
		}

		job, err := bw.Update(doc.Ref, []firestore.Update{{Path: "status", Value: string(st)}})
		if err != nil {
			bw.End()
			return 0, storeError("Failed to queue status rewrite", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	changed := 0
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			logger.Error("Status rewrite failed: %v", err)
			continue
		}
		changed++
	}
	if changed < len(jobs) {
		return changed, errors.Internal(fmt.Sprintf("%d of %d status rewrites failed", len(jobs)-changed, len(jobs)), nil)
	}

	return changed, nil
}
