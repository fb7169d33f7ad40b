package repository

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"gamerverse/internal/domain/entity"
	"gamerverse/internal/domain/repository"
	"gamerverse/pkg/errors"
)

type firestoreGameRepository struct {
	client *firestore.Client
}

func NewFirestoreGameRepository(client *firestore.Client) repository.GameRepository {
	return &firestoreGameRepository{
		client: client,
	}
}

func (r *firestoreGameRepository) Create(ctx context.Context, game *entity.Game) error {
	if game.ID == "" {
		game.ID = r.client.Collection(gamesCollection).NewDoc().ID
	}

	now := time.Now()
	if game.CreatedAt.IsZero() {
		game.CreatedAt = now
	}
	game.UpdatedAt = now

	_, err := r.client.Collection(gamesCollection).Doc(game.ID).Set(ctx, game)
	if err != nil {
		return storeError("Failed to create game", err)
	}

	return nil
}

func (r *firestoreGameRepository) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	doc, err := r.client.Collection(gamesCollection).Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, errors.NotFound("Game", err)
		}
		return nil, storeError("Failed to get game", err)
	}

	return decodeGame(doc)
}

func (r *firestoreGameRepository) GetBySlug(ctx context.Context, slug string) (*entity.Game, error) {
	iter := r.client.Collection(gamesCollection).Where("slug", "==", slug).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, errors.NotFound("Game", nil)
		}
		return nil, storeError("Failed to query game", err)
	}

	return decodeGame(doc)
}

func (r *firestoreGameRepository) List(ctx context.Context, filter repository.GameFilter, limit, offset int) ([]*entity.Game, int64, error) {
	query := r.client.Collection(gamesCollection).OrderBy("title", firestore.Asc)
	if filter.Tag != "" {
		query = query.Where("tags", "array-contains", filter.Tag)
	}

	// Firestore has no cheap count with offset paging; the catalog is small.
	allDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, storeError("Failed to count games", err)
	}
	total := int64(len(allDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	games := make([]*entity.Game, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, storeError("Failed to iterate games", err)
		}

		game, err := decodeGame(doc)
		if err != nil {
			return nil, 0, err
		}
		games = append(games, game)
	}

	return games, total, nil
}

func (r *firestoreGameRepository) Update(ctx context.Context, game *entity.Game) error {
	game.UpdatedAt = time.Now()

	_, err := r.client.Collection(gamesCollection).Doc(game.ID).Set(ctx, game)
	if err != nil {
		return storeError("Failed to update game", err)
	}

	return nil
}

func (r *firestoreGameRepository) Delete(ctx context.Context, id string) error {
	_, err := r.client.Collection(gamesCollection).Doc(id).Delete(ctx)
	if err != nil {
		return storeError("Failed to delete game", err)
	}

	return nil
}

func decodeGame(doc *firestore.DocumentSnapshot) (*entity.Game, error) {
	var game entity.Game
	if err := doc.DataTo(&game); err != nil {
		return nil, errors.Internal("Failed to parse game data", err)
	}
	game.ID = doc.Ref.ID
	return &game, nil
}
