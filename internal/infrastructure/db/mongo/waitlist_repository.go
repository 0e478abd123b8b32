package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

const collectionWaitlist = "waitlist"

type WaitlistRepository struct {
	col *mongo.Collection
}

func NewWaitlistRepository(db *mongo.Database) *WaitlistRepository {
	return &WaitlistRepository{col: db.Collection(collectionWaitlist)}
}

// Insert stores a waitlist signup.
func (r *WaitlistRepository) Insert(ctx context.Context, entry *domain.WaitlistEntry) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, entry)
	return err
}
