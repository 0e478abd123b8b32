package mongo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

const collectionProfiles = "profiles"

type ProfileRepository struct {
	col *mongo.Collection
}

func NewProfileRepository(db *mongo.Database) *ProfileRepository {
	return &ProfileRepository{col: db.Collection(collectionProfiles)}
}

// Create inserts a new profile. The _id is the user id, so the primary key
// index doubles as the one-profile-per-identity constraint; a duplicate
// surfaces as domain.ErrProfileExists.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, profile)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrProfileExists
		}
		return err
	}
	return nil
}

// FindByID retrieves a profile by user id.
func (r *ProfileRepository) FindByID(ctx context.Context, id string) (*domain.Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var profile domain.Profile
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindByIDs retrieves multiple profiles keyed by id.
func (r *ProfileRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Profile, error) {
	out := make(map[string]*domain.Profile, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var profile domain.Profile
		if err := cur.Decode(&profile); err != nil {
			return nil, err
		}
		out[profile.ID] = &profile
	}
	return out, cur.Err()
}

// UpdateDetails replaces the name and role payload of an existing profile.
// The role field is deliberately not part of the update document.
func (r *ProfileRepository) UpdateDetails(ctx context.Context, profile *domain.Profile) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"full_name": profile.FullName}
	switch profile.Role {
	case domain.RoleMarshal:
		set["marshal"] = profile.Marshal
	case domain.RoleManager:
		set["manager"] = profile.Manager
	}

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": profile.ID}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
