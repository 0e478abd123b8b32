package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
	"github.com/marshalhq/marketplace-system/internal/core/ports"
)

const collectionJobs = "jobs"

type JobRepository struct {
	col *mongo.Collection
}

func NewJobRepository(db *mongo.Database) *JobRepository {
	return &JobRepository{col: db.Collection(collectionJobs)}
}

// Create inserts a new job document.
func (r *JobRepository) Create(ctx context.Context, job *domain.Job) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, job)
	return err
}

// FindByID retrieves a job by id.
func (r *JobRepository) FindByID(ctx context.Context, id string) (*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var job domain.Job
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&job)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

// FindByIDs retrieves multiple jobs keyed by id. Missing ids are simply absent
// from the result.
func (r *JobRepository) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Job, error) {
	out := make(map[string]*domain.Job, len(ids))
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
		var job domain.Job
		if err := cur.Decode(&job); err != nil {
			return nil, err
		}
		out[job.ID] = &job
	}
	return out, cur.Err()
}

// List returns jobs matching filter. Live-status listings are sorted
// urgent-first then newest-first; owner listings newest-first.
func (r *JobRepository) List(ctx context.Context, filter ports.ListJobsFilter) ([]*domain.Job, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	sort := bson.D{{Key: "created_at", Value: -1}}
	if filter.PostedBy != "" {
		query["posted_by"] = filter.PostedBy
	}
	if filter.Status != "" {
		query["status"] = filter.Status
		if filter.Status == string(domain.JobStatusLive) {
			sort = bson.D{{Key: "is_urgent", Value: -1}, {Key: "created_at", Value: -1}}
		}
	}

	cur, err := r.col.Find(ctx, query, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []*domain.Job
	for cur.Next(ctx) {
		var job domain.Job
		if err := cur.Decode(&job); err != nil {
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	return jobs, cur.Err()
}

// ClaimSlot consumes one slot on a live job with remaining capacity. The
// capacity predicate and the increment are a single conditional update, so
// concurrent accepts serialize on the document: at most slots_needed claims
// ever succeed. The same update flips status to filled when the last slot is
// taken. Returns domain.ErrAllSlotsFilled if no open slot remained.
func (r *JobRepository) ClaimSlot(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":    jobID,
		"status": string(domain.JobStatusLive),
		"$expr":  bson.M{"$lt": bson.A{"$slots_filled", "$slots_needed"}},
	}
	update := bson.A{
		bson.M{"$set": bson.M{
			"slots_filled": bson.M{"$add": bson.A{"$slots_filled", 1}},
			"status": bson.M{"$cond": bson.A{
				bson.M{"$gte": bson.A{
					bson.M{"$add": bson.A{"$slots_filled", 1}},
					"$slots_needed",
				}},
				string(domain.JobStatusFilled),
				"$status",
			}},
		}},
	}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrAllSlotsFilled
	}
	return nil
}

// ReleaseSlot returns a previously claimed slot, reopening a filled job. Used
// to compensate when the application flip after a claim loses a race.
func (r *JobRepository) ReleaseSlot(ctx context.Context, jobID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{
		"_id":          jobID,
		"slots_filled": bson.M{"$gt": 0},
	}
	update := bson.A{
		bson.M{"$set": bson.M{
			"slots_filled": bson.M{"$subtract": bson.A{"$slots_filled", 1}},
			"status": bson.M{"$cond": bson.A{
				bson.M{"$eq": bson.A{"$status", string(domain.JobStatusFilled)}},
				string(domain.JobStatusLive),
				"$status",
			}},
		}},
	}

	_, err := r.col.UpdateOne(ctx, filter, update)
	return err
}

// EnsureIndexes creates necessary indexes on the jobs collection.
func (r *JobRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "posted_by", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "is_urgent", Value: -1}, {Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
