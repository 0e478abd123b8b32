package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/marshalhq/marketplace-system/internal/core/domain"
)

const (
	collectionApplications = "applications"
	collectionDecisions    = "application_events"
)

type ApplicationRepository struct {
	col *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{col: db.Collection(collectionApplications)}
}

// Create inserts a new application. The unique (job_id, applicant_id) index
// is the hard guarantee against duplicate applications; a duplicate surfaces
// as domain.ErrAlreadyApplied.
func (r *ApplicationRepository) Create(ctx context.Context, app *domain.Application) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, app)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAlreadyApplied
		}
		return err
	}
	return nil
}

// FindByID retrieves an application by id.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.Application
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// FindByJobAndApplicant retrieves the single application for a pair.
func (r *ApplicationRepository) FindByJobAndApplicant(ctx context.Context, jobID, applicantID string) (*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var app domain.Application
	err := r.col.FindOne(ctx, bson.M{"job_id": jobID, "applicant_id": applicantID}).Decode(&app)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

// SetStatusIfPending conditionally flips a pending application to status.
// A zero matched count means the row was no longer pending.
func (r *ApplicationRepository) SetStatusIfPending(ctx context.Context, id string, status domain.ApplicationStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": string(domain.ApplicationPending)}
	update := bson.M{"$set": bson.M{"status": string(status)}}

	res, err := r.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, err
	}
	return res.MatchedCount > 0, nil
}

// ListByJob returns all applications for a job, applied_at ascending — the
// manager review order (earliest applicant first).
func (r *ApplicationRepository) ListByJob(ctx context.Context, jobID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"job_id": jobID}, bson.D{{Key: "applied_at", Value: 1}})
}

// ListByApplicant returns all applications by a marshal, applied_at
// descending (most recent first).
func (r *ApplicationRepository) ListByApplicant(ctx context.Context, applicantID string) ([]*domain.Application, error) {
	return r.list(ctx, bson.M{"applicant_id": applicantID}, bson.D{{Key: "applied_at", Value: -1}})
}

func (r *ApplicationRepository) list(ctx context.Context, filter bson.M, sort bson.D) ([]*domain.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(sort))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var apps []*domain.Application
	for cur.Next(ctx) {
		var app domain.Application
		if err := cur.Decode(&app); err != nil {
			return nil, err
		}
		apps = append(apps, &app)
	}
	return apps, cur.Err()
}

// EnsureIndexes creates necessary indexes on the applications collection.
// The unique compound index owns the one-application-per-pair constraint.
func (r *ApplicationRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "applicant_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "applicant_id", Value: 1}, {Key: "applied_at", Value: -1}}},
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "applied_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// DecisionEventRepository implements the accept/decline audit trail.
type DecisionEventRepository struct {
	db *mongo.Database
}

func NewDecisionEventRepository(db *mongo.Database) *DecisionEventRepository {
	return &DecisionEventRepository{db: db}
}

// InsertDecisionEvent persists a decision to the application_events collection.
func (r *DecisionEventRepository) InsertDecisionEvent(ctx context.Context, event *domain.DecisionEvent) error {
	doc := bson.M{
		"application_id": event.ApplicationID,
		"job_id":         event.JobID,
		"applicant_id":   event.ApplicantID,
		"decided_by":     event.DecidedBy,
		"status":         string(event.Status),
		"decided_at":     event.DecidedAt.UTC(),
		"recorded_at":    time.Now().UTC(),
	}

	_, err := r.db.Collection(collectionDecisions).InsertOne(ctx, doc)
	return err
}
