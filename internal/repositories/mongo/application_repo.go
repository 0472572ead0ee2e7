package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gigfin/gigfin/internal/models"
	"github.com/gigfin/gigfin/internal/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *models.Application) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error)
	ListByGig(ctx context.Context, gigID primitive.ObjectID) ([]models.Application, error)
	ScheduleInterview(ctx context.Context, id primitive.ObjectID, iv models.Interview) error
	CountsByGig(ctx context.Context, gigIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ApplicationCounts, error)
}

type applicationRepo struct {
	col *mongo.Collection
}

func NewApplicationRepo(db *mongo.Database) ApplicationRepository {
	return &applicationRepo{col: db.Collection("applications")}
}

func (r *applicationRepo) Create(ctx context.Context, a *models.Application) error {
	if a.Seeker == "" || a.Name == "" || a.Gig.IsZero() {
		return fmt.Errorf("%w: seeker, name and gig are required", utils.ErrInvalid)
	}
	if a.Status == "" {
		a.Status = models.StatusApplied
	}
	if !models.ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", utils.ErrInvalid, a.Status)
	}
	now := time.Now().UTC()
	if a.AppliedAt.IsZero() {
		a.AppliedAt = now
	}
	a.UpdatedAt = now
	if a.ID.IsZero() {
		a.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, a)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	var a models.Application
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &a, err
}

func (r *applicationRepo) ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error) {
	return r.find(ctx, bson.M{"seeker": seekerID})
}

func (r *applicationRepo) ListByGig(ctx context.Context, gigID primitive.ObjectID) ([]models.Application, error) {
	return r.find(ctx, bson.M{"gig": gigID})
}

func (r *applicationRepo) find(ctx context.Context, filter bson.M) ([]models.Application, error) {
	cur, err := r.col.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "applied_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Application{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ScheduleInterview re-asserts status "interview" and overwrites the interview
// sub-record. It is callable from any state; repeating it just replaces the
// previous date and message.
func (r *applicationRepo) ScheduleInterview(ctx context.Context, id primitive.ObjectID, iv models.Interview) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{
			"status":     models.StatusInterview,
			"interview":  iv,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return utils.ErrNotFound
	}
	return nil
}

// CountsByGig groups the application collection by gig in a single
// aggregation, so the owner listing never issues per-gig count queries.
// Gigs without applications are absent from the result map.
func (r *applicationRepo) CountsByGig(ctx context.Context, gigIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ApplicationCounts, error) {
	out := map[primitive.ObjectID]models.ApplicationCounts{}
	if len(gigIDs) == 0 {
		return out, nil
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"gig": bson.M{"$in": gigIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$gig",
			"total": bson.M{"$sum": 1},
			"new": bson.M{"$sum": bson.M{
				"$cond": bson.A{
					bson.M{"$eq": bson.A{"$status", string(models.StatusApplied)}},
					1,
					0,
				},
			}},
		}}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var rows []struct {
		GigID primitive.ObjectID `bson:"_id"`
		Total int64              `bson:"total"`
		New   int64              `bson:"new"`
	}
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.GigID] = models.ApplicationCounts{Total: row.Total, New: row.New}
	}
	return out, nil
}
