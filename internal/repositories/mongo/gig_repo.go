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

// GigQuery carries the optional search parameters of GET /gigs. Zero values
// mean "no filter"; all present filters combine with logical AND.
type GigQuery struct {
	Country  string
	State    string
	City     string
	Category string
	Types    []string // membership filter over gig type
	Search   string   // free text
	Sort     string   // newest|oldest|relevance (default newest)
}

type GigRepository interface {
	Create(ctx context.Context, g *models.Gig) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Gig, error)
	ListByOwner(ctx context.Context, userID string) ([]models.Gig, error)
	ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Gig, error)
	Search(ctx context.Context, q GigQuery) ([]models.Gig, error)
}

type gigRepo struct {
	col *mongo.Collection
}

func NewGigRepo(db *mongo.Database) GigRepository {
	return &gigRepo{col: db.Collection("gigs")}
}

// validateGig mirrors the schema's required-field set. Checked on every
// insert so an incomplete gig never reaches the collection.
func validateGig(g *models.Gig) error {
	required := []struct {
		name  string
		value string
	}{
		{"title", g.Title},
		{"company", g.Company},
		{"location_type", g.LocationType},
		{"country", g.Country},
		{"state", g.State},
		{"city", g.City},
		{"type", string(g.Type)},
		{"category", g.Category},
		{"description", g.Description},
		{"requirements", g.Requirements},
		{"responsibilities", g.Responsibilities},
		{"benefits", g.Benefits},
		{"salary", g.Salary},
		{"hours", g.Hours},
		{"deadline", g.Deadline},
		{"accommodations", g.Accommodations},
		{"user_id", g.UserID},
	}
	for _, f := range required {
		if f.value == "" {
			return fmt.Errorf("%w: missing required field %q", utils.ErrInvalid, f.name)
		}
	}
	return nil
}

func (r *gigRepo) Create(ctx context.Context, g *models.Gig) error {
	if err := validateGig(g); err != nil {
		return err
	}
	now := time.Now().UTC()
	if g.CreatedAt.IsZero() {
		g.CreatedAt = now
	}
	g.UpdatedAt = now
	if g.ID.IsZero() {
		g.ID = primitive.NewObjectID()
	}
	_, err := r.col.InsertOne(ctx, g)
	return err
}

func (r *gigRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Gig, error) {
	var g models.Gig
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&g)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, utils.ErrNotFound
	}
	return &g, err
}

func (r *gigRepo) ListByOwner(ctx context.Context, userID string) ([]models.Gig, error) {
	return r.find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
}

func (r *gigRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Gig, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *gigRepo) Search(ctx context.Context, q GigQuery) ([]models.Gig, error) {
	filter, opts := buildGigSearch(q)
	return r.find(ctx, filter, opts)
}

func (r *gigRepo) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Gig, error) {
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.Gig{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// buildGigSearch translates a GigQuery into a Mongo filter and find options.
//
// Free text normally expands to a case-insensitive substring $or across
// title/description/category/company/city. Sorting by relevance switches to
// the $text index ranked by textScore instead; relevance without a search
// term falls back to newest-first.
func buildGigSearch(q GigQuery) (bson.M, *options.FindOptions) {
	filter := bson.M{}

	if q.Country != "" {
		filter["country"] = q.Country
	}
	if q.State != "" {
		filter["state"] = q.State
	}
	if q.City != "" {
		filter["city"] = q.City
	}
	if q.Category != "" {
		filter["category"] = q.Category
	}
	if len(q.Types) > 0 {
		filter["type"] = bson.M{"$in": q.Types}
	}

	textSearch := q.Sort == "relevance" && q.Search != ""

	if q.Search != "" && !textSearch {
		re := primitive.Regex{Pattern: q.Search, Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"description": re},
			bson.M{"category": re},
			bson.M{"company": re},
			bson.M{"city": re},
		}
	}

	opts := options.Find()
	switch {
	case textSearch:
		filter["$text"] = bson.M{"$search": q.Search}
		opts.SetProjection(bson.M{"score": bson.M{"$meta": "textScore"}})
		opts.SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})
	case q.Sort == "oldest":
		opts.SetSort(bson.D{{Key: "created_at", Value: 1}})
	default:
		// newest, relevance-without-search, and unset all land here
		opts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	return filter, opts
}
