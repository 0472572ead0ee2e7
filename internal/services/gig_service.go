package services

import (
	"context"
	"errors"

	"github.com/gigfin/gigfin/internal/models"
	mongorepo "github.com/gigfin/gigfin/internal/repositories/mongo"
	"github.com/gigfin/gigfin/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type GigService interface {
	Create(ctx context.Context, ownerID string, g *models.Gig) (*models.Gig, error)
	Get(ctx context.Context, id string) (*models.Gig, error)
	Search(ctx context.Context, q mongorepo.GigQuery) ([]models.Gig, error)
	ListMine(ctx context.Context, ownerID string) ([]models.GigWithCounts, error)
}

type gigService struct {
	gigs mongorepo.GigRepository
	apps mongorepo.ApplicationRepository
}

func NewGigService(gigs mongorepo.GigRepository, apps mongorepo.ApplicationRepository) GigService {
	return &gigService{gigs: gigs, apps: apps}
}

func (s *gigService) Create(ctx context.Context, ownerID string, g *models.Gig) (*models.Gig, error) {
	const op = "GigService.Create"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing owner id", nil)
	}
	g.ID = primitive.NilObjectID
	g.UserID = ownerID

	if err := s.gigs.Create(ctx, g); err != nil {
		if errors.Is(err, utils.ErrInvalid) {
			return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to create gig", err)
	}
	return g, nil
}

func (s *gigService) Get(ctx context.Context, id string) (*models.Gig, error) {
	const op = "GigService.Get"

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid gig id", err)
	}

	g, err := s.gigs.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "gig not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get gig", err)
	}
	return g, nil
}

func (s *gigService) Search(ctx context.Context, q mongorepo.GigQuery) ([]models.Gig, error) {
	const op = "GigService.Search"

	out, err := s.gigs.Search(ctx, q)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to search gigs", err)
	}
	return out, nil
}

// ListMine returns the owner's gigs newest-first, each annotated with the
// total application count and how many are still in "applied" status. Counts
// come from one aggregation over the application collection.
func (s *gigService) ListMine(ctx context.Context, ownerID string) ([]models.GigWithCounts, error) {
	const op = "GigService.ListMine"

	if ownerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing owner id", nil)
	}

	gigs, err := s.gigs.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list gigs", err)
	}

	ids := make([]primitive.ObjectID, 0, len(gigs))
	for _, g := range gigs {
		ids = append(ids, g.ID)
	}

	counts, err := s.apps.CountsByGig(ctx, ids)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to count applications", err)
	}

	out := make([]models.GigWithCounts, 0, len(gigs))
	for _, g := range gigs {
		c := counts[g.ID]
		out = append(out, models.GigWithCounts{
			Gig:               g,
			ApplicationsCount: c.Total,
			NewApplications:   c.New,
		})
	}
	return out, nil
}
