package services

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"time"

	"github.com/gigfin/gigfin/internal/models"
	mongorepo "github.com/gigfin/gigfin/internal/repositories/mongo"
	pgrepo "github.com/gigfin/gigfin/internal/repositories/postgres"
	"github.com/gigfin/gigfin/internal/storage"
	"github.com/gigfin/gigfin/internal/utils"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ApplicationService interface {
	Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error)
	ListBySeeker(ctx context.Context, seekerID string) ([]models.ApplicationWithGig, error)
	ListByGig(ctx context.Context, gigID string) ([]models.ApplicationWithSeeker, error)
	ScheduleInterview(ctx context.Context, applicationID string, date time.Time, message string) (*models.Application, error)
}

// CreateApplicationInput binds the multipart form of POST /applications.
// Resume, GigID, SeekerID and Name are mandatory; the rest is optional
// self-reported data with defaulted placeholder text.
type CreateApplicationInput struct {
	SeekerID string
	GigID    string
	Name     string

	Age            int
	Gender         string
	DisabilityType string

	CoverLetter         string
	AccommodationNeeded string

	Resume      io.Reader
	FileName    string
	ContentType string
}

type applicationService struct {
	apps     mongorepo.ApplicationRepository
	gigs     mongorepo.GigRepository
	users    pgrepo.UserRepository
	uploader storage.Uploader
}

func NewApplicationService(
	apps mongorepo.ApplicationRepository,
	gigs mongorepo.GigRepository,
	users pgrepo.UserRepository,
	uploader storage.Uploader,
) ApplicationService {
	return &applicationService{apps: apps, gigs: gigs, users: users, uploader: uploader}
}

// Create uploads the resume to the media store, then persists the application
// with status "applied". If the upload succeeds and the insert fails, the
// stored object is orphaned; there is no compensating cleanup.
func (s *applicationService) Create(ctx context.Context, in CreateApplicationInput) (*models.Application, error) {
	const op = "ApplicationService.Create"

	if in.Resume == nil || in.GigID == "" || in.SeekerID == "" || in.Name == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "resume, gig, seeker and name are required", nil)
	}
	gigID, err := primitive.ObjectIDFromHex(in.GigID)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid gig id", err)
	}

	if _, err := s.gigs.GetByID(ctx, gigID); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "gig not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to resolve gig", err)
	}

	if s.uploader == nil {
		return nil, utils.E(utils.CodeInternal, op, "uploader is not configured", nil)
	}

	ext := filepath.Ext(in.FileName)
	objectName := "applications/" + in.SeekerID + "/" + uuid.NewString() + ext
	resumeURL, err := s.uploader.Upload(ctx, objectName, in.ContentType, in.Resume)
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "failed to upload resume", err)
	}

	coverLetter := in.CoverLetter
	if coverLetter == "" {
		coverLetter = models.DefaultCoverLetter
	}
	accommodation := in.AccommodationNeeded
	if accommodation == "" {
		accommodation = models.DefaultAccommodationNeeded
	}

	app := &models.Application{
		Seeker:              in.SeekerID,
		Gig:                 gigID,
		Name:                in.Name,
		Age:                 in.Age,
		Gender:              in.Gender,
		DisabilityType:      in.DisabilityType,
		CoverLetter:         coverLetter,
		AccommodationNeeded: accommodation,
		ResumeURL:           resumeURL,
		Status:              models.StatusApplied,
	}

	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, utils.ErrInvalid) {
			return nil, utils.E(utils.CodeInvalidArgument, op, err.Error(), err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to persist application", err)
	}
	return app, nil
}

// ListBySeeker returns the seeker's applications newest-applied-first, each
// expanded with the full gig record via one batched gig fetch.
func (s *applicationService) ListBySeeker(ctx context.Context, seekerID string) ([]models.ApplicationWithGig, error) {
	const op = "ApplicationService.ListBySeeker"

	if seekerID == "" {
		return nil, utils.E(utils.CodeUnauthorized, op, "missing seeker id", nil)
	}

	apps, err := s.apps.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	gigIDs := make([]primitive.ObjectID, 0, len(apps))
	seen := map[primitive.ObjectID]struct{}{}
	for _, a := range apps {
		if _, ok := seen[a.Gig]; !ok {
			seen[a.Gig] = struct{}{}
			gigIDs = append(gigIDs, a.Gig)
		}
	}

	gigs, err := s.gigs.ListByIDs(ctx, gigIDs)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to expand gigs", err)
	}
	byID := make(map[primitive.ObjectID]*models.Gig, len(gigs))
	for i := range gigs {
		byID[gigs[i].ID] = &gigs[i]
	}

	out := make([]models.ApplicationWithGig, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.ApplicationWithGig{
			Application: a,
			GigDetails:  byID[a.Gig],
		})
	}
	return out, nil
}

// ListByGig returns a gig's applications newest-applied-first, each expanded
// best-effort with the seeker's user record. Seeker ids are opaque external
// ids, so the join may not attach anything; that is not an error.
func (s *applicationService) ListByGig(ctx context.Context, gigID string) ([]models.ApplicationWithSeeker, error) {
	const op = "ApplicationService.ListByGig"

	oid, err := primitive.ObjectIDFromHex(gigID)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid gig id", err)
	}

	apps, err := s.apps.ListByGig(ctx, oid)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to list applications", err)
	}

	seekerIDs := make([]string, 0, len(apps))
	seen := map[string]struct{}{}
	for _, a := range apps {
		if _, ok := seen[a.Seeker]; !ok {
			seen[a.Seeker] = struct{}{}
			seekerIDs = append(seekerIDs, a.Seeker)
		}
	}

	byID := map[string]*models.User{}
	if users, err := s.users.GetByUserIDs(ctx, seekerIDs); err == nil {
		for i := range users {
			byID[users[i].UserID] = &users[i]
		}
	}

	out := make([]models.ApplicationWithSeeker, 0, len(apps))
	for _, a := range apps {
		out = append(out, models.ApplicationWithSeeker{
			Application:   a,
			SeekerDetails: byID[a.Seeker],
		})
	}
	return out, nil
}

// ScheduleInterview moves an application to status "interview" and attaches
// the interview details. It does not look at the current status; repeating it
// simply overwrites the sub-record.
func (s *applicationService) ScheduleInterview(ctx context.Context, applicationID string, date time.Time, message string) (*models.Application, error) {
	const op = "ApplicationService.ScheduleInterview"

	if date.IsZero() || message == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "interview date and message are required", nil)
	}
	oid, err := primitive.ObjectIDFromHex(applicationID)
	if err != nil {
		return nil, utils.E(utils.CodeInvalidArgument, op, "invalid application id", err)
	}

	app, err := s.apps.GetByID(ctx, oid)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get application", err)
	}

	iv := models.Interview{Date: date.UTC(), Message: message}
	if err := s.apps.ScheduleInterview(ctx, oid, iv); err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeNotFound, op, "application not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to schedule interview", err)
	}

	app.Status = models.StatusInterview
	app.Interview = &iv
	app.UpdatedAt = time.Now().UTC()
	return app, nil
}
