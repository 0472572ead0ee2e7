package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/gigfin/gigfin/internal/models"
	mongorepo "github.com/gigfin/gigfin/internal/repositories/mongo"
	"github.com/gigfin/gigfin/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeGigRepo struct {
	mu        sync.Mutex
	gigs      map[primitive.ObjectID]models.Gig
	createErr error
	clock     time.Time
}

func newFakeGigRepo() *fakeGigRepo {
	return &fakeGigRepo{
		gigs:  make(map[primitive.ObjectID]models.Gig),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeGigRepo) Create(ctx context.Context, g *models.Gig) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if g.Title == "" || g.UserID == "" || g.Type == "" {
		return fmt.Errorf("%w: missing required field", utils.ErrInvalid)
	}
	g.ID = primitive.NewObjectID()
	r.clock = r.clock.Add(time.Minute)
	g.CreatedAt = r.clock
	g.UpdatedAt = r.clock
	r.gigs[g.ID] = *g
	return nil
}

func (r *fakeGigRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	g, ok := r.gigs[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &g, nil
}

func (r *fakeGigRepo) ListByOwner(ctx context.Context, userID string) ([]models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Gig
	for _, g := range r.gigs {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeGigRepo) ListByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Gig
	for _, id := range ids {
		if g, ok := r.gigs[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (r *fakeGigRepo) Search(ctx context.Context, q mongorepo.GigQuery) ([]models.Gig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Gig
	for _, g := range r.gigs {
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeApplicationRepo struct {
	mu        sync.Mutex
	apps      map[primitive.ObjectID]models.Application
	createErr error
	clock     time.Time
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		apps:  make(map[primitive.ObjectID]models.Application),
		clock: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	if a.Seeker == "" || a.Name == "" || a.Gig.IsZero() {
		return fmt.Errorf("%w: seeker, name and gig are required", utils.ErrInvalid)
	}
	if a.Status == "" {
		a.Status = models.StatusApplied
	}
	if !models.ValidStatus(a.Status) {
		return fmt.Errorf("%w: unknown status %q", utils.ErrInvalid, a.Status)
	}
	a.ID = primitive.NewObjectID()
	r.clock = r.clock.Add(time.Minute)
	a.AppliedAt = r.clock
	a.UpdatedAt = r.clock
	r.apps[a.ID] = *a
	return nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &a, nil
}

func (r *fakeApplicationRepo) ListBySeeker(ctx context.Context, seekerID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.Seeker == seekerID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r *fakeApplicationRepo) ListByGig(ctx context.Context, gigID primitive.ObjectID) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.apps {
		if a.Gig == gigID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (r *fakeApplicationRepo) ScheduleInterview(ctx context.Context, id primitive.ObjectID, iv models.Interview) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[id]
	if !ok {
		return utils.ErrNotFound
	}
	a.Status = models.StatusInterview
	a.Interview = &iv
	a.UpdatedAt = time.Now().UTC()
	r.apps[id] = a
	return nil
}

func (r *fakeApplicationRepo) CountsByGig(ctx context.Context, gigIDs []primitive.ObjectID) (map[primitive.ObjectID]models.ApplicationCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	wanted := map[primitive.ObjectID]struct{}{}
	for _, id := range gigIDs {
		wanted[id] = struct{}{}
	}
	out := map[primitive.ObjectID]models.ApplicationCounts{}
	for _, a := range r.apps {
		if _, ok := wanted[a.Gig]; !ok {
			continue
		}
		c := out[a.Gig]
		c.Total++
		if a.Status == models.StatusApplied {
			c.New++
		}
		out[a.Gig] = c
	}
	return out, nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]models.User)}
}

func (r *fakeUserRepo) GetByUserID(ctx context.Context, userID string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, utils.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByUserIDs(ctx context.Context, userIDs []string) ([]models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, id := range userIDs {
		if u, ok := r.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Upsert(ctx context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.UserID] = *u
	return nil
}

type fakeUploader struct {
	mu      sync.Mutex
	uploads []string
	err     error
}

func (u *fakeUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.err != nil {
		return "", u.err
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", err
	}
	u.uploads = append(u.uploads, objectName)
	return "https://storage.googleapis.com/test-bucket/" + objectName, nil
}

func (u *fakeUploader) count() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.uploads)
}
