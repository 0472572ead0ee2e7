package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gigfin/gigfin/internal/models"
	"github.com/gigfin/gigfin/internal/utils"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type appFixture struct {
	gigs     *fakeGigRepo
	apps     *fakeApplicationRepo
	users    *fakeUserRepo
	uploader *fakeUploader
	svc      ApplicationService
	gigID    primitive.ObjectID
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	f := &appFixture{
		gigs:     newFakeGigRepo(),
		apps:     newFakeApplicationRepo(),
		users:    newFakeUserRepo(),
		uploader: &fakeUploader{},
	}
	f.svc = NewApplicationService(f.apps, f.gigs, f.users, f.uploader)

	g := testGig("Weekend barista")
	g.UserID = "hirer_1"
	if err := f.gigs.Create(context.Background(), g); err != nil {
		t.Fatalf("seed gig: %v", err)
	}
	f.gigID = g.ID
	return f
}

func (f *appFixture) input() CreateApplicationInput {
	return CreateApplicationInput{
		SeekerID:    "seeker_1",
		GigID:       f.gigID.Hex(),
		Name:        "Amina",
		Resume:      strings.NewReader("%PDF-1.4 fake"),
		FileName:    "cv.pdf",
		ContentType: "application/pdf",
	}
}

func TestApplicationCreateDefaultsAndStatus(t *testing.T) {
	f := newAppFixture(t)

	app, err := f.svc.Create(context.Background(), f.input())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if app.Status != models.StatusApplied {
		t.Errorf("status = %q, want applied", app.Status)
	}
	if app.CoverLetter != models.DefaultCoverLetter {
		t.Errorf("cover letter = %q, want placeholder", app.CoverLetter)
	}
	if app.AccommodationNeeded != models.DefaultAccommodationNeeded {
		t.Errorf("accommodation = %q, want placeholder", app.AccommodationNeeded)
	}
	if !strings.HasPrefix(app.ResumeURL, "https://storage.googleapis.com/test-bucket/applications/seeker_1/") {
		t.Errorf("resume url = %q", app.ResumeURL)
	}
	if !strings.HasSuffix(app.ResumeURL, ".pdf") {
		t.Errorf("resume url lost extension: %q", app.ResumeURL)
	}
}

func TestApplicationCreateMissingFieldsShortCircuits(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	cases := []struct {
		name string
		mut  func(in *CreateApplicationInput)
	}{
		{"no resume", func(in *CreateApplicationInput) { in.Resume = nil }},
		{"no gig", func(in *CreateApplicationInput) { in.GigID = "" }},
		{"no seeker", func(in *CreateApplicationInput) { in.SeekerID = "" }},
		{"no name", func(in *CreateApplicationInput) { in.Name = "" }},
	}
	for _, tc := range cases {
		in := f.input()
		tc.mut(&in)
		_, err := f.svc.Create(ctx, in)
		if !utils.IsCode(err, utils.CodeInvalidArgument) {
			t.Errorf("%s: err = %v, want INVALID_ARGUMENT", tc.name, err)
		}
	}

	if f.uploader.count() != 0 {
		t.Error("invalid input still reached the media store")
	}
	if len(f.apps.apps) != 0 {
		t.Error("invalid input still reached the persistence layer")
	}
}

func TestApplicationCreateUnknownGig(t *testing.T) {
	f := newAppFixture(t)

	in := f.input()
	in.GigID = primitive.NewObjectID().Hex()
	_, err := f.svc.Create(context.Background(), in)
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if f.uploader.count() != 0 {
		t.Error("upload happened for a nonexistent gig")
	}
}

func TestApplicationCreateUploadFailure(t *testing.T) {
	f := newAppFixture(t)
	f.uploader.err = errors.New("bucket unreachable")

	_, err := f.svc.Create(context.Background(), f.input())
	if !utils.IsCode(err, utils.CodeUnavailable) {
		t.Fatalf("err = %v, want UNAVAILABLE", err)
	}
	if len(f.apps.apps) != 0 {
		t.Error("application persisted despite failed upload")
	}
}

func TestScheduleInterviewNotFound(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.svc.ScheduleInterview(context.Background(),
		primitive.NewObjectID().Hex(),
		time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC),
		"See you Tuesday")
	if !utils.IsCode(err, utils.CodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
	if len(f.apps.apps) != 0 {
		t.Error("schedule-interview created a record")
	}
}

func TestScheduleInterviewMissingFieldsLeavesStatus(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.input())
	if err != nil {
		t.Fatal(err)
	}

	if _, err := f.svc.ScheduleInterview(ctx, app.ID.Hex(), time.Time{}, "msg"); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("zero date: err = %v, want INVALID_ARGUMENT", err)
	}
	if _, err := f.svc.ScheduleInterview(ctx, app.ID.Hex(), time.Now(), ""); !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Errorf("empty message: err = %v, want INVALID_ARGUMENT", err)
	}

	stored, err := f.apps.GetByID(ctx, app.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.Status != models.StatusApplied || stored.Interview != nil {
		t.Errorf("status mutated by failed validation: %+v", stored)
	}
}

func TestScheduleInterviewOverwrites(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	app, err := f.svc.Create(ctx, f.input())
	if err != nil {
		t.Fatal(err)
	}

	first := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if _, err := f.svc.ScheduleInterview(ctx, app.ID.Hex(), first, "round one"); err != nil {
		t.Fatal(err)
	}

	second := time.Date(2026, 3, 17, 14, 0, 0, 0, time.UTC)
	updated, err := f.svc.ScheduleInterview(ctx, app.ID.Hex(), second, "round two")
	if err != nil {
		t.Fatal(err)
	}
	if updated.Status != models.StatusInterview {
		t.Errorf("status = %q, want interview", updated.Status)
	}
	if updated.Interview == nil || !updated.Interview.Date.Equal(second) || updated.Interview.Message != "round two" {
		t.Errorf("interview sub-record not overwritten: %+v", updated.Interview)
	}
}

func TestListBySeekerExpandsGig(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	if _, err := f.svc.Create(ctx, f.input()); err != nil {
		t.Fatal(err)
	}

	out, err := f.svc.ListBySeeker(ctx, "seeker_1")
	if err != nil {
		t.Fatalf("ListBySeeker: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("got %d applications, want 1", len(out))
	}
	if out[0].GigDetails == nil || out[0].GigDetails.Title != "Weekend barista" {
		t.Errorf("gig expansion missing: %+v", out[0].GigDetails)
	}
}

func TestListByGigBestEffortSeekerExpansion(t *testing.T) {
	f := newAppFixture(t)
	ctx := context.Background()

	// one seeker with a profile row, one without
	if err := f.users.Upsert(ctx, &models.User{UserID: "seeker_1", Name: "Amina", Role: models.RoleSeeker}); err != nil {
		t.Fatal(err)
	}
	if _, err := f.svc.Create(ctx, f.input()); err != nil {
		t.Fatal(err)
	}
	in := f.input()
	in.SeekerID = "seeker_2"
	in.Name = "Brian"
	if _, err := f.svc.Create(ctx, in); err != nil {
		t.Fatal(err)
	}

	out, err := f.svc.ListByGig(ctx, f.gigID.Hex())
	if err != nil {
		t.Fatalf("ListByGig: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d applications, want 2", len(out))
	}
	// newest applied first
	if out[0].Name != "Brian" || out[1].Name != "Amina" {
		t.Errorf("ordering wrong: %q then %q", out[0].Name, out[1].Name)
	}
	if out[0].SeekerDetails != nil {
		t.Error("unknown seeker must stay unexpanded")
	}
	if out[1].SeekerDetails == nil || out[1].SeekerDetails.Name != "Amina" {
		t.Errorf("seeker expansion missing: %+v", out[1].SeekerDetails)
	}
}

func TestListByGigInvalidID(t *testing.T) {
	f := newAppFixture(t)

	_, err := f.svc.ListByGig(context.Background(), "###")
	if !utils.IsCode(err, utils.CodeInvalidArgument) {
		t.Fatalf("err = %v, want INVALID_ARGUMENT", err)
	}
}

// Full lifecycle: hirer posts a gig, seeker applies, owner counts move with
// the interview transition.
func TestGigApplicationLifecycle(t *testing.T) {
	ctx := context.Background()
	gigs := newFakeGigRepo()
	apps := newFakeApplicationRepo()
	users := newFakeUserRepo()
	uploader := &fakeUploader{}

	gigSvc := NewGigService(gigs, apps)
	appSvc := NewApplicationService(apps, gigs, users, uploader)

	g, err := gigSvc.Create(ctx, "hirer_u1", testGig("Junior tailor"))
	if err != nil {
		t.Fatal(err)
	}

	app, err := appSvc.Create(ctx, CreateApplicationInput{
		SeekerID:    "seeker_s1",
		GigID:       g.ID.Hex(),
		Name:        "Wanjiru",
		Resume:      strings.NewReader("resume bytes"),
		FileName:    "resume.pdf",
		ContentType: "application/pdf",
	})
	if err != nil {
		t.Fatal(err)
	}

	mine, err := gigSvc.ListMine(ctx, "hirer_u1")
	if err != nil {
		t.Fatal(err)
	}
	if len(mine) != 1 || mine[0].ApplicationsCount != 1 || mine[0].NewApplications != 1 {
		t.Fatalf("after apply: counts = %+v", mine)
	}

	date := time.Date(2026, 4, 2, 10, 30, 0, 0, time.UTC)
	if _, err := appSvc.ScheduleInterview(ctx, app.ID.Hex(), date, "Bring your portfolio"); err != nil {
		t.Fatal(err)
	}

	byGig, err := appSvc.ListByGig(ctx, g.ID.Hex())
	if err != nil {
		t.Fatal(err)
	}
	if len(byGig) != 1 {
		t.Fatalf("got %d applications, want 1", len(byGig))
	}
	if byGig[0].Status != models.StatusInterview {
		t.Errorf("status = %q, want interview", byGig[0].Status)
	}
	if byGig[0].Interview == nil || !byGig[0].Interview.Date.Equal(date) || byGig[0].Interview.Message != "Bring your portfolio" {
		t.Errorf("interview = %+v", byGig[0].Interview)
	}

	mine, err = gigSvc.ListMine(ctx, "hirer_u1")
	if err != nil {
		t.Fatal(err)
	}
	if mine[0].ApplicationsCount != 1 || mine[0].NewApplications != 0 {
		t.Errorf("after interview: counts = %d/%d, want 1/0", mine[0].ApplicationsCount, mine[0].NewApplications)
	}
}
