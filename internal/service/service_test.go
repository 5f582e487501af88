package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"feedback-be/internal/domain"
	"feedback-be/pkg/redis"
)

func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	mr := miniredis.RunT(t)

	client, err := redis.NewClient("redis://"+mr.Addr(), "test", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return client
}

// fakeWorkshopRepo is an in-memory WorkshopRepository tracking call counts.
type fakeWorkshopRepo struct {
	workshops      map[string]*domain.Workshop
	getByLinkCalls int
	getByIDCalls   int
}

func newFakeWorkshopRepo(workshops ...*domain.Workshop) *fakeWorkshopRepo {
	repo := &fakeWorkshopRepo{workshops: make(map[string]*domain.Workshop)}
	for _, w := range workshops {
		repo.workshops[w.ID] = w
	}
	return repo
}

func (r *fakeWorkshopRepo) Create(_ context.Context, workshop *domain.Workshop) error {
	for _, w := range r.workshops {
		if w.PublicLink == workshop.PublicLink {
			return domain.ErrLinkTaken
		}
	}
	workshop.ID = fmt.Sprintf("ws-%d", len(r.workshops)+1)
	r.workshops[workshop.ID] = workshop
	return nil
}

func (r *fakeWorkshopRepo) GetByID(_ context.Context, id string) (*domain.Workshop, error) {
	r.getByIDCalls++
	if w, ok := r.workshops[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeWorkshopRepo) GetByLink(_ context.Context, link string) (*domain.Workshop, error) {
	r.getByLinkCalls++
	for _, w := range r.workshops {
		if w.PublicLink == link {
			copied := *w
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeWorkshopRepo) ListByAdmin(_ context.Context, adminID string) ([]domain.Workshop, error) {
	var out []domain.Workshop
	for _, w := range r.workshops {
		if w.AdminID == adminID {
			out = append(out, *w)
		}
	}
	return out, nil
}

func (r *fakeWorkshopRepo) ListAll(_ context.Context) ([]domain.Workshop, error) {
	var out []domain.Workshop
	for _, w := range r.workshops {
		out = append(out, *w)
	}
	return out, nil
}

func (r *fakeWorkshopRepo) Update(_ context.Context, workshop *domain.Workshop) error {
	if _, ok := r.workshops[workshop.ID]; !ok {
		return domain.ErrWorkshopNotFound
	}
	copied := *workshop
	r.workshops[workshop.ID] = &copied
	return nil
}

func (r *fakeWorkshopRepo) SetActive(_ context.Context, id string, active bool) error {
	w, ok := r.workshops[id]
	if !ok {
		return domain.ErrWorkshopNotFound
	}
	w.IsActive = active
	return nil
}

func (r *fakeWorkshopRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.workshops[id]; !ok {
		return domain.ErrWorkshopNotFound
	}
	delete(r.workshops, id)
	return nil
}

// fakeSubmissionRepo is an in-memory SubmissionRepository. Create can be
// forced to fail to test rollback behavior.
type fakeSubmissionRepo struct {
	submissions []domain.Submission
	failCreate  bool
}

func (r *fakeSubmissionRepo) Create(_ context.Context, submission *domain.Submission) error {
	if r.failCreate {
		return fmt.Errorf("insert failed")
	}
	submission.ID = fmt.Sprintf("sub-%d", len(r.submissions)+1)
	r.submissions = append(r.submissions, *submission)
	return nil
}

func (r *fakeSubmissionRepo) GetBySubmissionID(_ context.Context, submissionID string) (*domain.Submission, error) {
	for _, s := range r.submissions {
		if s.SubmissionID == submissionID {
			copied := s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSubmissionRepo) ListByWorkshop(_ context.Context, workshopID string) ([]domain.Submission, error) {
	var out []domain.Submission
	for _, s := range r.submissions {
		if s.WorkshopID == workshopID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSubmissionRepo) ListAll(_ context.Context) ([]domain.Submission, error) {
	return append([]domain.Submission(nil), r.submissions...), nil
}

// fakeAdminRepo is an in-memory AdminRepository.
type fakeAdminRepo struct {
	admins map[string]*domain.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *fakeAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	for _, a := range r.admins {
		if a.Email == admin.Email {
			return domain.ErrEmailTaken
		}
	}
	admin.ID = fmt.Sprintf("admin-%d", len(r.admins)+1)
	r.admins[admin.ID] = admin
	return nil
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	for _, a := range r.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	if a, ok := r.admins[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func activeWorkshop() *domain.Workshop {
	return &domain.Workshop{
		ID:           "ws-1",
		AdminID:      "admin-1",
		WorkshopName: "Intro to Robotics",
		CollegeName:  "Springfield College",
		Date:         "2026-09-15",
		Time:         "10:00",
		Instructions: "Share honest feedback.",
		IsActive:     true,
		PublicLink:   "AbCdEfGh12345678",
	}
}
