package status

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// MaxListLimit caps a single List page.
const MaxListLimit = 1000

// UseCase records and lists status checks.
type UseCase interface {
	Create(ctx context.Context, clientName string) (Check, error)
	List(ctx context.Context, limit, offset int) ([]Check, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) UseCase {
	return &service{repo: repo, now: time.Now}
}

func (s *service) Create(ctx context.Context, clientName string) (Check, error) {
	c := Check{
		ID:         uuid.New(),
		ClientName: clientName,
		Timestamp:  s.now().UTC(),
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return Check{}, err
	}
	return c, nil
}

func (s *service) List(ctx context.Context, limit, offset int) ([]Check, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	items, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []Check{}
	}
	return items, nil
}
