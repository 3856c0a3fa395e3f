package rooms

import (
	"context"

	"github.com/caremesh/hospital/pkg/common/logger"
)

type Service struct {
	repo  *Repository
	cache *Cache
}

func NewService(repo *Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func (s *Service) ListAvailable(ctx context.Context) ([]Room, error) {
	if rooms, ok := s.cache.GetAvailable(ctx); ok {
		return rooms, nil
	}
	rooms, err := s.repo.ListByStatus(ctx, StatusAvailable)
	if err != nil {
		return nil, err
	}
	s.cache.SetAvailable(ctx, rooms)
	return rooms, nil
}

func (s *Service) ListBooked(ctx context.Context) ([]BookedRoom, error) {
	return s.repo.ListBooked(ctx)
}

func (s *Service) ListMaintenance(ctx context.Context) ([]Room, error) {
	return s.repo.ListByStatus(ctx, StatusMaintenance)
}

func (s *Service) Get(ctx context.Context, roomID int64) (*Room, error) {
	return s.repo.Get(ctx, roomID)
}

func (s *Service) Create(ctx context.Context, room *Room) error {
	if err := s.repo.Create(ctx, room); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

func (s *Service) SetStatus(ctx context.Context, roomID int64, status string) error {
	if err := s.repo.SetStatus(ctx, roomID, status); err != nil {
		return err
	}
	s.cache.Invalidate(ctx)
	return nil
}

// Reconcile releases stale-Occupied rooms. Run periodically from the
// entry point.
func (s *Service) Reconcile(ctx context.Context) error {
	released, err := s.repo.ReleaseStale(ctx)
	if err != nil {
		return err
	}
	if released > 0 {
		s.cache.Invalidate(ctx)
		logger.Log.WithField("rooms", released).Warn("released stale occupied rooms")
	}
	return nil
}
