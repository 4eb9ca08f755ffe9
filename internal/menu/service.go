package menu

import (
	"context"
)

// RepositoryPort defines data access methods for menu composition.
type RepositoryPort interface {
	VisibleForRoles(ctx context.Context, roleNames []string) ([]Item, error)
}

// Service composes role-filtered navigation forests.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// ForRoles loads the items visible to the given roles and composes them. A
// session with no roles gets an empty forest without touching the store.
func (s *Service) ForRoles(ctx context.Context, roleNames []string) ([]*Node, error) {
	if len(roleNames) == 0 {
		return []*Node{}, nil
	}
	items, err := s.repo.VisibleForRoles(ctx, roleNames)
	if err != nil {
		return nil, err
	}
	return Compose(items), nil
}
