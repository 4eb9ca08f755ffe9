package auth

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/gharinto/platform/internal/platform/httpx"
	"github.com/gharinto/platform/internal/rbac"
	"github.com/gharinto/platform/internal/shared"
)

// GrantResolver resolves a user's effective roles and permissions.
type GrantResolver interface {
	EffectiveGrants(ctx context.Context, userID int64) (rbac.Grants, error)
}

// Service wraps authentication business rules: credential checks at login and
// the per-request verify/load/resolve pipeline.
type Service struct {
	repo     Repository
	tokens   *TokenService
	denylist *Denylist
	grants   GrantResolver
}

// NewService constructs a new Service.
func NewService(repo Repository, tokens *TokenService, denylist *Denylist, grants GrantResolver) *Service {
	return &Service{repo: repo, tokens: tokens, denylist: denylist, grants: grants}
}

// Login validates email/password credentials, issues an access token and
// returns the resolved session alongside it. The session audit insert and the
// grant resolution are independent and run concurrently.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (*shared.Session, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, "", shared.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !user.IsActive {
		return nil, "", shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", shared.ErrInvalidCredentials
	}

	token, claims, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	var grants rbac.Grants
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.repo.CreateSession(gctx, claims.ID, user.ID, claims.ExpiresAt.Time, ip, ua)
	})
	g.Go(func() error {
		var err error
		grants, err = s.grants.EffectiveGrants(gctx, user.ID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	sess := shared.NewSession(user.ID, user.Email, user.FirstName, user.LastName, claims.ID, grants.Roles, grants.Permissions)
	sess.TokenExpiry = claims.ExpiresAt.Time
	return sess, token, nil
}

// EstablishSession runs the per-request pipeline: verify the token, reject
// revoked tokens, load the identity, resolve grants. Any credential failure
// short-circuits as Unauthenticated before a partial session exists. Grants
// are resolved fresh on every call, so role changes are never served stale.
func (s *Service) EstablishSession(ctx context.Context, rawToken string) (*shared.Session, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	revoked, err := s.denylist.Revoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: denylist check: %w", err)
	}
	if revoked {
		return nil, fmt.Errorf("auth: token revoked: %w", httpx.ErrUnauthenticated)
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			// Nonexistent and deactivated accounts look identical to callers.
			return nil, fmt.Errorf("auth: unknown subject: %w", httpx.ErrUnauthenticated)
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, fmt.Errorf("auth: subject inactive: %w", httpx.ErrUnauthenticated)
	}

	grants, err := s.grants.EffectiveGrants(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	sess := shared.NewSession(user.ID, user.Email, user.FirstName, user.LastName, claims.ID, grants.Roles, grants.Permissions)
	sess.TokenExpiry = claims.ExpiresAt.Time
	return sess, nil
}

// Logout revokes the session's token and removes the audit record.
func (s *Service) Logout(ctx context.Context, sess *shared.Session) error {
	if sess == nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, sess.TokenID, sess.TokenExpiry); err != nil {
		return err
	}
	return s.repo.DeleteSession(ctx, sess.TokenID)
}
