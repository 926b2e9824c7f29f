package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/internal/users"
	pkgauth "github.com/Zuby128/restorder-admin/pkg/auth"
	"github.com/Zuby128/restorder-admin/pkg/auth/session"
	"github.com/Zuby128/restorder-admin/pkg/config"
	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
)

type stubUsersRepo struct {
	users map[uuid.UUID]*models.User
}

func newStubUsersRepo() *stubUsersRepo {
	return &stubUsersRepo{users: make(map[uuid.UUID]*models.User)}
}

func (s *stubUsersRepo) WithTx(tx *gorm.DB) users.Repository { return s }

func (s *stubUsersRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *stubUsersRepo) FindByID(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	user, ok := s.users[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (s *stubUsersRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUsersRepo) Update(ctx context.Context, userID uuid.UUID, updates map[string]any) error {
	user, ok := s.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if name, ok := updates["name"].(string); ok {
		user.Name = name
	}
	if hash, ok := updates["password_hash"].(string); ok {
		user.PasswordHash = hash
	}
	return nil
}

type stubSessionManager struct {
	sessions map[string]string
	revoked  []string
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: make(map[string]string)}
}

func (s *stubSessionManager) Generate(ctx context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	s.sessions[accessID] = token
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := s.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.sessions, oldAccessID)
	newID := session.NewAccessID()
	newToken := "refresh-" + newID
	s.sessions[newID] = newToken
	return newID, newToken, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.sessions, accessID)
	s.revoked = append(s.revoked, accessID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret-please-rotate",
		Issuer:                 "restorder",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60 * 72,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T) (Service, *stubUsersRepo, *stubSessionManager) {
	t.Helper()
	repo := newStubUsersRepo()
	sessions := newStubSessionManager()
	svc, err := NewService(repo, sessions, testJWTConfig(), testPasswordConfig())
	if err != nil {
		t.Fatalf("service constructor failed: %v", err)
	}
	return svc, repo, sessions
}

func registerOwner(t *testing.T, svc Service) *models.User {
	t.Helper()
	owner, err := svc.Register(context.Background(), RegisterInput{
		Email:        "owner@example.com",
		Password:     "long-enough-pass",
		Name:         "Owner",
		RestaurantNo: "R-1001",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return owner
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _ := newTestService(t)
	owner := registerOwner(t, svc)
	if owner.Role != enums.StaffRoleOwner {
		t.Fatalf("expected owner role got %s", owner.Role)
	}

	result, err := svc.Login(context.Background(), "Owner@Example.com ", "long-enough-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), result.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != owner.ID || claims.RestaurantNo != "R-1001" || claims.Role != enums.StaffRoleOwner {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if result.RefreshToken == "" {
		t.Fatal("expected a refresh token")
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerOwner(t, svc)

	_, err := svc.Register(context.Background(), RegisterInput{
		Email:        "owner@example.com",
		Password:     "another-long-pass",
		Name:         "Second",
		RestaurantNo: "R-2002",
	})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict got %v", err)
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)
	registerOwner(t, svc)

	_, err := svc.Login(context.Background(), "owner@example.com", "wrong-pass")
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized got %v", err)
	}
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)
	registerOwner(t, svc)

	login, err := svc.Login(context.Background(), "owner@example.com", "long-enough-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	pair, err := svc.Refresh(context.Background(), login.AccessToken, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if pair.AccessToken == login.AccessToken || pair.RefreshToken == login.RefreshToken {
		t.Fatal("expected a rotated token pair")
	}

	// the old refresh token is spent
	_, err = svc.Refresh(context.Background(), login.AccessToken, login.RefreshToken)
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for replayed refresh got %v", err)
	}

	// the new pair still rotates
	if _, err := svc.Refresh(context.Background(), pair.AccessToken, pair.RefreshToken); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if len(sessions.sessions) != 1 {
		t.Fatalf("expected a single live session got %d", len(sessions.sessions))
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _, sessions := newTestService(t)
	registerOwner(t, svc)

	login, err := svc.Login(context.Background(), "owner@example.com", "long-enough-pass")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), login.AccessToken)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}

	if err := svc.Logout(context.Background(), claims.ID); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != claims.ID {
		t.Fatalf("expected session revocation for %s got %v", claims.ID, sessions.revoked)
	}
}

func TestUpdateOwnerPatchesFields(t *testing.T) {
	svc, _, _ := newTestService(t)
	owner := registerOwner(t, svc)

	name := "Renamed"
	password := "brand-new-pass"
	updated, err := svc.UpdateOwner(context.Background(), UpdateOwnerInput{
		UserID:   owner.ID,
		Name:     &name,
		Password: &password,
	})
	if err != nil {
		t.Fatalf("update owner: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("expected renamed owner got %q", updated.Name)
	}

	if _, err := svc.Login(context.Background(), "owner@example.com", "brand-new-pass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}

	short := "short"
	_, err = svc.UpdateOwner(context.Background(), UpdateOwnerInput{UserID: owner.ID, Password: &short})
	if coded := pkgerrors.As(err); coded == nil || coded.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error got %v", err)
	}
}
