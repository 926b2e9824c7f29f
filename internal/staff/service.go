package staff

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/auth"
	"github.com/Zuby128/restorder-admin/pkg/auth/session"
	"github.com/Zuby128/restorder-admin/pkg/config"
	"github.com/Zuby128/restorder-admin/pkg/db"
	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/security"
)

const tempPasswordLength = 10

// Service defines waiter account operations.
type Service interface {
	Create(ctx context.Context, input CreateStaffInput) (*models.Waiter, string, error)
	Get(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error)
	List(ctx context.Context, restaurantNo string) ([]models.Waiter, error)
	ListBasic(ctx context.Context, restaurantNo string) ([]BasicStaff, error)
	Update(ctx context.Context, input UpdateStaffInput) (*models.Waiter, error)
	Delete(ctx context.Context, waiterID uuid.UUID, restaurantNo string) error
	ToggleStatus(ctx context.Context, waiterID uuid.UUID, restaurantNo string) (*models.Waiter, error)
	ToggleCloseTable(ctx context.Context, waiterID uuid.UUID, restaurantNo string) (*models.Waiter, error)
	Login(ctx context.Context, userName, password string) (*LoginResult, error)
}

// CreateStaffInput carries the fields accepted when registering a waiter.
// When Password is empty a temporary one is generated and returned to the
// caller for first login.
type CreateStaffInput struct {
	UserName      string
	Password      string
	Name          string
	Surname       *string
	RestaurantNo  string
	CanCloseTable bool
}

// UpdateStaffInput patches a waiter; nil fields are left unchanged.
type UpdateStaffInput struct {
	WaiterID     uuid.UUID
	RestaurantNo string
	Name         *string
	Surname      *string
	Password     *string
}

// BasicStaff is the trimmed listing shape for dropdowns in the dashboard.
type BasicStaff struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Surname *string   `json:"surname,omitempty"`
}

// LoginResult carries the token pair and the authenticated waiter.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	Waiter       *models.Waiter
}

type sessionCreator interface {
	Generate(ctx context.Context, accessID string) (string, error)
}

type service struct {
	repo     Repository
	sessions sessionCreator
	jwtCfg   config.JWTConfig
	pwCfg    config.PasswordConfig
	now      func() time.Time
}

// NewService builds a staff service. sessions may be nil when login is not
// served (tooling contexts).
func NewService(repo Repository, sessions sessionCreator, jwtCfg config.JWTConfig, pwCfg config.PasswordConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("staff repository required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		jwtCfg:   jwtCfg,
		pwCfg:    pwCfg,
		now:      time.Now,
	}, nil
}

func (s *service) Create(ctx context.Context, input CreateStaffInput) (*models.Waiter, string, error) {
	if input.UserName == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "user name required")
	}
	if input.Name == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.RestaurantNo == "" {
		return nil, "", pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}

	if _, err := s.repo.FindByUserName(ctx, input.UserName); err == nil {
		return nil, "", pkgerrors.New(pkgerrors.CodeConflict, "user name already taken")
	} else if err != gorm.ErrRecordNotFound {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check user name")
	}

	password := input.Password
	tempPassword := ""
	if password == "" {
		generated, err := security.GenerateTempPassword(tempPasswordLength)
		if err != nil {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate temp password")
		}
		password = generated
		tempPassword = generated
	}

	hash, err := security.HashPassword(password, s.pwCfg)
	if err != nil {
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	waiter := &models.Waiter{
		UserName:      input.UserName,
		PasswordHash:  hash,
		Name:          input.Name,
		Surname:       input.Surname,
		Role:          enums.StaffRoleWaiter,
		RestaurantNo:  input.RestaurantNo,
		IsActive:      true,
		CanCloseTable: input.CanCloseTable,
	}
	created, err := s.repo.Create(ctx, waiter)
	if err != nil {
		// a concurrent create can slip past the FindByUserName check
		if db.IsUniqueViolation(err, "waiters_user_name_key") {
			return nil, "", pkgerrors.Wrap(pkgerrors.CodeConflict, err, "username already taken")
		}
		return nil, "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create waiter")
	}
	return created, tempPassword, nil
}

func (s *service) Get(ctx context.Context, waiterID uuid.UUID) (*models.Waiter, error) {
	if waiterID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "waiter id required")
	}
	waiter, err := s.repo.FindByID(ctx, waiterID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "waiter not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load waiter")
	}
	return waiter, nil
}

func (s *service) List(ctx context.Context, restaurantNo string) ([]models.Waiter, error) {
	if restaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	waiters, err := s.repo.ListByRestaurant(ctx, restaurantNo)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list waiters")
	}
	return waiters, nil
}

func (s *service) ListBasic(ctx context.Context, restaurantNo string) ([]BasicStaff, error) {
	waiters, err := s.List(ctx, restaurantNo)
	if err != nil {
		return nil, err
	}
	basics := make([]BasicStaff, 0, len(waiters))
	for _, waiter := range waiters {
		if !waiter.IsActive {
			continue
		}
		basics = append(basics, BasicStaff{ID: waiter.ID, Name: waiter.Name, Surname: waiter.Surname})
	}
	return basics, nil
}

func (s *service) Update(ctx context.Context, input UpdateStaffInput) (*models.Waiter, error) {
	waiter, err := s.scoped(ctx, input.WaiterID, input.RestaurantNo)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if input.Name != nil {
		if *input.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be blank")
		}
		updates["name"] = *input.Name
	}
	if input.Surname != nil {
		updates["surname"] = input.Surname
	}
	if input.Password != nil {
		if *input.Password == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "password cannot be blank")
		}
		hash, err := security.HashPassword(*input.Password, s.pwCfg)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
		}
		updates["password_hash"] = hash
	}
	if len(updates) == 0 {
		return waiter, nil
	}

	if err := s.repo.Update(ctx, input.WaiterID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update waiter")
	}
	return s.Get(ctx, input.WaiterID)
}

func (s *service) Delete(ctx context.Context, waiterID uuid.UUID, restaurantNo string) error {
	if _, err := s.scoped(ctx, waiterID, restaurantNo); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, waiterID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete waiter")
	}
	return nil
}

func (s *service) ToggleStatus(ctx context.Context, waiterID uuid.UUID, restaurantNo string) (*models.Waiter, error) {
	waiter, err := s.scoped(ctx, waiterID, restaurantNo)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, waiterID, map[string]any{"is_active": !waiter.IsActive}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle status")
	}
	return s.Get(ctx, waiterID)
}

func (s *service) ToggleCloseTable(ctx context.Context, waiterID uuid.UUID, restaurantNo string) (*models.Waiter, error) {
	waiter, err := s.scoped(ctx, waiterID, restaurantNo)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, waiterID, map[string]any{"can_close_table": !waiter.CanCloseTable}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "toggle close table")
	}
	return s.Get(ctx, waiterID)
}

func (s *service) Login(ctx context.Context, userName, password string) (*LoginResult, error) {
	if userName == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user name and password required")
	}

	waiter, err := s.repo.FindByUserName(ctx, userName)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load waiter")
	}
	if !waiter.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "account is disabled")
	}

	ok, err := security.VerifyPassword(password, waiter.PasswordHash)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")
	}

	accessID := session.NewAccessID()
	accessToken, err := auth.MintAccessToken(s.jwtCfg, s.now(), auth.AccessTokenPayload{
		UserID:       waiter.ID,
		RestaurantNo: waiter.RestaurantNo,
		Role:         waiter.Role,
		JTI:          accessID,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mint access token")
	}

	refreshToken := ""
	if s.sessions != nil {
		refreshToken, err = s.sessions.Generate(ctx, accessID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create session")
		}
	}

	return &LoginResult{AccessToken: accessToken, RefreshToken: refreshToken, Waiter: waiter}, nil
}

func (s *service) scoped(ctx context.Context, waiterID uuid.UUID, restaurantNo string) (*models.Waiter, error) {
	waiter, err := s.Get(ctx, waiterID)
	if err != nil {
		return nil, err
	}
	if restaurantNo != "" && waiter.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "waiter does not belong to restaurant")
	}
	return waiter, nil
}
