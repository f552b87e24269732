package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// UserService manages accounts, official profiles and self-service.
type UserService interface {
	List(ctx context.Context, id model.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Get(ctx context.Context, id model.Identity, userID string) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, id model.Identity, req *dto.CreateUserRequest) (*dto.UserResponse, error)
	Deactivate(ctx context.Context, id model.Identity, userID string) error
	Search(ctx context.Context, id model.Identity, req *dto.UserSearchRequest) (*dto.UserSearchResponse, error)

	ListOfficials(ctx context.Context, id model.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	CreateOfficial(ctx context.Context, id model.Identity, req *dto.OfficialRequest) (*dto.UserResponse, error)
	UpdateOfficial(ctx context.Context, id model.Identity, userID string, req *dto.UpdateOfficialRequest) (*dto.UserResponse, error)

	GetProfile(ctx context.Context, id model.Identity) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, id model.Identity, req *dto.ProfileUpdateRequest) (*dto.UserResponse, error)
}

type userService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewUserService creates a UserService.
func NewUserService(repo *repository.Repository, access AccessService, logger *zap.Logger) UserService {
	return &userService{repo: repo, access: access, logger: logger}
}

// ────────────────────── Accounts ──────────────────────

func (s *userService) List(ctx context.Context, id model.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	if !id.Role.Can(model.CapManageUsers) {
		return nil, 0, ErrForbidden
	}
	filter := repository.UserFilter{
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: req.ActiveOnly,
	}
	if req.Role != "" {
		filter.Role = model.ParseRole(req.Role)
	}
	return s.list(ctx, id, filter, req)
}

func (s *userService) list(ctx context.Context, id model.Identity, filter repository.UserFilter, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	scope := s.access.ResolveScope(ctx, id)
	users, total, err := s.repo.User.List(ctx, scope, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("list users failed", zap.Error(err))
		return nil, 0, err
	}
	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, dto.NewUserResponse(&users[i]))
	}
	return result, total, nil
}

func (s *userService) Get(ctx context.Context, id model.Identity, userID string) (*dto.UserResponse, error) {
	if !id.Role.Can(model.CapViewOfficials) {
		return nil, ErrForbidden
	}
	user, err := s.loadVisible(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// loadVisible loads userID and hides users outside the caller's scope.
func (s *userService) loadVisible(ctx context.Context, id model.Identity, userID string) (*model.User, error) {
	user, err := s.load(ctx, s.repo, userID)
	if err != nil {
		return nil, err
	}
	scope := s.access.ResolveScope(ctx, id)
	if scope.Unrestricted || user.UserID == id.UserID {
		return user, nil
	}
	visible, err := s.repo.User.Visible(ctx, scope, userID)
	if err != nil {
		s.logger.Error("check user visibility failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	if visible {
		return user, nil
	}
	return nil, ErrUserNotFound
}

func (s *userService) CreateUser(ctx context.Context, id model.Identity, req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !id.Role.Can(model.CapManageUsers) {
		return nil, ErrForbidden
	}
	role := model.ParseRole(req.Role)
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	if role == model.RoleSuperAdmin && id.Role != model.RoleSuperAdmin {
		return nil, ErrRoleNotAllowed
	}

	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     role,
		IsActive: true,
	}
	if err := s.create(ctx, id, user, req.Password); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// create hashes password, inserts user and, for mid-level creators, grants
// the new account the creator's leagues so it stays visible to them.
func (s *userService) create(ctx context.Context, id model.Identity, user *model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("hash password failed", zap.Error(err))
		return err
	}
	user.PasswordHash = string(hash)
	user.CreatedBy = model.StringPtr(id.UserID)

	scope := s.access.ResolveScope(ctx, id)

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		exists, err := tx.User.ExistsUsernameOrEmail(ctx, user.Username, user.Email, "")
		if err != nil {
			return err
		}
		if exists {
			return ErrUsernameTaken
		}
		if err := tx.User.Create(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return err
		}
		if id.Role.IsMidLevel() {
			for _, leagueID := range scope.LeagueIDs {
				if err := tx.LeagueAssignment.Grant(ctx, &model.LeagueAssignment{
					UserID:     user.UserID,
					LeagueID:   leagueID,
					AssignedBy: id.UserID,
				}); err != nil {
					return err
				}
			}
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "user", user.UserID,
			"Created "+string(user.Role)+" "+user.Username,
			map[string]interface{}{"role": string(user.Role)})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("create user failed", zap.String("username", user.Username), zap.Error(err))
	}
	return err
}

func (s *userService) Deactivate(ctx context.Context, id model.Identity, userID string) error {
	if !id.Role.Can(model.CapManageUsers) {
		return ErrForbidden
	}
	if userID == id.UserID {
		return ErrSelfDeactivate
	}
	user, err := s.loadVisible(ctx, id, userID)
	if err != nil {
		return err
	}
	if user.Role == model.RoleSuperAdmin && id.Role != model.RoleSuperAdmin {
		return ErrRoleNotAllowed
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if err := tx.User.SetActive(ctx, userID, false, id.UserID); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionDeactivate, "user", userID,
			"Deactivated "+user.Username, nil)
	})
	if err != nil {
		s.logger.Error("deactivate user failed", zap.String("user_id", userID), zap.Error(err))
	}
	return err
}

// Search finds an active account by email so a league admin can add an
// existing user instead of creating a duplicate.
func (s *userService) Search(ctx context.Context, id model.Identity, req *dto.UserSearchRequest) (*dto.UserSearchResponse, error) {
	if !id.Role.Can(model.CapManageUsers) {
		return nil, ErrForbidden
	}
	user, err := s.repo.User.GetActiveByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("search user by email failed", zap.Error(err))
		return nil, err
	}

	resp := &dto.UserSearchResponse{UserResponse: dto.NewUserResponse(user)}
	if id.Role == model.RoleAdmin {
		scope := s.access.ResolveScope(ctx, id)
		member, err := s.repo.LeagueAssignment.IsMemberOfAny(ctx, user.UserID, scope.LeagueIDs)
		if err != nil {
			s.logger.Error("check league membership failed", zap.String("user_id", user.UserID), zap.Error(err))
			return nil, err
		}
		resp.AlreadyInLeague = &member
	}
	return resp, nil
}

// ────────────────────── Officials ──────────────────────

func (s *userService) ListOfficials(ctx context.Context, id model.Identity, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	if !id.Role.Can(model.CapViewOfficials) {
		return nil, 0, ErrForbidden
	}
	filter := repository.UserFilter{
		Role:       model.RoleOfficial,
		Search:     strings.TrimSpace(req.Search),
		ActiveOnly: req.ActiveOnly,
	}
	return s.list(ctx, id, filter, req)
}

func (s *userService) CreateOfficial(ctx context.Context, id model.Identity, req *dto.OfficialRequest) (*dto.UserResponse, error) {
	if !id.Role.Can(model.CapViewOfficials) || !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	user := &model.User{
		Username:          strings.TrimSpace(req.Username),
		FullName:          strings.TrimSpace(req.FullName),
		Email:             strings.TrimSpace(req.Email),
		Phone:             strings.TrimSpace(req.Phone),
		Address:           strings.TrimSpace(req.Address),
		Certifications:    strings.TrimSpace(req.Certifications),
		Sports:            strings.TrimSpace(req.Sports),
		ExperienceYears:   req.ExperienceYears,
		AvailabilityNotes: strings.TrimSpace(req.AvailabilityNotes),
		Role:              model.RoleOfficial,
		IsActive:          true,
	}
	if err := s.create(ctx, id, user, req.Password); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateOfficial(ctx context.Context, id model.Identity, userID string, req *dto.UpdateOfficialRequest) (*dto.UserResponse, error) {
	if !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	user, err := s.loadVisible(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if user.Role != model.RoleOfficial {
		return nil, ErrNotAnOfficial
	}

	applyProfile(user, &dto.ProfileUpdateRequest{
		FullName:          req.FullName,
		Email:             req.Email,
		Phone:             req.Phone,
		Address:           req.Address,
		Certifications:    req.Certifications,
		Sports:            req.Sports,
		AvailabilityNotes: req.AvailabilityNotes,
	})
	if req.ExperienceYears != nil {
		user.ExperienceYears = *req.ExperienceYears
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.save(ctx, id, user, "Updated official "+user.Username); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

// ────────────────────── Self-service ──────────────────────

func (s *userService) GetProfile(ctx context.Context, id model.Identity) (*dto.UserResponse, error) {
	user, err := s.load(ctx, s.repo, id.UserID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, id model.Identity, req *dto.ProfileUpdateRequest) (*dto.UserResponse, error) {
	user, err := s.load(ctx, s.repo, id.UserID)
	if err != nil {
		return nil, err
	}
	applyProfile(user, req)
	if err := s.save(ctx, id, user, "Updated own profile"); err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func applyProfile(u *model.User, req *dto.ProfileUpdateRequest) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&u.FullName, req.FullName)
	set(&u.Email, req.Email)
	set(&u.Phone, req.Phone)
	set(&u.Address, req.Address)
	set(&u.Certifications, req.Certifications)
	set(&u.Sports, req.Sports)
	set(&u.AvailabilityNotes, req.AvailabilityNotes)
}

func (s *userService) save(ctx context.Context, id model.Identity, user *model.User, details string) error {
	user.UpdatedBy = model.StringPtr(id.UserID)
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if user.Email != "" {
			exists, err := tx.User.ExistsUsernameOrEmail(ctx, "", user.Email, user.UserID)
			if err != nil {
				return err
			}
			if exists {
				return ErrUsernameTaken
			}
		}
		if err := tx.User.Update(ctx, user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrUsernameTaken
			}
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionUpdate, "user", user.UserID, details, nil)
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("update user failed", zap.String("user_id", user.UserID), zap.Error(err))
	}
	return err
}

func (s *userService) load(ctx context.Context, repo *repository.Repository, userID string) (*model.User, error) {
	user, err := repo.User.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return user, nil
}
