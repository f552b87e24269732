package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
)

// UserFilter narrows user listings. Empty fields are ignored.
type UserFilter struct {
	Role       model.Role
	Search     string
	ActiveOnly bool
}

// UserRepository user data access.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// GetActiveByEmail matches the address case-insensitively.
	GetActiveByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	TouchLastLogin(ctx context.Context, id string, at time.Time) error
	SetActive(ctx context.Context, id string, active bool, updatedBy string) error
	List(ctx context.Context, scope model.AccessScope, filter UserFilter, offset, limit int) ([]model.User, int64, error)
	// Visible reports whether id passes the user predicate of scope.
	Visible(ctx context.Context, scope model.AccessScope, id string) (bool, error)
	CountActiveOfficials(ctx context.Context, scope model.AccessScope) (int64, error)
	CountByRole(ctx context.Context, role model.Role) (int64, error)
}

type userRepo struct {
	db *gorm.DB
}

// NewUserRepo creates a UserRepository.
func NewUserRepo(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("user_id = ?", id).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) GetActiveByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?) AND is_active", email).
		Order("created_at ASC").
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) ExistsUsernameOrEmail(ctx context.Context, username, email, excludeID string) (bool, error) {
	var count int64
	db := r.db.WithContext(ctx).Model(&model.User{})
	if email != "" {
		db = db.Where("(username = ? OR LOWER(email) = LOWER(?))", username, email)
	} else {
		db = db.Where("username = ?", username)
	}
	if excludeID != "" {
		db = db.Where("user_id <> ?", excludeID)
	}
	if err := db.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", user.UserID).
		Updates(map[string]interface{}{
			"full_name":          user.FullName,
			"email":              user.Email,
			"phone":              user.Phone,
			"address":            user.Address,
			"role":               user.Role,
			"is_active":          user.IsActive,
			"certifications":     user.Certifications,
			"sports":             user.Sports,
			"experience_years":   user.ExperienceYears,
			"availability_notes": user.AvailabilityNotes,
			"updated_by":         user.UpdatedBy,
			"updated_at":         time.Now(),
		}).Error
}

func (r *userRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now()}).Error
}

func (r *userRepo) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Update("last_login_at", at).Error
}

func (r *userRepo) SetActive(ctx context.Context, id string, active bool, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("user_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_by": model.StringPtr(updatedBy),
			"updated_at": time.Now(),
		}).Error
}

func (r *userRepo) List(ctx context.Context, scope model.AccessScope, filter UserFilter, offset, limit int) ([]model.User, int64, error) {
	var users []model.User
	var total int64

	db := r.db.WithContext(ctx).Model(&model.User{}).Scopes(ScopeUsers(scope))
	if filter.Role != "" {
		db = db.Where("users.role = ?", filter.Role)
	}
	if filter.ActiveOnly {
		db = db.Where("users.is_active")
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		db = db.Where("(users.full_name ILIKE ? OR users.username ILIKE ? OR users.email ILIKE ?)", like, like, like)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Order("users.full_name ASC, users.username ASC").
		Offset(offset).Limit(limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepo) Visible(ctx context.Context, scope model.AccessScope, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Scopes(ScopeUsers(scope)).
		Where("users.user_id = ?", id).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepo) CountActiveOfficials(ctx context.Context, scope model.AccessScope) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Scopes(ScopeUsers(scope)).
		Where("users.role = ? AND users.is_active", model.RoleOfficial).
		Count(&count).Error
	return count, err
}

func (r *userRepo) CountByRole(ctx context.Context, role model.Role) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.User{}).
		Where("role = ?", role).
		Count(&count).Error
	return count, err
}
