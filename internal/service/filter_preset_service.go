package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// FilterPresetService stores named list filters per user.
type FilterPresetService interface {
	List(ctx context.Context, id model.Identity, userID string) ([]dto.FilterPresetResponse, error)
	Create(ctx context.Context, id model.Identity, userID string, req *dto.CreateFilterPresetRequest) (*dto.FilterPresetResponse, error)
	Delete(ctx context.Context, id model.Identity, userID, presetID string) error
}

type filterPresetService struct {
	repo   *repository.Repository
	access AccessService
	logger *zap.Logger
}

// NewFilterPresetService creates a FilterPresetService.
func NewFilterPresetService(repo *repository.Repository, access AccessService, logger *zap.Logger) FilterPresetService {
	return &filterPresetService{repo: repo, access: access, logger: logger}
}

// owner lets users manage their own presets and user managers those of
// the accounts they can see.
func (s *filterPresetService) owner(ctx context.Context, id model.Identity, userID string) error {
	if userID == id.UserID {
		return nil
	}
	if !id.Role.Can(model.CapManageUsers) {
		return ErrForbidden
	}
	if _, err := s.repo.User.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("load user failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	scope := s.access.ResolveScope(ctx, id)
	if scope.Unrestricted {
		return nil
	}
	visible, err := s.repo.User.Visible(ctx, scope, userID)
	if err != nil {
		s.logger.Error("check user visibility failed", zap.String("user_id", userID), zap.Error(err))
		return err
	}
	if !visible {
		return ErrUserNotFound
	}
	return nil
}

func (s *filterPresetService) List(ctx context.Context, id model.Identity, userID string) ([]dto.FilterPresetResponse, error) {
	if err := s.owner(ctx, id, userID); err != nil {
		return nil, err
	}
	presets, err := s.repo.FilterPreset.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("list filter presets failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	out := make([]dto.FilterPresetResponse, 0, len(presets))
	for i := range presets {
		out = append(out, presetResponse(&presets[i]))
	}
	return out, nil
}

func (s *filterPresetService) Create(ctx context.Context, id model.Identity, userID string, req *dto.CreateFilterPresetRequest) (*dto.FilterPresetResponse, error) {
	if err := s.owner(ctx, id, userID); err != nil {
		return nil, err
	}
	criteria := req.FilterCriteria
	if criteria == nil {
		criteria = map[string]interface{}{}
	}
	raw, err := sonic.Marshal(criteria)
	if err != nil {
		return nil, err
	}
	preset := &model.FilterPreset{
		UserID:         userID,
		PresetName:     strings.TrimSpace(req.PresetName),
		FilterCriteria: string(raw),
		IsDefault:      req.IsDefault,
	}

	err = s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if preset.IsDefault {
			if err := tx.FilterPreset.ClearDefault(ctx, userID); err != nil {
				return err
			}
		}
		if err := tx.FilterPreset.Create(ctx, preset); err != nil {
			return err
		}
		return recordActivity(ctx, tx, id.UserID, ActionCreate, "filter_preset", preset.FilterPresetID,
			"Saved filter preset "+preset.PresetName, map[string]interface{}{"user_id": userID})
	})
	if err != nil {
		s.logger.Error("create filter preset failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	resp := presetResponse(preset)
	return &resp, nil
}

func (s *filterPresetService) Delete(ctx context.Context, id model.Identity, userID, presetID string) error {
	if err := s.owner(ctx, id, userID); err != nil {
		return err
	}
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		n, err := tx.FilterPreset.Delete(ctx, userID, presetID)
		if err != nil {
			return err
		}
		if n == 0 {
			return ErrPresetNotFound
		}
		return recordActivity(ctx, tx, id.UserID, ActionDelete, "filter_preset", presetID,
			"Deleted a filter preset", map[string]interface{}{"user_id": userID})
	})
	if err != nil && !isBusinessError(err) {
		s.logger.Error("delete filter preset failed", zap.String("preset_id", presetID), zap.Error(err))
	}
	return err
}

func presetResponse(p *model.FilterPreset) dto.FilterPresetResponse {
	criteria := map[string]interface{}{}
	if p.FilterCriteria != "" {
		if err := sonic.UnmarshalString(p.FilterCriteria, &criteria); err != nil {
			criteria = map[string]interface{}{}
		}
	}
	return dto.FilterPresetResponse{
		ID:             p.FilterPresetID,
		PresetName:     p.PresetName,
		FilterCriteria: criteria,
		IsDefault:      p.IsDefault,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
