package service

import (
	"context"

	"github.com/bytedance/sonic"

	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// Activity actions.
const (
	ActionCreate     = "create"
	ActionUpdate     = "update"
	ActionDelete     = "delete"
	ActionAssign     = "assign"
	ActionUnassign   = "unassign"
	ActionRespond    = "respond"
	ActionLink       = "link"
	ActionUnlink     = "unlink"
	ActionImport     = "import"
	ActionLogin      = "login"
	ActionChat       = "chat"
	ActionDeactivate = "deactivate"
)

// recordActivity appends an audit entry through repo, so that inside a
// transaction it commits or rolls back together with the change it
// describes.
func recordActivity(ctx context.Context, repo *repository.Repository, actorID, action, entityType, entityID, details string, meta map[string]interface{}) error {
	raw := "{}"
	if len(meta) > 0 {
		b, err := sonic.Marshal(meta)
		if err != nil {
			return err
		}
		raw = string(b)
	}
	return repo.ActivityLog.Create(ctx, &model.ActivityLog{
		UserID:     model.StringPtr(actorID),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Metadata:   raw,
	})
}
