package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
)

// AssignmentChecker decides whether an official may be put on a game. It
// reads through the repository it is handed so it sees the caller's
// transaction.
type AssignmentChecker struct{}

// NewAssignmentChecker creates an AssignmentChecker.
func NewAssignmentChecker() *AssignmentChecker {
	return &AssignmentChecker{}
}

// CheckResult carries the rows loaded while checking.
type CheckResult struct {
	Game     *model.Game
	Official *model.User
}

// Check runs the rules in order and stops at the first violation:
//
//  1. the game exists and is inside scope; the official exists, holds the
//     official role and is active
//  2. the (game, official) pair is not assigned yet
//  3. the official is not on another game at the same date and time,
//     unless both games share a link group
//
// excludeID is the assignment being updated, if any.
func (c *AssignmentChecker) Check(ctx context.Context, repo *repository.Repository, scope model.AccessScope, gameID, officialID, excludeID string) (*CheckResult, error) {
	// 1. parties
	game, err := repo.Game.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	if !scope.AllowsGame(game) {
		return nil, ErrOutOfScope
	}

	official, err := repo.User.GetByID(ctx, officialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficialNotFound
		}
		return nil, err
	}
	if official.Role != model.RoleOfficial {
		return nil, ErrOfficialNotFound
	}
	if !official.IsActive {
		return nil, ErrOfficialInactive
	}

	// 2. duplicate pair
	dup, err := repo.Assignment.ExistsPair(ctx, gameID, officialID, excludeID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateAssignment
	}

	// 3. double booking
	if err := c.checkSlot(ctx, repo, game, officialID, excludeID); err != nil {
		return nil, err
	}

	return &CheckResult{Game: game, Official: official}, nil
}

// CheckGameSlot re-runs the time-window rule for every official already on game, as it
// would be after a reschedule or unlink. game carries the new date, time
// and link group; it need not be persisted yet.
func (c *AssignmentChecker) CheckGameSlot(ctx context.Context, repo *repository.Repository, game *model.Game) error {
	assigned, err := repo.Assignment.ListByGame(ctx, game.GameID)
	if err != nil {
		return err
	}
	for i := range assigned {
		if err := c.checkSlot(ctx, repo, game, assigned[i].OfficialID, assigned[i].AssignmentID); err != nil {
			return err
		}
	}
	return nil
}

func (c *AssignmentChecker) checkSlot(ctx context.Context, repo *repository.Repository, game *model.Game, officialID, excludeID string) error {
	sameSlot, err := repo.Assignment.FindByOfficialAndSlot(ctx, officialID, game.GameDate, game.GameTime, game.GameID, excludeID)
	if err != nil {
		return err
	}
	for i := range sameSlot {
		other := sameSlot[i].Game
		if other != nil && game.SharesLinkGroup(other) {
			continue
		}
		return ErrTimeConflict
	}
	return nil
}
