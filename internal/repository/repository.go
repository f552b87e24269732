package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository aggregates every repository behind one handle so that a
// transaction can hand out a consistent set bound to the same tx.
type Repository struct {
	db *gorm.DB

	User             UserRepository
	League           LeagueRepository
	LeagueAssignment LeagueAssignmentRepository
	Game             GameRepository
	Assignment       AssignmentRepository
	LeagueFee        LeagueFeeRepository
	LeagueBilling    LeagueBillingRepository
	BillTo           BillToRepository
	ActivityLog      ActivityLogRepository
	Location         LocationRepository
	LeagueLevel      LeagueLevelRepository
	Catalog          PredeterminedLevelRepository
	FilterPreset     FilterPresetRepository
}

// NewRepository creates the aggregate.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:               db,
		User:             NewUserRepo(db),
		League:           NewLeagueRepo(db),
		LeagueAssignment: NewLeagueAssignmentRepo(db),
		Game:             NewGameRepo(db),
		Assignment:       NewAssignmentRepo(db),
		LeagueFee:        NewLeagueFeeRepo(db),
		LeagueBilling:    NewLeagueBillingRepo(db),
		BillTo:           NewBillToRepo(db),
		ActivityLog:      NewActivityLogRepo(db),
		Location:         NewLocationRepo(db),
		LeagueLevel:      NewLeagueLevelRepo(db),
		Catalog:          NewPredeterminedLevelRepo(db),
		FilterPreset:     NewFilterPresetRepo(db),
	}
}

// Transaction runs fn with repositories bound to one transaction. A non-nil
// error from fn rolls everything back. Calling it on a repository that is
// already inside a transaction opens a savepoint.
//
// A Repository built without a database (tests assemble mocks by hand)
// simply runs fn against itself.
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
