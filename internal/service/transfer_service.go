package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/config"
	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/money"
	"sports-scheduler/pkg/validate"
)

// maxExportRows caps a whole-scope export.
const maxExportRows = 10000

// gameColumns is the header of the import template, in order.
var gameColumns = []string{
	"date", "time", "home_team", "away_team", "sport", "league",
	"location", "level", "officials_needed", "notes",
}

var requiredGameColumns = []string{"date", "time", "home_team", "away_team", "sport"}

// knownSports only produce a warning when missed; any sport is accepted.
var knownSports = map[string]bool{
	"Basketball": true, "Football": true, "Soccer": true, "Baseball": true,
	"Volleyball": true, "Tennis": true, "Swimming": true, "Track": true,
	"Wrestling": true, "Hockey": true, "Lacrosse": true, "Golf": true,
	"Cross Country": true, "Softball": true, "Badminton": true,
	"Table Tennis": true, "Water Polo": true,
}

// TransferService moves games and assignments in and out as CSV.
type TransferService interface {
	GamesTemplate() ([]byte, error)
	ImportGames(ctx context.Context, id model.Identity, r io.Reader) (*dto.ImportResult, error)
	ExportGamesCSV(ctx context.Context, id model.Identity, gameIDs []string) ([]byte, error)
	// ImportAssignments feeds every row to BulkCreate as one candidate.
	ImportAssignments(ctx context.Context, id model.Identity, r io.Reader) (*dto.ImportResult, error)
}

type transferService struct {
	cfg         *config.ImportConfig
	repo        *repository.Repository
	access      AccessService
	games       GameService
	assignments AssignmentService
	validate    *validator.Validate
	logger      *zap.Logger
}

// NewTransferService creates a TransferService.
func NewTransferService(
	cfg *config.ImportConfig,
	repo *repository.Repository,
	access AccessService,
	games GameService,
	assignments AssignmentService,
	logger *zap.Logger,
) TransferService {
	return &transferService{
		cfg:         cfg,
		repo:        repo,
		access:      access,
		games:       games,
		assignments: assignments,
		validate:    validate.New(),
		logger:      logger,
	}
}

// gameRow is one parsed line of a games CSV.
type gameRow struct {
	Line            int    `csv:"-"`
	Date            string `csv:"date"             validate:"required,ymd"`
	Time            string `csv:"time"             validate:"required,hhmm"`
	HomeTeam        string `csv:"home_team"        validate:"required,max=100"`
	AwayTeam        string `csv:"away_team"        validate:"required,max=100"`
	Sport           string `csv:"sport"            validate:"required,max=50"`
	League          string `csv:"league"           validate:"max=100"`
	Location        string `csv:"location"         validate:"max=100"`
	Level           string `csv:"level"            validate:"max=100"`
	OfficialsNeeded int    `csv:"officials_needed" validate:"min=1,max=10"`
	Notes           string `csv:"notes"            validate:"max=500"`
}

// rowCheck is the pre-validation outcome of one row.
type rowCheck struct {
	err     string
	warning string
}

// ────────────────────── Template ──────────────────────

func (s *transferService) GamesTemplate() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	rows := [][]string{
		gameColumns,
		{"2025-09-15", "19:00", "Lakers", "Warriors", "Basketball", "NBA", "Staples Center", "Professional", "3", "Championship game"},
		{"2025-09-16", "20:30", "Cowboys", "Giants", "Football", "NFL", "AT&T Stadium", "Professional", "7", "Division game"},
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ────────────────────── Import games ──────────────────────

func (s *transferService) ImportGames(ctx context.Context, id model.Identity, r io.Reader) (*dto.ImportResult, error) {
	if !id.Role.Can(model.CapManageGames) {
		return nil, ErrForbidden
	}
	header, records, err := s.readCSV(r, requiredGameColumns)
	if err != nil {
		return nil, err
	}

	rows := make([]gameRow, len(records))
	parseErrs := make([]string, len(records))
	for i, rec := range records {
		rows[i], parseErrs[i] = parseGameRow(header, rec.fields, rec.line)
	}

	checks, err := s.preValidate(rows, parseErrs)
	if err != nil {
		s.logger.Error("pre-validate game rows failed", zap.Error(err))
		return nil, err
	}

	result := &dto.ImportResult{TotalRows: len(rows), Errors: []dto.RowError{}}
	for i := range rows {
		row := &rows[i]
		if checks[i].warning != "" {
			result.Warnings = append(result.Warnings, dto.RowError{Row: row.Line, Message: checks[i].warning})
		}
		if checks[i].err != "" {
			result.Errors = append(result.Errors, dto.RowError{Row: row.Line, Message: checks[i].err})
			continue
		}
		_, err := s.games.Create(ctx, id, &dto.CreateGameRequest{
			Date:            row.Date,
			Time:            row.Time,
			HomeTeam:        row.HomeTeam,
			AwayTeam:        row.AwayTeam,
			Sport:           row.Sport,
			League:          row.League,
			Location:        row.Location,
			Level:           row.Level,
			OfficialsNeeded: row.OfficialsNeeded,
			Notes:           row.Notes,
		})
		if err != nil {
			result.Errors = append(result.Errors, dto.RowError{Row: row.Line, Message: pkgerrors.Message(err)})
			continue
		}
		result.Imported++
	}

	s.logger.Info("games imported",
		zap.String("user_id", id.UserID),
		zap.Int("total", result.TotalRows),
		zap.Int("imported", result.Imported),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

// preValidate checks every row on a bounded worker pool. Rows are
// independent and nothing here touches storage.
func (s *transferService) preValidate(rows []gameRow, parseErrs []string) ([]rowCheck, error) {
	checks := make([]rowCheck, len(rows))

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i := range rows {
		i := i
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			checks[i] = s.checkGameRow(&rows[i], parseErrs[i])
		}); err != nil {
			wg.Done()
			return nil, fmt.Errorf("submit row to worker pool: %w", err)
		}
	}
	wg.Wait()
	return checks, nil
}

func (s *transferService) checkGameRow(row *gameRow, parseErr string) rowCheck {
	var c rowCheck
	if row.Sport != "" && !knownSports[row.Sport] {
		c.warning = fmt.Sprintf("unknown sport %q, imported anyway", row.Sport)
	}
	var msgs []string
	if parseErr != "" {
		msgs = append(msgs, parseErr)
	}
	if err := s.validate.Struct(row); err != nil {
		msgs = append(msgs, validate.Message(err))
	}
	c.err = strings.Join(msgs, "; ")
	return c
}

func parseGameRow(header map[string]int, rec []string, line int) (gameRow, string) {
	get := func(col string) string { return field(header, rec, col) }
	row := gameRow{
		Line:     line,
		Date:     get("date"),
		Time:     get("time"),
		HomeTeam: get("home_team"),
		AwayTeam: get("away_team"),
		Sport:    get("sport"),
		League:   get("league"),
		Location: get("location"),
		Level:    get("level"),
		Notes:    get("notes"),
	}
	row.OfficialsNeeded = 1
	if raw := get("officials_needed"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return row, "officials_needed must be a number"
		}
		row.OfficialsNeeded = n
	}
	return row, ""
}

// ────────────────────── Export games ──────────────────────

func (s *transferService) ExportGamesCSV(ctx context.Context, id model.Identity, gameIDs []string) ([]byte, error) {
	if !id.Role.Can(model.CapViewGames) {
		return nil, ErrForbidden
	}
	games, err := scopedGamesForExport(ctx, s.repo, s.access.ResolveScope(ctx, id), gameIDs)
	if err != nil {
		s.logger.Error("load games for export failed", zap.Error(err))
		return nil, err
	}
	if len(games) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"Date", "Time", "Home Team", "Away Team", "Sport", "League", "Location",
		"Level", "Officials Needed", "Notes", "Status", "Link Group", "Created Date",
	})
	for i := range games {
		g := &games[i]
		linkGroup := ""
		if g.LinkGroup != nil {
			linkGroup = *g.LinkGroup
		}
		_ = w.Write([]string{
			g.GameDate, g.GameTime, g.HomeTeam, g.AwayTeam, g.Sport, g.League, g.Location,
			g.Level, strconv.Itoa(g.OfficialsNeeded), g.Notes, g.Status, linkGroup,
			g.CreatedAt.Format(time.RFC3339),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// scopedGamesForExport loads the selected games, or the whole scope when
// none are selected, ordered by date and time.
func scopedGamesForExport(ctx context.Context, repo *repository.Repository, scope model.AccessScope, gameIDs []string) ([]model.Game, error) {
	if ids := uniqueStrings(gameIDs); len(ids) > 0 {
		return repo.Game.ListByIDs(ctx, scope, ids)
	}
	games, _, err := repo.Game.List(ctx, scope, repository.GameFilter{}, 0, maxExportRows)
	return games, err
}

// ────────────────────── Import assignments ──────────────────────

func (s *transferService) ImportAssignments(ctx context.Context, id model.Identity, r io.Reader) (*dto.ImportResult, error) {
	if !id.Role.Can(model.CapManageAssignments) {
		return nil, ErrForbidden
	}
	header, records, err := s.readCSV(r, []string{"game_id"})
	if err != nil {
		return nil, err
	}
	_, hasID := header["official_id"]
	_, hasName := header["official_username"]
	if !hasID && !hasName {
		return nil, fmt.Errorf("%w: official_id or official_username", ErrMissingColumns)
	}

	result := &dto.ImportResult{TotalRows: len(records), Errors: []dto.RowError{}}
	items := make([]dto.CreateAssignmentRequest, 0, len(records))
	lines := make([]int, 0, len(records))
	usernames := make(map[string]string)

	for _, rec := range records {
		line := rec.line
		get := func(col string) string { return field(header, rec.fields, col) }
		item := dto.CreateAssignmentRequest{
			GameID:     get("game_id"),
			OfficialID: get("official_id"),
			Position:   get("position"),
			Status:     strings.ToLower(get("status")),
		}
		if item.OfficialID == "" {
			officialID, err := s.resolveUsername(ctx, usernames, get("official_username"))
			if err != nil {
				if !isBusinessError(err) {
					return nil, err
				}
				result.Errors = append(result.Errors, dto.RowError{Row: line, Message: err.Error()})
				continue
			}
			item.OfficialID = officialID
		}
		if raw := get("fee"); raw != "" {
			fee, err := money.ParseFee(raw)
			if err != nil {
				result.Errors = append(result.Errors, dto.RowError{Row: line, Message: "fee: " + err.Error()})
				continue
			}
			item.Fee = &fee
		}
		items = append(items, item)
		lines = append(lines, line)
	}

	if len(items) > 0 {
		bulk, err := s.assignments.BulkCreate(ctx, id, items)
		if err != nil {
			return nil, err
		}
		result.Imported = bulk.CreatedCount
		for _, e := range bulk.Errors {
			result.Errors = append(result.Errors, dto.RowError{Row: lines[e.Index], Message: e.Message})
		}
	}
	return result, nil
}

func (s *transferService) resolveUsername(ctx context.Context, cache map[string]string, username string) (string, error) {
	if username == "" {
		return "", pkgerrors.Validationf("official_id or official_username is required")
	}
	if id, ok := cache[username]; ok {
		return id, nil
	}
	user, err := s.repo.User.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.Validationf("official %q not found", username)
		}
		s.logger.Error("resolve official username failed", zap.String("username", username), zap.Error(err))
		return "", err
	}
	cache[username] = user.UserID
	return user.UserID, nil
}

// ── csv helpers ──

// csvRecord is a data row with its line in the file; the header is line 1.
type csvRecord struct {
	line   int
	fields []string
}

// readCSV reads the header and all non-blank data rows, checking that every
// column in required is present. Header names are matched case-insensitively.
func (s *transferService) readCSV(r io.Reader, required []string) (map[string]int, []csvRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	head, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil, ErrEmptyFile
		}
		return nil, nil, pkgerrors.Validationf("invalid CSV: %v", err)
	}
	header := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		header[h] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := header[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	var records []csvRecord
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, pkgerrors.Validationf("invalid CSV: %v", err)
		}
		if blank(rec) {
			continue
		}
		line, _ := reader.FieldPos(0)
		records = append(records, csvRecord{line: line, fields: rec})
		if s.cfg.MaxRows > 0 && len(records) > s.cfg.MaxRows {
			return nil, nil, fmt.Errorf("%w: limit is %d", ErrTooManyRows, s.cfg.MaxRows)
		}
	}
	if len(records) == 0 {
		return nil, nil, ErrEmptyFile
	}
	return header, records, nil
}

func field(header map[string]int, rec []string, col string) string {
	i, ok := header[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
