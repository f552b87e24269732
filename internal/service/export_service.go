package service

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"sports-scheduler/internal/dto"
	"sports-scheduler/internal/model"
	"sports-scheduler/internal/repository"
	pkgerrors "sports-scheduler/pkg/errors"
	"sports-scheduler/pkg/money"
	"sports-scheduler/pkg/storage"
	"sports-scheduler/pkg/validate"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrExportGenerateFail the workbook could not be written.
var ErrExportGenerateFail = pkgerrors.New(pkgerrors.ErrValidation, "failed to generate the Excel file")

// ExportService renders scoped games and assignments as Excel workbooks.
// The returned buffer is written to the response by the handler.
type ExportService interface {
	ExportGames(ctx context.Context, id model.Identity, gameIDs []string) (*bytes.Buffer, string, error)
	ExportAssignments(ctx context.Context, id model.Identity, req *dto.AssignmentListRequest) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo     *repository.Repository
	access   AccessService
	archiver storage.Archiver
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, access AccessService, archiver storage.Archiver, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, access: access, archiver: archiver, logger: logger, now: time.Now}
}

// ═══════════════════════════════════════════════════════════
// ExportGames: one row per game, ordered by date and time
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportGames(ctx context.Context, id model.Identity, gameIDs []string) (*bytes.Buffer, string, error) {
	if !id.Role.Can(model.CapViewGames) {
		return nil, "", ErrForbidden
	}
	games, err := scopedGamesForExport(ctx, s.repo, s.access.ResolveScope(ctx, id), gameIDs)
	if err != nil {
		s.logger.Error("load games for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(games) == 0 {
		return nil, "", ErrNothingToExport
	}

	headers := []string{
		"Date", "Time", "Away Team", "Home Team", "Sport", "League", "Level",
		"Location", "Officials Needed", "Fee", "Fee Source", "Status", "Link Group", "Notes",
	}
	rows := make([][]interface{}, 0, len(games))
	for i := range games {
		g := &games[i]
		rows = append(rows, []interface{}{
			g.GameDate, g.GameTime, g.AwayTeam, g.HomeTeam, g.Sport, g.League, g.Level,
			g.Location, g.OfficialsNeeded, feeCell(g.AssignedFee), string(g.FeeSource),
			g.Status, derefString(g.LinkGroup), g.Notes,
		})
	}

	return s.render(ctx, "Games", "games", headers, rows)
}

// ═══════════════════════════════════════════════════════════
// ExportAssignments: one row per assignment with its game
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportAssignments(ctx context.Context, id model.Identity, req *dto.AssignmentListRequest) (*bytes.Buffer, string, error) {
	if !id.Role.Can(model.CapViewAssignments) {
		return nil, "", ErrForbidden
	}
	filter := repository.AssignmentFilter{
		GameID:     req.GameID,
		OfficialID: req.OfficialID,
		Status:     req.Status,
		DateFrom:   req.DateFrom,
		DateTo:     req.DateTo,
	}
	assignments, _, err := s.repo.Assignment.List(ctx, s.access.ResolveScope(ctx, id), filter, 0, maxExportRows)
	if err != nil {
		s.logger.Error("load assignments for export failed", zap.Error(err))
		return nil, "", err
	}
	if len(assignments) == 0 {
		return nil, "", ErrNothingToExport
	}

	headers := []string{
		"Date", "Time", "Game", "League", "Level", "Location",
		"Official", "Position", "Status", "Fee", "Fee Source",
	}
	rows := make([][]interface{}, 0, len(assignments))
	for i := range assignments {
		a := &assignments[i]
		row := make([]interface{}, 0, len(headers))
		if g := a.Game; g != nil {
			row = append(row, g.GameDate, g.GameTime, g.Matchup(), g.League, g.Level, g.Location)
		} else {
			row = append(row, "", "", "", "", "", "")
		}
		row = append(row, displayName(a.Official), a.Position, a.Status, feeCell(a.Fee), string(a.FeeSource))
		rows = append(rows, row)
	}

	return s.render(ctx, "Assignments", "assignments", headers, rows)
}

// render writes one sheet and, when archiving is on, keeps a copy. Archive
// failures never fail the download.
func (s *exportService) render(ctx context.Context, sheet, kind string, headers []string, rows [][]interface{}) (*bytes.Buffer, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", ErrExportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, h := range headers {
		f.SetCellValue(sheet, cell(colName(i), 1), h)
		f.SetColWidth(sheet, colName(i), colName(i), 16)
	}
	f.SetCellStyle(sheet, cell(colName(0), 1), cell(colName(len(headers)-1), 1), headerStyle)
	f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	for r, row := range rows {
		for c, v := range row {
			f.SetCellValue(sheet, cell(colName(c), r+2), v)
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("write workbook failed", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s-%s.xlsx", slug.Make(kind), s.now().Format(validate.DateLayout))

	if s.archiver != nil && s.archiver.Enabled() {
		key, err := s.archiver.Put(ctx, filename, xlsxContentType, buf.Bytes())
		if err != nil {
			s.logger.Warn("archive export failed", zap.String("file", filename), zap.Error(err))
		} else {
			s.logger.Info("export archived", zap.String("key", key))
		}
	}
	return buf, filename, nil
}

// ── helpers ──

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func feeCell(c *money.Cents) interface{} {
	if c == nil {
		return ""
	}
	return c.Float()
}

func derefString(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
