package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/example/skillspace/internal/catalog"
	"github.com/example/skillspace/internal/database"
	"github.com/example/skillspace/pkg/models"
)

// Kind selects which catalog table a sheet feeds
type Kind string

const (
	KindMissions   Kind = "missions"
	KindChallenges Kind = "challenges"
)

// ParseKind validates an import kind
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case KindMissions:
		return KindMissions, nil
	case KindChallenges:
		return KindChallenges, nil
	}
	return "", fmt.Errorf("unknown import kind %q (want missions or challenges)", s)
}

// ImportConfig defines the import configuration.
// Columns are, in order: id, title, description, then reward_xp and icon for
// missions or difficulty and starter_code for challenges.
type ImportConfig struct {
	FilePath  string // Path to the Excel or CSV file
	Kind      Kind
	SheetName string // Name of the sheet to import
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		Kind:      KindMissions,
		SheetName: "Sheet1",
		StartRow:  2, // skip header
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Errors         []string
}

// Saver persists one validated row. It reports whether the row was new.
type Saver interface {
	SaveMission(ctx context.Context, m models.DailyMission, position int) (bool, error)
	SaveChallenge(ctx context.Context, c models.CodeChallenge, position int) (bool, error)
}

// DatabaseSaver writes rows through the catalog repositories
type DatabaseSaver struct {
	missions   *database.MissionRepository
	challenges *database.ChallengeRepository
}

// NewDatabaseSaver creates a saver backed by database.DB
func NewDatabaseSaver() *DatabaseSaver {
	return &DatabaseSaver{
		missions:   database.NewMissionRepository(),
		challenges: database.NewChallengeRepository(),
	}
}

func (s *DatabaseSaver) SaveMission(ctx context.Context, m models.DailyMission, position int) (bool, error) {
	return s.missions.Upsert(ctx, m, position)
}

func (s *DatabaseSaver) SaveChallenge(ctx context.Context, c models.CodeChallenge, position int) (bool, error) {
	return s.challenges.Upsert(ctx, c, position)
}

// Importer reads catalog rows from spreadsheets
type Importer struct {
	saver  Saver
	logger *zap.Logger
}

// NewImporter creates an importer
func NewImporter(saver Saver, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{saver: saver, logger: logger}
}

// Import imports rows from an Excel or CSV file
func (im *Importer) Import(ctx context.Context, config ImportConfig) (*ImportResult, error) {
	if config.StartRow < 1 {
		config.StartRow = 1
	}

	var (
		rows [][]string
		err  error
	)
	if strings.ToLower(filepath.Ext(config.FilePath)) == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if i < config.StartRow-1 || blank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}

		result.TotalProcessed++
		created, err := im.processRow(ctx, config.Kind, row, i)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	im.logger.Info("import finished",
		zap.String("file", config.FilePath),
		zap.String("kind", string(config.Kind)),
		zap.Int("processed", result.TotalProcessed),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", len(result.Errors)),
	)
	return result, nil
}

func (im *Importer) processRow(ctx context.Context, kind Kind, row []string, position int) (bool, error) {
	switch kind {
	case KindMissions:
		m, err := missionFromRow(row)
		if err != nil {
			return false, err
		}
		return im.saver.SaveMission(ctx, m, position)
	case KindChallenges:
		c, err := challengeFromRow(row)
		if err != nil {
			return false, err
		}
		return im.saver.SaveChallenge(ctx, c, position)
	}
	return false, fmt.Errorf("unknown import kind %q", kind)
}

func missionFromRow(row []string) (models.DailyMission, error) {
	reward, err := strconv.Atoi(cell(row, 3))
	if err != nil {
		return models.DailyMission{}, fmt.Errorf("invalid reward_xp %q", cell(row, 3))
	}
	m := models.DailyMission{
		ID:          cell(row, 0),
		Title:       cell(row, 1),
		Description: cell(row, 2),
		RewardXP:    reward,
		Icon:        cell(row, 4),
	}
	if m.ID == "" {
		return m, fmt.Errorf("id cannot be empty")
	}
	if err := catalog.ValidateDailyMission(m); err != nil {
		return models.DailyMission{}, err
	}
	return m, nil
}

func challengeFromRow(row []string) (models.CodeChallenge, error) {
	c := models.CodeChallenge{
		ID:          cell(row, 0),
		Title:       cell(row, 1),
		Description: cell(row, 2),
		Difficulty:  strings.ToUpper(cell(row, 3)),
		StarterCode: rawCell(row, 4),
	}
	if c.ID == "" {
		return c, fmt.Errorf("id cannot be empty")
	}
	if c.Title == "" {
		return c, fmt.Errorf("title cannot be empty")
	}
	if c.Difficulty == "" {
		c.Difficulty = "BASIC"
	}
	return c, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %w", err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func cell(row []string, idx int) string {
	return strings.TrimSpace(rawCell(row, idx))
}

func rawCell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
