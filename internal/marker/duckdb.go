package marker

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-tdi/internal/logger"
	"github.com/rxtech-lab/argo-tdi/internal/types"
	"github.com/rxtech-lab/argo-tdi/pkg/errors"
	"go.uber.org/zap"
)

// DuckDBMarker records annotations in an in-memory DuckDB table that can be
// exported to parquet once a replay finishes.
type DuckDBMarker struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewDuckDBMarker opens the database and creates the marks table.
func NewDuckDBMarker(logger *logger.Logger) (*DuckDBMarker, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		logger.Error("Failed to open database", zap.Error(err))

		return nil, errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to open database", err)
	}

	if err := db.Ping(); err != nil {
		logger.Error("Failed to connect to database", zap.Error(err))
		db.Close()

		return nil, errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to connect to database", err)
	}

	marker := &DuckDBMarker{
		logger: logger,
		db:     db,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}

	if err := marker.initialize(); err != nil {
		db.Close()

		return nil, err
	}

	return marker, nil
}

// Mark implements Marker.
func (m *DuckDBMarker) Mark(ctx context.Context, mark types.Mark) error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "marker database is nil")
	}

	var (
		alertID        sql.NullString
		alertKind      sql.NullString
		alertDirection sql.NullString
		alertBoundary  sql.NullTime
	)

	if mark.Alert.IsSome() {
		alert := mark.Alert.Unwrap()
		alertID = sql.NullString{String: alert.ID, Valid: true}
		alertKind = sql.NullString{String: string(alert.Kind), Valid: true}
		alertDirection = sql.NullString{String: string(alert.Direction), Valid: true}
		alertBoundary = sql.NullTime{Time: alert.Boundary, Valid: true}
	}

	insertQuery := m.sq.
		Insert("marks").
		Columns(
			"id", "name", "shape", "bar_index", "time", "price", "color", "title", "message", "category",
			"alert_id", "alert_kind", "alert_direction", "alert_boundary",
		).
		Values(
			squirrel.Expr("nextval('mark_id_seq')"), mark.Name, string(mark.Shape), mark.BarIndex, mark.Time,
			mark.Price, string(mark.Color), mark.Title, mark.Message, mark.Category,
			alertID, alertKind, alertDirection, alertBoundary,
		).
		RunWith(m.db)

	if _, err := insertQuery.ExecContext(ctx); err != nil {
		return errors.Wrapf(errors.ErrCodeAnnotationFailed, err, "failed to insert mark %s", mark.Name)
	}

	return nil
}

// GetMarks implements Marker.
func (m *DuckDBMarker) GetMarks() ([]types.Mark, error) {
	if m == nil || m.db == nil {
		return nil, errors.New(errors.ErrCodeMarkerNotAvailable, "marker database is nil")
	}

	selectQuery := m.sq.
		Select(
			"name", "shape", "bar_index", "time", "price", "color", "title", "message", "category",
			"alert_id", "alert_kind", "alert_direction", "alert_boundary",
		).
		From("marks").
		OrderBy("id ASC").
		RunWith(m.db)

	rows, err := selectQuery.Query()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to query marks", err)
	}
	defer rows.Close()

	var marks []types.Mark

	for rows.Next() {
		var (
			mark           types.Mark
			shape, color   string
			alertID        sql.NullString
			alertKind      sql.NullString
			alertDirection sql.NullString
			alertBoundary  sql.NullTime
		)

		err := rows.Scan(
			&mark.Name,
			&shape,
			&mark.BarIndex,
			&mark.Time,
			&mark.Price,
			&color,
			&mark.Title,
			&mark.Message,
			&mark.Category,
			&alertID,
			&alertKind,
			&alertDirection,
			&alertBoundary,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to scan mark", err)
		}

		mark.Shape = types.MarkShape(shape)
		mark.Color = types.MarkColor(color)
		mark.Time = mark.Time.UTC()

		if alertID.Valid {
			//nolint:exhaustruct // only the identifying fields are persisted
			mark.Alert = optional.Some(types.AlertEvent{
				ID:        alertID.String,
				Kind:      types.AlertKind(alertKind.String),
				Direction: types.Direction(alertDirection.String),
				Boundary:  alertBoundary.Time.UTC(),
				MarkIndex: mark.BarIndex,
				Time:      mark.Time,
			})
		}

		marks = append(marks, mark)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "error iterating marks", err)
	}

	return marks, nil
}

// Write exports the marks to marks.parquet inside dir.
func (m *DuckDBMarker) Write(dir string) (string, error) {
	if m == nil || m.db == nil || m.logger == nil {
		return "", errors.New(errors.ErrCodeMarkerNotAvailable, "marker, database, or logger is nil")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to create directory", err)
	}

	marksPath := filepath.Join(dir, "marks.parquet")

	_, err := m.db.Exec(fmt.Sprintf(`COPY (SELECT * FROM marks ORDER BY id) TO '%s' (FORMAT PARQUET)`,
		strings.ReplaceAll(marksPath, "'", "''")))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeWriteFailed, "failed to export marks to parquet", err)
	}

	m.logger.Info("Exported marks to parquet", zap.String("marks", marksPath))

	return marksPath, nil
}

// Cleanup drops every recorded mark.
func (m *DuckDBMarker) Cleanup() error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "marker database is nil")
	}

	_, err := m.db.Exec(`
		DROP TABLE IF EXISTS marks;
		DROP SEQUENCE IF EXISTS mark_id_seq;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeQueryFailed, "failed to cleanup marks table", err)
	}

	return m.initialize()
}

// Close closes the database connection.
func (m *DuckDBMarker) Close() error {
	if m == nil || m.db == nil {
		return nil
	}

	return m.db.Close()
}

func (m *DuckDBMarker) initialize() error {
	if m == nil || m.db == nil {
		return errors.New(errors.ErrCodeMarkerNotAvailable, "marker database is nil")
	}

	_, err := m.db.Exec(`CREATE SEQUENCE IF NOT EXISTS mark_id_seq`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to create sequence", err)
	}

	_, err = m.db.Exec(`
		CREATE TABLE IF NOT EXISTS marks (
			id INTEGER PRIMARY KEY,
			name TEXT,
			shape TEXT,
			bar_index INTEGER,
			time TIMESTAMP,
			price DOUBLE,
			color TEXT,
			title TEXT,
			message TEXT,
			category TEXT,
			alert_id TEXT,
			alert_kind TEXT,
			alert_direction TEXT,
			alert_boundary TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarkerNotAvailable, "failed to create marks table", err)
	}

	return nil
}
