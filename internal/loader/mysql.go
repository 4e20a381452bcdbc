package loader

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/dbsmedya/launchdash/internal/launch"
)

// MySQL column names holding the launch fields.
const (
	sqlColLaunchSite      = "launch_site"
	sqlColPayloadMass     = "payload_mass_kg"
	sqlColBoosterCategory = "booster_version_category"
	sqlColClass           = "class"
)

// validIdentifier restricts table names to alphanumerics and underscores.
var validIdentifier = regexp.MustCompile("^[a-zA-Z0-9_]+$")

// quoteIdentifier backtick-quotes a MySQL identifier after validating it.
func quoteIdentifier(name string) (string, error) {
	if !validIdentifier.MatchString(name) {
		return "", fmt.Errorf("invalid identifier %q (must contain only alphanumeric characters and underscores)", name)
	}
	return "`" + strings.ReplaceAll(name, "`", "``") + "`", nil
}

// MySQLSource reads launch records from a MySQL table.
type MySQLSource struct {
	db    *sql.DB
	table string
}

// NewMySQLSource creates a source over table on db.
func NewMySQLSource(db *sql.DB, table string) (*MySQLSource, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if _, err := quoteIdentifier(table); err != nil {
		return nil, err
	}
	return &MySQLSource{db: db, table: table}, nil
}

func (s *MySQLSource) query() string {
	cols := []string{sqlColLaunchSite, sqlColPayloadMass, sqlColBoosterCategory, sqlColClass}
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i], _ = quoteIdentifier(c)
	}
	table, _ := quoteIdentifier(s.table)
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), table)
}

// Records loads every row of the table. Outcomes outside {0, 1} and
// negative payloads are rejected like in the CSV reader.
func (s *MySQLSource) Records(ctx context.Context) ([]launch.Record, error) {
	rows, err := s.db.QueryContext(ctx, s.query())
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []launch.Record
	n := 0
	for rows.Next() {
		n++
		var (
			rec   launch.Record
			class int64
		)
		if err := rows.Scan(&rec.LaunchSite, &rec.PayloadMassKg, &rec.BoosterVersionCategory, &class); err != nil {
			return nil, fmt.Errorf("row %d: failed to scan: %w", n, err)
		}
		if rec.PayloadMassKg < 0 {
			return nil, fmt.Errorf("row %d: %w: %v is negative", n, ErrInvalidPayload, rec.PayloadMassKg)
		}
		rec.Class = launch.Outcome(class)
		if !rec.Class.Valid() {
			return nil, fmt.Errorf("row %d: %w: got %d", n, ErrInvalidOutcome, class)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.table, err)
	}

	if len(records) == 0 {
		return nil, ErrEmptyDataset
	}
	return records, nil
}
