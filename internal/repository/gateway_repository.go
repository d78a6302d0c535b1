package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/rainbow-kids-api/internal/models"
	appErrors "github.com/noah-isme/rainbow-kids-api/pkg/errors"
)

// QueryObserver receives query timings.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// GatewayRepository is the table-oriented data gateway used by the editors,
// the public renderer and the intake forms.
type GatewayRepository struct {
	db       *sqlx.DB
	observer QueryObserver
}

// NewGatewayRepository constructs a GatewayRepository. observer may be nil.
func NewGatewayRepository(db *sqlx.DB, observer QueryObserver) *GatewayRepository {
	return &GatewayRepository{db: db, observer: observer}
}

// Select loads every row of table that satisfies q into dest, which must be a
// pointer to a slice of a struct with db tags.
func (r *GatewayRepository) Select(ctx context.Context, table string, q models.Query, dest interface{}) error {
	schema, err := lookupTable(table)
	if err != nil {
		return err
	}

	matchCols := sortedKeys(q.Match)
	if err := schema.checkColumns(table, matchCols); err != nil {
		return err
	}
	orderCols := make([]string, 0, len(q.Order))
	for _, o := range q.Order {
		orderCols = append(orderCols, o.Column)
	}
	if err := schema.checkColumns(table, orderCols); err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "SELECT %s FROM %s", strings.Join(schema.columns, ", "), table)
	where, args := buildWhere(matchCols, q.Match, 1)
	sb.WriteString(where)
	if len(q.Order) > 0 {
		parts := make([]string, 0, len(q.Order))
		for _, o := range q.Order {
			dir := "ASC"
			if o.Descending {
				dir = "DESC"
			}
			parts = append(parts, o.Column+" "+dir)
		}
		sb.WriteString(" ORDER BY " + strings.Join(parts, ", "))
	}

	start := time.Now()
	err = r.db.SelectContext(ctx, dest, sb.String(), args...)
	r.observe(table, "select", start)
	if err != nil {
		return fmt.Errorf("select %s: %w", table, err)
	}
	return nil
}

// Insert writes rows in a single transaction. Rows without an id get a fresh
// UUID. Rows may not specify timestamps; the store assigns them.
func (r *GatewayRepository) Insert(ctx context.Context, table string, rows ...models.Row) error {
	schema, err := lookupTable(table)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert %s: %w", table, err)
	}
	defer tx.Rollback() //nolint:errcheck

	start := time.Now()
	for _, row := range rows {
		values := normalizeRow(row)
		if _, ok := values["id"]; !ok {
			values["id"] = uuid.NewString()
		}
		delete(values, "created_at")
		delete(values, "updated_at")

		columns := sortedKeys(values)
		if err := schema.checkColumns(table, columns); err != nil {
			return err
		}
		placeholders := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, column := range columns {
			placeholders[i] = fmt.Sprintf("$%d", i+1)
			args[i] = values[column]
		}

		query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert %s: %w", table, err)
	}
	r.observe(table, "insert", start)
	return nil
}

// Update applies patch to every row satisfying match. Updating zero rows is
// not an error.
func (r *GatewayRepository) Update(ctx context.Context, table string, patch models.Row, match models.Match) error {
	schema, err := lookupTable(table)
	if err != nil {
		return err
	}
	if len(match) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "update requires a match filter")
	}

	values := normalizeRow(patch)
	delete(values, "id")
	delete(values, "created_at")
	delete(values, "updated_at")
	if len(values) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "update requires at least one column")
	}

	columns := sortedKeys(values)
	if err := schema.checkColumns(table, columns); err != nil {
		return err
	}
	matchCols := sortedKeys(match)
	if err := schema.checkColumns(table, matchCols); err != nil {
		return err
	}

	sets := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+len(matchCols))
	for _, column := range columns {
		args = append(args, values[column])
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if schema.hasUpdated {
		sets = append(sets, "updated_at = NOW()")
	}
	where, whereArgs := buildWhere(matchCols, match, len(args)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s", table, strings.Join(sets, ", "), where)
	start := time.Now()
	_, err = r.db.ExecContext(ctx, query, args...)
	r.observe(table, "update", start)
	if err != nil {
		return fmt.Errorf("update %s: %w", table, err)
	}
	return nil
}

// Delete removes every row satisfying match. An empty match is rejected so a
// table is never wiped by accident.
func (r *GatewayRepository) Delete(ctx context.Context, table string, match models.Match) error {
	schema, err := lookupTable(table)
	if err != nil {
		return err
	}
	if len(match) == 0 {
		return appErrors.Clone(appErrors.ErrValidation, "delete requires a match filter")
	}
	matchCols := sortedKeys(match)
	if err := schema.checkColumns(table, matchCols); err != nil {
		return err
	}

	where, args := buildWhere(matchCols, match, 1)
	query := fmt.Sprintf("DELETE FROM %s%s", table, where)
	start := time.Now()
	_, err = r.db.ExecContext(ctx, query, args...)
	r.observe(table, "delete", start)
	if err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func (r *GatewayRepository) observe(table, op string, start time.Time) {
	if r.observer == nil {
		return
	}
	r.observer.ObserveDBQuery(table+"."+op, time.Since(start))
}

func buildWhere(columns []string, match map[string]interface{}, firstArg int) (string, []interface{}) {
	if len(columns) == 0 {
		return "", nil
	}
	conditions := make([]string, len(columns))
	args := make([]interface{}, len(columns))
	for i, column := range columns {
		conditions[i] = fmt.Sprintf("%s = $%d", column, firstArg+i)
		args[i] = match[column]
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func normalizeRow(row models.Row) map[string]interface{} {
	out := make(map[string]interface{}, len(row))
	for key, value := range row {
		switch v := value.(type) {
		case []string:
			out[key] = pq.StringArray(v)
		default:
			out[key] = v
		}
	}
	return out
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
