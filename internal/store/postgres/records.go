package postgres

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gosuda/hubreach/internal/domain"
)

// RecordRepo implements domain.RecordStore over the hosted backend's tables.
// Only tables in domain.KnownTables are addressable.
type RecordRepo struct {
	pool *pgxpool.Pool
}

func NewRecordRepo(pool *pgxpool.Pool) *RecordRepo {
	return &RecordRepo{pool: pool}
}

func (r *RecordRepo) Query(ctx context.Context, table string, filters []domain.Filter, limit int) ([]domain.Row, error) {
	sql, args, err := buildSelect(table, filters, limit)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Query: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Query: %w", storeError("query", table, err))
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Query: %w", storeError("query", table, err))
	}

	return result, nil
}

func (r *RecordRepo) Insert(ctx context.Context, table string, row domain.Row) ([]domain.Row, error) {
	sql, args, err := buildInsert(table, row)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Insert: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Insert: %w", storeError("insert", table, err))
	}

	result, err := collectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("recordRepo.Insert: %w", storeError("insert", table, err))
	}

	return result, nil
}

func (r *RecordRepo) Update(ctx context.Context, table string, filters []domain.Filter, patch domain.Row) error {
	sql, args, err := buildUpdate(table, filters, patch)
	if err != nil {
		return fmt.Errorf("recordRepo.Update: %w", err)
	}

	_, err = r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("recordRepo.Update: %w", storeError("update", table, err))
	}

	return nil
}

func collectRows(rows pgx.Rows) ([]domain.Row, error) {
	maps, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, err
	}

	result := make([]domain.Row, 0, len(maps))
	for _, m := range maps {
		result = append(result, domain.Row(m))
	}
	return result, nil
}

func storeError(op, table string, err error) error {
	se := &domain.StoreError{Op: op, Table: table, Message: err.Error(), Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		se.Message = pgErr.Message
		se.Code = pgErr.Code
	}

	return se
}

// --- SQL builders ---

func checkTable(table string) error {
	if !slices.Contains(domain.KnownTables, table) {
		return fmt.Errorf("unknown table %q: %w", table, domain.ErrValidation)
	}
	return nil
}

func quote(ident string) string {
	return pgx.Identifier{ident}.Sanitize()
}

// whereClause renders filters as "col = $n" terms starting at placeholder
// number start. Filters with a nil value render as IS NULL.
func whereClause(filters []domain.Filter, start int) (string, []any) {
	if len(filters) == 0 {
		return "", nil
	}

	terms := make([]string, 0, len(filters))
	args := make([]any, 0, len(filters))
	n := start
	for _, f := range filters {
		if f.Value == nil {
			terms = append(terms, quote(f.Column)+" IS NULL")
			continue
		}
		terms = append(terms, quote(f.Column)+" = $"+strconv.Itoa(n))
		args = append(args, f.Value)
		n++
	}

	return " WHERE " + strings.Join(terms, " AND "), args
}

func buildSelect(table string, filters []domain.Filter, limit int) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	if limit < 0 {
		return "", nil, fmt.Errorf("negative limit %d: %w", limit, domain.ErrValidation)
	}

	where, args := whereClause(filters, 1)
	sql := "SELECT * FROM " + quote(table) + where
	if limit > 0 {
		sql += " LIMIT " + strconv.Itoa(limit)
	}

	return sql, args, nil
}

func buildInsert(table string, row domain.Row) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	if len(row) == 0 {
		return "", nil, fmt.Errorf("empty insert into %q: %w", table, domain.ErrValidation)
	}

	cols := sortedColumns(row)
	quoted := make([]string, 0, len(cols))
	placeholders := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols))
	for i, c := range cols {
		quoted = append(quoted, quote(c))
		placeholders = append(placeholders, "$"+strconv.Itoa(i+1))
		args = append(args, row[c])
	}

	sql := "INSERT INTO " + quote(table) +
		" (" + strings.Join(quoted, ", ") + ")" +
		" VALUES (" + strings.Join(placeholders, ", ") + ")" +
		" RETURNING *"

	return sql, args, nil
}

func buildUpdate(table string, filters []domain.Filter, patch domain.Row) (string, []any, error) {
	if err := checkTable(table); err != nil {
		return "", nil, err
	}
	if len(patch) == 0 {
		return "", nil, fmt.Errorf("empty update of %q: %w", table, domain.ErrValidation)
	}
	// An unfiltered update would rewrite the whole table.
	if len(filters) == 0 {
		return "", nil, fmt.Errorf("unfiltered update of %q: %w", table, domain.ErrValidation)
	}

	cols := sortedColumns(patch)
	sets := make([]string, 0, len(cols))
	args := make([]any, 0, len(cols)+len(filters))
	for i, c := range cols {
		sets = append(sets, quote(c)+" = $"+strconv.Itoa(i+1))
		args = append(args, patch[c])
	}

	where, whereArgs := whereClause(filters, len(cols)+1)
	args = append(args, whereArgs...)

	sql := "UPDATE " + quote(table) + " SET " + strings.Join(sets, ", ") + where

	return sql, args, nil
}

func sortedColumns(row domain.Row) []string {
	cols := make([]string, 0, len(row))
	for c := range row {
		cols = append(cols, c)
	}
	slices.Sort(cols)
	return cols
}
