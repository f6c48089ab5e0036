package activity

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Entry) error
	List(ctx context.Context, filter Filter) ([]*Entry, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, e *Entry) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.activity_log").
		Columns("session_id", "action", "target", "outcome", "message").
		Values(e.SessionID, string(e.Action), e.Target, string(e.Outcome), e.Message).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create activity query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt); err != nil {
		return classify("create activity failed", err)
	}
	return nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Entry, int, error) {
	sql, args, err := listQuery(filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list activity query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, classify("list activity failed", err)
	}
	defer rows.Close()

	var result []*Entry
	var total int

	for rows.Next() {
		var e Entry
		var action, outcome string
		if err := rows.Scan(
			&e.ID, &e.SessionID, &action, &e.Target, &outcome, &e.Message, &e.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan activity failed: %w", err)
		}
		e.Action = Action(action)
		e.Outcome = Outcome(outcome)
		result = append(result, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, classify("list activity failed", err)
	}

	return result, total, nil
}

// listQuery selects one page of entries, newest first, with the unpaged total.
func listQuery(filter Filter) squirrel.SelectBuilder {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "session_id", "action", "target", "outcome", "message", "created_at",
		"count(*) OVER() as total_count",
	).From("public.activity_log")

	if filter.Action != "" {
		query = query.Where(squirrel.Eq{"action": string(filter.Action)})
	}
	if filter.SessionID != "" {
		query = query.Where(squirrel.Eq{"session_id": filter.SessionID})
	}

	page := max(filter.Page, 1)
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	return query.
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(pageSize)).
		Offset(uint64((page - 1) * pageSize))
}

// classify marks errors that mean the journal itself is unusable
// (lost connection, missing table) so callers can tell them from bad input.
func classify(msg string, err error) error {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return fmt.Errorf("%s: %w: %v", msg, ErrJournalUnavailable, err)
	}

	var e *pgconn.PgError
	if errors.As(err, &e) {
		if pgerrcode.IsConnectionException(e.Code) || e.Code == pgerrcode.UndefinedTable {
			return fmt.Errorf("%s: %w: %v", msg, ErrJournalUnavailable, err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
