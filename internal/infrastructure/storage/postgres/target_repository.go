package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"artargets/internal/domain/asset"
	"artargets/internal/domain/target"
)

const columns = `id, user_id, name, type, contenturl, markerpreset, patternurl, nfturlbase, scale, position, rotation, version`

// patchColumns задаёт порядок колонок в UPDATE.
var patchColumns = []string{"name", "type", "markerpreset", "patternurl", "nfturlbase", "scale", "position", "rotation"}

type TargetRepository struct {
	pool  *pgxpool.Pool
	table string
	log   *slog.Logger
}

func NewTargetRepository(pool *pgxpool.Pool, table string, log *slog.Logger) *TargetRepository {
	return &TargetRepository{
		pool:  pool,
		table: pgx.Identifier{table}.Sanitize(),
		log:   log.With("component", "target_repository"),
	}
}

func (r *TargetRepository) List(ctx context.Context, userID string) ([]target.Target, error) {
	query := `SELECT ` + columns + ` FROM ` + r.table + ` WHERE user_id = $1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list targets", "user_id", userID, "error", err)
		return nil, storeError("list", err)
	}
	defer rows.Close()

	targets := make([]target.Target, 0)
	for rows.Next() {
		t, err := scanTarget(rows)
		if err != nil {
			return nil, storeError("list", err)
		}
		targets = append(targets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storeError("list", err)
	}

	return targets, nil
}

func (r *TargetRepository) Insert(ctx context.Context, t target.Target) (target.Target, error) {
	query := `INSERT INTO ` + r.table + ` (` + columns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 1)
		RETURNING ` + columns

	row := r.pool.QueryRow(ctx, query,
		uuid.NewString(), t.UserID, t.Name, string(t.Type), t.ContentURL,
		t.MarkerPreset, t.PatternURL, t.NFTURLBase, t.Scale, t.Position, t.Rotation)

	saved, err := scanTarget(row)
	if err != nil {
		r.log.Error("failed to insert target", "user_id", t.UserID, "error", err)
		return target.Target{}, storeError("insert", err)
	}

	return saved, nil
}

func (r *TargetRepository) Update(ctx context.Context, id string, patch target.Patch) (target.Target, error) {
	query, args := buildUpdate(r.table, id, patch)

	saved, err := scanTarget(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		if patch.ExpectedVersion != nil {
			return target.Target{}, target.ErrVersionConflict
		}
		return target.Target{}, fmt.Errorf("update %s: %w", id, target.ErrNotFound)
	}
	if err != nil {
		r.log.Error("failed to update target", "id", id, "error", err)
		return target.Target{}, storeError("update", err)
	}

	return saved, nil
}

func (r *TargetRepository) Delete(ctx context.Context, id string, expectedVersion *int) error {
	query := `DELETE FROM ` + r.table + ` WHERE id = $1`
	args := []any{id}
	if expectedVersion != nil {
		query += ` AND version = $2`
		args = append(args, *expectedVersion)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to delete target", "id", id, "error", err)
		return storeError("delete", err)
	}
	if expectedVersion != nil && tag.RowsAffected() == 0 {
		return target.ErrVersionConflict
	}

	return nil
}

// buildUpdate собирает UPDATE только по заданным полям патча.
func buildUpdate(table, id string, patch target.Patch) (string, []any) {
	fields := patch.Fields()

	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+2)
	for _, col := range patchColumns {
		v, ok := fields[col]
		if !ok {
			continue
		}
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	sets = append(sets, "version = version + 1")

	args = append(args, id)
	where := fmt.Sprintf("id = $%d", len(args))
	if patch.ExpectedVersion != nil {
		args = append(args, *patch.ExpectedVersion)
		where += fmt.Sprintf(" AND version = $%d", len(args))
	}

	query := `UPDATE ` + table + ` SET ` + strings.Join(sets, ", ") + ` WHERE ` + where + ` RETURNING ` + columns
	return query, args
}

func scanTarget(row pgx.Row) (target.Target, error) {
	var t target.Target
	var typ string
	err := row.Scan(&t.ID, &t.UserID, &t.Name, &typ, &t.ContentURL,
		&t.MarkerPreset, &t.PatternURL, &t.NFTURLBase, &t.Scale, &t.Position, &t.Rotation, &t.Version)
	if err != nil {
		return target.Target{}, err
	}
	t.Type = target.Type(typ)
	return t, nil
}

func storeError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &asset.StoreError{
			Op:      op,
			Code:    pgErr.Code,
			Message: pgErr.Message,
			Details: pgErr.Detail,
			Hint:    pgErr.Hint,
			Err:     err,
		}
	}
	return &asset.StoreError{Op: op, Err: err}
}
