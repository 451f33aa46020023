package postgres

import (
	"context"
	"errors"

	"fitsync/training-service/internal/domain"
	"fitsync/training-service/internal/repository"
	"fitsync/training-service/internal/repository/query"

	"github.com/jackc/pgx/v5"
	"golang.org/x/sync/errgroup"
)

// scanFunc reads one row in the column order of the entity's select list.
type scanFunc[T any] func(row pgx.Row) (*T, error)

// listPage runs the page query and the count query concurrently. Both share
// the same predicate, so the count always describes the rows being paged.
// db must be safe for concurrent use (a pool, not a transaction).
func listPage[T any](ctx context.Context, db repository.DBTX, e *query.Entity, params repository.ListParams, scan scanFunc[T]) (*domain.Page[T], error) {
	q := query.BuildList(e, query.Scope{Role: params.Caller.Role, ID: params.Caller.ID}, params.Filters, params.Page, params.Limit)

	var (
		items = []T{}
		total int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := db.Query(gctx, q.SelectSQL, q.SelectArgs...)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			item, err := scan(rows)
			if err != nil {
				return err
			}
			items = append(items, *item)
		}
		return rows.Err()
	})
	g.Go(func() error {
		return db.QueryRow(gctx, q.CountSQL, q.CountArgs...).Scan(&total)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &domain.Page[T]{
		Items: items,
		Pagination: domain.Pagination{
			Page:       q.Page,
			Limit:      q.Limit,
			TotalCount: total,
			TotalPages: query.TotalPages(total, q.Limit),
		},
	}, nil
}

// getOne fetches a single row by id.
func getOne[T any](ctx context.Context, db repository.DBTX, e *query.Entity, id string, scan scanFunc[T]) (*T, error) {
	item, err := scan(db.QueryRow(ctx, query.SelectByID(e), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return item, err
}

// updateOne applies an allow-listed partial update and returns the new row.
func updateOne[T any](ctx context.Context, db repository.DBTX, e *query.Entity, id string, updates []repository.Update, scan scanFunc[T]) (*T, error) {
	sql, args, err := query.BuildUpdate(e, id, updates)
	if err != nil {
		return nil, err
	}
	item, err := scan(db.QueryRow(ctx, sql, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	return item, err
}

// deleteOne removes a row by id.
func deleteOne(ctx context.Context, db repository.DBTX, e *query.Entity, id string) error {
	var deleted string
	err := db.QueryRow(ctx, query.DeleteByID(e), id).Scan(&deleted)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	return err
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
