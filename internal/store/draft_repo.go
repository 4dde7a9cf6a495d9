package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/examdraft/internal/draft"
	"github.com/google/uuid"
)

// draftRepo implements DraftRepo with ent's SQL builder.
type draftRepo struct {
	drv *entsql.Driver
	b   *entsql.DialectBuilder
}

func (r *draftRepo) Save(ctx context.Context, d *draft.Draft) (int, error) {
	d.Touch()
	data, err := draft.Encode(d)
	if err != nil {
		return 0, err
	}

	var rev int
	err = r.withTx(ctx, func(tx dialect.Tx) error {
		current, found, err := r.currentRevision(ctx, tx, d.ID)
		if err != nil {
			return err
		}
		rev = current + 1

		var q string
		var args []any
		if found {
			q, args = r.b.Update(draftsTable).
				Set("code", d.Code).
				Set("description", d.Description).
				Set("format_version", d.FormatVersion).
				Set("revision", rev).
				Set("sections", len(d.Sections)).
				Set("ready", d.Ready()).
				Set("data", data).
				Set("updated_at", d.UpdatedAt.UnixNano()).
				Where(entsql.EQ("id", d.ID.String())).
				Query()
		} else {
			q, args = r.b.Insert(draftsTable).
				Columns("id", "code", "description", "format_version", "revision", "sections", "ready", "data", "created_at", "updated_at").
				Values(d.ID.String(), d.Code, d.Description, d.FormatVersion, rev, len(d.Sections), d.Ready(), data,
					d.CreatedAt.UnixNano(), d.UpdatedAt.UnixNano()).
				Query()
		}
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("write draft: %w", err)
		}

		q, args = r.b.Insert(revisionsTable).
			Columns("draft_id", "revision", "data", "created_at").
			Values(d.ID.String(), rev, data, d.UpdatedAt.UnixNano()).
			Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("append revision: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("save draft %s: %w", d.Code, err)
	}

	slog.Debug("draft saved", "id", d.ID, "code", d.Code, "revision", rev)
	return rev, nil
}

func (r *draftRepo) currentRevision(ctx context.Context, tx dialect.Tx, id uuid.UUID) (int, bool, error) {
	q, args := r.b.Select("revision").
		From(entsql.Table(draftsTable)).
		Where(entsql.EQ("id", id.String())).
		Query()

	var rows entsql.Rows
	if err := tx.Query(ctx, q, args, &rows); err != nil {
		return 0, false, fmt.Errorf("query revision: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return 0, false, rows.Err()
	}
	var rev int
	if err := rows.Scan(&rev); err != nil {
		return 0, false, fmt.Errorf("scan revision: %w", err)
	}
	return rev, true, nil
}

func (r *draftRepo) Get(ctx context.Context, id uuid.UUID) (*draft.Draft, error) {
	return r.getBy(ctx, entsql.EQ("id", id.String()))
}

func (r *draftRepo) Find(ctx context.Context, ref string) (*draft.Draft, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return r.Get(ctx, id)
	}
	return r.getBy(ctx, entsql.EQ("code", ref))
}

func (r *draftRepo) getBy(ctx context.Context, where *entsql.Predicate) (*draft.Draft, error) {
	q, args := r.b.Select("data").
		From(entsql.Table(draftsTable)).
		Where(where).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query draft: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query draft: %w", err)
		}
		return nil, ErrNotFound
	}
	var data []byte
	if err := rows.Scan(&data); err != nil {
		return nil, fmt.Errorf("scan draft: %w", err)
	}
	return draft.Decode(data)
}

func (r *draftRepo) List(ctx context.Context) ([]DraftInfo, error) {
	q, args := r.b.Select("id", "code", "description", "revision", "sections", "ready", "updated_at").
		From(entsql.Table(draftsTable)).
		OrderBy(entsql.Desc("updated_at"), "code").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var out []DraftInfo
	for rows.Next() {
		var (
			info    DraftInfo
			id      string
			updated int64
		)
		if err := rows.Scan(&id, &info.Code, &info.Description, &info.Revision, &info.Sections, &info.Ready, &updated); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("draft %s: bad id: %w", info.Code, err)
		}
		info.ID = parsed
		info.UpdatedAt = time.Unix(0, updated).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

func (r *draftRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.withTx(ctx, func(tx dialect.Tx) error {
		q, args := r.b.Delete(revisionsTable).Where(entsql.EQ("draft_id", id.String())).Query()
		if err := tx.Exec(ctx, q, args, nil); err != nil {
			return fmt.Errorf("delete revisions: %w", err)
		}

		var res sql.Result
		q, args = r.b.Delete(draftsTable).Where(entsql.EQ("id", id.String())).Query()
		if err := tx.Exec(ctx, q, args, &res); err != nil {
			return fmt.Errorf("delete draft: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete draft: %w", err)
		}
		if n == 0 {
			return ErrNotFound
		}
		slog.Debug("draft deleted", "id", id)
		return nil
	})
}

func (r *draftRepo) Revisions(ctx context.Context, id uuid.UUID, limit int) ([]Revision, error) {
	sel := r.b.Select("revision", "data", "created_at").
		From(entsql.Table(revisionsTable)).
		Where(entsql.EQ("draft_id", id.String())).
		OrderBy(entsql.Desc("revision"))
	if limit > 0 {
		sel.Limit(limit)
	}
	q, args := sel.Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return nil, fmt.Errorf("query revisions: %w", err)
	}
	defer rows.Close()

	var out []Revision
	for rows.Next() {
		var (
			rev     Revision
			data    []byte
			created int64
		)
		if err := rows.Scan(&rev.Number, &data, &created); err != nil {
			return nil, fmt.Errorf("scan revision: %w", err)
		}
		d, err := draft.Decode(data)
		if err != nil {
			return nil, fmt.Errorf("revision %d: %w", rev.Number, err)
		}
		rev.Draft = d
		rev.SavedAt = time.Unix(0, created).UTC()
		out = append(out, rev)
	}
	return out, rows.Err()
}

func (r *draftRepo) Prune(ctx context.Context, id uuid.UUID, keep int) error {
	if keep < 1 {
		return fmt.Errorf("prune: keep must be >= 1, got %d", keep)
	}

	// Find the threshold: the newest revision past the ones kept.
	q, args := r.b.Select("revision").
		From(entsql.Table(revisionsTable)).
		Where(entsql.EQ("draft_id", id.String())).
		OrderBy(entsql.Desc("revision")).
		Offset(keep).
		Limit(1).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, q, args, &rows); err != nil {
		return fmt.Errorf("query revisions for prune: %w", err)
	}
	var threshold int
	found := rows.Next()
	if found {
		if err := rows.Scan(&threshold); err != nil {
			rows.Close()
			return fmt.Errorf("scan revision: %w", err)
		}
	}
	if err := rows.Close(); err != nil {
		return fmt.Errorf("query revisions for prune: %w", err)
	}
	if !found {
		return nil // fewer than keep revisions exist
	}

	q, args = r.b.Delete(revisionsTable).
		Where(entsql.And(
			entsql.EQ("draft_id", id.String()),
			entsql.LTE("revision", threshold),
		)).
		Query()
	if err := r.drv.Exec(ctx, q, args, nil); err != nil {
		return fmt.Errorf("prune revisions: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, rolling back on error.
func (r *draftRepo) withTx(ctx context.Context, fn func(tx dialect.Tx) error) error {
	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return fmt.Errorf("%w (rollback: %v)", err, rerr)
		}
		return err
	}
	return tx.Commit()
}
