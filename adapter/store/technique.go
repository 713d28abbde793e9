package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveTechniques(ctx context.Context, techniques ...*prayerserver.Technique) error {
	if len(techniques) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQuery(ctx, tx, insertTechniquesQuery{techniques: techniques}); err != nil {
			return fmt.Errorf("exec insert techniques query failed: %w", err)
		}
		return nil
	})
}

type insertTechniquesQuery struct {
	techniques []*prayerserver.Technique
}

func (q insertTechniquesQuery) SQL() (string, []any) {
	if len(q.techniques) == 0 {
		return "", nil
	}

	query := `
		insert into "therapy_manual" (
			"id",
			"title",
			"content",
			"page",
			"created"
		)
		values (?, ?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.techniques)*5)
	args = append(args, techniqueArgs(q.techniques[0])...)
	for _, aTechnique := range q.techniques[1:] {
		query += `, (?, ?, ?, ?, ?)`
		args = append(args, techniqueArgs(aTechnique)...)
	}
	query += `
		on conflict("id") do update set
			"title"=excluded."title",
			"content"=excluded."content",
			"page"=excluded."page"
	`

	return query, args
}

func techniqueArgs(t *prayerserver.Technique) []any {
	return []any{
		t.ID,
		t.Title,
		t.Content,
		t.Page,
		t.Created,
	}
}

func (a *Adapter) ListTechniques(ctx context.Context) ([]*prayerserver.Technique, error) {
	rows, err := a.db.QueryContext(ctx, `
		select
			"id",
			"title",
			"content",
			"page",
			"created"
		from "therapy_manual"
		order by "id" asc
	`)
	if err != nil {
		return nil, fmt.Errorf("list techniques query failed: %w", err)
	}
	defer rows.Close()

	var techniques []*prayerserver.Technique
	for rows.Next() {
		aTechnique, err := scanTechnique(rows)
		if err != nil {
			return nil, err
		}
		techniques = append(techniques, aTechnique)
	}

	return techniques, rows.Err()
}

func scanTechnique(row Scannable) (*prayerserver.Technique, error) {
	aTechnique := new(prayerserver.Technique)
	if err := row.Scan(
		&aTechnique.ID,
		&aTechnique.Title,
		&aTechnique.Content,
		&aTechnique.Page,
		&aTechnique.Created,
	); err != nil {
		return nil, fmt.Errorf("scan technique failed: %w", err)
	}
	return aTechnique, nil
}

func (a *Adapter) CountTechniques(ctx context.Context) (int, error) {
	return a.count(ctx, `select count(*) from "therapy_manual"`)
}
