package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/graceware/prayerserver"
)

func (a *Adapter) SaveVerses(ctx context.Context, verses ...*prayerserver.Verse) error {
	if len(verses) < 1 {
		return nil
	}

	return a.inTxDo(ctx, &sql.TxOptions{}, func(ctx context.Context, tx *sql.Tx) error {
		if err := execQuery(ctx, tx, insertVersesQuery{verses: verses}); err != nil {
			return fmt.Errorf("exec insert verses query failed: %w", err)
		}
		return nil
	})
}

type insertVersesQuery struct {
	verses []*prayerserver.Verse
}

func (q insertVersesQuery) SQL() (string, []any) {
	if len(q.verses) == 0 {
		return "", nil
	}

	query := `
		insert into "verses" (
			"id",
			"reference",
			"text",
			"book_name",
			"book_number",
			"chapter",
			"verse",
			"text_length",
			"embedding_id",
			"created",
			"idx"
		)
		values (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	args := make([]any, 0, len(q.verses)*11)
	args = append(args, verseArgs(q.verses[0])...)
	for _, aVerse := range q.verses[1:] {
		query += `, (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		args = append(args, verseArgs(aVerse)...)
	}
	query += `
		on conflict("id") do update set
			"reference"=excluded."reference",
			"text"=excluded."text",
			"book_name"=excluded."book_name",
			"book_number"=excluded."book_number",
			"chapter"=excluded."chapter",
			"verse"=excluded."verse",
			"text_length"=excluded."text_length",
			"embedding_id"=excluded."embedding_id",
			"idx"=excluded."idx"
	`

	return query, args
}

func verseArgs(v *prayerserver.Verse) []any {
	return []any{
		v.ID,
		v.Reference,
		v.Text,
		v.BookName,
		v.BookNumber,
		v.Chapter,
		v.VerseNumber,
		v.TextLength,
		v.EmbeddingID,
		v.Created,
		v.Index,
	}
}

func (a *Adapter) ListVerses(ctx context.Context) ([]*prayerserver.Verse, error) {
	rows, err := a.db.QueryContext(ctx, `
		select
			"id",
			"reference",
			"text",
			"book_name",
			"book_number",
			"chapter",
			"verse",
			"text_length",
			"embedding_id",
			"created",
			"idx"
		from "verses"
		order by "idx" asc
	`)
	if err != nil {
		return nil, fmt.Errorf("list verses query failed: %w", err)
	}
	defer rows.Close()

	var verses []*prayerserver.Verse
	for rows.Next() {
		aVerse, err := scanVerse(rows)
		if err != nil {
			return nil, err
		}
		verses = append(verses, aVerse)
	}

	return verses, rows.Err()
}

func scanVerse(row Scannable) (*prayerserver.Verse, error) {
	aVerse := new(prayerserver.Verse)
	if err := row.Scan(
		&aVerse.ID,
		&aVerse.Reference,
		&aVerse.Text,
		&aVerse.BookName,
		&aVerse.BookNumber,
		&aVerse.Chapter,
		&aVerse.VerseNumber,
		&aVerse.TextLength,
		&aVerse.EmbeddingID,
		&aVerse.Created,
		&aVerse.Index,
	); err != nil {
		return nil, fmt.Errorf("scan verse failed: %w", err)
	}
	return aVerse, nil
}

func (a *Adapter) CountVerses(ctx context.Context) (int, error) {
	return a.count(ctx, `select count(*) from "verses"`)
}
