package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"signal_bot/pkg/db"
)

const (
	createSeenTable = `CREATE TABLE IF NOT EXISTS seen_members (
	set_key    TEXT        NOT NULL,
	member     TEXT        NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (set_key, member)
)`
	selectMembers = `SELECT member FROM seen_members WHERE set_key = $1`
	insertMembers = `INSERT INTO seen_members (set_key, member)
SELECT $1, unnest($2::text[])
ON CONFLICT (set_key, member) DO NOTHING`
)

// Postgres хранит то же множество в таблице seen_members.
type Postgres struct {
	db db.TxManager
}

func NewPostgres(tm db.TxManager) *Postgres {
	return &Postgres{db: tm}
}

// Migrate создаёт таблицу, вызывается на старте.
func (p *Postgres) Migrate(ctx context.Context) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Postgres.Migrate: %w", err)
		}
	}()
	_, err = p.db.Conn().Exec(ctx, createSeenTable)
	return err
}

func (p *Postgres) Members(ctx context.Context, key string) (out map[string]struct{}, err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Postgres.Members: %w", err)
		}
	}()

	rows, err := p.db.Conn().Query(ctx, selectMembers, key)
	if err != nil {
		return nil, err
	}
	members, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, err
	}

	out = make(map[string]struct{}, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out, nil
}

func (p *Postgres) AddMembers(ctx context.Context, key string, ids ...string) (err error) {
	defer func() {
		if err != nil {
			err = fmt.Errorf("Postgres.AddMembers: %w", err)
		}
	}()
	if len(ids) == 0 {
		return nil
	}

	return p.db.RunMaster(ctx, func(ctxTx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctxTx, insertMembers, key, ids)
		return err
	})
}
