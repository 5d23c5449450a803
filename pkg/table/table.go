package table

import (
	"context"
	"time"

	"github.com/google/uuid"
	"japjap-server/pkg/db"
)

// tableCreationCoolDown is how long a player waits between creating tables
const tableCreationCoolDown = time.Minute

// Table is where players sit down to play Jap Jap
// A table has many seats and, over time, many games
type Table struct {
	UUID string `json:"uuid"`
	Name string `json:"name"`
	// PlayerID is who created the table
	PlayerID int64     `json:"playerId"`
	Created  time.Time `json:"created"`
}

func (t *Table) dest() []interface{} {
	return []interface{}{&t.UUID, &t.Name, &t.PlayerID, &t.Created}
}

// CreateTable creates a table and seats its creator as the table admin
func (p *Player) CreateTable(ctx context.Context, name string) (*Table, error) {
	if err := p.checkTableCoolDown(ctx); err != nil {
		return nil, err
	}

	tbl := &Table{UUID: uuid.New().String(), Name: name, PlayerID: p.ID}
	err := db.WithTx(ctx, func(q db.Querier) error {
		row := q.QueryRowContext(ctx, `INSERT INTO tables (uuid, name, player_id) VALUES ($1, $2, $3) RETURNING created`, tbl.UUID, name, p.ID)
		if err := row.Scan(&tbl.Created); err != nil {
			return err
		}

		_, err := q.ExecContext(ctx, `INSERT INTO players_tables (player_id, table_uuid, is_table_admin) VALUES ($1, $2, TRUE)`, p.ID, tbl.UUID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return tbl, nil
}

// checkTableCoolDown returns ErrTableCoolDown if the player created a table too recently
// Site admins are exempt
func (p *Player) checkTableCoolDown(ctx context.Context) error {
	if p.IsSiteAdmin {
		return nil
	}

	since := time.Now().UTC().Add(-tableCreationCoolDown)

	var recent bool
	query := `SELECT EXISTS (SELECT 1 FROM tables WHERE player_id = $1 AND created >= $2 AT TIME ZONE 'UTC')`
	if err := conn().QueryRowContext(ctx, query, p.ID, since).Scan(&recent); err != nil {
		return err
	}

	if recent {
		return ErrTableCoolDown
	}

	return nil
}

// GetTableByUUID returns a table by its UUID
func GetTableByUUID(ctx context.Context, id string) (*Table, error) {
	tbl := new(Table)
	if err := conn().QueryRowContext(ctx, `SELECT `+tableFields+` FROM tables WHERE uuid = $1`, id).Scan(tbl.dest()...); err != nil {
		return nil, err
	}

	return tbl, nil
}

// Reload refreshes the table from the database
func (t *Table) Reload(ctx context.Context) error {
	fresh, err := GetTableByUUID(ctx, t.UUID)
	if err != nil {
		return err
	}

	*t = *fresh
	return nil
}

// GetPlayers returns every seat at the table in the order they joined
func (t *Table) GetPlayers(ctx context.Context) ([]*PlayerTable, error) {
	return querySeats(ctx, `players_tables.table_uuid = $1 ORDER BY players_tables.id`, t.UUID)
}

// GetActivePlayersShifted returns the active seats, rotated one seat per game played
// so the first player to act moves around the table
func (t *Table) GetActivePlayersShifted(ctx context.Context) ([]*PlayerTable, error) {
	active, err := querySeats(ctx, `players_tables.table_uuid = $1 AND players_tables.active ORDER BY players_tables.id`, t.UUID)
	if err != nil || len(active) == 0 {
		return active, err
	}

	played, err := t.GetGamesCount(ctx)
	if err != nil {
		return nil, err
	}

	return rotate(active, int(played%int64(len(active)))), nil
}

// rotate returns a copy of seats starting at seat n, wrapping around
func rotate(seats []*PlayerTable, n int) []*PlayerTable {
	if len(seats) == 0 {
		return nil
	}

	n %= len(seats)
	rotated := make([]*PlayerTable, 0, len(seats))
	rotated = append(rotated, seats[n:]...)
	return append(rotated, seats[:n]...)
}

// GetGamesCount returns how many games the table has started
func (t *Table) GetGamesCount(ctx context.Context) (int64, error) {
	var count int64
	err := conn().QueryRowContext(ctx, `SELECT COUNT(*) FROM games WHERE table_uuid = $1`, t.UUID).Scan(&count)
	return count, err
}

// CreateGame records the start of a game at the table
func (t *Table) CreateGame(ctx context.Context, gameType string) (*Game, error) {
	query := `INSERT INTO games (table_uuid, game_type) VALUES ($1, $2) RETURNING ` + gameFields
	return scanGame(conn().QueryRowContext(ctx, query, t.UUID, gameType))
}
