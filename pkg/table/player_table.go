package table

import (
	"context"
	"time"

	"japjap-server/pkg/db"
)

// PlayerTable is a seat, a row in `players_tables`
type PlayerTable struct {
	Player       *Player   `json:"player"`
	PlayerID     int64     `json:"playerId"`
	TableUUID    string    `json:"tableUuid"`
	ID           int64     `json:"id"`
	IsTableAdmin bool      `json:"isTableAdmin"`
	Active       bool      `json:"active"`
	GamesPlayed  int       `json:"gamesPlayed"`
	Wins         int       `json:"wins"`
	TotalPoints  int       `json:"totalPoints"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

func (pt *PlayerTable) dest() []interface{} {
	return []interface{}{
		&pt.ID, &pt.PlayerID, &pt.TableUUID, &pt.IsTableAdmin, &pt.Active,
		&pt.GamesPlayed, &pt.Wins, &pt.TotalPoints, &pt.Created, &pt.Updated,
	}
}

// scanSeat reads the player columns followed by the seat columns
func scanSeat(row db.Scanner) (*PlayerTable, error) {
	pt := &PlayerTable{Player: new(Player)}
	if err := row.Scan(append(pt.Player.dest(), pt.dest()...)...); err != nil {
		return nil, err
	}

	return pt, nil
}

const seatsFrom = `
  FROM players_tables
  JOIN players ON players.id = players_tables.player_id
 WHERE `

func querySeat(ctx context.Context, q db.Querier, where string, args ...interface{}) (*PlayerTable, error) {
	return scanSeat(q.QueryRowContext(ctx, `SELECT `+playerFields+`, `+seatFields+seatsFrom+where, args...))
}

func querySeats(ctx context.Context, where string, args ...interface{}) ([]*PlayerTable, error) {
	rows, err := conn().QueryContext(ctx, `SELECT `+playerFields+`, `+seatFields+seatsFrom+where, args...)
	return db.Collect(rows, err, scanSeat)
}

// SetActive controls whether the seat is dealt into the next game
func (pt *PlayerTable) SetActive(ctx context.Context, active bool) error {
	return pt.setFlag(ctx, "active", active, &pt.Active)
}

// SetIsTableAdmin controls whether the seat can administer the table
func (pt *PlayerTable) SetIsTableAdmin(ctx context.Context, isTableAdmin bool) error {
	return pt.setFlag(ctx, "is_table_admin", isTableAdmin, &pt.IsTableAdmin)
}

// setFlag updates a boolean column, column is never user input
func (pt *PlayerTable) setFlag(ctx context.Context, column string, value bool, field *bool) error {
	query := `UPDATE players_tables SET ` + column + ` = $2, updated = ` + nowUTC + ` WHERE id = $1 RETURNING updated`
	if err := conn().QueryRowContext(ctx, query, pt.ID, value).Scan(&pt.Updated); err != nil {
		return err
	}

	*field = value
	return nil
}
