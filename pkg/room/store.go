package room

import (
	"context"

	"japjap-server/pkg/playable"
	"japjap-server/pkg/table"
)

// Store is what the dealer reads and writes in the database
type Store interface {
	GetPlayers(ctx context.Context, tbl *table.Table) ([]*table.PlayerTable, error)
	GetActivePlayersShifted(ctx context.Context, tbl *table.Table) ([]*table.PlayerTable, error)
	// Seat returns the player's seat, table.ErrPlayerNotAtTable if there is none
	Seat(ctx context.Context, tbl *table.Table, playerID int64) (*table.PlayerTable, error)
	SetTableAdmin(ctx context.Context, seat *table.PlayerTable, isTableAdmin bool) error
	SetActive(ctx context.Context, seat *table.PlayerTable, active bool) error
	// RecordGame saves a finished game and returns its ID
	RecordGame(ctx context.Context, tbl *table.Table, gameType string, details *playable.GameOverDetails) (int64, error)
}

// DBStore is the Postgres backed store
type DBStore struct{}

// GetPlayers returns everyone seated at the table
func (DBStore) GetPlayers(ctx context.Context, tbl *table.Table) ([]*table.PlayerTable, error) {
	return tbl.GetPlayers(ctx)
}

// GetActivePlayersShifted returns the players to deal in, rotated by games played
func (DBStore) GetActivePlayersShifted(ctx context.Context, tbl *table.Table) ([]*table.PlayerTable, error) {
	return tbl.GetActivePlayersShifted(ctx)
}

// Seat looks up the player's seat at the table
func (DBStore) Seat(ctx context.Context, tbl *table.Table, playerID int64) (*table.PlayerTable, error) {
	return (&table.Player{ID: playerID}).GetPlayerTable(ctx, tbl)
}

// SetTableAdmin grants or revokes table admin rights
func (DBStore) SetTableAdmin(ctx context.Context, seat *table.PlayerTable, isTableAdmin bool) error {
	return seat.SetIsTableAdmin(ctx, isTableAdmin)
}

// SetActive sits the player in or out of the next game
func (DBStore) SetActive(ctx context.Context, seat *table.PlayerTable, active bool) error {
	return seat.SetActive(ctx, active)
}

// RecordGame creates the game record and stores the results
func (DBStore) RecordGame(ctx context.Context, tbl *table.Table, gameType string, details *playable.GameOverDetails) (int64, error) {
	record, err := tbl.CreateGame(ctx, gameType)
	if err != nil {
		return 0, err
	}

	if err := record.EndGame(ctx, details.Log, details.Scores, details.Winners); err != nil {
		return 0, err
	}

	return record.ID, nil
}
