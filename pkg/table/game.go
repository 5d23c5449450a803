package table

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"japjap-server/pkg/db"
)

// Game is a row in `games`
type Game struct {
	ID        int64
	TableUUID string
	GameType  string
	data      interface{}
	Created   time.Time
	Ended     time.Time
}

// GameByID returns a game by its ID
func GameByID(ctx context.Context, id int64) (*Game, error) {
	return scanGame(conn().QueryRowContext(ctx, `SELECT `+gameFields+` FROM games WHERE id = $1`, id))
}

func scanGame(row db.Scanner) (*Game, error) {
	var (
		g     Game
		raw   []byte
		ended sql.NullTime
	)

	if err := row.Scan(&g.ID, &g.TableUUID, &g.GameType, &raw, &g.Created, &ended); err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &g.data); err != nil {
			return nil, fmt.Errorf("game %d: %w", g.ID, err)
		}
	}

	g.Ended = ended.Time
	return &g, nil
}

// Data returns the log stored when the game ended
func (g *Game) Data() interface{} {
	return g.data
}

// EndGame stores the game log and adds the result to each player's seat
// scores is keyed by player ID, winners may share the lowest score
func (g *Game) EndGame(ctx context.Context, data interface{}, scores map[int64]int, winners []int64) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

	won := make(map[int64]int, len(winners))
	for _, id := range winners {
		won[id] = 1
	}

	var ended time.Time
	err = db.WithTx(ctx, func(q db.Querier) error {
		query := `UPDATE games SET data = $2, ended = ` + nowUTC + ` WHERE id = $1 RETURNING ended`
		if err := q.QueryRowContext(ctx, query, g.ID, raw).Scan(&ended); err != nil {
			return err
		}

		for playerID, score := range scores {
			if err := recordResult(ctx, q, g.TableUUID, playerID, score, won[playerID]); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	g.data = data
	g.Ended = ended
	return nil
}

func recordResult(ctx context.Context, q db.Querier, tableUUID string, playerID int64, score, win int) error {
	query := `
UPDATE players_tables
   SET games_played = games_played + 1,
       wins = wins + $3,
       total_points = total_points + $4,
       updated = ` + nowUTC + `
 WHERE table_uuid = $1 AND player_id = $2`

	res, err := q.ExecContext(ctx, query, tableUUID, playerID, win, score)
	if err != nil {
		return err
	}

	if n, _ := res.RowsAffected(); n == 0 {
		logrus.WithField("playerID", playerID).Warn("player left the table, result not recorded")
	}

	return nil
}
