package table

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/synacor/argon2id"
	"japjap-server/pkg/db"
)

// Player is an account, a row in `players`
type Player struct {
	ID           int64  `json:"id"`
	Email        string `json:"-"`
	DisplayName  string `json:"displayName"`
	IsSiteAdmin  bool   `json:"isSiteAdmin"`
	passwordHash string
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

// WithStats is a table along with one player's lifetime results there
type WithStats struct {
	*Table
	GamesPlayed int `json:"gamesPlayed"`
	Wins        int `json:"wins"`
	TotalPoints int `json:"totalPoints"`
}

func (p *Player) dest() []interface{} {
	return []interface{}{&p.ID, &p.Email, &p.DisplayName, &p.IsSiteAdmin, &p.passwordHash, &p.Created, &p.Updated}
}

func scanPlayer(row db.Scanner) (*Player, error) {
	p := new(Player)
	if err := row.Scan(p.dest()...); err != nil {
		return nil, err
	}

	return p, nil
}

func queryPlayer(ctx context.Context, where string, args ...interface{}) (*Player, error) {
	query := `SELECT ` + playerFields + ` FROM players WHERE ` + where
	return scanPlayer(conn().QueryRowContext(ctx, query, args...))
}

// GetPlayerByID returns a player by its ID
func GetPlayerByID(ctx context.Context, id int64) (*Player, error) {
	return queryPlayer(ctx, `id = $1`, id)
}

// GetPlayerByEmail looks up a player by email address, ignoring case
func GetPlayerByEmail(ctx context.Context, email string) (*Player, error) {
	return queryPlayer(ctx, `lower(email) = lower($1)`, email)
}

// GetPlayerByEmailAndPassword returns the player only when the password matches
func GetPlayerByEmailAndPassword(ctx context.Context, email, password string) (*Player, error) {
	p, err := GetPlayerByEmail(ctx, email)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		// keep the response time the same as a bad password
		_ = argon2id.Compare("", password)
		return nil, ErrInvalidEmailOrPassword
	case err != nil:
		return nil, err
	}

	if argon2id.Compare(p.passwordHash, password) != nil {
		return nil, ErrInvalidEmailOrPassword
	}

	return p, nil
}

// LastPlayerCreatedAt returns when remoteAddr last created a player
// The zero time is returned if it never has
func LastPlayerCreatedAt(ctx context.Context, remoteAddr string) (time.Time, error) {
	var last sql.NullTime
	err := conn().QueryRowContext(ctx, `SELECT MAX(created) FROM players WHERE remote_addr = $1`, remoteAddr).Scan(&last)
	if err != nil {
		return time.Time{}, err
	}

	return last.Time, nil
}

// CreatePlayer signs up a new player
func CreatePlayer(ctx context.Context, email, displayName, password, remoteAddr string) (*Player, error) {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return nil, err
	}

	query := `
INSERT INTO players (email, display_name, password_hash, remote_addr)
VALUES ($1, $2, $3, $4)
RETURNING ` + playerFields

	p, err := scanPlayer(conn().QueryRowContext(ctx, query, email, displayName, hash, remoteAddr))
	if err != nil {
		return nil, normalize(err)
	}

	return p, nil
}

// Save writes the player's email, display name and site admin flag
func (p *Player) Save(ctx context.Context) error {
	query := `
UPDATE players
   SET email = $2, display_name = $3, is_site_admin = $4, updated = ` + nowUTC + `
 WHERE id = $1`

	_, err := conn().ExecContext(ctx, query, p.ID, p.Email, p.DisplayName, p.IsSiteAdmin)
	return normalize(err)
}

// SetPassword hashes and stores a new password
func (p *Player) SetPassword(ctx context.Context, password string) error {
	hash, err := argon2id.DefaultHashPassword(password)
	if err != nil {
		return err
	}

	query := `UPDATE players SET password_hash = $2, updated = ` + nowUTC + ` WHERE id = $1 RETURNING updated`
	if err := conn().QueryRowContext(ctx, query, p.ID, hash).Scan(&p.Updated); err != nil {
		return err
	}

	p.passwordHash = hash
	return nil
}

// SetIsSiteAdmin grants or revokes site administration
func (p *Player) SetIsSiteAdmin(ctx context.Context, isSiteAdmin bool) error {
	if p.IsSiteAdmin == isSiteAdmin {
		return nil
	}

	query := `UPDATE players SET is_site_admin = $2, updated = ` + nowUTC + ` WHERE id = $1 RETURNING updated`
	if err := conn().QueryRowContext(ctx, query, p.ID, isSiteAdmin).Scan(&p.Updated); err != nil {
		return err
	}

	p.IsSiteAdmin = isSiteAdmin
	return nil
}

// GetPlayerTable returns the player's seat at the table
func (p *Player) GetPlayerTable(ctx context.Context, tbl *Table) (*PlayerTable, error) {
	seat, err := querySeat(ctx, conn(), `players_tables.player_id = $1 AND players_tables.table_uuid = $2`, p.ID, tbl.UUID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPlayerNotAtTable
	}

	return seat, err
}

// Join seats the player at the table
func (p *Player) Join(ctx context.Context, tbl *Table) (*PlayerTable, error) {
	var seat *PlayerTable
	err := db.WithTx(ctx, func(q db.Querier) error {
		var id int64
		row := q.QueryRowContext(ctx, `INSERT INTO players_tables (player_id, table_uuid) VALUES ($1, $2) RETURNING id`, p.ID, tbl.UUID)
		if err := row.Scan(&id); err != nil {
			return normalize(err)
		}

		var err error
		seat, err = querySeat(ctx, q, `players_tables.id = $1`, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return seat, nil
}

// GetTables returns the tables the player has a seat at, most recently joined first
func (p *Player) GetTables(ctx context.Context, offset int64, limit int) ([]*WithStats, error) {
	query := `
SELECT ` + tableFields + `, players_tables.games_played, players_tables.wins, players_tables.total_points
  FROM players_tables
  JOIN tables ON tables.uuid = players_tables.table_uuid
 WHERE players_tables.player_id = $1
 ORDER BY players_tables.id DESC
OFFSET $2 LIMIT $3`

	rows, err := conn().QueryContext(ctx, query, p.ID, offset, limit)
	return db.Collect(rows, err, func(row db.Scanner) (*WithStats, error) {
		ws := &WithStats{Table: new(Table)}
		dest := append(ws.Table.dest(), &ws.GamesPlayed, &ws.Wins, &ws.TotalPoints)
		if err := row.Scan(dest...); err != nil {
			return nil, err
		}

		return ws, nil
	})
}

// GetPlayersWithSearch lists players for the admin search
// A numeric search matches the player ID, anything else is a prefix of the display name or email
func GetPlayersWithSearch(ctx context.Context, search string, offset int64, limit int) ([]*Player, error) {
	if search == "" {
		return GetPlayers(ctx, offset, limit)
	}

	if id, _ := strconv.ParseInt(search, 10, 64); id > 0 {
		rows, err := conn().QueryContext(ctx, `SELECT `+playerFields+` FROM players WHERE id = $1`, id)
		return db.Collect(rows, err, scanPlayer)
	}

	query := `
SELECT ` + playerFields + `
  FROM players
 WHERE display_name ILIKE $1 || '%' OR email ILIKE $1 || '%'
 ORDER BY id
OFFSET $2 LIMIT $3`

	rows, err := conn().QueryContext(ctx, query, search, offset, limit)
	return db.Collect(rows, err, scanPlayer)
}

// GetPlayers pages through every player
func GetPlayers(ctx context.Context, offset int64, limit int) ([]*Player, error) {
	rows, err := conn().QueryContext(ctx, `SELECT `+playerFields+` FROM players ORDER BY id OFFSET $1 LIMIT $2`, offset, limit)
	return db.Collect(rows, err, scanPlayer)
}
