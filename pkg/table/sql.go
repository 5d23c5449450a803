package table

import (
	"errors"
	"strings"

	"github.com/lib/pq"
	"japjap-server/pkg/db"
)

// UserError is an error whose message can be shown to the player
type UserError string

func (e UserError) Error() string {
	return string(e)
}

var (
	// ErrInvalidEmailOrPassword is returned when the credentials do not match a player
	ErrInvalidEmailOrPassword = UserError("invalid email address and/or password")

	// ErrTableCoolDown is returned when a player creates tables too quickly
	ErrTableCoolDown = UserError("you must wait before you create another table")

	// ErrDuplicateKey happens if a player signs up with a taken email, or joins a table twice
	ErrDuplicateKey = errors.New("duplicate key constraint violation")

	// ErrPlayerNotAtTable happens when the player has no seat at the table
	ErrPlayerNotAtTable = errors.New("player is not a member of the table")
)

const uniqueViolation pq.ErrorCode = "23505"

const nowUTC = `(NOW() AT TIME ZONE 'UTC')`

var (
	playerFields = qualify("players", "id", "email", "display_name", "is_site_admin", "password_hash", "created", "updated")
	seatFields   = qualify("players_tables", "id", "player_id", "table_uuid", "is_table_admin", "active", "games_played", "wins", "total_points", "created", "updated")
	tableFields  = qualify("tables", "uuid", "name", "player_id", "created")
	gameFields   = qualify("games", "id", "table_uuid", "game_type", "data", "created", "ended")
)

// qualify prefixes each field with its relation
func qualify(relation string, fields ...string) string {
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = relation + "." + field
	}

	return strings.Join(out, ", ")
}

// normalize maps driver errors onto the errors of this package
func normalize(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return ErrDuplicateKey
	}

	return err
}

func conn() db.Querier {
	return db.Instance()
}
