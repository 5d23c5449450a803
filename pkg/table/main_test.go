package table

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"japjap-server/internal/util"
	"japjap-server/pkg/db"
)

var bg = context.Background()

// dbErr is set when Postgres cannot be reached
var dbErr error

func TestMain(m *testing.M) {
	if os.Getenv("JAPJAP_MIGRATIONS_PATH") == "" {
		_ = os.Setenv("JAPJAP_MIGRATIONS_PATH", "../../sql")
	}

	if dbErr = db.Available(); dbErr == nil {
		if err := db.Migrate(); err != nil {
			fmt.Printf("could not migrate: %v\n", err)
			os.Exit(1)
		}
	}

	os.Exit(m.Run())
}

func requireDB(t *testing.T) {
	t.Helper()

	if dbErr != nil {
		t.Skipf("database is unavailable: %v", dbErr)
	}
}

// newPlayer stores a player flagged as a site admin, which skips the table cool down
func newPlayer(t *testing.T) *Player {
	t.Helper()
	requireDB(t)

	p, err := CreatePlayer(bg, util.RandomEmail(), "Test Player", "password", "127.0.0.1")
	require.NoError(t, err)

	p.IsSiteAdmin = true
	return p
}

// newTable has a new player open a table named "test table"
func newTable(t *testing.T) (*Player, *Table) {
	t.Helper()

	owner := newPlayer(t)
	tbl, err := owner.CreateTable(bg, "test table")
	require.NoError(t, err)
	return owner, tbl
}

// seatAt has a new player join tbl
func seatAt(t *testing.T, tbl *Table) (*Player, *PlayerTable) {
	t.Helper()

	p := newPlayer(t)
	seat, err := p.Join(bg, tbl)
	require.NoError(t, err)
	return p, seat
}

func seatIDs(seats []*PlayerTable) []int64 {
	ids := make([]int64, len(seats))
	for i, seat := range seats {
		ids[i] = seat.PlayerID
	}

	return ids
}
