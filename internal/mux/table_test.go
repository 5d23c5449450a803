package mux

import (
	"image/png"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"japjap-server/pkg/table"
)

// openTable has a site admin create a table
func openTable(t *testing.T, name string) (*table.Table, *table.Player, string) {
	t.Helper()

	owner, token := signUp(t, true)
	tbl, err := owner.CreateTable(bg, name)
	require.NoError(t, err)
	return tbl, owner, token
}

func uuids(tables []*table.WithStats) []string {
	ids := make([]string, len(tables))
	for i, tbl := range tables {
		ids[i] = tbl.UUID
	}

	return ids
}

func TestMux_getTable(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)

	first, owner, ownerToken := openTable(t, "First")
	second, err := owner.CreateTable(bg, "Second")
	require.NoError(t, err)
	third, err := owner.CreateTable(bg, "Third")
	require.NoError(t, err)

	guest, guestToken := signUp(t, false)
	own, err := guest.CreateTable(bg, "Guest's")
	require.NoError(t, err)
	_, err = guest.Join(bg, second)
	require.NoError(t, err)

	// most recently joined first
	var tables []*table.WithStats
	s.get("/table", ownerToken, http.StatusOK, &tables)
	assert.Equal(t, []string{third.UUID, second.UUID, first.UUID}, uuids(tables))

	s.get("/table?start=1&rows=1", ownerToken, http.StatusOK, &tables)
	assert.Equal(t, []string{second.UUID}, uuids(tables))

	s.get("/table", guestToken, http.StatusOK, &tables)
	assert.Equal(t, []string{second.UUID, own.UUID}, uuids(tables))

	got := s.failure(request{path: "/table?start=-1", token: guestToken}, http.StatusBadRequest)
	assert.Equal(t, "start cannot be less than zero", got)
}

func TestMux_postTable(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	p, token := signUp(t, false)

	var tbl table.Table
	s.post("/table", token, postTablePayload{Name: "Tuesday"}, http.StatusCreated, &tbl)
	assert.Equal(t, "Tuesday", tbl.Name)
	assert.Equal(t, p.ID, tbl.PlayerID)
	assert.NotEmpty(t, tbl.UUID)

	got := s.failure(request{method: http.MethodPost, path: "/table", token: token, body: postTablePayload{Name: "Wednesday"}}, http.StatusBadRequest)
	assert.Equal(t, table.ErrTableCoolDown.Error(), got)

	// site admins are not held back
	require.NoError(t, p.SetIsSiteAdmin(bg, true))
	s.post("/table", token, postTablePayload{Name: "Wednesday"}, http.StatusCreated, &tbl)
	assert.Equal(t, "Wednesday", tbl.Name)

	for _, name := range []string{"", "Te", "   ", strings.Repeat("x", 41)} {
		got := s.failure(request{method: http.MethodPost, path: "/table", token: token, body: postTablePayload{Name: name}}, http.StatusBadRequest)
		assert.Equal(t, errTableName.Error(), got, name)
	}
}

func TestMux_postTableUUIDSeat(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	tbl, _, ownerToken := openTable(t, "Seats")
	path := "/table/" + tbl.UUID + "/seat"

	got := s.failure(request{method: http.MethodPost, path: path, token: ownerToken}, http.StatusBadRequest)
	assert.Equal(t, "player is already at the table", got)

	guest, guestToken := signUp(t, false)
	var seat table.PlayerTable
	s.post(path, guestToken, nil, http.StatusCreated, &seat)
	assert.Equal(t, guest.ID, seat.PlayerID)
	assert.Equal(t, tbl.UUID, seat.TableUUID)
	assert.True(t, seat.Active)
	assert.False(t, seat.IsTableAdmin)
	assert.Zero(t, seat.GamesPlayed)
}

func TestMux_getTableUUID(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	s.m.config.host = "https://japjap.example"

	tbl, _, token := openTable(t, "Lookup")
	guest, _ := signUp(t, false)
	_, err := guest.Join(bg, tbl)
	require.NoError(t, err)

	var resp getTableUUIDResponse
	s.get("/table/"+tbl.UUID, token, http.StatusOK, &resp)
	assert.Equal(t, tbl.UUID, resp.UUID)
	assert.Equal(t, "Lookup", resp.Name)
	assert.Len(t, resp.Players, 2)
	assert.Equal(t, "https://japjap.example/table/"+tbl.UUID, resp.JoinURL)

	s.get("/table/00000000-0000-0000-0000-000000000000", token, http.StatusNotFound, nil)
}

func TestMux_getTableUUIDQR(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	tbl, _, token := openTable(t, "QR")

	req, err := http.NewRequest(http.MethodGet, s.URL+"/table/"+tbl.UUID+"/qr.png", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	raw, err := s.Client().Do(req)
	require.NoError(t, err)
	defer raw.Body.Close()

	assert.Equal(t, http.StatusOK, raw.StatusCode)
	assert.Equal(t, "image/png", raw.Header.Get("Content-Type"))

	img, err := png.Decode(raw.Body)
	require.NoError(t, err)
	assert.Equal(t, qrCodeSize, img.Bounds().Dx())
}
