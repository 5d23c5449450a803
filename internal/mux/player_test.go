package mux

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"japjap-server/internal/jwt"
	"japjap-server/internal/util"
	"japjap-server/pkg/table"
)

func TestMux_postPlayer_invalid(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct {
		body interface{}
		want string
	}{
		{"{}", "missing or invalid email address"},
		{playerPayload{Email: "nope"}, "missing or invalid email address"},
		{playerPayload{DisplayName: "&"}, errDisplayName.Error()},
		{playerPayload{Email: util.RandomEmail()}, errShortPassword.Error()},
		{playerPayload{Email: util.RandomEmail(), Password: "12345"}, errShortPassword.Error()},
	} {
		got := s.failure(request{method: http.MethodPost, path: "/player", body: tc.body}, http.StatusBadRequest)
		assert.Equal(t, tc.want, got, "%+v", tc.body)
	}
}

func TestMux_postPlayer(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	s.m.config.playerCreateDelay = -time.Second

	email := util.RandomEmail()
	signup := playerPayload{Email: email, Password: "123456"}

	var created playerWithEmail
	s.post("/player", "", signup, http.StatusCreated, &created)
	assert.Positive(t, created.ID)
	assert.Equal(t, email, created.Email)
	assert.NotEmpty(t, created.DisplayName, "a display name is generated")

	got := s.failure(request{method: http.MethodPost, path: "/player", body: signup}, http.StatusBadRequest)
	assert.Equal(t, errEmailTaken.Error(), got)

	var named playerWithEmail
	s.post("/player", "", playerPayload{Email: util.RandomEmail(), Password: "123456", DisplayName: "Tommy"}, http.StatusCreated, &named)
	assert.Equal(t, "Tommy", named.DisplayName)

	s.m.config.playerCreateDelay = time.Hour
	got = s.failure(request{
		method: http.MethodPost,
		path:   "/player",
		body:   playerPayload{Email: util.RandomEmail(), Password: "123456"},
	}, http.StatusBadRequest)
	assert.Equal(t, "please wait before creating another player", got)
}

func TestMux_postPlayerAuth(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)

	email := util.RandomEmail()
	p, err := table.CreatePlayer(bg, email, "Auth", "my-password", "")
	require.NoError(t, err)

	var auth postPlayerAuthResponse
	s.post("/player/auth", "", playerPayload{Email: email, Password: "my-password"}, http.StatusOK, &auth)
	assert.Equal(t, email, auth.Player.Email)

	id, err := jwt.ValidUserID(auth.JWT)
	assert.NoError(t, err)
	assert.Equal(t, p.ID, id)

	// the token can be exchanged for the player
	var again playerWithEmail
	s.get("/player/auth/"+auth.JWT, "", http.StatusOK, &again)
	assert.Equal(t, p.ID, again.ID)
	assert.Equal(t, email, again.Email)

	got := s.failure(request{
		method: http.MethodPost,
		path:   "/player/auth",
		body:   playerPayload{Email: email, Password: "wrong-password"},
	}, http.StatusUnauthorized)
	assert.Equal(t, table.ErrInvalidEmailOrPassword.Error(), got)
}

func TestMux_getPlayerAuthJWT_invalid(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	assert.NotEmpty(t, s.failure(request{path: "/player/auth/garbage"}, http.StatusUnauthorized))

	// a valid token for a player that was deleted
	orphan, err := jwt.Sign(-1)
	require.NoError(t, err)
	assert.Equal(t, "player does not exist", s.failure(request{path: "/player/auth/" + orphan}, http.StatusNotFound))
}

func TestMux_postPlayerID(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)
	me, token := signUp(t, false)
	other, _ := signUp(t, false)
	path := fmt.Sprintf("/player/%d", me.ID)

	s.post(path, token, postPlayerIDPayload{DisplayName: "New Name"}, http.StatusOK, nil)
	reloaded, err := table.GetPlayerByID(bg, me.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Name", reloaded.DisplayName)

	for body, want := range map[postPlayerIDPayload]string{
		{Email: "not-an-email"}: "invalid email address",
		{Email: other.Email}:    errEmailTaken.Error(),
	} {
		got := s.failure(request{method: http.MethodPost, path: path, token: token, body: body}, http.StatusBadRequest)
		assert.Equal(t, want, got)
	}

	s.post(fmt.Sprintf("/player/%d", other.ID), token, postPlayerIDPayload{DisplayName: "Hacked"}, http.StatusForbidden, nil)
}

func TestMux_getPlayer(t *testing.T) {
	requireDB(t)

	s := newTestServer(t)

	_, token := signUp(t, false)
	s.get("/player", token, http.StatusForbidden, nil)

	_, adminToken := signUp(t, true)
	wanted, _ := signUp(t, false)

	var found []*playerWithEmail
	s.get("/player?search="+wanted.Email, adminToken, http.StatusOK, &found)
	if assert.Len(t, found, 1) {
		assert.Equal(t, wanted.ID, found[0].ID)
		assert.Equal(t, wanted.Email, found[0].Email)
	}
}
