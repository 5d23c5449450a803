package room

import (
	"japjap-server/pkg/playable"
	"japjap-server/pkg/table"
)

type clientStatePlayers struct {
	*table.PlayerTable
	IsConnected bool `json:"isConnected"`
	IsSeated    bool `json:"isSeated"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}

func newPendingGameResponse(pg *pendingGame) *playable.Response {
	res := &playable.Response{Key: "pendingGame"}
	if pg != nil {
		res.Data = pg
	}

	return res
}
