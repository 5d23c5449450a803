package mux

import (
	"net/http"

	"japjap-server/internal/config"
	"japjap-server/pkg/playable/japjap"
)

// gameOptionsResponse tells a client which options a new game accepts
type gameOptionsResponse struct {
	Bots        int      `json:"bots"`
	MinPlayers  int      `json:"minPlayers"`
	MaxPlayers  int      `json:"maxPlayers"`
	Strategy    string   `json:"strategy"`
	Strategies  []string `json:"strategies"`
	HandSize    int      `json:"handSize"`
	Threshold   int      `json:"threshold"`
	JapJapLimit int      `json:"japJapLimit"`
	// StartGameDelay is the countdown before a created game starts, in seconds
	StartGameDelay int `json:"startGameDelay"`
}

// getGameJapJap describes the options a new Jap Jap game accepts
func (m *Mux) getGameJapJap(w http.ResponseWriter, _ *http.Request) error {
	opts := japjap.DefaultOptions()
	writeJSON(w, http.StatusOK, gameOptionsResponse{
		Bots:           opts.Bots,
		MinPlayers:     japjap.MinPlayers,
		MaxPlayers:     japjap.MaxPlayers,
		Strategy:       opts.Strategy,
		Strategies:     japjap.StrategyNames,
		HandSize:       opts.HandSize,
		Threshold:      opts.Threshold,
		JapJapLimit:    opts.JapJapLimit,
		StartGameDelay: config.Instance().StartGameDelay,
	})

	return nil
}
