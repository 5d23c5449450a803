package japjap

import (
	"japjap-server/pkg/deck"
	"japjap-server/pkg/playable"
)

// GameState is the overall game state
// This is safe for all players to see
type GameState struct {
	Name         string              `json:"name"`
	Phase        string              `json:"phase"`
	Round        int                 `json:"round"`
	CurrentTurn  int64               `json:"currentTurn"`
	Participants []*ParticipantState `json:"participants"`
	DiscardTop   *deck.Card          `json:"discardTop"`
	DiscardCount int                 `json:"discardCount"`
	DeckCount    int                 `json:"deckCount"`
	Threshold    int                 `json:"threshold"`
	JapJapLimit  int                 `json:"japJapLimit"`
	// LastRound is only populated between rounds
	LastRound *RoundResult `json:"lastRound,omitempty"`
	// Winners is only populated once the game is over
	Winners []int64 `json:"winners,omitempty"`
}

// ParticipantState is the public state of an individual participant
type ParticipantState struct {
	PlayerID    int64  `json:"playerId"`
	Name        string `json:"name,omitempty"`
	IsBot       bool   `json:"isBot"`
	Score       int    `json:"score"`
	CardsInHand int    `json:"cardsInHand"`
	HasPlayed   bool   `json:"hasPlayed"`
	// Hand is only revealed once the round ended
	Hand []*deck.Card `json:"hand,omitempty"`
}

// Response is the player's view of the game
type Response struct {
	GameState *GameState   `json:"gameState"`
	Hand      []*deck.Card `json:"hand"`
	HandValue int          `json:"handValue"`
	HasPlayed bool         `json:"hasPlayed"`
	IsTurn    bool         `json:"isTurn"`
	CanPlay   bool         `json:"canPlay"`
	CanCall   bool         `json:"canCall"`
}

func (g *Game) getGameState() *GameState {
	revealed := g.phase == PhaseRoundEnded || g.phase == PhaseGameOver

	participants := make([]*ParticipantState, len(g.participants))
	for i, p := range g.participants {
		ps := &ParticipantState{
			PlayerID:    p.PlayerID,
			Name:        p.Name,
			IsBot:       p.IsBot(),
			Score:       p.score,
			CardsInHand: len(p.hand),
			HasPlayed:   p.hasPlayed,
		}

		if revealed {
			ps.Hand = p.hand.Sorted()
		}

		participants[i] = ps
	}

	state := &GameState{
		Name:         g.Name(),
		Phase:        g.phase.String(),
		Round:        g.round,
		Participants: participants,
		DiscardTop:   g.discards.Top(),
		DiscardCount: g.discards.Len(),
		DeckCount:    g.deck.CardsLeft(),
		Threshold:    g.options.Threshold,
		JapJapLimit:  g.options.JapJapLimit,
	}

	if g.phase == PhaseTurn {
		state.CurrentTurn = g.currentParticipant().PlayerID
	}

	if revealed {
		state.LastRound = g.lastRound
	}

	if g.phase == PhaseGameOver {
		state.Winners = g.gameLog.Winners
	}

	return state
}

// GetPlayerState returns the state of the game for the player
// Players who are not seated get the public state only
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	resp := &Response{
		GameState: g.getGameState(),
		Hand:      []*deck.Card{},
	}

	if p, ok := g.idToParticipant[playerID]; ok {
		resp.Hand = p.hand.Sorted()
		resp.HandValue = p.hand.Value()
		resp.HasPlayed = p.hasPlayed
		resp.IsTurn = g.phase == PhaseTurn && g.currentParticipant() == p
		resp.CanPlay = resp.IsTurn
		resp.CanCall = resp.IsTurn && p.canCall(g.options.JapJapLimit) == nil
	}

	return &playable.Response{
		Key:   "game",
		Value: "japjap",
		Data:  resp,
	}, nil
}
