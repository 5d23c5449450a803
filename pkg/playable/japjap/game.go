package japjap

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"japjap-server/internal/rng"
	"japjap-server/internal/util"
	"japjap-server/pkg/deck"
	"japjap-server/pkg/playable"
)

// Phase represents the current phase of the game
type Phase int

const (
	// PhaseDealing is before the cards of a round are dealt
	PhaseDealing Phase = iota
	// PhaseTurn is when a participant, human or bot, must play
	PhaseTurn
	// PhaseRoundEnded is when Jap Jap was called and the hands are revealed
	PhaseRoundEnded
	// PhaseGameOver is when a score reached the threshold
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "dealing"
	case PhaseTurn:
		return "turn"
	case PhaseRoundEnded:
		return "roundEnded"
	case PhaseGameOver:
		return "gameOver"
	}

	return "unknown"
}

// Source is where a participant takes a card from after discarding
type Source string

// source constants
const (
	SourceDeck    Source = "deck"
	SourceDiscard Source = "discard"
)

// Game is a game of Jap Jap
type Game struct {
	options         Options
	rng             rng.Generator
	deck            *deck.Deck
	discards        *deck.Pile
	participants    []*Participant
	idToParticipant map[int64]*Participant

	phase       Phase
	round       int
	startSeat   int
	currentTurn int
	turns       int
	totalTurns  int
	lastRound   *RoundResult
	gameLog     *GameLog

	done bool

	logger  logrus.FieldLogger
	logChan chan []*playable.LogMessage

	pendingDealerAction *pendingDealerAction
}

// NewGame returns a new game of Jap Jap
// Bots are seated after the humans and receive negative player IDs
func NewGame(logger logrus.FieldLogger, playerIDs []int64, opts Options) (*Game, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	if count := len(playerIDs) + opts.Bots; count < MinPlayers || count > MaxPlayers {
		return nil, PlayerCountError{
			Min: MinPlayers,
			Max: MaxPlayers,
			Got: count,
		}
	}

	if logger == nil {
		logger = logrus.StandardLogger()
	}

	participants := make([]*Participant, 0, len(playerIDs)+opts.Bots)
	idToParticipant := make(map[int64]*Participant)
	for _, id := range playerIDs {
		if id <= 0 {
			return nil, fmt.Errorf("invalid player ID: %d", id)
		}

		if _, found := idToParticipant[id]; found {
			return nil, fmt.Errorf("player %d is already seated", id)
		}

		p := newParticipant(id)
		participants = append(participants, p)
		idToParticipant[id] = p
	}

	// Validate() already checked the name
	strategy, _ := StrategyByName(opts.Strategy)
	botNames := make(map[int64]string)
	for i := 1; i <= opts.Bots; i++ {
		p := newBot(int64(-i), uniqueBotName(botNames), strategy)
		participants = append(participants, p)
		idToParticipant[p.PlayerID] = p
		botNames[p.PlayerID] = p.Name
	}

	gen := rng.NewSeeded(opts.Seed)
	g := &Game{
		options:         opts,
		rng:             gen,
		deck:            deck.New(gen),
		discards:        &deck.Pile{},
		participants:    participants,
		idToParticipant: idToParticipant,
		phase:           PhaseDealing,
		startSeat:       gen.Intn(len(participants)),
		logger:          logger,
		logChan:         make(chan []*playable.LogMessage, 256),
		gameLog: &GameLog{
			Players:   playerIDs,
			BotNames:  botNames,
			Strategy:  strategy.Name(),
			Threshold: opts.Threshold,
			Rounds:    make([]*RoundResult, 0),
			StartTime: time.Now(),
		},
	}

	return g, nil
}

func uniqueBotName(taken map[int64]string) string {
	for {
		name := util.GetRandomName()
		unique := true
		for _, n := range taken {
			if n == name {
				unique = false
				break
			}
		}

		if unique {
			return name
		}
	}
}

// NameFromOptions returns the name of the game based on options
func NameFromOptions(opts Options) string {
	if opts.Bots == 1 {
		return "Jap Jap against 1 bot"
	}

	if opts.Bots > 1 {
		return fmt.Sprintf("Jap Jap against %d bots", opts.Bots)
	}

	return "Jap Jap"
}

// Name returns the name of the game
func (g *Game) Name() string {
	return NameFromOptions(g.options)
}

// LogChan returns a channel for sending log messages
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// Deal starts a round: a fresh shuffled deck, a full hand for every participant, and one card face up
func (g *Game) Deal() error {
	if g.phase == PhaseGameOver {
		return ErrGameIsOver
	}

	if g.phase != PhaseDealing {
		return ErrAlreadyDealt
	}

	g.deck.Shuffle()
	g.discards = &deck.Pile{}
	for _, p := range g.participants {
		p.resetForRound()
	}

	for i := 0; i < g.options.HandSize; i++ {
		for _, p := range g.participants {
			card, err := g.deck.Draw()
			if err != nil {
				return err
			}

			p.hand.AddCard(card)
		}
	}

	card, err := g.deck.Draw()
	if err != nil {
		return err
	}

	g.discards.Push(card)

	g.round++
	g.turns = 0
	g.lastRound = nil
	g.currentTurn = g.startSeat
	g.phase = PhaseTurn

	first := g.currentParticipant()
	g.logger.WithFields(logrus.Fields{
		"round":       g.round,
		"firstPlayer": first.PlayerID,
	}).Debug("dealt round")

	msg := playable.SimpleLogMessage(first.PlayerID, "Round %d: cards dealt, {} plays first", g.round)
	msg.Cards = []*deck.Card{card}
	g.sendLogMessages(msg)

	g.beginTurn()
	return nil
}

func (g *Game) currentParticipant() *Participant {
	return g.participants[g.currentTurn]
}

// beginTurn schedules the bot's move when a bot is up
func (g *Game) beginTurn() {
	if !g.currentParticipant().IsBot() {
		return
	}

	g.pendingDealerAction = &pendingDealerAction{
		Action:       dealerActionBotTurn,
		ExecuteAfter: time.Now().Add(g.options.ThinkingTime),
	}
}

// participantForAction returns the participant if they are allowed to act right now
func (g *Game) participantForAction(playerID int64) (*Participant, error) {
	if g.phase == PhaseGameOver {
		return nil, ErrGameIsOver
	}

	p, ok := g.idToParticipant[playerID]
	if !ok {
		return nil, ErrPlayerNotFound
	}

	if g.phase != PhaseTurn {
		return nil, ErrRoundNotInProgress
	}

	if g.currentParticipant() != p {
		return nil, ErrNotYourTurn
	}

	return p, nil
}

// Play discards the cards and takes a card from the source
func (g *Game) Play(playerID int64, cards []*deck.Card, source Source) error {
	p, err := g.participantForAction(playerID)
	if err != nil {
		return err
	}

	return g.play(p, cards, source)
}

// CallJapJap ends the round in the player's favor
func (g *Game) CallJapJap(playerID int64) error {
	p, err := g.participantForAction(playerID)
	if err != nil {
		return err
	}

	if err := p.canCall(g.options.JapJapLimit); err != nil {
		return err
	}

	g.endRound(p)
	return nil
}

func (g *Game) play(p *Participant, cards []*deck.Card, source Source) error {
	if len(cards) == 0 {
		return ErrNoCardsSelected
	}

	if !p.hand.HasCards(cards) {
		return ErrCardsNotInHand
	}

	if !IsValidCombination(cards) {
		return ErrInvalidCombination
	}

	switch source {
	case SourceDeck:
		if g.deck.CardsLeft() == 0 && g.discards.Len()+len(cards) < 2 {
			return deck.ErrEndOfDeck
		}
	case SourceDiscard:
		if g.discards.Top() == nil {
			return deck.ErrEmptyPile
		}
	default:
		return ErrUnknownSource
	}

	// the discard on offer is the one on top before this play
	var taken *deck.Card
	if source == SourceDiscard {
		taken, _ = g.discards.TakeTop()
	}

	discarded := deck.Hand(cards).Sorted()
	for _, c := range discarded {
		p.hand.Discard(c)
	}

	g.discards.Push(discarded...)

	if source == SourceDeck {
		card, err := g.drawFromDeck()
		if err != nil {
			return err
		}

		p.hand.AddCard(card)
	} else {
		p.hand.AddCard(taken)
	}

	p.hasPlayed = true
	g.turns++
	g.totalTurns++

	var msg *playable.LogMessage
	if source == SourceDiscard {
		msg = playable.SimpleLogMessage(p.PlayerID, "{} discarded %s and took %s", discarded, taken)
	} else {
		msg = playable.SimpleLogMessage(p.PlayerID, "{} discarded %s and drew from the deck", discarded)
	}

	msg.Cards = discarded
	g.sendLogMessages(msg)

	g.currentTurn = (g.currentTurn + 1) % len(g.participants)
	g.beginTurn()
	return nil
}

// drawFromDeck draws a card, reshuffling every discard but the top one when the deck is empty
func (g *Game) drawFromDeck() (*deck.Card, error) {
	if g.deck.CardsLeft() == 0 {
		under := g.discards.TakeAllButTop()
		if len(under) == 0 {
			return nil, deck.ErrEndOfDeck
		}

		g.deck.ShuffleDiscards(under)
		g.sendLogMessages(playable.SimpleLogMessage(0, "The discard pile was shuffled back into the deck"))
	}

	return g.deck.Draw()
}

func (g *Game) endRound(caller *Participant) {
	result := &RoundResult{
		Round:       g.round,
		CallerID:    caller.PlayerID,
		CallerValue: caller.hand.Value(),
		Turns:       g.turns,
		Points:      make(map[int64]int),
		Scores:      make(map[int64]int),
		Hands:       make(map[int64][]*deck.Card),
		EndTime:     time.Now(),
	}

	for _, p := range g.participants {
		points := 0
		if p != caller {
			points = p.hand.Value()
		}

		p.score += points
		result.Points[p.PlayerID] = points
		result.Scores[p.PlayerID] = p.score
		result.Hands[p.PlayerID] = p.hand.Sorted()
	}

	g.lastRound = result
	g.gameLog.AddRound(result)
	g.phase = PhaseRoundEnded

	g.logger.WithFields(logrus.Fields{
		"round":  g.round,
		"caller": caller.PlayerID,
		"value":  result.CallerValue,
	}).Debug("round ended")

	messages := []*playable.LogMessage{
		playable.SimpleLogMessage(caller.PlayerID, "{} called Jap Jap with %d", result.CallerValue),
	}

	for _, p := range g.participants {
		if p != caller {
			messages = append(messages, playable.SimpleLogMessage(p.PlayerID, "{} adds %d points for a score of %d", result.Points[p.PlayerID], p.score))
		}
	}

	if g.thresholdReached() {
		g.phase = PhaseGameOver
		g.gameLog.Winners = g.winners()
		g.gameLog.EndTime = time.Now()

		over := playable.SimpleLogMessage(0, "Game over, {} won")
		over.PlayerIDs = g.gameLog.Winners
		messages = append(messages, over)

		g.pendingDealerAction = &pendingDealerAction{
			Action:       dealerActionEndGame,
			ExecuteAfter: time.Now().Add(g.options.RoundPause),
		}
	} else {
		g.pendingDealerAction = &pendingDealerAction{
			Action:       dealerActionNextRound,
			ExecuteAfter: time.Now().Add(g.options.RoundPause),
		}
	}

	g.sendLogMessages(messages...)
}

func (g *Game) thresholdReached() bool {
	for _, p := range g.participants {
		if p.score >= g.options.Threshold {
			return true
		}
	}

	return false
}

// winners returns every participant tied for the lowest score
func (g *Game) winners() []int64 {
	lowest := g.participants[0].score
	for _, p := range g.participants[1:] {
		if p.score < lowest {
			lowest = p.score
		}
	}

	winners := make([]int64, 0, 1)
	for _, p := range g.participants {
		if p.score == lowest {
			winners = append(winners, p.PlayerID)
		}
	}

	return winners
}

// nextRound rotates the starting seat and deals again
func (g *Game) nextRound() error {
	if g.phase != PhaseRoundEnded {
		return errors.New("the round has not ended")
	}

	g.startSeat = (g.startSeat + 1) % len(g.participants)
	g.phase = PhaseDealing
	return g.Deal()
}

// playBotTurn runs the heuristic for the bot that is up
func (g *Game) playBotTurn() error {
	if g.phase != PhaseTurn {
		return ErrRoundNotInProgress
	}

	p := g.currentParticipant()
	if !p.IsBot() {
		return fmt.Errorf("player %d is not a bot", p.PlayerID)
	}

	if p.canCall(g.options.JapJapLimit) == nil {
		g.endRound(p)
		return nil
	}

	cards := p.strategy.ChooseDiscard(p.hand)
	source := chooseSource(remaining(p.hand, cards), g.discards.Top())
	return g.play(p, cards, source)
}

// GetEndOfGameDetails returns details at the end of the game
func (g *Game) GetEndOfGameDetails() (gameOverDetails *playable.GameOverDetails, isGameOver bool) {
	if !g.done {
		return nil, false
	}

	scores := make(map[int64]int)
	for _, p := range g.participants {
		if !p.IsBot() {
			scores[p.PlayerID] = p.score
		}
	}

	winners := make([]int64, 0)
	for _, id := range g.gameLog.Winners {
		if id > 0 {
			winners = append(winners, id)
		}
	}

	return &playable.GameOverDetails{
		Scores:  scores,
		Winners: winners,
		Log:     g.gameLog,
	}, true
}

// LastRound returns the result of the most recent round, or nil while it is being played
func (g *Game) LastRound() *RoundResult {
	return g.lastRound
}

// Log returns the game log
func (g *Game) Log() *GameLog {
	return g.gameLog
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// TotalTurns returns the number of plays made in the game
func (g *Game) TotalTurns() int {
	return g.totalTurns
}

// IsDone returns true once the game is over and the final pause has passed
func (g *Game) IsDone() bool {
	return g.done
}

func (g *Game) sendLogMessages(msg ...*playable.LogMessage) {
	select {
	case g.logChan <- msg:
	default:
		g.logger.WithField("count", len(msg)).Warn("log channel is full, dropping messages")
	}
}
