package room

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"japjap-server/internal/events"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/playable/japjap"
	"japjap-server/pkg/table"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateGameEnded
)

// ErrGameInProgress is returned when a game is created while another one is running or pending
var ErrGameInProgress = errors.New("a game is already in progress")

// ErrNoPendingGame is returned when there is no countdown to cancel
var ErrNoPendingGame = errors.New("there is no game waiting to start")

// errNotAdmin is returned when a client needs table admin rights
var errNotAdmin = errors.New("you do not have the appropriate permission")

// tickInterval is used when the game does not say how often it needs a tick
const tickInterval = time.Second

// roundReporter is implemented by games that report finished rounds
type roundReporter interface {
	LastRound() *japjap.RoundResult
}

// Dealer runs a single table
// Everything touching the game happens in the run loop
type Dealer struct {
	pitBoss   *PitBoss
	table     *table.Table
	clients   map[*Client]bool
	lock      sync.RWMutex
	game      playable.Playable
	gameType  string
	store     Store
	publisher events.Publisher
	logger    logrus.FieldLogger

	pendingGame        *pendingGame
	logMessages        []*playable.LogMessage
	lastRoundPublished int

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates the dealer for a table, StartShift starts it
// The pit boss holds its lock while calling this
func NewDealer(pitBoss *PitBoss, tbl *table.Table) *Dealer {
	var store Store = DBStore{}
	var publisher events.Publisher = events.Noop{}
	if pitBoss != nil {
		if pitBoss.store != nil {
			store = pitBoss.store
		}

		if pitBoss.publisher != nil {
			publisher = pitBoss.publisher
		}
	}

	d := &Dealer{
		pitBoss:       pitBoss,
		table:         tbl,
		clients:       make(map[*Client]bool),
		store:         store,
		publisher:     publisher,
		logger:        logrus.WithField("uuid", tbl.UUID),
		logMessages:   make([]*playable.LogMessage, 0),
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}

	return d
}

// Clients is a snapshot of the connected clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift runs the dealer's loop in its own goroutine
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	d.logger.WithField("name", d.table.Name).Debug("creating dealer run loop")

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	interval := tickInterval

	for {
		// follow the game's preferred tick rate
		if want := d.tickInterval(); want != interval {
			ticker.Reset(want)
			interval = want
		}

		select {
		case s := <-d.stateChanged:
			d.handleState(s)
		case fn := <-d.execInRunLoop:
			fn()
		case <-ticker.C:
			d.tick()
		case messages := <-d.logChan():
			d.receivedLogMessages(messages)
		case <-d.pendingGameTimer():
			d.startPendingGame()
		case <-d.close:
			d.logger.Debug("terminating dealer run loop")
			if d.pendingGame != nil {
				d.pendingGame.cancel()
			}
			return
		}
	}
}

func (d *Dealer) handleState(s state) {
	switch s {
	case stateClientEvent:
		d.sendPlayerData()
	case stateGameEvent:
		d.sendGameData()
	case stateGameEnded:
		d.sendGameEnded()
		d.sendPlayerData()
	}
}

func (d *Dealer) tickInterval() time.Duration {
	if tickable, ok := d.game.(playable.Tickable); ok && tickable.Interval() > 0 {
		return tickable.Interval()
	}

	return tickInterval
}

// logChan returns the game's log channel, or nil which blocks forever
func (d *Dealer) logChan() <-chan []*playable.LogMessage {
	if d.game == nil {
		return nil
	}

	return d.game.LogChan()
}

func (d *Dealer) pendingGameTimer() <-chan time.Time {
	if d.pendingGame == nil {
		return nil
	}

	return d.pendingGame.ready()
}

// AddClient seats a connection at the table
// Older connections of the same player are kicked
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer.Store(d)
	replaced := d.connectionsOf(client.player)
	d.clients[client] = true
	d.lock.Unlock()

	for _, old := range replaced {
		old.Kick(replacedReason)
	}

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		d.sendCurrentState(client)
	}
}

// replacedReason is sent to a connection when its player connects again
const replacedReason = "connected from another window"

// connectionsOf returns the open connections of the player
// NOTE: the caller must hold the lock
func (d *Dealer) connectionsOf(player *table.Player) []*Client {
	if player == nil {
		return nil
	}

	var found []*Client
	for c := range d.clients {
		if c.player != nil && c.player.ID == player.ID {
			found = append(found, c)
		}
	}

	return found
}

// sendCurrentState catches a newly connected client up
// run loop only
func (d *Dealer) sendCurrentState(client *Client) {
	if d.pendingGame != nil {
		client.Send(newPendingGameResponse(d.pendingGame))
	}

	if d.game == nil {
		return
	}

	gs, err := d.game.GetPlayerState(client.player.ID)
	if err != nil {
		d.logger.WithError(err).Error("could not get player state")
		return
	}

	client.Send(gs)
	client.Send(newLogsResponse(d.logMessages))
}

// RemoveClient forgets the connection and reports whether it was the last one
func (d *Dealer) RemoveClient(client *Client) (empty bool) {
	d.lock.Lock()
	delete(d.clients, client)
	empty = len(d.clients) == 0
	d.lock.Unlock()

	if !empty {
		d.stateChanged <- stateClientEvent
	}

	return empty
}

// EndShift stops the run loop
func (d *Dealer) EndShift() {
	close(d.close)
}

// run loop only
func (d *Dealer) broadcast(msg interface{}) {
	for _, client := range d.Clients() {
		client.Send(msg)
	}
}

// run loop only
func (d *Dealer) sendGameEnded() {
	d.broadcast(&playable.Response{
		Key: "gameEnded",
	})
}

// run loop only
func (d *Dealer) sendGameData() {
	if d.game == nil {
		d.logger.Warn("game state changed, but there's no active game")
		return
	}

	for _, client := range d.Clients() {
		data, err := d.game.GetPlayerState(client.player.ID)
		if err != nil {
			d.logger.WithError(err).Error("could not get player state")
			continue
		}

		client.Send(data)
	}
}

// sendPlayerData broadcasts every seat plus any connected spectators
func (d *Dealer) sendPlayerData() {
	seats, err := d.store.GetPlayers(context.Background(), d.table)
	if err != nil {
		d.logger.WithError(err).Error("could not get players")
		return
	}

	state := make(map[int64]*clientStatePlayers, len(seats))
	for _, seat := range seats {
		state[seat.PlayerID] = &clientStatePlayers{PlayerTable: seat, IsSeated: true}
	}

	for _, client := range d.Clients() {
		id := client.player.ID
		if cs, ok := state[id]; ok {
			cs.IsConnected = true
			continue
		}

		state[id] = &clientStatePlayers{
			PlayerTable: &table.PlayerTable{Player: client.player, PlayerID: id, TableUUID: d.table.UUID},
			IsConnected: true,
		}
	}

	d.broadcast(&playable.Response{Key: "clientState", Data: state})
}

// requireAdmin returns errNotAdmin unless c is a site admin or a table admin
func (d *Dealer) requireAdmin(c *Client) error {
	if c.player.IsSiteAdmin {
		return nil
	}

	seat, err := d.store.Seat(context.Background(), d.table, c.player.ID)
	if err != nil {
		return err
	}

	if !seat.IsTableAdmin {
		return errNotAdmin
	}

	return nil
}

// ReceivedMessage queues a client message for the run loop
func (d *Dealer) ReceivedMessage(c *Client, msg *playable.PayloadIn) {
	d.execInRunLoop <- func() {
		d.handleMessage(c, msg)
	}
}

// tableAction handles a message that is not a game move
// A nil error is answered with OK
type tableAction func(d *Dealer, c *Client, msg *playable.PayloadIn) error

// adminActions can only be sent by table or site admins
var adminActions = map[string]tableAction{
	"createGame":    (*Dealer).createPendingGame,
	"cancelGame":    (*Dealer).cancelPendingGame,
	"terminateGame": (*Dealer).terminateGame,
	"tableAdmin":    (*Dealer).setTableAdmin,
}

// run loop only
func (d *Dealer) handleMessage(c *Client, msg *playable.PayloadIn) {
	var err error
	if action, ok := adminActions[msg.Action]; ok {
		if err = d.requireAdmin(c); err == nil {
			err = action(d, c, msg)
		}
	} else if msg.Action == "playerStatus" {
		err = d.setPlayerStatus(c, msg)
	} else {
		d.gameAction(c, msg)
		return
	}

	if err != nil {
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	c.Send(playable.OK(msg.Context))
}

// run loop only
func (d *Dealer) terminateGame(c *Client, _ *playable.PayloadIn) error {
	d.logger.WithField("player", c.player.ID).Info("game terminated")
	d.game = nil
	d.handleState(stateGameEnded)
	return nil
}

// run loop only
func (d *Dealer) createPendingGame(c *Client, msg *playable.PayloadIn) error {
	if d.game != nil || d.pendingGame != nil {
		return ErrGameInProgress
	}

	pg, err := newPendingGame(c, msg)
	if err != nil {
		return err
	}

	d.pendingGame = pg
	d.broadcast(newPendingGameResponse(pg))
	return nil
}

// run loop only
func (d *Dealer) cancelPendingGame(*Client, *playable.PayloadIn) error {
	if d.pendingGame == nil {
		return ErrNoPendingGame
	}

	d.pendingGame.cancel()
	d.pendingGame = nil
	d.broadcast(newPendingGameResponse(nil))
	return nil
}

// startPendingGame deals the active players in once the countdown is over
// run loop only
func (d *Dealer) startPendingGame() {
	pg := d.pendingGame
	if pg == nil {
		return
	}

	d.pendingGame = nil
	d.broadcast(newPendingGameResponse(nil))

	game, err := d.createGame(pg)
	if err != nil {
		d.logger.WithError(err).Warn("could not start the game")
		pg.owner.Send(newErrorResponse(pg.request.Context, err))
		return
	}

	d.game = game
	d.gameType = pg.request.Subject
	d.logMessages = make([]*playable.LogMessage, 0)
	d.lastRoundPublished = 0
	d.logger.WithField("game", game.Name()).Info("game started")
	d.sendGameData()
}

func (d *Dealer) createGame(pg *pendingGame) (playable.Playable, error) {
	players, err := d.store.GetActivePlayersShifted(context.Background(), d.table)
	if err != nil {
		return nil, err
	}

	playerIDs := make([]int64, 0, len(players))
	for _, player := range players {
		playerIDs = append(playerIDs, player.PlayerID)
	}

	return pg.deal(d.logger, playerIDs)
}

// run loop only
func (d *Dealer) gameAction(c *Client, msg *playable.PayloadIn) {
	if d.game == nil {
		d.logger.WithField("msg", msg).Warn("unknown message")
		c.Send(newErrorResponse(msg.Context, errors.New("there is no game in progress")))
		return
	}

	response, updateState, err := d.game.Action(c.player.ID, msg)
	if err != nil {
		d.logger.WithError(err).WithField("client", c.String()).Debug("could not perform action")
		c.Send(newErrorResponse(msg.Context, err))
		return
	}

	if response != nil {
		response.Context = msg.Context
		c.Send(response)
	}

	if updateState {
		d.gameUpdated()
	}
}

// tick moves the game along when bots or timers need to act
// run loop only
func (d *Dealer) tick() {
	tickable, ok := d.game.(playable.Tickable)
	if !ok {
		return
	}

	updated, err := tickable.Tick()
	if err != nil {
		d.logger.WithError(err).Error("could not tick the game")
		return
	}

	if updated {
		d.gameUpdated()
	}
}

// gameUpdated pushes the new state and handles the end of a round or game
// run loop only
func (d *Dealer) gameUpdated() {
	d.drainLogMessages()
	d.sendGameData()
	d.publishRoundEnded()
	d.checkGameOver()
}

// drainLogMessages forwards whatever the game logged so far
func (d *Dealer) drainLogMessages() {
	for {
		select {
		case messages := <-d.logChan():
			d.receivedLogMessages(messages)
		default:
			return
		}
	}
}

func (d *Dealer) receivedLogMessages(messages []*playable.LogMessage) {
	d.addLogMessages(messages)
	d.broadcast(newLogsResponse(messages))
}

func (d *Dealer) publishRoundEnded() {
	reporter, ok := d.game.(roundReporter)
	if !ok {
		return
	}

	result := reporter.LastRound()
	if result == nil || result.Round == d.lastRoundPublished {
		return
	}

	d.lastRoundPublished = result.Round
	err := d.publisher.Publish(events.SubjectRoundEnded, events.RoundEnded{
		TableUUID: d.table.UUID,
		Round:     result.Round,
		CallerID:  result.CallerID,
		Points:    result.Points,
		Scores:    result.Scores,
		Time:      result.EndTime,
	})
	if err != nil {
		d.logger.WithError(err).Warn("could not publish round")
	}
}

// checkGameOver records the game once it's over
func (d *Dealer) checkGameOver() {
	if d.game == nil {
		return
	}

	details, isOver := d.game.GetEndOfGameDetails()
	if !isOver {
		return
	}

	d.game = nil

	gameID, err := d.store.RecordGame(context.Background(), d.table, d.gameType, details)
	if err != nil {
		d.logger.WithError(err).Error("could not save game")
	}

	err = d.publisher.Publish(events.SubjectGameEnded, events.GameEnded{
		TableUUID: d.table.UUID,
		GameID:    gameID,
		Scores:    details.Scores,
		Winners:   details.Winners,
		Time:      time.Now(),
	})
	if err != nil {
		d.logger.WithError(err).Warn("could not publish game")
	}

	d.logger.WithField("gameId", gameID).Info("game ended")
	d.handleState(stateGameEnded)
}

// run loop only
func (d *Dealer) setTableAdmin(_ *Client, msg *playable.PayloadIn) error {
	isTableAdmin, ok := msg.AdditionalData.GetBool("isTableAdmin")
	if !ok {
		return errors.New("isTableAdmin is not boolean")
	}

	playerID, ok := msg.AdditionalData.GetInt64("playerId")
	if !ok {
		return errors.New("could not obtain playerId")
	}

	seat, err := d.store.Seat(context.Background(), d.table, playerID)
	if err != nil {
		return err
	}

	if err := d.store.SetTableAdmin(context.Background(), seat, isTableAdmin); err != nil {
		return err
	}

	d.handleState(stateClientEvent)
	return nil
}

// setPlayerStatus sits a player in or out
// Changing someone else's status needs admin rights
// run loop only
func (d *Dealer) setPlayerStatus(c *Client, msg *playable.PayloadIn) error {
	active, ok := msg.AdditionalData.GetBool("active")
	if !ok {
		return errors.New("active is not boolean")
	}

	playerID := c.player.ID
	if id, ok := msg.AdditionalData.GetInt64("playerId"); ok && id != playerID {
		if err := d.requireAdmin(c); err != nil {
			return err
		}

		playerID = id
	}

	seat, err := d.store.Seat(context.Background(), d.table, playerID)
	if err != nil {
		return err
	}

	if err := d.store.SetActive(context.Background(), seat, active); err != nil {
		return err
	}

	d.handleState(stateClientEvent)
	return nil
}
