package room

import (
	"time"

	"github.com/sirupsen/logrus"
	"japjap-server/internal/config"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/room/gamefactory"
)

// startGameDelay is the countdown between creating a game and dealing it
var startGameDelay = func() time.Duration {
	return time.Duration(config.Instance().StartGameDelay) * time.Second
}

// pendingGame is a requested game counting down to its start
// The exported fields are broadcast so clients can show the countdown
type pendingGame struct {
	Name     string    `json:"name"`
	Start    time.Time `json:"start"`
	PlayerID int64     `json:"playerId"`

	factory gamefactory.GameFactory
	owner   *Client
	request *playable.PayloadIn
	timer   *time.Timer
}

// newPendingGame validates the request and starts the countdown
func newPendingGame(owner *Client, request *playable.PayloadIn) (*pendingGame, error) {
	factory, err := gamefactory.Get(request.Subject)
	if err != nil {
		return nil, err
	}

	name, err := factory.Details(request.AdditionalData)
	if err != nil {
		return nil, err
	}

	delay := startGameDelay()
	return &pendingGame{
		Name:     name,
		Start:    time.Now().Add(delay),
		PlayerID: owner.player.ID,
		factory:  factory,
		owner:    owner,
		request:  request,
		timer:    time.NewTimer(delay),
	}, nil
}

// ready fires once when the countdown is over
func (p *pendingGame) ready() <-chan time.Time {
	return p.timer.C
}

// deal creates the game for the seated players
func (p *pendingGame) deal(logger logrus.FieldLogger, playerIDs []int64) (playable.Playable, error) {
	return p.factory.CreateGame(logger, playerIDs, p.request.AdditionalData)
}

// cancel stops the countdown, ready never fires afterwards
func (p *pendingGame) cancel() {
	p.timer.Stop()
}
