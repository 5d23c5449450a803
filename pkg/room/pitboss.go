package room

import (
	"github.com/sirupsen/logrus"
	"japjap-server/internal/events"
)

// seatChange is a client arriving at or leaving a table
type seatChange struct {
	client    *Client
	connected bool
	seated    chan struct{}
}

// PitBoss hands each connection to the dealer running its table
// A dealer is started for the first connection and let go after the last one leaves
type PitBoss struct {
	dealers   map[string]*Dealer
	changes   chan seatChange
	store     Store
	publisher events.Publisher
}

// NewPitBoss returns a pit boss backed by store
// A nil store uses Postgres, a nil publisher drops events
func NewPitBoss(store Store, publisher events.Publisher) *PitBoss {
	if store == nil {
		store = DBStore{}
	}

	if publisher == nil {
		publisher = events.Noop{}
	}

	return &PitBoss{
		dealers:   make(map[string]*Dealer),
		changes:   make(chan seatChange, 256),
		store:     store,
		publisher: publisher,
	}
}

// StartShift starts the run loop
func (p *PitBoss) StartShift() {
	go func() {
		for change := range p.changes {
			p.apply(change)
		}
	}()
}

// ClientConnected seats a new connection and returns once it has a dealer
// StartShift must have been called
func (p *PitBoss) ClientConnected(client *Client) {
	seated := make(chan struct{})
	p.changes <- seatChange{client: client, connected: true, seated: seated}
	<-seated
}

// ClientDisconnected queues a closed connection
func (p *PitBoss) ClientDisconnected(client *Client) {
	p.changes <- seatChange{client: client}
}

// run loop only
func (p *PitBoss) apply(change seatChange) {
	c := change.client
	uuid := c.table.UUID
	log := logrus.WithFields(logrus.Fields{"client": c.String(), "connected": change.connected})
	log.Debug("seat change")

	dealer, ok := p.dealers[uuid]
	if change.connected {
		if !ok {
			dealer = NewDealer(p, c.table)
			dealer.StartShift()
			p.dealers[uuid] = dealer
		}

		dealer.AddClient(c)
		if change.seated != nil {
			close(change.seated)
		}
		return
	}

	if !ok {
		log.WithField("uuid", uuid).Error("no dealer for table")
		return
	}

	if dealer.RemoveClient(c) {
		dealer.EndShift()
		delete(p.dealers, uuid)
	}
}
