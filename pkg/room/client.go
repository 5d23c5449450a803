package room

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/table"
)

const outboxSize = 256

// ErrNotSeated is returned for messages that arrive before the client has a dealer
var ErrNotSeated = errors.New("you are not seated at the table yet")

// Client is one connection of a player to a table
// The transport owns the socket, a client only queues what needs to be written
type Client struct {
	player *table.Player
	table  *table.Table
	dealer atomic.Pointer[Dealer]

	outbox   chan interface{}
	kicked   chan string
	kickOnce sync.Once

	// CloseError is why the connection stopped reading, nil on a clean close
	CloseError error
}

// NewClient returns a client for the player at the table
func NewClient(player *table.Player, tbl *table.Table) *Client {
	return &Client{
		player: player,
		table:  tbl,
		outbox: make(chan interface{}, outboxSize),
		kicked: make(chan string, 1),
	}
}

// Send queues a message for the connection
// A client that falls behind loses the message and false is returned
func (c *Client) Send(msg interface{}) bool {
	select {
	case c.outbox <- msg:
		return true
	default:
	}

	logrus.WithField("client", c.String()).Warn("outbox is full, dropping message")
	return false
}

// Outbox returns the messages waiting to be written
func (c *Client) Outbox() <-chan interface{} {
	return c.outbox
}

// Kick asks the transport to close the connection with reason
// Only the first reason is kept
func (c *Client) Kick(reason string) {
	c.kickOnce.Do(func() {
		c.kicked <- reason
	})
}

// Kicked receives the reason once the client has been kicked
func (c *Client) Kicked() <-chan string {
	return c.kicked
}

// Player returns the player behind the connection
func (c *Client) Player() *table.Player {
	return c.player
}

// String identifies the connection as playerID:tableUUID
func (c *Client) String() string {
	if c.player == nil || c.table == nil {
		return "unknown"
	}

	return fmt.Sprintf("%d:%s", c.player.ID, c.table.UUID)
}

// ReceivedMessage hands a message read from the connection to the dealer
func (c *Client) ReceivedMessage(msg *playable.PayloadIn) {
	dealer := c.dealer.Load()
	if dealer == nil {
		logrus.WithFields(logrus.Fields{"client": c.String(), "action": msg.Action}).Warn("no dealer for message")
		c.Send(newErrorResponse(msg.Context, ErrNotSeated))
		return
	}

	dealer.ReceivedMessage(c, msg)
}
