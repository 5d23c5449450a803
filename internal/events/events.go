package events

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// subjects, published under the configured prefix
const (
	SubjectRoundEnded = "round.ended"
	SubjectGameEnded  = "game.ended"
)

// RoundEnded is published when a player calls Jap Jap
type RoundEnded struct {
	TableUUID string        `json:"tableUuid"`
	Round     int           `json:"round"`
	CallerID  int64         `json:"callerId"`
	Points    map[int64]int `json:"points"`
	Scores    map[int64]int `json:"scores"`
	Time      time.Time     `json:"time"`
}

// GameEnded is published when a game is over
type GameEnded struct {
	TableUUID string        `json:"tableUuid"`
	GameID    int64         `json:"gameId"`
	Scores    map[int64]int `json:"scores"`
	Winners   []int64       `json:"winners"`
	Time      time.Time     `json:"time"`
}

// Publisher publishes table events
type Publisher interface {
	Publish(subject string, event interface{}) error
	Close()
}

// Connect returns a NATS publisher, or a no-op publisher if url is empty
func Connect(url, subjectPrefix string) (Publisher, error) {
	if url == "" {
		return Noop{}, nil
	}

	conn, err := nats.Connect(url,
		nats.Name("japjap-server"),
		nats.Timeout(10*time.Second),
		nats.ReconnectWait(2*time.Second),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logrus.WithError(err).Warn("disconnected from NATS")
			}
		}),
	)
	if err != nil {
		return nil, err
	}

	return &natsPublisher{conn: conn, prefix: subjectPrefix}, nil
}

type natsPublisher struct {
	conn   *nats.Conn
	prefix string
}

func (n *natsPublisher) Publish(subject string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return n.conn.Publish(fullSubject(n.prefix, subject), data)
}

func (n *natsPublisher) Close() {
	if err := n.conn.Drain(); err != nil {
		logrus.WithError(err).Warn("could not drain NATS connection")
	}
}

func fullSubject(prefix, subject string) string {
	if prefix == "" {
		return subject
	}

	return prefix + "." + subject
}

// Noop drops every event
type Noop struct{}

// Publish does nothing
func (Noop) Publish(string, interface{}) error {
	return nil
}

// Close does nothing
func (Noop) Close() {}

// Recorder keeps published events in memory
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

// Recorded is an event kept by a Recorder
type Recorded struct {
	Subject string
	Event   interface{}
}

// Publish records the event
func (r *Recorder) Publish(subject string, event interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, Recorded{Subject: subject, Event: event})
	return nil
}

// Close does nothing
func (r *Recorder) Close() {}

// Events returns a copy of the recorded events
func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Recorded{}, r.events...)
}
