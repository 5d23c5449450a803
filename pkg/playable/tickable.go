package playable

import "time"

// Tickable is a game that moves forward on its own, e.g., computer players
type Tickable interface {
	// Interval is how long the wait between each tick should be
	Interval() time.Duration

	// Tick will be called periodically from the table's run loop
	// Return true if the dealer should send updated state to the clients
	Tick() (bool, error)
}
