package gamefactory

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"japjap-server/pkg/playable"
)

var factories = map[string]GameFactory{
	"japjap": japJapFactory{},
}

// GameFactory is a factory for creating games that implement the Playable interface
type GameFactory interface {
	CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error)
	// Details validates the options and returns the name of the game they make
	Details(additionalData playable.AdditionalData) (name string, err error)
}

// Get returns a factory by the given name
func Get(name string) (GameFactory, error) {
	factory, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("no factory with name: %s", name)
	}

	return factory, nil
}
