package util

import (
	"fmt"

	"japjap-server/internal/rng"
)

var adjectives = []string{
	"Lucky", "Sly", "Patient", "Bold", "Quiet", "Grumpy", "Cheeky", "Sleepy", "Clever", "Nervous",
	"Jolly", "Shady", "Sharp", "Steady", "Wily", "Dapper", "Stubborn", "Giddy", "Crafty", "Humble",
}

var nouns = []string{
	"Otter", "Fox", "Heron", "Badger", "Lynx", "Raven", "Marmot", "Gecko", "Walrus", "Ferret",
	"Magpie", "Beaver", "Ibex", "Panda", "Hedgehog", "Puffin", "Tapir", "Weasel", "Owl", "Mole",
}

var random rng.Generator = rng.Crypto{}

// GetRandomName returns a random name by combining an adjective with an animal
func GetRandomName() string {
	return fmt.Sprintf("%s %s", adjectives[random.Intn(len(adjectives))], nouns[random.Intn(len(nouns))])
}
