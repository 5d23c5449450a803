package gamefactory

import (
	"github.com/sirupsen/logrus"
	"japjap-server/internal/config"
	"japjap-server/pkg/playable"
	"japjap-server/pkg/playable/japjap"
)

type japJapFactory struct{}

func (j japJapFactory) Details(additionalData playable.AdditionalData) (string, error) {
	opts := getJapJapOptions(additionalData)
	if err := opts.Validate(); err != nil {
		return "", err
	}

	return japjap.NameFromOptions(opts), nil
}

func (j japJapFactory) CreateGame(logger logrus.FieldLogger, playerIDs []int64, additionalData playable.AdditionalData) (playable.Playable, error) {
	game, err := japjap.NewGame(logger, playerIDs, getJapJapOptions(additionalData))
	if err != nil {
		return nil, err
	}

	if err := game.Deal(); err != nil {
		return nil, err
	}

	return game, nil
}

// getJapJapOptions layers the client's choices over the configured defaults
func getJapJapOptions(additionalData playable.AdditionalData) japjap.Options {
	cfg := config.Instance()

	opts := japjap.DefaultOptions()
	opts.ThinkingTime = cfg.ThinkingTime()
	opts.RoundPause = cfg.RoundPause()

	if bots, ok := additionalData.GetInt("bots"); ok {
		opts.Bots = bots
	}

	if threshold, ok := additionalData.GetInt("threshold"); ok {
		opts.Threshold = threshold
	}

	if strategy, ok := additionalData.GetString("strategy"); ok && strategy != "" {
		opts.Strategy = strategy
	}

	if handSize, ok := additionalData.GetInt("handSize"); ok {
		opts.HandSize = handSize
	}

	if seed, ok := additionalData.GetInt64("seed"); ok {
		opts.Seed = seed
	}

	return opts
}
