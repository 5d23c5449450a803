package japjap

import (
	"fmt"
	"sort"

	"japjap-server/pkg/deck"
)

// strategy names
const (
	StrategyNaive  = "naive"
	StrategyGreedy = "greedy"
)

// StrategyNames lists the available bot strategies
var StrategyNames = []string{StrategyNaive, StrategyGreedy}

// lowCardValue and highAverage drive the bot's decision to take a lone low card from the discard
const (
	lowCardValue = 3
	highAverage  = 6.0
)

// Strategy decides which cards a bot discards
type Strategy interface {
	// Name returns the name of the strategy
	Name() string
	// ChooseDiscard returns a valid combination from the hand
	ChooseDiscard(hand deck.Hand) []*deck.Card
}

// StrategyByName returns the named strategy
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case StrategyNaive:
		return NaiveStrategy{}, nil
	case StrategyGreedy:
		return GreedyStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// NaiveStrategy sheds pairs first, then runs, then the lowest card
type NaiveStrategy struct{}

// Name returns "naive"
func (NaiveStrategy) Name() string {
	return StrategyNaive
}

// ChooseDiscard picks the lowest-value rank group, else the lowest-value run, else the lowest card
func (NaiveStrategy) ChooseDiscard(hand deck.Hand) []*deck.Card {
	if len(hand) == 0 {
		return nil
	}

	if group := lowestValue(RankGroups(hand)); group != nil {
		return group
	}

	if run := lowestValue(SuitRuns(hand)); run != nil {
		return run
	}

	sorted := byValue(hand)
	return []*deck.Card{sorted[0]}
}

// GreedyStrategy sheds as many points as it can every turn
type GreedyStrategy struct{}

// Name returns "greedy"
func (GreedyStrategy) Name() string {
	return StrategyGreedy
}

// ChooseDiscard picks the combination with the highest value, preferring more cards on a tie
func (GreedyStrategy) ChooseDiscard(hand deck.Hand) []*deck.Card {
	if len(hand) == 0 {
		return nil
	}

	candidates := append(RankGroups(hand), SuitRuns(hand)...)
	for _, c := range hand {
		candidates = append(candidates, deck.Hand{c})
	}

	var best deck.Hand
	for _, candidate := range candidates {
		if best == nil ||
			candidate.Value() > best.Value() ||
			(candidate.Value() == best.Value() && len(candidate) > len(best)) {
			best = candidate
		}
	}

	return best
}

func lowestValue(combos []deck.Hand) deck.Hand {
	var lowest deck.Hand
	for _, combo := range combos {
		if lowest == nil || combo.Value() < lowest.Value() {
			lowest = combo
		}
	}

	return lowest
}

// byValue returns a copy of the hand ordered by value, ties broken by suit
func byValue(hand deck.Hand) deck.Hand {
	sorted := hand.Sorted()
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Value() < sorted[j].Value()
	})

	return sorted
}

// chooseSource decides where a bot draws from once it knows which cards it keeps
func chooseSource(kept deck.Hand, available *deck.Card) Source {
	if available == nil {
		return SourceDeck
	}

	if completesCombination(kept, available) {
		return SourceDiscard
	}

	if available.Value() <= lowCardValue && (len(kept) == 0 || kept.Average() > highAverage) {
		return SourceDiscard
	}

	return SourceDeck
}

// remaining returns the hand without the given cards
func remaining(hand deck.Hand, cards []*deck.Card) deck.Hand {
	kept := hand.Clone()
	for _, c := range cards {
		kept.Discard(c)
	}

	return kept
}
