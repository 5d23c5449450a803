package japjap

import (
	"sort"

	"japjap-server/pkg/deck"
)

// minRunLength is the fewest cards a same-suit run can have
const minRunLength = 3

// IsValidCombination returns true if the cards can be discarded together
// Valid combinations are cards of a single rank (any number, including one card),
// or three or more cards of one suit with consecutive ranks. Aces are low and runs do not wrap
func IsValidCombination(cards []*deck.Card) bool {
	if len(cards) == 0 {
		return false
	}

	for _, c := range cards {
		if c == nil {
			return false
		}
	}

	if isSameRank(cards) {
		return true
	}

	return len(cards) >= minRunLength && isRun(cards)
}

func isSameRank(cards []*deck.Card) bool {
	for _, c := range cards[1:] {
		if c.Rank != cards[0].Rank {
			return false
		}
	}

	return true
}

func isRun(cards []*deck.Card) bool {
	ranks := make([]int, len(cards))
	for i, c := range cards {
		if c.Suit != cards[0].Suit {
			return false
		}

		ranks[i] = c.Rank
	}

	sort.Ints(ranks)
	for i := 1; i < len(ranks); i++ {
		if ranks[i] != ranks[i-1]+1 {
			return false
		}
	}

	return true
}

// RankGroups returns every group of two or more cards sharing a rank, lowest rank first
func RankGroups(hand deck.Hand) []deck.Hand {
	byRank := make(map[int]deck.Hand)
	for _, c := range hand {
		byRank[c.Rank] = append(byRank[c.Rank], c)
	}

	groups := make([]deck.Hand, 0)
	for rank := deck.MinRank; rank <= deck.MaxRank; rank++ {
		if len(byRank[rank]) >= 2 {
			groups = append(groups, byRank[rank].Sorted())
		}
	}

	return groups
}

// SuitRuns returns the longest same-suit runs of three or more cards
// The runs are ordered by suit, then by rank
func SuitRuns(hand deck.Hand) []deck.Hand {
	runs := make([]deck.Hand, 0)
	for _, suit := range deck.Suits {
		var cards [deck.MaxRank + 1]*deck.Card
		for _, c := range hand {
			if c.Suit == suit {
				cards[c.Rank] = c
			}
		}

		var run deck.Hand
		for rank := deck.MinRank; rank <= deck.MaxRank+1; rank++ {
			if rank <= deck.MaxRank && cards[rank] != nil {
				run = append(run, cards[rank])
				continue
			}

			if len(run) >= minRunLength {
				runs = append(runs, run)
			}

			run = nil
		}
	}

	return runs
}

// completesCombination returns true if the card pairs with a kept card's rank,
// or makes three consecutive ranks with two kept cards of its suit
func completesCombination(kept deck.Hand, card *deck.Card) bool {
	if card == nil {
		return false
	}

	suited := make(map[int]bool)
	for _, c := range kept {
		if c.Rank == card.Rank {
			return true
		}

		if c.Suit == card.Suit {
			suited[c.Rank] = true
		}
	}

	r := card.Rank
	return (suited[r-2] && suited[r-1]) ||
		(suited[r-1] && suited[r+1]) ||
		(suited[r+1] && suited[r+2])
}
