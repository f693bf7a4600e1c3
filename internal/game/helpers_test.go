package game

import (
	"fmt"
	"testing"

	"uno-game/internal/shared"

	"github.com/stretchr/testify/require"
)

var testNames = []string{"Alice", "Bob", "Carol", "Dave", "Erin", "Frank", "Grace", "Heidi"}

func mk(id string, color shared.Color, value shared.Value) shared.Card {
	return shared.Card{ID: id, Color: color, Value: value}
}

func filler(n int) []shared.Card {
	cards := make([]shared.Card, n)
	for i := range cards {
		cards[i] = mk(fmt.Sprintf("filler-%d", i), shared.Yellow, "9")
	}
	return cards
}

func identity(cards []shared.Card) []shared.Card {
	out := make([]shared.Card, len(cards))
	copy(out, cards)
	return out
}

// lobby builds an unstarted session with n players p0..pn-1.
func lobby(t *testing.T, n int, rules Rules) *Session {
	t.Helper()
	s := NewSession("room01", "p0", testNames[0], rules)
	s.shuffle = identity
	for i := 1; i < n; i++ {
		require.NoError(t, s.Join(fmt.Sprintf("p%d", i), testNames[i]))
	}
	return s
}

// rigged builds a started session with fixed hands and piles.
func rigged(t *testing.T, rules Rules, hands [][]shared.Card, top shared.Card, draw []shared.Card) *Session {
	t.Helper()
	s := lobby(t, len(hands), rules)
	for i, h := range hands {
		s.Players[i].Hand = append([]shared.Card{}, h...)
	}
	s.DiscardPile = shared.NewPile([]shared.Card{top})
	s.DrawPile = shared.NewPile(draw)
	s.Started = true
	return s
}

type snapshot struct {
	Hands       [][]shared.Card
	Draw        []shared.Card
	Discard     []shared.Card
	Current     int
	Direction   int
	Chosen      shared.Color
	Pending     int
	MustRespond bool
	Winner      string
	ChatLen     int
}

func snap(s *Session) snapshot {
	sn := snapshot{
		Draw:        identity(s.DrawPile.Cards),
		Discard:     identity(s.DiscardPile.Cards),
		Current:     s.CurrentPlayerIndex,
		Direction:   s.Direction,
		Chosen:      s.ChosenColor,
		Pending:     s.PendingDraw,
		MustRespond: s.MustRespond,
		Winner:      s.Winner,
		ChatLen:     len(s.Chat),
	}
	for _, p := range s.Players {
		sn.Hands = append(sn.Hands, identity(p.Hand))
	}
	return sn
}
