package game

// Rules configures the one supported ruleset.
type Rules struct {
	MaxPlayers    int  // Seats per room
	MinPlayers    int  // Players needed to deal
	HandSize      int  // Cards dealt to each player
	Stacking      bool // Penalty cards may answer a pending draw
	ChatLimit     int  // Chat entries retained per room
	ChatView      int  // Chat entries exposed in a view
	MaxChatLength int  // Runes per chat message
}

// DefaultRules is the 8-player ruleset with chat and stacking.
func DefaultRules() Rules {
	return Rules{
		MaxPlayers:    8,
		MinPlayers:    2,
		HandSize:      7,
		Stacking:      true,
		ChatLimit:     50,
		ChatView:      20,
		MaxChatLength: 200,
	}
}

// ClassicRules is the 4-player variant without stacking.
func ClassicRules() Rules {
	r := DefaultRules()
	r.MaxPlayers = 4
	r.Stacking = false
	return r
}
