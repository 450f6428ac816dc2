package game

// PlayerColour represents a player's colour. ColourNone marks an empty slot.
type PlayerColour string

const (
	ColourNone   PlayerColour = ""
	ColourRed    PlayerColour = "red"
	ColourBlue   PlayerColour = "blue"
	ColourGreen  PlayerColour = "green"
	ColourYellow PlayerColour = "yellow"
)

// AllColours returns all available player colours.
func AllColours() []PlayerColour {
	return []PlayerColour{
		ColourRed,
		ColourBlue,
		ColourGreen,
		ColourYellow,
	}
}

// IsValid reports whether c is a playable colour.
func (c PlayerColour) IsValid() bool {
	for _, v := range AllColours() {
		if v == c {
			return true
		}
	}
	return false
}

// Player represents a player in the game.
type Player struct {
	Colour PlayerColour

	// Resources holds resource cards in hand.
	Resources *ItemManager[ResourceType]
	// GrowthCards holds cards that may be played this turn; OnHold holds
	// cards bought this turn, released at the end of the turn.
	GrowthCards *ItemManager[GrowthCardType]
	OnHold      *ItemManager[GrowthCardType]
	// Pieces is the remaining supply of roads, villages and towns.
	Pieces *ItemManager[PieceType]

	Ports          map[PortType]bool
	SoldiersPlayed int
	Score          *PlayerScoreManager
	CardsToDiscard int

	playedGrowthCard bool
}

// NewPlayer creates a new player with a full supply of pieces.
func NewPlayer(colour PlayerColour, rules Rules) *Player {
	pieces := NewItemManager[PieceType](ErrNoPiecesRemaining)
	pieces.AddAll(rules.Pieces)

	return &Player{
		Colour:      colour,
		Resources:   NewItemManager[ResourceType](ErrInsufficientResources),
		GrowthCards: NewItemManager[GrowthCardType](ErrNoGrowthCard),
		OnHold:      NewItemManager[GrowthCardType](ErrNoGrowthCard),
		Pieces:      pieces,
		Ports:       make(map[PortType]bool),
		Score:       NewPlayerScoreManager(),
	}
}

// HasPort reports whether the player owns a port of the given type.
func (p *Player) HasPort(port PortType) bool {
	return p.Ports[port]
}

// AddPort records ownership of a port.
func (p *Player) AddPort(port PortType) {
	p.Ports[port] = true
}

// CanPlayGrowthCard checks the one-card-per-turn rule and that a playable
// card of the given type is in hand.
func (p *Player) CanPlayGrowthCard(card GrowthCardType) error {
	if p.playedGrowthCard {
		return ErrGrowthCardAlreadyPlayed
	}
	if card == GrowthVictoryPoint || !p.GrowthCards.Has(card, 1) {
		return errorf(ErrNoGrowthCard, "no playable %s card", card)
	}
	return nil
}

// PlayGrowthCard removes a validated card from hand and records the play.
func (p *Player) PlayGrowthCard(card GrowthCardType) {
	if err := p.GrowthCards.Remove(card, 1); err != nil {
		panic("growth card vanished after validation: " + err.Error())
	}
	p.playedGrowthCard = true
}

// ResetTurn releases cards bought this turn and clears per-turn flags.
func (p *Player) ResetTurn() {
	for card, n := range p.OnHold.Snapshot() {
		p.GrowthCards.Add(card, n)
	}
	p.OnHold.Clear()
	p.playedGrowthCard = false
}

// HasPlayedGrowthCard reports whether a growth card was played this turn.
func (p *Player) HasPlayedGrowthCard() bool {
	return p.playedGrowthCard
}

// TotalGrowthCards returns playable plus held growth cards.
func (p *Player) TotalGrowthCards() int {
	return p.GrowthCards.Total() + p.OnHold.Total()
}
