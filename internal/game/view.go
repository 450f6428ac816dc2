package game

// View is a serializable picture of a game. Two games with equal views are
// in the same position.
type View struct {
	ID            string               `json:"id"`
	Seed          int64                `json:"seed"`
	Setup         bool                 `json:"setup"`
	State         GameState            `json:"state"`
	Stack         []GameState          `json:"stack"`
	ValidActions  []ActionType         `json:"validActions"`
	CurrentPlayer PlayerColour         `json:"currentPlayer"`
	TurnOrder     []PlayerColour       `json:"turnOrder"`
	Winner        PlayerColour         `json:"winner,omitempty"`
	Rolls         []RolledDice         `json:"rolls"`
	Board         BoardView            `json:"board"`
	Players       []PlayerView         `json:"players"`
	Bank          map[ResourceType]int `json:"bank"`
	GrowthDeck    int                  `json:"growthDeck"`
	TradeOffer    TradeOffer           `json:"tradeOffer"`
}

// BoardView is the board part of a View. Only claimed slots are listed.
type BoardView struct {
	Tiles             []Tile       `json:"tiles"`
	Houses            []House      `json:"houses"`
	Roads             []Road       `json:"roads"`
	Ports             []Port       `json:"ports"`
	Thief             Point        `json:"thief"`
	LongestRoadHolder PlayerColour `json:"longestRoadHolder,omitempty"`
	LongestRoadLength int          `json:"longestRoadLength"`
}

// PlayerView is one player's part of a View.
type PlayerView struct {
	Colour         PlayerColour           `json:"colour"`
	Resources      map[ResourceType]int   `json:"resources"`
	GrowthCards    map[GrowthCardType]int `json:"growthCards"`
	OnHold         map[GrowthCardType]int `json:"onHold"`
	Pieces         map[PieceType]int      `json:"pieces"`
	Ports          []PortType             `json:"ports"`
	SoldiersPlayed int                    `json:"soldiersPlayed"`
	VisiblePoints  int                    `json:"visiblePoints"`
	HiddenPoints   int                    `json:"hiddenPoints"`
	LargestArmy    bool                   `json:"largestArmy"`
	LongestRoad    bool                   `json:"longestRoad"`
	RoadLength     int                    `json:"roadLength"`
	CardsToDiscard int                    `json:"cardsToDiscard"`
	Embargoes      []PlayerColour         `json:"embargoes"`
}

// View captures the current position.
func (g *Game) View() View {
	v := View{
		ID:            g.ID,
		Seed:          g.Seed,
		Setup:         g.setup,
		State:         g.State(),
		Stack:         g.state.Stack(),
		ValidActions:  g.state.ValidActions(),
		CurrentPlayer: g.CurrentPlayer().Colour,
		TurnOrder:     g.players.Order(),
		Winner:        g.winner,
		Rolls:         g.Rolls(),
		Board:         g.board.View(),
		Bank:          g.bank.Resources().Snapshot(),
		GrowthDeck:    g.bank.GrowthCards().Total(),
		TradeOffer:    g.trades.Offer(),
	}
	for _, p := range g.players.Players() {
		pv := PlayerView{
			Colour:         p.Colour,
			Resources:      p.Resources.Snapshot(),
			GrowthCards:    p.GrowthCards.Snapshot(),
			OnHold:         p.OnHold.Snapshot(),
			Pieces:         p.Pieces.Snapshot(),
			SoldiersPlayed: p.SoldiersPlayed,
			VisiblePoints:  p.Score.VisiblePoints,
			HiddenPoints:   p.Score.HiddenPoints,
			LargestArmy:    p.Score.HasLargestArmy,
			LongestRoad:    p.Score.HasLongestRoad,
			RoadLength:     g.board.LongestRoadLength(p.Colour),
			CardsToDiscard: p.CardsToDiscard,
			Embargoes:      g.trades.Embargoes(p.Colour),
		}
		for _, port := range AllPortTypes() {
			if p.HasPort(port) {
				pv.Ports = append(pv.Ports, port)
			}
		}
		v.Players = append(v.Players, pv)
	}
	return v
}

// View captures the board.
func (b *Board) View() BoardView {
	v := BoardView{
		Ports: b.Ports(),
		Thief: b.thief,
	}
	v.LongestRoadHolder, v.LongestRoadLength = b.LongestRoadHolder()
	for _, t := range b.tiles.Tiles() {
		v.Tiles = append(v.Tiles, *t)
	}
	for _, h := range b.buildings.Houses() {
		if h.IsClaimed() {
			v.Houses = append(v.Houses, *h)
		}
	}
	for _, r := range b.buildings.Roads() {
		if r.IsClaimed() {
			v.Roads = append(v.Roads, *r)
		}
	}
	return v
}
