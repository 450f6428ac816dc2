package game

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"natak/internal/logger"
)

// Game is one match. It is not safe for concurrent use; callers serialize
// access per game.
type Game struct {
	ID          string
	Seed        int64
	PlayerCount int

	rules   Rules
	rng     *rand.Rand
	board   *Board
	players *PlayerManager
	bank    *BankTradeManager
	trades  *PlayerTradeManager
	state   *StateManager
	setup   bool

	rolls        []RolledDice
	sevenPending bool
	roamingRoads int
	winner       PlayerColour

	log zerolog.Logger
}

type options struct {
	id    string
	seed  int64
	rng   *rand.Rand
	rules *Rules
	log   zerolog.Logger
}

// Option configures a new game.
type Option func(*options)

// WithSeed seeds the game's random source. Games created with the same seed
// and fed the same actions end up identical.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.seed = seed
		o.rng = nil
	}
}

// WithRand injects a random source directly.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithRules overrides the default rule set.
func WithRules(rules Rules) Option {
	return func(o *options) {
		o.rules = &rules
	}
}

// WithLogger sets the logger. Games log nothing by default.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) {
		o.log = log
	}
}

// WithID sets the game id instead of generating one.
func WithID(id string) Option {
	return func(o *options) {
		o.id = id
	}
}

// NewGame creates a game for playerCount players, generates the board and
// seats the players in a random order.
func NewGame(playerCount int, opts ...Option) (*Game, error) {
	o := options{seed: time.Now().UnixNano(), log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(o.seed))
	}
	if o.id == "" {
		o.id = uuid.New().String()
	}
	rules := DefaultRules()
	if o.rules != nil {
		rules = *o.rules
	}
	if playerCount < rules.MinPlayers || playerCount > rules.MaxPlayers {
		return nil, errorf(ErrInvalidPlayerCount, "%d players, want %d to %d", playerCount, rules.MinPlayers, rules.MaxPlayers)
	}

	log := o.log.With().Str("game", o.id).Logger()
	board, err := NewBoard(o.rng, rules, log)
	if err != nil {
		return nil, err
	}
	players, err := NewPlayerManager(o.rng, playerCount, rules, log)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ID:          o.id,
		Seed:        o.seed,
		PlayerCount: playerCount,
		rules:       rules,
		rng:         o.rng,
		board:       board,
		players:     players,
		bank:        NewBankTradeManager(o.rng, rules),
		trades:      NewPlayerTradeManager(),
		state:       NewSetupStateManager(),
		setup:       true,
		log:         logger.Component(log, "Game"),
	}
	g.log.Info().Int("players", playerCount).Int64("seed", o.seed).Msg("game created")
	return g, nil
}

// Rules returns the rule set in force.
func (g *Game) Rules() Rules {
	return g.rules
}

// Board returns the board.
func (g *Game) Board() *Board {
	return g.board
}

// Players returns the player manager.
func (g *Game) Players() *PlayerManager {
	return g.players
}

// Bank returns the bank.
func (g *Game) Bank() *BankTradeManager {
	return g.bank
}

// Trades returns the player trade manager.
func (g *Game) Trades() *PlayerTradeManager {
	return g.trades
}

// State returns the current phase.
func (g *Game) State() GameState {
	return g.state.State()
}

// IsSetup reports whether the game is still in the setup draft.
func (g *Game) IsSetup() bool {
	return g.setup
}

// ValidActions returns the actions the state machine accepts now.
func (g *Game) ValidActions() []ActionType {
	return g.state.ValidActions()
}

// CurrentPlayer returns the player whose turn it is.
func (g *Game) CurrentPlayer() *Player {
	return g.players.CurrentPlayer()
}

// Player looks up a player by colour.
func (g *Game) Player(colour PlayerColour) (*Player, error) {
	return g.players.Player(colour)
}

// LastRoll returns the most recent roll.
func (g *Game) LastRoll() (RolledDice, bool) {
	if len(g.rolls) == 0 {
		return RolledDice{}, false
	}
	return g.rolls[len(g.rolls)-1], true
}

// Rolls returns every roll, oldest first.
func (g *Game) Rolls() []RolledDice {
	return append([]RolledDice(nil), g.rolls...)
}

// Winner returns the winning colour, or ColourNone while play continues.
func (g *Game) Winner() PlayerColour {
	return g.winner
}

// PlaceVillage places a village for the current player. During setup it is
// free and a second-round village pays one card per adjacent tile; otherwise
// the village is bought.
func (g *Game) PlaceVillage(p Point) error {
	if err := g.state.Check(ActionBuildVillage); err != nil {
		return err
	}
	player := g.CurrentPlayer()
	if err := g.board.CanPlaceVillage(player.Colour, p, g.setup); err != nil {
		return err
	}

	if g.setup {
		if !player.Pieces.Has(PieceVillage, 1) {
			return errorf(ErrNoPiecesRemaining, "no village pieces left")
		}
		if err := player.Pieces.Remove(PieceVillage, 1); err != nil {
			panic("place village: " + err.Error())
		}
	} else if err := NewVillagePurchase(g.rules).Apply(player, g.bank); err != nil {
		return err
	}

	if err := g.board.PlaceVillage(player.Colour, p, g.setup); err != nil {
		panic("place village: " + err.Error())
	}
	player.Score.AddVisible(HouseVillage.Points())
	if port, ok := g.board.PortAt(p); ok {
		player.AddPort(port)
	}
	if g.setup && g.players.IsSecondRoundOfSetup() {
		g.paySetupVillage(player, p)
	}

	g.mustApply(ActionBuildVillage)
	g.updateLongestRoad()
	g.checkWin()
	return nil
}

// paySetupVillage gives one card per adjacent producing tile, as far as
// the bank can cover.
func (g *Game) paySetupVillage(player *Player, p Point) {
	for _, r := range g.board.ResourcesAroundHouse(p) {
		if g.bank.Resources().Has(r, 1) {
			if err := g.bank.Pay(player, map[ResourceType]int{r: 1}); err != nil {
				panic("setup payout: " + err.Error())
			}
		}
	}
}

// PlaceRoad places a road for the current player. Setup and roaming roads
// are free; otherwise the road is bought.
func (g *Game) PlaceRoad(p, q Point) error {
	if err := g.state.Check(ActionBuildRoad); err != nil {
		return err
	}
	player := g.CurrentPlayer()
	roaming := g.State() == StateRoaming

	if g.setup {
		if err := g.board.CanPlaceSetupRoadBetweenPoints(player.Colour, p, q); err != nil {
			return err
		}
	} else if err := g.board.CanPlaceRoadBetweenPoints(player.Colour, p, q); err != nil {
		return err
	}

	if g.setup || roaming {
		if err := player.Pieces.Remove(PieceRoad, 1); err != nil {
			return err
		}
	} else if err := NewRoadPurchase(g.rules).Apply(player, g.bank); err != nil {
		return err
	}

	place := g.board.PlaceRoad
	if g.setup {
		place = g.board.PlaceSetupRoad
	}
	if err := place(player.Colour, p, q); err != nil {
		panic("place road: " + err.Error())
	}
	g.mustApply(ActionBuildRoad)

	if roaming {
		g.roamingRoads++
		if g.roamingRoads >= 2 || !player.Pieces.Has(PieceRoad, 1) {
			g.mustApply(ActionFinishRoaming)
		}
	}
	g.updateLongestRoad()
	g.checkWin()
	return nil
}

// PlaceRoamingRoads places both roads of a roaming card at once. The pair
// is checked as a whole before anything is placed, and awards and the win
// are settled once both roads are down.
func (g *Game) PlaceRoamingRoads(first, second [2]Point) error {
	if g.State() != StateRoaming || g.roamingRoads != 0 {
		return errorf(ErrInvalidGamePhase, "two roads can only be placed at the start of roaming")
	}
	player := g.CurrentPlayer()
	if err := g.board.CanPlaceRoadPair(player.Colour, first, second); err != nil {
		return err
	}
	if !player.Pieces.Has(PieceRoad, 2) {
		return errorf(ErrNoPiecesRemaining, "need 2 road pieces")
	}

	for _, road := range [][2]Point{first, second} {
		g.placeFreeRoad(player, road[0], road[1])
	}
	g.roamingRoads = 2
	g.mustApply(ActionFinishRoaming)
	g.updateLongestRoad()
	g.checkWin()
	return nil
}

// placeFreeRoad places an already validated road without a purchase.
func (g *Game) placeFreeRoad(player *Player, p, q Point) {
	if err := player.Pieces.Remove(PieceRoad, 1); err != nil {
		panic("free road: " + err.Error())
	}
	if err := g.board.PlaceRoad(player.Colour, p, q); err != nil {
		panic("free road: " + err.Error())
	}
	g.mustApply(ActionBuildRoad)
}

// PlaceTown upgrades one of the current player's villages.
func (g *Game) PlaceTown(p Point) error {
	if err := g.state.Check(ActionBuildTown); err != nil {
		return err
	}
	player := g.CurrentPlayer()
	if err := g.board.CanUpgradeVillage(player.Colour, p); err != nil {
		return err
	}
	if err := NewTownPurchase(g.rules).Apply(player, g.bank); err != nil {
		return err
	}
	if err := g.board.UpgradeVillage(player.Colour, p); err != nil {
		panic("place town: " + err.Error())
	}
	player.Score.AddVisible(HouseTown.Points() - HouseVillage.Points())

	g.mustApply(ActionBuildTown)
	g.checkWin()
	return nil
}

// RollDice rolls for the current player. A seven interrupts the turn with
// discards, the thief and a steal before play continues after the roll.
func (g *Game) RollDice() (RolledDice, error) {
	if err := g.state.Check(ActionRollDice); err != nil {
		return RolledDice{}, err
	}
	roll := rollDice(g.rng)
	g.rolls = append(g.rolls, roll)
	g.log.Debug().Int("roll", roll.Total()).Str("player", string(g.CurrentPlayer().Colour)).Msg("dice rolled")

	if roll.IsSeven() {
		g.mustApply(ActionRollSeven)
		g.sevenPending = true
		if !g.players.SetDiscardObligations(g.rules.DiscardThreshold) {
			g.mustApply(ActionAllResourcesDiscarded)
		}
		return roll, nil
	}

	g.bank.Payout(g.playerMap(), g.board.Yield(roll.Total()))
	g.mustApply(ActionRollDice)
	g.checkWin()
	return roll, nil
}

// DiscardResources discards the cards colour owes after a seven.
func (g *Game) DiscardResources(colour PlayerColour, amounts map[ResourceType]int) error {
	if err := g.state.Check(ActionDiscardResources); err != nil {
		return err
	}
	player, err := g.players.Player(colour)
	if err != nil {
		return err
	}
	if err := (DiscardResourcesPurchase{Amounts: amounts}).Apply(player, g.bank); err != nil {
		return err
	}
	g.mustApply(ActionDiscardResources)
	if !g.players.HasPendingDiscards() {
		g.mustApply(ActionAllResourcesDiscarded)
	}
	return nil
}

// MoveThief moves the thief. If no opponent has a house on the new tile the
// steal is skipped.
func (g *Game) MoveThief(p Point) error {
	if err := g.state.Check(ActionMoveThief); err != nil {
		return err
	}
	if err := g.board.MoveThief(p); err != nil {
		return err
	}
	g.mustApply(ActionMoveThief)
	if len(g.stealTargets()) == 0 {
		g.finishSteal()
	}
	return nil
}

func (g *Game) stealTargets() []PlayerColour {
	var targets []PlayerColour
	current := g.CurrentPlayer().Colour
	for _, c := range g.board.ColoursOnTile(g.board.ThiefPoint()) {
		if c != current {
			targets = append(targets, c)
		}
	}
	return targets
}

// StealResourceFromPlayer takes a random card from a player with a house on
// the thief's tile. A victim with no cards yields nothing.
func (g *Game) StealResourceFromPlayer(victim PlayerColour) (ResourceType, error) {
	if err := g.state.Check(ActionStealResource); err != nil {
		return ResourceNone, err
	}
	current := g.CurrentPlayer().Colour
	if victim == current {
		return ResourceNone, ErrCannotStealFromSelf
	}
	if _, err := g.players.Player(victim); err != nil {
		return ResourceNone, err
	}
	valid := false
	for _, c := range g.stealTargets() {
		valid = valid || c == victim
	}
	if !valid {
		return ResourceNone, errorf(ErrInvalidStealTarget, "%s has no house on %s", victim, g.board.ThiefPoint())
	}

	r, _, err := g.players.StealFromPlayer(current, victim)
	if err != nil {
		return ResourceNone, err
	}
	g.finishSteal()
	return r, nil
}

// finishSteal closes the thief interrupt. After a seven the roll completes
// and the turn continues after the roll.
func (g *Game) finishSteal() {
	g.mustApply(ActionStealResource)
	if g.sevenPending {
		g.sevenPending = false
		g.mustApply(ActionRollDice)
	}
	g.checkWin()
}

// PlaySoldierCard plays a soldier and starts the thief interrupt.
func (g *Game) PlaySoldierCard() error {
	player, err := g.checkGrowthCard(ActionPlaySoldierCard, GrowthSoldier)
	if err != nil {
		return err
	}
	player.PlayGrowthCard(GrowthSoldier)
	player.SoldiersPlayed++
	g.players.UpdateLargestArmy()
	g.mustApply(ActionPlaySoldierCard)
	return nil
}

// PlayRoamingCard plays a roaming card, allowing two free roads.
func (g *Game) PlayRoamingCard() error {
	player, err := g.checkGrowthCard(ActionPlayRoamingCard, GrowthRoaming)
	if err != nil {
		return err
	}
	player.PlayGrowthCard(GrowthRoaming)
	g.roamingRoads = 0
	g.mustApply(ActionPlayRoamingCard)
	if !player.Pieces.Has(PieceRoad, 1) {
		g.mustApply(ActionFinishRoaming)
	}
	return nil
}

// FinishRoaming ends roaming before both roads are placed.
func (g *Game) FinishRoaming() error {
	if err := g.state.Check(ActionFinishRoaming); err != nil {
		return err
	}
	g.mustApply(ActionFinishRoaming)
	g.checkWin()
	return nil
}

// PlayGathererCard takes every card of one resource from the other players.
func (g *Game) PlayGathererCard(resource ResourceType) (int, error) {
	player, err := g.checkGrowthCard(ActionPlayGathererCard, GrowthGatherer)
	if err != nil {
		return 0, err
	}
	if !resource.IsTradeable() {
		return 0, errorf(ErrInvalidResourceType, "%s", resource)
	}
	player.PlayGrowthCard(GrowthGatherer)
	n, err := g.players.GivePlayerGathererResource(player.Colour, resource)
	if err != nil {
		panic("gatherer card: " + err.Error())
	}
	g.mustApply(ActionPlayGathererCard)
	return n, nil
}

// PlayWealthCard takes two resources of the player's choice from the bank.
func (g *Game) PlayWealthCard(first, second ResourceType) error {
	player, err := g.checkGrowthCard(ActionPlayWealthCard, GrowthWealth)
	if err != nil {
		return err
	}
	free := FreeResourcesPurchase{Amounts: map[ResourceType]int{first: 1}}
	free.Amounts[second]++
	if err := free.Validate(player, g.bank); err != nil {
		return err
	}
	player.PlayGrowthCard(GrowthWealth)
	if err := free.Apply(player, g.bank); err != nil {
		panic("wealth card: " + err.Error())
	}
	g.mustApply(ActionPlayWealthCard)
	return nil
}

func (g *Game) checkGrowthCard(action ActionType, card GrowthCardType) (*Player, error) {
	if err := g.state.Check(action); err != nil {
		return nil, err
	}
	player := g.CurrentPlayer()
	if err := player.CanPlayGrowthCard(card); err != nil {
		return nil, err
	}
	return player, nil
}

// BuyGrowthCard buys a card for the current player and returns it.
func (g *Game) BuyGrowthCard() (GrowthCardType, error) {
	if err := g.state.Check(ActionBuyGrowthCard); err != nil {
		return 0, err
	}
	purchase := NewGrowthCardPurchase(g.rules)
	if err := purchase.Apply(g.CurrentPlayer(), g.bank); err != nil {
		return 0, err
	}
	g.mustApply(ActionBuyGrowthCard)
	g.checkWin()
	return purchase.Card, nil
}

// TradeWithBank trades at the best ratio available and returns it.
func (g *Game) TradeWithBank(give, want ResourceType) (int, error) {
	if err := g.state.Check(ActionTradeWithBank); err != nil {
		return 0, err
	}
	ratio, err := g.bank.Trade(g.CurrentPlayer(), give, want)
	if err != nil {
		return 0, err
	}
	g.mustApply(ActionTradeWithBank)
	return ratio, nil
}

// TradeWithBankUsingPort trades through a specific port.
func (g *Game) TradeWithBankUsingPort(port PortType, give, want ResourceType) (int, error) {
	if err := g.state.Check(ActionTradeWithBank); err != nil {
		return 0, err
	}
	ratio, err := g.bank.TradeUsingPort(g.CurrentPlayer(), port, give, want)
	if err != nil {
		return 0, err
	}
	g.mustApply(ActionTradeWithBank)
	return ratio, nil
}

// MakeTradeOffer opens an offer from the current player to the table.
func (g *Game) MakeTradeOffer(offer, request map[ResourceType]int) error {
	if err := g.state.Check(ActionMakeTradeOffer); err != nil {
		return err
	}
	if err := g.trades.MakeOffer(g.CurrentPlayer(), offer, request); err != nil {
		return err
	}
	g.mustApply(ActionMakeTradeOffer)
	return nil
}

// AcceptTradeOffer completes the active offer with colour.
func (g *Game) AcceptTradeOffer(colour PlayerColour) error {
	if err := g.state.Check(ActionRespondToTradeOffer); err != nil {
		return err
	}
	responder, err := g.players.Player(colour)
	if err != nil {
		return err
	}
	if err := g.trades.AcceptOffer(responder, g.CurrentPlayer()); err != nil {
		return err
	}
	g.mustApply(ActionRespondToTradeOffer)
	return nil
}

// RejectTradeOffer records that colour declines the active offer.
func (g *Game) RejectTradeOffer(colour PlayerColour) error {
	if err := g.state.Check(ActionRespondToTradeOffer); err != nil {
		return err
	}
	if _, err := g.players.Player(colour); err != nil {
		return err
	}
	if err := g.trades.RejectOffer(colour, g.PlayerCount); err != nil {
		return err
	}
	g.mustApply(ActionRespondToTradeOffer)
	return nil
}

// EmbargoPlayer stops colour from accepting target's offers.
func (g *Game) EmbargoPlayer(colour, target PlayerColour) error {
	if err := g.checkEmbargoPair(colour, target); err != nil {
		return err
	}
	if err := g.trades.Embargo(colour, target); err != nil {
		return err
	}
	g.mustApply(ActionEmbargoPlayer)
	return nil
}

// RemoveEmbargo lifts an embargo colour placed on target.
func (g *Game) RemoveEmbargo(colour, target PlayerColour) error {
	if err := g.checkEmbargoPair(colour, target); err != nil {
		return err
	}
	if err := g.trades.RemoveEmbargo(colour, target); err != nil {
		return err
	}
	g.mustApply(ActionEmbargoPlayer)
	return nil
}

func (g *Game) checkEmbargoPair(colour, target PlayerColour) error {
	if err := g.state.Check(ActionEmbargoPlayer); err != nil {
		return err
	}
	if _, err := g.players.Player(colour); err != nil {
		return err
	}
	_, err := g.players.Player(target)
	return err
}

// EndTurn passes play to the next player. The last setup turn switches the
// game to the main state machine.
func (g *Game) EndTurn() error {
	if err := g.state.Check(ActionEndTurn); err != nil {
		return err
	}
	g.trades.CancelOffer()
	g.mustApply(ActionEndTurn)
	next := g.players.NextPlayer()

	if g.setup && g.players.IsSetupFinished() {
		g.setup = false
		g.state = NewGameStateManager()
		g.log.Info().Msg("setup finished")
	}
	g.log.Debug().Str("player", string(next.Colour)).Stringer("state", g.State()).Msg("turn started")
	g.checkWin()
	return nil
}

func (g *Game) mustApply(action ActionType) {
	if err := g.state.Apply(action); err != nil {
		panic("state transition after validation: " + err.Error())
	}
}

func (g *Game) updateLongestRoad() {
	from, to := g.board.UpdateLongestRoad(g.players.Order())
	g.players.SetLongestRoadHolder(from, to)
}

// checkWin ends the game when the current player has enough points and the
// phase allows it.
func (g *Game) checkWin() {
	if g.winner != ColourNone {
		return
	}
	player := g.CurrentPlayer()
	if player.Score.Total() < g.rules.PointsToWin || !g.state.CanApply(ActionPlayerHasWon) {
		return
	}
	g.mustApply(ActionPlayerHasWon)
	g.winner = player.Colour
	g.log.Info().Str("winner", string(player.Colour)).Int("points", player.Score.Total()).Msg("game won")
}

func (g *Game) playerMap() map[PlayerColour]*Player {
	m := make(map[PlayerColour]*Player, g.PlayerCount)
	for _, p := range g.players.Players() {
		m[p.Colour] = p
	}
	return m
}
