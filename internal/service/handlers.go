package service

import (
	"natak/internal/game"
	"natak/internal/protocol"
)

// Apply routes an action message to the matching game method.
func Apply(g *game.Game, msg *protocol.Message) (protocol.ActionResultPayload, error) {
	result := protocol.ActionResultPayload{Player: g.CurrentPlayer().Colour}
	var err error

	switch msg.Type {
	case protocol.TypePlaceVillage:
		err = handlePoint(msg, g.PlaceVillage)
	case protocol.TypePlaceTown:
		err = handlePoint(msg, g.PlaceTown)
	case protocol.TypeMoveThief:
		err = handlePoint(msg, g.MoveThief)
	case protocol.TypePlaceRoad:
		err = handlePlaceRoad(g, msg)
	case protocol.TypePlaceRoamingRoads:
		err = handlePlaceRoamingRoads(g, msg)
	case protocol.TypeRollDice:
		var roll game.RolledDice
		if roll, err = g.RollDice(); err == nil {
			result.Roll = &roll
		}
	case protocol.TypeDiscardResources:
		err = handleDiscardResources(g, msg)
	case protocol.TypeStealResource:
		err = handleStealResource(g, msg, &result)
	case protocol.TypePlaySoldierCard:
		err = g.PlaySoldierCard()
	case protocol.TypePlayRoamingCard:
		err = g.PlayRoamingCard()
	case protocol.TypeFinishRoaming:
		err = g.FinishRoaming()
	case protocol.TypePlayGathererCard:
		err = handleGathererCard(g, msg, &result)
	case protocol.TypePlayWealthCard:
		err = handleWealthCard(g, msg)
	case protocol.TypeBuyGrowthCard:
		var card game.GrowthCardType
		if card, err = g.BuyGrowthCard(); err == nil {
			result.Card = &card
		}
	case protocol.TypeTradeWithBank:
		err = handleTradeWithBank(g, msg, &result)
	case protocol.TypeMakeTradeOffer:
		err = handleMakeTradeOffer(g, msg)
	case protocol.TypeRespondTradeOffer:
		err = handleRespondTradeOffer(g, msg)
	case protocol.TypeEmbargoPlayer:
		err = handleEmbargo(g, msg)
	case protocol.TypeEndTurn:
		err = g.EndTurn()
	default:
		err = protocol.ErrUnknownMessage
	}

	if err != nil {
		return result, err
	}
	result.State = g.State()
	result.Winner = g.Winner()
	return result, nil
}

// ReplayAction applies a stored action, discarding the result.
func ReplayAction(g *game.Game, msg *protocol.Message) error {
	_, err := Apply(g, msg)
	return err
}

func handlePoint(msg *protocol.Message, fn func(game.Point) error) error {
	var payload protocol.PointPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return fn(payload.Point)
}

func handlePlaceRoad(g *game.Game, msg *protocol.Message) error {
	var payload protocol.RoadPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return g.PlaceRoad(payload.From, payload.To)
}

func handlePlaceRoamingRoads(g *game.Game, msg *protocol.Message) error {
	var payload protocol.RoamingRoadsPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return g.PlaceRoamingRoads(
		[2]game.Point{payload.First.From, payload.First.To},
		[2]game.Point{payload.Second.From, payload.Second.To},
	)
}

func handleDiscardResources(g *game.Game, msg *protocol.Message) error {
	var payload protocol.DiscardResourcesPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return g.DiscardResources(payload.Colour, payload.Resources)
}

func handleStealResource(g *game.Game, msg *protocol.Message, result *protocol.ActionResultPayload) error {
	var payload protocol.StealResourcePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	r, err := g.StealResourceFromPlayer(payload.Victim)
	if err != nil {
		return err
	}
	if r != game.ResourceNone {
		result.Resource = &r
	}
	return nil
}

func handleGathererCard(g *game.Game, msg *protocol.Message, result *protocol.ActionResultPayload) error {
	var payload protocol.GathererCardPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	n, err := g.PlayGathererCard(payload.Resource)
	result.Count = n
	return err
}

func handleWealthCard(g *game.Game, msg *protocol.Message) error {
	var payload protocol.WealthCardPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return g.PlayWealthCard(payload.First, payload.Second)
}

func handleTradeWithBank(g *game.Game, msg *protocol.Message, result *protocol.ActionResultPayload) error {
	var payload protocol.BankTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	var ratio int
	var err error
	if payload.Port != nil {
		ratio, err = g.TradeWithBankUsingPort(*payload.Port, payload.Give, payload.Want)
	} else {
		ratio, err = g.TradeWithBank(payload.Give, payload.Want)
	}
	result.Ratio = ratio
	return err
}

func handleMakeTradeOffer(g *game.Game, msg *protocol.Message) error {
	var payload protocol.TradeOfferPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	return g.MakeTradeOffer(payload.Offer, payload.Request)
}

func handleRespondTradeOffer(g *game.Game, msg *protocol.Message) error {
	var payload protocol.RespondTradePayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.Accept {
		return g.AcceptTradeOffer(payload.Colour)
	}
	return g.RejectTradeOffer(payload.Colour)
}

func handleEmbargo(g *game.Game, msg *protocol.Message) error {
	var payload protocol.EmbargoPayload
	if err := msg.ParsePayload(&payload); err != nil {
		return err
	}
	if payload.Remove {
		return g.RemoveEmbargo(payload.Colour, payload.Target)
	}
	return g.EmbargoPlayer(payload.Colour, payload.Target)
}
