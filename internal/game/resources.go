package game

import (
	"fmt"
	"strings"
)

// ResourceType represents a type of resource card. ResourceNone marks the desert.
type ResourceType int

const (
	ResourceNone ResourceType = iota
	ResourceWood
	ResourceClay
	ResourceAnimal
	ResourceFood
	ResourceMetal
)

// AllResourceTypes returns every tradeable resource.
func AllResourceTypes() []ResourceType {
	return []ResourceType{
		ResourceWood,
		ResourceClay,
		ResourceAnimal,
		ResourceFood,
		ResourceMetal,
	}
}

// String returns the resource name.
func (r ResourceType) String() string {
	switch r {
	case ResourceWood:
		return "wood"
	case ResourceClay:
		return "clay"
	case ResourceAnimal:
		return "animal"
	case ResourceFood:
		return "food"
	case ResourceMetal:
		return "metal"
	default:
		return "none"
	}
}

// IsTradeable reports whether r is a real resource card.
func (r ResourceType) IsTradeable() bool {
	return r >= ResourceWood && r <= ResourceMetal
}

// ParseResourceType converts a name to a ResourceType.
func ParseResourceType(s string) (ResourceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "wood":
		return ResourceWood, nil
	case "clay", "brick":
		return ResourceClay, nil
	case "animal", "sheep", "wool":
		return ResourceAnimal, nil
	case "food", "wheat", "grain":
		return ResourceFood, nil
	case "metal", "ore":
		return ResourceMetal, nil
	case "none", "desert", "":
		return ResourceNone, nil
	}
	return ResourceNone, fmt.Errorf("%w: %q", ErrInvalidResourceType, s)
}

func (r ResourceType) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

func (r *ResourceType) UnmarshalText(b []byte) error {
	v, err := ParseResourceType(string(b))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// GrowthCardType represents a playable card bought from the bank.
type GrowthCardType int

const (
	GrowthSoldier GrowthCardType = iota
	GrowthRoaming
	GrowthGatherer
	GrowthWealth
	GrowthVictoryPoint
)

// AllGrowthCardTypes returns every growth card type.
func AllGrowthCardTypes() []GrowthCardType {
	return []GrowthCardType{
		GrowthSoldier,
		GrowthRoaming,
		GrowthGatherer,
		GrowthWealth,
		GrowthVictoryPoint,
	}
}

// String returns the card name.
func (c GrowthCardType) String() string {
	switch c {
	case GrowthSoldier:
		return "soldier"
	case GrowthRoaming:
		return "roaming"
	case GrowthGatherer:
		return "gatherer"
	case GrowthWealth:
		return "wealth"
	case GrowthVictoryPoint:
		return "victory_point"
	default:
		return "unknown"
	}
}

// ParseGrowthCardType converts a name to a GrowthCardType.
func ParseGrowthCardType(s string) (GrowthCardType, error) {
	for _, c := range AllGrowthCardTypes() {
		if c.String() == strings.ToLower(strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown growth card %q", s)
}

func (c GrowthCardType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *GrowthCardType) UnmarshalText(b []byte) error {
	v, err := ParseGrowthCardType(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// PieceType is a kind of piece from a player's finite supply.
type PieceType int

const (
	PieceRoad PieceType = iota
	PieceVillage
	PieceTown
)

// String returns the piece name.
func (p PieceType) String() string {
	switch p {
	case PieceRoad:
		return "road"
	case PieceVillage:
		return "village"
	case PieceTown:
		return "town"
	default:
		return "unknown"
	}
}

// ParsePieceType converts a name to a PieceType.
func ParsePieceType(s string) (PieceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "road":
		return PieceRoad, nil
	case "village":
		return PieceVillage, nil
	case "town":
		return PieceTown, nil
	}
	return 0, fmt.Errorf("unknown piece %q", s)
}

func (p PieceType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PieceType) UnmarshalText(b []byte) error {
	v, err := ParsePieceType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// PortType is the trade bonus attached to a coastal house point.
type PortType int

const (
	PortThreeToOne PortType = iota
	PortWood
	PortClay
	PortAnimal
	PortFood
	PortMetal
)

// AllPortTypes returns every port type.
func AllPortTypes() []PortType {
	return []PortType{PortThreeToOne, PortWood, PortClay, PortAnimal, PortFood, PortMetal}
}

// String returns the port name.
func (p PortType) String() string {
	if p == PortThreeToOne {
		return "three_to_one"
	}
	return p.Resource().String()
}

// Resource returns the resource a two-to-one port trades, or ResourceNone
// for the generic three-to-one port.
func (p PortType) Resource() ResourceType {
	switch p {
	case PortWood:
		return ResourceWood
	case PortClay:
		return ResourceClay
	case PortAnimal:
		return ResourceAnimal
	case PortFood:
		return ResourceFood
	case PortMetal:
		return ResourceMetal
	default:
		return ResourceNone
	}
}

// PortForResource returns the two-to-one port for a resource.
func PortForResource(r ResourceType) PortType {
	switch r {
	case ResourceWood:
		return PortWood
	case ResourceClay:
		return PortClay
	case ResourceAnimal:
		return PortAnimal
	case ResourceFood:
		return PortFood
	case ResourceMetal:
		return PortMetal
	default:
		return PortThreeToOne
	}
}

// ParsePortType converts a name to a PortType.
func ParsePortType(s string) (PortType, error) {
	for _, p := range AllPortTypes() {
		if p.String() == strings.ToLower(strings.TrimSpace(s)) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown port %q", s)
}

func (p PortType) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *PortType) UnmarshalText(b []byte) error {
	v, err := ParsePortType(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// HouseType is the tier of a house slot.
type HouseType int

const (
	HouseNone HouseType = iota
	HouseVillage
	HouseTown
)

// String returns the house type name.
func (h HouseType) String() string {
	switch h {
	case HouseVillage:
		return "village"
	case HouseTown:
		return "town"
	default:
		return "none"
	}
}

func (h HouseType) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HouseType) UnmarshalText(b []byte) error {
	for _, v := range []HouseType{HouseNone, HouseVillage, HouseTown} {
		if v.String() == string(b) {
			*h = v
			return nil
		}
	}
	return fmt.Errorf("unknown house type %q", b)
}

// Points returns the victory points a house of this type is worth.
func (h HouseType) Points() int {
	switch h {
	case HouseVillage:
		return 1
	case HouseTown:
		return 2
	default:
		return 0
	}
}
