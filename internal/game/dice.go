package game

import "math/rand"

// RolledDice is the result of one roll of two dice.
type RolledDice struct {
	First  int `json:"first"`
	Second int `json:"second"`
}

func rollDice(rng *rand.Rand) RolledDice {
	return RolledDice{First: rng.Intn(6) + 1, Second: rng.Intn(6) + 1}
}

// Total returns the sum of both dice.
func (d RolledDice) Total() int {
	return d.First + d.Second
}

// IsSeven reports whether the roll summons the thief.
func (d RolledDice) IsSeven() bool {
	return d.Total() == 7
}
