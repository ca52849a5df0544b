package player

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

func ParsePosition(v string) (Position, error) {
	pos := Position(strings.ToUpper(strings.TrimSpace(v)))
	if _, ok := AllPositions[pos]; !ok {
		return "", fmt.Errorf("invalid player position: %q", v)
	}
	return pos, nil
}

// Money is a fixed-point amount in hundredths of a currency unit.
type Money int64

const MoneyScale = 100

func MoneyFromUnits(units float64) Money {
	return Money(math.Round(units * MoneyScale))
}

// ParseMoney parses a decimal string such as "8.50" into Money.
func ParseMoney(v string) (Money, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", v, err)
	}
	return MoneyFromUnits(f), nil
}

func (m Money) Units() float64 {
	return float64(m) / MoneyScale
}

func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/MoneyScale, v%MoneyScale)
}

// Player is a selectable athlete in the fantasy pool.
type Player struct {
	ID       string
	Name     string
	Team     string
	Position Position
	Price    Money
	Points   int
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if p.Team == "" {
		return fmt.Errorf("player team is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}
	if p.Price < 0 {
		return fmt.Errorf("player price cannot be negative")
	}

	return nil
}

// IndexByID maps players by their id.
func IndexByID(players []Player) map[string]Player {
	out := make(map[string]Player, len(players))
	for _, p := range players {
		out[p.ID] = p
	}
	return out
}
