package core

import "errors"

var (
	ErrEmptyMap      = errors.New("map has no rows")
	ErrInvalidTile   = errors.New("invalid map character")
	ErrUnitNotFound  = errors.New("unit not found")
	ErrUnitDead      = errors.New("unit is dead")
	ErrTileOccupied  = errors.New("tile is occupied")
	ErrNotAdjacent   = errors.New("tiles are not adjacent")
	ErrNoTarget      = errors.New("no attack target despite adjacent enemy")
	ErrCombatOver    = errors.New("combat is over")
	ErrStalemate     = errors.New("combat stalled: a full round passed without any move or damage")
	ErrRoundLimit    = errors.New("combat exceeded round limit")
	ErrInvalidPower  = errors.New("attack power must be non-negative")
	ErrInvalidHealth = errors.New("hit points must be positive")
	ErrNoUnits       = errors.New("map has no units")
)
