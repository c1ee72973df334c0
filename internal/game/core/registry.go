package core

import (
	"fmt"
	"slices"
)

const noOccupant = -1

// Registry is the mutable set of units for one simulation. It keeps a
// per-tile occupant index so occupancy checks never scan the unit list.
// A unit's tile is released as soon as its hit points reach zero; the unit
// itself stays listed until RemoveDead.
type Registry struct {
	grid     *Grid
	units    []*Unit // ordered by ID
	byID     map[int]*Unit
	occupant []int
	nextID   int
}

// NewRegistry creates an empty registry bound to grid
func NewRegistry(grid *Grid) *Registry {
	r := &Registry{
		grid:     grid,
		byID:     make(map[int]*Unit),
		occupant: make([]int, grid.W*grid.H),
	}
	for i := range r.occupant {
		r.occupant[i] = noOccupant
	}
	return r
}

// Grid returns the grid the registry is bound to
func (r *Registry) Grid() *Grid { return r.grid }

// Add places a new unit and assigns it the next free ID
func (r *Registry) Add(f Faction, pos Coordinate, hitPoints, attackPower int) (*Unit, error) {
	if hitPoints <= 0 {
		return nil, ErrInvalidHealth
	}
	if attackPower < 0 {
		return nil, ErrInvalidPower
	}
	if r.Occupied(pos) {
		return nil, fmt.Errorf("add %s unit at %s: %w", f, pos, ErrTileOccupied)
	}
	u := &Unit{
		ID:          r.nextID,
		Faction:     f,
		HitPoints:   hitPoints,
		AttackPower: attackPower,
		Position:    pos,
		TargetID:    NoTarget,
	}
	r.nextID++
	r.units = append(r.units, u)
	r.byID[u.ID] = u
	r.occupant[pos.ToIndex(r.grid.W)] = u.ID
	return u, nil
}

// Get returns the unit with the given ID, alive or dead, until it is purged
func (r *Registry) Get(id int) (*Unit, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("unit %d: %w", id, ErrUnitNotFound)
	}
	return u, nil
}

// Target resolves the unit u attacked on its latest turn, if that unit is
// still alive
func (r *Registry) Target(u *Unit) (*Unit, bool) {
	if u.TargetID == NoTarget {
		return nil, false
	}
	t, ok := r.byID[u.TargetID]
	if !ok || !t.IsAlive() {
		return nil, false
	}
	return t, true
}

// UnitAt returns the living unit standing on p
func (r *Registry) UnitAt(p Coordinate) (*Unit, bool) {
	if !r.grid.InBounds(p) {
		return nil, false
	}
	id := r.occupant[p.ToIndex(r.grid.W)]
	if id == noOccupant {
		return nil, false
	}
	return r.byID[id], true
}

// Occupied reports whether p is blocked by a wall or a living unit
func (r *Registry) Occupied(p Coordinate) bool {
	if r.grid.IsWall(p) {
		return true
	}
	return r.occupant[p.ToIndex(r.grid.W)] != noOccupant
}

// Len returns the number of units still listed, including dead ones not yet purged
func (r *Registry) Len() int { return len(r.units) }

// LivingAll returns every living unit in reading order of position
func (r *Registry) LivingAll() []*Unit {
	out := make([]*Unit, 0, len(r.units))
	for _, u := range r.units {
		if u.IsAlive() {
			out = append(out, u)
		}
	}
	sortByPosition(out)
	return out
}

// Living returns the living units of faction f in reading order of position
func (r *Registry) Living(f Faction) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Faction == f && u.IsAlive() {
			out = append(out, u)
		}
	}
	sortByPosition(out)
	return out
}

// Count returns the number of living units of faction f
func (r *Registry) Count(f Faction) int {
	n := 0
	for _, u := range r.units {
		if u.Faction == f && u.IsAlive() {
			n++
		}
	}
	return n
}

// TotalHitPoints sums the hit points of every living unit
func (r *Registry) TotalHitPoints() int {
	total := 0
	for _, u := range r.units {
		if u.IsAlive() {
			total += u.HitPoints
		}
	}
	return total
}

// Move steps a living unit onto an adjacent free tile
func (r *Registry) Move(id int, to Coordinate) error {
	u, err := r.Get(id)
	if err != nil {
		return err
	}
	if !u.IsAlive() {
		return fmt.Errorf("move unit %d: %w", id, ErrUnitDead)
	}
	if !u.Position.IsAdjacentTo(to) {
		return fmt.Errorf("move unit %d from %s to %s: %w", id, u.Position, to, ErrNotAdjacent)
	}
	if r.Occupied(to) {
		return fmt.Errorf("move unit %d to %s: %w", id, to, ErrTileOccupied)
	}
	r.occupant[u.Position.ToIndex(r.grid.W)] = noOccupant
	r.occupant[to.ToIndex(r.grid.W)] = id
	u.Position = to
	return nil
}

// Damage subtracts amount from the unit's hit points, flooring at zero.
// It reports whether this hit killed the unit.
func (r *Registry) Damage(id, amount int) (bool, error) {
	u, err := r.Get(id)
	if err != nil {
		return false, err
	}
	if !u.IsAlive() {
		return false, fmt.Errorf("damage unit %d: %w", id, ErrUnitDead)
	}
	u.HitPoints -= amount
	if u.HitPoints > 0 {
		return false, nil
	}
	u.HitPoints = 0
	r.occupant[u.Position.ToIndex(r.grid.W)] = noOccupant
	return true, nil
}

// RemoveDead purges every unit with zero hit points and returns them.
// IDs of purged units are never handed out again.
func (r *Registry) RemoveDead() []*Unit {
	var dead []*Unit
	kept := r.units[:0]
	for _, u := range r.units {
		if u.IsAlive() {
			kept = append(kept, u)
			continue
		}
		dead = append(dead, u)
		delete(r.byID, u.ID)
	}
	for i := len(kept); i < len(r.units); i++ {
		r.units[i] = nil
	}
	r.units = kept
	return dead
}

// SetAttackPower overrides the attack power of every unit of faction f
func (r *Registry) SetAttackPower(f Faction, power int) error {
	if power < 0 {
		return ErrInvalidPower
	}
	for _, u := range r.units {
		if u.Faction == f {
			u.AttackPower = power
		}
	}
	return nil
}

// Clone returns a deep copy sharing the same immutable grid
func (r *Registry) Clone() *Registry {
	c := &Registry{
		grid:     r.grid,
		units:    make([]*Unit, len(r.units)),
		byID:     make(map[int]*Unit, len(r.byID)),
		occupant: slices.Clone(r.occupant),
		nextID:   r.nextID,
	}
	for i, u := range r.units {
		cp := *u
		c.units[i] = &cp
		c.byID[cp.ID] = &cp
	}
	return c
}

func sortByPosition(units []*Unit) {
	slices.SortFunc(units, func(a, b *Unit) int {
		return a.Position.Compare(b.Position)
	})
}
