// Package types defines the shared data structures for the DunDork engine.
// This package contains only type definitions and trivial accessors — no
// game logic.
package types

// Direction indexes the four exits of a Location.
type Direction int

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists all directions in the canonical expansion order used by
// the pathfinder and everything else that iterates exits.
var Directions = [4]Direction{North, South, East, West}

// String returns the single-letter form ("N", "S", "E", "W").
func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case South:
		return "S"
	case East:
		return "E"
	case West:
		return "W"
	}
	return "?"
}

// RoomTag is a room's procedurally assigned category. It drives the room's
// one-shot event.
type RoomTag string

const (
	TagSafe     RoomTag = "safe"
	TagTrap     RoomTag = "trap"
	TagTreasure RoomTag = "treasure"
	TagLore     RoomTag = "lore"
	TagDark     RoomTag = "dark"
)

// Location is a room in the dungeon graph. Exits hold neighbor IDs in
// N, S, E, W order; 0 means no exit. The graph is not required to be
// symmetric — one-way passages are valid.
type Location struct {
	ID            int
	Exits         [4]int
	IsDark        bool
	Story         string // first-visit narrative
	Desc          string // subsequent-visit description
	ObjectID      int    // item lying on the floor, 0 = none
	Tag           RoomTag
	EventResolved bool
	SecretSolved  bool
}

// Exit returns the neighbor ID in the given direction (0 = no exit).
func (l *Location) Exit(d Direction) int {
	return l.Exits[d]
}

// SetExit rewires one exit. Used by the rune secret.
func (l *Location) SetExit(d Direction, target int) {
	l.Exits[d] = target
}

// OpenExits returns the directions with a non-zero neighbor, in canonical
// order.
func (l *Location) OpenExits() []Direction {
	var dirs []Direction
	for _, d := range Directions {
		if l.Exits[d] != 0 {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Item is a carryable object.
type Item struct {
	ID            int
	Name          string
	Desc          string
	Story         string // narrative shown on pickup
	RequiredToWin bool
}

// Behavior is the tagged variant describing how an NPC moves. Exactly one
// concrete type is assigned at world-generation time, and the NPC-advance
// step dispatches on it.
type Behavior interface {
	isBehavior()
}

// Patroller walks a two-room route and hunts relics (or the player when
// close) while hostile.
type Patroller struct {
	Route [2]int
}

// Chaser lies dormant until WakeTurn, then paths toward the player every
// turn.
type Chaser struct {
	WakeTurn int
	Awake    bool
}

// Boss is stationary, telegraphs attacks, and escalates through phases.
type Boss struct{}

func (Patroller) isBehavior() {}
func (*Chaser) isBehavior()   {}
func (Boss) isBehavior()      {}

// Telegraph is a boss's pre-announced next attack, resolved at the start of
// the following encounter turn.
type Telegraph struct {
	Name   string
	Damage int
}

// NPC is a non-player character. CurrentLoc of -1 means permanently removed
// from the world.
type NPC struct {
	ID         int
	Name       string
	Desc       string
	WeaknessID int // item that exploits this NPC, 0 = none
	Hostile    bool
	Behavior   Behavior
	HP         int
	MaxHP      int
	Phase      int // boss combat phase, starts at 1
	Telegraph  *Telegraph
	StartLoc   int
	CurrentLoc int
}

// IsBoss reports whether the NPC carries the Boss behavior variant.
func (n *NPC) IsBoss() bool {
	_, ok := n.Behavior.(Boss)
	return ok
}

// FillerText is a fallback story/description pair used when a Location has
// no authored narrative.
type FillerText struct {
	ID    int
	Story string
	Desc  string
}

// Quest is accepted when its trigger room is entered and completed once the
// required item is carried there. Completion is idempotent per session.
type Quest struct {
	ID           string
	Title        string
	Giver        string
	Faction      string
	Room         int
	RequiredItem int
	RewardItem   int
	RewardXP     int
	Accepted     bool
	Completed    bool
	Description  string
}

// Mutator is a run-wide difficulty/flavor modifier, immutable once chosen.
type Mutator struct {
	Name             string
	Desc             string
	EnemyDamageBonus int
	Fog              bool
	ExtraTraps       bool
	RichLoot         bool
}

// Meta is the long-term progression record. The engine reads it at
// construction and updates it on a win or quit; persisting it is the
// caller's responsibility.
type Meta struct {
	Wins            int      `json:"wins"`
	TotalXP         int      `json:"total_xp"`
	UnlockedClasses []string `json:"unlocked_classes"`
	LastClass       string   `json:"last_class"`
	BestEnding      string   `json:"best_ending"`
}

// HasClass reports whether the class name is in the unlocked set.
func (m *Meta) HasClass(class string) bool {
	for _, c := range m.UnlockedClasses {
		if c == class {
			return true
		}
	}
	return false
}

// World is the generated dungeon handed to the engine: entity collections
// plus ID indexes.
type World struct {
	Locations []*Location
	Items     []*Item
	NPCs      []*NPC
	Fillers   []*FillerText

	LocByID  map[int]*Location
	ItemByID map[int]*Item
	NPCByID  map[int]*NPC
}

// Reindex rebuilds the ID lookup maps after entities are added or removed.
func (w *World) Reindex() {
	w.LocByID = make(map[int]*Location, len(w.Locations))
	for _, l := range w.Locations {
		w.LocByID[l.ID] = l
	}
	w.ItemByID = make(map[int]*Item, len(w.Items))
	for _, it := range w.Items {
		w.ItemByID[it.ID] = it
	}
	w.NPCByID = make(map[int]*NPC, len(w.NPCs))
	for _, n := range w.NPCs {
		w.NPCByID[n.ID] = n
	}
}
