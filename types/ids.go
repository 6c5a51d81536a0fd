package types

// Fixed identifiers shared by the world generator and the engine. These are
// anchored to the authored dungeon map: the numbers come from the game data,
// not from code invention.
const (
	StartRoomID = 1
	WinRoomID   = 90
	BossRoomID  = 89 // adjacent to the win room
	SecretRoom  = 33 // accepts the rune keyword
	HunterID    = 998
	BossID      = 999
)

// Item identifiers. 1–4 are authored; 100+ are the bonus pool injected at
// world generation.
const (
	ItemTorch   = 1
	ItemAmulet  = 2
	ItemDagger  = 3
	ItemBook    = 4
	ItemMap     = 100
	ItemToolkit = 101
	ItemCharm   = 102
	ItemIdol    = 103
	ItemHerb    = 104
	ItemOil     = 105
)

// RequiredRelics are the three items the win-room gate demands.
var RequiredRelics = [3]int{ItemAmulet, ItemDagger, ItemBook}
