package entity

// Player is the browser session driving a hot-seat game. Both marks are
// played through the same session; the mark for a ply comes from parity,
// never from the player.
type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
}
