package game

import (
	"strings"
	"time"
)

type RoomKind int

const (
	// KindGame rooms are joinable and listed in the lobby.
	KindGame RoomKind = iota
	// KindPrivate rooms are transport-internal and never listed.
	KindPrivate
)

// Room is a registry entry: the shared state of one game session. It is only
// ever touched from the hub goroutine.
type Room struct {
	Name       string
	Kind       RoomKind
	Players    []string // ordered by join
	DrawPlayer string
	Word       string

	roundTimer *time.Timer
}

func (r *Room) HasPlayer(name string) bool {
	for _, p := range r.Players {
		if p == name {
			return true
		}
	}
	return false
}

// Matches reports whether a guess counts as correct: the secret word must
// appear in the text as a case-insensitive substring.
func (r *Room) Matches(guess string) bool {
	return strings.Contains(strings.ToLower(guess), strings.ToLower(r.Word))
}

// AdvanceRound rotates the room into its next round: the correct guesser
// becomes the drawer and a fresh word is selected.
func (r *Room) AdvanceRound(guesser string, words WordPicker) {
	r.DrawPlayer = guesser
	r.Word = words.Pick()
}

// State returns a snapshot safe to hand off the hub goroutine.
func (r *Room) State() RoomState {
	players := make([]string, len(r.Players))
	copy(players, r.Players)
	return RoomState{
		Name:       r.Name,
		Players:    players,
		DrawPlayer: r.DrawPlayer,
		Word:       r.Word,
	}
}
