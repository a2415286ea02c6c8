package game

import (
	"sort"

	"github.com/rs/zerolog/log"
)

// Registry is the authoritative room-name to room-state mapping. It is owned
// by the hub and mutated only from the hub goroutine, so it carries no lock.
// Every operation degrades to a no-op on missing keys: room names come from
// clients and races (leave-after-room-gone and the like) are expected.
type Registry struct {
	rooms map[string]*Room
	words WordPicker
}

func NewRegistry(words WordPicker) *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
		words: words,
	}
}

// InitializeRoom creates a room with its first player as drawer and a fresh
// secret word.
func (reg *Registry) InitializeRoom(name, player string) *Room {
	room := &Room{
		Name:       name,
		Kind:       KindGame,
		Players:    []string{player},
		DrawPlayer: player,
		Word:       reg.words.Pick(),
	}
	reg.rooms[name] = room
	log.Info().Str("room", name).Str("player", player).Msg("room created")
	return room
}

// AddUser appends player to an existing occupied room, ignoring duplicate
// names, or initializes the room when it does not exist.
func (reg *Registry) AddUser(name, player string) *Room {
	room, exists := reg.rooms[name]
	if !exists || len(room.Players) == 0 {
		return reg.InitializeRoom(name, player)
	}
	if !room.HasPlayer(player) {
		room.Players = append(room.Players, player)
	}
	return room
}

// RemoveUser filters player out of the room's player list and reports
// whether the room is now empty. The caller owns the decision to remove an
// emptied room.
func (reg *Registry) RemoveUser(name, player string) bool {
	room, exists := reg.rooms[name]
	if !exists {
		return false
	}

	players := room.Players[:0]
	for _, p := range room.Players {
		if p != player {
			players = append(players, p)
		}
	}
	room.Players = players

	return len(room.Players) == 0
}

// Remove deletes a room and cancels its pending round timer.
func (reg *Registry) Remove(name string) {
	room, exists := reg.rooms[name]
	if !exists {
		return
	}
	if room.roundTimer != nil {
		room.roundTimer.Stop()
	}
	delete(reg.rooms, name)
	log.Info().Str("room", name).Msg("room removed")
}

func (reg *Registry) Room(name string) (*Room, bool) {
	room, exists := reg.rooms[name]
	return room, exists
}

// RoomNames is the lobby view: the sorted names of occupied game rooms.
func (reg *Registry) RoomNames() []string {
	names := make([]string, 0, len(reg.rooms))
	for name, room := range reg.rooms {
		if room.Kind != KindGame || len(room.Players) == 0 {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
