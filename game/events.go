package game

import (
	"encoding/json"

	"github.com/rs/zerolog/log"
)

// Inbound event names, matching the client protocol.
const (
	EventEnterLobby    = "enter-lobby"
	EventJoinRoom      = "join-room"
	EventEnterGameRoom = "enter-game-room"
	EventNewMessage    = "new-message"
	EventCanvasData    = "canvas-data"
	EventClearCanvas   = "clear-canvas"
)

// Outbound event names.
const (
	EventNewRooms         = "new-rooms"
	EventUpdatePlayerList = "update-player-list"
	EventCorrectGuess     = "correct-guess"
	EventClear            = "clear"
	EventNextRound        = "next-round"
	EventMessageData      = "message-data"
	EventRoomState        = "room-state"
)

// Envelope is the framing shared by every inbound and outbound message.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type MessagePayload struct {
	Text string `json:"text"`
	User string `json:"user,omitempty"`
}

type CorrectGuessPayload struct {
	User string `json:"user"`
	Word string `json:"word"`
}

// RoomState is the full room object broadcast on round transitions. The
// secret word is included for every member, the drawer's guessers too; the
// client is trusted to hide it. Known leak, kept for protocol compatibility.
type RoomState struct {
	Name       string   `json:"name"`
	Players    []string `json:"players"`
	DrawPlayer string   `json:"drawPlayer"`
	Word       string   `json:"word"`
}

// RoomStateResult is the reply to enter-game-room.
type RoomStateResult struct {
	Found bool       `json:"found"`
	Room  *RoomState `json:"room,omitempty"`
}

func encode(event string, data any) []byte {
	env := Envelope{Event: event}

	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			log.Error().Err(err).Str("event", event).Msg("failed to marshal event payload")
			return nil
		}
		env.Data = raw
	}

	payload, err := json.Marshal(env)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("failed to marshal event envelope")
		return nil
	}
	return payload
}
