package game

import (
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"
)

// How long after a correct guess the next round starts.
const nextRoundDelay = 5 * time.Second

type inboundEvent struct {
	from     *Client
	envelope Envelope
}

// Hub is the event router and the single owner of all game state. Every
// registry and room mutation happens on the Run goroutine; clients, timers
// and the websocket endpoint only feed its channels.
type Hub struct {
	registry *Registry
	clients  map[*Client]struct{}

	register   chan *Client
	unregister chan *Client
	inbox      chan inboundEvent
	roundFires chan string

	roundDelay time.Duration
}

func NewHub(words WordPicker) *Hub {
	return &Hub{
		registry:   NewRegistry(words),
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		inbox:      make(chan inboundEvent, 256),
		roundFires: make(chan string, 64),
		roundDelay: nextRoundDelay,
	}
}

func (h *Hub) Run(started chan struct{}) {
	close(started)

	for {
		select {
		case c := <-h.register:
			h.clients[c] = struct{}{}
			log.Info().Str("conn", c.id).Str("user", c.username).Msg("connection registered")

		case c := <-h.unregister:
			h.handleDisconnect(c)

		case ev := <-h.inbox:
			h.dispatch(ev)

		case name := <-h.roundFires:
			h.handleNextRound(name)
		}
	}
}

func (h *Hub) dispatch(ev inboundEvent) {
	switch ev.envelope.Event {
	case EventEnterLobby:
		h.sendTo(ev.from, EventNewRooms, h.registry.RoomNames())

	case EventJoinRoom:
		var roomName string
		if err := json.Unmarshal(ev.envelope.Data, &roomName); err != nil {
			return
		}
		h.handleJoinRoom(ev.from, roomName)

	case EventEnterGameRoom:
		var roomName string
		if len(ev.envelope.Data) > 0 {
			if err := json.Unmarshal(ev.envelope.Data, &roomName); err != nil {
				return
			}
		}
		h.handleEnterGameRoom(ev.from, roomName)

	case EventNewMessage:
		h.handleMessage(ev.from, ev.envelope.Data)

	case EventCanvasData:
		h.broadcastRoom(ev.from.room, ev.from, EventCanvasData, ev.envelope.Data)

	case EventClearCanvas:
		h.broadcastRoom(ev.from.room, ev.from, EventClear, nil)

	default:
		log.Debug().Str("event", ev.envelope.Event).Str("conn", ev.from.id).Msg("unknown event dropped")
	}
}

// handleJoinRoom runs the join/leave protocol. The ordering is deliberate:
// the old room's membership is settled and announced before the new room is
// touched, so a connection belongs to at most one game room at any instant.
func (h *Hub) handleJoinRoom(c *Client, roomName string) {
	if roomName == "" {
		return
	}

	if prior := c.room; prior != "" && prior != roomName {
		c.room = ""
		if emptied := h.registry.RemoveUser(prior, c.username); emptied {
			h.registry.Remove(prior)
		} else {
			h.broadcastPlayerList(prior)
		}
	}

	c.room = roomName
	h.registry.AddUser(roomName, c.username)
	log.Info().Str("room", roomName).Str("user", c.username).Msg("joined room")

	// Every join changes the globally visible room list.
	h.broadcastAll(EventNewRooms, h.registry.RoomNames())
}

func (h *Hub) handleEnterGameRoom(c *Client, roomName string) {
	if roomName == "" {
		roomName = c.room
	}

	room, exists := h.registry.Room(roomName)
	if !exists {
		h.sendTo(c, EventRoomState, RoomStateResult{Found: false})
		return
	}

	state := room.State()
	h.sendTo(c, EventRoomState, RoomStateResult{Found: true, Room: &state})
	h.broadcastPlayerList(roomName)
}

func (h *Hub) handleMessage(c *Client, data json.RawMessage) {
	if c.room == "" {
		return
	}

	h.broadcastRoom(c.room, c, EventMessageData, data)

	room, exists := h.registry.Room(c.room)
	if !exists {
		return
	}

	var msg MessagePayload
	if err := json.Unmarshal(data, &msg); err != nil {
		return
	}

	if !room.Matches(msg.Text) {
		return
	}

	log.Info().Str("room", room.Name).Str("user", c.username).Str("word", room.Word).Msg("correct guess")
	h.broadcastRoom(c.room, nil, EventCorrectGuess, CorrectGuessPayload{User: c.username, Word: room.Word})

	room.AdvanceRound(c.username, h.registry.words)
	h.scheduleNextRound(room)
}

// scheduleNextRound arms the room's round-transition timer, replacing any
// pending one. The timer fires back into the hub goroutine; registry Remove
// cancels it.
func (h *Hub) scheduleNextRound(room *Room) {
	if room.roundTimer != nil {
		room.roundTimer.Stop()
	}

	name := room.Name
	room.roundTimer = time.AfterFunc(h.roundDelay, func() {
		select {
		case h.roundFires <- name:
		default:
		}
	})
}

func (h *Hub) handleNextRound(name string) {
	room, exists := h.registry.Room(name)
	if !exists {
		// Room emptied out before the timer fired. Nobody left to tell.
		return
	}
	room.roundTimer = nil

	h.broadcastRoom(name, nil, EventClear, nil)
	h.broadcastRoom(name, nil, EventNextRound, room.State())
}

func (h *Hub) handleDisconnect(c *Client) {
	if _, exists := h.clients[c]; !exists {
		return
	}
	delete(h.clients, c)
	close(c.send)
	log.Info().Str("conn", c.id).Str("user", c.username).Msg("connection closed")

	if c.room == "" {
		return
	}

	roomName := c.room
	c.room = ""

	if emptied := h.registry.RemoveUser(roomName, c.username); emptied {
		h.registry.Remove(roomName)
		h.broadcastAll(EventNewRooms, h.registry.RoomNames())
		return
	}

	h.broadcastPlayerList(roomName)
}

func (h *Hub) broadcastPlayerList(roomName string) {
	var players []string
	if room, exists := h.registry.Room(roomName); exists {
		players = room.State().Players
	}
	h.broadcastRoom(roomName, nil, EventUpdatePlayerList, players)
}

// sendTo queues a message for one connection, dropping it if the client's
// buffer is full. The hub must never block on a slow consumer.
func (h *Hub) sendTo(c *Client, event string, data any) {
	payload := encode(event, data)
	if payload == nil {
		return
	}
	select {
	case c.send <- payload:
	default:
	}
}

func (h *Hub) broadcastRoom(roomName string, except *Client, event string, data any) {
	if roomName == "" {
		return
	}

	payload := encode(event, data)
	if payload == nil {
		return
	}

	for c := range h.clients {
		if c.room != roomName || c == except {
			continue
		}
		select {
		case c.send <- payload:
		default:
		}
	}
}

func (h *Hub) broadcastAll(event string, data any) {
	payload := encode(event, data)
	if payload == nil {
		return
	}

	for c := range h.clients {
		select {
		case c.send <- payload:
		default:
		}
	}
}
