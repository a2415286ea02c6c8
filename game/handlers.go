package game

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/danyip/imperfectionary-be/domain"
)

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type UserGetter interface {
	GetUserById(ctx context.Context, id string) (domain.User, error)
}

type Handler struct {
	hub    *Hub
	tokens TokenVerifier
	users  UserGetter
}

func NewHandler(hub *Hub, tokens TokenVerifier, users UserGetter) *Handler {
	return &Handler{hub: hub, tokens: tokens, users: users}
}

// Origin filtering happens in the CORS middleware before this runs.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ServeWS authenticates the handshake and upgrades the connection. A missing
// or invalid token rejects the request before any event is read. A valid
// token whose account has since vanished still gets a connection, just with
// no display name attached.
func (h *Handler) ServeWS(ctx *gin.Context) {
	token := ctx.Query("token")
	if token == "" {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing-token"})
		return
	}

	id, err := h.tokens.Verify(token)
	if err != nil {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid-token"})
		return
	}

	var username string
	if user, err := h.users.GetUserById(ctx.Request.Context(), id); err == nil {
		username = user.Username
	} else {
		log.Warn().Err(err).Str("id", id).Msg("identity resolution failed, admitting anonymous connection")
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("ip", ctx.ClientIP()).Msg("websocket upgrade failed")
		return
	}

	client := newClient(h.hub, conn, username)
	h.hub.register <- client

	go client.writePump()
	go client.readPump()
}
