package v1

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hackathonspt/attendee-hq/internal/api/handler/v1/response"
	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/service"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production!
	},
}

type feedClient struct {
	conn    *websocket.Conn
	send    chan []byte
	eventID uint
	userID  uint
}

type feedMessage struct {
	eventID uint
	payload []byte
}

// AnnouncementFeed pushes newly published announcements to attendees
// connected over websocket, per event.
type AnnouncementFeed struct {
	svc  EventService
	uSvc UserService

	clients      map[*feedClient]struct{}
	clientsMutex sync.RWMutex
	broadcast    chan feedMessage
	register     chan *feedClient
	unregister   chan *feedClient
}

func NewAnnouncementFeed(svc EventService, uSvc UserService) *AnnouncementFeed {
	return &AnnouncementFeed{
		svc:        svc,
		uSvc:       uSvc,
		clients:    make(map[*feedClient]struct{}),
		broadcast:  make(chan feedMessage),
		register:   make(chan *feedClient),
		unregister: make(chan *feedClient),
	}
}

func (f *AnnouncementFeed) Run() {
	for {
		select {
		case client := <-f.register:
			f.clientsMutex.Lock()
			f.clients[client] = struct{}{}
			f.clientsMutex.Unlock()
		case client := <-f.unregister:
			f.clientsMutex.Lock()
			if _, ok := f.clients[client]; ok {
				delete(f.clients, client)
				close(client.send)
			}
			f.clientsMutex.Unlock()
		case message := <-f.broadcast:
			f.clientsMutex.Lock()
			for client := range f.clients {
				if client.eventID != message.eventID {
					continue
				}
				select {
				case client.send <- message.payload:
				default:
					// Slow consumer, drop it.
					delete(f.clients, client)
					close(client.send)
				}
			}
			f.clientsMutex.Unlock()
		}
	}
}

// Broadcast fans the announcement out to the event's connected clients.
func (f *AnnouncementFeed) Broadcast(announcement domain.Announcement) {
	payload, err := json.Marshal(announcement)
	if err != nil {
		zap.L().Error("failed to marshal announcement", zap.Error(err))
		return
	}

	f.broadcast <- feedMessage{eventID: announcement.EventID, payload: payload}
}

// HandleAnnouncementStream godoc
// @Summary      Live announcement feed for an event
// @Description  Upgrades to a websocket and streams announcements for the event as the admin publishes them. The caller must have joined the event.
// @Tags         events
// @Param        eventID  path  int  true  "Event ID"
// @Success      101
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/announcements/stream [get]
// @Security     BearerAuth
func (f *AnnouncementFeed) HandleAnnouncementStream(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, f.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	joined, err := f.svc.IsParticipant(ctx.Request.Context(), uint(eventID), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleAnnouncementStream -> f.svc.IsParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if !joined {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventParticipant))
		return
	}

	conn, err := upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Error("failed to upgrade websocket", zap.Error(err))
		return
	}

	client := &feedClient{
		conn:    conn,
		send:    make(chan []byte, 16),
		eventID: uint(eventID),
		userID:  user.ID,
	}

	f.register <- client

	go client.writePump()
	go client.readPump(f)
}

func (c *feedClient) writePump() {
	defer c.conn.Close()

	for payload := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
	}
}

// readPump drains the connection until it drops. The feed is one way;
// inbound messages are discarded.
func (c *feedClient) readPump(f *AnnouncementFeed) {
	defer func() {
		f.unregister <- c
		c.conn.Close()
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
