package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hackathonspt/attendee-hq/internal/api/handler/v1/request"
	"github.com/hackathonspt/attendee-hq/internal/api/handler/v1/response"
	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/service"
)

type EventService interface {
	LinkEvent(ctx context.Context, code string, userID uint) (domain.Event, error)
	GetJoinedEvents(ctx context.Context, userID uint) ([]domain.Event, error)
	GetEvent(ctx context.Context, eventID uint) (domain.Event, error)
	IsParticipant(ctx context.Context, eventID, userID uint) (bool, error)
}

type VoteService interface {
	GetVotesByVoter(ctx context.Context, voterID uint) ([]domain.Vote, error)
}

type EventHandler struct {
	svc   EventService
	votes VoteService
	uSvc  UserService
}

func NewEventHandler(svc EventService, votes VoteService, uSvc UserService) *EventHandler {
	return &EventHandler{
		svc:   svc,
		votes: votes,
		uSvc:  uSvc,
	}
}

// HandleListEvents godoc
// @Summary      List the caller's joined events
// @Description  Returns every event the caller has linked, with announcements, projects, vote counts, the declared winner and the caller's own vote.
// @Tags         events
// @Produce      json
// @Success      200  {array}   response.EventResponse
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events [get]
// @Security     BearerAuth
func (h *EventHandler) HandleListEvents(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.GetJoinedEvents(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListEvents -> h.svc.GetJoinedEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	userVotes, respErr := h.voteLookup(ctx, user.ID)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponses(events, userVotes))
}

// HandleGetEvent godoc
// @Summary      Get one joined event
// @Tags         events
// @Produce      json
// @Param        eventID  path      int  true  "Event ID"
// @Success      200  {object}  response.EventResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID} [get]
// @Security     BearerAuth
func (h *EventHandler) HandleGetEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	joined, err := h.svc.IsParticipant(ctx.Request.Context(), uint(eventID), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.IsParticipant -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}
	if !joined {
		response.RenderErr(ctx, response.ErrPermissionDenied(service.ErrNotEventParticipant))
		return
	}

	event, err := h.svc.GetEvent(ctx.Request.Context(), uint(eventID))
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleGetEvent -> h.svc.GetEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	userVotes, respErr := h.voteLookup(ctx, user.ID)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	ctx.JSON(http.StatusOK, response.NewEventResponse(event, userVotes))
}

// HandleLinkEvent godoc
// @Summary      Link an event with an invite code
// @Description  Redeems an invite code and joins the caller to the event. Redeeming a code twice is a no-op success.
// @Tags         events
// @Accept       json
// @Produce      json
// @Param        request  body      request.LinkEventRequest  true  "request body"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/link [post]
// @Security     BearerAuth
func (h *EventHandler) HandleLinkEvent(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.LinkEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.LinkEvent(ctx.Request.Context(), req.Code, user.ID)
	if err != nil {
		if errors.Is(err, service.ErrInviteNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "code", req.Code))
			return
		}

		err = fmt.Errorf("v1.HandleLinkEvent -> h.svc.LinkEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("You have joined %v.", event.Name),
		"event":   event,
	})
}

func (h *EventHandler) voteLookup(ctx *gin.Context, userID uint) (map[uint]uint, *response.Err) {
	votes, err := h.votes.GetVotesByVoter(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.voteLookup -> h.votes.GetVotesByVoter -> %w", err)
		return nil, response.ErrInternalServerError(err)
	}

	lookup := make(map[uint]uint, len(votes))
	for _, vote := range votes {
		lookup[vote.EventID] = vote.ProjectID
	}

	return lookup, nil
}
