package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hackathonspt/attendee-hq/internal/api/handler/v1/request"
	"github.com/hackathonspt/attendee-hq/internal/api/handler/v1/response"
	"github.com/hackathonspt/attendee-hq/internal/config"
	"github.com/hackathonspt/attendee-hq/internal/domain"
	"github.com/hackathonspt/attendee-hq/internal/service"
)

type AdminEventService interface {
	CreateEvent(ctx context.Context, event domain.Event) (domain.Event, error)
	GenerateInvite(ctx context.Context, eventID uint, expiresAt *time.Time, createdByID uint) (domain.Invite, error)
	PublishAnnouncement(ctx context.Context, announcement domain.Announcement) (domain.Announcement, error)
	UpdateGuide(ctx context.Context, eventID uint, guideMarkdown string) error
	DeclareWinner(ctx context.Context, eventID, projectID uint) error
	GetAllEvents(ctx context.Context) ([]domain.Event, error)
}

type AdminHandler struct {
	conf *config.APIConfig
	svc  AdminEventService
	uSvc UserService
	feed *AnnouncementFeed
}

func NewAdminHandler(conf *config.APIConfig, svc AdminEventService, uSvc UserService, feed *AnnouncementFeed) *AdminHandler {
	return &AdminHandler{
		conf: conf,
		svc:  svc,
		uSvc: uSvc,
		feed: feed,
	}
}

// requireAdmin resolves the caller and denies anyone whose email is
// not the configured admin address. Every admin mutation goes through
// this same gate.
func (h *AdminHandler) requireAdmin(ctx *gin.Context) (domain.User, *response.Err) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		return domain.User{}, respErr
	}

	if user.Email != h.conf.AdminEmail {
		return domain.User{}, response.ErrPermissionDenied(errors.New("only the admin can do that"))
	}

	return user, nil
}

// HandleAdminOverview godoc
// @Summary      Admin dashboard data
// @Description  Every event with its invites, participants, projects and announcements.
// @Tags         admin
// @Produce      json
// @Success      200  {array}   domain.Event
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/overview [get]
// @Security     BearerAuth
func (h *AdminHandler) HandleAdminOverview(ctx *gin.Context) {
	if _, respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	events, err := h.svc.GetAllEvents(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleAdminOverview -> h.svc.GetAllEvents -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, events)
}

// HandleCreateEvent godoc
// @Summary      Create an event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateEventRequest  true  "request body"
// @Success      201  {object}  domain.Event
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleCreateEvent(ctx *gin.Context) {
	if _, respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	event, err := h.svc.CreateEvent(ctx.Request.Context(), domain.Event{
		Name:          req.Name,
		GuideMarkdown: req.GuideMarkdown,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateEvent -> h.svc.CreateEvent -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, event)
}

// HandleGenerateInvite godoc
// @Summary      Generate an invite code for an event
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                            true  "Event ID"
// @Param        request  body      request.GenerateInviteRequest  true  "request body"
// @Success      201  {object}  domain.Invite
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/invites [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleGenerateInvite(ctx *gin.Context) {
	user, respErr := h.requireAdmin(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.GenerateInviteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	invite, err := h.svc.GenerateInvite(ctx.Request.Context(), uint(eventID), req.ParsedExpiresAt(), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		case errors.Is(err, service.ErrInviteCodeExists):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("code collision, please try again")))
		default:
			err = fmt.Errorf("v1.HandleGenerateInvite -> h.svc.GenerateInvite -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Invite code generated: %v", invite.Code),
		"invite":  invite,
	})
}

// HandlePublishAnnouncement godoc
// @Summary      Publish an announcement
// @Description  Announcements are immutable once published and are pushed to connected attendees.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                                 true  "Event ID"
// @Param        request  body      request.PublishAnnouncementRequest  true  "request body"
// @Success      201  {object}  domain.Announcement
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/announcements [post]
// @Security     BearerAuth
func (h *AdminHandler) HandlePublishAnnouncement(ctx *gin.Context) {
	user, respErr := h.requireAdmin(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.PublishAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	announcement, err := h.svc.PublishAnnouncement(ctx.Request.Context(), domain.Announcement{
		EventID:     uint(eventID),
		Title:       req.Title,
		Content:     req.Content,
		CreatedByID: user.ID,
	})
	if err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandlePublishAnnouncement -> h.svc.PublishAnnouncement -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	h.feed.Broadcast(announcement)

	ctx.JSON(http.StatusCreated, announcement)
}

// HandleUpdateGuide godoc
// @Summary      Update an event's guide
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                        true  "Event ID"
// @Param        request  body      request.UpdateGuideRequest true  "request body"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/guide [put]
// @Security     BearerAuth
func (h *AdminHandler) HandleUpdateGuide(ctx *gin.Context) {
	if _, respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.UpdateGuideRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.UpdateGuide(ctx.Request.Context(), uint(eventID), req.GuideMarkdown); err != nil {
		if errors.Is(err, service.ErrEventNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateGuide -> h.svc.UpdateGuide -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Guide updated."})
}

// HandleDeclareWinner godoc
// @Summary      Declare the winning project of an event
// @Description  The project must belong to the event. Declaring again overwrites the previous winner.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                          true  "Event ID"
// @Param        request  body      request.DeclareWinnerRequest true  "request body"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /admin/events/{eventID}/winner [post]
// @Security     BearerAuth
func (h *AdminHandler) HandleDeclareWinner(ctx *gin.Context) {
	if _, respErr := h.requireAdmin(ctx); respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	eventID, err := strconv.ParseUint(ctx.Param("eventID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid event ID: %w", err)))
		return
	}

	var req request.DeclareWinnerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.DeclareWinner(ctx.Request.Context(), uint(eventID), req.ProjectID); err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotInEvent):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("that project is not part of the selected event")))
		case errors.Is(err, service.ErrEventNotFound):
			response.RenderErr(ctx, response.ErrNotFound("event", "ID", eventID))
		default:
			err = fmt.Errorf("v1.HandleDeclareWinner -> h.svc.DeclareWinner -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Winner declared."})
}
