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

type ProjectService interface {
	SubmitProject(ctx context.Context, project domain.Project) (domain.Project, error)
	CastVote(ctx context.Context, projectID, voterID uint) (domain.Project, error)
}

type ProjectHandler struct {
	svc  ProjectService
	uSvc UserService
}

func NewProjectHandler(svc ProjectService, uSvc UserService) *ProjectHandler {
	return &ProjectHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleSubmitProject godoc
// @Summary      Submit a project to an event
// @Description  Creates a project with its listed participants. The caller and every listed participant id must already have joined the event. The caller's id is not added implicitly.
// @Tags         projects
// @Accept       json
// @Produce      json
// @Param        eventID  path      int                           true  "Event ID"
// @Param        request  body      request.CreateProjectRequest  true  "request body"
// @Success      201  {object}  domain.Project
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /events/{eventID}/projects [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleSubmitProject(ctx *gin.Context) {
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

	var req request.CreateProjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	participantIDs, err := req.ParticipantIDs()
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	project, err := h.svc.SubmitProject(ctx.Request.Context(), domain.Project{
		EventID:        uint(eventID),
		Name:           req.Name,
		GithubURL:      req.GithubURL,
		PlayableURL:    req.PlayableURL,
		CreatedByID:    user.ID,
		ParticipantIDs: participantIDs,
	})
	if err != nil {
		var notLinked *service.ParticipantsNotLinkedError
		switch {
		case errors.Is(err, service.ErrNotEventParticipant):
			response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("you must join the event before shipping a project")))
		case errors.As(err, &notLinked):
			response.RenderErr(ctx, response.ErrBadRequest(notLinked))
		default:
			err = fmt.Errorf("v1.HandleSubmitProject -> h.svc.SubmitProject -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusCreated, project)
}

// HandleCastVote godoc
// @Summary      Vote for a project
// @Description  Casts the caller's vote for a project. One vote per event; voting again in the same event moves the vote.
// @Tags         projects
// @Produce      json
// @Param        projectID  path  int  true  "Project ID"
// @Success      200
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /projects/{projectID}/vote [post]
// @Security     BearerAuth
func (h *ProjectHandler) HandleCastVote(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	projectID, err := strconv.ParseUint(ctx.Param("projectID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid project ID: %w", err)))
		return
	}

	project, err := h.svc.CastVote(ctx.Request.Context(), uint(projectID), user.ID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProjectNotFound):
			response.RenderErr(ctx, response.ErrNotFound("project", "ID", projectID))
		case errors.Is(err, service.ErrNotEventParticipant):
			response.RenderErr(ctx, response.ErrPermissionDenied(errors.New("you can only vote in events that you have joined")))
		default:
			err = fmt.Errorf("v1.HandleCastVote -> h.svc.CastVote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Your vote for %v has been saved.", project.Name),
	})
}
