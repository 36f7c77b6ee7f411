package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/hackathonspt/attendee-hq/docs"
	v1 "github.com/hackathonspt/attendee-hq/internal/api/handler/v1"
	"github.com/hackathonspt/attendee-hq/internal/api/middleware"
	"github.com/hackathonspt/attendee-hq/internal/config"
	"github.com/hackathonspt/attendee-hq/internal/repository"
	"github.com/hackathonspt/attendee-hq/internal/repository/dao"
	"github.com/hackathonspt/attendee-hq/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := initUserService(db)
	eventSvc := initEventService(db)
	projectSvc := initProjectService(db)

	feed := v1.NewAnnouncementFeed(eventSvc, userSvc)
	go feed.Run()

	authHandler := v1.NewAuthHandler(s.Config.API, initAuthService(db))
	userHandler := v1.NewUserHandler(userSvc)
	eventHandler := v1.NewEventHandler(eventSvc, projectSvc, userSvc)
	projectHandler := v1.NewProjectHandler(projectSvc, userSvc)
	adminHandler := v1.NewAdminHandler(s.Config.API, eventSvc, userSvc, feed)

	s.MountHandlers(authHandler, userHandler, eventHandler, projectHandler, adminHandler, feed)

	return s
}

func initAuthService(db *gorm.DB) *service.AuthService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewAuthService(repo)
}

func initUserService(db *gorm.DB) *service.UserService {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)

	return service.NewUserService(repo)
}

func initEventService(db *gorm.DB) *service.EventService {
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	projectRepo := repository.NewProjectRepository(dao.NewProjectDAO(db))

	return service.NewEventService(eventRepo, projectRepo)
}

func initProjectService(db *gorm.DB) *service.ProjectService {
	projectRepo := repository.NewProjectRepository(dao.NewProjectDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	return service.NewProjectService(projectRepo, eventRepo)
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	projectHandler *v1.ProjectHandler,
	adminHandler *v1.AdminHandler,
	feed *v1.AnnouncementFeed,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.GET("/events", eventHandler.HandleListEvents)
		authenticated.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authenticated.POST("/events/link", eventHandler.HandleLinkEvent)
		authenticated.GET("/events/:eventID/announcements/stream", feed.HandleAnnouncementStream)

		authenticated.POST("/events/:eventID/projects", projectHandler.HandleSubmitProject)
		authenticated.POST("/projects/:projectID/vote", projectHandler.HandleCastVote)

		// Admin mutations. The email gate lives in the handlers.
		authenticated.GET("/admin/overview", adminHandler.HandleAdminOverview)
		authenticated.POST("/admin/events", adminHandler.HandleCreateEvent)
		authenticated.POST("/admin/events/:eventID/invites", adminHandler.HandleGenerateInvite)
		authenticated.POST("/admin/events/:eventID/announcements", adminHandler.HandlePublishAnnouncement)
		authenticated.PUT("/admin/events/:eventID/guide", adminHandler.HandleUpdateGuide)
		authenticated.POST("/admin/events/:eventID/winner", adminHandler.HandleDeclareWinner)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Hackathon Attendee HQ API"
	docs.SwaggerInfo.Description = "Event management API for hackathons: invites, projects, votes and announcements."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
