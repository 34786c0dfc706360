package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/prodexpert/expertise-api/docs"
	v1 "github.com/prodexpert/expertise-api/internal/api/handler/v1"
	"github.com/prodexpert/expertise-api/internal/api/middleware"
	"github.com/prodexpert/expertise-api/internal/config"
	"github.com/prodexpert/expertise-api/internal/pkg/notify"
	"github.com/prodexpert/expertise-api/internal/pkg/render"
	"github.com/prodexpert/expertise-api/internal/repository"
	"github.com/prodexpert/expertise-api/internal/repository/dao"
	"github.com/prodexpert/expertise-api/internal/service"
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

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	commissionHandler := s.initCommissionHandler(db)
	eventHandler := s.initEventHandler(db)
	sampleHandler := s.initSampleHandler(db)
	sessionHandler := s.initSessionHandler(db)
	documentHandler := s.initDocumentHandler(db)
	s.MountHandlers(authHandler, userHandler, commissionHandler, eventHandler, sampleHandler, sessionHandler, documentHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initCommissionHandler(db *gorm.DB) *v1.CommissionHandler {
	commissionDAO := dao.NewCommissionDAO(db)
	repo := repository.NewCommissionRepository(commissionDAO)
	svc := service.NewCommissionService(repo)
	handler := v1.NewCommissionHandler(svc)

	return handler
}

func (s *Server) initEventHandler(db *gorm.DB) *v1.EventHandler {
	eventDAO := dao.NewEventDAO(db)
	repo := repository.NewEventRepository(eventDAO)
	svc := service.NewEventService(repo)
	handler := v1.NewEventHandler(svc)

	return handler
}

func (s *Server) initSampleHandler(db *gorm.DB) *v1.SampleHandler {
	sampleRepo := repository.NewSampleRepository(dao.NewSampleDAO(db), dao.NewSequenceDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	evaluationRepo := repository.NewEvaluationRepository(dao.NewSessionDAO(db), dao.NewEvaluationDAO(db))

	svc := service.NewSampleService(sampleRepo, eventRepo)
	scoringSvc := service.NewScoringService(sampleRepo, evaluationRepo, eventRepo)
	handler := v1.NewSampleHandler(svc, scoringSvc)

	return handler
}

func (s *Server) initSessionHandler(db *gorm.DB) *v1.SessionHandler {
	evaluationRepo := repository.NewEvaluationRepository(dao.NewSessionDAO(db), dao.NewEvaluationDAO(db))
	sampleRepo := repository.NewSampleRepository(dao.NewSampleDAO(db), dao.NewSequenceDAO(db))
	commissionRepo := repository.NewCommissionRepository(dao.NewCommissionDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))

	eligibility := service.NewCategoryAssignmentEligibility(commissionRepo)
	svc := service.NewEvaluationService(evaluationRepo, sampleRepo, commissionRepo, eventRepo, eligibility)
	handler := v1.NewSessionHandler(svc)

	return handler
}

func (s *Server) initDocumentHandler(db *gorm.DB) *v1.DocumentHandler {
	documentRepo := repository.NewDocumentRepository(dao.NewDocumentDAO(db), dao.NewSequenceDAO(db))
	sampleRepo := repository.NewSampleRepository(dao.NewSampleDAO(db), dao.NewSequenceDAO(db))

	svc := service.NewDocumentService(documentRepo, sampleRepo, render.NewLogRenderer(), notify.NewLogNotifier())
	handler := v1.NewDocumentHandler(svc)

	return handler
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
	commissionHandler *v1.CommissionHandler,
	eventHandler *v1.EventHandler,
	sampleHandler *v1.SampleHandler,
	sessionHandler *v1.SessionHandler,
	documentHandler *v1.DocumentHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/experts", userHandler.HandleGetExperts)
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)

		authenticated.POST("/commissions", commissionHandler.HandleCreateCommission)
		authenticated.GET("/commissions/:commissionID", commissionHandler.HandleGetCommission)
		authenticated.POST("/commissions/:commissionID/members", commissionHandler.HandleAddMember)
		authenticated.POST("/commissions/:commissionID/members/:memberID/exclude", commissionHandler.HandleExcludeMember)
		authenticated.POST("/commissions/:commissionID/categories", commissionHandler.HandleAssignCategory)

		authenticated.POST("/events", eventHandler.HandleCreateEvent)
		authenticated.GET("/events", eventHandler.HandleGetEvents)
		authenticated.GET("/events/:eventID", eventHandler.HandleGetEvent)
		authenticated.POST("/events/:eventID/categories", eventHandler.HandleAddCategory)
		authenticated.POST("/events/:eventID/criteria", eventHandler.HandleAddCriterion)
		authenticated.GET("/events/:eventID/criteria", eventHandler.HandleGetCriteria)
		authenticated.GET("/events/:eventID/scoring-policy", eventHandler.HandleGetScoringPolicy)
		authenticated.PUT("/events/:eventID/scoring-policy", eventHandler.HandleUpdateScoringPolicy)
		authenticated.GET("/events/:eventID/samples", sampleHandler.HandleGetEventSamples)

		authenticated.POST("/samples", sampleHandler.HandleCreateSample)
		authenticated.GET("/samples/:sampleID", sampleHandler.HandleGetSample)
		authenticated.POST("/samples/:sampleID/submit", sampleHandler.HandleSubmitSample)
		authenticated.POST("/samples/:sampleID/exclude", sampleHandler.HandleExcludeSample)
		authenticated.POST("/samples/:sampleID/complete", sampleHandler.HandleCompleteSample)
		authenticated.POST("/samples/:sampleID/score", sampleHandler.HandleScoreSample)

		authenticated.POST("/sessions", sessionHandler.HandleOpenSession)
		authenticated.GET("/sessions/:sessionID", sessionHandler.HandleGetSession)
		authenticated.POST("/sessions/:sessionID/complete", sessionHandler.HandleCompleteSession)
		authenticated.POST("/sessions/:sessionID/cancel", sessionHandler.HandleCancelSession)
		authenticated.PUT("/sessions/:sessionID/evaluations", sessionHandler.HandleUpsertEvaluation)
		authenticated.PUT("/sessions/:sessionID/exclusion-vote", sessionHandler.HandleSetExclusionVote)
		authenticated.POST("/sessions/:sessionID/evaluations/submit", sessionHandler.HandleSubmitEvaluation)
		authenticated.GET("/sessions/:sessionID/members/:memberID/evaluation", sessionHandler.HandleGetEvaluation)
		authenticated.PUT("/evaluations/:evaluationID/calculation-exclusion", sessionHandler.HandleSetCalculationExclusion)

		authenticated.POST("/documents", documentHandler.HandleCreateDocument)
		authenticated.GET("/documents/:documentID", documentHandler.HandleGetDocument)
		authenticated.POST("/documents/:documentID/versions", documentHandler.HandleCreateNewVersion)
		authenticated.GET("/documents/:documentID/versions", documentHandler.HandleGetVersionChain)
		authenticated.POST("/documents/:documentID/generate", documentHandler.HandleGenerateDocument)
		authenticated.POST("/documents/:documentID/send", documentHandler.HandleSendDocument)
		authenticated.POST("/documents/:documentID/acknowledge", documentHandler.HandleAcknowledgeDocument)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Expertise API"
	docs.SwaggerInfo.Description = "Scoring subsystem for product evaluation events."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
