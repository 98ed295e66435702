package router

import (
	"time"

	"markaz/config"
	"markaz/internal/domain"
	"markaz/internal/handler"
	"markaz/internal/middleware"
	"markaz/internal/repository"
	"markaz/internal/service"
	"markaz/internal/ws"
	"markaz/pkg/cloudinary"
	"markaz/pkg/paystack"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, gateway *paystack.Client) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewRateLimiter(100, time.Minute)))
	// Public forms and checkout get a much tighter cap than browsing.
	submitLimit := middleware.RateLimit(middleware.NewRateLimiter(10, time.Minute))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	seriesRepo := repository.NewSeriesRepository(db)
	audioRepo := repository.NewAudioRepository(db)
	albumRepo := repository.NewAlbumRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	playlistRepo := repository.NewPlaylistRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	ebookRepo := repository.NewEbookRepository(db)
	donationRepo := repository.NewDonationRepository(db)
	intakeRepo := repository.NewIntakeRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	feedHub := ws.NewFeedHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	donationSvc := service.NewDonationService(cfg, donationRepo, auditRepo, gateway, feedHub)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc, userRepo)
	adminHandler := handler.NewAdminHandler(authSvc, userRepo, donationRepo, articleRepo, seriesRepo, albumRepo, playlistRepo, auditRepo)
	articleHandler := handler.NewArticleHandler(articleRepo, cloud)
	seriesHandler := handler.NewSeriesHandler(seriesRepo, audioRepo, cloud)
	albumHandler := handler.NewAlbumHandler(albumRepo, photoRepo, cloud)
	playlistHandler := handler.NewPlaylistHandler(playlistRepo, videoRepo, cloud)
	ebookHandler := handler.NewEbookHandler(ebookRepo, cloud)
	donationHandler := handler.NewDonationHandler(donationSvc, donationRepo)
	webhookHandler := handler.NewPaystackWebhookHandler(donationSvc, cfg)
	intakeHandler := handler.NewIntakeHandler(intakeRepo, auditRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)
	staffMw := middleware.RequireRole(domain.RoleAdmin, domain.RoleEditor)

	api := r.Group("/api/v1")
	{
		// Public site
		api.GET("/articles", articleHandler.ListPublished)
		api.GET("/articles/:id", articleHandler.Get)
		api.GET("/series", seriesHandler.List)
		api.GET("/series/:id/tracks", seriesHandler.Tracks)
		api.GET("/albums", albumHandler.List)
		api.GET("/albums/:id/photos", albumHandler.Photos)
		api.GET("/playlists", playlistHandler.List)
		api.GET("/playlists/:id/videos", playlistHandler.Videos)
		api.GET("/ebooks", ebookHandler.List)
		api.POST("/volunteers", submitLimit, intakeHandler.CreateVolunteer)
		api.POST("/partners", submitLimit, intakeHandler.CreatePartner)
		api.POST("/donations/initiate", submitLimit, donationHandler.Initiate)
		api.GET("/donations/verify/:reference", donationHandler.VerifyByReference)

		// Gateway callbacks
		api.POST("/webhooks/paystack", webhookHandler.Handle)

		// Back office
		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)
			admin.POST("/refresh", authHandler.Refresh)

			staff := admin.Group("")
			staff.Use(authMw, staffMw)
			{
				staff.PATCH("/change-password", authHandler.ChangePassword)
				staff.GET("/dashboard", adminHandler.Dashboard)

				staff.GET("/articles", articleHandler.ListAll)
				staff.POST("/articles", articleHandler.Create)
				staff.POST("/articles/cover", articleHandler.UploadCover)
				staff.PUT("/articles/:id", articleHandler.Update)
				staff.PATCH("/articles/:id/publish", articleHandler.SetPublished)
				staff.DELETE("/articles/:id", articleHandler.Delete)

				staff.POST("/series", seriesHandler.Create)
				staff.PUT("/series/:id", seriesHandler.Update)
				staff.DELETE("/series/:id", seriesHandler.Delete)
				staff.POST("/series/:id/tracks", seriesHandler.CreateTrack)
				staff.DELETE("/tracks/:id", seriesHandler.DeleteTrack)

				staff.POST("/albums", albumHandler.Create)
				staff.PUT("/albums/:id", albumHandler.Update)
				staff.DELETE("/albums/:id", albumHandler.Delete)
				staff.POST("/albums/:id/photos", albumHandler.UploadPhoto)
				staff.DELETE("/photos/:id", albumHandler.DeletePhoto)

				staff.POST("/playlists", playlistHandler.Create)
				staff.PUT("/playlists/:id", playlistHandler.Update)
				staff.DELETE("/playlists/:id", playlistHandler.Delete)
				staff.POST("/playlists/:id/videos", playlistHandler.CreateVideo)
				staff.DELETE("/videos/:id", playlistHandler.DeleteVideo)

				staff.POST("/ebooks", ebookHandler.Create)
				staff.PUT("/ebooks/:id", ebookHandler.Update)
				staff.DELETE("/ebooks/:id", ebookHandler.Delete)

				staff.GET("/donations", donationHandler.List)
				staff.GET("/donations/stats", donationHandler.Stats)
			}

			adminOnly := admin.Group("")
			adminOnly.Use(authMw, middleware.AdminRequired())
			{
				adminOnly.POST("/donations/:id/verify", donationHandler.VerifyBankTransfer)
				adminOnly.GET("/volunteers", intakeHandler.ListVolunteers)
				adminOnly.POST("/volunteers/:id/review", intakeHandler.ReviewVolunteer)
				adminOnly.GET("/partners", intakeHandler.ListPartners)
				adminOnly.POST("/partners/:id/review", intakeHandler.ReviewPartner)
				adminOnly.POST("/staff", adminHandler.CreateStaff)
				adminOnly.GET("/staff", adminHandler.ListStaff)
				adminOnly.DELETE("/staff/:id", adminHandler.DeleteStaff)
				adminOnly.GET("/audit", adminHandler.AuditTrail)
			}
		}
	}

	r.GET("/ws/donations", ws.UpgradeFeedWS(&cfg.JWT, feedHub))

	return r
}
