package handler

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gallery/adminhub/internal/config"
	"gallery/adminhub/internal/handler/middleware"
	jwtpkg "gallery/adminhub/pkg/jwt"
)

// Handlers groups everything SetupRouter mounts.
type Handlers struct {
	Auth       *AuthHandler
	Account    *AccountHandler
	Invitation *InvitationHandler
	Admin      *AdminHandler
	Artist     *ArtistHandler
	Gallery    *GalleryHandler
	Upload     *UploadHandler
}

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	artistResolver middleware.ArtistResolver,
	h Handlers,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if cfg.Storage.Backend == "disk" {
		r.Static(cfg.Storage.Disk.BaseURL, cfg.Storage.Disk.Root)
	}

	// Public auth routes
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.POST("/password-reset/request", h.Auth.RequestPasswordReset)
		auth.POST("/password-reset/confirm", h.Auth.ConfirmPasswordReset)
	}

	// Invitees are not signed in yet when they check or activate a code.
	invitations := r.Group("/api/v1/invitations")
	{
		invitations.GET("/:code", h.Invitation.Validate)
		invitations.POST("/:code/activate", h.Invitation.Activate)
	}

	gallery := r.Group("/api/v1/gallery")
	gallery.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		gallery.GET("/artists", h.Gallery.ListArtists)
		gallery.GET("/artists/:slug", h.Gallery.GetArtist)
		gallery.GET("/artworks", h.Gallery.ListArtworks)
		gallery.GET("/events", h.Gallery.ListEvents)
	}

	// Protected routes
	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/me", h.Account.Me)
		protected.POST("/invitations/redeem", middleware.Sanitize(), h.Invitation.Redeem)
	}

	artist := r.Group("/api/v1/artist")
	artist.Use(middleware.JWTAuth(jwtManager))
	artist.Use(middleware.RequireArtist(artistResolver))
	artist.Use(middleware.Sanitize())
	{
		artist.GET("/profile", h.Artist.Profile)
		artist.GET("/artworks", h.Artist.ListArtworks)
		artist.POST("/artworks", h.Artist.SubmitArtwork)
		artist.PUT("/artworks/:id", h.Artist.UpdateArtwork)
		artist.DELETE("/artworks/:id", h.Artist.DeleteArtwork)
		artist.PUT("/artwork-order", h.Artist.ReorderArtworks)
		artist.POST("/uploads", h.Upload.Upload("artists"))
	}

	// Admin routes (JWT + admin check)
	admin := r.Group("/api/v1/admin")
	admin.Use(middleware.JWTAuth(jwtManager))
	admin.Use(middleware.AdminAuth())
	{
		admin.POST("/invitations", h.Invitation.Create)
		admin.GET("/invitations", h.Invitation.List)
		admin.GET("/invitations/stats", h.Invitation.Stats)
		admin.DELETE("/invitations/:id", h.Invitation.Delete)

		admin.GET("/artists", h.Admin.ListArtists)
		admin.POST("/artists", h.Admin.CreateArtist)
		admin.GET("/artists/:id", h.Admin.GetArtist)
		admin.PUT("/artists/:id", h.Admin.UpdateArtist)
		admin.PUT("/artists/:id/featured", h.Admin.SetArtistFeatured)
		admin.PUT("/artists/:id/visibility", h.Admin.SetArtistVisibility)
		admin.DELETE("/artists/:id", h.Admin.DeleteArtist)
		admin.PUT("/artists/:id/artwork-order", h.Admin.ReorderArtistArtworks)

		admin.GET("/artworks", h.Admin.ListArtworks)
		admin.POST("/artworks", h.Admin.CreateArtwork)
		admin.POST("/display-order/recompute", h.Admin.RecomputeDisplayOrder)
		admin.GET("/artworks/:id", h.Admin.GetArtwork)
		admin.PUT("/artworks/:id", h.Admin.UpdateArtwork)
		admin.DELETE("/artworks/:id", h.Admin.DeleteArtwork)
		admin.POST("/artworks/:id/approve", h.Admin.ApproveArtwork)
		admin.POST("/artworks/:id/reject", h.Admin.RejectArtwork)

		admin.GET("/events", h.Admin.ListEvents)
		admin.POST("/events", h.Admin.CreateEvent)
		admin.GET("/events/:id", h.Admin.GetEvent)
		admin.PUT("/events/:id", h.Admin.UpdateEvent)
		admin.DELETE("/events/:id", h.Admin.DeleteEvent)

		admin.POST("/uploads", h.Upload.Upload("admin"))
		admin.GET("/audit-logs", h.Admin.ListAuditLogs)

		accounts := admin.Group("/accounts")
		accounts.Use(middleware.SuperAdminAuth())
		{
			accounts.GET("", h.Account.List)
			accounts.POST("", h.Account.Create)
			accounts.PUT("/:id/role", h.Account.UpdateRole)
		}
	}

	return r
}
