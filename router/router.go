// Package router wires repositories, services and handlers into the HTTP
// route table shared by the server binary and the tests.
package router

import (
	"net/http"
	"strings"
	"time"

	"yamdb-api/config"
	"yamdb-api/handlers"
	"yamdb-api/helper"
	"yamdb-api/mailer"
	"yamdb-api/middleware"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/repositories"
	"yamdb-api/services"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

type Services struct {
	Tokens     services.TokenService
	Auth       services.AuthService
	Users      services.UserService
	Categories services.SlugService[models.Category]
	Genres     services.SlugService[models.Genre]
	Titles     services.TitleService
	Reviews    services.ReviewService
	Comments   services.CommentService
}

func NewServices(db *gorm.DB, cfg *config.Config, mail mailer.Mailer, log *logging.Logger) *Services {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	titleRepo := repositories.NewTitleRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	tokens := services.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTExpiration)
	auth := services.NewAuthService(userRepo, tokens, mail, cfg.Mail.TokenURL, log)

	return &Services{
		Tokens:     tokens,
		Auth:       auth,
		Users:      services.NewUserService(userRepo, auth, log),
		Categories: services.NewCategoryService(categoryRepo, log),
		Genres:     services.NewGenreService(genreRepo, log),
		Titles:     services.NewTitleService(titleRepo, categoryRepo, genreRepo, log),
		Reviews:    services.NewReviewService(reviewRepo, titleRepo, log),
		Comments:   services.NewCommentService(commentRepo, reviewRepo, log),
	}
}

// SetupRouter returns the HTTP handler for the whole API. Every route also
// answers with a trailing slash.
func SetupRouter(svc *Services, cfg *config.Config, log *logging.Logger) http.Handler {
	h := helper.NewHTTPHelper(log, cfg.PageSize)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(svc.Auth, h)
	userHandler := handlers.NewUserHandler(svc.Users, h)
	categoryHandler := handlers.NewSlugHandler(svc.Categories, h)
	genreHandler := handlers.NewSlugHandler(svc.Genres, h)
	titleHandler := handlers.NewTitleHandler(svc.Titles, h)
	reviewHandler := handlers.NewReviewHandler(svc.Reviews, permissions.For(permissions.KindAuthorModeratorAdmin), h)
	commentHandler := handlers.NewCommentHandler(svc.Comments, permissions.For(permissions.KindAuthorModeratorAdmin), h)

	adminOrReadOnly := middleware.RequirePolicy(permissions.For(permissions.KindAdminOrReadOnly), h)
	authorModeratorAdmin := middleware.RequirePolicy(permissions.For(permissions.KindAuthorModeratorAdmin), h)
	authenticated := middleware.RequirePolicy(permissions.For(permissions.KindAuthenticated), h)
	adminOnly := middleware.RequirePolicy(permissions.For(permissions.KindAdminOnly), h)

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.HandleMethodNotAllowed = true

	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.Authenticate(svc.Tokens, log))

	router.NoRoute(func(c *gin.Context) {
		h.SendDetail(c, http.StatusNotFound, "Not found.")
	})
	router.NoMethod(h.MethodNotAllowed)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "time": time.Now().UTC()})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth", middleware.RateLimit(cfg.AuthRateLimit, cfg.AuthRateBurst, h))
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/token", authHandler.Token)
		}

		// Registered before /users/:username so "me" is never a username lookup.
		me := v1.Group("/users/me", authenticated)
		{
			me.GET("", userHandler.GetMe)
			me.PATCH("", userHandler.UpdateMe)
		}

		users := v1.Group("/users", adminOnly)
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:username", userHandler.GetUser)
			users.PATCH("/:username", userHandler.UpdateUser)
			users.DELETE("/:username", userHandler.DeleteUser)
		}

		slugRoutes(v1.Group("/categories"), categoryHandler, adminOrReadOnly, h)
		slugRoutes(v1.Group("/genres"), genreHandler, adminOrReadOnly, h)

		titles := v1.Group("/titles", adminOrReadOnly)
		{
			titles.GET("", titleHandler.GetTitles)
			titles.POST("", titleHandler.CreateTitle)
			titles.GET("/:title_id", titleHandler.GetTitle)
			titles.PUT("/:title_id", titleHandler.ReplaceTitle)
			titles.PATCH("/:title_id", titleHandler.UpdateTitle)
			titles.DELETE("/:title_id", titleHandler.DeleteTitle)
		}

		reviews := v1.Group("/titles/:title_id/reviews", authorModeratorAdmin)
		{
			reviews.GET("", reviewHandler.GetReviews)
			reviews.POST("", reviewHandler.CreateReview)
			reviews.GET("/:review_id", reviewHandler.GetReview)
			reviews.PUT("/:review_id", reviewHandler.ReplaceReview)
			reviews.PATCH("/:review_id", reviewHandler.UpdateReview)
			reviews.DELETE("/:review_id", reviewHandler.DeleteReview)
		}

		comments := v1.Group("/titles/:title_id/reviews/:review_id/comments", authorModeratorAdmin)
		{
			comments.GET("", commentHandler.GetComments)
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/:comment_id", commentHandler.GetComment)
			comments.PUT("/:comment_id", commentHandler.UpdateComment)
			comments.PATCH("/:comment_id", commentHandler.UpdateComment)
			comments.DELETE("/:comment_id", commentHandler.DeleteComment)
		}
	}

	return stripTrailingSlash(router)
}

// slugRoutes registers a category-like collection. Single items can only be
// patched or deleted; GET and PUT on an item are refused before any
// permission check.
func slugRoutes[T any](group *gin.RouterGroup, handler *handlers.SlugHandler[T], policy gin.HandlerFunc, h *helper.HTTPHelper) {
	group.GET("", handler.List)
	group.POST("", policy, handler.Create)
	group.PATCH("/:slug", policy, handler.Update)
	group.DELETE("/:slug", policy, handler.Delete)
	group.GET("/:slug", h.MethodNotAllowed)
	group.PUT("/:slug", h.MethodNotAllowed)
}

func stripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if len(r.URL.Path) > 1 && strings.HasSuffix(r.URL.Path, "/") {
			r.URL.Path = strings.TrimSuffix(r.URL.Path, "/")
			if r.URL.RawPath != "" {
				r.URL.RawPath = strings.TrimSuffix(r.URL.RawPath, "/")
			}
		}
		next.ServeHTTP(w, r)
	})
}
