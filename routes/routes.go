package routes

import (
	"log/slog"
	"net/http"
	"time"

	"blog-api/handlers"
	"blog-api/helper"
	"blog-api/logger"
	"blog-api/middleware"
	"blog-api/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the collaborators the router wires into handlers.
type Dependencies struct {
	DB     *gorm.DB
	Log    *slog.Logger
	Helper *helper.HTTPHelper

	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Post       *handlers.PostHandler
	Comment    *handlers.CommentHandler
	Tag        *handlers.TagHandler
	Category   *handlers.CategoryHandler
	File       *handlers.FileHandler
	AuthSvc    services.AuthService
	CookieName string

	Limiter        middleware.Limiter
	RouteTimeout   time.Duration
	CORSOrigins    []string
	TrustedProxies []string
}

func SetupRouter(d Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	// ClientIP keys the throttle, so forwarded headers count only from listed proxies
	if err := router.SetTrustedProxies(d.TrustedProxies); err != nil {
		logger.Resolve(d.Log).Warn("invalid trusted proxies, trusting none", "error", err.Error())
		router.SetTrustedProxies(nil)
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     d.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RequestContext(d.Log, d.RouteTimeout, d.Helper))
	if d.Limiter != nil {
		router.Use(middleware.RateLimitMiddleware(d.Limiter, d.Helper))
	}

	router.GET("/health", func(c *gin.Context) {
		status := "healthy"
		if sqlDB, err := d.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
			status = "degraded"
		}
		c.JSON(http.StatusOK, gin.H{"status": status, "time": time.Now().Unix()})
	})

	auth := middleware.AuthMiddleware(d.AuthSvc, d.Helper, d.CookieName)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			d.Helper.SendSuccess(c, "healthy", d.Helper.EmptyJsonMap())
		})

		authRoutes := v1.Group("/auth")
		{
			authRoutes.POST("/signup", d.Auth.SignUp)
			authRoutes.POST("/signin", d.Auth.SignIn)
			authRoutes.POST("/signout", d.Auth.SignOut)
		}

		user := v1.Group("/user", auth)
		{
			user.GET("/me", d.User.GetMe)
			user.PATCH("/update-me", d.User.UpdateMe)
		}

		post := v1.Group("/post")
		{
			post.GET("", d.Post.GetPosts)
			post.GET("/by-slug", d.Post.GetPostBySlug)
			post.GET("/:id", d.Post.GetPost)
			post.POST("", auth, d.Post.CreatePost)
			post.PATCH("", auth, d.Post.UpdatePost)
			post.DELETE("", auth, d.Post.DeletePost)
		}

		comment := v1.Group("/comment")
		{
			comment.GET("", d.Comment.GetComments)
			comment.GET("/by-post", d.Comment.GetCommentsOfPost)
			comment.POST("", auth, d.Comment.CreateComment)
			comment.PATCH("", auth, d.Comment.UpdateComment)
			comment.DELETE("", auth, d.Comment.DeleteComment)
		}

		tag := v1.Group("/tag")
		{
			tag.GET("", d.Tag.SearchTags)
			tag.POST("/by-ids", d.Tag.GetTagsByID)
			tag.POST("", auth, d.Tag.CreateTag)
			tag.PATCH("", auth, d.Tag.UpdateTag)
			tag.DELETE("", auth, d.Tag.DeleteTag)
		}

		category := v1.Group("/category")
		{
			category.GET("", d.Category.SearchCategories)
			category.POST("/by-ids", d.Category.GetCategoriesByID)
			category.POST("", auth, d.Category.CreateCategory)
			category.PATCH("", auth, d.Category.UpdateCategory)
			category.DELETE("", auth, d.Category.DeleteCategory)
		}

		file := v1.Group("/file", auth)
		{
			file.POST("/upload-image", d.File.UploadImage)
		}
	}

	return router
}
