// Package api assembles the HTTP surface: middleware chain, routes and
// static uploads.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edupath/internal/api/controllers"
	"edupath/internal/models/db_models"
	mem "edupath/pkg/memcache"
	"edupath/pkg/middleware"
	"edupath/pkg/utils"
)

type RouterParams struct {
	Log          *zap.Logger
	Tokens       *utils.TokenIssuer
	Revocations  mem.TTLStore
	CookieName   string
	FrontendURL  string
	UploadDir    string
	Development  bool
	LoginLimit   uint
	ChatPerMin   uint
	MaxMultipart int64

	Accounts  *controllers.AccountController
	Quiz      *controllers.QuizController
	Colleges  *controllers.CollegeController
	Chat      *controllers.ChatController
	Health    *controllers.HealthController
	Dashboard *controllers.DashboardController
}

func NewRouter(p RouterParams) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Log))
	r.Use(middleware.SecureHeaders(p.Development))
	r.Use(middleware.CORS(p.FrontendURL))
	if p.MaxMultipart > 0 {
		r.MaxMultipartMemory = p.MaxMultipart
	}

	if p.UploadDir != "" {
		r.Static("/uploads", p.UploadDir)
	}

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	auth := middleware.JWTAuthMiddleware(p.Tokens, p.Revocations, p.CookieName)

	r.GET("/", p.Health.Welcome)
	r.NoRoute(p.Health.NotFound)

	api := r.Group("/api")
	api.GET("/health", p.Health.Health)

	authGroup := api.Group("/auth")
	authGroup.POST("/register", p.Accounts.Register)
	authGroup.POST("/login", limiter(15*time.Minute, p.LoginLimit), p.Accounts.Login)
	authGroup.GET("/me", auth, p.Accounts.Me)
	authGroup.PUT("/me", auth, p.Accounts.UpdateMe)
	authGroup.GET("/logout", auth, p.Accounts.Logout)
	authGroup.POST("/logout", auth, p.Accounts.Logout)

	quiz := api.Group("/quiz", auth)
	quiz.POST("/submit", p.Quiz.SubmitQuiz)
	quiz.GET("/results", p.Quiz.ListResults)
	quiz.GET("/results/:id", p.Quiz.GetResult)
	quiz.GET("/history", p.Quiz.History)

	colleges := api.Group("/colleges")
	colleges.GET("", p.Colleges.ListColleges)
	colleges.GET("/semantic", p.Colleges.SemanticSearch)
	colleges.GET("/radius", p.Colleges.CollegesInRadius)
	colleges.POST("", auth, middleware.RoleMiddleware(db_models.RoleAdmin), p.Colleges.CreateCollege)
	colleges.GET("/:id", p.Colleges.GetCollege)
	colleges.PUT("/:id", auth, p.Colleges.UpdateCollege)
	colleges.DELETE("/:id", auth, p.Colleges.DeleteCollege)
	colleges.PUT("/:id/photo", auth, p.Colleges.UploadPhoto)

	colleges.GET("/:id/courses", p.Colleges.ListCourses)
	colleges.GET("/:id/courses/:courseId", p.Colleges.GetCourse)
	colleges.POST("/:id/courses", auth, p.Colleges.AddCourse)
	colleges.PUT("/:id/courses/:courseId", auth, p.Colleges.UpdateCourse)
	colleges.DELETE("/:id/courses/:courseId", auth, p.Colleges.DeleteCourse)

	api.POST("/ask", limiter(time.Minute, p.ChatPerMin), p.Chat.Ask)

	admin := api.Group("/admin", auth, middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.GET("/dashboard", p.Dashboard.GetDashboard)
}

// limiter skips rate limiting when limit is zero.
func limiter(window time.Duration, limit uint) gin.HandlerFunc {
	if limit == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return middleware.RateLimit(window, limit)
}
