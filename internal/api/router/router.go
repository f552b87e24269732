package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"sports-scheduler/config"
	"sports-scheduler/internal/api/handler"
	"sports-scheduler/internal/api/middleware"
	"sports-scheduler/internal/model"
	"sports-scheduler/pkg/redis"
	"sports-scheduler/pkg/validate"
)

// Setup builds the gin engine with every route of the API.
func Setup(cfg *config.Config, h *handler.Handler, loader middleware.SessionLoader, rdb *redis.Client, db *gorm.DB, logger *zap.Logger) (*gin.Engine, error) {
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := validate.Register(v); err != nil {
			return nil, fmt.Errorf("register validators: %w", err)
		}
	}

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	r.Use(sessions.Sessions(cfg.Session.Name, sessionStore(&cfg.Session)))

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if db != nil {
			if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(ctx) != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	loginLimit := middleware.RateLimit(rdb, cfg.RateLimit.LoginLimit, cfg.RateLimit.Window)
	chatLimit := middleware.RateLimit(rdb, cfg.RateLimit.ChatLimit, cfg.RateLimit.Window)
	can := middleware.RequireCapability

	v1 := r.Group("/api/v1")
	{
		// public
		v1.POST("/auth/login", loginLimit, h.Auth.Login)
		v1.POST("/auth/logout", h.Auth.Logout)
		v1.GET("/calendar/:token", h.Calendar.Feed)

		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(loader))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			authorized.GET("/dashboard", h.Dashboard.Summary)

			games := authorized.Group("/games")
			{
				games.GET("", can(model.CapViewGames), h.Game.ListGames)
				games.POST("", can(model.CapManageGames), h.Game.CreateGame)
				games.GET("/next-link-group", can(model.CapManageGames), h.Game.NextLinkGroup)
				games.GET("/template.csv", can(model.CapManageGames), h.Game.Template)
				games.GET("/export.xlsx", can(model.CapViewGames), h.Game.ExportExcel)
				games.POST("/import", can(model.CapManageGames), h.Game.ImportGames)
				games.POST("/export", can(model.CapViewGames), h.Game.ExportCSV)
				games.POST("/bulk-link", can(model.CapManageGames), h.Game.BulkLink)
				games.POST("/bulk-unlink", can(model.CapManageGames), h.Game.BulkUnlink)
				games.POST("/bulk-delete", can(model.CapManageGames), h.Game.BulkDelete)
				games.GET("/:id", can(model.CapViewGames), h.Game.GetGame)
				games.PUT("/:id", can(model.CapManageGames), h.Game.UpdateGame)
				games.DELETE("/:id", can(model.CapManageGames), h.Game.DeleteGame)
			}

			assignments := authorized.Group("/assignments")
			{
				assignments.GET("", can(model.CapViewAssignments), h.Assignment.ListAssignments)
				assignments.POST("", can(model.CapManageAssignments), h.Assignment.CreateAssignment)
				assignments.POST("/bulk", can(model.CapManageAssignments), h.Assignment.BulkCreate)
				assignments.POST("/import", can(model.CapManageAssignments), h.Assignment.ImportAssignments)
				assignments.GET("/export.xlsx", can(model.CapViewAssignments), h.Assignment.ExportExcel)
				assignments.GET("/:id", can(model.CapViewAssignments), h.Assignment.GetAssignment)
				assignments.PUT("/:id", can(model.CapManageAssignments), h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", can(model.CapManageAssignments), h.Assignment.DeleteAssignment)
				assignments.POST("/:id/respond", can(model.CapRespondAssignments), h.Assignment.Respond)
			}

			leagues := authorized.Group("/leagues")
			{
				leagues.GET("", can(model.CapViewGames), h.League.ListLeagues)
				leagues.POST("", can(model.CapManageLeagues), h.League.CreateLeague)
				leagues.GET("/filter-options", can(model.CapViewGames), h.League.FilterOptions)
				leagues.POST("/advanced-search", can(model.CapViewGames), h.League.AdvancedSearch)
				leagues.GET("/:id", can(model.CapViewGames), h.League.GetLeague)
				leagues.PUT("/:id", can(model.CapManageLeagues), h.League.UpdateLeague)
				leagues.DELETE("/:id", can(model.CapManageLeagues), h.League.DeleteLeague)
				leagues.GET("/:id/members", can(model.CapManageLeagues), h.League.ListMembers)
				leagues.POST("/:id/members", can(model.CapManageLeagues), h.League.AddMember)

				leagues.GET("/:id/levels", can(model.CapViewGames), h.Level.ListLevels)
				leagues.POST("/:id/levels", can(model.CapManageLeagues), h.Level.AddLevel)
				leagues.DELETE("/:id/levels/:level_id", can(model.CapManageLeagues), h.Level.RemoveLevel)

				leagues.GET("/:id/fees", can(model.CapManageFees), h.League.ListFees)
				leagues.POST("/:id/fees", can(model.CapManageFees), h.League.CreateFee)
				leagues.PUT("/:id/fees/:fee_id", can(model.CapManageFees), h.League.UpdateFee)
				leagues.DELETE("/:id/fees/:fee_id", can(model.CapManageFees), h.League.DeleteFee)

				leagues.GET("/:id/billing", can(model.CapManageBilling), h.League.ListBilling)
				leagues.POST("/:id/billing", can(model.CapManageBilling), h.League.CreateBilling)
				leagues.PUT("/:id/billing/:billing_id", can(model.CapManageBilling), h.League.UpdateBilling)
				leagues.DELETE("/:id/billing/:billing_id", can(model.CapManageBilling), h.League.DeleteBilling)
			}

			authorized.GET("/predetermined-levels", h.Level.Catalog)
			authorized.GET("/predetermined-levels/sport/:sport", h.Level.CatalogBySport)
			authorized.GET("/sports-list", h.Level.Sports)
			authorized.GET("/categories-list", h.Level.Categories)

			locations := authorized.Group("/locations")
			{
				locations.GET("", h.Location.ListLocations)
				locations.POST("", can(model.CapManageLeagues), h.Location.CreateLocation)
				locations.GET("/:id", h.Location.GetLocation)
				locations.PUT("/:id", can(model.CapManageLeagues), h.Location.UpdateLocation)
				locations.DELETE("/:id", can(model.CapManageLeagues), h.Location.DeleteLocation)
			}

			billTo := authorized.Group("/bill-to-entities", can(model.CapManageBilling))
			{
				billTo.GET("", h.BillTo.ListBillTo)
				billTo.POST("", h.BillTo.CreateBillTo)
				billTo.GET("/:id", h.BillTo.GetBillTo)
				billTo.PUT("/:id", h.BillTo.UpdateBillTo)
				billTo.DELETE("/:id", h.BillTo.DeleteBillTo)
			}

			users := authorized.Group("/users", can(model.CapManageUsers))
			{
				users.GET("", h.User.ListUsers)
				users.POST("", h.User.CreateUser)
				users.POST("/search", h.User.SearchUser)
				users.GET("/:id", h.User.GetUser)
				users.DELETE("/:id", h.User.DeactivateUser)
			}

			officials := authorized.Group("/officials", can(model.CapViewOfficials))
			{
				officials.GET("", h.User.ListOfficials)
				officials.POST("", h.User.CreateOfficial)
				officials.GET("/:id", h.User.GetOfficial)
				officials.PUT("/:id", h.User.UpdateOfficial)
			}

			// presets are owned per user; the service checks who may touch whose
			presets := authorized.Group("/users/:id/filter-presets")
			{
				presets.GET("", h.Preset.ListPresets)
				presets.POST("", h.Preset.CreatePreset)
				presets.DELETE("/:preset_id", h.Preset.DeletePreset)
			}

			me := authorized.Group("/me")
			{
				me.GET("/profile", h.Self.GetProfile)
				me.PUT("/profile", h.Self.UpdateProfile)
				me.GET("/games", can(model.CapSelfService), h.Self.MyGames)
				me.GET("/stats", can(model.CapSelfService), h.Self.MyStats)
				me.GET("/calendar-link", can(model.CapSelfService), h.Self.CalendarLink)
			}

			assistant := authorized.Group("/assistant")
			{
				assistant.POST("/chat", chatLimit, h.Assistant.Chat)
				assistant.GET("/help/:topic", h.Assistant.Help)
			}
		}
	}

	return r, nil
}

func sessionStore(cfg *config.SessionConfig) sessions.Store {
	store := cookie.NewStore([]byte(cfg.Secret))
	store.Options(sessions.Options{
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   cfg.MaxAge,
		Secure:   cfg.Secure,
		HttpOnly: true,
		SameSite: sameSite(cfg.SameSite),
	})
	return store
}

func sameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
