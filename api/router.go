package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/pagescrape/api/handler"
	"github.com/use-agent/pagescrape/config"
	"github.com/use-agent/pagescrape/models"
	"github.com/use-agent/pagescrape/scraper"
)

// NewRouter creates a configured Gin engine with all routes and middleware.
//
// Middleware chain:
//
//	Global:  Recovery → Logger
//
// Recovery answers panics with the same {ok:false, error} payload as any
// other failure.
func NewRouter(sc *scraper.Scraper, cfg *config.Config, startTime time.Time) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.CustomRecovery(recoverJSON))
	r.Use(gin.Logger())

	api := r.Group("/api")
	api.GET("/health", handler.Health(startTime))
	api.POST("/scrape", handler.Scrape(sc))

	return r
}

func recoverJSON(c *gin.Context, recovered any) {
	slog.Error("handler panic", "path", c.Request.URL.Path, "panic", fmt.Sprint(recovered))
	c.AbortWithStatusJSON(http.StatusInternalServerError, models.Failure(models.Unknown(nil)))
}
