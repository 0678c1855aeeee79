package api

import (
	"net/http"

	authHandler "referral-server/internal/auth/handler"
	"referral-server/internal/metrics"
	referralHandler "referral-server/internal/referral/handler"

	"github.com/gin-gonic/gin"
)

type API struct {
	router          *gin.RouterGroup
	authHandler     authHandler.Handler
	referralHandler referralHandler.Handler
	metrics         *metrics.Metrics
}

func New(router *gin.RouterGroup, authHandler authHandler.Handler, referralHandler referralHandler.Handler, metrics *metrics.Metrics) API {
	return API{
		router:          router,
		authHandler:     authHandler,
		referralHandler: referralHandler,
		metrics:         metrics,
	}
}

func (a *API) RegisterRoutes() {
	a.Health()
	if a.metrics != nil {
		a.router.GET("/metrics", gin.WrapH(a.metrics.Handler()))
	}

	v1 := a.router.Group("/v1")
	{
		// Resolution happens before the referee has an account.
		v1.POST("/referrals/resolve", a.referralHandler.HandleResolve)
		v1.POST("/webhooks/deeplink/events", a.referralHandler.HandleVendorWebhook)
	}

	referralGroup := v1.Group("/referrals", a.authHandler.HandleJWTMiddleware)
	{
		referralGroup.POST("/links", a.referralHandler.HandleCreateLink)
		referralGroup.GET("", a.referralHandler.HandleListReferrals)
		referralGroup.GET("/summary", a.referralHandler.HandleGetSummary)
	}
}

func (a *API) Health() {
	a.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
