package mock

import (
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// Router returns the gin engine serving the backend under /api.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	api := router.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/login", s.defaultLoginHandler)
	authGroup.POST("/refresh", func(c *gin.Context) {
		if s.RefreshHandler != nil {
			s.RefreshHandler(c)
			return
		}
		s.defaultRefreshHandler(c)
	})
	authGroup.POST("/logout", s.defaultLogoutHandler)

	protected := api.Group("", s.authenticate)
	protected.GET("/users/me", s.defaultMeHandler)
	protected.PUT("/users/change-password", s.defaultChangePasswordHandler)
	protected.PUT(ordersPath+"/:id/status", s.defaultOrderStatusHandler)
	for _, path := range collectionPaths {
		s.register(protected, path, s.collections[path])
	}

	statistics := protected.Group("/statistics", s.requireAdmin)
	statistics.GET("/total-revenue", func(c *gin.Context) {
		total := 0.0
		for _, month := range monthlyRevenue {
			total += month.TotalRevenue
		}
		respond(c, total)
	})
	statistics.GET("/new-orders", func(c *gin.Context) {
		number, size := pageParams(c)
		respond(c, s.collections[ordersPath].page("PENDING", "", number, size))
	})
	statistics.GET("/daily-reports", func(c *gin.Context) {
		respond(c, map[string]any{"content": dailyReports, "page": map[string]any{
			"size": len(dailyReports), "number": 0, "totalElements": len(dailyReports), "totalPages": 1,
		}})
	})
	statistics.GET("/revenue-by-month", func(c *gin.Context) { respond(c, monthlyRevenue) })
	statistics.GET("/revenue-by-category", func(c *gin.Context) { respond(c, categoryRevenue) })
	statistics.GET("/revenue-by-brand", func(c *gin.Context) { respond(c, brandRevenue) })
	statistics.GET("/top-selling-products", func(c *gin.Context) { respond(c, sellingProducts) })
	return router
}

// NewHTTPTestServer starts a seeded backend; callers must Close the server.
func NewHTTPTestServer() (*httptest.Server, *Service, error) {
	service, err := New()
	if err != nil {
		return nil, nil, err
	}
	gin.SetMode(gin.TestMode)
	return httptest.NewServer(service.Router()), service, nil
}
