package sandbox

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	store     *Store
	hub       *hub
	jwtSecret string
	log       *zap.Logger
}

func NewServer(jwtSecret string, log *zap.Logger) *Server {
	return &Server{
		store:     NewStore(),
		hub:       newHub(log),
		jwtSecret: jwtSecret,
		log:       log,
	}
}

// Router wires the documented backend surface.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", s.handleRegister)
		auth.POST("/login", s.handleLogin)
		auth.POST("/forgot-password", s.handleForgotPassword)
		auth.GET("/me", s.authRequired, s.handleMe)
	}

	api := router.Group("/api", s.authRequired)
	{
		api.GET("/menu", s.handleListMenu)
		api.POST("/menu", s.handleCreateMenuItem)
		api.PUT("/menu/:id", s.handleUpdateMenuItem)
		api.DELETE("/menu/:id", s.handleDeleteMenuItem)

		api.GET("/tables", s.handleListTables)
		api.POST("/tables", s.handleCreateTable)
		api.PUT("/tables/:id", s.handleUpdateTable)
		api.DELETE("/tables/:id", s.handleDeleteTable)

		api.GET("/table-groups", s.handleListTableGroups)
		api.POST("/table-groups", s.handleCreateTableGroup)
		api.DELETE("/table-groups/:id", s.handleDeleteTableGroup)

		api.GET("/orders", s.handleListOrders)
		api.POST("/orders", s.handlePlaceOrder)
		api.GET("/orders/:id", s.handleGetOrder)
		api.PUT("/orders/:id/status", s.handleUpdateOrderStatus)
		api.POST("/orders/:id/cancel", s.handleCancelOrder)
		api.POST("/orders/:id/items/:item_id/cancel", s.handleCancelOrderItem)
		api.POST("/orders/:id/feedback", s.handleOrderFeedback)

		api.GET("/analytics/summary", s.handleAnalyticsSummary)
		api.GET("/analytics/revenue-orders", s.handleRevenueOrders)
		api.GET("/analytics/top-items", s.handleTopItems)
		api.GET("/analytics/category-performance", s.handleCategoryPerformance)
		api.GET("/analytics/payment-methods", s.handlePaymentMethods)
		api.GET("/analytics/table-performance", s.handleTablePerformance)
		api.GET("/analytics/hourly-orders", s.handleHourlyOrders)
		api.GET("/analytics/customer-retention", s.handleCustomerRetention)
		api.GET("/analytics/previous-period", s.handlePreviousPeriod)

		api.GET("/branches", s.handleListBranches)
		api.POST("/branches", s.handleCreateBranch)
		api.PUT("/branches/:id", s.handleUpdateBranch)
		api.DELETE("/branches/:id", s.handleDeleteBranch)

		api.GET("/roles", s.handleListRoles)
		api.POST("/roles", s.handleCreateRole)
		api.PUT("/roles/:id", s.handleUpdateRole)
		api.DELETE("/roles/:id", s.handleDeleteRole)

		api.GET("/users", s.handleListUsers)
		api.POST("/users", s.handleCreateUser)
		api.PUT("/users/:id", s.handleUpdateUser)
		api.DELETE("/users/:id", s.handleDeleteUser)

		api.GET("/staff", s.handleListStaff)
		api.POST("/staff", s.handleCreateStaff)
		api.PUT("/staff/:id", s.handleUpdateStaff)
		api.DELETE("/staff/:id", s.handleDeleteStaff)

		api.GET("/ingredients", s.handleListIngredients)
		api.POST("/ingredients", s.handleCreateIngredient)
		api.PUT("/ingredients/:id", s.handleUpdateIngredient)
		api.DELETE("/ingredients/:id", s.handleDeleteIngredient)

		api.POST("/support/ticket", s.handleCreateTicket)
		api.GET("/support/tickets", s.handleListTickets)
		api.GET("/support/ticket/:id", s.handleGetTicket)
		api.POST("/support/ticket/:id/reply", s.handleReplyTicket)

		api.POST("/payment/create-order", s.handleCreatePaymentOrder)
		api.POST("/payment/verify", s.handleVerifyPayment)
	}

	router.GET("/socket", s.handleSocket)

	return router
}
