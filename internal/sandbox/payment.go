package sandbox

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Subscription plans the sandbox pretends to bill for.
var planAmounts = map[string]float64{
	"starter": 999,
	"pro":     2499,
}

func (s *Server) handleCreatePaymentOrder(c *gin.Context) {
	var req struct {
		Plan string `json:"plan" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	amount, ok := planAmounts[req.Plan]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "unknown plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"order_id": "pay_" + uuid.NewString(),
		"amount":   amount,
		"currency": "INR",
		"plan":     req.Plan,
	})
}

func (s *Server) handleVerifyPayment(c *gin.Context) {
	var req struct {
		OrderID   string `json:"order_id" binding:"required"`
		PaymentID string `json:"payment_id" binding:"required"`
		Signature string `json:"signature" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	// The real backend checks the provider signature; the sandbox accepts any
	// complete verification triple.
	c.JSON(http.StatusOK, gin.H{"verified": true, "message": "payment verified"})
}
