package api

import (
	"context"
	"net/http"
	"payroll/internal/entity"

	"github.com/gin-gonic/gin"
)

// statisticsScope 返回统计范围：管理员为 0（全部账户），员工为自身账户
func statisticsScope(c *gin.Context) (int64, bool) {
	user := CurrentUser(c)
	if user == nil {
		return 0, false
	}
	if user.IsAdmin() {
		return 0, true
	}
	return user.ID, true
}

func (h *HTTPHandler) Statistics(c *gin.Context) {
	accountID, ok := statisticsScope(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var summary entity.Summary
	if accountID == 0 {
		summary = h.ledger.Summarize(ctx)
	} else {
		summary = h.ledger.SummarizeAccount(ctx, accountID)
	}

	c.JSON(http.StatusOK, summary)
}

func (h *HTTPHandler) MonthlyStatistics(c *gin.Context) {
	accountID, ok := statisticsScope(c)
	if !ok {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	c.JSON(http.StatusOK, entity.MonthlyTotalsResponse{
		Months: h.ledger.MonthlyTotals(ctx, accountID),
	})
}
