package api

import (
	"context"
	"net/http"
	"payroll/internal/entity"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) ListUsers(c *gin.Context) {
	var query entity.AccountQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	summaries := h.directory.ListSummaries(ctx)
	if query.Approved != nil {
		filtered := make([]entity.AccountSummary, 0, len(summaries))
		for _, s := range summaries {
			if s.Approved == *query.Approved {
				filtered = append(filtered, s)
			}
		}
		summaries = filtered
	}

	c.JSON(http.StatusOK, entity.AccountListResponse{
		Users: summaries,
		Total: len(summaries),
	})
}

func (h *HTTPHandler) ApproveUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		BadRequest(c, ErrCodeInvalidRequest, "invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	if err := h.directory.Approve(ctx, id); err != nil {
		ServiceError(c, err, "approve user")
		return
	}
	h.metrics.ObserveApproval()

	account, err := h.directory.Get(ctx, id)
	if err != nil {
		ServiceError(c, err, "load approved user")
		return
	}

	fields := logrus.Fields{"account_id": id}
	if admin := CurrentUser(c); admin != nil {
		fields["approved_by"] = admin.ID
	}
	logrus.WithFields(fields).Info("account approved")

	c.JSON(http.StatusOK, gin.H{
		"message": "user approved",
		"user":    account.Summary(),
	})
}

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	value := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
