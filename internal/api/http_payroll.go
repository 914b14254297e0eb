package api

import (
	"context"
	"errors"
	"net/http"
	"payroll/internal/entity"
	"payroll/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) ListDisbursements(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	var query entity.DisbursementQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "invalid query parameters")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	var records []entity.Disbursement
	switch {
	case !user.IsAdmin():
		// 员工只能查看发给自己的记录
		records = h.ledger.ListForAccount(ctx, user.ID)
	case query.AccountID > 0:
		records = h.ledger.ListForAccount(ctx, query.AccountID)
	default:
		records = h.ledger.ListAll(ctx)
	}

	c.JSON(http.StatusOK, entity.DisbursementListResponse{
		Records: records,
		Total:   len(records),
	})
}

func (h *HTTPHandler) RecordDisbursement(c *gin.Context) {
	var req entity.DisbursementCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}
	if req.AccountID <= 0 {
		MissingField(c, "account_id")
		return
	}
	if req.Amount == nil {
		MissingField(c, "amount")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	recipient := strings.TrimSpace(req.RecipientName)
	if recipient == "" {
		// 未填写收款人时使用账户显示名
		account, err := h.directory.Get(ctx, req.AccountID)
		switch {
		case err == nil:
			recipient = account.DisplayName
		case !errors.Is(err, service.ErrNotFound):
			ServiceError(c, err, "look up recipient")
			return
		}
	}

	record, err := h.ledger.Record(ctx, service.RecordInput{
		AccountID:     req.AccountID,
		RecipientName: recipient,
		Amount:        *req.Amount,
		Note:          req.Note,
	})
	if err != nil {
		ServiceError(c, err, "record disbursement")
		return
	}
	h.metrics.ObserveDisbursement(record.Amount)

	fields := logrus.Fields{
		"disbursement_id": record.ID,
		"account_id":      record.AccountID,
		"amount":          record.Amount,
	}
	if admin := CurrentUser(c); admin != nil {
		fields["recorded_by"] = admin.ID
	}
	logrus.WithFields(fields).Info("disbursement recorded")

	c.JSON(http.StatusCreated, record)
}
