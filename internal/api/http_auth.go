package api

import (
	"context"
	"errors"
	"net/http"
	"payroll/internal/entity"
	"payroll/internal/metrics"
	"payroll/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.AuthLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, ErrCodeInvalidRequest, "login_name and password are required")
		return
	}

	loginName := strings.TrimSpace(req.LoginName)

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	account, err := h.directory.Authenticate(ctx, loginName, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			h.metrics.ObserveLogin(metrics.LoginInvalidCredentials)
			logrus.WithField("login_name", loginName).Warn("login attempt failed")
		case errors.Is(err, service.ErrNotApproved):
			h.metrics.ObserveLogin(metrics.LoginNotApproved)
			logrus.WithField("login_name", loginName).Info("login attempt on unapproved account")
		}
		ServiceError(c, err, "log in")
		return
	}
	h.metrics.ObserveLogin(metrics.LoginSuccess)

	token, expiresAt, err := h.authManager.GenerateToken(account)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      account,
	})
}

func (h *HTTPHandler) Register(c *gin.Context) {
	var req entity.AccountRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	account, err := h.directory.Register(ctx, service.RegisterInput{
		LoginName:   req.LoginName,
		Password:    req.Password,
		Role:        req.Role,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		ServiceError(c, err, "register user")
		return
	}
	h.metrics.ObserveRegistration()
	logrus.WithFields(logrus.Fields{
		"account_id": account.ID,
		"login_name": account.LoginName,
	}).Info("account registered, awaiting approval")

	c.JSON(http.StatusCreated, entity.AccountRegisterResponse{
		Message: "registration received, awaiting administrator approval",
		User:    account,
	})
}

func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
	defer cancel()

	account, err := h.directory.Get(ctx, user.ID)
	if err != nil {
		ServiceError(c, err, "load profile")
		return
	}

	c.JSON(http.StatusOK, account.Summary())
}
