package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LouisFontaine/ai-cycling-trainer/internal/service"
)

// AccountHandler exposes the intervals.icu connection operations.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

type ConnectIntervalsRequest struct {
	AthleteID string `json:"athleteId" binding:"required"`
	APIKey    string `json:"apiKey" binding:"required"`
}

type ConnectIntervalsResponse struct {
	AthleteName string `json:"athleteName"`
}

type IntervalsStatusResponse struct {
	Connected   bool   `json:"connected"`
	AthleteID   string `json:"athleteId,omitempty"`
	AthleteName string `json:"athleteName,omitempty"`
}

// Connect validates and stores the caller's intervals.icu credentials.
func (h *AccountHandler) Connect(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to get user ID from token")
		return
	}

	var req ConnectIntervalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, codeValidation, fmt.Sprintf("Validation error: %v", err))
		return
	}

	athleteName, err := h.accountService.Connect(c.Request.Context(), userID, req.AthleteID, req.APIKey)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, codeUserNotFound, err.Error())
		case errors.Is(err, service.ErrInvalidProviderCredentials):
			abortWithError(c, http.StatusUnprocessableEntity, codeInvalidIntervalsIcu,
				"Invalid intervals.icu credentials. Please check your athlete ID and API key.")
		default:
			abortWithError(c, http.StatusBadGateway, codeProviderFailure, "Could not reach intervals.icu")
		}
		return
	}

	c.JSON(http.StatusOK, ConnectIntervalsResponse{AthleteName: athleteName})
}

// Disconnect clears the caller's stored intervals.icu link.
func (h *AccountHandler) Disconnect(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to get user ID from token")
		return
	}

	if err := h.accountService.Disconnect(c.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, codeUserNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to disconnect")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// Status reports whether the stored link currently works.
func (h *AccountHandler) Status(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to get user ID from token")
		return
	}

	status, err := h.accountService.Status(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, codeUserNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, codeInternal, "Failed to load connection status")
		}
		return
	}

	c.JSON(http.StatusOK, IntervalsStatusResponse{
		Connected:   status.Connected,
		AthleteID:   status.AthleteID,
		AthleteName: status.AthleteName,
	})
}
