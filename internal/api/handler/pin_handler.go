package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/digiwallet/wallet-console/internal/core/ports"
)

// PinHandler covers transaction PIN setup and status. The PIN itself is
// hashed and verified by the backend; this never stores it.
type PinHandler struct {
	backend ports.WalletBackend
}

func NewPinHandler(backend ports.WalletBackend) *PinHandler {
	return &PinHandler{backend: backend}
}

type setupPinRequest struct {
	Pin string `json:"pin" validate:"required,len=4,numeric"`
}

// SetupPin configures the transaction PIN.
//
// @Summary      Set up transaction PIN
// @Tags         pin
// @Accept       json
// @Produce      json
// @Param        body  body      setupPinRequest  true  "4-digit PIN"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /user/setup-pin [post]
func (h *PinHandler) SetupPin(c echo.Context) error {
	var req setupPinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.backend.SetupPin(c.Request().Context(), req.Pin); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "pin configured"})
}

// CheckPinStatus reports whether a PIN is already configured, so the console
// can prompt for setup on first login.
//
// @Summary      Check PIN status
// @Tags         pin
// @Produce      json
// @Success      200  {object}  domain.PinStatus
// @Router       /user/check-pin-status [get]
func (h *PinHandler) CheckPinStatus(c echo.Context) error {
	status, err := h.backend.CheckPinStatus(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, status)
}
