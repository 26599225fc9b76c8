package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/banquet-booking/internal/model"
	"github.com/iliyamo/banquet-booking/internal/service"
	"github.com/iliyamo/banquet-booking/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Customers    *service.CustomerService
	JWTSecret    string
	AccessTTLMin int
}

// NewAuthHandler issues access tokens signed with jwtSecret that expire after accessTTLMin minutes.
func NewAuthHandler(s *service.CustomerService, jwtSecret string, accessTTLMin int) *AuthHandler {
	return &AuthHandler{Customers: s, JWTSecret: jwtSecret, AccessTTLMin: accessTTLMin}
}

// ----- DTOs -----

type loginReq struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}

type authResp struct {
	Customer model.Customer `json:"customer"`
	Access   tokenPart      `json:"access"`
}

// Register: create the customer.  No token is issued; the client logs in next.
func (h *AuthHandler) Register(c echo.Context) error {
	var in service.RegisterInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation_error", Detail: "invalid request body"})
	}
	cust, err := h.Customers.Register(c.Request().Context(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, cust)
}

// Login: verify name and password, return an access token.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "validation_error", Detail: "invalid request body"})
	}
	cust, err := h.Customers.Authenticate(c.Request().Context(), req.Name, req.Password)
	if err != nil {
		return fail(c, err)
	}
	access, err := utils.NewAccessToken(h.JWTSecret, cust.CustomerID, h.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "storage_error", Detail: "issue access failed"})
	}
	return c.JSON(http.StatusOK, authResp{
		Customer: cust,
		Access:   tokenPart{Token: access.Token, Expires: access.Exp},
	})
}
