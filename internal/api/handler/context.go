package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxEmail extracts the token email injected by the Auth middleware. An
// empty value means the middleware never ran or the token carried no
// identity; either way the request is not authenticated.
func ctxEmail(c echo.Context) (string, error) {
	email, _ := c.Get("email").(string)
	if email == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
	}
	return email, nil
}
