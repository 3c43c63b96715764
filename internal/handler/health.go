package handler // declare the package name; contains HTTP handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HomeMessage is the liveness text served at the root path.
const HomeMessage = "Birds API is running! Visit /birds for data."

// Home is the liveness endpoint.  It never touches the store, so it
// answers 200 even while the database is down.
func Home(c echo.Context) error {
	return c.String(http.StatusOK, HomeMessage)
}
