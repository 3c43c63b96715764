// Package handler exposes the HTTP handlers of the birds API.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/birds-api/internal/model"
	"github.com/iliyamo/birds-api/pkg/logger"
)

// BirdLister is the read side of the bird repository.
type BirdLister interface {
	ListAll(ctx context.Context) ([]model.Bird, error)
}

// BirdHandler serves the birds collection.
type BirdHandler struct {
	Repo BirdLister
	Log  logger.Logger
}

func NewBirdHandler(repo BirdLister, log logger.Logger) *BirdHandler {
	return &BirdHandler{Repo: repo, Log: log}
}

// BirdResponse is a bird on the wire.  Color is null when the row has none.
type BirdResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// ErrorResponse is the body of every store failure.
type ErrorResponse struct {
	Message string `json:"message"`
}

const jsonIndent = "  "

// ToBirdResponse converts a stored row into its wire form.
func ToBirdResponse(b model.Bird) BirdResponse {
	out := BirdResponse{ID: b.ID, Name: b.Name}
	if b.Color.Valid {
		color := b.Color.String
		out.Color = &color
	}
	return out
}

// List handles GET /birds.  It returns every row as a JSON array, or a 500
// carrying the store error text when the query fails.
func (h *BirdHandler) List(c echo.Context) error {
	ctx := c.Request().Context()
	birds, err := h.Repo.ListAll(ctx)
	if err != nil {
		h.Log.Error(ctx, "list birds failed", logger.Error(err))
		msg := err.Error()
		if msg == "" {
			msg = http.StatusText(http.StatusInternalServerError)
		}
		return c.JSONPretty(http.StatusInternalServerError, ErrorResponse{Message: msg}, jsonIndent)
	}
	out := make([]BirdResponse, 0, len(birds))
	for _, b := range birds {
		out = append(out, ToBirdResponse(b))
	}
	return c.JSONPretty(http.StatusOK, out, jsonIndent)
}
