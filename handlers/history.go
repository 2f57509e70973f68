package handlers

import (
	"context"
	"net/http"

	"github.com/ragavan2104/mailblaster/campaigns"
	"github.com/ragavan2104/mailblaster/internal"
	"github.com/ragavan2104/mailblaster/middlewares"
)

// HistoryStore is the read side of campaigns.Store.
type HistoryStore interface {
	List(ctx context.Context, page, limit int) (campaigns.Page, error)
	GetByID(ctx context.Context, id string) (campaigns.Record, error)
	Stats(ctx context.Context) (campaigns.Stats, error)
}

// History serves the campaign log and dashboard statistics.
// Every route requires a token and is bounded by middlewares.DefaultTimeout.
type History struct {
	store   HistoryStore
	protect internal.Middleware
}

func NewHistory(store HistoryStore, protect internal.Middleware) *History {
	return &History{store: store, protect: protect}
}

func (h *History) Routes(r internal.Router) {
	r.Group(func(r internal.Router) {
		r.Use(h.protect, middlewares.Timeout(middlewares.DefaultTimeout))
		r.GET("/email-history", h.list)
		r.GET("/email-history/{id}", h.get)
		r.GET("/dashboard-stats", h.stats)
	})
}

func (h *History) list(c internal.Context) error {
	page := internal.PositiveQuery(c, "page", campaigns.DefaultPage, campaigns.MaxPage)
	limit := internal.PositiveQuery(c, "limit", campaigns.DefaultLimit, campaigns.MaxLimit)

	res, err := h.store.List(middlewares.GetTimeoutContext(c), page, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *History) get(c internal.Context) error {
	rec, err := h.store.GetByID(middlewares.GetTimeoutContext(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *History) stats(c internal.Context) error {
	s, err := h.store.Stats(middlewares.GetTimeoutContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}
