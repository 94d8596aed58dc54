package drinks

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/example/coffeeshop-api/internal/apierror"
)

// Handler serves the drink CRUD endpoints. Authorization is applied per route
// by the auth middleware before any of these run.
type Handler struct {
	store Store
	log   logrus.FieldLogger
}

// NewHandler builds a Handler over the given store.
func NewHandler(store Store, log logrus.FieldLogger) *Handler {
	return &Handler{store: store, log: log}
}

// List serves GET /drinks: all drinks in the short view, no auth required.
func (h *Handler) List(c *gin.Context) {
	all, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	formatted := make([]ShortDrink, 0, len(all))
	for i := range all {
		formatted = append(formatted, all[i].Short())
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "drinks": formatted})
}

// ListDetail serves GET /drinks-detail: all drinks in the long view.
func (h *Handler) ListDetail(c *gin.Context) {
	all, err := h.store.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}

	formatted := make([]LongDrink, 0, len(all))
	for i := range all {
		formatted = append(formatted, all[i].Long())
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "drinks": formatted})
}

// Create serves POST /drinks.
func (h *Handler) Create(c *gin.Context) {
	title, recipe, err := ParseDrinkPayload(c.Request.Body)
	if err != nil {
		abort(c, err)
		return
	}

	drink := &Drink{Title: title, Recipe: recipe}
	if err := h.store.Create(c.Request.Context(), drink); err != nil {
		if errors.Is(err, ErrDuplicateTitle) {
			abort(c, apierror.DuplicatedField("title", title))
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "drinks": []LongDrink{drink.Long()}})
}

// Update serves PATCH /drinks/:id. Only the provided fields change.
func (h *Handler) Update(c *gin.Context) {
	id, err := drinkID(c)
	if err != nil {
		abort(c, err)
		return
	}

	patch, err := ParseDrinkPatch(c.Request.Body)
	if err != nil {
		abort(c, err)
		return
	}

	drink, err := h.store.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			abort(c, apierror.NotFound())
			return
		}
		h.fail(c, err)
		return
	}

	if patch.Title != "" {
		drink.Title = patch.Title
	}
	if len(patch.Recipe) > 0 {
		drink.Recipe = patch.Recipe
	}

	if err := h.store.Update(c.Request.Context(), drink); err != nil {
		switch {
		case errors.Is(err, ErrDuplicateTitle):
			abort(c, apierror.DuplicatedField("title", patch.Title))
		case errors.Is(err, ErrNotFound):
			abort(c, apierror.NotFound())
		default:
			h.fail(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "drinks": []LongDrink{drink.Long()}})
}

// Delete serves DELETE /drinks/:id and returns the deleted id.
func (h *Handler) Delete(c *gin.Context) {
	id, err := drinkID(c)
	if err != nil {
		abort(c, err)
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			abort(c, apierror.NotFound())
			return
		}
		h.fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "delete": id})
}

// drinkID parses the :id path parameter. A non-numeric id behaves like an
// unknown one.
func drinkID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apierror.NotFound()
	}
	return id, nil
}

// fail reports a store failure that is not otherwise classified. The cause is
// logged, never exposed; the client sees a generic 422.
func (h *Handler) fail(c *gin.Context, err error) {
	h.log.WithError(err).Error("drink store failure")
	abort(c, apierror.Unprocessable())
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
