package main

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/apikit/errors"
	"github.com/kbukum/apikit/observability"
	"github.com/kbukum/apikit/response"
	"github.com/kbukum/apikit/server/middleware"
	"github.com/kbukum/apikit/util"
	"github.com/kbukum/apikit/validation"
)

// Item is the resource served by the demo API.
type Item struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// itemInput is the create/update body. An omitted quantity is zero on
// create and left unchanged on update.
type itemInput struct {
	Name     string `json:"name" validate:"required,max=64"`
	Quantity *int   `json:"quantity" validate:"omitempty,gte=0,lte=10000"`
}

type itemStore struct {
	mu       sync.RWMutex
	items    map[uuid.UUID]Item
	readOnly bool
}

func newItemStore() *itemStore {
	return &itemStore{items: make(map[uuid.UUID]Item)}
}

func (s *itemStore) SetReadOnly(ro bool) {
	s.mu.Lock()
	s.readOnly = ro
	s.mu.Unlock()
}

func (s *itemStore) CheckHealth(context.Context) observability.Health {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := observability.Health{Name: "item-store", Status: observability.HealthStatusUp}
	if s.readOnly {
		h.Status = observability.HealthStatusDegraded
		h.Message = "read-only"
	}
	return h
}

func (s *itemStore) list() []Item {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Item, 0, len(s.items))
	for _, it := range s.items {
		out = append(out, it)
	}
	slices.SortFunc(out, func(a, b Item) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return out
}

func (s *itemStore) get(id uuid.UUID) (Item, *errors.Error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return Item{}, errors.NotFound("item not found")
	}
	return it, nil
}

func (s *itemStore) create(in itemInput) (Item, *errors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return Item{}, errors.ServiceUnavailable("item store is read-only")
	}
	if s.nameTaken(in.Name, uuid.Nil) {
		return Item{}, errors.Conflict("an item named " + in.Name + " already exists")
	}
	it := Item{ID: uuid.New(), Name: in.Name, Quantity: util.Deref(in.Quantity), CreatedAt: time.Now().UTC()}
	s.items[it.ID] = it
	return it, nil
}

func (s *itemStore) update(id uuid.UUID, in itemInput) (Item, *errors.Error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return Item{}, errors.ServiceUnavailable("item store is read-only")
	}
	it, ok := s.items[id]
	if !ok {
		return Item{}, errors.NotFound("item not found")
	}
	if s.nameTaken(in.Name, id) {
		return Item{}, errors.Conflict("an item named " + in.Name + " already exists")
	}
	it.Name = in.Name
	if in.Quantity != nil {
		it.Quantity = *in.Quantity
	}
	s.items[id] = it
	return it, nil
}

func (s *itemStore) delete(id uuid.UUID) *errors.Error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.readOnly {
		return errors.ServiceUnavailable("item store is read-only")
	}
	if _, ok := s.items[id]; !ok {
		return errors.NotFound("item not found")
	}
	delete(s.items, id)
	return nil
}

// nameTaken must be called with the lock held.
func (s *itemStore) nameTaken(name string, except uuid.UUID) bool {
	for id, it := range s.items {
		if id != except && strings.EqualFold(it.Name, name) {
			return true
		}
	}
	return false
}

// maxItemBody caps item payloads well below the server-wide limit.
const maxItemBody = "16KB"

type itemHandler struct {
	store *itemStore
}

func (h *itemHandler) register(r gin.IRouter) {
	g := r.Group("/items", middleware.GinBodySizeLimit(maxItemBody))
	g.GET("", response.Handle(h.list))
	g.POST("", h.create)
	g.GET("/:id", response.Handle(h.get))
	g.PUT("/:id", response.HandleEnvelope(h.update))
	g.DELETE("/:id", h.delete)
}

func (h *itemHandler) list(*gin.Context) ([]Item, error) {
	return h.store.list(), nil
}

func (h *itemHandler) get(c *gin.Context) (Item, error) {
	id, err := validation.ParseUUID("id", c.Param("id"))
	if err != nil {
		return Item{}, err
	}
	it, err := h.store.get(id)
	if err != nil {
		return Item{}, err
	}
	return it, nil
}

func (h *itemHandler) create(c *gin.Context) {
	in, err := response.Bind[itemInput](c)
	if err != nil {
		response.RespondWithError(c, err)
		return
	}
	it, err := h.store.create(in)
	if err != nil {
		response.RespondWithError(c, err)
		return
	}
	response.CreatedJSON(c, it)
}

func (h *itemHandler) update(c *gin.Context) response.Envelope[Item] {
	id, err := validation.ParseUUID("id", c.Param("id"))
	if err != nil {
		return response.Error[Item](err)
	}
	in, err := response.Bind[itemInput](c)
	if err != nil {
		return response.Error[Item](err)
	}
	it, err := h.store.update(id, in)
	if err != nil {
		return response.Error[Item](err)
	}
	return response.Success(it)
}

func (h *itemHandler) delete(c *gin.Context) {
	id, err := validation.ParseUUID("id", c.Param("id"))
	if err != nil {
		response.RespondWithError(c, err)
		return
	}
	if err := h.store.delete(id); err != nil {
		response.RespondWithError(c, err)
		return
	}
	response.NoContent(c)
}
