package market

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the farmer and seller CRUD routes.
type Handler struct {
	Repo Repository
	Log  *zap.SugaredLogger
}

// RegisterRoutes registers all marketplace routes under the given group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	farmers := rg.Group("/farmers")
	farmers.POST("", h.CreateFarmer)
	farmers.GET("", h.ListFarmers)
	farmers.GET("/:id", h.GetFarmer)
	farmers.PUT("/:id", h.UpdateFarmer)
	farmers.DELETE("/:id", h.DeleteFarmer)

	sellers := rg.Group("/sellers")
	sellers.POST("", h.CreateSeller)
	sellers.GET("", h.ListSellers)
	sellers.GET("/:id", h.GetSeller)
	sellers.PUT("/:id", h.UpdateSeller)
	sellers.DELETE("/:id", h.DeleteSeller)
}

func (h *Handler) CreateFarmer(c *gin.Context) {
	var f Farmer
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.CreateFarmer(c.Request.Context(), &f); err != nil {
		h.Log.Errorw("create farmer failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (h *Handler) ListFarmers(c *gin.Context) {
	farmers, err := h.Repo.ListFarmers(c.Request.Context())
	if err != nil {
		h.Log.Errorw("list farmers failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, farmers)
}

func (h *Handler) GetFarmer(c *gin.Context) {
	f, err := h.Repo.GetFarmer(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Farmer not found"})
		return
	}
	if err != nil {
		h.Log.Errorw("get farmer failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *Handler) UpdateFarmer(c *gin.Context) {
	var f Farmer
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Repo.UpdateFarmer(c.Request.Context(), c.Param("id"), &f)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Farmer not found"})
		return
	}
	if err != nil {
		h.Log.Errorw("update farmer failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteFarmer(c *gin.Context) {
	if err := h.Repo.DeleteFarmer(c.Request.Context(), c.Param("id")); err != nil && !errors.Is(err, ErrNotFound) {
		h.Log.Errorw("delete farmer failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Farmer deleted"})
}

func (h *Handler) CreateSeller(c *gin.Context) {
	var s Seller
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.Repo.CreateSeller(c.Request.Context(), &s); err != nil {
		h.Log.Errorw("create seller failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *Handler) ListSellers(c *gin.Context) {
	sellers, err := h.Repo.ListSellers(c.Request.Context())
	if err != nil {
		h.Log.Errorw("list sellers failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, sellers)
}

func (h *Handler) GetSeller(c *gin.Context) {
	s, err := h.Repo.GetSeller(c.Request.Context(), c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Seller not found"})
		return
	}
	if err != nil {
		h.Log.Errorw("get seller failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) UpdateSeller(c *gin.Context) {
	var s Seller
	if err := c.ShouldBindJSON(&s); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.Repo.UpdateSeller(c.Request.Context(), c.Param("id"), &s)
	if errors.Is(err, ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Seller not found"})
		return
	}
	if err != nil {
		h.Log.Errorw("update seller failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) DeleteSeller(c *gin.Context) {
	if err := h.Repo.DeleteSeller(c.Request.Context(), c.Param("id")); err != nil && !errors.Is(err, ErrNotFound) {
		h.Log.Errorw("delete seller failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Seller deleted"})
}
