package market

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// fakeRepo keeps records in memory and can be forced to fail.
type fakeRepo struct {
	farmers map[string]Farmer
	sellers map[string]Seller
	fail    error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{farmers: map[string]Farmer{}, sellers: map[string]Seller{}}
}

func (r *fakeRepo) CreateFarmer(_ context.Context, f *Farmer) error {
	if r.fail != nil {
		return r.fail
	}
	f.ID = primitive.NewObjectID()
	r.farmers[f.ID.Hex()] = *f
	return nil
}

func (r *fakeRepo) ListFarmers(context.Context) ([]Farmer, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	var out []Farmer
	for _, f := range r.farmers {
		out = append(out, f)
	}
	return out, nil
}

func (r *fakeRepo) GetFarmer(_ context.Context, id string) (*Farmer, error) {
	if r.fail != nil {
		return nil, r.fail
	}
	f, ok := r.farmers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &f, nil
}

func (r *fakeRepo) UpdateFarmer(_ context.Context, id string, f *Farmer) (*Farmer, error) {
	if _, ok := r.farmers[id]; !ok {
		return nil, ErrNotFound
	}
	r.farmers[id] = *f
	return f, nil
}

func (r *fakeRepo) DeleteFarmer(_ context.Context, id string) error {
	delete(r.farmers, id)
	return nil
}

func (r *fakeRepo) CreateSeller(_ context.Context, s *Seller) error {
	if r.fail != nil {
		return r.fail
	}
	s.ID = primitive.NewObjectID()
	r.sellers[s.ID.Hex()] = *s
	return nil
}

func (r *fakeRepo) ListSellers(context.Context) ([]Seller, error) {
	var out []Seller
	for _, s := range r.sellers {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeRepo) GetSeller(_ context.Context, id string) (*Seller, error) {
	s, ok := r.sellers[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) UpdateSeller(_ context.Context, id string, s *Seller) (*Seller, error) {
	if _, ok := r.sellers[id]; !ok {
		return nil, ErrNotFound
	}
	r.sellers[id] = *s
	return s, nil
}

func (r *fakeRepo) DeleteSeller(_ context.Context, id string) error {
	delete(r.sellers, id)
	return nil
}

func newTestRouter(repo Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := &Handler{Repo: repo, Log: zap.NewNop().Sugar()}
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateFarmer(t *testing.T) {
	router := newTestRouter(newFakeRepo())

	t.Run("valid body returns 201 with assigned id", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/farmers", Farmer{
			Name: "Krishna", Area: "Nagpur", LandArea: 4.5, Phone: "9800000001",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		var got Farmer
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, got.ID.IsZero())
		assert.Equal(t, "Krishna", got.Name)
	})

	t.Run("missing required field returns 400", func(t *testing.T) {
		w := doJSON(t, router, http.MethodPost, "/api/farmers", map[string]any{"name": "NoPhone"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetFarmer(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	f := &Farmer{Name: "A", Area: "B", LandArea: 1, Phone: "1"}
	require.NoError(t, repo.CreateFarmer(context.Background(), f))

	t.Run("existing returns 200", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/farmers/"+f.ID.Hex(), nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing returns 404", func(t *testing.T) {
		w := doJSON(t, router, http.MethodGet, "/api/farmers/"+primitive.NewObjectID().Hex(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Farmer not found")
	})
}

func TestListFarmersStorageFailure(t *testing.T) {
	repo := newFakeRepo()
	repo.fail = errors.New("mongo down")
	router := newTestRouter(repo)

	w := doJSON(t, router, http.MethodGet, "/api/farmers", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestUpdateAndDeleteFarmer(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	f := &Farmer{Name: "A", Area: "B", LandArea: 1, Phone: "1"}
	require.NoError(t, repo.CreateFarmer(context.Background(), f))

	w := doJSON(t, router, http.MethodPut, "/api/farmers/"+f.ID.Hex(), Farmer{
		Name: "A2", Area: "B", LandArea: 2, Phone: "1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodPut, "/api/farmers/"+primitive.NewObjectID().Hex(), Farmer{
		Name: "X", Area: "Y", LandArea: 1, Phone: "2",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/farmers/"+f.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Farmer deleted")
}

func TestSellerRoutes(t *testing.T) {
	repo := newFakeRepo()
	router := newTestRouter(repo)

	w := doJSON(t, router, http.MethodPost, "/api/sellers", Seller{
		Name: "Coastal Orchards", BusinessName: "Coastal Orchards Pvt", Location: "Ratnagiri",
		Phone: "9800000002", Products: []string{"mangoes"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var s Seller
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &s))

	w = doJSON(t, router, http.MethodGet, "/api/sellers", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/sellers/"+s.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodDelete, "/api/sellers/"+s.ID.Hex(), nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Seller deleted")
}
