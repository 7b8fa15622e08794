package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softstep/shop/internal/models"
)

func TestOrderHTTP_Create_EmptyCart(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	c, rec := jsonRequest(t, env, http.MethodPost, "/orders", strings.NewReader(`[]`))

	require.NoError(t, env.O.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cart is empty")
}

func TestOrderHTTP_FullFlow(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.Repo.CreateProduct(ctx, &models.Product{ID: "SK010", Name: "Runner", Stock: 5, IsActive: true}))

	c, rec := jsonRequest(t, env, http.MethodPost, "/orders",
		strings.NewReader(`[{"id":"SK010","quantity":5,"price":9.99}]`))
	require.NoError(t, env.O.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var created models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.OrderID)
	assert.Equal(t, models.OrderStatusPending, created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, 9.99, created.Items[0].Price)

	c, rec = jsonRequest(t, env, http.MethodGet, "/orders/pending-count", nil)
	require.NoError(t, env.O.PendingCount(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":1}`, rec.Body.String())

	c, rec = jsonRequest(t, env, http.MethodGet, "/orders", nil)
	require.NoError(t, env.O.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &orders))
	require.Len(t, orders, 1)
	require.Len(t, orders[0].Items, 1, "listed orders must carry deserialized items")

	c, rec = jsonRequest(t, env, http.MethodPatch, "/orders/"+created.OrderID+"/confirm", nil)
	c.SetPath("/orders/:orderId/confirm")
	c.SetParamNames("orderId")
	c.SetParamValues(created.OrderID)
	require.NoError(t, env.O.Confirm(c))
	require.Equal(t, http.StatusOK, rec.Code)

	prod, err := env.Repo.GetProduct(ctx, "SK010")
	require.NoError(t, err)
	assert.Equal(t, 0, prod.Stock)
	assert.False(t, prod.IsActive)

	c, rec = jsonRequest(t, env, http.MethodGet, "/orders/pending-count", nil)
	require.NoError(t, env.O.PendingCount(c))
	assert.JSONEq(t, `{"count":0}`, rec.Body.String())

	// a second confirmation is indistinguishable from a missing order
	c, rec = jsonRequest(t, env, http.MethodPatch, "/orders/"+created.OrderID+"/confirm", nil)
	c.SetPath("/orders/:orderId/confirm")
	c.SetParamNames("orderId")
	c.SetParamValues(created.OrderID)
	require.NoError(t, env.O.Confirm(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestOrderHTTP_Confirm_UnknownOrder(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)

	c, rec := jsonRequest(t, env, http.MethodPatch, "/orders/ORD-000000/confirm", nil)
	c.SetPath("/orders/:orderId/confirm")
	c.SetParamNames("orderId")
	c.SetParamValues("ORD-000000")

	require.NoError(t, env.O.Confirm(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}
