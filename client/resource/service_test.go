package resource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/aetherid/console/client"
	"github.com/aetherid/console/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures requests and answers each with result.
type recorder struct {
	requests []*client.Request
	result   string
}

func (r *recorder) Do(ctx context.Context, request *client.Request, result any) error {
	r.requests = append(r.requests, request)
	if result == nil || r.result == "" {
		return nil
	}
	return json.Unmarshal([]byte(r.result), result)
}

func (r *recorder) Get(ctx context.Context, path string, query url.Values, result any) error {
	return r.Do(ctx, &client.Request{Method: http.MethodGet, Path: path, Query: query}, result)
}

func (r *recorder) Post(ctx context.Context, path string, body, result any) error {
	return r.Do(ctx, &client.Request{Method: http.MethodPost, Path: path, Body: body}, result)
}

func (r *recorder) Put(ctx context.Context, path string, body, result any) error {
	return r.Do(ctx, &client.Request{Method: http.MethodPut, Path: path, Body: body}, result)
}

func (r *recorder) Patch(ctx context.Context, path string, body, result any) error {
	return r.Do(ctx, &client.Request{Method: http.MethodPatch, Path: path, Body: body}, result)
}

func (r *recorder) Delete(ctx context.Context, path string, result any) error {
	return r.Do(ctx, &client.Request{Method: http.MethodDelete, Path: path}, result)
}

func (r *recorder) last() *client.Request {
	return r.requests[len(r.requests)-1]
}

func TestPageRequest_Values(t *testing.T) {
	var testCases = []struct {
		description string
		page        PageRequest
		expect      string
	}{
		{description: "defaults", expect: "page=0&size=10"},
		{description: "explicit", page: PageRequest{Page: 2, Size: 25, SortBy: "createdAt"}, expect: "page=2&size=25&sortBy=createdAt"},
		{description: "negative page", page: PageRequest{Page: -1, Size: 5}, expect: "page=0&size=5"},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, testCase.page.Values().Encode(), testCase.description)
	}
}

func TestService_Requests(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{result: `{"content":[{"id":1,"fullName":"An"}],"page":{"size":10,"number":0,"totalElements":1,"totalPages":1}}`}
	customers := NewCustomers(rec)

	page, err := customers.List(ctx, PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "An", page.Content[0].FullName)
	assert.Equal(t, http.MethodGet, rec.last().Method)
	assert.Equal(t, CustomersPath, rec.last().Path)

	_, err = customers.Search(ctx, "an", PageRequest{Size: 5})
	require.NoError(t, err)
	assert.Equal(t, CustomersPath+"/search", rec.last().Path)
	assert.Equal(t, "an", rec.last().Query.Get("keyword"))
	assert.Equal(t, "5", rec.last().Query.Get("size"))

	rec.result = `{"id":3,"fullName":"Binh"}`
	customer, err := customers.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "Binh", customer.FullName)
	assert.Equal(t, CustomersPath+"/3", rec.last().Path)

	body := &schema.Customer{FullName: "Binh"}
	_, err = customers.Create(ctx, body)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.last().Method)
	assert.Same(t, body, rec.last().Body)

	_, err = customers.Update(ctx, 3, body)
	require.NoError(t, err)
	assert.Equal(t, http.MethodPut, rec.last().Method)
	assert.Equal(t, CustomersPath+"/3", rec.last().Path)

	require.NoError(t, customers.Delete(ctx, 3))
	assert.Equal(t, http.MethodDelete, rec.last().Method)
}

func TestOrders_UpdateStatus(t *testing.T) {
	rec := &recorder{result: `{"id":9,"status":"CONFIRMED"}`}
	order, err := NewOrders(rec).UpdateStatus(context.Background(), 9, schema.OrderConfirmed)
	require.NoError(t, err)
	assert.Equal(t, schema.OrderConfirmed, order.Status)
	assert.Equal(t, http.MethodPut, rec.last().Method)
	assert.Equal(t, "/orders/9/status", rec.last().Path)
	assert.EqualValues(t, &schema.OrderUpdateStatusRequest{OrderStatus: schema.OrderConfirmed}, rec.last().Body)
}

func TestStatistics(t *testing.T) {
	ctx := context.Background()
	rec := &recorder{result: `1250000`}
	statistics := NewStatistics(rec)

	total, err := statistics.TotalRevenue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1250000.0, total)
	assert.Equal(t, "/statistics/total-revenue", rec.last().Path)

	rec.result = `[{"month":"2025-01","totalRevenue":10},{"month":"2025-02","totalRevenue":20}]`
	months, err := statistics.RevenueByMonth(ctx)
	require.NoError(t, err)
	assert.Len(t, months, 2)
	assert.Equal(t, "/statistics/revenue-by-month", rec.last().Path)

	rec.result = `{"content":[],"page":{"size":10,"number":0,"totalElements":0,"totalPages":0}}`
	_, err = statistics.DailyReports(ctx, PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, "reportDate", rec.last().Query.Get("sortBy"))
}
