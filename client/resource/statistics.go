package resource

import (
	"context"
	"net/http"

	"github.com/aetherid/console/client"
	"github.com/aetherid/console/schema"
)

// Statistics reads dashboard aggregates.
type Statistics struct {
	client client.Interface
}

func (s *Statistics) TotalRevenue(ctx context.Context) (float64, error) {
	ret, err := fetch[float64](ctx, s.client, "/total-revenue", nil)
	if err != nil {
		return 0, err
	}
	return *ret, nil
}

func (s *Statistics) NewOrders(ctx context.Context, page PageRequest) (*schema.Page[schema.Order], error) {
	return fetch[schema.Page[schema.Order]](ctx, s.client, "/new-orders", &page)
}

func (s *Statistics) DailyReports(ctx context.Context, page PageRequest) (*schema.Page[schema.DailyReport], error) {
	if page.SortBy == "" {
		page.SortBy = "reportDate"
	}
	return fetch[schema.Page[schema.DailyReport]](ctx, s.client, "/daily-reports", &page)
}

func (s *Statistics) RevenueByMonth(ctx context.Context) ([]schema.MonthlyRevenue, error) {
	return list[schema.MonthlyRevenue](ctx, s.client, "/revenue-by-month")
}

func (s *Statistics) RevenueByCategory(ctx context.Context) ([]schema.CategoryRevenue, error) {
	return list[schema.CategoryRevenue](ctx, s.client, "/revenue-by-category")
}

func (s *Statistics) RevenueByBrand(ctx context.Context) ([]schema.BrandRevenue, error) {
	return list[schema.BrandRevenue](ctx, s.client, "/revenue-by-brand")
}

func (s *Statistics) TopSellingProducts(ctx context.Context) ([]schema.SellingProduct, error) {
	return list[schema.SellingProduct](ctx, s.client, "/top-selling-products")
}

func fetch[T any](ctx context.Context, c client.Interface, path string, page *PageRequest) (*T, error) {
	request := &client.Request{Method: http.MethodGet, Path: StatisticsPath + path}
	if page != nil {
		request.Query = page.Values()
	}
	return client.Fetch[T](ctx, c, request)
}

func list[T any](ctx context.Context, c client.Interface, path string) ([]T, error) {
	ret, err := fetch[[]T](ctx, c, path, nil)
	if err != nil {
		return nil, err
	}
	return *ret, nil
}

func NewStatistics(client client.Interface) *Statistics {
	return &Statistics{client: client}
}
