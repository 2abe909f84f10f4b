package resource

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aetherid/console/client"
	"github.com/aetherid/console/schema"
)

// DefaultPageSize is used when a PageRequest leaves Size unset.
const DefaultPageSize = 10

// PageRequest selects one page of a listing. Page is zero based.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
}

// Values returns the listing query parameters.
func (p PageRequest) Values() url.Values {
	size := p.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	ret := url.Values{}
	ret.Set("page", strconv.Itoa(max(p.Page, 0)))
	ret.Set("size", strconv.Itoa(size))
	if p.SortBy != "" {
		ret.Set("sortBy", p.SortBy)
	}
	return ret
}

// Service exposes the standard REST operations of a collection rooted at Path.
type Service[T any] struct {
	client client.Interface
	Path   string
}

func (s *Service[T]) List(ctx context.Context, page PageRequest) (*schema.Page[T], error) {
	return client.Fetch[schema.Page[T]](ctx, s.client, &client.Request{Method: http.MethodGet, Path: s.Path, Query: page.Values()})
}

func (s *Service[T]) Search(ctx context.Context, keyword string, page PageRequest) (*schema.Page[T], error) {
	query := page.Values()
	query.Set("keyword", keyword)
	return client.Fetch[schema.Page[T]](ctx, s.client, &client.Request{Method: http.MethodGet, Path: s.Path + "/search", Query: query})
}

func (s *Service[T]) Get(ctx context.Context, id int64) (*T, error) {
	return client.Fetch[T](ctx, s.client, &client.Request{Method: http.MethodGet, Path: s.itemPath(id)})
}

func (s *Service[T]) Create(ctx context.Context, body any) (*T, error) {
	return client.Fetch[T](ctx, s.client, &client.Request{Method: http.MethodPost, Path: s.Path, Body: body})
}

func (s *Service[T]) Update(ctx context.Context, id int64, body any) (*T, error) {
	return client.Fetch[T](ctx, s.client, &client.Request{Method: http.MethodPut, Path: s.itemPath(id), Body: body})
}

func (s *Service[T]) Delete(ctx context.Context, id int64) error {
	return s.client.Delete(ctx, s.itemPath(id), nil)
}

func (s *Service[T]) itemPath(id int64) string {
	return s.Path + "/" + strconv.FormatInt(id, 10)
}

// New creates a collection service
func New[T any](client client.Interface, path string) *Service[T] {
	return &Service[T]{client: client, Path: path}
}
