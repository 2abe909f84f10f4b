package resource

import (
	"context"
	"net/http"

	"github.com/aetherid/console/client"
	"github.com/aetherid/console/schema"
)

// Collection paths.
const (
	OrdersPath     = "/orders"
	UsersPath      = "/users"
	CustomersPath  = "/customers"
	ProductsPath   = "/products"
	CategoriesPath = "/categories"
	BrandsPath     = "/brands"
	WarehousesPath = "/warehouses"
	SuppliersPath  = "/suppliers"
	VouchersPath   = "/vouchers"
	StatisticsPath = "/statistics"
)

// Orders manages orders; status changes go through their own endpoint.
type Orders struct {
	*Service[schema.Order]
}

// UpdateStatus moves an order to status; transition rules are enforced by the backend.
func (o *Orders) UpdateStatus(ctx context.Context, id int64, status schema.OrderStatus) (*schema.Order, error) {
	return client.Fetch[schema.Order](ctx, o.client, &client.Request{
		Method: http.MethodPut,
		Path:   o.itemPath(id) + "/status",
		Body:   &schema.OrderUpdateStatusRequest{OrderStatus: status},
	})
}

func NewOrders(client client.Interface) *Orders {
	return &Orders{Service: New[schema.Order](client, OrdersPath)}
}

// Users manages accounts and the signed in user.
type Users struct {
	*Service[schema.UserInfo]
}

// Me returns the signed in user.
func (u *Users) Me(ctx context.Context) (*schema.UserInfo, error) {
	return client.Fetch[schema.UserInfo](ctx, u.client, &client.Request{Method: http.MethodGet, Path: u.Path + "/me"})
}

func (u *Users) ChangePassword(ctx context.Context, request *schema.ChangePasswordRequest) error {
	return u.client.Put(ctx, u.Path+"/change-password", request, nil)
}

func NewUsers(client client.Interface) *Users {
	return &Users{Service: New[schema.UserInfo](client, UsersPath)}
}

// Products is read and delete only; product writes are multipart uploads.
type Products struct {
	service *Service[schema.Product]
}

func (p *Products) List(ctx context.Context, page PageRequest) (*schema.Page[schema.Product], error) {
	return p.service.List(ctx, page)
}

func (p *Products) Search(ctx context.Context, keyword string, page PageRequest) (*schema.Page[schema.Product], error) {
	return p.service.Search(ctx, keyword, page)
}

func (p *Products) Get(ctx context.Context, id int64) (*schema.Product, error) {
	return p.service.Get(ctx, id)
}

func (p *Products) Delete(ctx context.Context, id int64) error {
	return p.service.Delete(ctx, id)
}

func NewProducts(client client.Interface) *Products {
	return &Products{service: New[schema.Product](client, ProductsPath)}
}

func NewCustomers(client client.Interface) *Service[schema.Customer] {
	return New[schema.Customer](client, CustomersPath)
}

func NewCategories(client client.Interface) *Service[schema.Category] {
	return New[schema.Category](client, CategoriesPath)
}

func NewBrands(client client.Interface) *Service[schema.Brand] {
	return New[schema.Brand](client, BrandsPath)
}

func NewWarehouses(client client.Interface) *Service[schema.Warehouse] {
	return New[schema.Warehouse](client, WarehousesPath)
}

func NewSuppliers(client client.Interface) *Service[schema.Supplier] {
	return New[schema.Supplier](client, SuppliersPath)
}

func NewVouchers(client client.Interface) *Service[schema.Voucher] {
	return New[schema.Voucher](client, VouchersPath)
}
