package mock

import (
	"fmt"
	"strconv"

	"github.com/aetherid/console/schema"
)

const (
	ordersPath     = "/orders"
	customersPath  = "/customers"
	productsPath   = "/products"
	categoriesPath = "/categories"
	brandsPath     = "/brands"
	warehousesPath = "/warehouses"
	suppliersPath  = "/suppliers"
	vouchersPath   = "/vouchers"
)

var collectionPaths = []string{ordersPath, customersPath, productsPath, categoriesPath, brandsPath, warehousesPath, suppliersPath, vouchersPath}

var (
	monthlyRevenue = []schema.MonthlyRevenue{
		{Month: "2025-01", TotalRevenue: 12500000},
		{Month: "2025-02", TotalRevenue: 9800000},
		{Month: "2025-03", TotalRevenue: 15100000},
	}
	categoryRevenue = []schema.CategoryRevenue{
		{CategoryID: 1, CategoryName: "Laptop", TotalRevenue: 24000000},
		{CategoryID: 2, CategoryName: "Phone", TotalRevenue: 13400000},
	}
	brandRevenue = []schema.BrandRevenue{
		{BrandID: 1, BrandName: "Lenovo", TotalRevenue: 21000000},
		{BrandID: 2, BrandName: "Samsung", TotalRevenue: 16400000},
	}
	sellingProducts = []schema.SellingProduct{
		{ProductID: 1, ProductName: "ThinkPad X1", TotalQuantity: 42},
		{ProductID: 2, ProductName: "Galaxy S24", TotalQuantity: 37},
	}
	dailyReports = []schema.DailyReport{
		{ID: 1, ReportDate: "2025-03-01", TotalRevenue: 1200000, TotalOrders: 12, AvgOrderValue: 100000, TotalItemsSold: 20},
		{ID: 2, ReportDate: "2025-03-02", TotalRevenue: 800000, TotalOrders: 8, AvgOrderValue: 100000, TotalItemsSold: 11},
	}
)

func (s *Service) seed() error {
	for _, path := range collectionPaths {
		s.collections[path] = &collection{}
	}
	var seeds = map[string][]any{
		categoriesPath: {&schema.Category{Name: "Laptop"}, &schema.Category{Name: "Phone"}},
		brandsPath:     {&schema.Brand{Name: "Lenovo"}, &schema.Brand{Name: "Samsung"}},
		productsPath: {
			&schema.Product{Name: "ThinkPad X1", Category: &schema.Category{ID: 1, Name: "Laptop"}, Brand: &schema.Brand{ID: 1, Name: "Lenovo"}},
			&schema.Product{Name: "Galaxy S24", Category: &schema.Category{ID: 2, Name: "Phone"}, Brand: &schema.Brand{ID: 2, Name: "Samsung"}},
		},
		customersPath: {
			&schema.Customer{FullName: "Nguyen Van An", PhoneNumber: "0901000001"},
			&schema.Customer{FullName: "Tran Thi Binh", PhoneNumber: "0901000002"},
		},
		warehousesPath: {&schema.Warehouse{Name: "Main warehouse", Address: "1 Le Loi", Priority: 1}},
		suppliersPath:  {&schema.Supplier{Name: "Digital Supply", Address: "5 Nguyen Hue", PhoneNumber: "0281000000", Email: "sales@digital.local"}},
		vouchersPath: {&schema.Voucher{Name: "Spring sale", VoucherCode: "SPRING10", Type: "PERCENTAGE", Status: "ACTIVE",
			DiscountValue: 10, MinApplicablePrice: 500000, MaxDiscountAmount: 200000, StartDate: "2025-03-01", EndDate: "2025-04-01"}},
	}
	for i := 1; i <= 12; i++ {
		seeds[ordersPath] = append(seeds[ordersPath], &schema.Order{
			OrderCode:       fmt.Sprintf("ORD-%04d", i),
			ReceiverName:    "Nguyen Van An",
			PhoneNumber:     "0901000001",
			ShippingAddress: fmt.Sprintf("%d Tran Hung Dao", i),
			Status:          schema.OrderPending,
			TotalAmount:     float64(i) * 100000,
			FinalAmount:     float64(i) * 100000,
		})
	}
	for path, values := range seeds {
		for _, value := range values {
			if _, err := s.collections[path].add(value); err != nil {
				return fmt.Errorf("failed to seed %v: %w", path, err)
			}
		}
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
