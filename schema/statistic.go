package schema

type (
	// DailyReport aggregates one day of sales.
	DailyReport struct {
		ID                  int64   `json:"id"`
		ReportDate          string  `json:"reportDate"`
		TotalRevenue        float64 `json:"totalRevenue"`
		TotalOrders         int64   `json:"totalOrders"`
		AvgOrderValue       float64 `json:"avgOrderValue"`
		TotalItemsSold      int64   `json:"totalItemsSold"`
		NewCustomersCount   int64   `json:"newCustomersCount"`
		TotalDiscountAmount float64 `json:"totalDiscountAmount"`
	}

	// MonthlyRevenue is revenue for one month.
	MonthlyRevenue struct {
		Month        string  `json:"month"`
		TotalRevenue float64 `json:"totalRevenue"`
	}

	// CategoryRevenue is revenue for one category.
	CategoryRevenue struct {
		CategoryID   int64   `json:"categoryId"`
		CategoryName string  `json:"categoryName"`
		TotalRevenue float64 `json:"totalRevenue"`
	}

	// BrandRevenue is revenue for one brand.
	BrandRevenue struct {
		BrandID      int64   `json:"brandId"`
		BrandName    string  `json:"brandName"`
		TotalRevenue float64 `json:"totalRevenue"`
	}

	// SellingProduct is a best seller by quantity.
	SellingProduct struct {
		ProductID     int64  `json:"productId"`
		MainImageURL  string `json:"mainImageUrl,omitempty"`
		ProductName   string `json:"productName"`
		TotalQuantity int64  `json:"totalQuantity"`
	}
)
