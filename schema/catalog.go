package schema

type (
	// Product is the listing view of a product.
	Product struct {
		ID           int64     `json:"id"`
		Name         string    `json:"name"`
		Description  string    `json:"description,omitempty"`
		MainImageURL string    `json:"mainImageUrl,omitempty"`
		Category     *Category `json:"category,omitempty"`
		Brand        *Brand    `json:"brand,omitempty"`
		Audit
	}

	// Category groups products.
	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Brand is a product manufacturer.
	Brand struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}

	// Customer is a buyer record.
	Customer struct {
		ID          int64     `json:"id"`
		FullName    string    `json:"fullName"`
		PhoneNumber string    `json:"phoneNumber"`
		Addresses   []Address `json:"addresses,omitempty"`
		Audit
	}

	// Address is a shipping address.
	Address struct {
		ID       int64  `json:"id,omitempty"`
		Address  string `json:"address"`
		Province string `json:"province"`
		District string `json:"district"`
		Ward     string `json:"ward"`
	}

	// Warehouse is a stock location.
	Warehouse struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Address     string `json:"address"`
		Description string `json:"description,omitempty"`
		Priority    int    `json:"priority,omitempty"`
		Province    string `json:"province,omitempty"`
		District    string `json:"district,omitempty"`
		Ward        string `json:"ward,omitempty"`
		Audit
	}

	// Supplier provides stock through purchase orders.
	Supplier struct {
		ID          int64  `json:"id"`
		Name        string `json:"name"`
		Address     string `json:"address"`
		PhoneNumber string `json:"phoneNumber"`
		Email       string `json:"email"`
		Audit
	}

	// Voucher is a discount code.
	Voucher struct {
		ID                 int64   `json:"id"`
		Name               string  `json:"name"`
		VoucherCode        string  `json:"voucherCode"`
		Type               string  `json:"type"`
		Status             string  `json:"status"`
		DiscountValue      float64 `json:"discountValue"`
		MinApplicablePrice float64 `json:"minApplicablePrice"`
		MaxDiscountAmount  float64 `json:"maxDiscountAmount"`
		StartDate          string  `json:"startDate"`
		EndDate            string  `json:"endDate"`
		Audit
	}
)
