package schema

// OrderStatus is the lifecycle state of an order. Transitions are enforced server-side.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderConfirmed  OrderStatus = "CONFIRMED"
	OrderDelivering OrderStatus = "DELIVERING"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

type (
	// Order is the listing and detail view of an order.
	Order struct {
		ID              int64         `json:"id"`
		OrderCode       string        `json:"orderCode"`
		ReceiverName    string        `json:"receiverName"`
		PhoneNumber     string        `json:"phoneNumber"`
		ShippingAddress string        `json:"shippingAddress"`
		Province        string        `json:"province,omitempty"`
		District        string        `json:"district,omitempty"`
		Ward            string        `json:"ward,omitempty"`
		Status          OrderStatus   `json:"status"`
		Note            string        `json:"note,omitempty"`
		ReducedAmount   float64       `json:"reducedAmount"`
		TotalAmount     float64       `json:"totalAmount"`
		FinalAmount     float64       `json:"finalAmount"`
		Customer        *Customer     `json:"customer,omitempty"`
		OrderItems      []OrderItem   `json:"orderItems,omitempty"`
		Warehouse       *Warehouse    `json:"warehouse,omitempty"`
		Histories       []OrderChange `json:"orderStatusHistories,omitempty"`
		Audit
	}

	// OrderItem is one line of an order.
	OrderItem struct {
		ID           int64   `json:"id"`
		Product      Product `json:"product"`
		Quantity     int     `json:"quantity"`
		PricePerUnit float64 `json:"pricePerUnit"`
		TotalPrice   float64 `json:"totalPrice"`
	}

	// OrderChange records one status transition.
	OrderChange struct {
		ID        int64       `json:"id"`
		OldStatus string      `json:"oldStatus"`
		NewStatus string      `json:"newStatus"`
		ChangeBy  *SimpleUser `json:"changeBy,omitempty"`
		ChangeAt  string      `json:"changeAt"`
	}

	// OrderUpdateStatusRequest is the body of PUT /orders/{id}/status.
	OrderUpdateStatusRequest struct {
		OrderStatus OrderStatus `json:"orderStatus"`
	}

	// OrderUpdateRequest is the body of PUT /orders/{id}.
	OrderUpdateRequest struct {
		Note            string `json:"note,omitempty"`
		ReceiverName    string `json:"receiverName"`
		ShippingAddress string `json:"shippingAddress"`
		Province        string `json:"province"`
		District        string `json:"district"`
		Ward            string `json:"ward"`
	}
)
