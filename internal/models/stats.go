package models

// ChartSlice is one labelled value in a dashboard chart.
type ChartSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// ChartData feeds the admin statistics screen.
type ChartData struct {
	OrderStatus   []ChartSlice `json:"orderStatus"`
	UserRoles     []ChartSlice `json:"userRoles"`
	PaymentStatus []ChartSlice `json:"paymentStatus"`
}

// TotalResponse wraps a single aggregate number.
type TotalResponse struct {
	Total float64 `json:"total"`
}

// CountResponse wraps a single row count.
type CountResponse struct {
	Count int `json:"count"`
}
