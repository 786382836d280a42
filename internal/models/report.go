package models

// AdminDashboard сводка для главной страницы администратора.
type AdminDashboard struct {
	TotalSellers   int
	TotalCustomers int
	TotalOrders    int
	RecentOrders   []OrderView
}

// SellerDashboard сводка для главной страницы продавца.
type SellerDashboard struct {
	CustomerCount int
	OrderCount    int
	RecentOrders  []OrderView
}

// SellerPage страница списка продавцов.
type SellerPage struct {
	Sellers  []User
	Page     int
	PageSize int
	Total    int
}

// Pages возвращает общее количество страниц.
func (p SellerPage) Pages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 0
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

// HasPrev есть ли предыдущая страница.
func (p SellerPage) HasPrev() bool { return p.Page > 1 }

// HasNext есть ли следующая страница.
func (p SellerPage) HasNext() bool { return p.Page < p.Pages() }

// OrderFormOptions варианты выбора для формы создания заказа.
type OrderFormOptions struct {
	Customers []Customer
	Plans     []Plan
}

// NewSeller данные формы создания продавца.
type NewSeller struct {
	Username string `validate:"required,min=3,max=64"`
	Email    string `validate:"required,email,max=120"`
	Password string `validate:"required,min=6"`
}
