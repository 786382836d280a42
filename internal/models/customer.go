package models

import "time"

// Customer контакт продавца. Email уникален в пределах одного продавца.
type Customer struct {
	ID        int64
	Name      string
	Email     string
	Phone     string // может быть пустым
	Address   string // может быть пустым
	SellerID  int64
	CreatedAt time.Time
}

// CustomerWithSeller клиент вместе с именем владеющего им продавца.
type CustomerWithSeller struct {
	Customer
	SellerUsername string
}

// NewCustomer данные формы добавления клиента.
type NewCustomer struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email,max=120"`
	Phone   string `validate:"omitempty,max=20"`
	Address string `validate:"omitempty,max=500"`
}
