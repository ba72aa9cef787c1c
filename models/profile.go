package models

import (
	"encoding/json"
	"fmt"
)

type UpdateUserRequest struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Empty reports whether the update carries no changed field.
func (r UpdateUserRequest) Empty() bool {
	return r.Name == nil && r.Email == nil
}

type UpdateUserResponse struct {
	Message string `json:"message"`
	User    struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	Password        string `json:"password"`
	RePassword      string `json:"rePassword"`
}

type ChangePasswordResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

type OrderUser struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type OrderItem struct {
	Count   int     `json:"count"`
	ID      string  `json:"_id"`
	Product Product `json:"product"`
	Price   float64 `json:"price"`
}

type Order struct {
	ObjectID          string          `json:"_id"`
	ID                int             `json:"id"`
	ShippingAddress   ShippingAddress `json:"shippingAddress"`
	TaxPrice          float64         `json:"taxPrice"`
	ShippingPrice     float64         `json:"shippingPrice"`
	TotalOrderPrice   float64         `json:"totalOrderPrice"`
	PaymentMethodType string          `json:"paymentMethodType"`
	IsPaid            bool            `json:"isPaid"`
	IsDelivered       bool            `json:"isDelivered"`
	PaidAt            string          `json:"paidAt,omitempty"`
	DeliveredAt       string          `json:"deliveredAt,omitempty"`
	CreatedAt         string          `json:"createdAt"`
	UpdatedAt         string          `json:"updatedAt,omitempty"`
	User              OrderUser       `json:"user"`
	CartItems         []OrderItem     `json:"cartItems"`
}

// DecodeOrders accepts the three shapes the orders endpoint has been seen to return:
// a bare array, {"data": [...]} and {"orders": [...]}. Anything else yields no orders.
func DecodeOrders(raw []byte) ([]Order, error) {
	var list []Order
	if err := json.Unmarshal(raw, &list); err == nil {
		return list, nil
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Orders json.RawMessage `json:"orders"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	for _, candidate := range []json.RawMessage{envelope.Data, envelope.Orders} {
		if len(candidate) == 0 {
			continue
		}
		if err := json.Unmarshal(candidate, &list); err == nil {
			return list, nil
		}
	}
	return []Order{}, nil
}
