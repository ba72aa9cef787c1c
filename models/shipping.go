package models

type ShippingAddress struct {
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

type Address struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

// Shipping projects a saved address onto the checkout shipping shape.
func (a Address) Shipping() ShippingAddress {
	return ShippingAddress{Details: a.Details, Phone: a.Phone, City: a.City}
}

type AddressForm struct {
	Name    string `json:"name"`
	Details string `json:"details"`
	Phone   string `json:"phone"`
	City    string `json:"city"`
}

type AddressResponse struct {
	Status  string    `json:"status"`
	Message string    `json:"message"`
	Data    []Address `json:"data"`
}

type CheckoutSessionRequest struct {
	ShippingAddress ShippingAddress `json:"shippingAddress"`
}

type CheckoutSessionResponse struct {
	Status  string `json:"status"`
	Session struct {
		URL        string `json:"url"`
		SuccessURL string `json:"success_url"`
		CancelURL  string `json:"cancel_url"`
	} `json:"session"`
}
