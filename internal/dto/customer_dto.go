package dto

type PhoneNumberRequest struct {
	Number string `json:"number" validate:"required,min=4,max=30"`
	Label  string `json:"label"  validate:"required,min=2,max=40"`
}

type CreateCustomerRequest struct {
	Name    string               `json:"name"    validate:"required,min=2,max=120"`
	Email   string               `json:"email"   validate:"required,email"`
	Address string               `json:"address" validate:"required"`
	Phones  []PhoneNumberRequest `json:"phones"  validate:"required,min=1,dive"`
	Company *string              `json:"company"`
	NIF     *string              `json:"nif"`
	NIS     *string              `json:"nis"`
	RC      *string              `json:"rc"`
	Notes   *string              `json:"notes"`
}

// UpdateCustomerRequest patches a customer. Phones, when present, replaces
// the whole list and must stay non-empty.
type UpdateCustomerRequest struct {
	Name    *string               `json:"name"    validate:"omitempty,min=2,max=120"`
	Email   *string               `json:"email"   validate:"omitempty,email"`
	Address *string               `json:"address"`
	Phones  *[]PhoneNumberRequest `json:"phones"  validate:"omitempty,min=1,dive"`
	Company *string               `json:"company"`
	NIF     *string               `json:"nif"`
	NIS     *string               `json:"nis"`
	RC      *string               `json:"rc"`
	Notes   *string               `json:"notes"`
}

type PhoneNumberResponse struct {
	ID     string `json:"id"`
	Number string `json:"number"`
	Label  string `json:"label"`
}

type CustomerResponse struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Email     string                `json:"email"`
	Address   string                `json:"address"`
	Phones    []PhoneNumberResponse `json:"phones"`
	Company   *string               `json:"company"`
	NIF       *string               `json:"nif"`
	NIS       *string               `json:"nis"`
	RC        *string               `json:"rc"`
	Notes     *string               `json:"notes"`
	CreatedAt string                `json:"created_at"`
}
