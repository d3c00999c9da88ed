package domain

// Client is the customer record managed from the admin clients panel,
// projected from the client service.
type Client struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone,omitempty"`
}
