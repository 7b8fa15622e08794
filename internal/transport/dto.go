package transport

type CreateProductRequest struct {
	ID       string
	Name     string
	Category string
	Type     string
	Stock    int
}

type UpdateProductRequest struct {
	Name     string
	Category string
	Type     string
	Stock    int
}

type SetProductStatusRequest struct {
	IsActive *bool `json:"isActive"`
}

// CreateOrderItem mirrors what the storefront cart submits: the product id
// under "id" and a caller-supplied price taken at face value.
type CreateOrderItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type PendingCountResponse struct {
	Count int64 `json:"count"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string `json:"message"`
	Role    string `json:"role"`
	Token   string `json:"token,omitempty"`
}

type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UpdateUserRequest struct {
	Password string `json:"password"`
	Role     string `json:"role"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
