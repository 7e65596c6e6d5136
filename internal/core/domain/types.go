package domain

// User is the identity snapshot carried by a session. The password hash
// never leaves the repository layer.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// SignupRequest is the POST /signup body.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest is the POST /login body.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned by login and auth-status.
type AuthResponse struct {
	Message string `json:"message,omitempty"`
	User    User   `json:"user"`
}

// AddItemRequest is the POST /api/cart body. Quantity is the amount to
// add on top of whatever is already in the cart.
type AddItemRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

// UpdateQuantityRequest is the POST /api/cart/update body. Quantity is
// the absolute value the entry is set to.
type UpdateQuantityRequest struct {
	ProductID int `json:"productId" binding:"required"`
	Quantity  int `json:"quantity" binding:"required"`
}

// VerifyLicenseRequest is the POST /api/verify-license body.
type VerifyLicenseRequest struct {
	LicenseNumber string `json:"licenseNumber" binding:"required"`
}

// PredictDemandRequest is the POST /api/predict-demand body.
type PredictDemandRequest struct {
	ProductID int `json:"productId" binding:"required"`
}
