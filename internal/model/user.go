package model

import "time"

// Role identifies which part of the marketplace a user belongs to.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	RoleAgent  Role = "AGENT"
)

// Seller admin-approval states. Sellers cannot log in until an admin
// has approved their account.
const (
	ApprovalPending  = "PENDING"
	ApprovalApproved = "APPROVED"
	ApprovalRejected = "REJECTED"
)

// User is the identity attached to an authenticated session.
type User struct {
	// ID is the server-assigned numeric identifier.
	ID int64 `json:"id"`

	// Name is the user's display name.
	Name string `json:"name"`

	// Email is the login email address.
	Email string `json:"email"`

	// Role determines which screens and endpoints the user may reach.
	Role Role `json:"role"`
}

// Session is the client's record of the currently authenticated user
// and bearer token. A zero Session is anonymous.
type Session struct {
	Token           string `json:"token"`
	User            *User  `json:"user"`
	IsAuthenticated bool   `json:"is_authenticated"`
	Loading         bool   `json:"-"`
}

// Credentials are the inputs to the login endpoint.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginResponse is the payload returned by POST /auth/login.
type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
	Name  string `json:"name"`
	ID    int64  `json:"id"`
}

// BuyerSignup is the payload for POST /auth/signup/buyer.
type BuyerSignup struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Phone           string `json:"phone,omitempty"`
	Address         string `json:"address,omitempty"`
	Pincode         string `json:"pincode,omitempty"`
	TermsAccepted   bool   `json:"termsAccepted"`
}

// SellerSignup extends the buyer payload with artisan details.
// Accounts created through it remain unusable until admin approval.
type SellerSignup struct {
	BuyerSignup
	TribeName         string `json:"tribeName,omitempty"`
	ArtisanCategory   string `json:"artisanCategory,omitempty"`
	Region            string `json:"region,omitempty"`
	Bio               string `json:"bio,omitempty"`
	BankAccountNumber string `json:"bankAccountNumber,omitempty"`
	IFSCCode          string `json:"ifscCode,omitempty"`
	PANNumber         string `json:"panNumber,omitempty"`
	ConsentAccepted   bool   `json:"consentAccepted"`
}

// SellerProfile is the seller record returned by GET /seller/{id},
// consulted during login for the approval guard.
type SellerProfile struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Email               string    `json:"email"`
	TribeName           string    `json:"tribeName,omitempty"`
	ArtisanCategory     string    `json:"artisanCategory,omitempty"`
	Region              string    `json:"region,omitempty"`
	Bio                 string    `json:"bio,omitempty"`
	AdminApprovalStatus string    `json:"adminApprovalStatus"`
	CreatedAt           time.Time `json:"createdAt"`
}
