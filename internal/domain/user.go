package domain

import "time"

// User is the identity record keyed by email. While a login is pending the
// record carries the outstanding OTP and its expiry; both are cleared on
// successful verification. OTP and OTPExpiry are always set or cleared
// together.
type User struct {
	UserID      string  `json:"id" dynamodbav:"user_id"`
	Email       string  `json:"email" dynamodbav:"email"`
	Name        string  `json:"name" dynamodbav:"name"`
	Role        string  `json:"role" dynamodbav:"role"`
	CollegeID   string  `json:"college_id" dynamodbav:"college_id"`
	CollegeName string  `json:"college_name" dynamodbav:"college_name"`
	OTP         *string `json:"-" dynamodbav:"otp,omitempty"`
	OTPExpiry   *int64  `json:"-" dynamodbav:"otp_expiry,omitempty"` // Unix seconds
	Verified    bool    `json:"verified" dynamodbav:"verified"`

	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt time.Time `json:"updated" dynamodbav:"updated_at"`
}

// PublicUser is the minimal profile echoed to the client after verification
// and on session resolution.
type PublicUser struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CollegeName string `json:"collegeName"`
}

// Public projects the client-safe fields of a user.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.UserID, Name: u.Name, CollegeName: u.CollegeName}
}

// SendOTPRequest starts a passwordless login.
type SendOTPRequest struct {
	CollegeName string `json:"collegeName" validate:"required"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
}

// VerifyOTPRequest completes a passwordless login.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required"`
	OTP   string `json:"otp" validate:"required"`
}
