package dto

// TwitterLoginRequest represents the upstream login form.
type TwitterLoginRequest struct {
	Username string `form:"username"`
	Email    string `form:"email"`
	Password string `form:"password"`
	MFA      string `form:"mfa"`
	From     string `form:"from"`
}
