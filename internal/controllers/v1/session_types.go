package v1

type SessionEditable struct {
	Email string `json:"email" binding:"required" example:"yuki@example.com"` // Verified email address of the account
}

type Session struct {
	Token   string  `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."` // Bearer token for the Authorization header
	Profile Profile `json:"profile"`                                                 // The profile the token acts as
}

type SessionResponse struct {
	Error *string  `json:"error" example:"the email address must not be empty"` // The error, if any occurred
	Data  *Session `json:"data"`                                                // The session that was created
}
