package apiclient

import "encoding/json"

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the success body of POST /auth/login.
type LoginResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
}

// SignupRequest is the body of POST /auth/signup.
type SignupRequest struct {
	User    SignupUser    `json:"user"`
	Company SignupCompany `json:"company"`
}

// SignupUser is the account owner part of a signup.
type SignupUser struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// SignupCompany is the business part of a signup.
type SignupCompany struct {
	Activity             SignupActivity `json:"activity"`
	EarlyPayIntent       bool           `json:"early_pay_intent"`
	Industry             ValueLabel     `json:"industry"`
	BusinessType         LabelValue     `json:"business_type"`
	Website              string         `json:"website"`
	BusinessRegistration string         `json:"business_registration"`
	Phone                string         `json:"phone"`
	BusinessNumber       string         `json:"business_number"`
	HasTradeName         bool           `json:"has_trade_name"`
	LegalName            string         `json:"legal_name"`
	ExpectedActivity     string         `json:"expected_activity"`
}

// SignupActivity describes the intended use of the account.
type SignupActivity struct {
	EarlyPayIntent   bool   `json:"early_pay_intent"`
	ExpectedActivity string `json:"expected_activity"`
}

// ValueLabel is a select option encoded value first.
type ValueLabel struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// LabelValue is a select option encoded label first.
type LabelValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SignupResponse is the success body of POST /auth/signup.
type SignupResponse struct {
	Message string `json:"message"`
}

type userEnvelope struct {
	User json.RawMessage `json:"user"`
}

type failureBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}
