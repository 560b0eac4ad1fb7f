package auth

const DefaultBankAccount = "DEFAULT_BANK_001"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterInput struct {
	Username          string `json:"username"`
	Password          string `json:"password"`
	EmailAddress      string `json:"emailAddress"`
	BankAccountNumber string `json:"bankAccountNumber"`
}

// Response is the body of both login and register. On failure the backend
// leaves token empty and fills message.
type Response struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Message  string `json:"message,omitempty"`
}
