package dto

// ConsentURLResponse carries the provider URL the browser is sent to.
type ConsentURLResponse struct {
	URL string `json:"url"`
}

// ExchangeCodeRequest redeems the one-time code the callback appended to the
// storefront redirect.
type ExchangeCodeRequest struct {
	Code string `json:"code"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RefreshTokenRequest is shared by refresh and logout.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}
