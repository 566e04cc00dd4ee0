package config

import "time"

// ClientConfig configures the checkout-side half (the savecart CLI)
type ClientConfig interface {
	GetProxyURL() string
	GetCartURL() string
	GetStoreDir() string
	GetSessionToken() string
	GetCustomerID() string
	GetRequestTimeout() time.Duration
}

type Client struct{}

var _ ClientConfig = Client{}

func NewClient() ClientConfig {
	return Client{}
}

// GetProxyURL is the base the client appends /save-cart and /retrieve-cart to
func (Client) GetProxyURL() string {
	return GetEnv("SAVECART_PROXY_URL", "http://localhost:8080/api")
}

func (Client) GetCartURL() string {
	return GetEnv("SAVECART_CART_URL", "")
}

func (Client) GetStoreDir() string {
	return GetEnv("SAVECART_STORE_DIR", "./data/local")
}

func (Client) GetSessionToken() string {
	return GetEnv("SAVECART_TOKEN", "")
}

func (Client) GetCustomerID() string {
	return GetEnv("SAVECART_CUSTOMER_ID", "")
}

func (Client) GetRequestTimeout() time.Duration {
	return GetEnvDuration("SAVECART_TIMEOUT", 10*time.Second)
}
