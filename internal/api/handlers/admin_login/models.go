package admin_login

// CookieConfig параметры cookie сессии
type CookieConfig struct {
	Name   string
	Secure bool
}
