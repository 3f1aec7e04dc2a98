package models

// AccessGrant результат проверки парольной фразы закрытой галереи.
// При ok=false токен не выдается.
type AccessGrant struct {
	OK      bool     `json:"ok"`
	Token   string   `json:"token,omitempty"`
	Message string   `json:"message,omitempty"`
	Gallery *Gallery `json:"-"`
}
