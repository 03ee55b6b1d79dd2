package models

// Session — типизированный контекст сессии, передается в обработчики явно.
// Флаг IsAdmin выставляется при успешном входе и снимается при выходе.
type Session struct {
	IsAdmin bool   `json:"is_admin"`
	Locale  string `json:"locale,omitempty"`
}
