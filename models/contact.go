package models

// ContactBlock is the footer contact information shown on every page.
// It lives in Redis under a fixed key; every write is published so connected
// clients pick the change up without reloading.
type ContactBlock struct {
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	WhatsAppText string `json:"whatsapp_text"`
	WhatsAppLink string `json:"whatsapp_link"`
}
