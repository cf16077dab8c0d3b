package handlers

// ShortenResponse represents JSON {"success":true,"shortcode":"<code>","shortUrl":"<shorten_url>"}
type ShortenResponse struct {
	Success   bool   `json:"success"`
	Shortcode string `json:"shortcode"`
	ShortURL  string `json:"shortUrl"`
}
