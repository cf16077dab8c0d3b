package handlers

// ShortenRequest represents JSON {"url":"<some_url>","shortcode":"<optional_code>"}
type ShortenRequest struct {
	URL       string `json:"url"`
	Shortcode string `json:"shortcode,omitempty"`
}
