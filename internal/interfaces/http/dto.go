package http

// ErrorResponse is the gateway's HTTP error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageMeta carries the document attributes every rendered view needs.
type PageMeta struct {
	Language    string   `json:"language"`
	Direction   string   `json:"direction"`
	BodyClasses []string `json:"body_classes"`
}
