package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// OkResponse confirmación simple de operaciones sin cuerpo propio (deletes).
type OkResponse struct {
	Ok      bool   `json:"ok"`
	Message string `json:"message"`
}
