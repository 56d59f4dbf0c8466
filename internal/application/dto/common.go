package dto

// ErrorResponse cuerpo de error HTTP: código verificable por máquina + mensaje humano.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
