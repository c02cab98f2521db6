// Package http реализует HTTP-обработчики и DTO поверх доменных сервисов.
package http

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}
