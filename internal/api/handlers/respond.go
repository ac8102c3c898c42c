package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Машиночитаемые коды ошибок API
const (
	CodeBadRequest         = "BAD_REQUEST"
	CodeInvalidSlot        = "INVALID_SLOT"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvalidRule        = "INVALID_RULE"
	CodeDoubleBook         = "DOUBLE_BOOK"
	CodeNotFound           = "NOT_FOUND"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL_ERROR"
)

const msgInternalError = "внутренняя ошибка сервера"

// errorBody тело ошибки в конверте ответа
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// errorEnvelope конверт ошибки: {"error": {"code": ..., "message": ...}}
type errorEnvelope struct {
	Error errorBody `json:"error"`
}

// DecodeJSON декодирует тело запроса в dst, отклоняя неизвестные поля
func DecodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}

	return nil
}

// RespondJSON пишет JSON ответ с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		// Ошибку кодирования уже не доставить клиенту - заголовки отправлены
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError пишет ошибку в конверте с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, errorEnvelope{Error: errorBody{Code: code, Message: message}})
}

// RespondBadRequest пишет 400 с кодом BAD_REQUEST
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, CodeBadRequest, message)
}

// RespondNotFound пишет 404 с кодом NOT_FOUND
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, CodeNotFound, message)
}

// RespondForbidden пишет 403 с кодом FORBIDDEN
func RespondForbidden(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusForbidden, CodeForbidden, message)
}

// RespondUnauthorized пишет 401 с кодом UNAUTHORIZED
func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// RespondInternalError пишет 500 без деталей внутренней ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternal, msgInternalError)
}
