package errors

import "net/http"

// Messages carried in the envelope for each supported status.
const (
	MsgBadRequest          = "Bad Request"
	MsgNotFound            = "Resource Not Found"
	MsgMethodNotAllowed    = "Method Not Allowed"
	MsgUnprocessable       = "Unprocessable"
	MsgInternalServerError = "Internal Server Error"
)

var statusMessages = map[int]string{
	http.StatusBadRequest:          MsgBadRequest,
	http.StatusNotFound:            MsgNotFound,
	http.StatusMethodNotAllowed:    MsgMethodNotAllowed,
	http.StatusUnprocessableEntity: MsgUnprocessable,
	http.StatusInternalServerError: MsgInternalServerError,
}

// Message returns the envelope message for status, falling back to the
// standard status text.
func Message(status int) string {
	if msg, ok := statusMessages[status]; ok {
		return msg
	}
	return http.StatusText(status)
}
