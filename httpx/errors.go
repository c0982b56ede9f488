package httpx

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
	"github.com/mbolis/care-survey/log"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Will log an error, and send an HTTP response with status 500 and a generic message.
// The error itself is never sent to the caller.
func LogInternalError(w http.ResponseWriter, r *http.Request, code string, err error) {
	log.Errorf("%s: %s", code, err)
	render.Status(r, http.StatusInternalServerError)
	render.JSON(w, r, ErrorResponse{"Internal server error"})
}

// Will log an error code and its cause at the given level, and send
// an HTTP response with status and default text
func LogStatus(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, err error) {
	log.Logf(level, "%s: %s", code, err)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{http.StatusText(status)})
}

// Will log an error code and message at the given level,
// and send an HTTP response with the given status and formatted message
func LogStatusMsg(w http.ResponseWriter, r *http.Request, status int, level log.Level, code string, msg string, args ...any) {
	errMsg := fmt.Sprintf(msg, args...)
	log.Logf(level, "%s: %s", code, errMsg)
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{errMsg})
}
