package handlers

import (
	"errors"
	"net/http"

	"github.com/rishiparsad75/pixland-face-service/internal/imaging"
	"github.com/rishiparsad75/pixland-face-service/internal/recognize"
)

// Error codes carried in failure response bodies.
const (
	codeInvalidInput   = "INVALID_INPUT"
	codeNoFaceDetected = "NO_FACE_DETECTED"
	codeServerError    = "SERVER_ERROR"
)

// noFaceMessage is user-facing guidance, not a diagnostic.
const noFaceMessage = "We couldn't detect a face. Try better lighting or a closer shot."

// statusTable is the single mapping from error category to HTTP status.
// Every pipeline failure goes through this table; handlers never pick
// status codes ad hoc.
var statusTable = []struct {
	target  error
	status  int
	code    string
	message string // empty means: use the error text
}{
	{imaging.ErrDecode, http.StatusBadRequest, codeInvalidInput, ""},
	{recognize.ErrNoFace, http.StatusUnprocessableEntity, codeNoFaceDetected, noFaceMessage},
	{recognize.ErrInference, http.StatusInternalServerError, codeServerError, ""},
}

// respondFailure classifies a pipeline error and writes the mapped response.
// Unknown errors map to 500 with the underlying text for diagnosability;
// that text is pure vision/numeric failure detail by construction.
func respondFailure(w http.ResponseWriter, err error) {
	for _, entry := range statusTable {
		if errors.Is(err, entry.target) {
			message := entry.message
			if message == "" {
				message = err.Error()
			}
			respondError(w, entry.status, entry.code, message)
			return
		}
	}
	respondError(w, http.StatusInternalServerError, codeServerError, err.Error())
}
