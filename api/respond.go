package api

import (
	"encoding/json"
	"net/http"

	"github.com/youssefsiam38/adminui/element"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeElement encodes el and writes it.
func (rt *router) writeElement(w http.ResponseWriter, status int, el *element.Element) {
	doc, err := rt.enc.EncodeElement(el)
	if err != nil {
		rt.logger.Error("failed to encode element", "type", el.Type(), "error", err)
		rt.writeServerError(w)
		return
	}
	writeJSON(w, status, doc)
}

// writeError writes an Error element.
func (rt *router) writeError(w http.ResponseWriter, status int, title, message, errorType string) {
	doc, err := rt.enc.EncodeElement(element.Error(title, message, errorType))
	if err != nil {
		// Error elements hold only strings.
		panic(err)
	}
	writeJSON(w, status, doc)
}

// writeServerError writes the "500" Error element with status 200, for
// failures the page or callback code returned.
func (rt *router) writeServerError(w http.ResponseWriter) {
	rt.writeError(w, http.StatusOK, TitleServerError, MessageServerError, TypeServerError)
}
