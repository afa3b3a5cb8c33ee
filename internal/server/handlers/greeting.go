package handlers

import (
	"net/http"
)

const greeting = "<h1>Hello, World!</h1>"

// GreetingHandler serves the static landing page.
func GreetingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(greeting))
}
