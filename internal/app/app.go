package app

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
)

type appHandler func(http.ResponseWriter, *http.Request) error

func (fn appHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if v := recover(); v != nil {
			log.Printf("Panic: %s %s: %v", r.Method, r.URL.Path, v)
			replyJSON(w, &AppError{http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", v)}, http.StatusInternalServerError)
		}
	}()
	if err := fn(w, r); err != nil {
		log.Printf("Error: %s %s: %v", r.Method, r.URL.Path, err)
		if e, ok := err.(*AppError); ok {
			replyJSON(w, e, e.Code)
		} else {
			replyJSON(w, &AppError{http.StatusInternalServerError, fmt.Sprintf("Unexpected error: %v", err)}, http.StatusInternalServerError)
		}
	}
}

// Register API endpoints to the router.
func SetupRoutes(r *mux.Router, metadata *MetadataService, relay *Relay) {
	c := &controller{metadata, relay}
	for _, path := range []string{"/fetch-video", "/fetch-video/"} {
		r.Methods("GET").Path(path).Handler(appHandler(c.fetchVideo))
	}
	for _, path := range []string{"/download-video", "/download-video/"} {
		r.Methods("GET", "POST").Path(path).Handler(appHandler(c.downloadVideo))
	}
	r.NotFoundHandler = appHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &AppError{http.StatusNotFound, "Not found"}
	})
	r.MethodNotAllowedHandler = appHandler(func(w http.ResponseWriter, r *http.Request) error {
		return &AppError{http.StatusMethodNotAllowed, fmt.Sprintf("Method %s not allowed", r.Method)}
	})
}
