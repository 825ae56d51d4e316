package main

import (
	_ "embed"
	"log"
	"net/http"
	"strings"
	"time"
)

//go:embed data.json
var jsonData []byte

func main() {
	http.HandleFunc("/movie/", func(w http.ResponseWriter, r *http.Request) {
		// Simulate network latency (50-200ms)
		time.Sleep(time.Duration(50+time.Now().UnixNano()%150) * time.Millisecond)

		id := strings.TrimPrefix(r.URL.Path, "/movie/")
		if id == "" || id == "0" {
			w.WriteHeader(http.StatusNotFound)
			if _, err := w.Write([]byte(`{"status_message":"The resource you requested could not be found."}`)); err != nil {
				log.Printf("[TMDB mock] Write error: %v", err)
			}

			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(jsonData); err != nil {
			log.Printf("[TMDB mock] Write error: %v", err)
		}

		log.Printf("[TMDB mock] %s %s - 200 OK", r.Method, r.URL.Path)
	})

	http.HandleFunc("/configuration", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"images":{"secure_base_url":"https://image.tmdb.org/t/p/"}}`)); err != nil {
			log.Printf("[TMDB mock] Configuration write error: %v", err)
		}
	})

	log.Println("Mock TMDB running on :8081")
	server := &http.Server{
		Addr:         ":8081",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	log.Fatal(server.ListenAndServe())
}
