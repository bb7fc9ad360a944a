package handler

import (
	"net/http"
	"salon/config"
	"salon/di"
	"salon/shared/logger"
	"sync"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler serves the API as a single serverless function. The container is built on the first request.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Handler()
	})

	handler.ServeHTTP(w, r)
}
