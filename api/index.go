package handler

import (
	"net/http"
	"sync"

	"hotel/config"
	"hotel/di"
	"hotel/shared/logger"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entrypoint. The router is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger(cfg)
		logger.SetLogLevel(cfg)

		handler = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	handler.ServeHTTP(w, r)
}
