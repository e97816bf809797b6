package http

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealth(t *testing.T) {
	tests := []struct {
		name     string
		state    ServerState
		wantCode int
	}{
		{name: "ready", state: ServerStateReady, wantCode: http.StatusOK},
		{name: "grace period", state: ServerStateInGracePeriod, wantCode: http.StatusServiceUnavailable},
		{name: "cleanup period", state: ServerStateInCleanupPeriod, wantCode: http.StatusServiceUnavailable},
		{name: "not started", wantCode: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &HTTP{}
			h.setState(tt.state)

			rec := httptest.NewRecorder()
			h.health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestHealth_StateChangesWhileServing(t *testing.T) {
	h := &HTTP{}
	h.setState(ServerStateReady)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		h.setState(ServerStateInGracePeriod)
		h.setState(ServerStateInCleanupPeriod)
	}()

	for range 50 {
		rec := httptest.NewRecorder()
		h.health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Contains(t, []int{http.StatusOK, http.StatusServiceUnavailable}, rec.Code)
	}

	wg.Wait()

	assert.Equal(t, ServerStateInCleanupPeriod, h.State())
}
