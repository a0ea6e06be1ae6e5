package webapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"Status":"ok","Sessions":2}`))
	})
	mux.HandleFunc("/variants", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"Slug":"poof","Name":"Poof","Description":"d"}]`))
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()
	repo := New()

	t.Run("health", func(t *testing.T) {
		resp, err := repo.HealthCheck(context.Background(), ts.URL)

		require.NoError(t, err)
		assert.Equal(t, &domain.HealthCheckResponse{Status: "ok", Sessions: 2}, resp)
	})

	t.Run("variants", func(t *testing.T) {
		variants, err := repo.Variants(context.Background(), ts.URL)

		require.NoError(t, err)
		assert.Equal(t, []domain.VariantInfo{{Slug: "poof", Name: "Poof", Description: "d"}}, variants)
	})

	t.Run("unexpected status", func(t *testing.T) {
		_, err := repo.Variants(context.Background(), ts.URL+"/missing")

		assert.ErrorContains(t, err, "unexpected response status")
	})
}
