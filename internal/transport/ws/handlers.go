package ws

import (
	"fmt"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/tactics-and-toes/internal/domain"
	"go.uber.org/zap"
)

const healthyStatus = "ok"

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		s.logger.Warn(fmt.Sprintf("empty '%s' header", domain.ClientUuidHeader))
		http.Error(w, "missing client key", http.StatusBadRequest)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	s.logger.Info("new connection", zap.String("client uuid", clientUuid))
	client := newClient(conn, clientUuid)
	defer client.Close()
	if err := s.hub.Handle(r.Context(), client); err != nil {
		s.logger.Error(err.Error(), zap.String("client uuid", clientUuid))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, domain.HealthCheckResponse{
		Status:   healthyStatus,
		Sessions: s.hub.ActiveSessions(),
	})
}

func (s *server) variants(w http.ResponseWriter, _ *http.Request) {
	s.writeJson(w, domain.Variants())
}

func (s *server) writeJson(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		s.logger.Warn(err.Error())
	}
}
