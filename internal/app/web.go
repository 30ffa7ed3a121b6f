package app

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/config"
	"github.com/relabs-tech/sensory_ball/internal/logging"
	"github.com/relabs-tech/sensory_ball/internal/telemetry"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // local monitoring page only
	},
}

// webState fans the MQTT telemetry stream out to HTTP polls and
// websocket subscribers.
type webState struct {
	mu         sync.RWMutex
	lastReport telemetry.Report
	haveReport bool

	clientsMu sync.Mutex
	clients   map[*websocket.Conn]struct{}

	logger *zap.Logger
}

// RunWeb serves the live monitoring page: it subscribes to the ball's
// MQTT telemetry mirror and exposes the latest report at /api/state,
// a push stream at /ws, and static files from ./web.
func RunWeb() error {
	logger := logging.Get()
	cfg := config.Get()

	if cfg.MQTTBroker == "" {
		return fmt.Errorf("MQTT_BROKER is required for the web monitor")
	}

	state := &webState{
		clients: make(map[*websocket.Conn]struct{}),
		logger:  logger,
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDWeb)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}
	defer client.Disconnect(250)
	logger.Info("connected to MQTT broker", zap.String("broker", cfg.MQTTBroker))

	token := client.Subscribe(cfg.TopicTelemetry, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var r telemetry.Report
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			logger.Warn("telemetry payload unmarshal error", zap.Error(err))
			return
		}
		state.update(r, msg.Payload())
	})
	token.Wait()
	if token.Error() != nil {
		return fmt.Errorf("mqtt subscribe: %w", token.Error())
	}
	logger.Info("subscribed to telemetry topic", zap.String("topic", cfg.TopicTelemetry))

	http.HandleFunc("/api/state", state.handleState)
	http.HandleFunc("/ws", state.handleWS)
	http.Handle("/", http.FileServer(http.Dir("web")))

	addr := fmt.Sprintf(":%d", cfg.WebServerPort)
	logger.Info("web monitor listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, nil)
}

// update stores the latest report and pushes the raw payload to every
// websocket subscriber. A client that cannot keep up is dropped.
func (s *webState) update(r telemetry.Report, payload []byte) {
	s.mu.Lock()
	s.lastReport = r
	s.haveReport = true
	s.mu.Unlock()

	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			s.logger.Debug("dropping slow websocket client", zap.Error(err))
			conn.Close()
			delete(s.clients, conn)
		}
	}
}

func (s *webState) handleState(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.haveReport {
		http.Error(w, "no data yet", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.lastReport); err != nil {
		s.logger.Warn("json encode error", zap.Error(err))
	}
}

func (s *webState) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade error", zap.Error(err))
		return
	}

	s.clientsMu.Lock()
	s.clients[conn] = struct{}{}
	s.clientsMu.Unlock()
	s.logger.Info("websocket client connected", zap.String("peer", conn.RemoteAddr().String()))

	// Reads only serve to detect disconnect; clients never send data.
	go func() {
		defer func() {
			s.clientsMu.Lock()
			delete(s.clients, conn)
			s.clientsMu.Unlock()
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
