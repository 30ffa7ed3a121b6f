package telemetry

import (
	"encoding/json"
	"fmt"
	"net"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"
)

// Sender delivers one report best-effort: no acknowledgment, no retry. A
// dropped message simply waits for the next periodic or distress
// opportunity.
type Sender interface {
	Send(r Report) error
}

// udpMinSpacing throttles raw datagram writes; back-to-back sends from
// the same tick would only congest the radio.
const udpMinSpacing = 200 * time.Millisecond

// UDPSender transmits the key:value wire format to the hub.
type UDPSender struct {
	conn     *net.UDPConn
	lastSend time.Time
	logger   *zap.Logger
}

func NewUDPSender(hubAddr string, logger *zap.Logger) (*UDPSender, error) {
	addr, err := net.ResolveUDPAddr("udp", hubAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve hub address %q: %w", hubAddr, err)
	}
	conn, err := net.DialUDP("udp", nil, addr)
	if err != nil {
		return nil, fmt.Errorf("dial hub %q: %w", hubAddr, err)
	}
	return &UDPSender{conn: conn, logger: logger}, nil
}

// Send writes one datagram, silently dropping it when the last write was
// under udpMinSpacing ago.
func (s *UDPSender) Send(r Report) error {
	now := time.Now()
	if !s.lastSend.IsZero() && now.Sub(s.lastSend) < udpMinSpacing {
		s.logger.Debug("udp send dropped, too soon after previous")
		return nil
	}
	s.lastSend = now

	if _, err := s.conn.Write(r.Encode()); err != nil {
		return fmt.Errorf("udp write: %w", err)
	}
	return nil
}

func (s *UDPSender) Close() error {
	return s.conn.Close()
}

// MQTTSender mirrors reports as JSON onto the telemetry topic, and
// additionally onto the alert topic for distress reports.
type MQTTSender struct {
	client         mqtt.Client
	telemetryTopic string
	alertTopic     string
	logger         *zap.Logger
}

func NewMQTTSender(broker, clientID, telemetryTopic, alertTopic string, logger *zap.Logger) (*MQTTSender, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect: %w", token.Error())
	}

	return &MQTTSender{
		client:         client,
		telemetryTopic: telemetryTopic,
		alertTopic:     alertTopic,
		logger:         logger,
	}, nil
}

func (s *MQTTSender) Send(r Report) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("report marshal: %w", err)
	}

	if token := s.client.Publish(s.telemetryTopic, 0, true, payload); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt publish (%s): %w", s.telemetryTopic, token.Error())
	}

	if r.Alert != "" {
		if token := s.client.Publish(s.alertTopic, 0, false, payload); token.Wait() && token.Error() != nil {
			return fmt.Errorf("mqtt publish (%s): %w", s.alertTopic, token.Error())
		}
	}
	return nil
}

func (s *MQTTSender) Close() {
	s.client.Disconnect(250)
}
