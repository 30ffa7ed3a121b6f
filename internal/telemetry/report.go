// Package telemetry aggregates per-tick pipeline output and decides
// when and what to transmit to the hub.
package telemetry

import (
	"fmt"
	"strconv"
	"strings"
)

// Alert markers carried only on the immediate/distress path.
const (
	AlertPattern = "PATTERN_5GRIP"
	AlertMotion  = "MOTION_5X"
)

// Report is one outbound telemetry message. The wire format toward the
// hub is the flat key:value datagram produced by Encode; the MQTT mirror
// publishes the same report as JSON.
type Report struct {
	Device string `json:"device"`
	TimeMS int64  `json:"time"`

	FSR1Raw int     `json:"fsr1_raw"`
	FSR2Raw int     `json:"fsr2_raw"`
	PSI1    float64 `json:"psi1"`
	PSI2    float64 `json:"psi2"`
	// PSIMax is instantaneous on the distress path, the window mean on
	// the periodic path.
	PSIMax float64 `json:"psi_max"`

	GripState string `json:"grip_state"`

	Ax int16 `json:"ax"`
	Ay int16 `json:"ay"`
	Az int16 `json:"az"`
	Gx int16 `json:"gx"`
	Gy int16 `json:"gy"`
	Gz int16 `json:"gz"`

	// Motion is instantaneous on the distress path, the window mode on
	// the periodic path.
	Motion string `json:"motion"`

	Squeeze bool `json:"squeeze,omitempty"`

	// Alert is empty except on the distress path, where it names which
	// event fired; exactly one of DominantType/MotionType accompanies it.
	Alert        string `json:"alert,omitempty"`
	DominantType string `json:"dominant_type,omitempty"`
	MotionType   string `json:"motion_type,omitempty"`
}

// Encode renders the hub wire format: comma-joined key:value pairs.
func (r Report) Encode() []byte {
	var b strings.Builder
	b.WriteString("device:" + r.Device)
	b.WriteString(",time:" + strconv.FormatInt(r.TimeMS, 10))
	b.WriteString(",fsr1_raw:" + strconv.Itoa(r.FSR1Raw))
	b.WriteString(",fsr2_raw:" + strconv.Itoa(r.FSR2Raw))
	b.WriteString(",psi1:" + formatPSI(r.PSI1))
	b.WriteString(",psi2:" + formatPSI(r.PSI2))
	b.WriteString(",psi_max:" + formatPSI(r.PSIMax))
	b.WriteString(",grip_state:" + r.GripState)
	b.WriteString(",ax:" + strconv.Itoa(int(r.Ax)))
	b.WriteString(",ay:" + strconv.Itoa(int(r.Ay)))
	b.WriteString(",az:" + strconv.Itoa(int(r.Az)))
	b.WriteString(",gx:" + strconv.Itoa(int(r.Gx)))
	b.WriteString(",gy:" + strconv.Itoa(int(r.Gy)))
	b.WriteString(",gz:" + strconv.Itoa(int(r.Gz)))
	b.WriteString(",motion:" + r.Motion)
	if r.Squeeze {
		b.WriteString(",action:Squeeze")
	}
	switch r.Alert {
	case AlertPattern:
		b.WriteString(",alert:" + AlertPattern + ",dominant_type:" + r.DominantType)
	case AlertMotion:
		b.WriteString(",alert:" + AlertMotion + ",motion_type:" + r.MotionType)
	}
	return []byte(b.String())
}

func formatPSI(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Parse decodes a key:value datagram back into a Report. Unknown keys are
// ignored so older hub builds keep working against newer agents.
func Parse(data []byte) (Report, error) {
	var r Report
	fields := strings.Split(string(data), ",")
	for _, f := range fields {
		key, value, ok := strings.Cut(f, ":")
		if !ok {
			return Report{}, fmt.Errorf("malformed field %q", f)
		}
		switch key {
		case "device":
			r.Device = value
		case "time":
			r.TimeMS, _ = strconv.ParseInt(value, 10, 64)
		case "fsr1_raw":
			r.FSR1Raw, _ = strconv.Atoi(value)
		case "fsr2_raw":
			r.FSR2Raw, _ = strconv.Atoi(value)
		case "psi1":
			r.PSI1, _ = strconv.ParseFloat(value, 64)
		case "psi2":
			r.PSI2, _ = strconv.ParseFloat(value, 64)
		case "psi_max":
			r.PSIMax, _ = strconv.ParseFloat(value, 64)
		case "grip_state":
			r.GripState = value
		case "ax":
			r.Ax = parseAxis(value)
		case "ay":
			r.Ay = parseAxis(value)
		case "az":
			r.Az = parseAxis(value)
		case "gx":
			r.Gx = parseAxis(value)
		case "gy":
			r.Gy = parseAxis(value)
		case "gz":
			r.Gz = parseAxis(value)
		case "motion":
			r.Motion = value
		case "action":
			r.Squeeze = value == "Squeeze"
		case "alert":
			r.Alert = value
		case "dominant_type":
			r.DominantType = value
		case "motion_type":
			r.MotionType = value
		}
	}
	if r.Device == "" {
		return Report{}, fmt.Errorf("datagram carries no device field")
	}
	return r, nil
}

func parseAxis(value string) int16 {
	n, _ := strconv.Atoi(value)
	return int16(n)
}
