package app

import (
	"fmt"
	"net"

	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/logging"
	"github.com/relabs-tech/sensory_ball/internal/telemetry"
)

// RunConsole runs the hub-side monitor: it binds the telemetry UDP port
// and pretty-prints every report the ball sends. Alerts are called out
// on their own line so they stand out in a scrolling terminal.
func RunConsole(port int) error {
	logger := logging.Get()

	conn, err := net.ListenUDP("udp", &net.UDPAddr{Port: port})
	if err != nil {
		return fmt.Errorf("listen on telemetry port %d: %w", port, err)
	}
	defer conn.Close()

	logger.Info("console listening for ball telemetry", zap.Int("port", port))

	buf := make([]byte, 2048)
	for {
		n, addr, err := conn.ReadFromUDP(buf)
		if err != nil {
			return fmt.Errorf("telemetry read: %w", err)
		}

		r, err := telemetry.Parse(buf[:n])
		if err != nil {
			logger.Warn("unparseable datagram",
				zap.String("peer", addr.String()),
				zap.Error(err),
			)
			continue
		}

		printReport(r)
	}
}

func printReport(r telemetry.Report) {
	fmt.Printf(
		"[%s t=%8dms] grip=%-9s psi=%5.2f/%5.2f (max %5.2f) motion=%-12s a=(%6d,%6d,%6d) g=(%6d,%6d,%6d)\n",
		r.Device, r.TimeMS,
		r.GripState, r.PSI1, r.PSI2, r.PSIMax,
		r.Motion,
		r.Ax, r.Ay, r.Az, r.Gx, r.Gy, r.Gz,
	)

	if r.Squeeze {
		fmt.Printf("    >> squeeze: grip state now %s\n", r.GripState)
	}

	switch r.Alert {
	case telemetry.AlertPattern:
		fmt.Printf("    !! DISTRESS: 5-grip pattern, dominant=%s\n", r.DominantType)
	case telemetry.AlertMotion:
		fmt.Printf("    !! DISTRESS: repeated motion %s\n", r.MotionType)
	}
}
