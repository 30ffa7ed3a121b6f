package app

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/relabs-tech/sensory_ball/internal/audio"
	"github.com/relabs-tech/sensory_ball/internal/command"
	"github.com/relabs-tech/sensory_ball/internal/grip"
	"github.com/relabs-tech/sensory_ball/internal/motion"
)

type nopPort struct{}

func (nopPort) Write(p []byte) (int, error) { return len(p), nil }
func (nopPort) Close() error                { return nil }

func newTestAgent() *agent {
	return &agent{
		classifier: grip.NewClassifier(),
		state:      command.NewState(1),
		player:     audio.NewPlayer(nopPort{}, 20, zap.NewNop()),
		startTime:  time.Now(),
		logger:     zap.NewNop(),
	}
}

func TestStatusLineReflectsPublishedSnapshot(t *testing.T) {
	a := newTestAgent()

	a.publishStatus(grip.Tantrum, motion.Spinning)
	line := a.statusLine()
	require.True(t, strings.HasPrefix(line, "STATUS:"))
	require.Contains(t, line, "grip=Tantrum")
	require.Contains(t, line, "motion=Spinning")
	require.Contains(t, line, "track=1")
	require.Contains(t, line, "volume=20")
}

// The STATUS reply runs on the command listener's goroutine while the
// tick loop keeps classifying; the reply must only touch guarded state.
// Run with the race detector enabled.
func TestStatusLineConcurrentWithTicks(t *testing.T) {
	a := newTestAgent()

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		labels := []motion.Label{motion.None, motion.Spinning, motion.Impact}
		for i := 0; ; i++ {
			select {
			case <-stop:
				return
			default:
			}
			a.classifier.Update(float64(i%12), 0.0)
			a.publishStatus(a.classifier.Current(), labels[i%len(labels)])
			a.player.Restore(time.Now())
		}
	}()

	for i := 0; i < 500; i++ {
		line := a.statusLine()
		require.True(t, strings.HasPrefix(line, "STATUS:"))
		if i%50 == 0 {
			require.NoError(t, a.player.SetVolume(i%31))
		}
	}
	close(stop)
	wg.Wait()
}
