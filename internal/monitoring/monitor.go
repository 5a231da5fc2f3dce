// Package monitoring times frames and named phases of the game loop for the
// debug overlay.
package monitoring

import (
	"runtime"
	"sort"
	"sync"
	"time"
)

// smoothing is the weight of the newest sample in the running averages.
const smoothing = 0.1

// PerformanceMonitor tracks frame and phase timings.
type PerformanceMonitor struct {
	mutex sync.Mutex

	frameCount uint64
	frameTime  time.Duration
	avgFrame   float64 // nanoseconds
	phases     map[string]float64

	startTime time.Time
	now       func() time.Time
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	pm := &PerformanceMonitor{now: time.Now}
	pm.Reset()
	return pm
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{monitor: pm, startTime: pm.now()}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	pm := ft.monitor
	d := pm.now().Sub(ft.startTime)

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.frameCount++
	pm.frameTime = d
	pm.avgFrame = blend(pm.avgFrame, float64(d), pm.frameCount == 1)
}

// ProfiledFunction runs fn and records its duration under name.
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) {
	start := pm.now()
	fn()
	d := float64(pm.now().Sub(start))

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	prev, seen := pm.phases[name]
	pm.phases[name] = blend(prev, d, !seen)
}

func blend(avg, sample float64, first bool) float64 {
	if first {
		return sample
	}
	return avg + smoothing*(sample-avg)
}

// Phase is the running average of one named phase.
type Phase struct {
	Name    string
	Average time.Duration
}

// Metrics is a point-in-time view of the monitor.
type Metrics struct {
	Frames        uint64
	LastFrame     time.Duration
	AverageFrame  time.Duration
	Phases        []Phase // sorted by name
	MemoryAllocMB uint64
	Goroutines    int
	Uptime        time.Duration
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() Metrics {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	pm.mutex.Lock()
	defer pm.mutex.Unlock()

	m := Metrics{
		Frames:        pm.frameCount,
		LastFrame:     pm.frameTime,
		AverageFrame:  time.Duration(pm.avgFrame),
		MemoryAllocMB: memStats.Alloc / 1024 / 1024,
		Goroutines:    runtime.NumGoroutine(),
		Uptime:        pm.now().Sub(pm.startTime),
	}
	for name, avg := range pm.phases {
		m.Phases = append(m.Phases, Phase{Name: name, Average: time.Duration(avg)})
	}
	sort.Slice(m.Phases, func(i, j int) bool { return m.Phases[i].Name < m.Phases[j].Name })
	return m
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.frameCount = 0
	pm.frameTime = 0
	pm.avgFrame = 0
	pm.phases = make(map[string]float64)
	pm.startTime = pm.now()
}
