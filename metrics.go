package mnemo

import "time"

// accuracyWindow is the number of recent reviews the rolling accuracy
// counter covers.
const accuracyWindow = 100

// PerformanceMetrics is an observability snapshot of one Scheduler
// instance. It never feeds back into scheduling decisions.
type PerformanceMetrics struct {
	Reviews         int           `json:"reviews"`          // total reviews processed.
	RollingAccuracy float64       `json:"rolling_accuracy"` // Good-or-better share of the last 100 reviews.
	AvgReviewTime   time.Duration `json:"avg_review_time"`  // rolling mean ReviewCard execution time.
}

// VersionInfo identifies the algorithm implemented by this engine.
type VersionInfo struct {
	Version        string `json:"version"`
	AlgorithmName  string `json:"algorithm_name"`
	ParameterCount int    `json:"parameter_count"`
}

const (
	algorithmName    = "FSRS"
	algorithmVersion = "6.1.1"
)

// rollingCounters tracks the rolling accuracy window and the cumulative
// mean execution time.
type rollingCounters struct {
	reviews   int
	window    [accuracyWindow]bool
	windowLen int
	windowPos int
	execMean  float64 // nanoseconds.
}

func (rc *rollingCounters) record(correct bool, elapsed time.Duration) {
	rc.reviews++

	rc.window[rc.windowPos] = correct
	rc.windowPos = (rc.windowPos + 1) % accuracyWindow
	if rc.windowLen < accuracyWindow {
		rc.windowLen++
	}

	// Cumulative moving average of execution time.
	rc.execMean += (float64(elapsed) - rc.execMean) / float64(rc.reviews)
}

func (rc *rollingCounters) snapshot() PerformanceMetrics {
	acc := 0.0
	if rc.windowLen > 0 {
		correct := 0
		for i := 0; i < rc.windowLen; i++ {
			if rc.window[i] {
				correct++
			}
		}
		acc = float64(correct) / float64(rc.windowLen)
	}
	return PerformanceMetrics{
		Reviews:         rc.reviews,
		RollingAccuracy: acc,
		AvgReviewTime:   time.Duration(rc.execMean),
	}
}
