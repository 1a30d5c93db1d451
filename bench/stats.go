package bench

import (
	"sort"
	"time"
)

func analyzeDurations(durs []time.Duration) map[string]float64 {
	n := len(durs)
	if n == 0 {
		return map[string]float64{
			"cnt": 0,
			"avg": 0,
			"p50": 0,
			"p90": 0,
			"max": 0,
		}
	}
	secs := make([]float64, n)
	sum := float64(0)
	for i, d := range durs {
		secs[i] = d.Seconds()
		sum += secs[i]
	}
	sort.Float64s(secs)
	return map[string]float64{
		"cnt": float64(n),
		"avg": sum / float64(n),
		"p50": secs[n/2],
		"p90": secs[(n*9)/10],
		"max": secs[n-1],
	}
}
