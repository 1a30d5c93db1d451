package bench

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/pingcap/errors"
	"github.com/sqlcoach/sqlcoach/lesson"
	"github.com/sqlcoach/sqlcoach/store"
)

const reportMDFile = "bench.md"
const rawDursFile = "bench.json"

func logTime() string {
	str, err := time.Now().MarshalText()
	if err != nil {
		panic(err)
	}
	return string(str)
}

// benchSQL tags a lesson query with its position so concurrent results can
// be attributed.
type benchSQL struct {
	idx int
	sql string
}

func (b benchSQL) SQL() string {
	return b.sql
}

// RunBench runs every configured lesson query n times per instance through
// concurrent query runners and reports latency statistics.
func RunBench(confPath, outDir string, n, concurrency uint) error {
	confContent, err := os.ReadFile(confPath)
	if err != nil {
		return errors.Trace(err)
	}
	opt, err := lesson.DecodeOption(string(confContent))
	if err != nil {
		return err
	}
	lessons, err := lesson.ResolveLessons(opt)
	if err != nil {
		return err
	}
	if n == 0 || concurrency == 0 {
		return errors.Errorf("invalid n=%v concurrency=%v", n, concurrency)
	}
	if err := os.MkdirAll(outDir, os.ModePerm); err != nil {
		return errors.Trace(err)
	}

	durs := make([][][]time.Duration, len(opt.Instances))
	insLabels := make([]string, len(opt.Instances))
	for insIdx, insOpt := range opt.Instances {
		insLabels[insIdx] = insOpt.Label
		if insLabels[insIdx] == "" {
			insLabels[insIdx] = fmt.Sprintf("instance#%d", insIdx)
		}
		durs[insIdx] = make([][]time.Duration, len(lessons))

		taskChan := make(chan *store.QueryTask, 100)
		resChan := make(chan *store.QueryResult, 100)
		if err := store.StartQueryRunners(insOpt, taskChan, concurrency, 1, uint(insIdx)); err != nil {
			return err
		}
		fmt.Printf("[%s] %d query runners started for instance#%d.\n", logTime(), concurrency, insIdx)

		go func() {
			for li, l := range lessons {
				for i := uint(0); i < n; i++ {
					taskChan <- &store.QueryTask{Payload: benchSQL{idx: li, sql: l.SQL}, Dest: resChan}
				}
			}
		}()

		// Collect every expected result before shutting the runners down,
		// otherwise a runner could still be mid-query when Dest is closed.
		total := int(n) * len(lessons)
		var firstErr error
		for i := 0; i < total; i++ {
			res := <-resChan
			if res.Err != nil && firstErr == nil {
				firstErr = errors.Errorf("bench on %v: %v", insLabels[insIdx], res.Err)
				continue
			}
			li := res.Payload.(benchSQL).idx
			durs[insIdx][li] = append(durs[insIdx][li], res.Dur)
		}
		taskChan <- &store.QueryTask{Exited: true, Dest: resChan}
		if firstErr != nil {
			return firstErr
		}
		fmt.Printf("[%s] instance#%d done: %d queries.\n", logTime(), insIdx, total)
	}

	if err := writeRawDurs(outDir, insLabels, lessons, durs); err != nil {
		return err
	}
	return writeReport(outDir, insLabels, lessons, durs)
}

func writeRawDurs(outDir string, insLabels []string, lessons []lesson.Lesson, durs [][][]time.Duration) (re error) {
	raw := make(map[string]map[string][]float64, len(insLabels))
	for insIdx, label := range insLabels {
		raw[label] = make(map[string][]float64, len(lessons))
		for li, l := range lessons {
			secs := make([]float64, len(durs[insIdx][li]))
			for i, d := range durs[insIdx][li] {
				secs[i] = d.Seconds()
			}
			raw[label][l.Name] = secs
		}
	}
	f, err := os.Create(path.Join(outDir, rawDursFile))
	if err != nil {
		return errors.Trace(err)
	}
	defer func() {
		if err := f.Close(); err != nil && re == nil {
			re = err
		}
	}()
	encoder := json.NewEncoder(f)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	return errors.Trace(encoder.Encode(raw))
}

func writeReport(outDir string, insLabels []string, lessons []lesson.Lesson, durs [][][]time.Duration) error {
	md := bytes.Buffer{}
	md.WriteString("# Query latency benchmark\n")

	lessonNames := make([]string, len(lessons))
	for i, l := range lessons {
		lessonNames[i] = l.Name
	}
	avgSecs := make([][]float64, len(insLabels))
	for insIdx, label := range insLabels {
		md.WriteString(fmt.Sprintf("\n## %v\n", label))
		md.WriteString("\n| Query | Count | Avg | P50 | P90 | Max |\n")
		md.WriteString("| ---- | ---- | ---- | ---- | ---- | ---- |\n")
		avgSecs[insIdx] = make([]float64, len(lessons))
		for li, l := range lessons {
			stats := analyzeDurations(durs[insIdx][li])
			avgSecs[insIdx][li] = stats["avg"]
			md.WriteString(fmt.Sprintf("| %v | %.0f | %.6fs | %.6fs | %.6fs | %.6fs |\n",
				l.Name, stats["cnt"], stats["avg"], stats["p50"], stats["p90"], stats["max"]))
		}
	}

	picPath, err := lesson.DrawTimingBarChart(outDir, "bench-latency", lessonNames, insLabels, avgSecs)
	if err != nil {
		return err
	}
	md.WriteString("\n## Latency chart\n")
	md.WriteString(fmt.Sprintf("![pic](%v)\n", path.Base(picPath)))

	return errors.Trace(os.WriteFile(path.Join(outDir, reportMDFile), md.Bytes(), 0666))
}
