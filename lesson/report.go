package lesson

import (
	"bytes"
	"fmt"
	"os"
	"path"

	"github.com/pingcap/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// GenLessonReport generates a report with MarkDown format.
func GenLessonReport(opt Option, lessons []Lesson, results [][]Result) error {
	if err := os.MkdirAll(opt.ReportDir, os.ModePerm); err != nil {
		return errors.Trace(err)
	}

	md := bytes.Buffer{}
	md.WriteString("# SQL lessons\n")
	for li, l := range lessons {
		md.WriteString(fmt.Sprintf("\n## %v\n\n", l.Title))
		if l.Note != "" {
			md.WriteString(l.Note + "\n\n")
		}
		md.WriteString("```sql\n" + l.SQL + "\n```\n")
		for insIdx := range results {
			r := results[insIdx][li]
			if len(results) > 1 {
				md.WriteString(fmt.Sprintf("\n### %v\n", r.InsLabel))
			}
			md.WriteString("\n")
			writeGrid(&md, r.Cols, r.Rows, opt.MaxRows)
			md.WriteString(fmt.Sprintf("\n%d rows (%v)\n", len(r.Rows), r.Dur))
		}
	}

	insLabels := make([]string, len(results))
	secs := make([][]float64, len(results))
	for insIdx := range results {
		insLabels[insIdx] = results[insIdx][0].InsLabel
		secs[insIdx] = make([]float64, len(lessons))
		for li := range lessons {
			secs[insIdx][li] = results[insIdx][li].Dur.Seconds()
		}
	}
	lessonNames := make([]string, len(lessons))
	for i, l := range lessons {
		lessonNames[i] = l.Name
	}
	picPath, err := DrawTimingBarChart(opt.ReportDir, "lesson-timings", lessonNames, insLabels, secs)
	if err != nil {
		return err
	}
	md.WriteString("\n## Timings\n")
	md.WriteString(fmt.Sprintf("![pic](%v)\n", path.Base(picPath)))

	return errors.Trace(os.WriteFile(path.Join(opt.ReportDir, "report.md"), md.Bytes(), 0666))
}

func writeGrid(md *bytes.Buffer, cols []string, rows [][]string, maxRows int) {
	md.WriteString("|")
	for _, c := range cols {
		md.WriteString(" " + c + " |")
	}
	md.WriteString("\n|")
	for range cols {
		md.WriteString(" ---- |")
	}
	md.WriteString("\n")
	shown := rows
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, row := range shown {
		md.WriteString("|")
		for _, v := range row {
			md.WriteString(" " + v + " |")
		}
		md.WriteString("\n")
	}
	if len(rows) > maxRows {
		md.WriteString(fmt.Sprintf("\n... %d more rows\n", len(rows)-maxRows))
	}
}

// DrawTimingBarChart draws one group of bars per instance and returns the
// picture's path.
func DrawTimingBarChart(dir, name string, xNames, insLabels []string, secs [][]float64) (string, error) {
	p := plot.New()
	p.Title.Text = "query latency"
	p.X.Label.Text = "query"
	p.Y.Label.Text = "seconds"

	var w float64 = 20
	for insIdx, label := range insLabels {
		bar, err := plotter.NewBarChart(plotter.Values(secs[insIdx]), vg.Points(w))
		if err != nil {
			return "", errors.Trace(err)
		}
		bar.Color = plotutil.Color(insIdx)
		bar.Offset = vg.Points(float64(insIdx-(len(insLabels)/2)) * w)
		p.Add(bar)
		p.Legend.Add(label, bar)
	}
	p.Legend.Top = true
	p.NominalX(xNames...)

	prefixDir := dir
	if !path.IsAbs(prefixDir) {
		absPrefix, err := os.Getwd()
		if err != nil {
			return "", errors.Trace(err)
		}
		prefixDir = path.Join(absPrefix, prefixDir)
	}
	pngPath := path.Join(prefixDir, name+".png")
	return pngPath, errors.Trace(p.Save(vg.Points(10*w*float64(len(xNames)+1)), 3*vg.Inch, pngPath))
}
