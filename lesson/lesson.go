package lesson

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pingcap/errors"
	"github.com/sqlcoach/sqlcoach/store"
)

func logTime() string {
	str, err := time.Now().MarshalText()
	if err != nil {
		panic(err)
	}
	return string(str)
}

type LessonOpt struct {
	Name  string `toml:"name"`
	File  string `toml:"file"`
	Label string `toml:"label"`
}

type Option struct {
	Lessons   []LessonOpt    `toml:"lessons"`
	Instances []store.Option `toml:"instances"`
	ReportDir string         `toml:"report-dir"`
	MaxRows   int            `toml:"max-rows"`
}

// DecodeOption decodes option content.
func DecodeOption(content string) (Option, error) {
	var opt Option
	if _, err := toml.Decode(content, &opt); err != nil {
		return Option{}, errors.Trace(err)
	}
	if len(opt.Instances) == 0 {
		return Option{}, errors.New("no instances")
	}
	if len(opt.Lessons) == 0 {
		return Option{}, errors.New("no lessons")
	}
	for _, l := range opt.Lessons {
		if l.Name == "" && l.File == "" {
			return Option{}, errors.New("lesson without name or file")
		}
		if l.Name != "" {
			if _, ok := lessonMap[strings.ToLower(l.Name)]; !ok {
				return Option{}, errors.Errorf("unknown lesson=%v", l.Name)
			}
		}
	}
	if opt.MaxRows <= 0 {
		opt.MaxRows = 20
	}
	if opt.ReportDir == "" {
		opt.ReportDir = "report"
	}
	return opt, nil
}

// Lesson is one narrated example query.
type Lesson struct {
	Name  string
	Title string
	Note  string
	SQL   string
}

// ResolveLessons expands the configured lesson list into concrete lessons,
// in config order.
func ResolveLessons(opt Option) ([]Lesson, error) {
	lessons := make([]Lesson, 0, len(opt.Lessons))
	for _, lo := range opt.Lessons {
		var l Lesson
		if lo.Name != "" {
			l = lessonMap[strings.ToLower(lo.Name)]
		} else {
			var err error
			l, err = readLessonFile(lo.File)
			if err != nil {
				return nil, err
			}
		}
		if lo.Label != "" {
			l.Name = lo.Label
		}
		lessons = append(lessons, l)
	}
	return lessons, nil
}

// readLessonFile parses a .sql lesson file. Leading comment lines of the
// form "-- title: ..." and "-- note: ..." become the lesson's narration;
// everything after them is the statement.
func readLessonFile(path string) (Lesson, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Lesson{}, errors.Trace(err)
	}
	base := filepath.Base(path)
	l := Lesson{Name: strings.TrimSuffix(base, filepath.Ext(base))}
	var sqlLines []string
	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "-- title:"):
			l.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, "-- title:"))
		case strings.HasPrefix(trimmed, "-- note:"):
			note := strings.TrimSpace(strings.TrimPrefix(trimmed, "-- note:"))
			if l.Note == "" {
				l.Note = note
			} else {
				l.Note += " " + note
			}
		default:
			sqlLines = append(sqlLines, line)
		}
	}
	l.SQL = strings.TrimSpace(strings.Join(sqlLines, "\n"))
	if l.SQL == "" {
		return Lesson{}, errors.Errorf("%v: no SQL statement", path)
	}
	if l.Title == "" {
		l.Title = l.Name
	}
	return l, nil
}

// Result holds one lesson's outcome on one instance.
type Result struct {
	Lesson   Lesson
	InsLabel string
	Cols     []string
	Rows     [][]string
	Dur      time.Duration
}

func RunLessonsWithConfig(confPath string) error {
	confContent, err := os.ReadFile(confPath)
	if err != nil {
		return errors.Trace(err)
	}
	opt, err := DecodeOption(string(confContent))
	if err != nil {
		return err
	}
	lessons, err := ResolveLessons(opt)
	if err != nil {
		return err
	}

	instances, err := store.ConnectToInstances(opt.Instances)
	if err != nil {
		return err
	}
	defer func() {
		for _, ins := range instances {
			ins.Close()
		}
	}()

	results := make([][]Result, len(instances))
	for insIdx, ins := range instances {
		label := ins.Opt().Label
		for _, l := range lessons {
			begin := time.Now()
			cols, rows, err := store.QueryGrid(ins, l.SQL)
			if err != nil {
				return errors.Errorf("lesson %v on %v: %v", l.Name, label, err)
			}
			dur := time.Since(begin)
			results[insIdx] = append(results[insIdx], Result{Lesson: l, InsLabel: label, Cols: cols, Rows: rows, Dur: dur})
			fmt.Printf("[%s] lesson %v on %v: %d rows in %v.\n", logTime(), l.Name, label, len(rows), dur)
		}
	}

	return GenLessonReport(opt, lessons, results)
}
