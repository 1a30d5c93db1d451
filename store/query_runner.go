package store

import (
	"fmt"
	"time"

	"go.uber.org/atomic"
)

func logTime() string {
	str, err := time.Now().MarshalText()
	if err != nil {
		panic(err)
	}
	return string(str)
}

type SQLContainer interface {
	SQL() string
}

type PlainSQL string

func (s PlainSQL) SQL() string {
	return string(s)
}

type QueryTask struct {
	Payload SQLContainer
	Dest    chan<- *QueryResult
	Finish  chan<- struct{}
	Exited  bool
}

type QueryResult struct {
	Payload SQLContainer
	Cols    []string
	Rows    [][]string
	Dur     time.Duration
	Err     error
}

// StartQueryRunners connects to the instance and starts concurrency runner
// goroutines consuming tasks from inChan. Runners stop once every task
// sender has sent a task with Exited set.
func StartQueryRunners(opt Option, inChan chan *QueryTask, concurrency, nTaskSender, insID uint, initSQLs ...string) error {
	ins, err := ConnectTo(opt)
	if err != nil {
		return err
	}
	for _, s := range initSQLs {
		if err := ins.Exec(s); err != nil {
			ins.Close()
			return err
		}
	}
	nExitedSender := new(atomic.Uint64)
	for i := uint(0); i < concurrency; i++ {
		go queryRunner(ins, inChan, nExitedSender, nTaskSender, insID, i)
	}
	return nil
}

func queryRunner(ins Instance, inChan chan *QueryTask, nExitedSender *atomic.Uint64, nTaskSender, insID, runnerID uint) {
	for task := range inChan {
		if task == nil {
			continue
		}
		// This task sender has exited, so there will be no more tasks sent from the sender and no more results to the Dest.
		if task.Exited {
			nAfterInc := nExitedSender.Inc()
			if task.Dest != nil {
				close(task.Dest)
			}
			// All task senders have exited, there will not be more tasks, so close the inChan and exit.
			// This should only run once among all query runners.
			if nAfterInc == uint64(nTaskSender) {
				close(inChan)
				break
			}
			continue
		}
		begin := time.Now()
		cols, rows, err := QueryGrid(ins, task.Payload.SQL())
		dur := time.Since(begin)
		if dur > time.Second*3 {
			fmt.Printf("[%s] [SLOW-QUERY] Time cost: %v. SQL: %s\n", logTime(), dur, task.Payload.SQL())
		}
		task.Dest <- &QueryResult{Payload: task.Payload, Cols: cols, Rows: rows, Dur: dur, Err: err}
		if task.Finish != nil {
			task.Finish <- struct{}{}
		}
	}
	fmt.Printf("[%s] Query runner %d#%d exited.\n", logTime(), insID, runnerID)
}
