package termui

import (
	"context"
	"fmt"
	"sync"

	"github.com/ralim/listcreation/history"
	"github.com/rivo/tview"
)

// Tracks list creation outcomes
// Used to show an info panel at the bottom of the screen

type Statistics struct {
	sync.Mutex
	TotalCreated int
	TotalExisted int
	TotalFailed  int

	table  *tview.Table
	parent *TermUI
}

func (s *Statistics) Redraw() {
	s.Lock()
	created := fmt.Sprintf("%d", s.TotalCreated)
	existed := fmt.Sprintf("%d", s.TotalExisted)
	failed := fmt.Sprintf("%d", s.TotalFailed)
	s.Unlock()
	s.parent.queueDraw(func() {
		s.table.SetCellSimple(0, 1, created)
		s.table.SetCellSimple(1, 1, existed)
		s.table.SetCellSimple(2, 1, failed)
	})
}

// Record counts a finished list creation pass
func (s *Statistics) Record(ctx context.Context, attempt *history.Attempt) error {
	s.Lock()
	switch attempt.Outcome {
	case history.OutcomeCreated:
		s.TotalCreated++
	case history.OutcomeExists:
		s.TotalExisted++
	default:
		s.TotalFailed++
	}
	s.Unlock()
	s.Redraw()
	return nil
}

func newStatistics(parent *TermUI) *Statistics {
	s := &Statistics{parent: parent}

	s.table = tview.NewTable()
	s.table.SetBorders(true)
	s.table.SetTitle("Statistics")
	s.table.SetFixed(0, 1)
	s.table.SetCellSimple(0, 0, "Lists created")
	s.table.SetCellSimple(0, 1, "0")
	s.table.SetCellSimple(1, 0, "Already existed")
	s.table.SetCellSimple(1, 1, "0")
	s.table.SetCellSimple(2, 0, "Failed")
	s.table.SetCellSimple(2, 1, "0")
	return s
}
