package tableutil

import (
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

func NewTable(out io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(out)
	return t
}

// Tally counts the outcomes of one region's items.
type Tally struct {
	Region  string
	Done    int
	Skipped int
	Failed  int
}

// Summary accumulates tallies in the order regions are first seen.
type Summary struct {
	tallies []Tally
	index   map[string]int
}

func (s *Summary) tally(region string) *Tally {
	if s.index == nil {
		s.index = map[string]int{}
	}
	i, ok := s.index[region]
	if !ok {
		i = len(s.tallies)
		s.index[region] = i
		s.tallies = append(s.tallies, Tally{Region: region})
	}
	return &s.tallies[i]
}

// Touch registers a region without counting anything.
func (s *Summary) Touch(region string) { s.tally(region) }

func (s *Summary) AddDone(region string)    { s.tally(region).Done++ }
func (s *Summary) AddSkipped(region string) { s.tally(region).Skipped++ }
func (s *Summary) AddFailed(region string)  { s.tally(region).Failed++ }

func (s *Summary) Tallies() []Tally {
	return append([]Tally(nil), s.tallies...)
}

// Total sums every region.
func (s *Summary) Total() Tally {
	total := Tally{Region: "total"}
	for _, t := range s.tallies {
		total.Done += t.Done
		total.Skipped += t.Skipped
		total.Failed += t.Failed
	}
	return total
}

// Render writes the summary as a table, `doneLabel` names the
// success column (ex. "saved", "downloaded").
func (s *Summary) Render(out io.Writer, doneLabel string) {
	t := NewTable(out)
	t.AppendHeader(table.Row{"Region", doneLabel, "skipped", "failed"})
	for _, tally := range s.tallies {
		t.AppendRow(table.Row{tally.Region, tally.Done, tally.Skipped, tally.Failed})
	}
	total := s.Total()
	t.AppendFooter(table.Row{total.Region, total.Done, total.Skipped, total.Failed})
	t.Render()
}
