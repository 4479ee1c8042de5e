package layout

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

func releasePlan() diagram.Gantt {
	return diagram.Gantt{
		Sections: []diagram.Section{
			{Name: "Dev", Tasks: []diagram.Task{
				{ID: "a", Name: "Design", Start: "2024-01-01", Duration: "3d"},
				{ID: "b", Name: "Build", Start: "after a", Duration: "2d"},
				{Name: "Polish", Duration: "1w"},
			}},
			{Name: "QA", Tasks: []diagram.Task{
				{Name: "Test", Start: "2024-01-02", End: "2024-01-04"},
				{Name: "Release", Start: "after b", Status: []diagram.TaskStatus{diagram.StatusMilestone}},
			}},
		},
	}
}

func TestGanttChartCalendar(t *testing.T) {
	cfg := DefaultConfig()
	l := GanttChart(releasePlan(), cfg)

	if l.TimeAxis != TimeAxisCalendar || l.Origin != "2024-01-01" {
		t.Errorf("axis %q origin %q", l.TimeAxis, l.Origin)
	}
	wantDays := [][2]float64{{0, 3}, {3, 5}, {5, 12}, {1, 3}, {5, 5}}
	if len(l.Bars) != len(wantDays) {
		t.Fatalf("Bars = %d", len(l.Bars))
	}
	for i, want := range wantDays {
		if l.Bars[i].StartDay != want[0] || l.Bars[i].EndDay != want[1] {
			t.Errorf("bar %d (%s) = [%v, %v], want %v", i, l.Bars[i].Name, l.Bars[i].StartDay, l.Bars[i].EndDay, want)
		}
	}

	wantRects := []geom.Rect{
		geom.R(180, 48, 90, 24),
		geom.R(270, 80, 60, 24),
		geom.R(330, 112, 210, 24),
		geom.R(210, 152, 60, 24),
		geom.R(318, 184, 24, 24),
	}
	for i, want := range wantRects {
		if l.Bars[i].Rect != want {
			t.Errorf("bar %d rect = %+v, want %+v", i, l.Bars[i].Rect, want)
		}
	}

	release := l.Bars[4]
	if !release.Milestone || release.LabelInside || release.LabelRect.X != release.Rect.MaxX()+labelGap {
		t.Errorf("milestone = %+v", release)
	}
	if release.Color != "#e0a030" {
		t.Errorf("milestone color = %q", release.Color)
	}
	if !l.Bars[0].LabelInside {
		t.Error("Design fits inside its bar")
	}
	if l.Bars[0].Section != 0 || l.Bars[3].Section != 1 {
		t.Error("bars should record their section")
	}

	if len(l.Sections) != 2 {
		t.Fatalf("Sections = %+v", l.Sections)
	}
	if l.Sections[0].Rect != geom.R(20, 48, 520, 88) || l.Sections[1].Rect.Y != 152 {
		t.Errorf("section bands = %+v, %+v", l.Sections[0].Rect, l.Sections[1].Rect)
	}
	if l.Sections[0].Color != "#8a90dd" || l.Sections[1].Color != "#a0c4ff" {
		t.Errorf("section colors = %q, %q", l.Sections[0].Color, l.Sections[1].Color)
	}

	if len(l.Ticks) != 13 {
		t.Fatalf("Ticks = %d, want 13 daily ticks", len(l.Ticks))
	}
	if l.Ticks[0].Label != "Jan 01" || l.Ticks[12].Label != "Jan 13" {
		t.Errorf("tick labels = %q .. %q", l.Ticks[0].Label, l.Ticks[12].Label)
	}
	if l.Ticks[1].At != geom.Pt(210, 34) {
		t.Errorf("tick 1 at %v", l.Ticks[1].At)
	}

	if l.Size != (geom.Size{Width: 560, Height: 228}) {
		t.Errorf("Size = %+v", l.Size)
	}
	for _, b := range l.Bars {
		assertRectInCanvas(t, b.Name, b.Rect, l.Size)
		assertRectInCanvas(t, b.Name+" label", b.LabelRect, l.Size)
	}
}

func TestGanttChartOrdinal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GanttTimeAxis = TimeAxisOrdinal
	l := GanttChart(releasePlan(), cfg)

	if l.Origin != "" {
		t.Errorf("ordinal chart has origin %q", l.Origin)
	}
	wantDays := [][2]float64{{0, 3}, {1, 3}, {2, 9}, {3, 4}, {4, 4}}
	for i, want := range wantDays {
		if l.Bars[i].StartDay != want[0] || l.Bars[i].EndDay != want[1] {
			t.Errorf("bar %d = [%v, %v], want %v", i, l.Bars[i].StartDay, l.Bars[i].EndDay, want)
		}
	}
	if l.Ticks[0].Label != "0" || l.Ticks[len(l.Ticks)-1].Label != "9" {
		t.Errorf("ordinal tick labels = %q .. %q", l.Ticks[0].Label, l.Ticks[len(l.Ticks)-1].Label)
	}
}

func TestGanttChartDateFormat(t *testing.T) {
	g := diagram.Gantt{
		DateFormat: "DD/MM/YYYY",
		Sections: []diagram.Section{{Name: "S", Tasks: []diagram.Task{
			{ID: "x", Name: "X", Start: "15/03/2024", Duration: "1d"},
			{ID: "y", Name: "Y", Start: "10/03/2024", End: "12/03/2024"},
			{Name: "Z", Start: "After x y", Duration: "12h"},
			{Name: "W", Start: "after nobody", Duration: "1"},
		}}},
	}
	l := GanttChart(g, DefaultConfig())

	if l.Origin != "2024-03-10" {
		t.Errorf("Origin = %q, want earliest start", l.Origin)
	}
	wantDays := [][2]float64{{5, 6}, {0, 2}, {6, 6.5}, {6.5, 7.5}}
	for i, want := range wantDays {
		if l.Bars[i].StartDay != want[0] || l.Bars[i].EndDay != want[1] {
			t.Errorf("bar %d = [%v, %v], want %v", i, l.Bars[i].StartDay, l.Bars[i].EndDay, want)
		}
	}
}

func TestGanttChartUnparseableDates(t *testing.T) {
	g := diagram.Gantt{Sections: []diagram.Section{{Name: "S", Tasks: []diagram.Task{
		{Name: "one", Start: "someday"},
		{Name: "two", Duration: "2d"},
	}}}}
	l := GanttChart(g, DefaultConfig())
	if l.Origin != "" {
		t.Errorf("Origin = %q, want none", l.Origin)
	}
	if l.Bars[0].StartDay != 0 || l.Bars[0].EndDay != 1 || l.Bars[1].StartDay != 1 || l.Bars[1].EndDay != 3 {
		t.Errorf("bars = %+v", l.Bars)
	}
	if l.Ticks[0].Label != "0" {
		t.Errorf("tick label = %q", l.Ticks[0].Label)
	}
}

func TestGanttChartEmpty(t *testing.T) {
	l := GanttChart(diagram.Gantt{}, DefaultConfig())
	if l.Size != (geom.Size{Width: 40, Height: 40}) {
		t.Errorf("Size = %+v", l.Size)
	}
	if l.Bars == nil || l.Ticks == nil || l.Sections == nil {
		t.Error("empty chart should have non-nil slices")
	}

	empty := GanttChart(diagram.Gantt{Sections: []diagram.Section{{Name: "Later"}}}, DefaultConfig())
	if len(empty.Sections) != 1 || empty.Sections[0].Rect.Height != 24 || len(empty.Ticks) != 0 {
		t.Errorf("section without tasks = %+v", empty)
	}
}

func TestGanttSectionLabelTruncated(t *testing.T) {
	name := "A very long section name indeed"
	g := diagram.Gantt{Sections: []diagram.Section{{Name: name, Tasks: []diagram.Task{{Name: "t"}}}}}
	l := GanttChart(g, DefaultConfig())

	label := l.Sections[0].Label
	if !strings.HasSuffix(label, "…") || len(label) >= len(name) {
		t.Errorf("Label = %q, want truncated", label)
	}
	if l.Sections[0].Name != name {
		t.Errorf("Name = %q", l.Sections[0].Name)
	}
}

func TestTaskDuration(t *testing.T) {
	tests := []struct {
		duration string
		status   []diagram.TaskStatus
		want     float64
	}{
		{"3d", nil, 3},
		{"2w", nil, 14},
		{"12h", nil, 0.5},
		{"90m", nil, 90.0 / 1440},
		{"4", nil, 4},
		{"1.5d", nil, 1.5},
		{" 2 D ", nil, 2},
		{"", nil, 1},
		{"soon", nil, 1},
		{"5d", []diagram.TaskStatus{diagram.StatusMilestone}, 0},
		{"3000000d", nil, maxTaskDays},
		{"99999999999999999999d", nil, maxTaskDays},
		{"9999w", nil, maxTaskDays},
	}
	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			got := taskDuration(diagram.Task{Duration: tt.duration, Status: tt.status})
			if got != tt.want {
				t.Errorf("taskDuration(%q) = %v, want %v", tt.duration, got, tt.want)
			}
		})
	}
}

func TestGoDateLayout(t *testing.T) {
	tests := []struct {
		format, want string
	}{
		{"YYYY-MM-DD", "2006-01-02"},
		{"DD/MM/YYYY HH:mm", "02/01/2006 15:04"},
		{"YY.MM.DD HH:mm:ss", "06.01.02 15:04:05"},
	}
	for _, tt := range tests {
		if got := goDateLayout(tt.format); got != tt.want {
			t.Errorf("goDateLayout(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestTickStep(t *testing.T) {
	tests := []struct {
		span float64
		want int
	}{
		{1, 1}, {14, 1}, {15, 7}, {98, 7}, {99, 30}, {365, 30},
	}
	for _, tt := range tests {
		if got := tickStep(tt.span); got != tt.want {
			t.Errorf("tickStep(%v) = %d, want %d", tt.span, got, tt.want)
		}
	}
}

func TestTaskColor(t *testing.T) {
	cfg := DefaultConfig()
	s := func(statuses ...diagram.TaskStatus) diagram.Task { return diagram.Task{Status: statuses} }

	tests := []struct {
		name string
		task diagram.Task
		want string
	}{
		{"crit done", s(diagram.StatusDone, diagram.StatusCrit), cfg.GanttCritDoneColor},
		{"crit active", s(diagram.StatusCrit, diagram.StatusActive), cfg.GanttCritActiveColor},
		{"crit", s(diagram.StatusCrit), cfg.GanttCritColor},
		{"done", s(diagram.StatusDone), cfg.GanttDoneColor},
		{"active", s(diagram.StatusActive), cfg.GanttActiveColor},
		{"done milestone", s(diagram.StatusDone, diagram.StatusMilestone), cfg.GanttDoneColor},
		{"milestone", s(diagram.StatusMilestone), cfg.GanttMilestoneColor},
		{"plain", s(), cfg.GanttColorPalette[1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := taskColor(tt.task, 1, cfg); got != tt.want {
				t.Errorf("taskColor() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGanttChartBoundedAxis(t *testing.T) {
	tests := []struct {
		name  string
		tasks []diagram.Task
		span  float64
	}{
		{"huge duration", []diagram.Task{{Name: "Forever", Start: "2024-01-01", Duration: "99999999999999999999d"}}, maxTaskDays},
		{"large duration", []diagram.Task{{Name: "Long", Start: "2024-01-01", Duration: "3000000d"}}, maxTaskDays},
		{"chained durations", []diagram.Task{
			{Name: "One", Start: "2024-01-01", Duration: "99999d"},
			{Name: "Two", Duration: "99999d"},
		}, 2 * maxTaskDays},
		{"distant dates", []diagram.Task{
			{Name: "Early", Start: "0001-01-01", Duration: "1d"},
			{Name: "Late", Start: "9999-01-01", Duration: "1d"},
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			l := GanttChart(diagram.Gantt{Sections: []diagram.Section{{Name: "S", Tasks: tt.tasks}}}, cfg)

			if n := len(l.Ticks); n == 0 || n > maxTicks+1 {
				t.Errorf("ticks = %d, want 1..%d", n, maxTicks+1)
			}
			for i := 1; i < len(l.Ticks); i++ {
				if l.Ticks[i].Day <= l.Ticks[i-1].Day {
					t.Fatalf("ticks not increasing: %d then %d", l.Ticks[i-1].Day, l.Ticks[i].Day)
				}
			}
			last := l.Bars[len(l.Bars)-1]
			if tt.span > 0 && last.EndDay != tt.span {
				t.Errorf("last bar ends on day %v, want %v", last.EndDay, tt.span)
			}
			if math.IsInf(l.Size.Width, 0) || math.IsNaN(l.Size.Width) {
				t.Errorf("canvas width = %v", l.Size.Width)
			}
		})
	}
}

func TestGanttChartDistantDates(t *testing.T) {
	g := diagram.Gantt{Sections: []diagram.Section{{Name: "S", Tasks: []diagram.Task{
		{Name: "Early", Start: "1500-01-01", Duration: "1d"},
		{Name: "Late", Start: "2500-01-01", Duration: "1d"},
	}}}}
	l := GanttChart(g, DefaultConfig())

	early := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC)
	want := float64(late.Unix()-early.Unix()) / (24 * 60 * 60)
	if l.Bars[1].StartDay != want {
		t.Errorf("Late starts on day %v, want %v", l.Bars[1].StartDay, want)
	}
	if l.Origin != "1500-01-01" {
		t.Errorf("origin = %q", l.Origin)
	}
}

func TestGanttChartDuplicateIDFirstWins(t *testing.T) {
	g := diagram.Gantt{Sections: []diagram.Section{{Name: "S", Tasks: []diagram.Task{
		{ID: "a", Name: "First", Start: "2024-01-01", Duration: "2d"},
		{ID: "a", Name: "Second", Start: "2024-01-05", Duration: "7d"},
		{ID: "b", Name: "Next", Start: "after a", Duration: "1d"},
	}}}}
	l := GanttChart(g, DefaultConfig())
	if got := l.Bars[2].StartDay; got != 2 {
		t.Errorf("after a starts on day %v, want 2 (end of the first a)", got)
	}
}

func TestGanttChartDoesNotAliasInput(t *testing.T) {
	g := diagram.Gantt{Sections: []diagram.Section{{Name: "S", Tasks: []diagram.Task{
		{Name: "T", Duration: "1d", Status: []diagram.TaskStatus{diagram.StatusCrit}},
	}}}}
	l := GanttChart(g, DefaultConfig())
	g.Sections[0].Tasks[0].Status[0] = diagram.StatusDone
	if l.Bars[0].Status[0] != diagram.StatusCrit {
		t.Errorf("bar status changed with input: %v", l.Bars[0].Status)
	}
}
