package layout

import (
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// SectionBand is a positioned Gantt section: a full-width band behind its
// tasks with the (possibly truncated) section name in the label column.
type SectionBand struct {
	Name    string     `json:"name"`
	Label   string     `json:"label"`
	Rect    geom.Rect  `json:"rect"`
	LabelAt geom.Point `json:"label_at"`
	Color   string     `json:"color"`
}

// TaskBar is a positioned Gantt task. StartDay and EndDay are offsets in
// days from the chart origin. Milestones are squares centred on StartDay.
type TaskBar struct {
	ID          string               `json:"id,omitempty"`
	Name        string               `json:"name"`
	Section     int                  `json:"section"`
	Status      []diagram.TaskStatus `json:"status,omitempty"`
	Milestone   bool                 `json:"milestone,omitempty"`
	StartDay    float64              `json:"start_day"`
	EndDay      float64              `json:"end_day"`
	Rect        geom.Rect            `json:"rect"`
	Color       string               `json:"color"`
	TextColor   string               `json:"text_color"`
	LabelRect   geom.Rect            `json:"label_rect"`
	LabelInside bool                 `json:"label_inside,omitempty"`
}

// AxisTick is a labelled mark on the time axis.
type AxisTick struct {
	Day   int        `json:"day"`
	Label string     `json:"label"`
	At    geom.Point `json:"at"`
}

// GanttLayout is the positioned form of a [diagram.Gantt].
type GanttLayout struct {
	Title      string      `json:"title,omitempty"`
	TitleAt    *geom.Point `json:"title_at,omitempty"`
	Background string      `json:"background"`
	TimeAxis   TimeAxis    `json:"time_axis"`
	// Origin is the date of day 0 in "2006-01-02" form. It is empty for
	// ordinal charts and for charts without any parseable date.
	Origin   string        `json:"origin,omitempty"`
	Sections []SectionBand `json:"sections"`
	Bars     []TaskBar     `json:"bars"`
	Ticks    []AxisTick    `json:"ticks"`
	Size     geom.Size     `json:"size"`
}

const (
	defaultDateFormat = "YYYY-MM-DD"
	labelGap          = 4
	minBarWidth       = 2
	afterPrefix       = "after "

	// maxTaskDays caps a single task's duration at roughly a century.
	maxTaskDays = 36500
	// maxTicks bounds the axis regardless of the chart's span.
	maxTicks = 60
)

// GanttChart lays out a Gantt chart.
//
// Sections stack vertically, GanttSectionSpacing apart; tasks stack inside
// their section one bar per row. Horizontal placement depends on
// cfg.GanttTimeAxis:
//
//   - calendar (default): tasks are scheduled in document order from their
//     start dates, "after" dependencies, explicit end dates and durations.
//     A task without a usable start follows the previous task.
//   - ordinal: task k starts on day k regardless of dates.
//
// Bar color follows status: crit+done, crit+active, crit, done, active,
// milestone, otherwise the section's palette color.
func GanttChart(g diagram.Gantt, cfg Config) GanttLayout {
	axis := cfg.GanttTimeAxis
	if axis == "" {
		axis = TimeAxisCalendar
	}
	out := GanttLayout{
		Title:      g.Title,
		Background: normalizeColor(cfg.BackgroundColor),
		TimeAxis:   axis,
		Sections:   []SectionBand{},
		Bars:       []TaskBar{},
		Ticks:      []AxisTick{},
	}

	spans, originDate := schedule(g, axis)
	if !originDate.IsZero() {
		out.Origin = originDate.Format(time.DateOnly)
	}

	var span float64
	var tasks int
	for _, sec := range spans {
		for _, s := range sec {
			span = math.Max(span, s.end)
			tasks++
		}
	}
	if tasks > 0 {
		span = math.Max(math.Ceil(span), 1)
	}

	org := origin(cfg, g.Title)
	axisBand := 2 * cfg.FontSize
	chartX := org.X + cfg.GanttLabelWidth
	width := cfg.GanttLabelWidth + span*cfg.GanttDayWidth
	barH, barGap := cfg.GanttBarHeight, cfg.GanttBarSpacing

	y := org.Y + axisBand
	for si, sec := range g.Sections {
		rows := max(1, len(sec.Tasks))
		height := float64(rows)*barH + float64(rows-1)*barGap
		band := geom.R(org.X, y, width, height)
		color := paletteColor(cfg.GanttColorPalette, si, cfg.NodeColor)
		out.Sections = append(out.Sections, SectionBand{
			Name:    sec.Name,
			Label:   truncateText(sec.Name, cfg.GanttLabelWidth-cfg.FontSize, cfg.FontSize),
			Rect:    band,
			LabelAt: geom.Pt(org.X+cfg.FontSize/2, band.CenterY()),
			Color:   color,
		})

		for ti, task := range sec.Tasks {
			s := spans[si][ti]
			rowY := y + float64(ti)*(barH+barGap)
			x := chartX + s.start*cfg.GanttDayWidth

			bar := TaskBar{
				ID:        task.ID,
				Name:      task.Name,
				Section:   si,
				Status:    slices.Clone(task.Status),
				Milestone: task.Has(diagram.StatusMilestone),
				StartDay:  s.start,
				EndDay:    s.end,
				Color:     taskColor(task, si, cfg),
			}
			if bar.Milestone {
				bar.Rect = geom.R(x-barH/2, rowY, barH, barH)
			} else {
				bar.Rect = geom.R(x, rowY, math.Max((s.end-s.start)*cfg.GanttDayWidth, minBarWidth), barH)
			}

			tw := textWidth(task.Name, cfg.FontSize)
			if !bar.Milestone && tw+2*labelGap <= bar.Rect.Width {
				bar.LabelInside = true
				bar.LabelRect = geom.R(bar.Rect.CenterX()-tw/2, rowY, tw, barH)
				bar.TextColor = contrastText(bar.Color)
			} else {
				bar.LabelRect = geom.R(bar.Rect.MaxX()+labelGap, rowY, tw, barH)
				bar.TextColor = normalizeColor(cfg.TextColor)
			}
			out.Bars = append(out.Bars, bar)
		}
		y += height + cfg.GanttSectionSpacing
	}

	if tasks > 0 {
		step := max(tickStep(span), int(math.Ceil(span/maxTicks)))
		for i := 0; i <= maxTicks; i++ {
			d := i * step
			if float64(d) > span {
				break
			}
			label := strconv.Itoa(d)
			if !originDate.IsZero() {
				label = originDate.AddDate(0, 0, d).Format("Jan 02")
			}
			out.Ticks = append(out.Ticks, AxisTick{
				Day:   d,
				Label: label,
				At:    geom.Pt(chartX+float64(d)*cfg.GanttDayWidth, org.Y+axisBand/2),
			})
		}
	}

	out.Size, out.TitleAt = fitCanvas(&out, cfg, g.Title)
	return out
}

func tickStep(span float64) int {
	switch {
	case span <= 14:
		return 1
	case span <= 98:
		return 7
	default:
		return 30
	}
}

func taskColor(t diagram.Task, section int, cfg Config) string {
	crit := t.Has(diagram.StatusCrit)
	done := t.Has(diagram.StatusDone)
	active := t.Has(diagram.StatusActive)
	switch {
	case crit && done:
		return normalizeColor(cfg.GanttCritDoneColor)
	case crit && active:
		return normalizeColor(cfg.GanttCritActiveColor)
	case crit:
		return normalizeColor(cfg.GanttCritColor)
	case done:
		return normalizeColor(cfg.GanttDoneColor)
	case active:
		return normalizeColor(cfg.GanttActiveColor)
	case t.Has(diagram.StatusMilestone):
		return normalizeColor(cfg.GanttMilestoneColor)
	default:
		return paletteColor(cfg.GanttColorPalette, section, cfg.NodeColor)
	}
}

// taskSpan is a task's [start, end) in days from day 0.
type taskSpan struct {
	start, end float64
}

// schedule computes every task's span, indexed like g.Sections[i].Tasks[j].
// Spans are shifted so the earliest start is day 0. The returned date is day
// 0 for calendar charts with at least one parseable date, else zero.
func schedule(g diagram.Gantt, axis TimeAxis) ([][]taskSpan, time.Time) {
	spans := make([][]taskSpan, len(g.Sections))
	if axis == TimeAxisOrdinal {
		k := 0
		for si, sec := range g.Sections {
			spans[si] = make([]taskSpan, len(sec.Tasks))
			for ti, task := range sec.Tasks {
				d := taskDuration(task)
				spans[si][ti] = taskSpan{start: float64(k), end: float64(k) + d}
				k++
			}
		}
		return spans, time.Time{}
	}

	format := g.DateFormat
	if format == "" {
		format = defaultDateFormat
	}
	layout := goDateLayout(format)

	var anchor time.Time
	for _, sec := range g.Sections {
		for _, task := range sec.Tasks {
			if t, err := time.Parse(layout, strings.TrimSpace(task.Start)); err == nil {
				anchor = t
				break
			}
		}
		if !anchor.IsZero() {
			break
		}
	}
	days := func(t time.Time) float64 { return float64(t.Unix()-anchor.Unix()) / secondsPerDay }

	ends := make(map[string]float64)
	var prevEnd float64
	minStart := math.Inf(1)
	for si, sec := range g.Sections {
		spans[si] = make([]taskSpan, len(sec.Tasks))
		for ti, task := range sec.Tasks {
			start := prevEnd
			raw := strings.TrimSpace(task.Start)
			if len(raw) > len(afterPrefix) && strings.EqualFold(raw[:len(afterPrefix)], afterPrefix) {
				latest := math.Inf(-1)
				for _, id := range strings.Fields(raw[len(afterPrefix):]) {
					if e, ok := ends[id]; ok {
						latest = math.Max(latest, e)
					}
				}
				if !math.IsInf(latest, -1) {
					start = latest
				}
			} else if t, err := time.Parse(layout, raw); err == nil {
				start = days(t)
			}

			end := start + taskDuration(task)
			if task.End != "" && !task.Has(diagram.StatusMilestone) {
				if t, err := time.Parse(layout, strings.TrimSpace(task.End)); err == nil {
					end = math.Max(days(t), start)
				}
			}

			spans[si][ti] = taskSpan{start: start, end: end}
			if _, seen := ends[task.ID]; task.ID != "" && !seen {
				ends[task.ID] = end
			}
			prevEnd = end
			minStart = math.Min(minStart, start)
		}
	}

	if math.IsInf(minStart, 1) {
		return spans, time.Time{}
	}
	for si := range spans {
		for ti := range spans[si] {
			spans[si][ti].start -= minStart
			spans[si][ti].end -= minStart
		}
	}
	if anchor.IsZero() {
		return spans, time.Time{}
	}
	return spans, time.Unix(anchor.Unix()+int64(math.Round(minStart*secondsPerDay)), 0).UTC()
}

const secondsPerDay = 24 * 60 * 60

var durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([mhdw]?)$`)

// taskDuration parses "3d", "2w", "12h", "90m" or a bare number of days.
// Milestones last zero days; anything unparseable lasts one day. Durations
// are capped at maxTaskDays.
func taskDuration(t diagram.Task) float64 {
	if t.Has(diagram.StatusMilestone) {
		return 0
	}
	m := durationPattern.FindStringSubmatch(strings.TrimSpace(strings.ToLower(t.Duration)))
	if m == nil {
		return 1
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 1
	}
	switch m[2] {
	case "m":
		n /= 24 * 60
	case "h":
		n /= 24
	case "w":
		n *= 7
	}
	return math.Min(n, maxTaskDays)
}

var dateTokens = strings.NewReplacer(
	"YYYY", "2006",
	"YY", "06",
	"MM", "01",
	"DD", "02",
	"HH", "15",
	"mm", "04",
	"ss", "05",
)

// goDateLayout translates a YYYY-MM-DD style date format to a Go time
// layout.
func goDateLayout(format string) string {
	return dateTokens.Replace(format)
}

func (l *GanttLayout) extent(b *geom.Bounds) {
	for _, s := range l.Sections {
		b.AddRect(s.Rect)
	}
	for _, bar := range l.Bars {
		b.AddRect(bar.Rect)
		b.AddRect(bar.LabelRect)
	}
	for _, t := range l.Ticks {
		b.AddPoint(t.At)
	}
}

func (l *GanttLayout) translate(dx, dy float64) {
	for i := range l.Sections {
		l.Sections[i].Rect = l.Sections[i].Rect.Translate(dx, dy)
		l.Sections[i].LabelAt = l.Sections[i].LabelAt.Add(dx, dy)
	}
	for i := range l.Bars {
		l.Bars[i].Rect = l.Bars[i].Rect.Translate(dx, dy)
		l.Bars[i].LabelRect = l.Bars[i].LabelRect.Translate(dx, dy)
	}
	for i := range l.Ticks {
		l.Ticks[i].At = l.Ticks[i].At.Add(dx, dy)
	}
}
