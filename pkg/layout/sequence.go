package layout

import (
	"github.com/matzehuels/diagramlayout/pkg/diagram"
	"github.com/matzehuels/diagramlayout/pkg/geom"
)

// ParticipantBox is a positioned sequence participant. Header is the box at
// the top of the lifeline; Footer mirrors it at the bottom.
type ParticipantBox struct {
	ID             string    `json:"id"`
	Label          string    `json:"label"`
	Actor          bool      `json:"actor,omitempty"`
	Header         geom.Rect `json:"header"`
	Footer         geom.Rect `json:"footer"`
	LifelineX      float64   `json:"lifeline_x"`
	LifelineTop    float64   `json:"lifeline_top"`
	LifelineBottom float64   `json:"lifeline_bottom"`
	Style          Style     `json:"style"`
	Lifeline       Style     `json:"lifeline"`
}

// MessagePath is a positioned sequence message.
type MessagePath struct {
	// Index is the position of the message in the input list.
	Index int `json:"index"`
	// Number is the 1-based message number when autonumbering is on.
	Number  int               `json:"number,omitempty"`
	From    string            `json:"from"`
	To      string            `json:"to"`
	Text    string            `json:"text,omitempty"`
	Line    diagram.LineStyle `json:"line"`
	Arrow   diagram.ArrowHead `json:"arrow"`
	Y       float64           `json:"y"`
	Points  []geom.Point      `json:"points"`
	LabelAt geom.Point        `json:"label_at"`
	Self    bool              `json:"self,omitempty"`
	Style   Style             `json:"style"`
}

// SequenceLayout is the positioned form of a [diagram.Sequence].
type SequenceLayout struct {
	Title        string           `json:"title,omitempty"`
	TitleAt      *geom.Point      `json:"title_at,omitempty"`
	Background   string           `json:"background"`
	Participants []ParticipantBox `json:"participants"`
	Messages     []MessagePath    `json:"messages"`
	Size         geom.Size        `json:"size"`
}

// Sequence lays out a sequence chart.
//
// Participants sit left to right, each ParticipantSpacing apart. Messages
// stack top to bottom in input order, MessageSpacing apart, and span the
// lifelines of their endpoints. A message to self becomes a small loop to
// the right of the lifeline. Messages naming unknown participants are
// dropped; duplicate participant ids keep the first.
func Sequence(s diagram.Sequence, cfg Config) SequenceLayout {
	org := origin(cfg, s.Title)

	index := make(map[string]int, len(s.Participants))
	var parts []diagram.Participant
	for _, p := range s.Participants {
		if p.ID == "" {
			continue
		}
		if _, dup := index[p.ID]; dup {
			continue
		}
		index[p.ID] = len(parts)
		parts = append(parts, p)
	}

	type kept struct {
		index int
		msg   diagram.Message
	}
	var msgs []kept
	for i, m := range s.Messages {
		_, okFrom := index[m.From]
		_, okTo := index[m.To]
		if okFrom && okTo {
			msgs = append(msgs, kept{index: i, msg: m})
		}
	}

	top := org.Y + cfg.ParticipantHeight
	bottom := top + float64(len(msgs)+1)*cfg.MessageSpacing

	out := SequenceLayout{
		Title:        s.Title,
		Background:   normalizeColor(cfg.BackgroundColor),
		Participants: make([]ParticipantBox, 0, len(parts)),
		Messages:     make([]MessagePath, 0, len(msgs)),
	}

	style := nodeStyle(cfg)
	lifeline := Style{
		Stroke:      normalizeColor(cfg.LifelineColor),
		StrokeWidth: cfg.LineWidth,
		Dash:        "3 3",
	}
	for i, p := range parts {
		x := org.X + float64(i)*(cfg.ParticipantWidth+cfg.ParticipantSpacing)
		out.Participants = append(out.Participants, ParticipantBox{
			ID:             p.ID,
			Label:          p.DisplayLabel(),
			Actor:          p.Actor,
			Header:         geom.R(x, org.Y, cfg.ParticipantWidth, cfg.ParticipantHeight),
			Footer:         geom.R(x, bottom, cfg.ParticipantWidth, cfg.ParticipantHeight),
			LifelineX:      x + cfg.ParticipantWidth/2,
			LifelineTop:    top,
			LifelineBottom: bottom,
			Style:          style,
			Lifeline:       lifeline,
		})
	}

	loopWidth := cfg.ParticipantWidth / 2
	loopHeight := cfg.MessageSpacing / 2
	for i, k := range msgs {
		m := k.msg
		y := top + float64(i+1)*cfg.MessageSpacing
		fromX := out.Participants[index[m.From]].LifelineX
		toX := out.Participants[index[m.To]].LifelineX

		line, arrow := m.Line, m.Arrow
		if line == "" {
			line = diagram.LineSolid
		}
		if arrow == "" {
			arrow = diagram.ArrowNormal
		}
		path := MessagePath{
			Index: k.index,
			From:  m.From,
			To:    m.To,
			Text:  m.Text,
			Line:  line,
			Arrow: arrow,
			Y:     y,
			Style: edgeStyle(cfg, line),
		}
		path.Style.Stroke = normalizeColor(cfg.ArrowColor)
		if s.Autonumber {
			path.Number = i + 1
		}

		if m.From == m.To {
			path.Self = true
			path.Points = []geom.Point{
				geom.Pt(fromX, y),
				geom.Pt(fromX+loopWidth, y),
				geom.Pt(fromX+loopWidth, y+loopHeight),
				geom.Pt(fromX, y+loopHeight),
			}
			path.LabelAt = geom.Pt(fromX+loopWidth/2, y-cfg.FontSize)
		} else {
			path.Points = []geom.Point{geom.Pt(fromX, y), geom.Pt(toX, y)}
			path.LabelAt = geom.Pt((fromX+toX)/2, y-cfg.FontSize)
		}
		out.Messages = append(out.Messages, path)
	}

	out.Size, out.TitleAt = fitCanvas(&out, cfg, s.Title)
	return out
}

func (l *SequenceLayout) extent(b *geom.Bounds) {
	for _, p := range l.Participants {
		b.AddRect(p.Header)
		b.AddRect(p.Footer)
	}
	for _, m := range l.Messages {
		b.AddPoints(m.Points)
		b.AddPoint(m.LabelAt)
	}
}

func (l *SequenceLayout) translate(dx, dy float64) {
	for i := range l.Participants {
		p := &l.Participants[i]
		p.Header = p.Header.Translate(dx, dy)
		p.Footer = p.Footer.Translate(dx, dy)
		p.LifelineX += dx
		p.LifelineTop += dy
		p.LifelineBottom += dy
	}
	for i := range l.Messages {
		m := &l.Messages[i]
		m.Y += dy
		translatePoints(m.Points, dx, dy)
		m.LabelAt = m.LabelAt.Add(dx, dy)
	}
}
