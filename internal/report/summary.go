package report

import (
	"io"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/NikitaCOEUR/looptimer/internal/derrors"
	"github.com/NikitaCOEUR/looptimer/internal/stats"
)

// SummaryData is the data passed to a summary template
type SummaryData struct {
	Timer      string
	Iterations int
	TotalMs    float64
	MeanMs     float64
	Steps      int
	Values     int
}

// NewSummaryData extracts summary fields from a timer's statistics
func NewSummaryData(timer string, agg *stats.Aggregate) SummaryData {
	data := SummaryData{
		Timer:      timer,
		Iterations: agg.Sampled,
		Steps:      len(agg.Steps()),
		Values:     len(agg.Values()),
	}
	if root, ok := agg.Step(stats.Root); ok {
		data.TotalMs = float64(root.Total) / float64(time.Millisecond)
		data.MeanMs = root.Mean() / float64(time.Millisecond)
	}
	return data
}

// Summary is a one-line template rendered after each report.
// Sprig functions are available, e.g. {{ .Timer | upper }} or {{ round .MeanMs 2 }}.
type Summary struct {
	text string
	tmpl *template.Template
}

// ParseSummary compiles a summary template. An empty text yields a nil Summary.
func ParseSummary(text string) (*Summary, error) {
	if text == "" {
		return nil, nil
	}
	tmpl, err := template.New("summary").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, derrors.NewTemplateError(text, "failed to parse summary template", err)
	}
	return &Summary{text: text, tmpl: tmpl}, nil
}

// Execute renders the summary followed by a newline. A nil Summary writes nothing.
func (s *Summary) Execute(w io.Writer, data SummaryData) error {
	if s == nil {
		return nil
	}
	if err := s.tmpl.Execute(w, data); err != nil {
		return derrors.NewTemplateError(s.text, "failed to render summary template", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}
