// Package report renders analysis results as styled text, JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/pombase/pombase-gocam-tool/internal/models"
)

const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Formats lists the accepted output formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatYAML}
}

// Emitter writes results to w in one format. Text output sorts every map
// by key so repeated runs print identical bytes.
type Emitter struct {
	format string
	w      io.Writer
	styles styles
}

type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	kind    lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")),
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#6C7086")),
		kind:    r.NewStyle().Foreground(lipgloss.Color("#F38BA8")),
		ok:      r.NewStyle().Foreground(lipgloss.Color("#A6E3A1")),
	}
}

func NewEmitter(format string, w io.Writer) (*Emitter, error) {
	if !slices.Contains(Formats(), format) {
		return nil, fmt.Errorf("unknown output format %q (want one of %s)", format, strings.Join(Formats(), ", "))
	}
	return &Emitter{format: format, w: w, styles: newStyles(w)}, nil
}

type findingsDoc struct {
	ModelID  string           `json:"model_id" yaml:"model_id"`
	Title    string           `json:"title" yaml:"title"`
	Findings []models.Finding `json:"findings" yaml:"findings"`
}

func (e *Emitter) Findings(modelID, title string, findings []models.Finding) error {
	if findings == nil {
		findings = []models.Finding{}
	}
	switch e.format {
	case FormatJSON:
		return e.json(findingsDoc{ModelID: modelID, Title: title, Findings: findings})
	case FormatYAML:
		return e.yaml(findingsDoc{ModelID: modelID, Title: title, Findings: findings})
	}
	e.header(modelID, title)
	e.findingsText(findings)
	return nil
}

func (e *Emitter) Stats(s models.StatsSummary) error {
	switch e.format {
	case FormatJSON:
		return e.json(s)
	case FormatYAML:
		return e.yaml(s)
	}
	e.header(s.ModelID, "")
	e.statsText(s)
	return nil
}

func (e *Emitter) Report(r *models.Report) error {
	switch e.format {
	case FormatJSON:
		return e.json(r)
	case FormatYAML:
		return e.yaml(r)
	}
	e.header(r.ModelID, r.Title)
	e.findingsText(r.Findings)
	fmt.Fprintln(e.w)
	e.statsText(r.Stats)
	return nil
}

type activityDoc struct {
	Activity models.Activity     `json:"activity" yaml:"activity"`
	Incoming []models.CausalEdge `json:"incoming" yaml:"incoming"`
	Outgoing []models.CausalEdge `json:"outgoing" yaml:"outgoing"`
}

// Activity prints one activity with the edges touching it.
func (e *Emitter) Activity(a models.Activity, incoming, outgoing []models.CausalEdge) error {
	if incoming == nil {
		incoming = []models.CausalEdge{}
	}
	if outgoing == nil {
		outgoing = []models.CausalEdge{}
	}
	switch e.format {
	case FormatJSON:
		return e.json(activityDoc{Activity: a, Incoming: incoming, Outgoing: outgoing})
	case FormatYAML:
		return e.yaml(activityDoc{Activity: a, Incoming: incoming, Outgoing: outgoing})
	}

	fmt.Fprintln(e.w, e.styles.title.Render(a.ID))
	e.row("molecular function", termOrDash(a.MolecularFunction))
	enabler := a.EnabledBy
	if a.EnablerLabel != "" {
		enabler = a.EnablerLabel + " (" + a.EnabledBy + ")"
	}
	if enabler == "" {
		enabler = "-"
	}
	e.row("enabled by", enabler)
	e.row("enabler kind", string(a.EnablerKind))
	if a.PartOf != nil {
		e.row("part of", a.PartOf.String())
	}
	for _, group := range []struct {
		name  string
		terms []models.Term
	}{
		{"located in", a.LocatedIn},
		{"occurs in", a.OccursIn},
		{"has input", a.HasInput},
		{"has output", a.HasOutput},
	} {
		for _, t := range group.terms {
			e.row(group.name, t.String())
		}
	}

	fmt.Fprintln(e.w, e.styles.heading.Render("incoming"))
	for _, edge := range incoming {
		fmt.Fprintf(e.w, "  %s <-[%s]-\n", edge.Subject, termOrDash(edge.Relation))
	}
	fmt.Fprintln(e.w, e.styles.heading.Render("outgoing"))
	for _, edge := range outgoing {
		fmt.Fprintf(e.w, "  -[%s]-> %s\n", termOrDash(edge.Relation), edge.Object)
	}
	return nil
}

// Tuples writes one tab-separated row per fact: model id, title, subject
// label, subject id, property label, object label and object id. Facts
// whose endpoints are missing or untyped are skipped. When ids repeat the
// first individual wins, as with Document.Individual.
func Tuples(w io.Writer, doc *models.Document) error {
	individuals := make(map[string]*models.Individual, len(doc.Individuals))
	for i := range doc.Individuals {
		ind := &doc.Individuals[i]
		if _, seen := individuals[ind.ID]; !seen {
			individuals[ind.ID] = ind
		}
	}

	title := doc.Title()
	for _, f := range doc.Facts {
		subject, ok := individuals[f.Subject]
		if !ok || len(subject.Types) == 0 {
			continue
		}
		object, ok := individuals[f.Object]
		if !ok || len(object.Types) == 0 {
			continue
		}
		st, ot := subject.PrimaryType(), object.PrimaryType()
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			doc.ID, title,
			st.Label, typeID(st),
			f.PropertyLabel,
			ot.Label, typeID(ot)); err != nil {
			return err
		}
	}
	return nil
}

func typeID(t models.IndividualType) string {
	if t.ID != "" {
		return t.ID
	}
	return t.Type
}

func (e *Emitter) json(v any) error {
	enc := json.NewEncoder(e.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (e *Emitter) yaml(v any) error {
	enc := yaml.NewEncoder(e.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (e *Emitter) header(modelID, title string) {
	line := e.styles.title.Render(modelID)
	if title != "" {
		line += " " + e.styles.muted.Render(title)
	}
	fmt.Fprintln(e.w, line)
}

func (e *Emitter) findingsText(findings []models.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(e.w, e.styles.ok.Render("no holes found"))
		return
	}

	idWidth := 0
	for _, f := range findings {
		idWidth = max(idWidth, lipgloss.Width(f.ActivityID))
	}
	idCol := e.styles.heading.Width(idWidth + 2)
	kindCol := e.styles.kind.Width(len("DanglingEdgeReference") + 2)

	for _, f := range findings {
		fmt.Fprintf(e.w, "  %s%s%s\n",
			idCol.Render(f.ActivityID),
			kindCol.Render(f.Kind.String()),
			f.Detail)
	}
	fmt.Fprintln(e.w, e.styles.muted.Render(plural(len(findings), "finding")))
}

func (e *Emitter) statsText(s models.StatsSummary) {
	e.row("activities", strconv.Itoa(s.ActivityCount))
	e.row("edges", strconv.Itoa(s.EdgeCount))
	e.row("components", strconv.Itoa(s.ComponentCount))

	e.tally("activities by function", s.ActivitiesByFunction)
	e.tally("activities by enabler kind", s.ActivitiesByEnablerKind)
	e.tally("activities by location", s.ActivitiesByLocation)
	e.tally("activities by process", s.ActivitiesByProcess)
	e.tally("edges by relation", s.EdgesByRelation)
	e.histogram("in-degree", s.InDegree)
	e.histogram("out-degree", s.OutDegree)
}

func (e *Emitter) row(name, value string) {
	fmt.Fprintf(e.w, "%s %s\n", e.styles.heading.Width(20).Render(name), value)
}

func (e *Emitter) tally(name string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(e.w, e.styles.heading.Render(name))
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(e.w, "  %s\t%d\n", k, counts[k])
	}
}

func (e *Emitter) histogram(name string, counts map[int]int) {
	if len(counts) == 0 {
		return
	}
	fmt.Fprintln(e.w, e.styles.heading.Render(name))
	keys := make([]int, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		fmt.Fprintf(e.w, "  %d\t%d\n", k, counts[k])
	}
}

func termOrDash(t models.Term) string {
	if s := t.String(); s != "" {
		return s
	}
	return "-"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return strconv.Itoa(n) + " " + noun + "s"
}
