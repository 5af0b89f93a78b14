package ui

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/vanderheijden86/trellis/pkg/model"
)

// OutlineStats summarizes the loaded entry set for the footer and the
// insights overlay.
type OutlineStats struct {
	Total    int
	ByStatus map[model.Status]int
	ByKind   map[model.Kind]int

	MeanPriority float64
	SizeTotal    int64
	SizeP50      float64
	SizeP90      float64
}

// ComputeStats derives distribution stats over the entries. Size quantiles
// only consider entries that carry a size.
func ComputeStats(entries []model.Entry) OutlineStats {
	s := OutlineStats{
		Total:    len(entries),
		ByStatus: make(map[model.Status]int),
		ByKind:   make(map[model.Kind]int),
	}
	if len(entries) == 0 {
		return s
	}

	prios := make([]float64, 0, len(entries))
	sizes := make([]float64, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		s.ByStatus[e.Status]++
		s.ByKind[e.Kind]++
		prios = append(prios, float64(e.Priority))
		if e.Size > 0 {
			s.SizeTotal += e.Size
			sizes = append(sizes, float64(e.Size))
		}
	}

	s.MeanPriority = stat.Mean(prios, nil)
	if len(sizes) > 0 {
		sort.Float64s(sizes)
		s.SizeP50 = stat.Quantile(0.5, stat.Empirical, sizes, nil)
		s.SizeP90 = stat.Quantile(0.9, stat.Empirical, sizes, nil)
	}
	return s
}

// FooterSummary renders the one-line stats strip for the footer.
func (s OutlineStats) FooterSummary() string {
	if s.Total == 0 {
		return "empty outline"
	}
	parts := []string{fmt.Sprintf("%d entries", s.Total)}
	if n := s.ByStatus[model.StatusActive]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d active", n))
	}
	if n := s.ByStatus[model.StatusBlocked]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d blocked", n))
	}
	if n := s.ByStatus[model.StatusDone]; n > 0 {
		parts = append(parts, fmt.Sprintf("%d done", n))
	}
	if s.SizeTotal > 0 {
		parts = append(parts, FormatSize(s.SizeTotal))
	}
	return strings.Join(parts, " · ")
}

// Markdown renders the insights overlay document.
func (s OutlineStats) Markdown() string {
	var sb strings.Builder
	sb.WriteString("# Outline Insights\n\n")
	if s.Total == 0 {
		sb.WriteString("No entries loaded.\n")
		return sb.String()
	}

	fmt.Fprintf(&sb, "**%d** entries, mean priority **P%.1f**\n\n", s.Total, s.MeanPriority)

	sb.WriteString("## Status\n\n")
	sb.WriteString("| Status | Count |\n|---|---|\n")
	for _, st := range []model.Status{model.StatusTodo, model.StatusActive, model.StatusBlocked, model.StatusDone} {
		if n := s.ByStatus[st]; n > 0 {
			fmt.Fprintf(&sb, "| %s | %d |\n", st, n)
		}
	}

	sb.WriteString("\n## Kind\n\n")
	sb.WriteString("| Kind | Count |\n|---|---|\n")
	for _, k := range []model.Kind{model.KindGroup, model.KindTask, model.KindNote, model.KindLink} {
		if n := s.ByKind[k]; n > 0 {
			fmt.Fprintf(&sb, "| %s | %d |\n", k, n)
		}
	}

	if s.SizeTotal > 0 {
		sb.WriteString("\n## Size\n\n")
		fmt.Fprintf(&sb, "- total: %s\n", FormatSize(s.SizeTotal))
		fmt.Fprintf(&sb, "- p50: %s\n", FormatSize(int64(s.SizeP50)))
		fmt.Fprintf(&sb, "- p90: %s\n", FormatSize(int64(s.SizeP90)))
	}
	return sb.String()
}
