// Package validate checks generated dashboards and rules: every PromQL
// expression must parse and may only reference known metrics.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/prometheus/model/labels"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/awb-tracker/tools/dashgen/rules"
)

// Result collects validation problems. Errors fail generation, warnings do not.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether there are no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// histogramSuffixes are the series a histogram exposes beyond its base name.
var histogramSuffixes = []string{"_bucket", "_count", "_sum"}

// MetricNames parses expr and returns the metric names it selects, sorted.
func MetricNames(expr string) ([]string, error) {
	node, err := parser.ParseExpr(expr)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	parser.Inspect(node, func(n parser.Node, _ []parser.Node) error {
		vs, ok := n.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name != "" {
			seen[vs.Name] = true
			return nil
		}
		for _, m := range vs.LabelMatchers {
			if m.Name == labels.MetricName && m.Type == labels.MatchEqual {
				seen[m.Value] = true
			}
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Known reports whether name, or its histogram base name, is in known.
func Known(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range histogramSuffixes {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}

// Expr validates one expression. where identifies it in messages.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	names, err := MetricNames(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: invalid PromQL %q: %v", where, expr, err))
		return res
	}
	if len(names) == 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: %q selects no metrics", where, expr))
	}
	for _, name := range names {
		if !Known(name, known) {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, name))
		}
	}
	return res
}

// Dashboard validates every "expr" found in the JSON form of dash.
func Dashboard(dash any, known map[string]bool) Result {
	var res Result

	data, err := json.Marshal(dash)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("marshaling dashboard: %v", err))
		return res
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("decoding dashboard: %v", err))
		return res
	}

	exprs := collectExprs(doc, nil)
	if len(exprs) == 0 {
		res.Errors = append(res.Errors, "dashboard has no queries")
	}
	for i, expr := range exprs {
		res.merge(Expr(fmt.Sprintf("dashboard query %d", i+1), expr, known))
	}
	return res
}

// Rules validates every rule expression in cr.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result
	exprs := cr.Exprs()

	names := make([]string, 0, len(exprs))
	for name := range exprs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		res.merge(Expr(cr.Metadata.Name+"/"+name, exprs[name], known))
	}
	return res
}

func collectExprs(v any, out []string) []string {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if s, ok := t[k].(string); ok && k == "expr" {
				out = append(out, s)
				continue
			}
			out = collectExprs(t[k], out)
		}
	case []any:
		for _, item := range t {
			out = collectExprs(item, out)
		}
	}
	return out
}
