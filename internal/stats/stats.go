// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2026 dinikifo

// Package stats computes per-period posting totals and five-number
// summaries over the ledger tree, caching results under analysis.<id> so
// scripts can read individual figures back with StatsGet.
package stats

import (
	"fmt"
	"sort"

	"github.com/dinikifo/VB6.tiny.clone/internal/ledger"
	"github.com/dinikifo/VB6.tiny.clone/internal/value"
)

// PeriodSum is one point of an account series: a period label and the sum
// of posting amounts in that period.
type PeriodSum struct {
	Period string
	Amount float64
}

// BuildAccountSeries sums posting amounts for the account per period,
// filtered to the inclusive [from, to] label range (empty bound = open
// end), sorted by period. Unknown accounts yield an empty series.
func BuildAccountSeries(root value.Value, accountCode, from, to string) []PeriodSum {
	accID, ok := ledger.FindAccountID(root, accountCode)
	if !ok {
		return nil
	}

	obj, ok := root.(*value.Object)
	if !ok {
		return nil
	}
	ledgerNode, ok := obj.Get("ledger")
	if !ok {
		return nil
	}
	ledgerObj, ok := ledgerNode.(*value.Object)
	if !ok {
		return nil
	}
	postingsNode, ok := ledgerObj.Get("postings")
	if !ok {
		return nil
	}
	postings, ok := postingsNode.(*value.List)
	if !ok {
		return nil
	}

	sums := map[string]float64{}
	for _, item := range postings.Items {
		p, ok := item.(*value.Object)
		if !ok {
			continue
		}
		pid, _ := p.Get("accountId")
		id, ok := pid.(int64)
		if !ok || id != accID {
			continue
		}
		periodVal, _ := p.Get("period")
		period := value.Format(periodVal)
		if from != "" && period < from {
			continue
		}
		if to != "" && period > to {
			continue
		}
		amountVal, _ := p.Get("amount")
		sums[period] += value.ToFloat(amountVal)
	}

	series := make([]PeriodSum, 0, len(sums))
	for period, amount := range sums {
		series = append(series, PeriodSum{Period: period, Amount: amount})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Period < series[j].Period })
	return series
}

// Summary is a five-number summary of a value set.
type Summary struct {
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// FiveNumberSummary computes min, quartiles and max. Quartiles are medians
// of the lower and upper halves, the middle element excluded for odd
// counts. Empty input yields false.
func FiveNumberSummary(values []float64) (Summary, bool) {
	if len(values) == 0 {
		return Summary{}, false
	}

	vals := append([]float64(nil), values...)
	sort.Float64s(vals)
	n := len(vals)

	median := medianOf(vals)
	s := Summary{
		Min:    vals[0],
		Max:    vals[n-1],
		Median: median,
	}

	if n == 1 {
		s.Q1 = median
		s.Q3 = median
		return s, true
	}

	mid := n / 2
	lower := vals[:mid]
	var upper []float64
	if n%2 == 0 {
		upper = vals[mid:]
	} else {
		upper = vals[mid+1:]
	}
	s.Q1 = medianOr(lower, median)
	s.Q3 = medianOr(upper, median)
	return s, true
}

func medianOf(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2.0
}

func medianOr(sorted []float64, fallback float64) float64 {
	if len(sorted) == 0 {
		return fallback
	}
	return medianOf(sorted)
}

// RunAnalysis builds the series and summary for an account over a period
// range and stores both under analysis.<id> in the tree. The id encodes
// the query; an empty series yields "".
func RunAnalysis(root value.Value, accountCode, from, to string) string {
	series := BuildAccountSeries(root, accountCode, from, to)
	if len(series) == 0 {
		return ""
	}

	values := make([]float64, len(series))
	for i, ps := range series {
		values[i] = ps.Amount
	}
	summary, _ := FiveNumberSummary(values)

	obj, ok := root.(*value.Object)
	if !ok {
		return ""
	}

	id := fmt.Sprintf("stats:%s:%s:%s", accountCode, from, to)

	seriesList := value.NewList()
	for _, ps := range series {
		seriesList.Append(value.NewList(ps.Period, value.NormalizeFloat(ps.Amount)))
	}

	summaryObj := value.NewObject()
	summaryObj.Set("min", value.NormalizeFloat(summary.Min))
	summaryObj.Set("q1", value.NormalizeFloat(summary.Q1))
	summaryObj.Set("median", value.NormalizeFloat(summary.Median))
	summaryObj.Set("q3", value.NormalizeFloat(summary.Q3))
	summaryObj.Set("max", value.NormalizeFloat(summary.Max))

	entry := value.NewObject()
	entry.Set("type", "five_number")
	entry.Set("account", accountCode)
	entry.Set("period_from", from)
	entry.Set("period_to", to)
	entry.Set("series", seriesList)
	entry.Set("summary", summaryObj)

	analysisNode, ok := obj.Get("analysis")
	analysis, isObj := analysisNode.(*value.Object)
	if !ok || !isObj {
		analysis = value.NewObject()
		obj.Set("analysis", analysis)
	}
	analysis.Set(id, entry)
	return id
}

// GetStatsValue reads one figure from a cached five-number analysis.
// Missing analyses, wrong analysis types and unknown keys all yield 0.0.
func GetStatsValue(root value.Value, analysisID, key string) value.Value {
	obj, ok := root.(*value.Object)
	if !ok {
		return 0.0
	}
	analysisNode, ok := obj.Get("analysis")
	if !ok {
		return 0.0
	}
	analysis, ok := analysisNode.(*value.Object)
	if !ok {
		return 0.0
	}
	entryNode, ok := analysis.Get(analysisID)
	if !ok {
		return 0.0
	}
	entry, ok := entryNode.(*value.Object)
	if !ok {
		return 0.0
	}
	if t, _ := entry.Get("type"); t != "five_number" {
		return 0.0
	}
	summaryNode, ok := entry.Get("summary")
	if !ok {
		return 0.0
	}
	summary, ok := summaryNode.(*value.Object)
	if !ok {
		return 0.0
	}
	v, ok := summary.Get(key)
	if !ok {
		return 0.0
	}
	return v
}
