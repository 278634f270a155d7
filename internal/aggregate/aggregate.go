// Package aggregate groups sales records by categorical or date-bucket keys
// and reduces numeric fields. Grouping preserves first-appearance order;
// rankings are stable, so ties keep original input order.
package aggregate

import (
	"sort"

	"github.com/KaramelBytes/saleslens-cli/internal/dataset"
)

// Group is one aggregated result row.
type Group struct {
	Key   string
	Value float64
	Count int
}

// KeyFunc extracts a grouping key from a record.
type KeyFunc func(dataset.Record) string

// Built-in grouping keys.
var (
	ByProduct KeyFunc = func(r dataset.Record) string { return r.Product }
	ByRegion  KeyFunc = func(r dataset.Record) string { return r.Region }
	ByRep     KeyFunc = func(r dataset.Record) string { return r.SalesRep }
	ByDay     KeyFunc = dataset.Record.Day
	ByMonth   KeyFunc = dataset.Record.Month
	ByQuarter KeyFunc = dataset.Record.Quarter
)

// Field selects the numeric field a metric reduces.
type Field int

const (
	FieldTotalSales Field = iota
	FieldQuantity
)

func (f Field) value(r dataset.Record) float64 {
	if f == FieldQuantity {
		return float64(r.Quantity)
	}
	return r.TotalSales
}

// Metric is a reduction over a group.
type Metric int

const (
	MetricSum Metric = iota
	MetricMean
	MetricCount
	MetricDistinctCustomers
)

// bucket collects the records sharing one key.
type bucket struct {
	key  string
	recs []dataset.Record
}

func groupRecords(records []dataset.Record, key KeyFunc) []*bucket {
	byKey := make(map[string]*bucket)
	var order []*bucket
	for _, r := range records {
		k := key(r)
		b := byKey[k]
		if b == nil {
			b = &bucket{key: k}
			byKey[k] = b
			order = append(order, b)
		}
		b.recs = append(b.recs, r)
	}
	return order
}

func reduce(b *bucket, field Field, metric Metric) float64 {
	n := len(b.recs)
	if n == 0 {
		return 0
	}
	switch metric {
	case MetricCount:
		return float64(n)
	case MetricDistinctCustomers:
		seen := make(map[string]bool, n)
		for _, r := range b.recs {
			if r.CustomerID != "" {
				seen[r.CustomerID] = true
			}
		}
		return float64(len(seen))
	case MetricMean:
		var sum float64
		for _, r := range b.recs {
			sum += field.value(r)
		}
		return sum / float64(n)
	default: // MetricSum
		var sum float64
		for _, r := range b.recs {
			sum += field.value(r)
		}
		return sum
	}
}

// GroupBy groups records by key and reduces field with metric. Groups
// appear in first-appearance order of their keys.
func GroupBy(t *dataset.Table, key KeyFunc, field Field, metric Metric) []Group {
	if t == nil {
		return nil
	}
	buckets := groupRecords(t.Records, key)
	groups := make([]Group, 0, len(buckets))
	for _, b := range buckets {
		groups = append(groups, Group{
			Key:   b.key,
			Value: reduce(b, field, metric),
			Count: len(b.recs),
		})
	}
	return groups
}

// SortByKey orders groups lexicographically by key. Day/month/quarter bucket
// keys are zero-padded ISO forms, so this is chronological order for them.
func SortByKey(groups []Group) {
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
}

// TopN returns the n largest groups by value, descending. The sort is
// stable: ties keep their original order.
func TopN(groups []Group, n int) []Group {
	out := append([]Group(nil), groups...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Series is one named line in a multi-series chart.
type Series struct {
	Name   string
	Values []float64
}

// Pivot produces a two-level rollup: rows bucketed by rowKey (sorted by
// key), one series per seriesKey value in first-appearance order. Missing
// cells are zero.
func Pivot(t *dataset.Table, rowKey, seriesKey KeyFunc, field Field, metric Metric) (labels []string, series []Series) {
	if t == nil || t.Len() == 0 {
		return nil, nil
	}
	rows := groupRecords(t.Records, rowKey)
	sort.Slice(rows, func(i, j int) bool { return rows[i].key < rows[j].key })
	for _, b := range rows {
		labels = append(labels, b.key)
	}

	var names []string
	seen := make(map[string]int)
	for _, r := range t.Records {
		k := seriesKey(r)
		if _, ok := seen[k]; !ok {
			seen[k] = len(names)
			names = append(names, k)
		}
	}

	series = make([]Series, len(names))
	for i, name := range names {
		series[i] = Series{Name: name, Values: make([]float64, len(labels))}
	}
	for li, b := range rows {
		for _, sub := range groupRecords(b.recs, seriesKey) {
			series[seen[sub.key]].Values[li] = reduce(sub, field, metric)
		}
	}
	return labels, series
}
