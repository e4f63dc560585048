// Package stats implements the per-run CSV reporter: one fixed
// header row, one row per optimized file, written with encoding/csv.
package stats

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"
)

// Row is one batch-run file's before/after comparison.
type Row struct {
	Filename     string
	SizeBefore   int
	SizeAfter    int
	MetricBefore int
	MetricAfter  int
	SQGsBefore   int
	SQGsAfter    int
	MQGsBefore   int
	MQGsAfter    int
	Duration     time.Duration
}

var header = []string{
	"Filename",
	"Size Before", "Size After", "Size Reduce",
	"Metric Before", "Metric After", "Metric Reduce",
	"SQGs Before", "SQGs After", "SQGs Reduce",
	"MQGs Before", "MQGs After", "MQGs Reduce",
	"Total Time",
}

// Reporter accumulates rows and flushes them to a CSV sink on Close.
type Reporter struct {
	w    *csv.Writer
	file io.Closer
}

// Open creates (or truncates) the CSV file at path and writes the
// fixed header row.
func Open(path string) (*Reporter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("stats: create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}
	return &Reporter{w: w, file: f}, nil
}

// Write appends one row, formatting each before/after/reduce triple as
// "N(pp.pp%)", or "N(-)" when the reduction is zero.
func (r *Reporter) Write(row Row) error {
	record := []string{
		row.Filename,
		itoa(row.SizeBefore), itoa(row.SizeAfter), reduceCell(row.SizeBefore, row.SizeAfter),
		itoa(row.MetricBefore), itoa(row.MetricAfter), reduceCell(row.MetricBefore, row.MetricAfter),
		itoa(row.SQGsBefore), itoa(row.SQGsAfter), reduceCell(row.SQGsBefore, row.SQGsAfter),
		itoa(row.MQGsBefore), itoa(row.MQGsAfter), reduceCell(row.MQGsBefore, row.MQGsAfter),
		row.Duration.String(),
	}
	return r.w.Write(record)
}

// Close flushes buffered rows and closes the underlying file.
func (r *Reporter) Close() error {
	r.w.Flush()
	if err := r.w.Error(); err != nil {
		r.file.Close()
		return err
	}
	return r.file.Close()
}

func itoa(n int) string { return fmt.Sprintf("%d", n) }

// reduceCell formats a before/after pair as an "N(pp.pp%)" cell, or
// "N(-)" when before is zero or there was no reduction.
func reduceCell(before, after int) string {
	n := before - after
	if n == 0 || before == 0 {
		return fmt.Sprintf("%d(-)", n)
	}
	pct := float64(n) / float64(before) * 100
	return fmt.Sprintf("%d(%.2f%%)", n, pct)
}
