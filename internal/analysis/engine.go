// Package analysis runs the dataset work gated by the consumption
// guard: column profiling, missing-value counts, IQR outlier detection,
// and a PII scan over CSV datasets on local disk.
package analysis

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"dataset-billing/internal/core/ports"
	"dataset-billing/pkg/apperror"
)

// piiPatterns are scanned against every cell. Matches flag the column;
// matched values are never logged.
var piiPatterns = map[string]*regexp.Regexp{
	"email":       regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`),
	"phone":       regexp.MustCompile(`\b(?:\+?1[-.]?)?\(?[0-9]{3}\)?[-.\s]?[0-9]{3}[-.\s]?[0-9]{4}\b`),
	"ssn":         regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`),
	"credit_card": regexp.MustCompile(`\b(?:4[0-9]{12}(?:[0-9]{3})?|5[1-5][0-9]{14}|3[47][0-9]{13}|6(?:011|5[0-9]{2})[0-9]{12})\b`),
}

// Engine implements ports.AnalysisEngine over CSV files in a data
// directory. A work item id maps to <dataDir>/<id>.csv.
type Engine struct {
	dataDir string
	log     zerolog.Logger
}

// NewEngine creates a new Engine rooted at dataDir.
func NewEngine(dataDir string, log zerolog.Logger) *Engine {
	return &Engine{dataDir: dataDir, log: log}
}

// Analyze profiles one dataset: row/column counts, per-column missing
// values, IQR outliers on numeric columns, and PII findings.
func (e *Engine) Analyze(ctx context.Context, workItemID string) (*ports.AnalysisReport, error) {
	if strings.ContainsAny(workItemID, `/\.`) {
		return nil, apperror.Validation("work_item_id must be a bare identifier")
	}

	path := filepath.Join(e.dataDir, workItemID+".csv")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperror.ErrUnknownWorkItem(workItemID)
		}
		return nil, apperror.InternalError(fmt.Errorf("open dataset: %w", err))
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, apperror.Validation("dataset is empty or not valid CSV")
	}

	report := &ports.AnalysisReport{
		WorkItemID:    workItemID,
		Columns:       header,
		MissingValues: make(map[string]int, len(header)),
	}

	// Column-major cell storage for the numeric and PII passes.
	cells := make([][]string, len(header))

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		record, err := reader.Read()
		if err != nil {
			break
		}
		report.Rows++
		for i := range header {
			var v string
			if i < len(record) {
				v = strings.TrimSpace(record[i])
			}
			if v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "null") {
				report.MissingValues[header[i]]++
				continue
			}
			cells[i] = append(cells[i], v)
		}
	}

	for i, col := range header {
		if rows := iqrOutliers(cells[i]); len(rows) > 0 {
			if report.Outliers == nil {
				report.Outliers = make(map[string][]int)
			}
			report.Outliers[col] = rows
		}
		report.PIIFindings = append(report.PIIFindings, scanPII(col, cells[i])...)
	}

	e.log.Info().
		Str("work_item_id", workItemID).
		Int("rows", report.Rows).
		Int("columns", len(header)).
		Int("pii_findings", len(report.PIIFindings)).
		Msg("dataset analyzed")
	return report, nil
}

// iqrOutliers returns the indexes of values outside 1.5 IQR, or nil
// when the column is not numeric.
func iqrOutliers(values []string) []int {
	nums := make([]float64, 0, len(values))
	for _, v := range values {
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		nums = append(nums, n)
	}
	if len(nums) < 4 {
		return nil
	}

	sorted := make([]float64, len(nums))
	copy(sorted, nums)
	sort.Float64s(sorted)

	q1 := quantile(sorted, 0.25)
	q3 := quantile(sorted, 0.75)
	iqr := q3 - q1
	lo := q1 - 1.5*iqr
	hi := q3 + 1.5*iqr

	var out []int
	for i, n := range nums {
		if n < lo || n > hi {
			out = append(out, i)
		}
	}
	return out
}

// quantile interpolates linearly between the two nearest ranks.
func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(pos)
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[lo+1]*frac
}

func scanPII(column string, values []string) []ports.PIIFinding {
	var findings []ports.PIIFinding
	for kind, pattern := range piiPatterns {
		matches := 0
		for _, v := range values {
			if pattern.MatchString(v) {
				matches++
			}
		}
		if matches > 0 {
			findings = append(findings, ports.PIIFinding{
				Column:  column,
				Kind:    kind,
				Matches: matches,
			})
		}
	}
	sort.Slice(findings, func(i, j int) bool { return findings[i].Kind < findings[j].Kind })
	return findings
}
