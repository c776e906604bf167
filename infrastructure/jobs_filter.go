package infrastructure

import (
	"math"
	"strconv"
	"strings"

	"github.com/leporo/sqlf"

	"jobboard/domain"
)

// Recognized filter keys for the job search.
const (
	FilterMinSalary = "minSalary"
	FilterHasEquity = "hasEquity"
	FilterTitle     = "title"
)

var jobFilterKeys = []string{FilterMinSalary, FilterHasEquity, FilterTitle}

// filterClause is one WHERE condition with ? placeholders and the values
// bound to them.
type filterClause struct {
	Expr string
	Args []any
}

// jobFilter is a compiled job search, AND-ed clause by clause.
type jobFilter struct {
	Clauses []filterClause
}

// Apply adds every clause to q. sqlf joins them with AND and numbers the
// placeholders.
func (f jobFilter) Apply(q *sqlf.Stmt) *sqlf.Stmt {
	for _, c := range f.Clauses {
		q.Where(c.Expr, c.Args...)
	}
	return q
}

func (f *jobFilter) add(expr string, args ...any) {
	f.Clauses = append(f.Clauses, filterClause{Expr: expr, Args: args})
}

func compileJobFilter(filterBy map[string]any) (jobFilter, error) {
	var f jobFilter
	if len(filterBy) == 0 {
		return f, domain.BadRequest("No filter data")
	}
	for key := range filterBy {
		if !isJobFilterKey(key) {
			return f, domain.BadRequest("Invalid filter key: %s", key)
		}
	}

	// Fixed key order keeps the generated SQL stable.
	for _, key := range jobFilterKeys {
		val, ok := filterBy[key]
		if !ok {
			continue
		}

		switch key {
		case FilterMinSalary:
			minSalary, ok := toNumber(val)
			if !ok {
				return f, domain.BadRequest("minSalary must be a number.")
			}
			addMinSalary(&f, minSalary)
		case FilterHasEquity:
			has, ok := toBool(val)
			if !ok {
				return f, domain.BadRequest("hasEquity must be a boolean.")
			}
			if has {
				f.add("equity > 0")
			}
		case FilterTitle:
			title, ok := val.(string)
			if !ok {
				return f, domain.BadRequest("title must be a string.")
			}
			f.add("lower(title) LIKE ?", "%"+strings.ToLower(title)+"%")
		}
	}

	return f, nil
}

// addMinSalary binds minSalary against the integer salary column. salary >=
// 99.5 is salary >= 100; a bound above the column range matches nothing and
// one below it matches every non-null salary.
func addMinSalary(f *jobFilter, minSalary float64) {
	bound := math.Ceil(minSalary)
	switch {
	case bound > math.MaxInt32:
		f.add("false")
	case bound < math.MinInt32:
		f.add("salary >= ?", int32(math.MinInt32))
	default:
		f.add("salary >= ?", int32(bound))
	}
}

func isJobFilterKey(key string) bool {
	for _, k := range jobFilterKeys {
		if k == key {
			return true
		}
	}
	return false
}

func toNumber(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case float32:
		n = float64(t)
	case float64:
		n = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func toBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		if err != nil {
			return false, false
		}
		return b, true
	default:
		return false, false
	}
}
