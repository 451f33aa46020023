package query

import (
	"fmt"
	"strconv"
	"strings"

	"fitsync/training-service/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)

// Scope identifies who is asking. An empty Role is unscoped.
type Scope struct {
	Role domain.Role
	ID   string
}

// ListQuery is a pair of queries sharing one predicate: a page of rows and
// the total count of matching rows.
type ListQuery struct {
	SelectSQL  string
	SelectArgs []any
	CountSQL   string
	CountArgs  []any
	Page       int
	Limit      int
}

// ParsePage coerces raw page/limit values. Missing, non-numeric or
// non-positive values fall back to the defaults; limit is capped at MaxLimit.
func ParsePage(rawPage, rawLimit string) (page, limit int) {
	return NormalizePage(atoi(rawPage), atoi(rawLimit))
}

func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

func atoi(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

// Offset returns (page-1) * limit.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// TotalPages returns ceil(total / limit).
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// BuildList produces the page and count queries for an entity.
//
// The scope predicate derived from the caller is always the first condition;
// caller-supplied filters are ANDed after it and a filter on the scope column
// itself is dropped, so no filter can widen or replace the scope.
func BuildList(e *Entity, scope Scope, filters map[string]string, page, limit int) ListQuery {
	page, limit = NormalizePage(page, limit)

	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	scopeColumn, scoped := e.Scope[scope.Role]
	if scoped {
		conds = append(conds, scopeColumn+" = "+next(scope.ID))
	}

	for _, f := range e.Filters {
		raw, present := filters[f.Key]
		if scoped && f.Column == scopeColumn {
			continue
		}
		switch f.Op {
		case OpBool:
			if !present {
				continue
			}
			conds = append(conds, f.Column+" = "+next(raw == "true"))
		case OpEq:
			if raw == "" {
				continue
			}
			conds = append(conds, f.Column+" = "+next(raw))
		case OpArrayContains:
			if raw == "" {
				continue
			}
			conds = append(conds, next(raw)+" = ANY("+f.Column+")")
		case OpSearch:
			if raw == "" {
				continue
			}
			p := next("%" + raw + "%")
			conds = append(conds, "(name ILIKE "+p+" OR description ILIKE "+p+")")
		}
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countArgs := make([]any, len(args))
	copy(countArgs, args)

	n := len(args)
	selectArgs := append(args, limit, Offset(page, limit))

	return ListQuery{
		SelectSQL: fmt.Sprintf("SELECT %s FROM %s%s ORDER BY %s LIMIT $%d OFFSET $%d",
			e.Columns, e.Table, where, e.OrderBy, n+1, n+2),
		SelectArgs: selectArgs,
		CountSQL:   fmt.Sprintf("SELECT COUNT(*) FROM %s%s", e.Table, where),
		CountArgs:  countArgs,
		Page:       page,
		Limit:      limit,
	}
}

// SelectByID returns the single-row lookup for an entity.
func SelectByID(e *Entity) string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = $1", e.Columns, e.Table)
}

// DeleteByID returns the delete statement for an entity.
func DeleteByID(e *Entity) string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1 RETURNING id", e.Table)
}
