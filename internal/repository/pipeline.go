package repository

import (
	"fmt"
	"regexp"
	"strings"
)

var renumberRe = regexp.MustCompile(`\$\d+`)

// Pipeline assembles a denormalized read query in explicit stages:
// filter -> search -> join -> derive -> sort -> project -> paginate.
// Each view declares exactly the joins and derived fields it needs; nothing
// is generic across views. Placeholders are written as '?' and rewritten to
// positional $n arguments in call order.
type Pipeline struct {
	table    string
	cols     []string
	joins    []string
	wheres   []string
	args     []any
	sortExpr string
	limit    int
	offset   int
}

func NewPipeline(table string) *Pipeline {
	return &Pipeline{table: table, sortExpr: "created_at DESC"}
}

// Project appends columns to the projection whitelist. Joined user columns
// must stay within the public subset; callers never project password_hash or
// refresh_token.
func (p *Pipeline) Project(cols ...string) *Pipeline {
	p.cols = append(p.cols, cols...)
	return p
}

// Join appends a join clause verbatim, e.g.
// "JOIN users u ON u.id = v.owner_id".
func (p *Pipeline) Join(clause string) *Pipeline {
	p.joins = append(p.joins, clause)
	return p
}

// Filter appends a WHERE condition. '?' placeholders are rewritten to $n.
func (p *Pipeline) Filter(cond string, args ...any) *Pipeline {
	p.wheres = append(p.wheres, p.rewrite(cond, args))
	return p
}

// Search appends a full-text stage over the given tsvector expression. An
// empty query skips the stage entirely.
func (p *Pipeline) Search(vectorExpr, query string) *Pipeline {
	if strings.TrimSpace(query) == "" {
		return p
	}
	return p.Filter(vectorExpr+" @@ plainto_tsquery('english', ?)", query)
}

// Derive appends a computed column (count, EXISTS membership, sum) to the
// projection. '?' placeholders are rewritten like Filter's.
func (p *Pipeline) Derive(expr, alias string, args ...any) *Pipeline {
	p.cols = append(p.cols, p.rewrite(expr, args)+" AS "+alias)
	return p
}

// Sort sets the sort stage from a caller-supplied (field, direction) pair.
// The field must appear in the view's whitelist, which maps API names to
// column expressions; anything else keeps the default created_at DESC.
// Direction is "asc" or "desc" (case-insensitive), defaulting to desc.
func (p *Pipeline) Sort(field, direction string, allowed map[string]string) *Pipeline {
	col, ok := allowed[field]
	if !ok || direction == "" {
		return p
	}
	dir := "DESC"
	if strings.EqualFold(direction, "asc") {
		dir = "ASC"
	}
	p.sortExpr = col + " " + dir
	return p
}

// SortDefault overrides the fallback sort expression for views whose natural
// order is not created_at (e.g. playlist position).
func (p *Pipeline) SortDefault(expr string) *Pipeline {
	p.sortExpr = expr
	return p
}

// Paginate sets LIMIT/OFFSET from normalized 1-based parameters. A zero
// limit leaves the view unpaginated.
func (p *Pipeline) Paginate(limit, offset int) *Pipeline {
	p.limit = limit
	p.offset = offset
	return p
}

// SQL renders the full query and its argument list.
func (p *Pipeline) SQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(p.cols, ", "))
	b.WriteString(" FROM ")
	b.WriteString(p.table)
	for _, j := range p.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}
	if len(p.wheres) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(p.wheres, " AND "))
	}
	b.WriteString(" ORDER BY ")
	b.WriteString(p.sortExpr)
	if p.limit > 0 {
		fmt.Fprintf(&b, " LIMIT %d OFFSET %d", p.limit, p.offset)
	}
	return b.String(), p.args
}

// CountSQL renders the matching total-count query: same filters and joins,
// no derived columns, sort or pagination. Positional arguments bound inside
// Derive stages are excluded, so the count query carries only filter args.
func (p *Pipeline) CountSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT count(*) FROM ")
	b.WriteString(p.table)
	for _, j := range p.joins {
		b.WriteString(" ")
		b.WriteString(j)
	}

	args := make([]any, 0, len(p.args))
	wheres := make([]string, len(p.wheres))
	n := 0
	for i, w := range p.wheres {
		// Renumber the filter placeholders from $1.
		wheres[i] = renumberRe.ReplaceAllStringFunc(w, func(ph string) string {
			var idx int
			fmt.Sscanf(ph, "$%d", &idx)
			args = append(args, p.args[idx-1])
			n++
			return fmt.Sprintf("$%d", n)
		})
	}
	if len(wheres) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(wheres, " AND "))
	}
	return b.String(), args
}

func (p *Pipeline) rewrite(expr string, args []any) string {
	for _, a := range args {
		p.args = append(p.args, a)
		expr = strings.Replace(expr, "?", fmt.Sprintf("$%d", len(p.args)), 1)
	}
	return expr
}
