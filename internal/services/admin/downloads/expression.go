package downloads

import (
	"fmt"
	"strings"
	"time"

	"go.einride.tech/aip/filtering"
	expr "google.golang.org/genproto/googleapis/api/expr/v1alpha1"
)

// Expression is a compiled AIP-160 filter over download records.
type Expression struct {
	source string
	match  predicate
}

type predicate func(Record) bool

var stringFields = map[string]func(Record) string{
	"email":          func(r Record) string { return r.Email },
	"name":           func(r Record) string { return r.Name },
	"phone":          func(r Record) string { return r.Phone },
	"city":           func(r Record) string { return r.City },
	"state_province": func(r Record) string { return r.StateProvince },
	"country":        func(r Record) string { return r.Country },
	"purpose_of_use": func(r Record) string { return r.PurposeOfUse },
}

// RecordDeclarations returns the identifiers a record filter may reference.
func RecordDeclarations() (*filtering.Declarations, error) {
	opts := []filtering.DeclarationOption{
		filtering.DeclareStandardFunctions(),
		filtering.DeclareIdent("download_count", filtering.TypeInt),
		filtering.DeclareIdent("created_at", filtering.TypeTimestamp),
	}
	for name := range stringFields {
		opts = append(opts, filtering.DeclareIdent(name, filtering.TypeString))
	}
	return filtering.NewDeclarations(opts...)
}

// ParseExpression compiles source. An empty source yields a nil Expression.
// Timestamps without an offset, in records or in timestamp() arguments, are
// read in loc.
func ParseExpression(source string, loc *time.Location) (*Expression, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, nil
	}
	decls, err := RecordDeclarations()
	if err != nil {
		return nil, fmt.Errorf("create declarations: %w", err)
	}
	filter, err := filtering.ParseFilterString(source, decls)
	if err != nil {
		return nil, fmt.Errorf("parse filter: %w", err)
	}
	if filter.CheckedExpr == nil {
		return nil, nil
	}
	c := compiler{loc: loc}
	match, err := c.compile(filter.CheckedExpr.Expr)
	if err != nil {
		return nil, err
	}
	return &Expression{source: source, match: match}, nil
}

// String returns the expression source.
func (e *Expression) String() string {
	if e == nil {
		return ""
	}
	return e.source
}

// Match reports whether r satisfies the expression. A nil Expression matches
// everything.
func (e *Expression) Match(r Record) bool {
	if e == nil || e.match == nil {
		return true
	}
	return e.match(r)
}

type compiler struct {
	loc *time.Location
}

func (c compiler) compile(e *expr.Expr) (predicate, error) {
	if e == nil {
		return func(Record) bool { return true }, nil
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_CallExpr:
		return c.compileCall(kind.CallExpr)
	default:
		return nil, fmt.Errorf("unsupported expression type: %T", kind)
	}
}

func (c compiler) compileCall(call *expr.Expr_Call) (predicate, error) {
	switch call.Function {
	case "_&&_", filtering.FunctionAnd, filtering.FunctionFuzzyAnd:
		return c.compileLogical(call.Args, true)
	case "_||_", filtering.FunctionOr:
		return c.compileLogical(call.Args, false)
	case "!_", filtering.FunctionNot:
		if len(call.Args) != 1 {
			return nil, fmt.Errorf("NOT requires 1 argument")
		}
		inner, err := c.compile(call.Args[0])
		if err != nil {
			return nil, err
		}
		return func(r Record) bool { return !inner(r) }, nil
	case "_==_", filtering.FunctionEquals,
		"_!=_", filtering.FunctionNotEquals,
		"_<_", filtering.FunctionLessThan,
		"_<=_", filtering.FunctionLessEquals,
		"_>_", filtering.FunctionGreaterThan,
		"_>=_", filtering.FunctionGreaterEquals,
		filtering.FunctionHas:
		return c.compileComparison(normalizeOperator(call.Function), call.Args)
	default:
		return nil, fmt.Errorf("unsupported function: %s", call.Function)
	}
}

func (c compiler) compileLogical(args []*expr.Expr, and bool) (predicate, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("logical operator requires 2 arguments")
	}
	parts := make([]predicate, 0, len(args))
	for _, arg := range args {
		p, err := c.compile(arg)
		if err != nil {
			return nil, err
		}
		parts = append(parts, p)
	}
	if and {
		return func(r Record) bool {
			for _, p := range parts {
				if !p(r) {
					return false
				}
			}
			return true
		}, nil
	}
	return func(r Record) bool {
		for _, p := range parts {
			if p(r) {
				return true
			}
		}
		return false
	}, nil
}

func normalizeOperator(function string) string {
	switch function {
	case "_==_":
		return filtering.FunctionEquals
	case "_!=_":
		return filtering.FunctionNotEquals
	case "_<_":
		return filtering.FunctionLessThan
	case "_<=_":
		return filtering.FunctionLessEquals
	case "_>_":
		return filtering.FunctionGreaterThan
	case "_>=_":
		return filtering.FunctionGreaterEquals
	default:
		return function
	}
}

func (c compiler) compileComparison(op string, args []*expr.Expr) (predicate, error) {
	if len(args) != 2 {
		return nil, fmt.Errorf("comparison requires 2 arguments")
	}
	field, err := extractFieldName(args[0])
	if err != nil {
		return nil, err
	}

	if get, ok := stringFields[field]; ok {
		want, err := extractString(args[1])
		if err != nil {
			return nil, err
		}
		if op == filtering.FunctionHas {
			want = strings.ToLower(want)
			return func(r Record) bool {
				return strings.Contains(strings.ToLower(get(r)), want)
			}, nil
		}
		return func(r Record) bool {
			return compareOrdered(strings.Compare(get(r), want), op)
		}, nil
	}

	switch field {
	case "download_count":
		want, err := extractInt(args[1])
		if err != nil {
			return nil, err
		}
		return func(r Record) bool {
			got := int64(r.DownloadCount)
			switch {
			case got < want:
				return compareOrdered(-1, op)
			case got > want:
				return compareOrdered(1, op)
			default:
				return compareOrdered(0, op)
			}
		}, nil
	case "created_at":
		want, err := c.extractTimestamp(args[1])
		if err != nil {
			return nil, err
		}
		return func(r Record) bool {
			created, ok := ParseTimestamp(r.CreatedAt, c.loc)
			if !ok {
				return false
			}
			return compareOrdered(created.Compare(want), op)
		}, nil
	default:
		return nil, fmt.Errorf("unknown field: %s", field)
	}
}

func compareOrdered(cmp int, op string) bool {
	switch op {
	case filtering.FunctionEquals:
		return cmp == 0
	case filtering.FunctionNotEquals:
		return cmp != 0
	case filtering.FunctionLessThan:
		return cmp < 0
	case filtering.FunctionLessEquals:
		return cmp <= 0
	case filtering.FunctionGreaterThan:
		return cmp > 0
	case filtering.FunctionGreaterEquals:
		return cmp >= 0
	default:
		return false
	}
}

func extractFieldName(e *expr.Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("nil expression")
	}
	switch kind := e.ExprKind.(type) {
	case *expr.Expr_IdentExpr:
		return kind.IdentExpr.Name, nil
	default:
		return "", fmt.Errorf("expected field name, got %T", kind)
	}
}

func extractConst(e *expr.Expr) (*expr.Constant, error) {
	if e == nil {
		return nil, fmt.Errorf("nil expression")
	}
	kind, ok := e.ExprKind.(*expr.Expr_ConstExpr)
	if !ok {
		return nil, fmt.Errorf("expected constant, got %T", e.ExprKind)
	}
	return kind.ConstExpr, nil
}

func extractString(e *expr.Expr) (string, error) {
	constant, err := extractConst(e)
	if err != nil {
		return "", err
	}
	value, ok := constant.ConstantKind.(*expr.Constant_StringValue)
	if !ok {
		return "", fmt.Errorf("expected string constant, got %T", constant.ConstantKind)
	}
	return value.StringValue, nil
}

func extractInt(e *expr.Expr) (int64, error) {
	constant, err := extractConst(e)
	if err != nil {
		return 0, err
	}
	switch kind := constant.ConstantKind.(type) {
	case *expr.Constant_Int64Value:
		return kind.Int64Value, nil
	case *expr.Constant_Uint64Value:
		return int64(kind.Uint64Value), nil
	default:
		return 0, fmt.Errorf("expected integer constant, got %T", kind)
	}
}

func (c compiler) extractTimestamp(e *expr.Expr) (time.Time, error) {
	if e == nil {
		return time.Time{}, fmt.Errorf("nil expression")
	}
	call, ok := e.ExprKind.(*expr.Expr_CallExpr)
	if !ok || call.CallExpr.Function != filtering.FunctionTimestamp || len(call.CallExpr.Args) != 1 {
		return time.Time{}, fmt.Errorf("created_at must be compared with timestamp(\"...\")")
	}
	raw, err := extractString(call.CallExpr.Args[0])
	if err != nil {
		return time.Time{}, err
	}
	t, ok := ParseTimestamp(raw, c.loc)
	if !ok {
		return time.Time{}, fmt.Errorf("invalid timestamp format: %s", raw)
	}
	return t, nil
}
