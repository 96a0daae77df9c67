/*
 * Copyright (c) 2023.
 * all right reserved by gnodux<gnodux@gmail.com>
 */

package dialect

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ValueType result type of a SQL function
type ValueType int

const (
	Unspecified ValueType = iota
	IntegerValue
	LongValue
	FloatValue
	DoubleValue
	StringValue
	CharacterValue
	DateValue
	TimeValue
	TimestampValue
)

// SQLFunction renders a function call for already rendered arguments.
type SQLFunction interface {
	Render(args []string) (string, error)
	ReturnType() ValueType
}

// StandardFunction renders name(arg1, arg2, ...)
type StandardFunction struct {
	Name string
	Type ValueType
}

func (f StandardFunction) Render(args []string) (string, error) {
	return f.Name + "(" + strings.Join(args, ", ") + ")", nil
}

func (f StandardFunction) ReturnType() ValueType { return f.Type }

// NoArgFunction renders a bare keyword such as sysdate, or name() when Parens is set.
type NoArgFunction struct {
	Name   string
	Type   ValueType
	Parens bool
}

func (f NoArgFunction) Render(args []string) (string, error) {
	if len(args) > 0 {
		return "", fmt.Errorf("function %s takes no arguments", f.Name)
	}
	if f.Parens {
		return f.Name + "()", nil
	}
	return f.Name, nil
}

func (f NoArgFunction) ReturnType() ValueType { return f.Type }

// VarArgsFunction renders Begin arg1 Sep arg2 ... End
type VarArgsFunction struct {
	Begin string
	Sep   string
	End   string
	Type  ValueType
}

func (f VarArgsFunction) Render(args []string) (string, error) {
	return f.Begin + strings.Join(args, f.Sep) + f.End, nil
}

func (f VarArgsFunction) ReturnType() ValueType { return f.Type }

// TemplateFunction substitutes ?1, ?2 ... with the matching argument.
type TemplateFunction struct {
	Template string
	Type     ValueType
}

func (f TemplateFunction) Render(args []string) (string, error) {
	sb := strings.Builder{}
	tpl := f.Template
	for i := 0; i < len(tpl); i++ {
		c := tpl[i]
		if c != '?' {
			sb.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(tpl) && tpl[j] >= '0' && tpl[j] <= '9' {
			j++
		}
		if j == i+1 {
			sb.WriteByte(c)
			continue
		}
		n, _ := strconv.Atoi(tpl[i+1 : j])
		if n < 1 || n > len(args) {
			return "", fmt.Errorf("template %q references argument %d, got %d", f.Template, n, len(args))
		}
		sb.WriteString(args[n-1])
		i = j - 1
	}
	return sb.String(), nil
}

func (f TemplateFunction) ReturnType() ValueType { return f.Type }

// NvlFunction folds coalesce(a, b, c) into nvl(a, nvl(b, c)).
type NvlFunction struct{}

func (NvlFunction) Render(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("nvl requires at least one argument")
	}
	rendered := args[len(args)-1]
	for i := len(args) - 2; i >= 0; i-- {
		rendered = "nvl(" + args[i] + ", " + rendered + ")"
	}
	return rendered, nil
}

func (NvlFunction) ReturnType() ValueType { return Unspecified }

// FunctionRegistry case-insensitive name -> SQLFunction
type FunctionRegistry struct {
	funcs map[string]SQLFunction
}

func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{funcs: map[string]SQLFunction{}}
}

func (r *FunctionRegistry) Register(name string, fn SQLFunction) *FunctionRegistry {
	r.funcs[strings.ToLower(name)] = fn
	return r
}

func (r *FunctionRegistry) Lookup(name string) (SQLFunction, bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.funcs[strings.ToLower(name)]
	return fn, ok
}

// Render renders the named function with args.
func (r *FunctionRegistry) Render(name string, args ...string) (string, error) {
	fn, ok := r.Lookup(name)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownFunction, name)
	}
	return fn.Render(args)
}

// Names sorted list of registered function names
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.funcs))
	for k := range r.funcs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
