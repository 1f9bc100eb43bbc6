// Package catalog holds the interface type catalog and the signal bundle
// expander.
//
// A Catalog is built once from a set of templates and is immutable
// afterwards; it is safe for concurrent use by any number of builds.
package catalog

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/expr"
)

// TemplateParam is a named template argument that member widths may
// reference.
type TemplateParam struct {
	Name    string `json:"name" yaml:"name"`
	Default int64  `json:"default" yaml:"default"`
	Descr   string `json:"descr,omitempty" yaml:"descr,omitempty"`
}

// Member is one signal of an interface type. Direction is given from the
// manager's point of view.
type Member struct {
	Name      string         `json:"name" yaml:"name"`
	Width     string         `json:"width" yaml:"width"`
	Direction core.Direction `json:"direction" yaml:"direction"`

	// Option is the letter that selects this member. Members without an
	// option letter are always present.
	Option string `json:"option,omitempty" yaml:"option,omitempty"`

	Descr string `json:"descr,omitempty" yaml:"descr,omitempty"`
}

// Option documents an option letter of a template.
type Option struct {
	Letter string `json:"letter" yaml:"letter"`
	Descr  string `json:"descr,omitempty" yaml:"descr,omitempty"`
}

// Template describes the members of an interface type.
type Template struct {
	Name    string          `json:"name" yaml:"name"`
	Descr   string          `json:"descr,omitempty" yaml:"descr,omitempty"`
	Params  []TemplateParam `json:"params,omitempty" yaml:"params,omitempty"`
	Members []Member        `json:"members" yaml:"members"`
	Options []Option        `json:"options,omitempty" yaml:"options,omitempty"`

	// DefaultOptions is used when a reference selects no options, e.g. "c_a".
	DefaultOptions string `json:"defaultOptions,omitempty" yaml:"defaultOptions,omitempty"`
}

// compiled is a validated template with pre-parsed member widths.
type compiled struct {
	tmpl     Template
	widths   []expr.Expr
	defaults map[string]int64
	letters  sets.Set[string]
}

// Catalog maps interface type names to templates.
type Catalog struct {
	types map[string]*compiled
}

// New builds a catalog from templates. It fails when a name is repeated,
// when a member width does not parse, or when a width references anything
// other than the template's own parameters.
func New(templates ...Template) (*Catalog, error) {
	c := &Catalog{types: make(map[string]*compiled, len(templates))}
	for _, t := range templates {
		if err := c.add(t); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNew is like New but panics on error. Used for built-in tables.
func MustNew(templates ...Template) *Catalog {
	c, err := New(templates...)
	if err != nil {
		panic(err)
	}
	return c
}

// With returns a new catalog holding the templates of c plus templates.
// c is left unchanged.
func (c *Catalog) With(templates ...Template) (*Catalog, error) {
	out := &Catalog{types: maps.Clone(c.types)}
	if out.types == nil {
		out.types = map[string]*compiled{}
	}
	for _, t := range templates {
		if err := out.add(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Catalog) add(t Template) error {
	if t.Name == "" {
		return fmt.Errorf("interface type with empty name")
	}
	if _, dup := c.types[t.Name]; dup {
		return fmt.Errorf("interface type %q defined twice", t.Name)
	}
	if len(t.Members) == 0 {
		return fmt.Errorf("interface type %q has no members", t.Name)
	}

	ct := &compiled{
		tmpl:     cloneTemplate(t),
		widths:   make([]expr.Expr, len(t.Members)),
		defaults: make(map[string]int64, len(t.Params)),
		letters:  sets.New[string](),
	}
	for _, p := range t.Params {
		if _, dup := ct.defaults[p.Name]; dup {
			return fmt.Errorf("interface type %q: parameter %s defined twice", t.Name, p.Name)
		}
		ct.defaults[p.Name] = p.Default
	}
	for _, o := range t.Options {
		ct.letters.Insert(o.Letter)
	}
	for _, letter := range splitOptions(t.DefaultOptions) {
		if !ct.letters.Has(letter) {
			return fmt.Errorf("interface type %q: default option %q is not declared", t.Name, letter)
		}
	}

	names := sets.New[string]()
	for i, m := range t.Members {
		if names.Has(m.Name) {
			return fmt.Errorf("interface type %q: member %s defined twice", t.Name, m.Name)
		}
		names.Insert(m.Name)
		if m.Option != "" && !ct.letters.Has(m.Option) {
			return fmt.Errorf("interface type %q: member %s uses undeclared option %q", t.Name, m.Name, m.Option)
		}
		e, err := expr.Parse(m.Width)
		if err != nil {
			return fmt.Errorf("interface type %q: member %s: %w", t.Name, m.Name, err)
		}
		for _, ref := range expr.Refs(e) {
			if _, ok := ct.defaults[ref]; !ok {
				return fmt.Errorf("interface type %q: member %s width references %q, which is not a template parameter",
					t.Name, m.Name, ref)
			}
		}
		ct.widths[i] = e
	}

	c.types[t.Name] = ct
	return nil
}

// Lookup returns a copy of the template named name.
func (c *Catalog) Lookup(name string) (Template, bool) {
	ct, ok := c.types[name]
	if !ok {
		return Template{}, false
	}
	return cloneTemplate(ct.tmpl), true
}

// Has reports whether the catalog defines name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.types[name]
	return ok
}

// Names returns the type names in sorted order.
func (c *Catalog) Names() []string {
	return slices.Sorted(maps.Keys(c.types))
}

// Len returns the number of templates.
func (c *Catalog) Len() int {
	return len(c.types)
}

// Expand instantiates typeName into concrete signals. Each member is named
// prefix+member, directions are the template's (manager view). args binds
// template parameters; missing ones take the template default. options
// selects optional members by letter ("c_a", "a"); empty selects the
// template defaults.
//
// The returned slice is freshly allocated on every call.
func (c *Catalog) Expand(typeName, prefix string, args map[string]int64, options string) ([]core.Signal, error) {
	ct, ok := c.types[typeName]
	if !ok {
		return nil, &core.UnknownInterfaceTypeError{Type: typeName}
	}

	// Unknown argument names are rejected in sorted order so the reported
	// error is stable.
	for _, name := range slices.Sorted(maps.Keys(args)) {
		if _, ok := ct.defaults[name]; !ok {
			return nil, &core.WidthEvaluationError{
				Type:   typeName,
				Signal: name,
				Expr:   fmt.Sprint(args[name]),
				Reason: "not a parameter of this interface type",
			}
		}
	}

	selected, err := ct.selectOptions(options)
	if err != nil {
		return nil, err
	}

	scope := make(expr.MapScope, len(ct.defaults))
	maps.Copy(scope, ct.defaults)
	maps.Copy(scope, args)

	out := make([]core.Signal, 0, len(ct.tmpl.Members))
	for i, m := range ct.tmpl.Members {
		if m.Option != "" && !selected.Has(m.Option) {
			continue
		}
		w, err := expr.Eval(ct.widths[i], scope)
		if err != nil {
			return nil, &core.WidthEvaluationError{
				Type:   typeName,
				Signal: prefix + m.Name,
				Expr:   m.Width,
				Reason: err.Error(),
			}
		}
		if w <= 0 {
			return nil, &core.WidthEvaluationError{
				Type:   typeName,
				Signal: prefix + m.Name,
				Expr:   m.Width,
				Reason: fmt.Sprintf("evaluates to %d, want a positive width", w),
			}
		}
		out = append(out, core.Signal{Name: prefix + m.Name, Width: int(w), Direction: m.Direction})
	}
	return out, nil
}

func (ct *compiled) selectOptions(options string) (sets.Set[string], error) {
	if strings.TrimSpace(options) == "" {
		options = ct.tmpl.DefaultOptions
	}
	selected := sets.New[string]()
	for _, letter := range splitOptions(options) {
		if !ct.letters.Has(letter) {
			return nil, &core.InvalidTypeOptionError{Type: ct.tmpl.Name, Option: letter}
		}
		selected.Insert(letter)
	}
	return selected, nil
}

// splitOptions splits an option string such as "c_a" into its letters.
func splitOptions(s string) []string {
	var out []string
	for _, f := range strings.Split(s, "_") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

func cloneTemplate(t Template) Template {
	t.Params = slices.Clone(t.Params)
	t.Members = slices.Clone(t.Members)
	t.Options = slices.Clone(t.Options)
	return t
}
