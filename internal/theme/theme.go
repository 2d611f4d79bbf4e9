package theme

import (
	"log/slog"
	"slices"

	"git.home.luguber.info/inful/oakdocs/internal/logfields"
)

// DefaultThemeName is the base theme shipped by the site generator.
const DefaultThemeName = "default"

// FlowGraph is the custom component registered for content authors.
var FlowGraph = Component{
	Name:   "FlowGraph",
	Source: "./components/FlowGraph.vue",
}

// CustomStylesheet is loaded by the site theme on top of the base styles.
const CustomStylesheet = "./custom.css"

// Theme is a named theme layered over an optional base. A theme recognises
// every component of its base plus its own registry.
type Theme struct {
	Name        string
	Base        *Theme
	Registry    *Registry
	Stylesheets []string
}

// Default returns the base theme with an empty component set.
func Default() *Theme {
	return &Theme{Name: DefaultThemeName, Registry: NewRegistry()}
}

// Extend derives a child theme from base. The child starts with no components
// of its own and inherits everything base recognises.
func Extend(base *Theme, name string, reg *Registry) *Theme {
	if reg == nil {
		reg = NewRegistry()
	}
	return &Theme{Name: name, Base: base, Registry: reg}
}

// Components returns every component name recognised by t and its bases, sorted and de-duplicated.
func (t *Theme) Components() []string {
	var out []string
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Registry != nil {
			out = append(out, cur.Registry.Names()...)
		}
	}
	slices.Sort(out)
	return slices.Compact(out)
}

// AllStylesheets returns the stylesheets of the chain, base first.
func (t *Theme) AllStylesheets() []string {
	if t == nil {
		return nil
	}
	return append(t.Base.AllStylesheets(), t.Stylesheets...)
}

// Recognizes reports whether name resolves anywhere in the theme chain.
func (t *Theme) Recognizes(name string) bool {
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Registry != nil && cur.Registry.Has(name) {
			return true
		}
	}
	return false
}

// Bootstrap registers the Oak Chain component into reg. It is safe to call
// repeatedly; later calls leave the registry unchanged.
func Bootstrap(reg *Registry) error {
	added, err := reg.Register(FlowGraph)
	if err != nil {
		return err
	}
	if added {
		slog.Debug("Registered theme component", logfields.Component(FlowGraph.Name))
	}
	return nil
}

// EnhanceApp builds the site theme: the default theme extended with the
// components registered by Bootstrap.
func EnhanceApp(reg *Registry) (*Theme, error) {
	if err := Bootstrap(reg); err != nil {
		return nil, err
	}
	th := Extend(Default(), "oak-chain", reg)
	th.Stylesheets = []string{CustomStylesheet}
	return th, nil
}
