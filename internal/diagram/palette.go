// Package diagram supplies the palette and theme payload handed to the
// external Mermaid renderer, and inspects markdown for diagram blocks.
package diagram

import (
	"maps"
	"slices"
)

// Role is a semantic color role understood by the diagram renderer.
type Role string

const (
	Background          Role = "background"
	PrimaryColor        Role = "primaryColor"
	PrimaryTextColor    Role = "primaryTextColor"
	PrimaryBorderColor  Role = "primaryBorderColor"
	SecondaryColor      Role = "secondaryColor"
	TertiaryColor       Role = "tertiaryColor"
	LineColor           Role = "lineColor"
	TextColor           Role = "textColor"
	MainBkg             Role = "mainBkg"
	NodeBorder          Role = "nodeBorder"
	ClusterBkg          Role = "clusterBkg"
	ClusterBorder       Role = "clusterBorder"
	TitleColor          Role = "titleColor"
	EdgeLabelBackground Role = "edgeLabelBackground"
	NoteBkgColor        Role = "noteBkgColor"
	NoteTextColor       Role = "noteTextColor"
	NoteBorderColor     Role = "noteBorderColor"
	ActorBkg            Role = "actorBkg"
	ActorBorder         Role = "actorBorder"
	ActorTextColor      Role = "actorTextColor"
	SignalColor         Role = "signalColor"
	SignalTextColor     Role = "signalTextColor"
	LabelBoxBkgColor    Role = "labelBoxBkgColor"
	FontFamily          Role = "fontFamily"
)

var roles = []Role{
	Background, PrimaryColor, PrimaryTextColor, PrimaryBorderColor,
	SecondaryColor, TertiaryColor, LineColor, TextColor, MainBkg,
	NodeBorder, ClusterBkg, ClusterBorder, TitleColor, EdgeLabelBackground,
	NoteBkgColor, NoteTextColor, NoteBorderColor, ActorBkg, ActorBorder,
	ActorTextColor, SignalColor, SignalTextColor, LabelBoxBkgColor, FontFamily,
}

// Roles returns every recognised role in a stable order.
func Roles() []Role { return slices.Clone(roles) }

// Known reports whether r is a recognised role.
func Known(r Role) bool { return slices.Contains(roles, r) }

// Variables maps roles to color (or font) values.
type Variables map[Role]string

// Compose returns a new palette: base overlaid by each override in turn.
// Unrecognised roles and empty values are dropped.
func Compose(base Variables, overrides ...Variables) Variables {
	out := make(Variables, len(roles))
	for _, layer := range append([]Variables{base}, overrides...) {
		for r, v := range layer {
			if Known(r) && v != "" {
				out[r] = v
			}
		}
	}
	return out
}

// Missing lists recognised roles with no explicit value; the renderer falls back to its defaults for those.
func Missing(v Variables) []Role {
	var out []Role
	for _, r := range roles {
		if v[r] == "" {
			out = append(out, r)
		}
	}
	return out
}

// Equal reports whether two palettes hold identical values.
func Equal(a, b Variables) bool { return maps.Equal(a, b) }

// DarkPalette is the site's dark-mode diagram palette; every role is set.
func DarkPalette() Variables {
	return Variables{
		Background:          "#0d1117",
		PrimaryColor:        "#1f3a2b",
		PrimaryTextColor:    "#e6edf3",
		PrimaryBorderColor:  "#3fb950",
		SecondaryColor:      "#1c2d3f",
		TertiaryColor:       "#2d2a1f",
		LineColor:           "#8b949e",
		TextColor:           "#e6edf3",
		MainBkg:             "#161b22",
		NodeBorder:          "#3fb950",
		ClusterBkg:          "#11161d",
		ClusterBorder:       "#30363d",
		TitleColor:          "#f0f6fc",
		EdgeLabelBackground: "#161b22",
		NoteBkgColor:        "#21262d",
		NoteTextColor:       "#c9d1d9",
		NoteBorderColor:     "#d29922",
		ActorBkg:            "#1f3a2b",
		ActorBorder:         "#3fb950",
		ActorTextColor:      "#e6edf3",
		SignalColor:         "#8b949e",
		SignalTextColor:     "#e6edf3",
		LabelBoxBkgColor:    "#161b22",
		FontFamily:          "Inter, ui-sans-serif, system-ui, sans-serif",
	}
}

// ThemeDark is the renderer theme name the palette is written for.
const ThemeDark = "dark"

// Config is the payload consumed by the diagram-rendering extension.
type Config struct {
	Theme          string    `yaml:"theme" json:"theme"`
	ThemeVariables Variables `yaml:"themeVariables" json:"themeVariables"`
}

// DarkConfig returns the renderer configuration for the dark theme.
func DarkConfig() Config {
	return Config{Theme: ThemeDark, ThemeVariables: DarkPalette()}
}

// Complete reports whether every recognised role has an explicit value.
func (c Config) Complete() bool { return len(Missing(c.ThemeVariables)) == 0 }
