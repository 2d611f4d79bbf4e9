// Package site defines the configuration aggregate consumed by the external
// documentation-site generator and the authoritative Oak Chain instance of it.
package site

import (
	"strings"

	"git.home.luguber.info/inful/oakdocs/internal/diagram"
	"git.home.luguber.info/inful/oakdocs/internal/head"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
)

// Appearance is the default color mode.
type Appearance string

const (
	AppearanceDark  Appearance = "dark"
	AppearanceLight Appearance = "light"
	AppearanceAuto  Appearance = "auto"
)

// SiteConfig is the aggregate root handed to the site generator. It is built
// once from literal data and treated as read-only afterwards.
type SiteConfig struct {
	Title           string         `yaml:"title" json:"title" validate:"required"`
	Description     string         `yaml:"description" json:"description" validate:"required"`
	Base            string         `yaml:"base" json:"base" validate:"required,startswith=/,endswith=/"`
	CleanURLs       bool           `yaml:"cleanUrls" json:"cleanUrls"`
	Appearance      Appearance     `yaml:"appearance" json:"appearance" validate:"required,oneof=dark light auto"`
	IgnoreDeadLinks bool           `yaml:"ignoreDeadLinks" json:"ignoreDeadLinks"`
	LastUpdated     bool           `yaml:"lastUpdated" json:"lastUpdated"`
	Head            head.List      `yaml:"head" json:"head"`
	Mermaid         diagram.Config `yaml:"mermaid" json:"mermaid"`
	ThemeConfig     ThemeConfig    `yaml:"themeConfig" json:"themeConfig"`
}

// ThemeConfig carries the options of the default theme.
type ThemeConfig struct {
	Logo        string          `yaml:"logo,omitempty" json:"logo,omitempty"`
	SiteTitle   string          `yaml:"siteTitle,omitempty" json:"siteTitle,omitempty"`
	Nav         nav.NavBar      `yaml:"nav" json:"nav" validate:"required,min=1"`
	Sidebar     *nav.SidebarMap `yaml:"sidebar" json:"sidebar" validate:"required"`
	SocialLinks []SocialLink    `yaml:"socialLinks,omitempty" json:"socialLinks,omitempty" validate:"dive"`
	Footer      Footer          `yaml:"footer" json:"footer"`
	Search      Search          `yaml:"search" json:"search"`
	EditLink    EditLink        `yaml:"editLink" json:"editLink"`
	Outline     Outline         `yaml:"outline" json:"outline"`
}

// SocialLink is an icon link rendered in the navigation bar.
type SocialLink struct {
	Icon string `yaml:"icon" json:"icon" validate:"required"`
	Link string `yaml:"link" json:"link" validate:"required,url"`
}

// Footer is shown on pages without a sidebar.
type Footer struct {
	Message   string `yaml:"message,omitempty" json:"message,omitempty"`
	Copyright string `yaml:"copyright,omitempty" json:"copyright,omitempty"`
}

// Search selects the search provider. "local" builds an in-browser index.
type Search struct {
	Provider string `yaml:"provider" json:"provider" validate:"required,oneof=local algolia"`
}

// PathPlaceholder is substituted with the page's source path in edit links.
const PathPlaceholder = ":path"

// EditLink configures the "edit this page" link.
type EditLink struct {
	Pattern string `yaml:"pattern,omitempty" json:"pattern,omitempty" validate:"omitempty,url,contains=:path"`
	Text    string `yaml:"text,omitempty" json:"text,omitempty"`
}

// Outline selects which heading levels appear in the page outline.
type Outline struct {
	Levels []int  `yaml:"level,flow" json:"level" validate:"len=2,dive,min=1,max=6"`
	Label  string `yaml:"label,omitempty" json:"label,omitempty"`
}

// EditURL expands the edit-link pattern for a content file path relative to
// the content root. It returns "" when edit links are disabled.
func (c *SiteConfig) EditURL(relPath string) string {
	p := c.ThemeConfig.EditLink.Pattern
	if p == "" {
		return ""
	}
	return strings.ReplaceAll(p, PathPlaceholder, strings.TrimPrefix(relPath, "/"))
}

// Links returns every configured link: nav, sidebar, then social links.
func (c *SiteConfig) Links() []nav.LinkRef {
	refs := c.ThemeConfig.Nav.Links()
	refs = append(refs, c.ThemeConfig.Sidebar.Links()...)
	for _, s := range c.ThemeConfig.SocialLinks {
		refs = append(refs, nav.LinkRef{Where: "social > " + s.Icon, Link: s.Link})
	}
	return refs
}

// SidebarFor resolves the sidebar applying to a page path, stripping the base path first.
func (c *SiteConfig) SidebarFor(pagePath string) ([]nav.Group, string, bool) {
	return c.ThemeConfig.Sidebar.Resolve(nav.StripBase(c.Base, pagePath))
}
