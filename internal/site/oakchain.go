package site

import (
	"git.home.luguber.info/inful/oakdocs/internal/diagram"
	"git.home.luguber.info/inful/oakdocs/internal/head"
	"git.home.luguber.info/inful/oakdocs/internal/nav"
)

const repoURL = "https://github.com/oak-chain/oak-chain"

// OakChain returns the authoritative site configuration of the Oak Chain
// documentation. Each call builds a fresh value from literal data.
func OakChain() *SiteConfig {
	return &SiteConfig{
		Title:           "Oak Chain",
		Description:     "Documentation for Oak Chain: architecture, consensus, storage and operations.",
		Base:            "/",
		CleanURLs:       true,
		Appearance:      AppearanceDark,
		IgnoreDeadLinks: true,
		LastUpdated:     true,
		Head: head.List{
			head.Link(head.A("rel", "icon"), head.A("type", "image/svg+xml"), head.A("href", "/logo.svg")),
			head.Meta(head.A("name", "theme-color"), head.A("content", "#0d1117")),
			head.Meta(head.A("property", "og:title"), head.A("content", "Oak Chain")),
			head.Meta(head.A("property", "og:type"), head.A("content", "website")),
			head.Meta(head.A("property", "og:description"), head.A("content", "Architecture and operations guide for Oak Chain.")),
		},
		Mermaid: diagram.DarkConfig(),
		ThemeConfig: ThemeConfig{
			Logo:      "/logo.svg",
			SiteTitle: "Oak Chain",
			Nav: nav.NavBar{
				nav.MustItem("Guide", "/guide/"),
				nav.MustItem("Architecture", "/architecture/"),
				nav.MustItem("Operations", "/operations/"),
				nav.MustItem("ADRs", "/adr/"),
			},
			Sidebar: oakChainSidebar(),
			SocialLinks: []SocialLink{
				{Icon: "github", Link: repoURL},
			},
			Footer: Footer{
				Message:   "Released under the Apache-2.0 License.",
				Copyright: "Copyright © Oak Chain contributors",
			},
			Search: Search{Provider: "local"},
			EditLink: EditLink{
				Pattern: repoURL + "/edit/main/docs/" + PathPlaceholder,
				Text:    "Edit this page on GitHub",
			},
			Outline: Outline{Levels: []int{2, 3}, Label: "On this page"},
		},
	}
}

func oakChainSidebar() *nav.SidebarMap {
	return nav.NewSidebarMap().
		MustAdd("/",
			nav.MustGroup("Introduction",
				nav.MustItem("What is Oak Chain?", "/guide/"),
				nav.MustItem("Getting Started", "/guide/getting-started"),
				nav.MustItem("Glossary", "/guide/glossary"),
			),
			nav.MustGroup("Architecture",
				nav.MustItem("Overview", "/architecture/"),
				nav.MustItem("Consensus", "/architecture/consensus"),
				nav.MustItem("Segment Store", "/architecture/segment-store"),
				nav.MustItem("Networking", "/architecture/networking"),
				nav.MustItem("Validators", "/architecture/validators"),
			),
			nav.MustGroup("Operations",
				nav.MustItem("Running a Node", "/operations/"),
				nav.MustItem("Configuration", "/operations/configuration"),
				nav.MustItem("Monitoring", "/operations/monitoring"),
			).Collapsible(),
		).
		MustAdd("/adr/",
			nav.MustGroup("Architecture Decision Records",
				nav.MustItem("Index", "/adr/"),
				nav.MustItem("ADR-001: Record Architecture Decisions", "/adr/001-record-architecture-decisions"),
				nav.MustItem("ADR-002: Oak Segment Store", "/adr/002-oak-segment-store"),
				nav.MustItem("ADR-003: Aeron Consensus", "/adr/003-aeron-consensus"),
				nav.MustItem("ADR-004: Validator Set Changes", "/adr/004-validator-set-changes"),
			),
		)
}
