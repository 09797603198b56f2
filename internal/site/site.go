// Package site emits the mkdocs.yml manifest for the generated pages.
package site

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/cameronsjo/fabricdocs/internal/report"
)

// FileName is the manifest file name inside the output directory.
const FileName = "mkdocs.yml"

// Built-in manifest URLs, used when no override is configured.
const (
	DefaultSiteURL = "https://your-org.github.io/vxlan-docs/"
	DefaultRepoURL = "https://github.com/your-org/your-repo/"
	DefaultEditURI = "edit/main/docs/"
)

// SiteNamePrefix precedes the fabric display name in site_name.
const SiteNamePrefix = "VXLAN Fabric Documentation - "

// NavEntry is one item of the navigation tree. A section has Children and
// no Page.
type NavEntry struct {
	Title    string
	Page     string
	Children []NavEntry
}

var nav = []NavEntry{
	{Title: "Home", Page: report.IndexPage},
	{Title: "Fabric Overview", Page: report.FabricPage},
	{Title: "Global Settings", Page: report.GlobalSettingsPage},
	{Title: "Topology", Children: []NavEntry{
		{Title: "Spines", Page: report.SpinesPage},
		{Title: "Leafs", Page: report.LeafsPage},
	}},
	{Title: "VRFs", Page: report.VRFsPage},
	{Title: "Networks", Page: report.NetworksPage},
}

var highlightLanguages = []string{
	"yaml", "python", "json", "bash", "console", "markdown", "ini",
	"diff", "nginx", "plaintext", "css", "javascript", "xml",
}

var markdownExtensions = []string{
	"admonition",
	"pymdownx.details",
	"pymdownx.superfences",
	"attr_list",
	"md_in_html",
}

// Options overrides the manifest URLs.
type Options struct {
	SiteURL string
	RepoURL string
	EditURI string
}

// Option configures Render.
type Option func(*Options)

// WithSiteURL overrides site_url. Empty keeps the default.
func WithSiteURL(u string) Option {
	return func(o *Options) {
		if u != "" {
			o.SiteURL = u
		}
	}
}

// WithRepoURL overrides repo_url. Empty keeps the default.
func WithRepoURL(u string) Option {
	return func(o *Options) {
		if u != "" {
			o.RepoURL = u
		}
	}
}

// WithEditURI overrides edit_uri. Empty keeps the default.
func WithEditURI(u string) Option {
	return func(o *Options) {
		if u != "" {
			o.EditURI = u
		}
	}
}

// Nav returns a copy of the navigation tree. It is the same for every
// fabric, whether or not each page was generated.
func Nav() []NavEntry {
	out := make([]NavEntry, len(nav))
	for i, e := range nav {
		out[i] = e
		out[i].Children = append([]NavEntry(nil), e.Children...)
	}
	return out
}

// Pages returns every page file the navigation links to, in order.
func Pages() []string {
	var pages []string
	var walk func([]NavEntry)
	walk = func(entries []NavEntry) {
		for _, e := range entries {
			if e.Page != "" {
				pages = append(pages, e.Page)
			}
			walk(e.Children)
		}
	}
	walk(nav)
	return pages
}

// Render returns the mkdocs.yml content for a fabric display name.
func Render(displayName string, opts ...Option) ([]byte, error) {
	o := Options{
		SiteURL: DefaultSiteURL,
		RepoURL: DefaultRepoURL,
		EditURI: DefaultEditURI,
	}
	for _, opt := range opts {
		opt(&o)
	}

	doc := mapping(
		"site_name", str(SiteNamePrefix+displayName),
		"site_url", str(o.SiteURL),
		"repo_url", str(o.RepoURL),
		"edit_uri", str(o.EditURI),
		"nav", navNode(nav),
		"theme", mapping(
			"name", str("material"),
			"highlightjs", boolean(true),
			"hljs_languages", strs(highlightLanguages),
		),
		"markdown_extensions", strs(markdownExtensions),
	)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileName, err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode %s: %w", FileName, err)
	}
	return buf.Bytes(), nil
}

func navNode(entries []NavEntry) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, e := range entries {
		var value *yaml.Node
		if len(e.Children) > 0 {
			value = navNode(e.Children)
		} else {
			value = str(e.Page)
		}
		seq.Content = append(seq.Content, mapping(e.Title, value))
	}
	return seq
}

// mapping builds an ordered mapping node from alternating keys and values.
func mapping(pairs ...any) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		n.Content = append(n.Content, str(pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return n
}

func str(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func boolean(b bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprint(b)}
}

func strs(values []string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode}
	for _, v := range values {
		n.Content = append(n.Content, str(v))
	}
	return n
}
