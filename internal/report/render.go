package report

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"github.com/cameronsjo/fabricdocs/internal/fabric"
	"github.com/cameronsjo/fabricdocs/internal/tree"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Page titles.
const (
	IndexTitle          = "VXLAN Fabric Documentation"
	FabricTitle         = "Fabric Overview"
	GlobalSettingsTitle = "Global Settings"
	SpinesTitle         = "Spine Switches"
	LeafsTitle          = "Leaf Switches"
	VRFsTitle           = "VRFs"
	NetworksTitle       = "Networks"
)

// Renderer executes the page templates.
// It holds no per-run state and is safe for concurrent use.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded page templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("pages").
		Funcs(sprig.TxtFuncMap()).
		Funcs(reportFuncs()).
		ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse report templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// reportFuncs returns the template functions added on top of sprig.
func reportFuncs() template.FuncMap {
	return template.FuncMap{
		"humanize": Humanize,
		"cell":     Cell,
	}
}

func (r *Renderer) execute(name, title string, data any) (*Page, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &Page{Name: name, Title: title, Body: buf.String()}, nil
}

// Index renders the landing page. It is always produced.
func (r *Renderer) Index(info IndexInfo) (*Page, error) {
	data := struct {
		IndexInfo
		Title string
	}{IndexInfo: info, Title: IndexTitle}
	return r.execute(IndexPage, IndexTitle, data)
}

// Fabric renders one table over the fabric section.
func (r *Renderer) Fabric(cfg *fabric.Config) (*Page, error) {
	section, ok := cfg.Fabric()
	if !ok {
		return nil, nil
	}
	return r.execute(FabricPage, FabricTitle, pageData{Title: FabricTitle, Rows: settingRows(section)})
}

// GlobalSettings renders one table over global.ibgp.
func (r *Renderer) GlobalSettings(cfg *fabric.Config) (*Page, error) {
	ibgp, ok := cfg.IBGP()
	if !ok {
		return nil, nil
	}
	return r.execute(GlobalSettingsPage, GlobalSettingsTitle, pageData{Title: GlobalSettingsTitle, Rows: settingRows(ibgp)})
}

// Spines renders one section per spine switch.
func (r *Renderer) Spines(cfg *fabric.Config) (*Page, error) {
	switches, ok := cfg.Switches()
	if !ok {
		return nil, nil
	}

	data := pageData{Title: SpinesTitle}
	for _, sw := range fabric.Spines(switches) {
		data.Sections = append(data.Sections, section{
			Title: fabric.SwitchTitle(sw, "Unnamed Spine"),
			Rows:  settingRows(sw),
		})
	}
	return r.execute(SpinesPage, SpinesTitle, data)
}

// Leafs renders one section per non-spine switch, expanding interfaces.
func (r *Renderer) Leafs(cfg *fabric.Config) (*Page, error) {
	switches, ok := cfg.Switches()
	if !ok {
		return nil, nil
	}

	data := pageData{Title: LeafsTitle}
	for _, sw := range fabric.Leafs(switches) {
		data.Sections = append(data.Sections, section{
			Title: fabric.SwitchTitle(sw, "Unnamed Leaf"),
			Rows:  leafRows(sw),
		})
	}
	return r.execute(LeafsPage, LeafsTitle, data)
}

// VRFs renders one section per VRF followed by its attached switches, if any.
func (r *Renderer) VRFs(cfg *fabric.Config) (*Page, error) {
	vrfs, ok := cfg.VRFs()
	if !ok {
		return nil, nil
	}
	overlay, _ := cfg.Overlay()

	data := pageData{Title: VRFsTitle}
	for _, vrf := range vrfs.Mappings() {
		group := fabric.GroupRef(vrf, fabric.VRFAttachGroupKey)
		data.Sections = append(data.Sections, section{
			Title:    entityTitle(vrf, "Unnamed VRF"),
			Rows:     settingRows(vrf),
			Attached: fabric.ResolveVRFAttachments(group, overlay),
		})
	}
	return r.execute(VRFsPage, VRFsTitle, data)
}

// Networks renders one section per network followed by its attached
// switches and ports. The attachment heading is always present.
func (r *Renderer) Networks(cfg *fabric.Config) (*Page, error) {
	networks, ok := cfg.Networks()
	if !ok {
		return nil, nil
	}
	overlay, _ := cfg.Overlay()

	data := pageData{Title: NetworksTitle}
	for _, network := range networks.Mappings() {
		group := fabric.GroupRef(network, fabric.NetworkAttachGroupKey)

		var switches []attachedSwitch
		for _, sw := range fabric.ResolveNetworkAttachments(group, overlay) {
			hostname, _ := sw.String("hostname")
			switches = append(switches, attachedSwitch{
				Hostname: hostname,
				Ports:    fabric.SwitchPorts(sw),
			})
		}

		data.Sections = append(data.Sections, section{
			Title:    entityTitle(network, "Unnamed Network"),
			Rows:     settingRows(network),
			Switches: switches,
		})
	}
	return r.execute(NetworksPage, NetworksTitle, data)
}

// All renders the index and every page whose section is present, in
// navigation order.
func (r *Renderer) All(cfg *fabric.Config, info IndexInfo) ([]Page, error) {
	index, err := r.Index(info)
	if err != nil {
		return nil, err
	}
	pages := []Page{*index}

	builders := []func(*fabric.Config) (*Page, error){
		r.Fabric,
		r.GlobalSettings,
		r.Spines,
		r.Leafs,
		r.VRFs,
		r.Networks,
	}
	for _, build := range builders {
		page, err := build(cfg)
		if err != nil {
			return nil, err
		}
		if page != nil {
			pages = append(pages, *page)
		}
	}

	return pages, nil
}

func entityTitle(entity *tree.Mapping, fallback string) string {
	if name, ok := entity.String("name"); ok {
		return name
	}
	return fallback
}
