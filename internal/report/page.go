package report

// Page file names, relative to the docs directory.
const (
	IndexPage          = "index.md"
	FabricPage         = "fabric.md"
	GlobalSettingsPage = "global_settings.md"
	SpinesPage         = "topology_spines.md"
	LeafsPage          = "topology_leafs.md"
	VRFsPage           = "vrfs.md"
	NetworksPage       = "networks.md"
)

// Page is one rendered markdown document.
type Page struct {
	// Name is the file name relative to the docs directory.
	Name string

	// Title is the top-level heading of the page.
	Title string

	// Body is the markdown content.
	Body string
}

// IndexInfo describes the run for the landing page.
type IndexInfo struct {
	// InputDir is the directory the documents were read from.
	InputDir string

	// Timestamp is shown as the generation time. Empty renders as N/A.
	Timestamp string

	// Files lists every discovered document.
	Files []string

	// Skipped lists documents that could not be parsed.
	Skipped []string
}

// row is one key/value line of a settings table. Both fields are ready to
// be placed in a markdown cell.
type row struct {
	Key   string
	Value string
}

// section is a titled block of a page.
type section struct {
	Title    string
	Rows     []row
	Attached []string
	Switches []attachedSwitch
}

type attachedSwitch struct {
	Hostname string
	Ports    []string
}

// pageData is the template input for every page except the index.
type pageData struct {
	Title    string
	Rows     []row
	Sections []section
}
