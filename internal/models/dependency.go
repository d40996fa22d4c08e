package models

type DependencyType string

const (
	DepImport  DependencyType = "import"
	DepRequire DependencyType = "require"
	DepInclude DependencyType = "include"
	DepExtend  DependencyType = "extend"
	DepInherit DependencyType = "inherit"
)

// Dependency is one edge between two files, identified by path strings.
// Paths need not correspond to a stored File record.
type Dependency struct {
	RepoID         string         `json:"repoId"`
	FromFile       string         `json:"fromFile"`
	ToFile         string         `json:"toFile"`
	DependencyType DependencyType `json:"dependencyType"`
}

type GraphNode struct {
	ID    string `json:"id"`    // file path
	Label string `json:"label"` // basename
	Type  string `json:"type"`
}

type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type"`
}

type DependencyGraph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
