package types

import "time"

// Reference points at another schema entity by id (and optionally codename).
type Reference struct {
	ID       string `json:"id,omitempty"`
	Codename string `json:"codename,omitempty"`
}

// ContentType is a named schema definition made of an ordered element list.
type ContentType struct {
	ID       string   `json:"id"`
	Codename string   `json:"codename"`
	Name     string   `json:"name"`
	Elements Elements `json:"elements"`
}

// ContentTypeSnippet is a reusable element group that content types extend.
type ContentTypeSnippet struct {
	ID       string   `json:"id"`
	Codename string   `json:"codename"`
	Name     string   `json:"name"`
	Elements Elements `json:"elements"`
}

// TaxonomyGroup is a named controlled vocabulary.
type TaxonomyGroup struct {
	ID       string         `json:"id"`
	Codename string         `json:"codename"`
	Name     string         `json:"name"`
	Terms    []TaxonomyTerm `json:"terms,omitempty"`
}

// TaxonomyTerm is one (possibly nested) term of a taxonomy group.
type TaxonomyTerm struct {
	ID       string         `json:"id"`
	Codename string         `json:"codename"`
	Name     string         `json:"name"`
	Terms    []TaxonomyTerm `json:"terms,omitempty"`
}

// ProjectInfo identifies the project a snapshot was fetched from.
type ProjectInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Environment string `json:"environment,omitempty"`
}

type Language struct {
	ID         string     `json:"id"`
	Codename   string     `json:"codename"`
	Name       string     `json:"name"`
	IsActive   bool       `json:"is_active"`
	IsDefault  bool       `json:"is_default"`
	FallbackTo *Reference `json:"fallback_language,omitempty"`
}

type Collection struct {
	ID       string `json:"id"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

type WorkflowStep struct {
	ID       string `json:"id"`
	Codename string `json:"codename"`
	Name     string `json:"name"`
}

type Workflow struct {
	ID       string         `json:"id"`
	Codename string         `json:"codename"`
	Name     string         `json:"name"`
	Steps    []WorkflowStep `json:"steps,omitempty"`
}

type Role struct {
	ID       string `json:"id"`
	Codename string `json:"codename,omitempty"`
	Name     string `json:"name"`
}

type AssetFolder struct {
	ID         string        `json:"id"`
	Codename   string        `json:"codename"`
	Name       string        `json:"name"`
	Folders    []AssetFolder `json:"folders,omitempty"`
	ExternalID string        `json:"external_id,omitempty"`
}

type Webhook struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	URL          string `json:"url"`
	Enabled      bool   `json:"enabled"`
	LastModified string `json:"last_modified,omitempty"`
}

// Snapshot is everything fetched for one generation run.
type Snapshot struct {
	ProjectID    string               `json:"project_id"`
	Project      *ProjectInfo         `json:"project,omitempty"`
	Types        []ContentType        `json:"types"`
	Snippets     []ContentTypeSnippet `json:"snippets"`
	Taxonomies   []TaxonomyGroup      `json:"taxonomies"`
	Languages    []Language           `json:"languages,omitempty"`
	Collections  []Collection         `json:"collections,omitempty"`
	Workflows    []Workflow           `json:"workflows,omitempty"`
	Roles        []Role               `json:"roles,omitempty"`
	AssetFolders []AssetFolder        `json:"asset_folders,omitempty"`
	Webhooks     []Webhook            `json:"webhooks,omitempty"`
	FetchedAt    time.Time            `json:"fetched_at"`
}

// SnapshotInfo is the listing view of a stored snapshot.
type SnapshotInfo struct {
	ID            string    `json:"id"`
	ProjectID     string    `json:"project_id"`
	ProjectName   string    `json:"project_name"`
	TypeCount     int       `json:"type_count"`
	SnippetCount  int       `json:"snippet_count"`
	TaxonomyCount int       `json:"taxonomy_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExportSettings toggles the project facets that are fetched and generated.
type ExportSettings struct {
	Languages    bool `yaml:"languages" json:"languages"`
	Collections  bool `yaml:"collections" json:"collections"`
	Workflows    bool `yaml:"workflows" json:"workflows"`
	Roles        bool `yaml:"roles" json:"roles"`
	AssetFolders bool `yaml:"asset_folders" json:"asset_folders"`
	Webhooks     bool `yaml:"webhooks" json:"webhooks"`
}

// ExportAll enables every facet.
func ExportAll() ExportSettings {
	return ExportSettings{Languages: true, Collections: true, Workflows: true, Roles: true, AssetFolders: true, Webhooks: true}
}
