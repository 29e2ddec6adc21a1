package model

// Package model contains the domain records of the decisions registry.
// These are pure data structures with no database-specific dependencies;
// they can be used across layers (HTTP, service, repository) without
// coupling to persistence.

// Decision represents one judicial decision record (a judgment or an
// interlocutory order). The registry is externally populated; this system
// only reads it. Every attribute except the identifier is nullable, and the
// storage path may be absent when no document was archived for the record.
type Decision struct {
	NDetalle    string  `db:"ndetalle" json:"ndetalle"`
	OrganCode   *string `db:"codigo_organo" json:"codigo_organo"`
	AppealCode  *string `db:"codigo_recurso" json:"codigo_recurso"`
	Specialty   *string `db:"especialidad_expe" json:"especialidad_expe"`
	OrganDetail *string `db:"organo_detalle" json:"organo_detalle"`
	StoragePath *string `db:"url" json:"-"`
}

// SearchItem pairs a decision identifier with the path of its stored document.
type SearchItem struct {
	NDetalle    string  `db:"ndetalle"`
	StoragePath *string `db:"url"`
}

// FilterValues holds the distinct values usable as search filters, one sorted
// list per filterable attribute. Field names on the wire match the registry's
// column naming.
type FilterValues struct {
	OrganCodes   []string `json:"codigo_organo"`
	AppealCodes  []string `json:"codigo_recurso"`
	Specialties  []string `json:"especialidad_expe"`
	OrganDetails []string `json:"organo_detalle"`
	JudgeNames   []string `json:"nombre_juez"`
}
