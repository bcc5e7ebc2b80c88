package models

// CodeKind identifies the tier of a node in the chart of codes.
type CodeKind string

const (
	KindGroup    CodeKind = "GROUP"
	KindGeneral  CodeKind = "GENERAL"
	KindSpecific CodeKind = "SPECIFIC"
)

// Code is the persistence model of a chart-of-codes node.
type Code struct {
	CodeID       string   `db:"code_id"`
	Code         string   `db:"code"`
	Title        string   `db:"title"`
	Kind         CodeKind `db:"kind"`
	ParentCodeID *string  `db:"parent_code_id"`
	Nature       *string  `db:"nature"`
	Category     string   `db:"category"`
	IsActive     bool     `db:"is_active"`
	AuditFields
}
