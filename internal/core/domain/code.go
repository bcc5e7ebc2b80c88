package domain

import (
	"fmt"
	"strings"
)

// CodeKind identifies the tier of a node in the chart of codes.
type CodeKind string

const (
	KindGroup    CodeKind = "GROUP"
	KindGeneral  CodeKind = "GENERAL"
	KindSpecific CodeKind = "SPECIFIC"
)

// CodeNature indicates which side a code normally carries its balance on.
type CodeNature string

const (
	NatureDebit  CodeNature = "DEBIT"
	NatureCredit CodeNature = "CREDIT"
)

// CodeCategory classifies a group code for balance sheet / P&L partitioning.
// Descendants inherit the category of their group root.
type CodeCategory string

const (
	CategoryAsset     CodeCategory = "ASSET"
	CategoryLiability CodeCategory = "LIABILITY"
	CategoryEquity    CodeCategory = "EQUITY"
	CategoryRevenue   CodeCategory = "REVENUE"
	CategoryExpense   CodeCategory = "EXPENSE"
)

// Code represents a single node in the chart of codes.
// Group and general nodes are rollup keys only; specific nodes are the
// posting targets for journal items.
type Code struct {
	CodeID       string       `json:"codeID"`       // Primary Key (UUID)
	Code         string       `json:"code"`         // Unique digit string; length determines tier
	Title        string       `json:"title"`        //
	Kind         CodeKind     `json:"kind"`         // GROUP, GENERAL or SPECIFIC
	ParentCodeID *string      `json:"parentCodeID"` // Nullable FK -> codes.code_id
	Nature       *CodeNature  `json:"nature"`       // Required on SPECIFIC, nil otherwise
	Category     CodeCategory `json:"category"`     // Set on GROUP codes, inherited below
	IsActive     bool         `json:"isActive"`
	AuditFields
}

// IsPostable reports whether journal items may target this code.
func (c *Code) IsPostable() bool {
	return c.Kind == KindSpecific && c.IsActive
}

// CodeFormat captures the digit-length convention that maps a code string to
// its tier: len==GroupLen is a group, len==GeneralLen is a general, anything
// longer than GeneralLen is a specific. The lengths are configurable because
// the convention is historical and format-fragile.
type CodeFormat struct {
	GroupLen   int
	GeneralLen int
}

// DefaultCodeFormat is the conventional 2/4-digit layout.
var DefaultCodeFormat = CodeFormat{GroupLen: 2, GeneralLen: 4}

func isAllDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// KindFor derives the tier of a code string from its digit length.
func (f CodeFormat) KindFor(code string) (CodeKind, error) {
	if !isAllDigits(code) {
		return "", fmt.Errorf("code %q must contain only digits", code)
	}
	switch {
	case len(code) == f.GroupLen:
		return KindGroup, nil
	case len(code) == f.GeneralLen:
		return KindGeneral, nil
	case len(code) > f.GeneralLen:
		return KindSpecific, nil
	default:
		return "", fmt.Errorf("code %q has no tier for length %d", code, len(code))
	}
}

// CheckParent validates the parent linkage of a code: a general's parent must
// be a group whose code prefixes it, a specific's parent must be a general
// whose code prefixes it, and a group must have no parent at all.
func (f CodeFormat) CheckParent(code string, kind CodeKind, parent *Code) error {
	switch kind {
	case KindGroup:
		if parent != nil {
			return fmt.Errorf("group code %q must not have a parent", code)
		}
		return nil
	case KindGeneral:
		if parent == nil {
			return fmt.Errorf("general code %q requires a group parent", code)
		}
		if parent.Kind != KindGroup {
			return fmt.Errorf("parent of general code %q must be a group, got %s", code, parent.Kind)
		}
	case KindSpecific:
		if parent == nil {
			return fmt.Errorf("specific code %q requires a general parent", code)
		}
		if parent.Kind != KindGeneral {
			return fmt.Errorf("parent of specific code %q must be a general, got %s", code, parent.Kind)
		}
	default:
		return fmt.Errorf("unknown code kind %q", kind)
	}
	if !strings.HasPrefix(code, parent.Code) {
		return fmt.Errorf("code %q does not extend its parent code %q", code, parent.Code)
	}
	return nil
}
