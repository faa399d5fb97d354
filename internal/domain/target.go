package domain

import "strings"

// TargetKind tags which half of a SearchTarget is populated.
type TargetKind string

const (
	TargetCompanyName TargetKind = "company_name"
	TargetCompanyURL  TargetKind = "company_url"
)

// SearchTarget is either a company name or a company URL, never both.
type SearchTarget struct {
	Kind  TargetKind `json:"kind"`
	Value string     `json:"value"`
}

// NewSearchTarget builds a target from the two form fields. Exactly one of name
// and url must be non-blank; anything else is a validation error.
func NewSearchTarget(name, url string) (SearchTarget, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)

	switch {
	case name != "" && url == "":
		return SearchTarget{Kind: TargetCompanyName, Value: name}, nil
	case url != "" && name == "":
		return SearchTarget{Kind: TargetCompanyURL, Value: url}, nil
	default:
		return SearchTarget{}, NewValidationError(MsgMissingTarget)
	}
}

// IsURL reports whether the target carries a company URL.
func (t SearchTarget) IsURL() bool {
	return t.Kind == TargetCompanyURL
}
