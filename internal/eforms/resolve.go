package eforms

import "github.com/antchfx/xmlquery"

// The source format links entities by scheme-qualified identifier strings
// instead of structural references: a contracting party points at an
// organization only through a shared id, and a winner is reachable only via
// lot result -> tender -> tendering party -> organization. The resolvers below
// are that join, backed by id->node maps built once per document.

// Scheme names tagging identifier nodes.
const (
	schemeOrganization   = "organization"
	schemeTender         = "tender"
	schemeTenderingParty = "tendering-party"
	schemeLot            = "Lot"
	schemeNoticeID       = "notice-id"
)

// buildIndexes scans the document once per entity kind. Duplicate
// identifiers keep the first node in document order; the format does not
// guarantee uniqueness and first-match is the defined tie-break.
func (d *Document) buildIndexes() {
	if d.orgs != nil {
		return
	}
	d.orgs = indexByID(
		d.All("//efac:Organization"),
		"efac:Company/cac:PartyIdentification/cbc:ID[@schemeName='"+schemeOrganization+"']",
	)
	d.tenders = indexByID(
		d.All("//efac:NoticeResult/efac:LotTender"),
		"cbc:ID[@schemeName='"+schemeTender+"']",
	)
	d.parties = indexByID(
		d.All("//efac:NoticeResult/efac:TenderingParty"),
		"cbc:ID[@schemeName='"+schemeTenderingParty+"']",
	)
}

func indexByID(nodes []*xmlquery.Node, idPath string) map[string]*xmlquery.Node {
	idx := make(map[string]*xmlquery.Node, len(nodes))
	for _, n := range nodes {
		id := Text(n, idPath)
		if id == nil {
			continue
		}
		if _, taken := idx[*id]; taken {
			continue
		}
		idx[*id] = n
	}
	return idx
}

// OrganizationByID returns the organization entity whose company
// identification (scheme "organization") equals id, or nil. Absence is a
// normal outcome, not an error: the caller degrades the field and moves on.
func (d *Document) OrganizationByID(id string) *xmlquery.Node {
	d.buildIndexes()
	return d.orgs[id]
}

// TenderByID returns the tender entity under the notice result whose
// identifier (scheme "tender") equals id, or nil.
func (d *Document) TenderByID(id string) *xmlquery.Node {
	d.buildIndexes()
	return d.tenders[id]
}

// TenderingPartyByID returns the tendering party under the notice result
// whose identifier (scheme "tendering-party") equals id, or nil.
func (d *Document) TenderingPartyByID(id string) *xmlquery.Node {
	d.buildIndexes()
	return d.parties[id]
}
