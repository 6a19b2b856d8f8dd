package eforms

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/procura/notice-harvester/internal/models"
)

// DefaultLanguage is the language tag used for localized name/description
// fields when the extractor is not configured otherwise. Notices routinely
// carry several language variants of the same field; exactly one is taken.
const DefaultLanguage = "DEU"

// Extractor converts one notice document into a flattened record. It is
// stateless across calls; the language tag is its only configuration.
type Extractor struct {
	lang string
}

func NewExtractor(lang string) *Extractor {
	if lang == "" {
		lang = DefaultLanguage
	}
	return &Extractor{lang: lang}
}

// Extract parses data and builds the record section by section. It fails
// only when the bytes do not parse; any field that cannot be read or
// resolved downstream is left absent and the rest of the record is kept.
func (x *Extractor) Extract(data []byte) (*models.Notice, error) {
	doc, err := Parse(data)
	if err != nil {
		return nil, err
	}

	n := &models.Notice{
		NoticeID:         doc.Text("//cbc:ID[@schemeName='" + schemeNoticeID + "']"),
		IssueDate:        doc.Text("//cbc:IssueDate"),
		IssueTime:        doc.Text("//cbc:IssueTime"),
		NoticeType:       doc.Text("//cbc:NoticeTypeCode"),
		RegulatoryDomain: doc.Text("//cbc:RegulatoryDomain"),
	}
	n.ContractingParty = x.contractingParty(doc)
	n.Project = x.project(doc)
	n.Lots = x.lots(doc)
	n.Financial = x.financial(doc)
	return n, nil
}

// localized builds the path of a language-filtered child under base.
func (x *Extractor) localized(base, tag string) string {
	return fmt.Sprintf("%s/cbc:%s[@languageID='%s']", base, tag, x.lang)
}

// contractingParty reads the buyer's organization reference and projects the
// resolved organization's company record. An unreadable reference or an
// unresolvable id leaves the section empty.
func (x *Extractor) contractingParty(doc *Document) *models.ContractingParty {
	id := doc.Text("//cac:ContractingParty//cbc:ID[@schemeName='" + schemeOrganization + "']")
	if id == nil {
		return nil
	}
	org := doc.OrganizationByID(*id)
	if org == nil {
		return nil
	}

	const company = "efac:Company"
	return &models.ContractingParty{
		Name:         Text(org, x.localized(company+"/cac:PartyName", "Name")),
		City:         Text(org, company+"/cac:PostalAddress/cbc:CityName"),
		PostalCode:   Text(org, company+"/cac:PostalAddress/cbc:PostalZone"),
		NutsCode:     Text(org, company+"/cac:PostalAddress/cbc:CountrySubentityCode"),
		CountryCode:  Text(org, company+"/cac:PostalAddress/cac:Country/cbc:IdentificationCode"),
		Website:      Text(org, company+"/cbc:WebsiteURI"),
		BuyerType:    doc.Text("//cac:ContractingParty/cac:ContractingPartyType/cbc:PartyTypeCode"),
		ActivityType: doc.Text("//cac:ContractingParty/cac:ContractingActivity/cbc:ActivityTypeCode"),
	}
}

// project reads the first top-level procurement project subtree.
func (x *Extractor) project(doc *Document) *models.Project {
	node := doc.First("//cac:ProcurementProject")
	if node == nil {
		return nil
	}
	return &models.Project{
		ID:              Text(node, "cbc:ID"),
		Name:            Text(node, x.localized(".", "Name")),
		Description:     Text(node, x.localized(".", "Description")),
		ProcurementType: Text(node, "cbc:ProcurementTypeCode"),
		CPVCode:         Text(node, "cac:MainCommodityClassification/cbc:ItemClassificationCode"),
		Location:        location(node, "cac:RealizedLocation/cac:Address"),
	}
}

func location(n *xmlquery.Node, base string) models.Location {
	return models.Location{
		Street:      Text(n, base+"/cbc:StreetName"),
		City:        Text(n, base+"/cbc:CityName"),
		PostalCode:  Text(n, base+"/cbc:PostalZone"),
		NutsCode:    Text(n, base+"/cbc:CountrySubentityCode"),
		CountryCode: Text(n, base+"/cac:Country/cbc:IdentificationCode"),
	}
}

// lots reads every lot element in document order. The per-lot project
// subtree may be absent entirely; its fields then stay nil.
func (x *Extractor) lots(doc *Document) []models.Lot {
	lots := []models.Lot{}
	for _, ln := range doc.All("//cac:ProcurementProjectLot") {
		const base = "cac:ProcurementProject"
		lots = append(lots, models.Lot{
			ID:              Text(ln, "cbc:ID[@schemeName='"+schemeLot+"']"),
			Name:            Text(ln, x.localized(base, "Name")),
			Description:     Text(ln, x.localized(base, "Description")),
			ProcurementType: Text(ln, base+"/cbc:ProcurementTypeCode"),
			CPVCode:         Text(ln, base+"/cac:MainCommodityClassification/cbc:ItemClassificationCode"),
			PlannedPeriod: models.Period{
				StartDate: Text(ln, base+"/cac:PlannedPeriod/cbc:StartDate"),
				EndDate:   Text(ln, base+"/cac:PlannedPeriod/cbc:EndDate"),
			},
			Location: location(ln, base+"/cac:RealizedLocation/cac:Address"),
		})
	}
	return lots
}

// financial reads the notice-result totals and one result per lot-result
// element, resolving each winner through the identifier chain.
func (x *Extractor) financial(doc *Document) models.Financial {
	fin := models.Financial{
		TotalAmount: doc.Num("//efac:NoticeResult/cbc:TotalAmount"),
		Currency:    doc.Attr("//efac:NoticeResult/cbc:TotalAmount", "currencyID"),
		LotResults:  []models.LotResult{},
	}

	for _, lr := range doc.All("//efac:NoticeResult/efac:LotResult") {
		res := models.LotResult{
			LotID:              Text(lr, "efac:TenderLot/cbc:ID[@schemeName='"+schemeLot+"']"),
			HigherTenderAmount: Num(lr, "cbc:HigherTenderAmount"),
			LowerTenderAmount:  Num(lr, "cbc:LowerTenderAmount"),
		}
		if tenderID := Text(lr, "efac:LotTender/cbc:ID[@schemeName='"+schemeTender+"']"); tenderID != nil {
			res.WinnerName = x.winnerName(doc, *tenderID)
		}
		fin.LotResults = append(fin.LotResults, res)
	}
	return fin
}

// winnerName walks tender -> tendering party -> organization and returns the
// resolved organization's company name. Any missing hop short-circuits to
// nil: the winner is simply unknown for that lot result.
func (x *Extractor) winnerName(doc *Document, tenderID string) *string {
	tender := doc.TenderByID(tenderID)
	if tender == nil {
		return nil
	}
	partyID := Text(tender, "efac:TenderingParty/cbc:ID[@schemeName='"+schemeTenderingParty+"']")
	if partyID == nil {
		return nil
	}
	party := doc.TenderingPartyByID(*partyID)
	if party == nil {
		return nil
	}
	orgID := Text(party, "efac:Tenderer/cbc:ID[@schemeName='"+schemeOrganization+"']")
	if orgID == nil {
		return nil
	}
	org := doc.OrganizationByID(*orgID)
	if org == nil {
		return nil
	}
	return Text(org, x.localized("efac:Company/cac:PartyName", "Name"))
}
