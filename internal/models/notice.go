package models

// Notice is the flattened record extracted from one eForms notice document.
// Optional fields are pointers; nil means the source document carried no
// value, which is distinct from an empty string.
type Notice struct {
	NoticeID         *string           `json:"notice_id"`
	IssueDate        *string           `json:"issue_date"`
	IssueTime        *string           `json:"issue_time"`
	NoticeType       *string           `json:"notice_type"`
	RegulatoryDomain *string           `json:"regulatory_domain"`
	ContractingParty *ContractingParty `json:"contracting_party"`
	Project          *Project          `json:"project"`
	Lots             []Lot             `json:"lots"`
	Financial        Financial         `json:"financial"`
}

// ContractingParty is the buyer projection of an organization record.
type ContractingParty struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	PostalCode   *string `json:"postal_code"`
	NutsCode     *string `json:"nuts_code"`
	CountryCode  *string `json:"country_code"`
	Website      *string `json:"website"`
	BuyerType    *string `json:"buyer_type"`
	ActivityType *string `json:"activity_type"`
}

type Location struct {
	Street      *string `json:"street"`
	City        *string `json:"city"`
	PostalCode  *string `json:"postal_code"`
	NutsCode    *string `json:"nuts_code"`
	CountryCode *string `json:"country_code"`
}

type Project struct {
	ID              *string  `json:"id"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	ProcurementType *string  `json:"procurement_type"`
	CPVCode         *string  `json:"cpv_code"`
	Location        Location `json:"location"`
}

type Period struct {
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
}

type Lot struct {
	ID              *string  `json:"id"`
	Name            *string  `json:"name"`
	Description     *string  `json:"description"`
	ProcurementType *string  `json:"procurement_type"`
	CPVCode         *string  `json:"cpv_code"`
	PlannedPeriod   Period   `json:"planned_period"`
	Location        Location `json:"location"`
}

type Financial struct {
	TotalAmount *float64    `json:"total_amount"`
	Currency    *string     `json:"currency"`
	LotResults  []LotResult `json:"lot_results"`
}

type LotResult struct {
	LotID *string `json:"lot_id"`
	// ContractValue is reserved; no extraction rule populates it yet.
	ContractValue      *float64 `json:"contract_value"`
	HigherTenderAmount *float64 `json:"higher_tender_amount"`
	LowerTenderAmount  *float64 `json:"lower_tender_amount"`
	WinnerName         *string  `json:"winner_name"`
}
