package eforms

// Shared documents for the package tests. The award notice covers the full
// field set including a resolvable winner chain; the minimal notice has
// almost everything missing.

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>
<ContractAwardNotice xmlns="urn:oasis:names:specification:ubl:schema:xsd:ContractAwardNotice-2"
  xmlns:cbc="urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
  xmlns:cac="urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
  xmlns:efac="http://data.europa.eu/p27/eforms-ubl-extension-aggregate-components/1"
  xmlns:efbc="http://data.europa.eu/p27/eforms-ubl-extension-basic-components/1">`

const awardNotice = xmlHeader + `
  <cbc:ID schemeName="notice-id">9f3a2c1e-0001</cbc:ID>
  <cbc:IssueDate>2024-12-03</cbc:IssueDate>
  <cbc:IssueTime>09:30:00+01:00</cbc:IssueTime>
  <cbc:NoticeTypeCode>can-standard</cbc:NoticeTypeCode>
  <cbc:RegulatoryDomain>32014L0024</cbc:RegulatoryDomain>
  <cac:ContractingParty>
    <cac:ContractingPartyType><cbc:PartyTypeCode>la</cbc:PartyTypeCode></cac:ContractingPartyType>
    <cac:ContractingActivity><cbc:ActivityTypeCode>gen-pub</cbc:ActivityTypeCode></cac:ContractingActivity>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-0001</cbc:ID></cac:PartyIdentification>
    </cac:Party>
  </cac:ContractingParty>
  <cac:ProcurementProject>
    <cbc:ID>PROJ-1</cbc:ID>
    <cbc:Name languageID="DEU">Strassensanierung Kassel</cbc:Name>
    <cbc:Name languageID="ENG">Road rehabilitation Kassel</cbc:Name>
    <cbc:Description languageID="DEU">Sanierung der Fahrbahndecke</cbc:Description>
    <cbc:ProcurementTypeCode>works</cbc:ProcurementTypeCode>
    <cac:MainCommodityClassification><cbc:ItemClassificationCode>45233141</cbc:ItemClassificationCode></cac:MainCommodityClassification>
    <cac:RealizedLocation>
      <cac:Address>
        <cbc:StreetName>Obere Koenigsstrasse 8</cbc:StreetName>
        <cbc:CityName>Kassel</cbc:CityName>
        <cbc:PostalZone>34117</cbc:PostalZone>
        <cbc:CountrySubentityCode>DE731</cbc:CountrySubentityCode>
        <cac:Country><cbc:IdentificationCode>DEU</cbc:IdentificationCode></cac:Country>
      </cac:Address>
    </cac:RealizedLocation>
  </cac:ProcurementProject>
  <cac:ProcurementProjectLot>
    <cbc:ID schemeName="Lot">LOT-0001</cbc:ID>
    <cac:ProcurementProject>
      <cbc:Name languageID="DEU">Los 1 Tiefbau</cbc:Name>
      <cbc:Description languageID="DEU">Tiefbauarbeiten</cbc:Description>
      <cbc:ProcurementTypeCode>works</cbc:ProcurementTypeCode>
      <cac:MainCommodityClassification><cbc:ItemClassificationCode>45112500</cbc:ItemClassificationCode></cac:MainCommodityClassification>
      <cac:PlannedPeriod>
        <cbc:StartDate>2025-01-15</cbc:StartDate>
        <cbc:EndDate>2025-09-30</cbc:EndDate>
      </cac:PlannedPeriod>
      <cac:RealizedLocation>
        <cac:Address>
          <cbc:CityName>Kassel</cbc:CityName>
          <cbc:PostalZone>34117</cbc:PostalZone>
        </cac:Address>
      </cac:RealizedLocation>
    </cac:ProcurementProject>
  </cac:ProcurementProjectLot>
  <cac:ProcurementProjectLot>
    <cbc:ID schemeName="Lot">LOT-0002</cbc:ID>
  </cac:ProcurementProjectLot>
  <efac:Organizations>
    <efac:Organization>
      <efac:Company>
        <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-0001</cbc:ID></cac:PartyIdentification>
        <cac:PartyName><cbc:Name languageID="DEU">Stadt Kassel</cbc:Name></cac:PartyName>
        <cac:PostalAddress>
          <cbc:CityName>Kassel</cbc:CityName>
          <cbc:PostalZone>34117</cbc:PostalZone>
          <cbc:CountrySubentityCode>DE731</cbc:CountrySubentityCode>
          <cac:Country><cbc:IdentificationCode>DEU</cbc:IdentificationCode></cac:Country>
        </cac:PostalAddress>
        <cbc:WebsiteURI>https://www.kassel.de</cbc:WebsiteURI>
      </efac:Company>
    </efac:Organization>
    <efac:Organization>
      <efac:Company>
        <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-0009</cbc:ID></cac:PartyIdentification>
        <cac:PartyName><cbc:Name languageID="DEU">Acme GmbH</cbc:Name></cac:PartyName>
      </efac:Company>
    </efac:Organization>
  </efac:Organizations>
  <efac:NoticeResult>
    <cbc:TotalAmount currencyID="EUR">1250000.50</cbc:TotalAmount>
    <efac:LotResult>
      <cbc:HigherTenderAmount>1400000</cbc:HigherTenderAmount>
      <cbc:LowerTenderAmount>1250000.50</cbc:LowerTenderAmount>
      <efac:TenderLot><cbc:ID schemeName="Lot">LOT-0001</cbc:ID></efac:TenderLot>
      <efac:LotTender><cbc:ID schemeName="tender">TEN-1</cbc:ID></efac:LotTender>
    </efac:LotResult>
    <efac:LotResult>
      <efac:TenderLot><cbc:ID schemeName="Lot">LOT-0002</cbc:ID></efac:TenderLot>
      <efac:LotTender><cbc:ID schemeName="tender">TEN-MISSING</cbc:ID></efac:LotTender>
    </efac:LotResult>
    <efac:LotTender>
      <cbc:ID schemeName="tender">TEN-1</cbc:ID>
      <efac:TenderingParty><cbc:ID schemeName="tendering-party">TP-1</cbc:ID></efac:TenderingParty>
    </efac:LotTender>
    <efac:TenderingParty>
      <cbc:ID schemeName="tendering-party">TP-1</cbc:ID>
      <efac:Tenderer><cbc:ID schemeName="organization">ORG-0009</cbc:ID></efac:Tenderer>
    </efac:TenderingParty>
  </efac:NoticeResult>
</ContractAwardNotice>`

const minimalNotice = xmlHeader + `
  <cbc:IssueDate>2024-12-07</cbc:IssueDate>
</ContractAwardNotice>`

// duplicateOrgNotice carries two organizations sharing one identifier; the
// first in document order must win.
const duplicateOrgNotice = xmlHeader + `
  <cac:ContractingParty>
    <cac:Party>
      <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-DUP</cbc:ID></cac:PartyIdentification>
    </cac:Party>
  </cac:ContractingParty>
  <efac:Organizations>
    <efac:Organization>
      <efac:Company>
        <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-DUP</cbc:ID></cac:PartyIdentification>
        <cac:PartyName><cbc:Name languageID="DEU">Erste GmbH</cbc:Name></cac:PartyName>
      </efac:Company>
    </efac:Organization>
    <efac:Organization>
      <efac:Company>
        <cac:PartyIdentification><cbc:ID schemeName="organization">ORG-DUP</cbc:ID></cac:PartyIdentification>
        <cac:PartyName><cbc:Name languageID="DEU">Zweite GmbH</cbc:Name></cac:PartyName>
      </efac:Company>
    </efac:Organization>
  </efac:Organizations>
</ContractAwardNotice>`
