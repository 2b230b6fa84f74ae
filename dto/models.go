package dto

// HeaderFields holds the labelled fields found in an estimate header.
// Fields that were not found are simply absent.
type HeaderFields map[string]string

// Header field names
const (
	FieldInsuredName     = "insured_name"
	FieldPropertyAddress = "property_address"
	FieldClaimNumber     = "claim_number"
	FieldPolicyNumber    = "policy_number"
	FieldDateOfLoss      = "date_of_loss"
	FieldDeductible      = "deductible"
)

// LineItem is one priced estimate entry.
// RCV, Depreciation and ACV are parsed independently; no arithmetic
// relationship between them is assumed.
type LineItem struct {
	LineNumber   int     `json:"line_number"`
	Room         string  `json:"room,omitempty"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	UnitPrice    float64 `json:"unit_price"`
	Tax          float64 `json:"tax"`
	OAndP        float64 `json:"o_and_p"`
	RCV          float64 `json:"rcv"`
	Depreciation float64 `json:"depreciation"`
	ACV          float64 `json:"acv"`
	Category     string  `json:"category"`
}

// CategorySummary rolls up the surviving line items of one category.
type CategorySummary struct {
	Name         string   `json:"name"`
	RCV          float64  `json:"rcv"`
	Depreciation float64  `json:"depreciation"`
	ACV          float64  `json:"acv"`
	ItemCount    int      `json:"item_count"`
	UniqueItems  []string `json:"unique_items"`
}

type Totals struct {
	RCV          float64 `json:"rcv"`
	Depreciation float64 `json:"depreciation"`
	ACV          float64 `json:"acv"`
	Deductible   float64 `json:"deductible"`
	NetClaim     float64 `json:"net_claim"`
}

type Metadata struct {
	TotalLineItems    int      `json:"total_line_items"`
	TotalCategories   int      `json:"total_categories"`
	Rooms             []string `json:"rooms"`
	DuplicatesRemoved int      `json:"duplicates_removed"`
	TextSource        string   `json:"text_source,omitempty"`
}

// ParseResult is the structured summary of one estimate document.
type ParseResult struct {
	Header     HeaderFields      `json:"header"`
	LineItems  []LineItem        `json:"line_items"`
	Categories []CategorySummary `json:"categories"`
	Totals     Totals            `json:"totals"`
	Metadata   Metadata          `json:"metadata"`
}
