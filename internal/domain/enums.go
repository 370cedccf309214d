package domain

type ItemStatus string

const (
	ItemNotStarted   ItemStatus = "Not Started"
	ItemInProgress   ItemStatus = "In Progress"
	ItemUnderReview  ItemStatus = "Under Review"
	ItemComplete     ItemStatus = "Complete"
	ItemIssueFlagged ItemStatus = "Issue Flagged"
)

// ItemStatuses lists checklist item statuses in display order.
var ItemStatuses = []ItemStatus{
	ItemNotStarted,
	ItemInProgress,
	ItemUnderReview,
	ItemComplete,
	ItemIssueFlagged,
}

func (s ItemStatus) Valid() bool {
	for _, v := range ItemStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PropertyStatus string

const (
	PropertyActive    PropertyStatus = "Active"
	PropertyOnHold    PropertyStatus = "On Hold"
	PropertyClosed    PropertyStatus = "Closed"
	PropertyCancelled PropertyStatus = "Cancelled"
)

var PropertyStatuses = []PropertyStatus{
	PropertyActive,
	PropertyOnHold,
	PropertyClosed,
	PropertyCancelled,
}

func (s PropertyStatus) Valid() bool {
	for _, v := range PropertyStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type AssetType string

const (
	AssetOffice      AssetType = "Office"
	AssetRetail      AssetType = "Retail"
	AssetMultifamily AssetType = "Multifamily"
	AssetIndustrial  AssetType = "Industrial"
	AssetMixedUse    AssetType = "Mixed-Use"
	AssetLand        AssetType = "Land"
	AssetHospitality AssetType = "Hospitality"
	AssetOther       AssetType = "Other"
)

// AssetTypes is the fixed set offered by property forms.
var AssetTypes = []AssetType{
	AssetOffice,
	AssetRetail,
	AssetMultifamily,
	AssetIndustrial,
	AssetMixedUse,
	AssetLand,
	AssetHospitality,
	AssetOther,
}

func (a AssetType) Valid() bool {
	for _, v := range AssetTypes {
		if a == v {
			return true
		}
	}
	return false
}

// FilterAll is the selector value meaning "no filter".
const FilterAll = "All"

// TemplateAssetAll labels templates captured from a property without an asset type.
const TemplateAssetAll = "All"

type Urgency string

const (
	UrgencyOverdue Urgency = "overdue"
	UrgencyUrgent  Urgency = "urgent"
	UrgencySoon    Urgency = "soon"
	UrgencyNormal  Urgency = "normal"
)
