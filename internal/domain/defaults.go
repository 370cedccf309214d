package domain

// ChecklistSeed is one entry of the built-in due-diligence checklist.
type ChecklistSeed struct {
	Category   string
	ItemName   string
	Notes      string
	OffsetDays int
}

// DefaultPropertyName is the name given to the property seeded on a fresh store.
const DefaultPropertyName = "Property Name"

// DefaultChecklist is the 28-item standard checklist across 8 categories.
// It seeds both the first property and the default template.
var DefaultChecklist = []ChecklistSeed{
	{"Title & Survey", "Title Commitment Review", "Review title commitment for exceptions and encumbrances", 7},
	{"Title & Survey", "ALTA Survey", "Obtain current ALTA/NSPS Land Title Survey", 14},
	{"Title & Survey", "Zoning Report", "Third-party zoning compliance report", 10},
	{"Title & Survey", "Title Policy Review", "Review proposed title policy and endorsements", 30},

	{"Environmental", "Phase I ESA", "Environmental Site Assessment per ASTM E1527-21", 21},
	{"Environmental", "Phase II ESA (if needed)", "Soil and groundwater testing if Phase I identifies concerns", 35},
	{"Environmental", "Asbestos Survey", "Building materials testing for ACM", 14},
	{"Environmental", "Environmental Compliance Review", "Review permits, violations, and remediation status", 15},
	{"Environmental", "Wetlands Delineation", "If applicable based on property location", 20},

	{"Zoning", "Zoning Compliance Verification", "Verify current use is legally conforming", 10},
	{"Zoning", "Certificate of Occupancy", "Obtain and review current CO", 7},
	{"Zoning", "Parking Requirement Analysis", "Verify compliance with parking code requirements", 10},

	{"Financial", "Rent Roll Verification", "Verify current rent roll against leases", 5},
	{"Financial", "Operating Statements (3 years)", "Review historical income and expense statements", 7},
	{"Financial", "Tax Bill Review", "Review current and historical property tax bills", 10},
	{"Financial", "Utility Bills Analysis", "Review 12 months of utility bills", 14},

	{"Lease Review", "Estoppel Certificates", "Obtain from all tenants representing >80% of NRA", 21},
	{"Lease Review", "Lease Abstraction", "Abstract all leases with key terms", 14},
	{"Lease Review", "SNDA Agreements", "Review subordination, non-disturbance agreements", 25},

	{"Physical/Engineering", "Property Condition Assessment", "ASTM E2018 PCA by qualified engineer", 21},
	{"Physical/Engineering", "Roof Inspection", "Detailed roof condition assessment", 14},
	{"Physical/Engineering", "HVAC Systems Review", "Review age, condition, and maintenance records", 14},
	{"Physical/Engineering", "ADA Compliance Survey", "Accessibility compliance assessment", 18},

	{"Legal", "Purchase Agreement Review", "Legal review of PSA terms and conditions", 3},
	{"Legal", "Entity Formation", "Form acquisition entity (LLC/LP)", 20},
	{"Legal", "Service Contracts Review", "Review all property management and service contracts", 14},

	{"Insurance", "Insurance Quote", "Obtain property and liability insurance quotes", 21},
	{"Insurance", "Loss Runs Review", "Review 5-year property loss history", 10},
}
