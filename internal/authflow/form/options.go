package form

import "strconv"

// Registration type values.
const (
	RegistrationSoleProprietor = "Sole Proprietor"
	RegistrationCorporation    = "Corporation"
)

// BusinessRegistrationTypes returns the radio options for how the business is
// registered.
func BusinessRegistrationTypes() []Option {
	return []Option{
		{ID: "soleProprietor", Value: RegistrationSoleProprietor, Label: RegistrationSoleProprietor},
		{ID: "corporation", Value: RegistrationCorporation, Label: RegistrationCorporation},
	}
}

// CompanyTypes returns the company type select options.
func CompanyTypes() []Option {
	return sameValueLabel("company-type",
		"Retail",
		"Digital products",
		"Food and drink",
		"Professional services",
		"Membership organizations",
		"Personal services",
		"Transportation",
		"Travel and lodging",
		"Medical services",
		"Education",
		"Entertainment and recreation",
		"Building services",
		"Financial services",
		"Regulated and age-restricted products",
	)
}

// Industries returns the industry select options.
func Industries() []Option {
	return sameValueLabel("industry",
		"Software as a service",
		"Apps",
		"Books",
		"Music or other media",
		"Games",
		"Blogs and written content",
		"Other digital goods",
		"Other eCommerce/Marketplace",
	)
}

// ExpectedActivities returns the radio options for how the account will be used.
func ExpectedActivities() []Option {
	return []Option{
		{ID: "getInvoicesPaidEarly", Value: "Get my invoices paid early", Label: "Get my invoices paid early"},
		{ID: "offerVendorsEarlyPayments", Value: "Offer vendors early payments", Label: "Offer vendors early payments"},
		{ID: "earnValuableDiscounts", Value: "Earn valuable discounts on payables", Label: "Earn valuable discounts on payables"},
		{ID: "justCheckingItOut", Value: "Just checking it out", Label: "Just checking it out"},
	}
}

func sameValueLabel(prefix string, values ...string) []Option {
	out := make([]Option, 0, len(values))
	for idx, value := range values {
		out = append(out, Option{ID: prefix + "-" + strconv.Itoa(idx), Value: value, Label: value})
	}
	return out
}
