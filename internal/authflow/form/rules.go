package form

import "github.com/louisbranch/earlypay/internal/authflow/validate"

// Field names shared by the login and signup forms and their templates.
const (
	FieldEmail                    = "email"
	FieldPassword                 = "password"
	FieldConfirmPassword          = "confirmPassword"
	FieldFirstName                = "firstName"
	FieldLastName                 = "lastName"
	FieldBusinessRegistrationType = "businessRegistrationType"
	FieldLegalName                = "legalName"
	FieldHasTradeName             = "hasTradeName"
	FieldOperatingName            = "operatingName"
	FieldBusinessNumber           = "businessNumber"
	FieldCompanyType              = "companyType"
	FieldIndustry                 = "industry"
	FieldWebsite                  = "website"
	FieldPhone                    = "phone"
	FieldExpectedActivity         = "expectedActivity"
)

// Messages reported by the login and signup rule sets.
const (
	MsgEmailInvalid             = "Please enter a valid email address"
	MsgPasswordShort            = "Password should be at least 6 characters long"
	MsgPasswordMismatch         = "The passwords do not match"
	MsgFirstNameRequired        = "First Name is required"
	MsgLastNameRequired         = "Last Name is required"
	MsgRegistrationTypeRequired = "Business registration type is required"
	MsgLegalNameRequired        = "Legal name is required"
	MsgCompanyTypeRequired      = "Company type is required"
	MsgIndustryRequired         = "Industry is required"
	MsgExpectedActivityRequired = "Expected activity is required"
	MsgPhoneInvalid             = "Please enter a valid phone number"
)

func emailField() Field {
	return Field{
		Name:     FieldEmail,
		Kind:     KindText,
		Required: MsgEmailInvalid,
		Check:    validate.IsValidEmail,
		Invalid:  MsgEmailInvalid,
	}
}

func passwordField() Field {
	return Field{
		Name:     FieldPassword,
		Kind:     KindText,
		Required: MsgPasswordShort,
		Check:    validate.IsValidPassword,
		Invalid:  MsgPasswordShort,
	}
}

// LoginRules returns the rule set of the login form.
func LoginRules() Rules {
	return Rules{
		Name:   "login",
		Fields: []Field{emailField(), passwordField()},
	}
}

// SignupRules returns the rule set of the signup form.
func SignupRules() Rules {
	return Rules{
		Name: "signup",
		Fields: []Field{
			{Name: FieldFirstName, Kind: KindText, Required: MsgFirstNameRequired},
			{Name: FieldLastName, Kind: KindText, Required: MsgLastNameRequired},
			emailField(),
			passwordField(),
			{Name: FieldConfirmPassword, Kind: KindText},
			{Name: FieldBusinessRegistrationType, Kind: KindChoice, Required: MsgRegistrationTypeRequired, Options: BusinessRegistrationTypes()},
			{Name: FieldLegalName, Kind: KindText, Required: MsgLegalNameRequired},
			{Name: FieldHasTradeName, Kind: KindCheckbox},
			{Name: FieldOperatingName, Kind: KindText},
			{Name: FieldBusinessNumber, Kind: KindText},
			{Name: FieldCompanyType, Kind: KindChoice, Required: MsgCompanyTypeRequired, Options: CompanyTypes()},
			{Name: FieldIndustry, Kind: KindChoice, Required: MsgIndustryRequired, Options: Industries()},
			{Name: FieldWebsite, Kind: KindText},
			{Name: FieldPhone, Kind: KindText, Check: validate.IsValidPhone, Invalid: MsgPhoneInvalid},
			{Name: FieldExpectedActivity, Kind: KindChoice, Required: MsgExpectedActivityRequired, Options: ExpectedActivities()},
		},
		Confirms: []Confirm{
			{Field: FieldConfirmPassword, Target: FieldPassword, Message: MsgPasswordMismatch},
		},
	}
}
