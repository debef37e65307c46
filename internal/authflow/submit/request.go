package submit

import (
	"github.com/louisbranch/earlypay/internal/apiclient"
	"github.com/louisbranch/earlypay/internal/authflow/form"
)

// LoginRequest builds the flat login body.
func LoginRequest(values form.Values) apiclient.LoginRequest {
	return apiclient.LoginRequest{
		Email:    values.Text(form.FieldEmail),
		Password: values.Text(form.FieldPassword),
	}
}

// SignupRequest builds the nested user/company signup body. Early pay intent
// is always declared; select values double as their labels.
func SignupRequest(values form.Values) apiclient.SignupRequest {
	expected := values.Text(form.FieldExpectedActivity)
	industry := values.Text(form.FieldIndustry)
	companyType := values.Text(form.FieldCompanyType)
	return apiclient.SignupRequest{
		User: apiclient.SignupUser{
			FirstName: values.Text(form.FieldFirstName),
			LastName:  values.Text(form.FieldLastName),
			Email:     values.Text(form.FieldEmail),
			Password:  values.Text(form.FieldPassword),
		},
		Company: apiclient.SignupCompany{
			Activity: apiclient.SignupActivity{
				EarlyPayIntent:   true,
				ExpectedActivity: expected,
			},
			EarlyPayIntent:       true,
			Industry:             apiclient.ValueLabel{Value: industry, Label: industry},
			BusinessType:         apiclient.LabelValue{Label: companyType, Value: companyType},
			Website:              values.Text(form.FieldWebsite),
			BusinessRegistration: values.Text(form.FieldBusinessRegistrationType),
			Phone:                values.Text(form.FieldPhone),
			BusinessNumber:       values.Text(form.FieldBusinessNumber),
			HasTradeName:         values.Bool(form.FieldHasTradeName),
			LegalName:            values.Text(form.FieldLegalName),
			ExpectedActivity:     expected,
		},
	}
}
