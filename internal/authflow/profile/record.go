// Package profile formats the authenticated user's record for display.
package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Record is a read-only snapshot of the user returned by the backend.
type Record struct {
	FullName string
	Email    string
	Phone    string
	Company  Company

	raw map[string]any
}

// Company is the user's company. Fields holds every company attribute as
// decoded, including the ones promoted to named fields.
type Company struct {
	Name         string
	BusinessType string
	Industry     string
	Website      string
	Users        []Member
	Fields       map[string]any
}

// Member is another user in the same company.
type Member struct {
	ID       string
	FullName string
	Email    string
}

// Decode parses the backend's user object. Numbers are kept as json.Number
// so they render exactly as sent.
func Decode(raw []byte) (Record, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return Record{}, errors.New("user record is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return Record{}, fmt.Errorf("decode user record: %w", err)
	}
	rec := Record{
		FullName: scalarString(obj["full_name"]),
		Email:    scalarString(obj["email"]),
		Phone:    scalarString(obj["phone"]),
		raw:      obj,
	}
	if company, ok := obj["Company"].(map[string]any); ok {
		rec.Company = decodeCompany(company)
	}
	return rec, nil
}

func decodeCompany(obj map[string]any) Company {
	c := Company{
		Name:         scalarString(obj["name"]),
		BusinessType: scalarString(obj["business_type"]),
		Industry:     scalarString(obj["industry"]),
		Website:      scalarString(obj["website"]),
		Fields:       obj,
	}
	users, _ := obj["Users"].([]any)
	for _, entry := range users {
		user, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		c.Users = append(c.Users, Member{
			ID:       scalarString(user["id"]),
			FullName: scalarString(user["full_name"]),
			Email:    scalarString(user["email"]),
		})
	}
	return c
}

// Raw returns the decoded object backing r.
func (r Record) Raw() map[string]any {
	return r.raw
}

func scalarString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	case json.Number:
		return value.String()
	case bool:
		return yesNo(value)
	case map[string]any:
		// Select-shaped values carry a label.
		if label, ok := value["label"].(string); ok {
			return label
		}
		return ""
	default:
		return ""
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
