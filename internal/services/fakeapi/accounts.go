// Package fakeapi is a local stand-in for the auth backend. Accounts live in
// memory and bearer tokens are HS256 JWTs signed with a configured secret.
package fakeapi

import (
	"crypto/subtle"
	_ "embed"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gopkg.in/yaml.v2"
)

var (
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email is already registered")
	// ErrBadCredentials is returned for an unknown email or wrong password.
	ErrBadCredentials = errors.New("invalid email or password")
	// ErrInvalidToken is returned for a bearer token that fails
	// verification. Expired tokens also wrap jwt.ErrTokenExpired.
	ErrInvalidToken = errors.New("invalid bearer token")
)

// DefaultTokenTTL is how long an issued bearer token stays valid.
const DefaultTokenTTL = time.Hour

const tokenIssuer = "earlypay-fakeapi"

//go:embed seed.yaml
var defaultSeed []byte

// Seed is the YAML document of accounts loaded at startup.
type Seed struct {
	Accounts []SeedAccount `yaml:"accounts"`
}

// SeedAccount is one account in a Seed.
type SeedAccount struct {
	Email     string      `yaml:"email"`
	Password  string      `yaml:"password"`
	FirstName string      `yaml:"first_name"`
	LastName  string      `yaml:"last_name"`
	Phone     string      `yaml:"phone"`
	Company   SeedCompany `yaml:"company"`
}

// SeedCompany is the company part of a SeedAccount.
type SeedCompany struct {
	Name                 string `yaml:"name"`
	LegalName            string `yaml:"legal_name"`
	BusinessType         string `yaml:"business_type"`
	Industry             string `yaml:"industry"`
	Website              string `yaml:"website"`
	BusinessNumber       string `yaml:"business_number"`
	BusinessRegistration string `yaml:"business_registration"`
	HasTradeName         bool   `yaml:"has_trade_name"`
	EarlyPayIntent       bool   `yaml:"early_pay_intent"`
	ExpectedActivity     string `yaml:"expected_activity"`
	Employees            int    `yaml:"employees"`
}

// ParseSeed decodes a YAML seed document.
func ParseSeed(raw []byte) (Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return Seed{}, fmt.Errorf("parse seed: %w", err)
	}
	return seed, nil
}

// DefaultSeed returns the embedded demo accounts.
func DefaultSeed() Seed {
	seed, err := ParseSeed(defaultSeed)
	if err != nil {
		panic(err)
	}
	return seed
}

type account struct {
	id       int
	password string
	profile  SeedAccount
}

// Directory holds accounts and signs the tokens issued to them.
type Directory struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time

	mu      sync.RWMutex
	nextID  int
	byEmail map[string]*account
	byID    map[int]*account
}

// Option customizes a Directory.
type Option func(*Directory)

// WithTokenTTL sets the lifetime of issued tokens.
func WithTokenTTL(ttl time.Duration) Option {
	return func(d *Directory) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithClock replaces the time source used to issue and verify tokens.
func WithClock(now func() time.Time) Option {
	return func(d *Directory) {
		if now != nil {
			d.now = now
		}
	}
}

// NewDirectory builds a directory preloaded with seed. secret signs bearer
// tokens and must not be empty.
func NewDirectory(seed Seed, secret []byte, opts ...Option) (*Directory, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret is required")
	}
	d := &Directory{
		secret:  append([]byte(nil), secret...),
		ttl:     DefaultTokenTTL,
		now:     time.Now,
		nextID:  1,
		byEmail: map[string]*account{},
		byID:    map[int]*account{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	for _, acct := range seed.Accounts {
		if err := d.Register(acct); err != nil {
			return nil, fmt.Errorf("seed %s: %w", acct.Email, err)
		}
	}
	return d, nil
}

// Register adds an account. Emails are matched case-insensitively.
func (d *Directory) Register(acct SeedAccount) error {
	email := normalizeEmail(acct.Email)
	if email == "" || acct.Password == "" {
		return errors.New("email and password are required")
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.byEmail[email]; ok {
		return ErrEmailTaken
	}
	acct.Email = strings.TrimSpace(acct.Email)
	created := &account{id: d.nextID, password: acct.Password, profile: acct}
	d.byEmail[email] = created
	d.byID[created.id] = created
	d.nextID++
	return nil
}

// Login checks credentials and issues a signed bearer token whose subject is
// the account id.
func (d *Directory) Login(email, password string) (string, error) {
	d.mu.RLock()
	acct, ok := d.byEmail[normalizeEmail(email)]
	d.mu.RUnlock()
	if !ok || subtle.ConstantTimeCompare([]byte(acct.password), []byte(password)) != 1 {
		return "", ErrBadCredentials
	}
	issuedAt := d.now()
	claims := jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   strconv.Itoa(acct.id),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(d.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(d.secret)
	if err != nil {
		return "", fmt.Errorf("sign bearer token: %w", err)
	}
	return token, nil
}

// User verifies token and returns the record of the account it names.
func (d *Directory) User(token string) (UserRecord, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(strings.TrimSpace(token), &claims, func(*jwt.Token) (any, error) {
		return d.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(d.now),
	)
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	id, err := strconv.Atoi(claims.Subject)
	if err != nil {
		return UserRecord{}, fmt.Errorf("%w: subject %q", ErrInvalidToken, claims.Subject)
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	acct, ok := d.byID[id]
	if !ok {
		return UserRecord{}, fmt.Errorf("%w: unknown account %d", ErrInvalidToken, id)
	}
	return d.record(acct), nil
}

// UserRecord is the body of GET /auth/user.
type UserRecord struct {
	ID       int            `json:"id"`
	FullName string         `json:"full_name"`
	Email    string         `json:"email"`
	Phone    string         `json:"phone"`
	Company  *CompanyRecord `json:"Company"`
}

// CompanyRecord is the company nested in a UserRecord.
type CompanyRecord struct {
	Name                 string         `json:"name"`
	BusinessType         string         `json:"business_type"`
	Industry             string         `json:"industry"`
	Website              string         `json:"website"`
	LegalName            string         `json:"legal_name"`
	BusinessNumber       string         `json:"business_number"`
	BusinessRegistration string         `json:"business_registration"`
	ExpectedActivity     string         `json:"expected_activity"`
	Employees            int            `json:"employees,omitempty"`
	HasTradeName         bool           `json:"has_trade_name"`
	EarlyPayIntent       bool           `json:"early_pay_intent"`
	Users                []MemberRecord `json:"Users"`
}

// MemberRecord is one user listed under a company.
type MemberRecord struct {
	ID       int    `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// record must be called with d.mu held.
func (d *Directory) record(acct *account) UserRecord {
	p := acct.profile
	rec := UserRecord{
		ID:       acct.id,
		FullName: fullName(p),
		Email:    p.Email,
		Phone:    p.Phone,
	}
	companyName := strings.TrimSpace(p.Company.Name)
	if companyName == "" {
		return rec
	}
	rec.Company = &CompanyRecord{
		Name:                 companyName,
		BusinessType:         p.Company.BusinessType,
		Industry:             p.Company.Industry,
		Website:              p.Company.Website,
		LegalName:            p.Company.LegalName,
		BusinessNumber:       p.Company.BusinessNumber,
		BusinessRegistration: p.Company.BusinessRegistration,
		ExpectedActivity:     p.Company.ExpectedActivity,
		Employees:            p.Company.Employees,
		HasTradeName:         p.Company.HasTradeName,
		EarlyPayIntent:       p.Company.EarlyPayIntent,
		Users:                []MemberRecord{},
	}
	for _, other := range d.byEmail {
		if strings.EqualFold(strings.TrimSpace(other.profile.Company.Name), companyName) {
			rec.Company.Users = append(rec.Company.Users, MemberRecord{
				ID:       other.id,
				FullName: fullName(other.profile),
				Email:    other.profile.Email,
			})
		}
	}
	sort.Slice(rec.Company.Users, func(i, j int) bool {
		return rec.Company.Users[i].ID < rec.Company.Users[j].ID
	})
	return rec
}

func fullName(p SeedAccount) string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
