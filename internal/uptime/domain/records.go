package domain

import "time"

// Lengths of the fixed-size identifiers.
const (
	PhoneLength = 10
	IDLength    = 20
)

// Account is a registered end user, keyed by phone. Phone is immutable.
// Checks holds the ids of every check the account owns.
type Account struct {
	FirstName      string   `json:"firstName"`
	LastName       string   `json:"lastName"`
	Phone          string   `json:"phone"`
	HashedPassword string   `json:"hashedPassword,omitempty"`
	TOSAgreement   bool     `json:"tosAgreement"`
	Checks         []string `json:"checks"`
}

// Token binds a caller to one account until Expires. A token past its expiry
// authorizes nothing; no explicit transition marks it expired.
type Token struct {
	ID      string    `json:"id"`
	Phone   string    `json:"phone"`
	Expires time.Time `json:"expires"`
}

// Active reports whether the token still authorizes its account at instant
// now.
func (t Token) Active(now time.Time) bool {
	return now.Before(t.Expires)
}

// Check is a persisted monitoring probe definition owned by exactly one
// account. UserPhone is set at creation and never mutated.
type Check struct {
	ID             string `json:"id"`
	UserPhone      string `json:"userPhone"`
	Protocol       string `json:"protocol"`
	URL            string `json:"url"`
	Method         string `json:"method"`
	SuccessCodes   []int  `json:"successCodes"`
	TimeoutSeconds int    `json:"timeoutSeconds"`
}

// Bounds on a check's timeout, in whole seconds.
const (
	MinTimeoutSeconds = 1
	MaxTimeoutSeconds = 5
)

// ValidProtocol reports whether p is one of the closed set of probe
// protocols.
func ValidProtocol(p string) bool {
	return p == "http" || p == "https"
}

// ValidMethod reports whether m is one of the closed set of probe methods.
func ValidMethod(m string) bool {
	switch m {
	case "get", "post", "put", "delete":
		return true
	}
	return false
}
