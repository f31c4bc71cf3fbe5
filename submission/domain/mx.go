package domain

import "strings"

// MXResult é o resultado da checagem de MX. Nunca é um erro: falhas viram
// MXLookupFailed e contam como "não verificado".
type MXResult int

const (
	MXLookupFailed MXResult = iota
	MXNotFound
	MXVerified
)

func (r MXResult) Verified() bool { return r == MXVerified }

func (r MXResult) String() string {
	switch r {
	case MXVerified:
		return "verified"
	case MXNotFound:
		return "not_found"
	default:
		return "lookup_failed"
	}
}

// EmailDomain é o texto depois do primeiro "@" (vazio se não houver).
func EmailDomain(email string) string {
	_, domain, ok := strings.Cut(email, "@")
	if !ok {
		return ""
	}
	return domain
}
