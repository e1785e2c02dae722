package detect

import (
	"regexp"
	"strings"

	"github.com/kirillkom/resume-quality-checker/internal/core/domain"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`(?:\+?\d{1,3}[ .-]?)?(?:\(?\d{3,4}\)?[ .-]?)?\d{3,4}[ .-]?\d{3,4}`)
	linkedInPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/(?:in|pub)/[A-Za-z0-9_.\-]+`)
)

// Email returns the first address-shaped match, or "".
func Email(text string) string {
	return emailPattern.FindString(text)
}

// IsProfessionalEmail is false for an empty address and for any address whose domain is, or is a
// subdomain of, a consumer webmail domain.
func IsProfessionalEmail(email string, consumerDomains []string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}
	domainPart := strings.ToLower(email[at+1:])
	for _, d := range consumerDomains {
		d = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(d), "@"))
		if d == "" {
			continue
		}
		if domainPart == d || strings.HasSuffix(domainPart, "."+d) {
			return false
		}
	}
	return true
}

// Phone is loose: year ranges such as 2015-2019 also match.
func Phone(text string) string {
	return strings.TrimSpace(phonePattern.FindString(text))
}

func HasLinkedIn(text string) bool {
	return linkedInPattern.MatchString(text)
}

func Contact(text string, consumerDomains []string) domain.ContactInfo {
	email := Email(text)
	return domain.ContactInfo{
		Email:             email,
		Phone:             Phone(text),
		ProfessionalEmail: IsProfessionalEmail(email, consumerDomains),
		HasLinkedIn:       HasLinkedIn(text),
	}
}
