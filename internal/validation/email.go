package validation

import (
	"regexp"
	"strings"
)

const maxEmailLength = 254

var emailPattern = regexp.MustCompile("^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$")

var maliciousMarkers = []string{"<script", "<iframe", "javascript:"}

// personalDomains are free mail providers rejected for company reports
var personalDomains = map[string]struct{}{}

func init() {
	for _, d := range []string{
		"gmail.com", "yahoo.com", "yahoo.co.uk", "yahoo.fr", "yahoo.de", "yahoo.es", "yahoo.it",
		"yahoo.ca", "yahoo.com.br", "yahoo.in", "yahoo.jp", "yahoo.com.au",
		"outlook.com", "hotmail.com", "hotmail.co.uk", "hotmail.fr", "hotmail.de", "hotmail.es",
		"hotmail.it", "live.com", "msn.com",
		"proton.com", "proton.me", "protonmail.com", "protonmail.ch", "pm.me",
		"icloud.com", "me.com", "mac.com", "aol.com", "aim.com",
		"zoho.com", "zohomail.com", "yandex.com", "yandex.ru", "ya.ru",
		"mail.com", "gmx.com", "gmx.net", "gmx.de", "gmx.fr",
		"fastmail.com", "fastmail.fm", "tutanota.com", "tutanota.de", "tuta.com",
		"mail.ru", "inbox.com", "qq.com", "163.com", "126.com", "sina.com", "rediffmail.com", "rocketmail.com",
		"optonline.net", "comcast.net", "verizon.net", "att.net", "sbcglobal.net", "bellsouth.net",
		"cox.net", "earthlink.net", "charter.net", "shaw.ca", "rogers.com", "sympatico.ca",
		"btinternet.com", "virginmedia.com", "sky.com", "talktalk.net", "tiscali.co.uk", "btopenworld.com",
		"orange.fr", "wanadoo.fr", "free.fr", "laposte.net", "sfr.fr", "neuf.fr",
		"web.de", "t-online.de", "arcor.de", "freenet.de",
		"libero.it", "virgilio.it", "alice.it", "tin.it", "email.it", "tiscali.it", "fastwebnet.it",
		"terra.es", "telefonica.net", "rambler.ru", "list.ru", "bk.ru", "inbox.ru",
		"mail.bg", "abv.bg", "dir.bg", "seznam.cz", "centrum.cz", "atlas.cz", "volny.cz",
		"wp.pl", "o2.pl", "interia.pl", "onet.pl", "gazeta.pl", "op.pl", "vp.pl", "tlen.pl", "poczta.fm",
		"freemail.hu", "citromail.hu", "mailbox.org", "posteo.de", "runbox.com", "countermail.com",
		"hushmail.com", "disroot.org", "riseup.net", "autistici.org", "inventati.org",
		"duck.com", "duckduckgo.com",
	} {
		personalDomains[d] = struct{}{}
	}
}

type emailOptions struct {
	allowPersonal bool
}

// EmailOption configures ValidateEmail
type EmailOption func(*emailOptions)

// AllowPersonalDomains accepts free mail providers such as gmail.com
func AllowPersonalDomains() EmailOption {
	return func(o *emailOptions) {
		o.allowPersonal = true
	}
}

// IsPersonalEmail reports whether the address belongs to a free mail provider
func IsPersonalEmail(email string) bool {
	_, domain, ok := strings.Cut(strings.ToLower(email), "@")
	if !ok || domain == "" {
		return false
	}
	_, found := personalDomains[domain]
	return found
}

// ValidateEmail trims and checks an address, returning it lower-cased.
// Every failed check is listed in the error's Details.
func ValidateEmail(raw string, opts ...EmailOption) (string, error) {
	o := emailOptions{}
	for _, opt := range opts {
		opt(&o)
	}

	email := strings.TrimSpace(raw)
	if email == "" {
		return "", reject("email", "email cannot be empty")
	}
	if len(email) > maxEmailLength {
		return "", reject("email", "email is too long (max 254 characters)")
	}

	var reasons []string
	if strings.Contains(email, " ") && !strings.Contains(email, `"`) {
		reasons = append(reasons, "email cannot contain unquoted spaces")
	}
	if strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		reasons = append(reasons, "email cannot start or end with @")
	}
	if !strings.Contains(email, "@") {
		reasons = append(reasons, "email must contain @ symbol")
	}
	if len(reasons) == 0 && !emailPattern.MatchString(email) {
		reasons = append(reasons, "email format is invalid")
	}
	if len(reasons) == 0 && !o.allowPersonal && IsPersonalEmail(email) {
		reasons = append(reasons, "please use your company email address, not a personal email")
	}

	lower := strings.ToLower(email)
	for _, marker := range maliciousMarkers {
		if strings.Contains(lower, marker) {
			reasons = append(reasons, "email contains potentially malicious content")
			break
		}
	}

	if len(reasons) > 0 {
		return "", &ValidationError{Field: "email", Reason: reasons[0], Details: reasons}
	}
	return lower, nil
}

func reject(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason, Details: []string{reason}}
}
