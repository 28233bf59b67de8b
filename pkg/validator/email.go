package validator

import "strings"

// NormalizeEmail lower-cases an address and canonicalizes Gmail addresses
// (dots and +tags in the local part are ignored by Gmail, and googlemail.com
// is an alias). Strings without an @ are returned trimmed and lower-cased.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	switch domain {
	case "gmail.com", "googlemail.com":
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	case "outlook.com", "hotmail.com", "live.com":
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
	}
	return local + "@" + domain
}
