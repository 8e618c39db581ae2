package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

var supportedRegions = []string{"US"}

// NormalizePhone formats a recognizable number as E.164. Numbers carrying a
// country code work regardless of region; bare national numbers are tried
// against the supported regions. Unrecognizable or invalid input is returned
// unchanged so field validation rejects it instead of storing a wiped value.
func NormalizePhone(phone string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	for _, region := range supportedRegions {
		parsed, err := phonenumbers.Parse(phone, region)
		if err != nil {
			continue
		}
		if phonenumbers.IsValidNumber(parsed) {
			return phonenumbers.Format(parsed, phonenumbers.E164)
		}
	}
	return phone
}
