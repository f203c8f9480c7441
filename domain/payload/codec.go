package payload

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Encode serializes structured fields into the textual encoding QR scanners
// understand for the given type. Encoding is deterministic and never fails:
// unknown types and missing required fields fall back to the raw value.
func Encode(t Type, f Fields) string {
	switch t {
	case TypeURL:
		if f.Value != "" && !strings.HasPrefix(f.Value, "http://") && !strings.HasPrefix(f.Value, "https://") {
			return "https://" + f.Value
		}
		return f.Value
	case TypeText:
		return f.Value
	case TypePhone:
		return "tel:" + f.Value
	case TypeSMS:
		return encodeSMS(f)
	case TypeEmail:
		return encodeEmail(f)
	case TypeWifi:
		return encodeWifi(f)
	case TypeLocation:
		return encodeLocation(f)
	case TypeVCard:
		return encodeVCard(f)
	case TypeEvent:
		return encodeEvent(f)
	default:
		return f.Value
	}
}

// Decode recovers structured fields from a previously encoded payload, for
// re-editing a history entry. It is best-effort and never fails: on pattern
// mismatch the corresponding fields are left at their zero values. EMAIL, SMS,
// PHONE, TEXT and URL only recover the raw string, not sub-fields.
func Decode(t Type, encoded string) Fields {
	var f Fields
	switch t {
	case TypeWifi:
		decodeWifi(encoded, &f)
	case TypeLocation:
		decodeLocation(encoded, &f)
	case TypeVCard:
		decodeVCard(encoded, &f)
	case TypeEvent:
		decodeEvent(encoded, &f)
	case TypeURL, TypeText, TypePhone, TypeEmail, TypeSMS:
		f.Value = encoded
	default:
		f.Value = encoded
	}
	return f
}

func encodeSMS(f Fields) string {
	if f.SMSNumber != "" && f.SMSMessage != "" {
		return "SMSTO:" + f.SMSNumber + ":" + f.SMSMessage
	}
	if f.SMSNumber != "" {
		return "SMSTO:" + f.SMSNumber
	}
	return f.Value
}

func encodeEmail(f Fields) string {
	if f.Value == "" {
		return f.Value
	}
	var b strings.Builder
	b.WriteString("mailto:")
	b.WriteString(f.Value)
	sep := "?"
	if f.EmailSubject != "" {
		b.WriteString(sep + "subject=" + escapeComponent(f.EmailSubject))
		sep = "&"
	}
	if f.EmailBody != "" {
		b.WriteString(sep + "body=" + escapeComponent(f.EmailBody))
	}
	return b.String()
}

func encodeWifi(f Fields) string {
	if f.WifiSSID == "" {
		return f.Value
	}
	var b strings.Builder
	b.WriteString("WIFI:S:" + f.WifiSSID + ";")
	if f.WifiEncryption != "" && f.WifiEncryption != EncryptionNone {
		b.WriteString("T:" + f.WifiEncryption + ";")
	} else {
		b.WriteString("T:;")
	}
	if f.WifiPassword != "" && f.WifiEncryption != EncryptionNone {
		b.WriteString("P:" + f.WifiPassword + ";")
	}
	if f.WifiHidden {
		b.WriteString("H:true;")
	}
	b.WriteString(";")
	return b.String()
}

func encodeLocation(f Fields) string {
	if f.Latitude == "" || f.Longitude == "" {
		return f.Value
	}
	s := "geo:" + f.Latitude + "," + f.Longitude
	if f.LocationLabel != "" {
		s += "?q=" + escapeComponent(f.LocationLabel)
	}
	return s
}

func encodeVCard(f Fields) string {
	if f.VCardName == "" && f.VCardPhone == "" && f.VCardEmail == "" &&
		f.VCardCompany == "" && f.VCardTitle == "" && f.VCardAddress == "" && f.VCardWebsite == "" {
		return f.Value
	}
	var b strings.Builder
	b.WriteString("BEGIN:VCARD\nVERSION:3.0\n")
	if f.VCardName != "" {
		b.WriteString("FN:" + f.VCardName + "\n")
		surname, given := splitName(f.VCardName)
		b.WriteString("N:" + surname + ";;" + given + ";\n")
	}
	if f.VCardTitle != "" {
		b.WriteString("TITLE:" + f.VCardTitle + "\n")
	}
	if f.VCardCompany != "" {
		b.WriteString("ORG:" + f.VCardCompany + "\n")
	}
	if f.VCardPhone != "" {
		b.WriteString("TEL;TYPE=CELL:" + f.VCardPhone + "\n")
	}
	if f.VCardEmail != "" {
		b.WriteString("EMAIL:" + f.VCardEmail + "\n")
	}
	if f.VCardWebsite != "" {
		website := f.VCardWebsite
		if !strings.HasPrefix(website, "http://") && !strings.HasPrefix(website, "https://") {
			website = "https://" + website
		}
		b.WriteString("URL:" + website + "\n")
	}
	if f.VCardAddress != "" {
		b.WriteString("ADR;TYPE=HOME:;;" + f.VCardAddress + ";;;;\n")
	}
	b.WriteString("END:VCARD")
	return b.String()
}

func encodeEvent(f Fields) string {
	if f.EventTitle == "" && f.EventDate == "" {
		return f.Value
	}
	var b strings.Builder
	b.WriteString("BEGIN:VEVENT\n")
	if f.EventTitle != "" {
		b.WriteString("SUMMARY:" + f.EventTitle + "\n")
	}
	if f.EventDate != "" {
		b.WriteString("DTSTART:" + compactDateTime(f.EventDate, f.EventTime) + "\n")
		if f.EventEndDate != "" {
			b.WriteString("DTEND:" + compactDateTime(f.EventEndDate, f.EventEndTime) + "\n")
		}
	}
	if f.EventLocation != "" {
		b.WriteString("LOCATION:" + f.EventLocation + "\n")
	}
	if f.EventDescription != "" {
		b.WriteString("DESCRIPTION:" + f.EventDescription + "\n")
	}
	b.WriteString("END:VEVENT")
	return b.String()
}

// compactDateTime turns "2025-01-15" + "14:30" into "20250115T143000".
// Seconds are always emitted so the DTSTART/DTEND grammar stays parseable.
func compactDateTime(date, t string) string {
	dateStr := strings.ReplaceAll(date, "-", "")
	timeStr := "000000"
	if t != "" {
		timeStr = strings.ReplaceAll(t, ":", "")
		if len(timeStr) == 4 {
			timeStr += "00"
		}
	}
	return dateStr + "T" + timeStr
}

// splitName separates a display name into surname (last token) and given
// name(s) (everything before it).
func splitName(name string) (surname, given string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	surname = parts[len(parts)-1]
	given = strings.Join(parts[:len(parts)-1], " ")
	return surname, given
}

// escapeComponent percent-encodes a query component the way browsers do,
// using %20 for spaces rather than '+'.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// decodeWifi parses WIFI:S:<ssid>;T:<enc>;P:<pass>;(H:true;)?; as key:value
// segments. Parsing segment-wise instead of with a single anchored pattern
// keeps fields with a different order, or an omitted P segment, readable.
func decodeWifi(encoded string, f *Fields) {
	rest, ok := strings.CutPrefix(encoded, "WIFI:")
	if !ok {
		return
	}
	f.WifiEncryption = "WPA"
	for _, segment := range strings.Split(rest, ";") {
		key, value, found := strings.Cut(segment, ":")
		if !found {
			continue
		}
		switch key {
		case "S":
			f.WifiSSID = value
		case "T":
			// An empty T segment is how encode spells an open network.
			if value == "" {
				f.WifiEncryption = EncryptionNone
			} else {
				f.WifiEncryption = value
			}
		case "P":
			f.WifiPassword = value
		case "H":
			f.WifiHidden = value == "true"
		}
	}
}

var geoPattern = regexp.MustCompile(`^geo:([0-9.\-]+),([0-9.\-]+)(?:\?q=(.*))?$`)

func decodeLocation(encoded string, f *Fields) {
	m := geoPattern.FindStringSubmatch(encoded)
	if m == nil {
		return
	}
	f.Latitude = m[1]
	f.Longitude = m[2]
	f.LocationLabel = unescapeComponent(m[3])
}

func unescapeComponent(s string) string {
	if decoded, err := url.QueryUnescape(s); err == nil {
		return decoded
	}
	return s
}

// decodeVCard walks the vCard line by line, matching KEY[;params]:value
// pairs. The display name prefers FN and falls back to reassembling the
// structured N components.
func decodeVCard(encoded string, f *Fields) {
	var structuredName string
	for _, line := range strings.Split(encoded, "\n") {
		key, value := splitPropertyLine(line)
		switch key {
		case "FN":
			f.VCardName = value
		case "N":
			structuredName = value
		case "TEL":
			f.VCardPhone = value
		case "EMAIL":
			f.VCardEmail = value
		case "ORG":
			f.VCardCompany = value
		case "TITLE":
			f.VCardTitle = value
		case "URL":
			f.VCardWebsite = value
		case "ADR":
			// ADR components: PO box;extended;street;city;region;postal;country
			components := strings.Split(value, ";")
			if len(components) > 2 {
				f.VCardAddress = components[2]
			}
		}
	}
	if f.VCardName == "" && structuredName != "" {
		components := strings.Split(structuredName, ";")
		surname := components[0]
		given := ""
		if len(components) > 2 {
			given = components[2]
		}
		f.VCardName = strings.TrimSpace(given + " " + surname)
	}
}

var eventStampPattern = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})T(\d{2})(\d{2})(\d{2})$`)

func decodeEvent(encoded string, f *Fields) {
	for _, line := range strings.Split(encoded, "\n") {
		key, value := splitPropertyLine(line)
		switch key {
		case "SUMMARY":
			f.EventTitle = value
		case "LOCATION":
			f.EventLocation = value
		case "DESCRIPTION":
			f.EventDescription = value
		case "DTSTART":
			f.EventDate, f.EventTime = expandDateTime(value)
		case "DTEND":
			f.EventEndDate, f.EventEndTime = expandDateTime(value)
		}
	}
}

// expandDateTime turns "20250115T143000" back into "2025-01-15", "14:30".
func expandDateTime(stamp string) (date, t string) {
	m := eventStampPattern.FindStringSubmatch(stamp)
	if m == nil {
		return "", ""
	}
	return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3]), fmt.Sprintf("%s:%s", m[4], m[5])
}

// splitPropertyLine splits "TEL;TYPE=CELL:+123" into ("TEL", "+123").
// Parameters between the property name and the colon are discarded.
func splitPropertyLine(line string) (key, value string) {
	line = strings.TrimRight(line, "\r")
	head, value, found := strings.Cut(line, ":")
	if !found {
		return "", ""
	}
	key, _, _ = strings.Cut(head, ";")
	return key, value
}
