package payload

import (
	"errors"

	"github.com/prasetyowira/qrstudio/constant"
)

// Type is the semantic category of QR content. It selects both the
// structured-field shape and the serialization grammar.
type Type string

const (
	TypeURL      Type = "URL"
	TypeText     Type = "TEXT"
	TypePhone    Type = "PHONE"
	TypeSMS      Type = "SMS"
	TypeEmail    Type = "EMAIL"
	TypeWifi     Type = "WIFI"
	TypeLocation Type = "LOCATION"
	TypeVCard    Type = "VCARD"
	TypeEvent    Type = "EVENT"
)

// EncryptionNone is the WIFI encryption value meaning an open network.
const EncryptionNone = "nopass"

// Fields is the structured, user-editable field set behind a payload type.
// Only the subset relevant to the type is interpreted; the rest is ignored.
type Fields struct {
	// URL, TEXT, PHONE and the EMAIL address
	Value string `json:"value,omitempty"`

	// SMS
	SMSNumber  string `json:"smsNumber,omitempty"`
	SMSMessage string `json:"smsMessage,omitempty"`

	// EMAIL extras
	EmailSubject string `json:"emailSubject,omitempty"`
	EmailBody    string `json:"emailBody,omitempty"`

	// WIFI
	WifiSSID       string `json:"wifiSSID,omitempty"`
	WifiPassword   string `json:"wifiPassword,omitempty"`
	WifiEncryption string `json:"wifiEncryption,omitempty"`
	WifiHidden     bool   `json:"wifiHidden,omitempty"`

	// LOCATION (decimal-degree strings)
	Latitude      string `json:"latitude,omitempty"`
	Longitude     string `json:"longitude,omitempty"`
	LocationLabel string `json:"locationLabel,omitempty"`

	// VCARD
	VCardName    string `json:"vcardName,omitempty"`
	VCardTitle   string `json:"vcardTitle,omitempty"`
	VCardCompany string `json:"vcardCompany,omitempty"`
	VCardPhone   string `json:"vcardPhone,omitempty"`
	VCardEmail   string `json:"vcardEmail,omitempty"`
	VCardWebsite string `json:"vcardWebsite,omitempty"`
	VCardAddress string `json:"vcardAddress,omitempty"`

	// EVENT (dates YYYY-MM-DD, times HH:MM)
	EventTitle       string `json:"eventTitle,omitempty"`
	EventLocation    string `json:"eventLocation,omitempty"`
	EventDescription string `json:"eventDescription,omitempty"`
	EventDate        string `json:"eventDate,omitempty"`
	EventTime        string `json:"eventTime,omitempty"`
	EventEndDate     string `json:"eventEndDate,omitempty"`
	EventEndTime     string `json:"eventEndTime,omitempty"`
}

// Validate performs the required-field checks for a payload type. Encode
// itself never validates; callers are expected to reject bad input first.
func Validate(t Type, f Fields) error {
	switch t {
	case TypeURL, TypeText, TypePhone:
		if f.Value == "" {
			return errors.New(constant.ErrEmptyValue)
		}
	case TypeEmail:
		if f.Value == "" {
			return errors.New(constant.ErrEmptyAddress)
		}
	case TypeSMS:
		if f.SMSNumber == "" {
			return errors.New(constant.ErrEmptySMSNumber)
		}
	case TypeWifi:
		if f.WifiSSID == "" {
			return errors.New(constant.ErrEmptySSID)
		}
	case TypeLocation:
		if f.Latitude == "" || f.Longitude == "" {
			return errors.New(constant.ErrEmptyCoordinates)
		}
	case TypeVCard:
		if f.VCardName == "" {
			return errors.New(constant.ErrEmptyName)
		}
	case TypeEvent:
		if f.EventTitle == "" {
			return errors.New(constant.ErrEmptyEventTitle)
		}
	default:
		return errors.New(constant.ErrUnknownType)
	}
	return nil
}

// Label derives the human-readable history label for a payload.
func Label(t Type, f Fields) string {
	switch t {
	case TypeURL, TypeText, TypePhone, TypeEmail:
		return f.Value
	case TypeWifi:
		if f.WifiSSID != "" {
			return f.WifiSSID
		}
		return "WiFi"
	case TypeLocation:
		if f.LocationLabel != "" {
			return f.LocationLabel
		}
		return f.Latitude + ", " + f.Longitude
	case TypeVCard:
		if f.VCardName != "" {
			return f.VCardName
		}
		return "Contact"
	case TypeEvent:
		if f.EventTitle != "" {
			return f.EventTitle
		}
		return "Event"
	case TypeSMS:
		if f.SMSNumber != "" {
			return f.SMSNumber
		}
		return "SMS"
	default:
		if f.Value != "" {
			return f.Value
		}
		return string(t)
	}
}
