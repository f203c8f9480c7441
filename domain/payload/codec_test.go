package payload

import (
	"testing"

	"github.com/prasetyowira/qrstudio/constant"
	"github.com/stretchr/testify/assert"
)

func TestEncode_URL(t *testing.T) {
	assert.Equal(t, "https://example.com", Encode(TypeURL, Fields{Value: "example.com"}))
	assert.Equal(t, "https://example.com", Encode(TypeURL, Fields{Value: "https://example.com"}))
	assert.Equal(t, "http://example.com", Encode(TypeURL, Fields{Value: "http://example.com"}))
	assert.Equal(t, "", Encode(TypeURL, Fields{}))
}

func TestEncode_Text(t *testing.T) {
	assert.Equal(t, "hello world", Encode(TypeText, Fields{Value: "hello world"}))
}

func TestEncode_Phone(t *testing.T) {
	assert.Equal(t, "tel:+15551234567", Encode(TypePhone, Fields{Value: "+15551234567"}))
}

func TestEncode_SMS(t *testing.T) {
	assert.Equal(t, "SMSTO:+15551234567:Call me", Encode(TypeSMS, Fields{
		SMSNumber:  "+15551234567",
		SMSMessage: "Call me",
	}))
	assert.Equal(t, "SMSTO:+15551234567", Encode(TypeSMS, Fields{SMSNumber: "+15551234567"}))
}

func TestEncode_Email(t *testing.T) {
	assert.Equal(t, "mailto:a@b.com", Encode(TypeEmail, Fields{Value: "a@b.com"}))
	assert.Equal(t, "mailto:a@b.com?subject=Hi%20there", Encode(TypeEmail, Fields{
		Value:        "a@b.com",
		EmailSubject: "Hi there",
	}))
	assert.Equal(t, "mailto:a@b.com?subject=Hi&body=Long%20text", Encode(TypeEmail, Fields{
		Value:        "a@b.com",
		EmailSubject: "Hi",
		EmailBody:    "Long text",
	}))
	// Body without subject still starts the query string correctly
	assert.Equal(t, "mailto:a@b.com?body=Just%20body", Encode(TypeEmail, Fields{
		Value:     "a@b.com",
		EmailBody: "Just body",
	}))
}

func TestEncode_Wifi(t *testing.T) {
	assert.Equal(t, "WIFI:S:Home;T:WPA;P:secret1;;", Encode(TypeWifi, Fields{
		WifiSSID:       "Home",
		WifiPassword:   "secret1",
		WifiEncryption: "WPA",
	}))
}

func TestEncode_WifiOpenNetwork(t *testing.T) {
	// Open networks carry an empty T segment and no password
	assert.Equal(t, "WIFI:S:Guest;T:;;", Encode(TypeWifi, Fields{
		WifiSSID:       "Guest",
		WifiPassword:   "ignored",
		WifiEncryption: EncryptionNone,
	}))
}

func TestEncode_WifiHidden(t *testing.T) {
	assert.Equal(t, "WIFI:S:Home;T:WPA;P:pw;H:true;;", Encode(TypeWifi, Fields{
		WifiSSID:       "Home",
		WifiPassword:   "pw",
		WifiEncryption: "WPA",
		WifiHidden:     true,
	}))
}

func TestEncode_Location(t *testing.T) {
	assert.Equal(t, "geo:41.0082,28.9784", Encode(TypeLocation, Fields{
		Latitude:  "41.0082",
		Longitude: "28.9784",
	}))
	assert.Equal(t, "geo:41.0082,28.9784?q=Hagia%20Sophia", Encode(TypeLocation, Fields{
		Latitude:      "41.0082",
		Longitude:     "28.9784",
		LocationLabel: "Hagia Sophia",
	}))
}

func TestEncode_VCard(t *testing.T) {
	// Act
	encoded := Encode(TypeVCard, Fields{
		VCardName:    "Jane Doe",
		VCardTitle:   "Engineer",
		VCardCompany: "Acme",
		VCardPhone:   "+15551234567",
		VCardEmail:   "jane@acme.com",
		VCardWebsite: "acme.com",
		VCardAddress: "1 Main St",
	})

	// Assert
	expected := "BEGIN:VCARD\nVERSION:3.0\n" +
		"FN:Jane Doe\n" +
		"N:Doe;;Jane;\n" +
		"TITLE:Engineer\n" +
		"ORG:Acme\n" +
		"TEL;TYPE=CELL:+15551234567\n" +
		"EMAIL:jane@acme.com\n" +
		"URL:https://acme.com\n" +
		"ADR;TYPE=HOME:;;1 Main St;;;;\n" +
		"END:VCARD"
	assert.Equal(t, expected, encoded)
}

func TestEncode_Event(t *testing.T) {
	// Act
	encoded := Encode(TypeEvent, Fields{
		EventTitle:       "Launch",
		EventDate:        "2025-01-15",
		EventTime:        "14:30",
		EventEndDate:     "2025-01-15",
		EventEndTime:     "16:00",
		EventLocation:    "HQ",
		EventDescription: "Release party",
	})

	// Assert
	expected := "BEGIN:VEVENT\n" +
		"SUMMARY:Launch\n" +
		"DTSTART:20250115T143000\n" +
		"DTEND:20250115T160000\n" +
		"LOCATION:HQ\n" +
		"DESCRIPTION:Release party\n" +
		"END:VEVENT"
	assert.Equal(t, expected, encoded)
}

func TestEncode_EventAllDay(t *testing.T) {
	encoded := Encode(TypeEvent, Fields{
		EventTitle: "Holiday",
		EventDate:  "2025-12-25",
	})
	assert.Contains(t, encoded, "DTSTART:20251225T000000")
}

func TestDecode_Wifi(t *testing.T) {
	// Act
	f := Decode(TypeWifi, "WIFI:S:Home;T:WPA;P:secret1;;")

	// Assert
	assert.Equal(t, "Home", f.WifiSSID)
	assert.Equal(t, "WPA", f.WifiEncryption)
	assert.Equal(t, "secret1", f.WifiPassword)
	assert.False(t, f.WifiHidden)
}

func TestDecode_WifiOpenNetwork(t *testing.T) {
	// An empty T segment with no P segment decodes to an open network
	f := Decode(TypeWifi, "WIFI:S:Guest;T:;;")

	assert.Equal(t, "Guest", f.WifiSSID)
	assert.Equal(t, EncryptionNone, f.WifiEncryption)
	assert.Empty(t, f.WifiPassword)
}

func TestDecode_WifiMissingTSegment(t *testing.T) {
	// No T segment at all defaults to WPA
	f := Decode(TypeWifi, "WIFI:S:Legacy;P:pw;;")

	assert.Equal(t, "Legacy", f.WifiSSID)
	assert.Equal(t, "WPA", f.WifiEncryption)
	assert.Equal(t, "pw", f.WifiPassword)
}

func TestDecode_WifiHidden(t *testing.T) {
	f := Decode(TypeWifi, "WIFI:S:Home;T:WPA2;P:pw;H:true;;")

	assert.Equal(t, "WPA2", f.WifiEncryption)
	assert.True(t, f.WifiHidden)
}

func TestDecode_Location(t *testing.T) {
	f := Decode(TypeLocation, "geo:41.0082,28.9784?q=Hagia%20Sophia")

	assert.Equal(t, "41.0082", f.Latitude)
	assert.Equal(t, "28.9784", f.Longitude)
	assert.Equal(t, "Hagia Sophia", f.LocationLabel)
}

func TestDecode_LocationNegativeCoordinates(t *testing.T) {
	f := Decode(TypeLocation, "geo:-33.8688,151.2093")

	assert.Equal(t, "-33.8688", f.Latitude)
	assert.Equal(t, "151.2093", f.Longitude)
	assert.Empty(t, f.LocationLabel)
}

func TestDecode_VCard(t *testing.T) {
	encoded := "BEGIN:VCARD\nVERSION:3.0\n" +
		"FN:Jane Doe\n" +
		"N:Doe;;Jane;\n" +
		"TITLE:Engineer\n" +
		"ORG:Acme\n" +
		"TEL;TYPE=CELL:+15551234567\n" +
		"EMAIL:jane@acme.com\n" +
		"URL:https://acme.com\n" +
		"ADR;TYPE=HOME:;;1 Main St;;;;\n" +
		"END:VCARD"

	// Act
	f := Decode(TypeVCard, encoded)

	// Assert
	assert.Equal(t, "Jane Doe", f.VCardName)
	assert.Equal(t, "Engineer", f.VCardTitle)
	assert.Equal(t, "Acme", f.VCardCompany)
	assert.Equal(t, "+15551234567", f.VCardPhone)
	assert.Equal(t, "jane@acme.com", f.VCardEmail)
	assert.Equal(t, "https://acme.com", f.VCardWebsite)
	assert.Equal(t, "1 Main St", f.VCardAddress)
}

func TestDecode_VCardStructuredNameFallback(t *testing.T) {
	// No FN line: the name is reassembled from the N components
	f := Decode(TypeVCard, "BEGIN:VCARD\nVERSION:3.0\nN:Doe;;Jane;\nEND:VCARD")

	assert.Equal(t, "Jane Doe", f.VCardName)
}

func TestDecode_Event(t *testing.T) {
	encoded := "BEGIN:VEVENT\n" +
		"SUMMARY:Launch\n" +
		"DTSTART:20250115T143000\n" +
		"DTEND:20250115T160000\n" +
		"LOCATION:HQ\n" +
		"DESCRIPTION:Release party\n" +
		"END:VEVENT"

	// Act
	f := Decode(TypeEvent, encoded)

	// Assert
	assert.Equal(t, "Launch", f.EventTitle)
	assert.Equal(t, "2025-01-15", f.EventDate)
	assert.Equal(t, "14:30", f.EventTime)
	assert.Equal(t, "2025-01-15", f.EventEndDate)
	assert.Equal(t, "16:00", f.EventEndTime)
	assert.Equal(t, "HQ", f.EventLocation)
	assert.Equal(t, "Release party", f.EventDescription)
}

func TestDecode_RawValueTypes(t *testing.T) {
	// URL, TEXT, PHONE, EMAIL and SMS keep the raw string only
	assert.Equal(t, "https://example.com", Decode(TypeURL, "https://example.com").Value)
	assert.Equal(t, "tel:+1555", Decode(TypePhone, "tel:+1555").Value)
	assert.Equal(t, "mailto:a@b.com?subject=Hi", Decode(TypeEmail, "mailto:a@b.com?subject=Hi").Value)
	assert.Equal(t, "SMSTO:+1555:msg", Decode(TypeSMS, "SMSTO:+1555:msg").Value)
}

func TestDecode_MalformedInput(t *testing.T) {
	assert.Equal(t, Fields{}, Decode(TypeWifi, "not a wifi string"))
	assert.Equal(t, Fields{}, Decode(TypeLocation, "geo:garbage"))
}

func TestRoundTrip_StructuredTypes(t *testing.T) {
	cases := []struct {
		name   string
		typ    Type
		fields Fields
	}{
		{"wifi", TypeWifi, Fields{WifiSSID: "Home", WifiPassword: "secret1", WifiEncryption: "WPA"}},
		{"wifi hidden", TypeWifi, Fields{WifiSSID: "Attic", WifiPassword: "pw", WifiEncryption: "WPA2", WifiHidden: true}},
		{"location", TypeLocation, Fields{Latitude: "41.0082", Longitude: "28.9784", LocationLabel: "Hagia Sophia"}},
		{"vcard", TypeVCard, Fields{VCardName: "Jane Doe", VCardPhone: "+1555", VCardEmail: "jane@acme.com", VCardCompany: "Acme", VCardTitle: "Engineer", VCardWebsite: "https://acme.com", VCardAddress: "1 Main St"}},
		{"event", TypeEvent, Fields{EventTitle: "Launch", EventDate: "2025-01-15", EventTime: "14:30", EventEndDate: "2025-01-15", EventEndTime: "16:00", EventLocation: "HQ", EventDescription: "Release party"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := Decode(tc.typ, Encode(tc.typ, tc.fields))
			assert.Equal(t, tc.fields, decoded)
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(TypeURL, Fields{Value: "example.com"}))
	assert.NoError(t, Validate(TypeWifi, Fields{WifiSSID: "Home"}))

	err := Validate(TypeURL, Fields{})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyValue, err.Error())

	err = Validate(TypeEmail, Fields{})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyAddress, err.Error())

	err = Validate(TypeSMS, Fields{SMSMessage: "no number"})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptySMSNumber, err.Error())

	err = Validate(TypeWifi, Fields{WifiPassword: "pw"})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptySSID, err.Error())

	err = Validate(TypeLocation, Fields{Latitude: "41.0"})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyCoordinates, err.Error())

	err = Validate(TypeVCard, Fields{})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyName, err.Error())

	err = Validate(TypeEvent, Fields{})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrEmptyEventTitle, err.Error())

	err = Validate(Type("BOGUS"), Fields{Value: "x"})
	assert.Error(t, err)
	assert.Equal(t, constant.ErrUnknownType, err.Error())
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "example.com", Label(TypeURL, Fields{Value: "example.com"}))
	assert.Equal(t, "Home", Label(TypeWifi, Fields{WifiSSID: "Home"}))
	assert.Equal(t, "WiFi", Label(TypeWifi, Fields{}))
	assert.Equal(t, "Hagia Sophia", Label(TypeLocation, Fields{Latitude: "41.0", Longitude: "28.9", LocationLabel: "Hagia Sophia"}))
	assert.Equal(t, "41.0, 28.9", Label(TypeLocation, Fields{Latitude: "41.0", Longitude: "28.9"}))
	assert.Equal(t, "Jane Doe", Label(TypeVCard, Fields{VCardName: "Jane Doe"}))
	assert.Equal(t, "Contact", Label(TypeVCard, Fields{}))
	assert.Equal(t, "Launch", Label(TypeEvent, Fields{EventTitle: "Launch"}))
	assert.Equal(t, "Event", Label(TypeEvent, Fields{}))
	assert.Equal(t, "+1555", Label(TypeSMS, Fields{SMSNumber: "+1555"}))
	assert.Equal(t, "SMS", Label(TypeSMS, Fields{}))
}
