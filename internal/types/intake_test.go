package types

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntakeData_UnmarshalFullDocument(t *testing.T) {
	doc := `{
		"organization": {
			"name": "St. Mary's",
			"industry": "Healthcare",
			"total_users": "1200",
			"pain_points": ["IoT device visibility gaps", {"title": "Audit findings"}]
		},
		"vendor_ecosystem": {
			"wired": ["Cisco Catalyst"],
			"identity": ["Microsoft Entra", "Okta"]
		}
	}`

	var intake IntakeData
	require.NoError(t, json.Unmarshal([]byte(doc), &intake))
	require.NotNil(t, intake.Organization)

	assert.Equal(t, "St. Mary's", intake.Organization.Name)
	assert.Equal(t, "Healthcare", intake.Organization.Industry)

	users, ok := intake.Organization.TotalUsers.Int()
	assert.True(t, ok)
	assert.Equal(t, 1200, users)

	assert.Equal(t, []string{"IoT device visibility gaps", "Audit findings"}, intake.Organization.PainPointTitles())
	assert.Equal(t, []string{"Microsoft Entra", "Okta", "Cisco Catalyst"}, intake.VendorEcosystem.Vendors())
}

func TestIntakeData_MalformedFieldsAreDropped(t *testing.T) {
	doc := `{
		"organization": {
			"industry": 42,
			"total_users": {"value": 10},
			"pain_points": "not a list"
		},
		"vendor_ecosystem": ["cisco"]
	}`

	var intake IntakeData
	require.NoError(t, json.Unmarshal([]byte(doc), &intake))
	require.NotNil(t, intake.Organization)

	assert.Empty(t, intake.Organization.Industry)
	_, ok := intake.Organization.TotalUsers.Int()
	assert.False(t, ok)
	assert.Empty(t, intake.Organization.PainPointTitles())
	assert.Empty(t, intake.VendorEcosystem.Vendors())
}

func TestIntakeData_OrganizationWrongType(t *testing.T) {
	var intake IntakeData
	require.NoError(t, json.Unmarshal([]byte(`{"organization": "acme"}`), &intake))
	assert.Nil(t, intake.Organization)

	require.NoError(t, json.Unmarshal([]byte(`{"organization": null}`), &intake))
	assert.Nil(t, intake.Organization)
}

func TestIntakeData_InvalidJSON(t *testing.T) {
	var intake IntakeData
	assert.Error(t, json.Unmarshal([]byte(`{"organization":`), &intake))
}

func TestUserCount_Int(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   int
		wantOK bool
	}{
		{name: "string number", raw: `"1500"`, want: 1500, wantOK: true},
		{name: "padded string", raw: `" 600 "`, want: 600, wantOK: true},
		{name: "json number", raw: `400`, want: 400, wantOK: true},
		{name: "fractional number truncates", raw: `1200.9`, want: 1200, wantOK: true},
		{name: "non numeric string", raw: `"abc"`, wantOK: false},
		{name: "empty string", raw: `""`, wantOK: false},
		{name: "null", raw: `null`, wantOK: false},
		{name: "bool", raw: `true`, wantOK: false},
		{name: "huge number saturates", raw: `1e20`, want: math.MaxInt, wantOK: true},
		{name: "huge negative number saturates", raw: `-1e20`, want: math.MinInt, wantOK: true},
		{name: "out of range digits saturate", raw: `"99999999999999999999"`, want: math.MaxInt, wantOK: true},
		{name: "out of range negative digits saturate", raw: `"-99999999999999999999"`, want: math.MinInt, wantOK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u UserCount
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &u))
			got, ok := u.Int()
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestUserCount_Constructors(t *testing.T) {
	n, ok := UsersText("750").Int()
	assert.True(t, ok)
	assert.Equal(t, 750, n)

	n, ok = UsersNumber(2000).Int()
	assert.True(t, ok)
	assert.Equal(t, 2000, n)

	_, ok = UserCount{}.Int()
	assert.False(t, ok)
}

func TestUserCount_String(t *testing.T) {
	assert.Equal(t, "5,000+", UsersText(" 5,000+ ").String())
	assert.Equal(t, "1200", UsersNumber(1200).String())
	assert.Equal(t, "", UserCount{}.String())
}

func TestPainPointEntry_Title(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{name: "plain string", raw: `"Lack of visibility"`, want: "Lack of visibility", wantOK: true},
		{name: "object with title", raw: `{"title": "Audit gaps", "severity": "high"}`, want: "Audit gaps", wantOK: true},
		{name: "object without title", raw: `{"name": "x"}`, wantOK: false},
		{name: "object with numeric title", raw: `{"title": 5}`, wantOK: false},
		{name: "number", raw: `12`, wantOK: false},
		{name: "null", raw: `null`, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p PainPointEntry
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &p))
			got, ok := p.Title()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntakeData_RoundTripPreservesOriginalShapes(t *testing.T) {
	intake := IntakeData{
		Organization: &Organization{
			Industry:   "finance",
			TotalUsers: UsersText("800"),
			PainPoints: []PainPointEntry{PainPointText("Audit"), PainPointObject("IoT sprawl")},
		},
	}

	data, err := json.Marshal(intake)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_users":"800"`)
	assert.Contains(t, string(data), `{"title":"IoT sprawl"}`)

	var decoded IntakeData
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"Audit", "IoT sprawl"}, decoded.Organization.PainPointTitles())
}

func TestVendorEcosystem_SingleStringAccepted(t *testing.T) {
	var v VendorEcosystem
	require.NoError(t, json.Unmarshal([]byte(`{"wireless": "Aruba", "wired": ["Cisco", 7]}`), &v))
	assert.Equal(t, []string{"Cisco", "Aruba"}, v.Vendors())
}
