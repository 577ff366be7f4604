package airports

// Field length limits, counted in Unicode code points.
const (
	MinIDLength   = 2
	MaxIDLength   = 20
	MinNameLength = 3
	MaxNameLength = 20
	MinCityLength = 3
	MaxCityLength = 20
)

// Airport is a single registry record. The registry key always equals AirportID.
type Airport struct {
	AirportID    string  `json:"airport_id"`
	AirportName  string  `json:"airport_name"`
	City         string  `json:"city"`
	CountryState *string `json:"country_state"`
}

// Patch carries the fields supplied to a partial update. Nil pointers are
// left untouched on the stored record.
type Patch struct {
	AirportID   string
	AirportName *string
	City        *string
	// SetCountryState reports whether country_state was present in the
	// payload, including an explicit null.
	SetCountryState bool
	CountryState    *string
}

// Apply merges the supplied fields into a and returns the result.
func (p Patch) Apply(a Airport) Airport {
	a.AirportID = p.AirportID
	if p.AirportName != nil {
		a.AirportName = *p.AirportName
	}
	if p.City != nil {
		a.City = *p.City
	}
	if p.SetCountryState {
		a.CountryState = p.CountryState
	}
	return a
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}
