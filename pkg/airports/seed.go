package airports

// SeedRecords returns the sample records loaded at startup.
func SeedRecords() []Airport {
	return []Airport{
		{AirportID: "aa", AirportName: "To Sky Airport", City: "Flying Lake AK", CountryState: StringPtr("US Alaska")},
		{AirportID: "bb", AirportName: "Bear Creek Mining Strip", City: "Granite Mountain CA", CountryState: StringPtr("US California")},
		{AirportID: "cc", AirportName: "Little Squaw Airport", City: "Little Squaw FL", CountryState: StringPtr("US Florida")},
	}
}

var legacySeedKeys = []string{"a", "b", "c"}

// NewSeededStore returns a registry holding the sample records. With
// legacyKeys the records are keyed "a", "b" and "c" instead of their own ids.
func NewSeededStore(legacyKeys bool) *MemStore {
	store := NewMemStore()
	for idx, airport := range SeedRecords() {
		key := airport.AirportID
		if legacyKeys {
			key = legacySeedKeys[idx]
		}
		store.Seed(key, airport)
	}
	return store
}
