package airports

// Repository defines the registry operations required by the HTTP server.
type Repository interface {
	List(limit int) []Airport
	Get(id string) (Airport, bool)
	Create(airport Airport) error
	Put(airport Airport) bool
	Patch(patch Patch) (Airport, error)
	Delete(id string) (Airport, error)
	Len() int
}

var _ Repository = (*MemStore)(nil)
