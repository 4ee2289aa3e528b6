package filmography

// LookupInput is the input for a filmography lookup. An empty Name means the
// name extractor found nothing usable.
type LookupInput struct {
	Name string
}

// Person is a metadata-service person record.
type Person struct {
	ID   int64
	Name string
}

// Filmography is the result of a successful lookup.
type Filmography struct {
	Query  string   // name as typed by the user / extracted
	Person Person   // first search hit
	Titles []string // cast credits in service order, duplicates kept
}
