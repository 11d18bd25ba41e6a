package domain

// DefaultPerPage is the page size requested from every paginated listing.
const DefaultPerPage = 100

// Page is a single paginated listing request.
// Page numbers start at 1.
type Page struct {
	Number  int
	PerPage int
}

// FirstPage returns the first page at the default page size.
func FirstPage() Page {
	return Page{Number: 1, PerPage: DefaultPerPage}
}

// Next returns the following page at the same size.
func (p Page) Next() Page {
	return Page{Number: p.Number + 1, PerPage: p.PerPage}
}
