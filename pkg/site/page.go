package site

// Page carries what the layout needs on every page, plus the page's own
// data in Data.
type Page struct {
	Title  string
	Nav    string
	Admin  bool
	Notice string
	Error  string
	Data   any
}
