package entity

// Page is the raw output of a page-reading capability: extracted text plus
// whatever metadata the page exposed. Links are the page's outbound hrefs in
// document order, unresolved and undeduplicated.
type Page struct {
	URL    string   `json:"url"`
	Title  string   `json:"title"`
	Author string   `json:"author,omitempty"`
	Text   string   `json:"text"`
	Links  []string `json:"links,omitempty"`
}

// DocumentSection is one titled chunk produced by a document parser. A long
// document may split into several sections; an empty document yields none.
type DocumentSection struct {
	Title   string
	Content string
}
