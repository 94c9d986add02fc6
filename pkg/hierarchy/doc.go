// Package hierarchy loads the category tree that a treemap is drawn from.
//
// A document is a recursive JSON object. Internal nodes carry a name and a
// children array; leaves carry a name, a category and a numeric value:
//
//	{"name": "Movies", "children": [
//	    {"name": "Action", "children": [
//	        {"name": "Inception", "category": "Action", "value": "825532764"}
//	    ]}
//	]}
//
// Values may be JSON numbers or numeric strings. Decoding validates the
// whole tree up front: a missing name, a leaf without category or value, or
// a negative or non-numeric value is rejected with an INVALID_DOCUMENT
// error that names the offending node by its JSONPath.
//
// [Load] fetches a document over HTTP, [ReadFile] reads one from disk and
// [Decode] works on bytes already in memory. All three accept a JSONPath
// selector that picks the tree root inside a larger document; "$" (or "")
// uses the document itself.
package hierarchy
