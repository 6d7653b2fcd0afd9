// Package segment turns a chapter's ordered page text into titled sections
// using typographic header detection. Print conversion leaves no structural
// markup, so capitalization is the only header signal: an ordered list of
// rules is applied per line and the first match wins.
package segment
