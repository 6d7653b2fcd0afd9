// Package document provides access to the source manual as ordered page
// text. The manual is consumed as pre-extracted plain text, one file per
// chapter, with pages delimited by "--- PAGE N ---" markers; the PDF
// decoding step that produces those files is outside this repository.
package document
