// Package enrich derives catalog improvements from matched manual text.
//
// It never copies manual prose into catalog files. The gap analysis
// reports which clinical topics the manual covers that a record lacks,
// the extraction helpers pull out short referenced facts (differential
// names, dose mentions), and the reference stamper records where in the
// manual the supporting section lives.
package enrich
