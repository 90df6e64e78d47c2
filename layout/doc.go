// Package layout implements the heading-detection core of the outliner.
//
// The pipeline runs strictly forward over one document:
//
//	text runs → lines → document profile → heading candidates →
//	header/footer filter → deduplication → outline
//
// Each stage is a small detector with its own Config struct and sensible
// defaults. Corpus-wide statistics (body font size, repeating header and
// footer text) are computed once per document and passed into later stages
// as immutable values, so independent documents can be processed
// concurrently without shared state.
package layout
