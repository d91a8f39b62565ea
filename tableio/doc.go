// Package tableio reads and writes the files of a fuzzification project:
// tab-separated value matrices (first column is the row index), sample
// metadata with a cluster column, membership tables named
// fuzzyValues_<name>.tsv, and JSON concept documents.
//
// Missing cells are written empty and read back as NaN; the spellings
// accepted by concept.ParseValue ("NA", "nan", "-Inf", ...) are read as
// well.
package tableio
