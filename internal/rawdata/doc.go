// Package rawdata resolves and lazily loads the raw language-data sources
// (XML tables, delimited text files, pretrained model blob directories) by
// stable name. Every source is loaded at most once per build session; a failed
// load is remembered and reported as a terminal raw-data error on later
// access instead of retrying.
package rawdata
