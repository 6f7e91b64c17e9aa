// Package file provides a DataSource which reads data from the files matching a glob.
// Matching files are loaded in lexical order, one PartitionLoader per file, so Row
// order in a result follows file name order and then position within each file.
package file
