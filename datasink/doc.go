// Package datasink writes the Rows of a DataFrame to a single destination. Rows are encoded
// (as delimiter-separated values, JSON lines or Parquet), optionally compressed, and written to a
// staging area which only becomes visible at the destination once every Row has been written.
//
// Destinations are implemented by the file (local filesystem) and s3 sub-packages.
package datasink
