// Package sift contains the core components of Sift, a library for building lazy subsetting plans
// (filtering, column selection and sampling) over tabular data, and for materializing them into local
// tables or single-file exports. This root package defines types which are employed during the regular
// use of the library, as well as in its extension, and is an excellent overview of Sift's key concepts.
package sift
