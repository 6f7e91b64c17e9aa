// Package jsonl parses JSON Lines data. Each Schema column name is a gjson path
// (https://github.com/tidwall/gjson) evaluated against every line, so nested
// fields can be extracted with names such as "address.city".
package jsonl
