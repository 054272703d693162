// Package io exports parsed problems to interchange formats: a JSON
// document that round-trips the full model, and a relational CSV
// flattening (variables, constraints, objectives) for spreadsheet and
// dataframe workflows.
package io
