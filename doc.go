// Package vecprep validates client arguments and builds the request messages
// of the vector service RPC interface.
//
// Every builder is a pure function: it either returns a fully populated
// request from package wire or fails with an error matching
// ErrTypeMismatch (wrong argument shape) or ErrInvalidParameter (bad field
// value). Nothing is sent, logged or retried here, and all builders are safe
// for concurrent use.
//
//	schema, err := vecprep.TableSchema(map[string]any{
//	    "table_name": "orders",
//	    "dimension":  16,
//	})
//
//	insert, err := vecprep.InsertParam("orders", vectors, ids)
//
//	query, err := vecprep.SearchParam("orders", queries,
//	    []any{vecprep.Pair{Start: "2019-05-25", End: "2019-06-01"}},
//	    10, 16,
//	)
//
// Loosely-typed arguments (decoded JSON or YAML) are accepted where the wire
// form allows it: schema and index mappings, date strings, range pairs.
package vecprep
