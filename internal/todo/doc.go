// Package todo holds the task list data model, its pure list operations, the
// view filter and the storage codec.
//
// The stored form of a task list is a JSON array:
//
//	[
//	  {"id": "0192f0c4-...", "text": "Buy groceries", "completed": false},
//	  {"id": "0192f0c5-...", "text": "Walk the dog", "completed": true}
//	]
//
// # Operations
//
// List operations never modify their receiver. Append, Toggle, Delete and Edit
// each return a new List together with a flag reporting whether anything
// changed, so callers can skip persistence when nothing did.
//
// # Decoding
//
// Decode is strict: the input is validated against the embedded JSON Schema
// (draft 2020-12) before it is converted to tasks. Each record must carry
// exactly id (non-empty string), text (string with a non-space character) and
// completed (boolean), and ids must be unique. A value that fails any check is
// rejected as a whole.
//
// # File Format
//
// Encode writes:
//   - 2-space indentation
//   - Trailing newline
//   - Fields in id, text, completed order
package todo
