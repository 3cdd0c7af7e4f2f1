// Package safejson provides defensive JSON file storage with path
// containment, size limits, schema validation, and crash-safe writes.
//
// A Store is constructed once with a Config and is stateless afterward;
// every call is independent and reentrant. All operations are total:
// they return a Result describing success or failure and never panic or
// propagate errors to the caller.
//
// Read pipeline:
//   - Resolve the path (symlinks and ".." collapsed) and enforce the
//     containment root
//   - Reject missing paths, non-regular files, and oversized files
//   - Parse eagerly, or stream the top-level object key by key
//   - Validate against a JSON Schema (draft-07) when configured
//
// Write pipeline:
//   - Containment and schema checks before anything touches disk
//   - Parent directories created as needed
//   - Optional metadata-preserving backup to "<name>.bak"
//   - Atomic replace via a temp file in the target directory, with
//     automatic restore from backup on failure
//
// Documents preserve key insertion order through serialization, the way
// they were built or read.
//
// Example Usage:
//
//	store, err := safejson.New(safejson.Config{BasePath: "/data"})
//	doc := safejson.NewDocument()
//	doc.Set("name", "John")
//	doc.Set("age", 30)
//	res := store.Write(doc, "users/john.json", nil)
//	if !res.Success {
//		log.Fatal(*res.Error)
//	}
//	res = store.Read("users/john.json", nil)
package safejson
