// Package storage provides read-only access to operator-managed files
// (organization configuration and signature templates) kept either in a
// local directory or in an S3-compatible bucket.
//
// # Basic Usage
//
// Resolve an operator-supplied location and read a file:
//
//	store, key, err := storage.Open(ctx, "s3://signatures/config.json", s3cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	data, err := storage.ReadAll(ctx, store, key)
//	if errors.Is(err, storage.ErrNotFound) {
//		// file is absent
//	}
//
// Plain paths resolve to a Local store rooted at the parent directory:
//
//	store, key, err := storage.Open(ctx, "/etc/sigcraft/config.json", storage.S3Config{})
//	// store reads from /etc/sigcraft, key == "config.json"
//
// # Error Handling
//
// Missing files are reported as ErrNotFound regardless of backend, so callers
// can distinguish "absent" from "unreadable" with errors.Is.
package storage
