// Package warden is the composition root for the warden moderation tool.
//
// It connects the domain layer (pkg/core) with the storage adapter
// (pkg/adapters/fs) and the dataset read model (pkg/dataset).
//
// Warden keeps two kinds of data:
//
//   - Notes: free-text moderation records about external user ids, stored
//     in one JSON document guarded by a host-wide file lock. Every
//     read-modify-write is serialized, and writes are crash-safe via an
//     atomic temp-file replace.
//   - Profiles: a scraped, read-only dataset of users, their assets and
//     collectibles. Queries run against an explicit Snapshot rebuilt from
//     the backing documents on every call.
//
// Usage:
//
//	cfg, err := warden.LoadConfig("warden.yaml")
//	svc := warden.New(cfg, warden.WithLogger(logger))
//
//	err = svc.Notes().AddMessage(ctx, "12345", "spammed the trade channel", "mod-7")
//
//	snap, err := svc.Snapshot()
//	owners := snap.FindByAsset("Cool Hat", nil)
package warden
