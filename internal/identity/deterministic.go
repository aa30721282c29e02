package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

const namespace = "go-sitecms"

// UUID derives a deterministic UUID from a stable key using go-hashid.
//
// Callers must ensure key construction prevents cross-entity collisions (prefix by domain/type).
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// RecordUUID identifies a seeded record by entity type and seed key.
func RecordUUID(entityType, key string) uuid.UUID {
	return UUID(namespace + ":record:" + strings.ToLower(strings.TrimSpace(entityType)) + ":" + strings.ToLower(strings.TrimSpace(key)))
}

// MediaAssetUUID identifies a seeded media asset by its path.
func MediaAssetUUID(path string) uuid.UUID {
	return UUID(namespace + ":media:" + strings.TrimSpace(path))
}

// ActorUUID identifies a system actor such as the seeding process.
func ActorUUID(name string) uuid.UUID {
	return UUID(namespace + ":actor:" + strings.ToLower(strings.TrimSpace(name)))
}
