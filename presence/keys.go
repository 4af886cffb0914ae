// Package presence tracks which authors currently have a document
// open, backed by Redis — the collaborator roster a host's "who's
// viewing" UI reads from, grounded on the teacher's
// internal/cache/presence.go.
package presence

import "fmt"

const (
	keyRoomFmt  = "presence:room:%s"       // ZSet<authorID, expireAtUnix>
	keyNamesFmt = "presence:room:names:%s" // Hash<authorID -> displayName>
)

func roomKey(docID string) string  { return fmt.Sprintf(keyRoomFmt, docID) }
func namesKey(docID string) string { return fmt.Sprintf(keyNamesFmt, docID) }
