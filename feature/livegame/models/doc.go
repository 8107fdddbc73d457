// Package models defines the live game entities and their store schemas.
//
// Game, Point and Action are GORM models: one struct serves as the declared schema of
// the local store and as the JSON shape exchanged with the remote authority (field
// tags follow the remote's camelCase names, `_id` for identities). Nested references
// (rosters, teams, tournament, tags, comments) are stored as JSON-serialized columns.
// Team, Player and Tournament also have tables of their own so references seen during
// a reenter stay available offline.
package models
