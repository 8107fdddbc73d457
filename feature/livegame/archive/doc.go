// Package archive keeps a copy of every offline game in object storage before it is
// pushed. Objects are JSON payloads named offline-games/<game id>/<timestamp>.json.
package archive
