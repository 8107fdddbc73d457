// Package utils provides small conversion helpers for request values.
package utils
