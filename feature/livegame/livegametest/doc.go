// Package livegametest provides in-memory store fixtures for live game tests.
package livegametest
