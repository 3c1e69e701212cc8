// Package sqlite provides the persistent scope backend on SQLite.
//
// Values written here survive restarts; they back the "remember this device"
// login option.
package sqlite
