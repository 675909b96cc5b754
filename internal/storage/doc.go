package storage

// Package storage persists named schedule definitions in SQLite.
//
// Every expression is validated before it is written, so a stored
// definition always parses. The store is the backing for the CLI's
// add/list/rm commands; the watch daemon reads its definitions from the
// config file instead.
