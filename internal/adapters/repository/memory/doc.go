// Package memory keeps users and bookmarks in process memory. It honours the
// same contracts as the PostgreSQL repositories, including atomic email
// uniqueness, and backs STORAGE=memory as well as the tests.
package memory
