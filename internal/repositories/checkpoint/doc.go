// Package checkpoint persists the "last synced" instant as a single-row
// record. The sync controller is the only writer; readers get a
// seeded default of 90 days back on a cold store so the first pass walks a
// bounded window instead of all history.
package checkpoint
