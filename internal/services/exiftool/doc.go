// Package exiftool wraps the exiftool CLI: the availability probe, reading
// tags as structured data, and the two-pass tag copy used to propagate
// metadata from source images onto converted outputs.
package exiftool
