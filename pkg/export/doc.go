// Package export saves downloads produced from the render surface to disk.
package export
