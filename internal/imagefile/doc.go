// Package imagefile moves PGM images between the filesystem and memory.
//
// Load reads and decodes one file. WriteAll writes a set of files as a unit:
// either every output ends up at its final path or none does, so a failed run
// never leaves a partial set of results behind.
//
// # Compression
//
// Paths ending in ".zst" are transparently Zstandard-compressed on write and
// decompressed on read. The raster inside is still PGM, so "boats.pgm.zst"
// and "boats.pgm" hold the same image.
//
// # Atomicity
//
// Each output is encoded into a temporary file next to its destination and
// synced to disk. Only after every output is staged are the temporary files
// renamed into place. If any rename fails, outputs already renamed are
// removed again. Parent directories are created as needed and are not
// removed on failure.
package imagefile
