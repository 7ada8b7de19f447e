// Package pools provides object pooling for the scratch buffers the
// community engines allocate on every sweep.
//
//   - CountBuffer: dense per-label tallies with a touched list, cleared in
//     time proportional to the labels touched
//   - IntPool: size-class pooling for label and tie slices
//   - BufferBuilder: pooled little-endian byte encoding for edge list files
package pools
