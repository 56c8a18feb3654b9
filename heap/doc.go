// Package heap implements an explicit free-list memory allocator over
// a single growable arena, with a limited scope:
//
//   - Types and Functions exported by this package are not thread
//     safe. Callers needing concurrency should serialize access or
//     keep one Heap per goroutine.
//   - Memory is obtained from an arena provider in large increments
//     and never returned, freed blocks are recycled by the heap.
//   - Every block carries a boundary tag, a header and footer word
//     encoding its size and allocated flag, so physical neighbours
//     can be reached in both directions without a separate index.
//   - Free blocks additionally thread an intrusive doubly-linked
//     free list through their payload bytes. Allocation searches the
//     list first-fit, splits when the remainder can stand on its own
//     and grows the arena only when nothing fits.
//   - Chunks handed out by this package are always 8-byte aligned.
//
// A Heap hands out offsets into the provider's byte region rather
// than raw pointers. Offset zero is the null pointer. Use Blockbytes
// to obtain a writable view of an allocated payload.
package heap
