// Package managed is an in-process managed runtime: the object side of the
// boundary.
//
// A Heap owns every managed value and hands out Refs to them. It models the
// parts of a garbage-collected runtime the boundary relies on:
//
//   - classes with a super class, flattened instance fields and a canonical
//     constructor taking one argument per field (NewObject)
//   - static factories (CallStatic) and singleton objects (Singleton)
//   - byte arrays, strings and object arrays
//   - borrowed views into array and string storage that must be released
//     (BorrowByteArray, BorrowString); Outstanding counts unreleased views
//   - runtime type inspection (ClassOf, IsInstanceOf)
//
// The zero Ref is null. Constructors validate every argument before
// allocating, so a failed NewObject never leaves a partially built object
// on the heap. Heap is safe for concurrent use.
package managed
